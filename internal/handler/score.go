package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dukerupert/choreboard/internal/store"
	"github.com/dukerupert/choreboard/internal/websocket"
)

// DoChore credits the chore's points to the player and re-renders the
// player list of their board.
func (h *Handler) DoChore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	playerID := strings.TrimSpace(r.FormValue("playerId"))
	choreID := strings.TrimSpace(r.FormValue("choreId"))
	if playerID == "" || choreID == "" {
		http.Error(w, "playerId and choreId are required", http.StatusBadRequest)
		return
	}

	player, err := h.players.GetByID(r.Context(), playerID)
	if err != nil {
		h.serverError(w, r, "get player", err)
		return
	}
	if player == nil {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}

	chore, err := h.chores.GetByID(r.Context(), choreID)
	if err != nil {
		h.serverError(w, r, "get chore", err)
		return
	}
	if chore == nil {
		http.Error(w, "chore not found", http.StatusNotFound)
		return
	}
	if chore.BoardID != player.BoardID {
		http.Error(w, "chore belongs to another board", http.StatusBadRequest)
		return
	}

	completion, err := h.scores.DoChore(r.Context(), playerID, choreID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "player or chore not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, store.ErrPointsOutOfRange) {
		http.Error(w, "player points would leave the allowed range", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.serverError(w, r, "do chore", err)
		return
	}

	h.logger.Debug("chore done", "board_id", player.BoardID, "player_id", playerID, "chore_id", choreID, "points", completion.Points)
	h.broadcast(websocket.NewMessage(player.BoardID, "completion", "created", playerID))
	h.renderPlayerList(w, r, player.BoardID)
}
