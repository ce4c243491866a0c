package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
	"github.com/dukerupert/choreboard/internal/websocket"
)

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	name, err := parseName(r.FormValue("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	color := strings.TrimSpace(r.FormValue("color"))

	boardID, ok := h.requireBoard(w, r)
	if !ok {
		return
	}

	player, err := h.players.Create(r.Context(), boardID, name, color)
	if err != nil {
		h.serverError(w, r, "create player", err)
		return
	}

	h.broadcast(websocket.NewMessage(boardID, "player", "created", player.ID))
	h.renderPlayerList(w, r, boardID)
}

// UpdatePlayer applies the submitted name, color and points. Fields that
// are not sent stay unchanged; an empty color also keeps the current one.
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("playerId")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	var upd model.PlayerUpdate
	if raw, ok := formField(r, "points"); ok {
		points, err := parsePoints(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		upd.Points = &points
	}
	if raw, ok := formField(r, "name"); ok {
		name, err := parseName(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		upd.Name = &name
	}
	if raw, ok := formField(r, "color"); ok {
		if color := strings.TrimSpace(raw); color != "" {
			upd.Color = &color
		}
	}

	player, err := h.players.Update(r.Context(), id, upd)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, "update player", err)
		return
	}
	if player == nil {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}

	h.broadcast(websocket.NewMessage(player.BoardID, "player", "updated", player.ID))
	h.renderPlayerList(w, r, player.BoardID)
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("playerId")

	player, err := h.players.GetByID(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "get player", err)
		return
	}
	if player == nil {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}

	err = h.players.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, "delete player", err)
		return
	}

	h.broadcast(websocket.NewMessage(player.BoardID, "player", "deleted", id))
	h.renderPlayerList(w, r, player.BoardID)
}
