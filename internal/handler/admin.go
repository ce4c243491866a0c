package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/store"
	"github.com/dukerupert/choreboard/internal/websocket"
)

// AdminHandler exposes board maintenance behind the admin credentials.
type AdminHandler struct {
	boards *store.BoardStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewAdminHandler(bs *store.BoardStore, hub *websocket.Hub, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{boards: bs, hub: hub, logger: logger}
}

func (h *AdminHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.List(r.Context())
	if err != nil {
		h.logger.Error("list boards", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list boards"})
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

// DeleteBoard removes a board and everything on it, and disconnects the
// browsers still watching it.
func (h *AdminHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")

	err := h.boards.Delete(r.Context(), boardID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "board not found"})
		return
	}
	if err != nil {
		h.logger.Error("delete board", "board_id", boardID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete board"})
		return
	}

	if h.hub != nil {
		h.hub.CloseBoard(boardID)
	}
	h.logger.Info("board deleted", "board_id", boardID)
	w.WriteHeader(http.StatusNoContent)
}
