package handler

import (
	"errors"
	"net/http"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
	"github.com/dukerupert/choreboard/internal/websocket"
)

func (h *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	name, err := parseName(r.FormValue("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	points, err := parsePoints(r.FormValue("points"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	boardID, ok := h.requireBoard(w, r)
	if !ok {
		return
	}

	chore, err := h.chores.Create(r.Context(), boardID, name, points)
	if err != nil {
		h.serverError(w, r, "create chore", err)
		return
	}

	h.broadcast(websocket.NewMessage(boardID, "chore", "created", chore.ID))
	h.renderChoreList(w, r, boardID)
}

// UpdateChore applies the submitted name and points; fields that are not
// sent stay unchanged.
func (h *Handler) UpdateChore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("choreId")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	var upd model.ChoreUpdate
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

	chore, err := h.chores.Update(r.Context(), id, upd)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, "update chore", err)
		return
	}
	if chore == nil {
		http.Error(w, "chore not found", http.StatusNotFound)
		return
	}

	h.broadcast(websocket.NewMessage(chore.BoardID, "chore", "updated", chore.ID))
	h.renderChoreList(w, r, chore.BoardID)
}

func (h *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("choreId")

	chore, err := h.chores.GetByID(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "get chore", err)
		return
	}
	if chore == nil {
		http.Error(w, "chore not found", http.StatusNotFound)
		return
	}

	err = h.chores.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "chore not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, "delete chore", err)
		return
	}

	h.broadcast(websocket.NewMessage(chore.BoardID, "chore", "deleted", id))
	h.renderChoreList(w, r, chore.BoardID)
}
