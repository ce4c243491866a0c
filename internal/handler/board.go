package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/choreboard/internal/model"
)

type indexData struct {
	Title       string
	NotFound    bool
	BoardID     string
	PlayerSlots []int
}

func newIndexData() indexData {
	slots := make([]int, maxInitialPlayers)
	for i := range slots {
		slots[i] = i
	}
	return indexData{Title: "Chore Board", PlayerSlots: slots}
}

type boardData struct {
	Title      string
	Board      *model.Board
	PlayerList playerListData
	ChoreList  choreListData
	Activity   []model.ChoreCompletion
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "index-page", newIndexData())
}

// ShowBoard renders the board page. An unknown board gets the index page
// with a 404 status and nothing else is queried.
func (h *Handler) ShowBoard(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")

	board, err := h.boards.GetByID(r.Context(), boardID)
	if err != nil {
		h.serverError(w, r, "get board", err)
		return
	}
	if board == nil {
		data := newIndexData()
		data.NotFound = true
		data.BoardID = boardID
		h.renderer.Render(w, http.StatusNotFound, "index-page", data)
		return
	}

	playerList, err := h.loadPlayerList(r, board.ID)
	if err != nil {
		h.serverError(w, r, "load player list", err)
		return
	}
	activity, err := h.scores.ListRecent(r.Context(), board.ID, recentActivityLimit)
	if err != nil {
		h.serverError(w, r, "load activity", err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "board-page", boardData{
		Title:      "Chore Board",
		Board:      board,
		PlayerList: playerList,
		ChoreList:  choreListData{BoardID: board.ID, Chores: playerList.Chores},
		Activity:   activity,
	})
}

// CreateBoard makes a new board, seeded with the players named in the
// player0..player9 fields, and redirects to it.
func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	var names []string
	for i := 0; i < maxInitialPlayers; i++ {
		if name := strings.TrimSpace(r.FormValue(fmt.Sprintf("player%d", i))); name != "" {
			names = append(names, name)
		}
	}

	board, err := h.boards.Create(r.Context(), names...)
	if err != nil {
		h.serverError(w, r, "create board", err)
		return
	}
	h.logger.Info("board created", "board_id", board.ID, "players", len(names))

	http.Redirect(w, r, "/boards/"+board.ID, http.StatusSeeOther)
}

// PlayerList renders the player list fragment of a board.
func (h *Handler) PlayerList(w http.ResponseWriter, r *http.Request) {
	boardID, ok := h.requireBoard(w, r)
	if !ok {
		return
	}
	h.renderPlayerList(w, r, boardID)
}

// ChoreList renders the chore list fragment of a board.
func (h *Handler) ChoreList(w http.ResponseWriter, r *http.Request) {
	boardID, ok := h.requireBoard(w, r)
	if !ok {
		return
	}
	h.renderChoreList(w, r, boardID)
}

// Activity renders the recent completions fragment of a board.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	boardID, ok := h.requireBoard(w, r)
	if !ok {
		return
	}
	activity, err := h.scores.ListRecent(r.Context(), boardID, recentActivityLimit)
	if err != nil {
		h.serverError(w, r, "load activity", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "activity-list", activity)
}

// requireBoard resolves the {boardId} path value, answering 404 when the
// board does not exist.
func (h *Handler) requireBoard(w http.ResponseWriter, r *http.Request) (string, bool) {
	boardID := r.PathValue("boardId")
	ok, err := h.BoardExists(r, boardID)
	if err != nil {
		h.serverError(w, r, "get board", err)
		return "", false
	}
	if !ok {
		http.Error(w, "board not found", http.StatusNotFound)
		return "", false
	}
	return boardID, true
}

// BoardExists reports whether boardID names a stored board.
func (h *Handler) BoardExists(r *http.Request, boardID string) (bool, error) {
	board, err := h.boards.GetByID(r.Context(), boardID)
	if err != nil {
		return false, err
	}
	return board != nil, nil
}
