package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
	"github.com/dukerupert/choreboard/internal/websocket"
)

// recentActivityLimit caps the completions shown on a board.
const recentActivityLimit = 10

// maxInitialPlayers is the number of player name fields on the new board form.
const maxInitialPlayers = 10

// maxPoints bounds a submitted point value in either direction.
const maxPoints = 1_000_000_000

var integerRegexp = regexp.MustCompile(`^\s*-?\d+\s*$`)

var (
	errInvalidPoints    = errors.New("points must be a whole number")
	errPointsOutOfRange = fmt.Errorf("points must be between %d and %d", -maxPoints, maxPoints)
	errEmptyName        = errors.New("name must not be empty")
)

// Handler serves the board pages and the player, chore and do-chore
// fragments. Every route works inside the namespace of one board.
type Handler struct {
	boards   *store.BoardStore
	players  *store.PlayerStore
	chores   *store.ChoreStore
	scores   *store.ScoreStore
	renderer *Renderer
	hub      *websocket.Hub
	logger   *slog.Logger
}

func New(bs *store.BoardStore, ps *store.PlayerStore, cs *store.ChoreStore, ss *store.ScoreStore, rd *Renderer, hub *websocket.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		boards:   bs,
		players:  ps,
		chores:   cs,
		scores:   ss,
		renderer: rd,
		hub:      hub,
		logger:   logger,
	}
}

func (h *Handler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// serverError logs err and answers with a generic 500.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// parsePoints accepts an optionally negative integer with surrounding
// whitespace, no larger than maxPoints in magnitude.
func parsePoints(raw string) (int, error) {
	if !integerRegexp.MatchString(raw) {
		return 0, errInvalidPoints
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return 0, errPointsOutOfRange
	}
	if err != nil {
		return 0, errInvalidPoints
	}
	if n < -maxPoints || n > maxPoints {
		return 0, errPointsOutOfRange
	}
	return n, nil
}

// parseName trims the name and rejects it when nothing is left.
func parseName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errEmptyName
	}
	return name, nil
}

// formField returns a submitted form value and whether the field was sent at all.
func formField(r *http.Request, key string) (string, bool) {
	vals, ok := r.Form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

type playerListData struct {
	BoardID string
	Players []model.Player
	Chores  []model.Chore
}

type choreListData struct {
	BoardID string
	Chores  []model.Chore
}

func (h *Handler) loadPlayerList(r *http.Request, boardID string) (playerListData, error) {
	players, err := h.players.ListByBoard(r.Context(), boardID)
	if err != nil {
		return playerListData{}, err
	}
	chores, err := h.chores.ListByBoard(r.Context(), boardID)
	if err != nil {
		return playerListData{}, err
	}
	return playerListData{BoardID: boardID, Players: players, Chores: chores}, nil
}

func (h *Handler) renderPlayerList(w http.ResponseWriter, r *http.Request, boardID string) {
	data, err := h.loadPlayerList(r, boardID)
	if err != nil {
		h.serverError(w, r, "load player list", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "player-list", data)
}

func (h *Handler) renderChoreList(w http.ResponseWriter, r *http.Request, boardID string) {
	chores, err := h.chores.ListByBoard(r.Context(), boardID)
	if err != nil {
		h.serverError(w, r, "load chore list", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "chore-list", choreListData{BoardID: boardID, Chores: chores})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
