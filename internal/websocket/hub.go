package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Message is a change notification sent to every client watching a board.
type Message struct {
	Type    string `json:"type"`
	Entity  string `json:"entity"`
	Action  string `json:"action"`
	ID      string `json:"id,omitempty"`
	BoardID string `json:"board_id"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(boardID, entity, action, id string) Message {
	return Message{
		Type:    fmt.Sprintf("%s_%s", entity, action),
		Entity:  entity,
		Action:  action,
		ID:      id,
		BoardID: boardID,
	}
}

// Hub tracks connected clients grouped by board.
type Hub struct {
	mu     sync.RWMutex
	boards map[string]map[*Client]struct{}
	logger *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		boards: make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

// Register adds a client to its board.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.boards[c.boardID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.boards[c.boardID] = clients
	}
	clients[c] = struct{}{}
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.boards[c.boardID]
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.boards, c.boardID)
	}
}

// Broadcast sends a message to the clients of msg.BoardID.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.boards[msg.BoardID] {
		select {
		case c.send <- data:
		default:
			// slow client, drop
			h.logger.Debug("dropped message", "board_id", msg.BoardID, "type", msg.Type)
		}
	}
}

// CloseBoard disconnects every client of a deleted board.
func (h *Hub) CloseBoard(boardID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.boards[boardID] {
		c.evicted = true
		close(c.send)
	}
	delete(h.boards, boardID)
}

// ClientCount returns the number of clients watching the board.
func (h *Hub) ClientCount(boardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}
