package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"
)

// BoardExists reports whether a board id is known.
type BoardExists func(r *http.Request, boardID string) (bool, error)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and subscribes them to the board named by the {boardId} path value.
func HandleWebSocket(hub *Hub, exists BoardExists, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardID := r.PathValue("boardId")
		ok, err := exists(r, boardID)
		if err != nil {
			logger.Error("lookup board", "board_id", boardID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // boards are shared by link from any origin
		})
		if err != nil {
			logger.Warn("accept websocket", "error", err)
			return
		}
		defer conn.CloseNow()

		client := NewClient(hub, conn, boardID)
		client.Run(r.Context())
	}
}
