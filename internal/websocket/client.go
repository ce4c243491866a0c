package websocket

import (
	"context"
	"errors"
	"log/slog"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	pingTimeout    = 10 * time.Second
)

// Client is one browser tab watching a board.
type Client struct {
	hub     *Hub
	conn    *ws.Conn
	boardID string
	send    chan []byte
	logger  *slog.Logger

	// evicted is set by the hub, under its lock, before send is closed
	// because the board no longer exists.
	evicted bool
}

func NewClient(hub *Hub, conn *ws.Conn, boardID string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		boardID: boardID,
		send:    make(chan []byte, sendBufferSize),
		logger:  hub.logger.With("board_id", boardID),
	}
}

// Run subscribes the client to its board and blocks until the connection
// ends, either from the browser side or because the board was deleted.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)
	c.readPump(ctx)
}

// readPump only watches for the close; browsers never send board updates
// over the socket.
func (c *Client) readPump(ctx context.Context) {
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			if status := ws.CloseStatus(err); status != -1 {
				c.logger.Debug("websocket closed", "status", status)
			} else if !errors.Is(err, context.Canceled) {
				c.logger.Debug("websocket read", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				if c.evicted {
					c.conn.Close(ws.StatusNormalClosure, "board deleted")
				}
				return
			}
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				c.logger.Debug("websocket write", "error", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				c.logger.Debug("websocket ping", "error", err)
				c.conn.Close(ws.StatusGoingAway, "ping timeout")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
