package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Inbound is every client → server message.
type Inbound struct {
	Type      string   `json:"type"` // "ready", "position", "position_error", "tap", "click", "day"
	RequestID string   `json:"request_id,omitempty"`
	ID        string   `json:"id,omitempty"`
	Day       int      `json:"day,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type Client struct {
	Conn    *websocket.Conn
	Session string
	Send    chan []byte

	// frames holds at most the latest map frame.
	frames chan []byte
	closed bool
	// mapReady is set once this connection's map has initialized.
	mapReady bool
}

func NewClient(conn *websocket.Conn, session string) *Client {
	return &Client{
		Conn:    conn,
		Session: session,
		Send:    make(chan []byte, sendBuffer),
		frames:  make(chan []byte, 1),
	}
}

// offerFrame replaces any undelivered map frame. Only the hub goroutine calls it.
func (c *Client) offerFrame(data []byte) {
	select {
	case <-c.frames:
	default:
	}
	c.frames <- data
}

func (c *Client) close() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	close(c.frames)
}

// WritePump owns all writes to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		var msg []byte
		var ok bool
		select {
		case msg, ok = <-c.Send:
		case msg, ok = <-c.frames:
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}
		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if !ok {
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// ReadPump decodes inbound messages until the connection drops. A non-nil
// frame returned by handle is sent back to this client only.
func (c *Client) ReadPump(h *Hub, handle func(Inbound) *Frame) {
	defer func() {
		h.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket closed", zap.String("session_id", c.Session), zap.Error(err))
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			h.log.Debug("invalid websocket payload", zap.String("session_id", c.Session), zap.Error(err))
			h.Reply(c, Frame{Type: "error", Data: "invalid payload"})
			continue
		}
		if reply := handle(in); reply != nil {
			h.Reply(c, *reply)
		}
	}
}
