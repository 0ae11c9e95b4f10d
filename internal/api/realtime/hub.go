package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Frame is every server → client message.
type Frame struct {
	Type      string      `json:"type"` // "init", "map", "chat", "locate", "detail", "error"
	RequestID string      `json:"request_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type frameKind int

const (
	kindEvent frameKind = iota
	kindMap
	kindInit
)

type broadcastMsg struct {
	Session string
	Data    []byte
	Kind    frameKind
}

type directMsg struct {
	Client *Client
	Data   []byte
}

// Hub fans session frames out to every connected client of that session.
// Map frames are coalesced per client; a slow reader only ever sees the
// latest one. A client gets no map frame until it has sent ready itself.
type Hub struct {
	sessions map[string]map[*Client]bool
	latest   map[string][]byte
	initial  map[string][]byte
	mu       sync.Mutex

	register     chan *Client
	unregister   chan *Client
	ready        chan *Client
	broadcast    chan broadcastMsg
	direct       chan directMsg
	closeSession chan string
	stop         chan struct{}
	stopOnce     sync.Once

	locMu   sync.Mutex
	locates map[string]pendingLocate

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		sessions:     make(map[string]map[*Client]bool),
		latest:       make(map[string][]byte),
		initial:      make(map[string][]byte),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		ready:        make(chan *Client),
		broadcast:    make(chan broadcastMsg, 256),
		direct:       make(chan directMsg, 64),
		closeSession: make(chan string, 16),
		stop:         make(chan struct{}),
		locates:      make(map[string]pendingLocate),
		log:          log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for id, conns := range h.sessions {
				for c := range conns {
					c.close()
				}
				delete(h.sessions, id)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.sessions[c.Session] == nil {
				h.sessions[c.Session] = make(map[*Client]bool)
			}
			h.sessions[c.Session][c] = true
			if data := h.initial[c.Session]; data != nil {
				h.deliverEvent(c, data)
			}
			h.mu.Unlock()

		case c := <-h.ready:
			h.mu.Lock()
			if h.sessions[c.Session][c] && !c.mapReady {
				c.mapReady = true
				if data := h.latest[c.Session]; data != nil {
					c.offerFrame(data)
				}
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.sessions[c.Session]; conns != nil && conns[c] {
				delete(conns, c)
				c.close()
				if len(conns) == 0 {
					delete(h.sessions, c.Session)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			switch m.Kind {
			case kindInit:
				h.initial[m.Session] = m.Data
			case kindMap:
				h.latest[m.Session] = m.Data
			}
			for c := range h.sessions[m.Session] {
				if m.Kind == kindMap {
					if c.mapReady {
						c.offerFrame(m.Data)
					}
					continue
				}
				h.deliverEvent(c, m.Data)
			}
			h.mu.Unlock()

		case d := <-h.direct:
			h.mu.Lock()
			if h.sessions[d.Client.Session][d.Client] {
				h.deliverEvent(d.Client, d.Data)
			}
			h.mu.Unlock()

		case id := <-h.closeSession:
			h.mu.Lock()
			for c := range h.sessions[id] {
				c.close()
			}
			delete(h.sessions, id)
			delete(h.latest, id)
			delete(h.initial, id)
			h.mu.Unlock()
			h.cancelLocates(id)
		}
	}
}

// deliverEvent drops a client whose send buffer is full. Caller holds mu.
func (h *Hub) deliverEvent(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.log.Warn("websocket client too slow, disconnecting", zap.String("session_id", c.Session))
		c.close()
		if conns := h.sessions[c.Session]; conns != nil {
			delete(conns, c)
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Register adds c; it returns false once the hub is stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stop:
		return false
	}
}

// MarkReady opens the map gate for c and hands it the latest map frame.
func (h *Hub) MarkReady(c *Client) {
	select {
	case h.ready <- c:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}

// ClientCount reports how many clients are attached to session.
func (h *Hub) ClientCount(session string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[session])
}

func (h *Hub) publish(session string, kind frameKind, frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Error("marshal websocket frame", zap.String("type", frame.Type), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Session: session, Data: data, Kind: kind}:
	default:
		h.log.Warn("websocket broadcast queue full, frame dropped",
			zap.String("session_id", session), zap.String("type", frame.Type))
	}
}

// Reply sends frame to one client only.
func (h *Hub) Reply(c *Client, frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Error("marshal websocket frame", zap.String("type", frame.Type), zap.Error(err))
		return
	}
	select {
	case h.direct <- directMsg{Client: c, Data: data}:
	case <-h.stop:
	}
}

// Close disconnects every client of session and forgets its frames.
func (h *Hub) Close(session string) {
	select {
	case h.closeSession <- session:
	case <-h.stop:
	}
}
