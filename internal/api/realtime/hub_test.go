package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

type testFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %s", what)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func decode(t *testing.T, raw []byte) testFrame {
	t.Helper()
	var f testFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

// serveSession mirrors the realtime controller without a planner session.
func serveSession(h *Hub, session string) *httptest.Server {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(conn, session)
		if !h.Register(c) {
			conn.Close()
			return
		}
		go c.WritePump()
		c.ReadPump(h, func(in Inbound) *Frame {
			switch in.Type {
			case "ready":
				h.MarkReady(c)
				return &Frame{Type: "echo", Data: in.Type}
			case "position", "position_error":
				h.ResolveLocation(session, in)
				return nil
			default:
				return &Frame{Type: "echo", Data: in.Type}
			}
		})
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) testFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f testFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestHubCoalescesMapFrames(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	client := NewClient(nil, "s1")
	if !hub.Register(client) {
		t.Fatal("register failed")
	}
	hub.MarkReady(client)
	ch := hub.Channel("s1")
	for seq := uint64(1); seq <= 3; seq++ {
		ch.Render(dm.MapFrame{Seq: seq, Day: 1})
	}
	ch.PublishChat(dm.ChatMessage{Role: dm.RoleAssistant, Content: "hello test"})

	select {
	case got := <-client.Send:
		if f := decode(t, got); f.Type != "chat" {
			t.Fatalf("expected chat frame, got %s", f.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for chat frame")
	}

	select {
	case got := <-client.frames:
		var frame dm.MapFrame
		json.Unmarshal(decode(t, got).Data, &frame)
		if frame.Seq != 3 {
			t.Fatalf("expected only the latest map frame, got seq %d", frame.Seq)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for map frame")
	}
	select {
	case extra := <-client.frames:
		t.Fatalf("stale map frame delivered: %s", extra)
	default:
	}
}

func TestHubReplaysStateOnConnect(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	ch := hub.Channel("s1")
	ch.Initialize(dm.LatLng{Lat: 41.89, Lng: 12.49}, 14)
	ch.Render(dm.MapFrame{Seq: 7, Day: 2})
	waitFor(t, "latest frame", func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return hub.latest["s1"] != nil && hub.initial["s1"] != nil
	})

	srv := serveSession(hub, "s1")
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	if f := readFrame(t, conn); f.Type != "init" {
		t.Fatalf("expected init before ready, got %s", f.Type)
	}

	if err := conn.WriteJSON(Inbound{Type: "ready"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		seen[readFrame(t, conn).Type] = true
	}
	if !seen["map"] || !seen["echo"] {
		t.Fatalf("expected map replay and echo after ready, got %v", seen)
	}
}

func TestHubGatesMapFramesPerClient(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	ch := hub.Channel("s1")
	ch.Initialize(dm.LatLng{Lat: 41.89, Lng: 12.49}, 14)

	first := NewClient(nil, "s1")
	hub.Register(first)
	expectInit(t, first)
	hub.MarkReady(first)
	ch.Render(dm.MapFrame{Seq: 1, Day: 1})
	if seq := expectMap(t, first); seq != 1 {
		t.Fatalf("expected seq 1, got %d", seq)
	}

	// a second tab joins after the session's map is already live
	second := NewClient(nil, "s1")
	hub.Register(second)
	expectInit(t, second)
	ch.Render(dm.MapFrame{Seq: 2, Day: 1})
	if seq := expectMap(t, first); seq != 2 {
		t.Fatalf("expected seq 2, got %d", seq)
	}
	select {
	case got := <-second.frames:
		t.Fatalf("map frame delivered before ready: %s", got)
	default:
	}

	hub.MarkReady(second)
	if seq := expectMap(t, second); seq != 2 {
		t.Fatalf("expected latest frame on ready, got seq %d", seq)
	}
}

func expectInit(t *testing.T, c *Client) {
	t.Helper()
	select {
	case got := <-c.Send:
		if f := decode(t, got); f.Type != "init" {
			t.Fatalf("expected init frame, got %s", f.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for init frame")
	}
}

func expectMap(t *testing.T, c *Client) uint64 {
	t.Helper()
	select {
	case got := <-c.frames:
		var frame dm.MapFrame
		if err := json.Unmarshal(decode(t, got).Data, &frame); err != nil {
			t.Fatalf("decode map frame: %v", err)
		}
		return frame.Seq
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for map frame")
	}
	return 0
}

func TestLocateRoundTrip(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	srv := serveSession(hub, "s1")
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()
	waitFor(t, "client registration", func() bool { return hub.ClientCount("s1") == 1 })

	type result struct {
		pos dm.LatLng
		err error
	}
	done := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		pos, err := hub.Channel("s1").Locate(ctx)
		done <- result{pos, err}
	}()

	req := readFrame(t, conn)
	if req.Type != "locate" || req.RequestID == "" {
		t.Fatalf("expected locate request, got %+v", req)
	}
	lat, lng := 41.9009, 12.4833
	if err := conn.WriteJSON(Inbound{Type: "position", RequestID: req.RequestID, Lat: &lat, Lng: &lng}); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case res := <-done:
		if res.err != nil || res.pos != (dm.LatLng{Lat: lat, Lng: lng}) {
			t.Fatalf("unexpected locate result %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for locate")
	}
}

func TestLocatePositionError(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	srv := serveSession(hub, "s1")
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()
	waitFor(t, "client registration", func() bool { return hub.ClientCount("s1") == 1 })

	done := make(chan error, 1)
	go func() {
		_, err := hub.Channel("s1").Locate(context.Background())
		done <- err
	}()

	req := readFrame(t, conn)
	conn.WriteJSON(Inbound{Type: "position_error", RequestID: req.RequestID, Error: "User denied Geolocation"})

	select {
	case err := <-done:
		if !errors.Is(err, utils.ErrLocationUnavailable) {
			t.Fatalf("expected ErrLocationUnavailable, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for locate")
	}
}

func TestLocateWithoutClient(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	if _, err := hub.Channel("s1").Locate(context.Background()); !errors.Is(err, utils.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestResolveLocationIgnoresOtherSessions(t *testing.T) {
	hub := NewHub(nil)
	done := make(chan locateResult, 1)
	hub.locates["req"] = pendingLocate{session: "s1", done: done}

	lat, lng := 1.0, 2.0
	if hub.ResolveLocation("s2", Inbound{Type: "position", RequestID: "req", Lat: &lat, Lng: &lng}) {
		t.Fatal("reply from another session accepted")
	}
	if hub.ResolveLocation("s1", Inbound{Type: "position", RequestID: "other"}) {
		t.Fatal("unknown request accepted")
	}
	if !hub.ResolveLocation("s1", Inbound{Type: "position", RequestID: "req", Lat: &lat, Lng: &lng}) {
		t.Fatal("matching reply rejected")
	}
	if res := <-done; res.err != nil || res.pos.Lat != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCloseSessionCancelsLocate(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	client := NewClient(nil, "s1")
	hub.Register(client)
	waitFor(t, "client registration", func() bool { return hub.ClientCount("s1") == 1 })

	done := make(chan error, 1)
	go func() {
		_, err := hub.Channel("s1").Locate(context.Background())
		done <- err
	}()
	waitFor(t, "pending locate", func() bool {
		hub.locMu.Lock()
		defer hub.locMu.Unlock()
		return len(hub.locates) == 1
	})

	hub.Close("s1")
	select {
	case err := <-done:
		if !errors.Is(err, errSessionClosed) {
			t.Fatalf("expected errSessionClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("locate not cancelled")
	}
	if hub.ClientCount("s1") != 0 {
		t.Fatal("client still attached after close")
	}
	for range client.Send {
	}
}
