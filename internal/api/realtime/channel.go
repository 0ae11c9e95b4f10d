package realtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type locateResult struct {
	pos dm.LatLng
	err error
}

type pendingLocate struct {
	session string
	done    chan locateResult
}

type initPayload struct {
	Center dm.LatLng `json:"center"`
	Zoom   int       `json:"zoom"`
}

type locatePayload struct {
	EnableHighAccuracy bool  `json:"enable_high_accuracy"`
	TimeoutMillis      int64 `json:"timeout_ms,omitempty"`
}

// sessionChannel is one session's view of the hub.
type sessionChannel struct {
	hub     *Hub
	session string
}

// Channel implements services.ChannelProvider.
func (h *Hub) Channel(session string) services.SessionChannel {
	return &sessionChannel{hub: h, session: session}
}

func (c *sessionChannel) Initialize(center dm.LatLng, zoom int) {
	c.hub.publish(c.session, kindInit, Frame{Type: "init", Data: initPayload{Center: center, Zoom: zoom}})
}

func (c *sessionChannel) Render(frame dm.MapFrame) {
	c.hub.publish(c.session, kindMap, Frame{Type: "map", Data: frame})
}

func (c *sessionChannel) PublishChat(msg dm.ChatMessage) {
	c.hub.publish(c.session, kindEvent, Frame{Type: "chat", Data: msg})
}

// Locate asks a connected browser for its position and waits for the
// matching position or position_error reply.
func (c *sessionChannel) Locate(ctx context.Context) (dm.LatLng, error) {
	if c.hub.ClientCount(c.session) == 0 {
		return dm.LatLng{}, fmt.Errorf("%w: no client connected", utils.ErrLocationUnavailable)
	}

	reqID := uuid.NewString()
	done := make(chan locateResult, 1)
	c.hub.locMu.Lock()
	c.hub.locates[reqID] = pendingLocate{session: c.session, done: done}
	c.hub.locMu.Unlock()
	defer func() {
		c.hub.locMu.Lock()
		delete(c.hub.locates, reqID)
		c.hub.locMu.Unlock()
	}()

	payload := locatePayload{EnableHighAccuracy: true}
	if deadline, ok := ctx.Deadline(); ok {
		payload.TimeoutMillis = time.Until(deadline).Milliseconds()
	}
	c.hub.publish(c.session, kindEvent, Frame{Type: "locate", RequestID: reqID, Data: payload})

	select {
	case res := <-done:
		return res.pos, res.err
	case <-ctx.Done():
		return dm.LatLng{}, ctx.Err()
	}
}

// ResolveLocation completes a pending Locate. Replies for unknown requests or
// from another session are ignored.
func (h *Hub) ResolveLocation(session string, in Inbound) bool {
	h.locMu.Lock()
	p, ok := h.locates[in.RequestID]
	if ok && p.session == session {
		delete(h.locates, in.RequestID)
	}
	h.locMu.Unlock()
	if !ok || p.session != session {
		h.log.Debug("stray position reply", zap.String("session_id", session), zap.String("request_id", in.RequestID))
		return false
	}

	var res locateResult
	switch {
	case in.Type == "position_error":
		res.err = fmt.Errorf("%w: %s", utils.ErrLocationUnavailable, in.Error)
	case in.Lat == nil || in.Lng == nil:
		res.err = fmt.Errorf("%w: incomplete position", utils.ErrLocationUnavailable)
	default:
		res.pos = dm.LatLng{Lat: *in.Lat, Lng: *in.Lng}
	}
	p.done <- res
	return true
}

var errSessionClosed = errors.New("session closed")

func (h *Hub) cancelLocates(session string) {
	h.locMu.Lock()
	defer h.locMu.Unlock()
	for id, p := range h.locates {
		if p.session != session {
			continue
		}
		p.done <- locateResult{err: errSessionClosed}
		delete(h.locates, id)
	}
}
