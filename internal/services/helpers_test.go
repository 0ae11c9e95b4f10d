package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
)

func testLogger() *zap.Logger { return zap.NewNop() }

// recordingChannel captures everything a session sends to its client.
type recordingChannel struct {
	mu       sync.Mutex
	inits    int
	frames   []dm.MapFrame
	messages []dm.ChatMessage
	locate   func(ctx context.Context) (dm.LatLng, error)
}

func (r *recordingChannel) Initialize(dm.LatLng, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits++
}

func (r *recordingChannel) Render(frame dm.MapFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *recordingChannel) PublishChat(msg dm.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingChannel) Locate(ctx context.Context) (dm.LatLng, error) {
	if r.locate == nil {
		return NopChannel{}.Locate(ctx)
	}
	return r.locate(ctx)
}

func (r *recordingChannel) Frames() []dm.MapFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dm.MapFrame(nil), r.frames...)
}

func (r *recordingChannel) Messages() []dm.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dm.ChatMessage(nil), r.messages...)
}

func newTestSession(ch SessionChannel) *PlannerSession {
	return NewPlannerSession("test", SessionDeps{
		Catalog: NewBuiltinCatalogService(),
		Channel: ch,
		Log:     testLogger(),
	})
}

func scheduleOn(day int, slot dm.TimeSlot) dm.Schedule {
	return dm.Schedule{Day: dm.MustDay(day), Slot: slot}
}
