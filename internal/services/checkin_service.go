package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

const checkInCodePrefix = "CHK"

// Locator is the geolocation capability. Implementations should honor ctx;
// the recorder also abandons a locator that outlives its timeout.
type Locator interface {
	Locate(ctx context.Context) (dm.LatLng, error)
}

type LocatorFunc func(ctx context.Context) (dm.LatLng, error)

func (f LocatorFunc) Locate(ctx context.Context) (dm.LatLng, error) { return f(ctx) }

// ReportedLocator serves coordinates the client already sent with the
// request. A nil position means the browser denied or lacked geolocation.
type ReportedLocator struct {
	Position *dm.LatLng
}

func (r ReportedLocator) Locate(ctx context.Context) (dm.LatLng, error) {
	if r.Position == nil {
		return dm.LatLng{}, utils.ErrLocationUnavailable
	}
	return *r.Position, nil
}

type CheckInConfig struct {
	GeoTimeout time.Duration
	Latency    time.Duration
	Fallback   dm.LatLng
}

// CheckInRecorder keeps one draft and the append-only list of submitted
// check-ins for a session.
type CheckInRecorder struct {
	mu       sync.Mutex
	cfg      CheckInConfig
	log      *zap.Logger
	draft    *dm.CheckInDraft
	draftGen uint64
	pending  bool
	records  []dm.CheckInRecord

	now   func() time.Time
	token func() string
}

func NewCheckInRecorder(cfg CheckInConfig, log *zap.Logger) *CheckInRecorder {
	if cfg.GeoTimeout <= 0 {
		cfg.GeoTimeout = 8 * time.Second
	}
	if cfg.Fallback == (dm.LatLng{}) {
		cfg.Fallback = DefaultMapCenter
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckInRecorder{
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		token: randomToken,
	}
}

func randomToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

// Prepare resolves the position and starts a fresh draft for point. A failed
// or slow locator degrades to the fallback coordinate.
func (r *CheckInRecorder) Prepare(ctx context.Context, point dm.ExperienceItem, loc Locator) dm.CheckInDraft {
	pos, fallback := r.locate(ctx, loc)

	label := point.Location
	if label == "" {
		label = point.Name
	}
	draft := dm.CheckInDraft{
		PointID:              point.ID,
		LocationLabel:        label,
		Position:             pos,
		UsedFallbackLocation: fallback,
		Notes:                "",
		Photos:               []dm.Photo{},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = &draft
	r.draftGen++
	return cloneDraft(draft)
}

func (r *CheckInRecorder) locate(ctx context.Context, loc Locator) (dm.LatLng, bool) {
	if loc == nil {
		return r.cfg.Fallback, true
	}
	lctx, cancel := context.WithTimeout(ctx, r.cfg.GeoTimeout)
	defer cancel()

	type result struct {
		pos dm.LatLng
		err error
	}
	done := make(chan result, 1)
	go func() {
		pos, err := loc.Locate(lctx)
		done <- result{pos, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			r.log.Info("geolocation unavailable, using default location", zap.Error(res.err))
			return r.cfg.Fallback, true
		}
		return res.pos, false
	case <-lctx.Done():
		r.log.Info("geolocation timed out, using default location", zap.Duration("timeout", r.cfg.GeoTimeout))
		return r.cfg.Fallback, true
	}
}

func (r *CheckInRecorder) SetNotes(notes string) (dm.CheckInDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return dm.CheckInDraft{}, utils.ErrNoDraft
	}
	r.draft.Notes = notes
	return cloneDraft(*r.draft), nil
}

// AttachPhotos appends; earlier photos keep their order.
func (r *CheckInRecorder) AttachPhotos(photos []dm.Photo) (dm.CheckInDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return dm.CheckInDraft{}, utils.ErrNoDraft
	}
	r.draft.Photos = append(r.draft.Photos, photos...)
	return cloneDraft(*r.draft), nil
}

func (r *CheckInRecorder) Draft() (dm.CheckInDraft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return dm.CheckInDraft{}, false
	}
	return cloneDraft(*r.draft), true
}

// Submit is rejected while another submission is in flight.
func (r *CheckInRecorder) Submit(ctx context.Context) (dm.CheckInRecord, error) {
	r.mu.Lock()
	if r.pending {
		r.mu.Unlock()
		return dm.CheckInRecord{}, utils.ErrSubmitPending
	}
	if r.draft == nil {
		r.mu.Unlock()
		return dm.CheckInRecord{}, utils.ErrNoDraft
	}
	snapshot := cloneDraft(*r.draft)
	gen := r.draftGen
	r.pending = true
	r.mu.Unlock()

	if r.cfg.Latency > 0 {
		timer := time.NewTimer(r.cfg.Latency)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			r.mu.Lock()
			r.pending = false
			r.mu.Unlock()
			return dm.CheckInRecord{}, ctx.Err()
		}
	}

	now := r.now()
	rec := dm.CheckInRecord{
		PointID:              snapshot.PointID,
		Timestamp:            now,
		LocationLabel:        snapshot.LocationLabel,
		Position:             snapshot.Position,
		UsedFallbackLocation: snapshot.UsedFallbackLocation,
		Notes:                snapshot.Notes,
		Photos:               snapshot.Photos,
		Code:                 checkInCodePrefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + r.token(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	// a draft prepared while this one was in flight survives
	if r.draftGen == gen {
		r.draft = nil
	}
	r.pending = false
	r.log.Info("check-in recorded", zap.String("code", rec.Code), zap.String("experience_id", rec.PointID))
	return cloneRecord(rec), nil
}

func (r *CheckInRecorder) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

func (r *CheckInRecorder) Records() []dm.CheckInRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dm.CheckInRecord, len(r.records))
	for i, rec := range r.records {
		out[i] = cloneRecord(rec)
	}
	return out
}

func (r *CheckInRecorder) Find(code string) (dm.CheckInRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Code == code {
			return cloneRecord(rec), nil
		}
	}
	return dm.CheckInRecord{}, utils.ErrCheckInNotFound
}

func cloneDraft(d dm.CheckInDraft) dm.CheckInDraft {
	d.Photos = append([]dm.Photo{}, d.Photos...)
	return d
}

func cloneRecord(rec dm.CheckInRecord) dm.CheckInRecord {
	rec.Photos = append([]dm.Photo{}, rec.Photos...)
	return rec
}
