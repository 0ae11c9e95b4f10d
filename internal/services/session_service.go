package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

// SessionChannel is the client link of one session: the map renderer, the
// chat feed and the browser's geolocation.
type SessionChannel interface {
	MapRenderer
	Locator
	PublishChat(msg dm.ChatMessage)
}

// NopChannel drops everything and has no geolocation.
type NopChannel struct{}

func (NopChannel) Initialize(dm.LatLng, int)  {}
func (NopChannel) Render(dm.MapFrame)         {}
func (NopChannel) PublishChat(dm.ChatMessage) {}
func (NopChannel) Locate(context.Context) (dm.LatLng, error) {
	return dm.LatLng{}, utils.ErrLocationUnavailable
}

type SessionDeps struct {
	Catalog   CatalogServiceInterface
	Generator SuggestionGenerator
	CheckIn   CheckInConfig
	Channel   SessionChannel
	Log       *zap.Logger
}

// CategoryView is what selecting a category shows: catalog results for an
// item category, the generated plan for the itinerary.
type CategoryView struct {
	State   dm.SelectionState   `json:"state"`
	Results []dm.ExperienceItem `json:"results"`
	Plan    []dm.DayRoute       `json:"plan,omitempty"`
}

type ConfirmResult struct {
	State     dm.SelectionState `json:"state"`
	Confirmed bool              `json:"confirmed"`
	Added     *dm.ItineraryItem `json:"added,omitempty"`
}

// PlannerSession owns every component of one planning session. Each
// operation holds mu for its whole run, so session events are applied one at
// a time.
type PlannerSession struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	catalog    CatalogServiceInterface
	generator  SuggestionGenerator
	channel    SessionChannel
	log        *zap.Logger
	store      *ItineraryStore
	workflow   *SelectionWorkflow
	mapSync    *MapSync
	checkins   *CheckInRecorder
	chat       *ChatShell
	suggestion []dm.DayRoute
	confirmed  map[int]dm.DayRoute
	dayView    int
}

func NewPlannerSession(id string, deps SessionDeps) *PlannerSession {
	if deps.Channel == nil {
		deps.Channel = NopChannel{}
	}
	if deps.Generator == nil {
		deps.Generator = NewTemplateSuggestionGenerator()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	log := deps.Log.With(zap.String("session_id", id))

	s := &PlannerSession{
		id:        id,
		createdAt: time.Now(),
		catalog:   deps.Catalog,
		generator: deps.Generator,
		channel:   deps.Channel,
		log:       log,
		store:     NewItineraryStore(deps.Catalog, log),
		workflow:  NewSelectionWorkflow(),
		mapSync:   NewMapSync(deps.Channel, log),
		checkins:  NewCheckInRecorder(deps.CheckIn, log),
		chat:      NewChatShell(nil),
		confirmed: make(map[int]dm.DayRoute),
		dayView:   1,
	}
	s.mu.Lock()
	s.narrateLocked(dm.RoleAssistant, "Welcome to Rome! Ask me for activities, dining, a relaxing spa or a full itinerary.")
	s.refreshLocked()
	s.mu.Unlock()
	return s
}

func (s *PlannerSession) ID() string { return s.id }

func (s *PlannerSession) Snapshot() dm.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := make([]int, 0, len(s.confirmed))
	for d := range s.confirmed {
		days = append(days, d)
	}
	sort.Ints(days)
	return dm.SessionSnapshot{
		ID:            s.id,
		CreatedAt:     s.createdAt,
		Selection:     s.workflow.State(),
		Itinerary:     s.store.List(),
		TotalCost:     s.store.TotalCost(),
		DayView:       s.dayView,
		Suggestion:    dm.CloneRoutes(s.suggestion),
		ConfirmedDays: days,
		CheckIns:      len(s.checkins.Records()),
		MapReady:      s.mapSync.Ready(),
	}
}

// ---------------- selection workflow ----------------

func (s *PlannerSession) SelectCategory(ctx context.Context, c dm.Category) (CategoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectCategoryLocked(ctx, c)
}

func (s *PlannerSession) selectCategoryLocked(ctx context.Context, c dm.Category) (CategoryView, error) {
	if err := s.workflow.SelectCategory(c); err != nil {
		return CategoryView{}, err
	}
	defer s.refreshLocked()

	if c == dm.CategoryItinerary {
		plan, err := s.generator.Generate(ctx)
		if err != nil {
			s.log.Error("suggestion generation failed", zap.String("generator", s.generator.Name()), zap.Error(err))
			s.narrateLocked(dm.RoleAssistant, "Sorry, I could not put a plan together right now. Please try again.")
			return CategoryView{State: s.workflow.State(), Results: []dm.ExperienceItem{}}, nil
		}
		s.suggestion = plan
		s.narrateLocked(dm.RoleAssistant, fmt.Sprintf(
			"Here is a %d-day plan for Rome. Add single activities or confirm a whole day.", len(plan)))
		return CategoryView{State: s.workflow.State(), Results: []dm.ExperienceItem{}, Plan: dm.CloneRoutes(plan)}, nil
	}

	results := s.catalog.ListByCategory(c)
	s.narrateLocked(dm.RoleAssistant, fmt.Sprintf(
		"Great choice! I found %d %s options. Pick a day and a time slot to schedule them.", len(results), c.Label()))
	return CategoryView{State: s.workflow.State(), Results: results}, nil
}

func (s *PlannerSession) SetDay(d dm.Day) (dm.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.workflow.SetDay(d); err != nil {
		return s.workflow.State(), err
	}
	return s.workflow.State(), nil
}

func (s *PlannerSession) SetTimeSlot(slot dm.TimeSlot) (dm.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.workflow.SetTimeSlot(slot); err != nil {
		return s.workflow.State(), err
	}
	return s.workflow.State(), nil
}

// Hold parks the experience until the selection is confirmed. While results
// are shown it is added right away with the confirmed placement.
func (s *PlannerSession) Hold(experienceID string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.Get(experienceID)
	if err != nil {
		return ConfirmResult{}, err
	}
	if sched, ok := s.workflow.ActiveSchedule(); ok {
		entry, _ := s.addLocked(item, sched)
		return ConfirmResult{State: s.workflow.State(), Confirmed: true, Added: &entry}, nil
	}
	if err := s.workflow.Hold(item); err != nil {
		return ConfirmResult{State: s.workflow.State()}, err
	}
	return ConfirmResult{State: s.workflow.State()}, nil
}

// ConfirmSelection reports Confirmed=false, with state untouched, unless both
// a day and a slot are chosen.
func (s *PlannerSession) ConfirmSelection() ConfirmResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	conf, ok := s.workflow.ConfirmSelection()
	if !ok {
		return ConfirmResult{State: s.workflow.State()}
	}
	res := ConfirmResult{State: s.workflow.State(), Confirmed: true}
	if conf.Pending != nil {
		entry, _ := s.addLocked(*conf.Pending, conf.Schedule)
		res.Added = &entry
	}
	return res
}

func (s *PlannerSession) ResetSelection() dm.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow.Reset()
	s.refreshLocked()
	return s.workflow.State()
}

// ---------------- itinerary ----------------

// AddExperience schedules experienceID. A nil sched uses the confirmed
// selection when results are shown, and no placement otherwise.
func (s *PlannerSession) AddExperience(experienceID string, sched *dm.Schedule) (dm.ItineraryItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.Get(experienceID)
	if err != nil {
		return dm.ItineraryItem{}, false, err
	}
	placement, _ := s.workflow.ActiveSchedule()
	if sched != nil {
		placement = *sched
	}
	entry, added := s.addLocked(item, placement)
	return entry, added, nil
}

func (s *PlannerSession) addLocked(item dm.ExperienceItem, sched dm.Schedule) (dm.ItineraryItem, bool) {
	entry, added := s.store.Add(item, sched)
	if added {
		s.narrateLocked(dm.RoleAssistant, fmt.Sprintf("Added %s to your itinerary%s.", item.Name, placementText(entry)))
		s.refreshLocked()
	}
	return entry, added
}

func placementText(it dm.ItineraryItem) string {
	switch {
	case !it.ScheduledDay.IsSet():
		return ""
	case it.ScheduledTime != "":
		return fmt.Sprintf(" (%s, %s)", it.ScheduledDay, it.ScheduledTime)
	case it.ScheduledTimeSlot != dm.SlotNone:
		return fmt.Sprintf(" (%s, %s)", it.ScheduledDay, it.ScheduledTimeSlot)
	default:
		return fmt.Sprintf(" (%s)", it.ScheduledDay)
	}
}

func (s *PlannerSession) RemoveExperience(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.store.Remove(id)
	if removed {
		s.refreshLocked()
	}
	return removed
}

func (s *PlannerSession) Itinerary() ([]dm.ItineraryItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List(), s.store.TotalCost()
}

// Book simulates a booking request; nothing leaves the process.
func (s *PlannerSession) Book(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store.Get(id)
	if !ok {
		return "", utils.ErrItineraryItemNotFound
	}
	msg := fmt.Sprintf("Booking request for %s sent. You will receive a confirmation shortly.", entry.Name)
	if entry.Booking != "" {
		msg = fmt.Sprintf("Booking request for %s sent via %s.", entry.Name, entry.Booking)
	}
	s.narrateLocked(dm.RoleAssistant, msg)
	return msg, nil
}

// ---------------- suggestions ----------------

// Suggestion returns the current plan, generating one on first use.
func (s *PlannerSession) Suggestion(ctx context.Context) ([]dm.DayRoute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureSuggestionLocked(ctx); err != nil {
		return nil, err
	}
	return dm.CloneRoutes(s.suggestion), nil
}

func (s *PlannerSession) ensureSuggestionLocked(ctx context.Context) error {
	if s.suggestion != nil {
		return nil
	}
	plan, err := s.generator.Generate(ctx)
	if err != nil {
		return err
	}
	s.suggestion = plan
	return nil
}

func (s *PlannerSession) suggestedDayLocked(day int) (dm.DayRoute, error) {
	for _, r := range s.suggestion {
		if r.Day == day {
			return r, nil
		}
	}
	return dm.DayRoute{}, fmt.Errorf("%w: day %d", utils.ErrSuggestionDayNotFound, day)
}

func (s *PlannerSession) AddSuggestedActivity(ctx context.Context, day int, activityID string) (dm.ItineraryItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSuggestionLocked(ctx); err != nil {
		return dm.ItineraryItem{}, false, err
	}
	route, err := s.suggestedDayLocked(day)
	if err != nil {
		return dm.ItineraryItem{}, false, err
	}
	act, ok := route.Activity(activityID)
	if !ok {
		return dm.ItineraryItem{}, false, fmt.Errorf("%w: %s on day %d", utils.ErrSuggestionActivity, activityID, day)
	}
	item, err := s.catalog.Get(act.ID)
	if err != nil {
		return dm.ItineraryItem{}, false, err
	}
	entry, added := s.addLocked(item, dm.Schedule{Day: dm.MustDay(day), Time: act.Time, Slot: slotForClock(act.Time)})
	return entry, added, nil
}

// ConfirmDay merges one suggested day and shows it on the map.
func (s *PlannerSession) ConfirmDay(ctx context.Context, day int) ([]dm.ItineraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSuggestionLocked(ctx); err != nil {
		return nil, err
	}
	route, err := s.suggestedDayLocked(day)
	if err != nil {
		return nil, err
	}
	added := s.confirmRouteLocked(route)
	s.dayView = day
	s.narrateLocked(dm.RoleAssistant, fmt.Sprintf("Day %d confirmed: %d new experiences added.", day, len(added)))
	s.refreshLocked()
	return added, nil
}

// ConfirmPlan merges every suggested day and returns how many entries were new.
func (s *PlannerSession) ConfirmPlan(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSuggestionLocked(ctx); err != nil {
		return 0, err
	}
	count := 0
	for _, route := range s.suggestion {
		count += len(s.confirmRouteLocked(route))
	}
	s.narrateLocked(dm.RoleAssistant, fmt.Sprintf("Your %d-day plan is confirmed: %d new experiences added.", len(s.suggestion), count))
	s.refreshLocked()
	return count, nil
}

func (s *PlannerSession) confirmRouteLocked(route dm.DayRoute) []dm.ItineraryItem {
	added := s.store.MergeDay(route)
	s.confirmed[route.Day] = route.Clone()
	return added
}

// ---------------- map ----------------

func (s *PlannerSession) SetDayView(day int) (dm.MapFrame, error) {
	if day < 1 {
		return dm.MapFrame{}, fmt.Errorf("%w: %d", utils.ErrInvalidDay, day)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayView = day
	return s.refreshLocked(), nil
}

func (s *PlannerSession) MapFrame() dm.MapFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if frame, ok := s.mapSync.Last(); ok {
		return frame
	}
	return s.refreshLocked()
}

// MapReady is the renderer's ready signal; queued frames flush now.
func (s *PlannerSession) MapReady() {
	s.mapSync.MarkReady()
}

func (s *PlannerSession) TapMarker(id string) (*dm.LocationDetail, error) {
	return s.HandleMapEvent(s.mapSync.Tap(id))
}

func (s *PlannerSession) ClickMap() (*dm.LocationDetail, error) {
	return s.HandleMapEvent(s.mapSync.Click())
}

// HandleMapEvent resolves a tapped marker to its detail view. Background
// clicks return nil.
func (s *PlannerSession) HandleMapEvent(ev MapEvent) (*dm.LocationDetail, error) {
	switch e := ev.(type) {
	case MarkerTapped:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.locationDetailLocked(e.ID)
	case MapClicked:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown map event %T", utils.ErrInvalidInput, ev)
	}
}

func (s *PlannerSession) locationDetailLocked(id string) (*dm.LocationDetail, error) {
	action := dm.CheckInAction{Kind: "check_in", PointID: id, Label: "Check in here"}
	if entry, ok := s.store.Get(id); ok {
		return &dm.LocationDetail{Experience: entry.ExperienceItem, InItinerary: true, Schedule: &entry, Action: action}, nil
	}
	item, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return &dm.LocationDetail{Experience: item, Action: action}, nil
}

func (s *PlannerSession) refreshLocked() dm.MapFrame {
	return s.mapSync.Sync(MapInput{
		Day:              s.dayView,
		Confirmed:        s.confirmed,
		Itinerary:        s.store.List(),
		SelectedCategory: s.workflow.State().SelectedCategory,
		Catalog:          s.catalog,
	})
}

// ---------------- check-in ----------------

// PrepareCheckIn starts a draft for pointID. A nil locator asks the browser
// over the session channel.
func (s *PlannerSession) PrepareCheckIn(ctx context.Context, pointID string, loc Locator) (dm.CheckInDraft, error) {
	s.mu.Lock()
	item, err := s.catalog.Get(pointID)
	if entry, ok := s.store.Get(pointID); ok {
		item, err = entry.ExperienceItem, nil
	}
	s.mu.Unlock()
	if err != nil {
		return dm.CheckInDraft{}, err
	}
	if loc == nil {
		loc = s.channel
	}
	return s.checkins.Prepare(ctx, item, loc), nil
}

func (s *PlannerSession) SetCheckInNotes(notes string) (dm.CheckInDraft, error) {
	return s.checkins.SetNotes(notes)
}

func (s *PlannerSession) AttachCheckInPhotos(photos []dm.Photo) (dm.CheckInDraft, error) {
	return s.checkins.AttachPhotos(photos)
}

func (s *PlannerSession) CheckInDraft() (dm.CheckInDraft, bool) {
	return s.checkins.Draft()
}

// SubmitCheckIn runs without the session lock; the recorder rejects a second
// submit while the first is in flight.
func (s *PlannerSession) SubmitCheckIn(ctx context.Context) (dm.CheckInRecord, error) {
	rec, err := s.checkins.Submit(ctx)
	if err != nil {
		return dm.CheckInRecord{}, err
	}
	s.mu.Lock()
	s.narrateLocked(dm.RoleAssistant, fmt.Sprintf("Checked in at %s. Your code is %s.", rec.LocationLabel, rec.Code))
	s.mu.Unlock()
	return rec, nil
}

func (s *PlannerSession) CheckIns() []dm.CheckInRecord {
	return s.checkins.Records()
}

func (s *PlannerSession) CheckIn(code string) (dm.CheckInRecord, error) {
	return s.checkins.Find(code)
}

// ---------------- chat ----------------

// PostUserMessage appends text, applies the first matching rule and returns
// every message appended by this call.
func (s *PlannerSession) PostUserMessage(ctx context.Context, text string) ([]dm.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.chat.Len()
	s.narrateLocked(dm.RoleUser, text)
	intent, ok := s.chat.Interpret(text)
	if !ok {
		s.narrateLocked(dm.RoleAssistant, s.chat.Fallback())
		return s.chat.Messages()[start:], nil
	}
	s.log.Debug("chat rule matched", zap.String("rule", intent.Rule), zap.String("category", string(intent.Category)))
	if _, err := s.selectCategoryLocked(ctx, intent.Category); err != nil {
		return s.chat.Messages()[start:], err
	}
	return s.chat.Messages()[start:], nil
}

func (s *PlannerSession) ChatLog() []dm.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Messages()
}

func (s *PlannerSession) narrateLocked(role dm.ChatRole, content string) {
	s.channel.PublishChat(s.chat.Append(role, content))
}
