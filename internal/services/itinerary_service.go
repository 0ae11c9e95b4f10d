package services

import (
	"sync"

	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

// ItineraryStore holds the scheduled items of one planning session.
// At most one entry exists per experience id.
type ItineraryStore struct {
	mu      sync.RWMutex
	catalog CatalogServiceInterface
	log     *zap.Logger
	items   []dm.ItineraryItem
	index   map[string]int
}

func NewItineraryStore(catalog CatalogServiceInterface, log *zap.Logger) *ItineraryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItineraryStore{
		catalog: catalog,
		log:     log,
		index:   make(map[string]int),
	}
}

// Add schedules item. When the id is already present the existing entry is
// returned unchanged and added is false.
func (s *ItineraryStore) Add(item dm.ExperienceItem, sched dm.Schedule) (entry dm.ItineraryItem, added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(item, sched)
}

func (s *ItineraryStore) addLocked(item dm.ExperienceItem, sched dm.Schedule) (dm.ItineraryItem, bool) {
	if idx, ok := s.index[item.ID]; ok {
		return s.items[idx], false
	}
	entry := dm.ItineraryItem{
		ExperienceItem:    item.Clone(),
		ScheduledDay:      sched.Day,
		ScheduledTime:     sched.Time,
		ScheduledTimeSlot: sched.Slot,
	}
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, entry)
	return entry, true
}

// Remove drops id if present. Absent ids are ignored.
func (s *ItineraryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.index, id)
	for i := idx; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}
	return true
}

// List returns entries in insertion order.
func (s *ItineraryStore) List() []dm.ItineraryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dm.ItineraryItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ItineraryStore) Get(id string) (dm.ItineraryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return dm.ItineraryItem{}, false
	}
	return s.items[idx], true
}

func (s *ItineraryStore) Contains(id string) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *ItineraryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *ItineraryStore) TotalCost() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, it := range s.items {
		total += it.Price
	}
	return total
}

// MergeDay adds every resolvable activity of route on route.Day and returns
// only the entries that were new. Unknown activity ids are skipped.
func (s *ItineraryStore) MergeDay(route dm.DayRoute) []dm.ItineraryItem {
	day, err := dm.DayNumber(route.Day)
	if err != nil {
		s.log.Warn("merge skipped: route has no valid day", zap.Int("day", route.Day))
		return []dm.ItineraryItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]dm.ItineraryItem, 0, len(route.Activities))
	for _, act := range route.Activities {
		item, err := s.catalog.Get(act.ID)
		if err != nil {
			s.log.Debug("merge skipped unresolvable activity",
				zap.Int("day", route.Day), zap.String("experience_id", act.ID))
			continue
		}
		entry, isNew := s.addLocked(item, dm.Schedule{Day: day, Time: act.Time, Slot: slotForClock(act.Time)})
		if isNew {
			added = append(added, entry)
		}
	}
	return added
}

// slotForClock buckets a display time into a slot; unparseable times have none.
func slotForClock(clock string) dm.TimeSlot {
	m, ok := utils.ClockMinutes(clock)
	if !ok {
		return dm.SlotNone
	}
	switch {
	case m < 12*60:
		return dm.SlotMorning
	case m < 18*60:
		return dm.SlotAfternoon
	default:
		return dm.SlotEvening
	}
}
