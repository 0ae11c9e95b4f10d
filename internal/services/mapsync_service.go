package services

import (
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
)

// DayPalette colors routes by day number, cycling past the last entry.
var DayPalette = []string{"#e11d48", "#2563eb", "#16a34a", "#d97706", "#7c3aed"}

const (
	reducedOpacity = 0.35
	defaultZoom    = 14
)

// DefaultMapCenter is the Colosseum; also the check-in fallback coordinate.
var DefaultMapCenter = dm.LatLng{Lat: 41.8902, Lng: 12.4922}

func DayColor(day int) string {
	if day < 1 {
		day = 1
	}
	return DayPalette[(day-1)%len(DayPalette)]
}

// MapRenderer is the client-side map capability. Render must not be called
// before the owner has seen the ready signal; MapSync enforces that.
type MapRenderer interface {
	Initialize(center dm.LatLng, zoom int)
	Render(frame dm.MapFrame)
}

// MapEvent is what the map layer emits for the owning session to handle.
type MapEvent interface{ mapEvent() }

type MarkerTapped struct{ ID string }

// MapClicked is a tap on the map background. Sessions ignore it.
type MapClicked struct{}

func (MarkerTapped) mapEvent() {}
func (MapClicked) mapEvent()   {}

// MapInput is the read-only view a frame is computed from.
type MapInput struct {
	Day              int
	Confirmed        map[int]dm.DayRoute
	Itinerary        []dm.ItineraryItem
	SelectedCategory dm.Category
	Catalog          CatalogServiceInterface
}

// ComputeFrame is pure: it reads the input and never mutates it.
func ComputeFrame(in MapInput) dm.MapFrame {
	day := in.Day
	if day < 1 {
		day = 1
	}
	color := DayColor(day)
	frame := dm.MapFrame{
		Day:            day,
		Center:         DefaultMapCenter,
		Zoom:           defaultZoom,
		Markers:        []dm.Marker{},
		Route:          dm.RouteLine{Points: []dm.LatLng{}, Color: color},
		CatalogMarkers: []dm.Marker{},
	}

	for i, p := range routePoints(in, day) {
		pos, ok := p.position()
		if !ok {
			frame.Skipped = append(frame.Skipped, p.id)
			continue
		}
		frame.Markers = append(frame.Markers, dm.Marker{
			ID:      p.id,
			Lat:     pos.Lat,
			Lng:     pos.Lng,
			Label:   strconv.Itoa(i + 1),
			Color:   color,
			Opacity: 1,
			Name:    p.name,
		})
		frame.Route.Points = append(frame.Route.Points, pos)
	}
	if len(frame.Route.Points) > 1 {
		frame.Route.Dashed = true
	} else {
		frame.Route.Points = []dm.LatLng{}
	}
	if len(frame.Markers) > 0 {
		frame.Center = centroid(frame.Route.Points, frame.Markers)
	}

	if in.Catalog != nil {
		frame.CatalogMarkers = catalogMarkers(in.Catalog.All(), in.SelectedCategory)
	}
	return frame
}

type routePoint struct {
	id   string
	name string
	item *dm.ExperienceItem
}

func (p routePoint) position() (dm.LatLng, bool) {
	if p.item == nil {
		return dm.LatLng{}, false
	}
	return p.item.Position()
}

// routePoints prefers the confirmed route for day and falls back to the
// itinerary entries scheduled on it.
func routePoints(in MapInput, day int) []routePoint {
	if route, ok := in.Confirmed[day]; ok {
		route = route.Clone()
		route.SortActivities()
		points := make([]routePoint, 0, len(route.Activities))
		for _, act := range route.Activities {
			p := routePoint{id: act.ID, name: act.Label}
			if in.Catalog != nil {
				if item, err := in.Catalog.Get(act.ID); err == nil {
					p.item = &item
				}
			}
			points = append(points, p)
		}
		return points
	}

	scheduled := make([]dm.ItineraryItem, 0, len(in.Itinerary))
	for _, it := range in.Itinerary {
		if it.ScheduledDay.Covers(day) {
			scheduled = append(scheduled, it)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].ScheduledTimeSlot.Rank() < scheduled[j].ScheduledTimeSlot.Rank()
	})
	points := make([]routePoint, 0, len(scheduled))
	for i := range scheduled {
		item := scheduled[i].ExperienceItem
		points = append(points, routePoint{id: item.ID, name: item.Name, item: &item})
	}
	return points
}

func catalogMarkers(items []dm.ExperienceItem, selected dm.Category) []dm.Marker {
	filtered := selected.IsCatalog()
	out := make([]dm.Marker, 0, len(items))
	for _, it := range items {
		pos, ok := it.Position()
		if !ok {
			continue
		}
		opacity := 1.0
		if filtered {
			switch {
			case it.Category == dm.CategoryNone:
				continue
			case it.Category != selected:
				opacity = reducedOpacity
			}
		}
		out = append(out, dm.Marker{
			ID:      it.ID,
			Lat:     pos.Lat,
			Lng:     pos.Lng,
			Color:   it.MarkerColor(),
			Opacity: opacity,
			Name:    it.Name,
		})
	}
	return out
}

func centroid(points []dm.LatLng, markers []dm.Marker) dm.LatLng {
	if len(points) == 0 {
		return dm.LatLng{Lat: markers[0].Lat, Lng: markers[0].Lng}
	}
	var c dm.LatLng
	for _, p := range points {
		c.Lat += p.Lat
		c.Lng += p.Lng
	}
	n := float64(len(points))
	return dm.LatLng{Lat: c.Lat / n, Lng: c.Lng / n}
}

// MapSync gates frames behind the renderer's ready signal. Frames produced
// before ready collapse into the latest one.
type MapSync struct {
	mu       sync.Mutex
	renderer MapRenderer
	log      *zap.Logger
	ready    bool
	pending  *dm.MapFrame
	last     *dm.MapFrame
	seq      uint64
}

func NewMapSync(renderer MapRenderer, log *zap.Logger) *MapSync {
	if log == nil {
		log = zap.NewNop()
	}
	renderer.Initialize(DefaultMapCenter, defaultZoom)
	return &MapSync{renderer: renderer, log: log}
}

// Sync recomputes the frame for in and publishes or queues it.
func (m *MapSync) Sync(in MapInput) dm.MapFrame {
	frame := ComputeFrame(in)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	frame.Seq = m.seq
	m.last = &frame
	if len(frame.Skipped) > 0 {
		m.log.Debug("route points without coordinates",
			zap.Int("day", frame.Day), zap.Strings("experience_ids", frame.Skipped))
	}
	if !m.ready {
		m.pending = &frame
		return frame
	}
	m.renderer.Render(frame)
	return frame
}

// MarkReady opens the gate and flushes the queued frame, if any.
func (m *MapSync) MarkReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready {
		return
	}
	m.ready = true
	if m.pending != nil {
		m.renderer.Render(*m.pending)
		m.pending = nil
	}
}

func (m *MapSync) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Last is the most recent frame, published or not.
func (m *MapSync) Last() (dm.MapFrame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return dm.MapFrame{}, false
	}
	return *m.last, true
}

func (m *MapSync) Tap(id string) MapEvent { return MarkerTapped{ID: id} }

func (m *MapSync) Click() MapEvent { return MapClicked{} }
