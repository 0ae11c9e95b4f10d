package domain_models

type Marker struct {
	ID      string  `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Name    string  `json:"name,omitempty"`
}

type RouteLine struct {
	Points []LatLng `json:"points"`
	Color  string   `json:"color"`
	Dashed bool     `json:"dashed"`
}

// MapFrame is everything the client map needs to draw one day view.
type MapFrame struct {
	Seq            uint64    `json:"seq"`
	Day            int       `json:"day"`
	Center         LatLng    `json:"center"`
	Zoom           int       `json:"zoom"`
	Markers        []Marker  `json:"markers"`
	Route          RouteLine `json:"route"`
	CatalogMarkers []Marker  `json:"catalog_markers"`
	Skipped        []string  `json:"skipped,omitempty"`
}

type CheckInAction struct {
	Kind    string `json:"kind"`
	PointID string `json:"point_id"`
	Label   string `json:"label"`
}

// LocationDetail is opened when a marker is tapped.
type LocationDetail struct {
	Experience  ExperienceItem `json:"experience"`
	InItinerary bool           `json:"in_itinerary"`
	Schedule    *ItineraryItem `json:"schedule,omitempty"`
	Action      CheckInAction  `json:"action"`
}
