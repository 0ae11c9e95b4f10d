package domain_models

import (
	"fmt"
	"strings"

	"wayfarer/pkg/utils"
)

type ExperienceInfo struct {
	Highlights []string `json:"highlights,omitempty"`
	BestTime   string   `json:"best_time,omitempty"`
	Tips       []string `json:"tips,omitempty"`
	Nearby     []string `json:"nearby,omitempty"`
}

// ExperienceItem is one bookable catalog offering.
type ExperienceItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Price         float64         `json:"price"`
	DurationLabel string          `json:"duration"`
	Rating        float64         `json:"rating"`
	Tags          []string        `json:"tags"`
	Color         string          `json:"color,omitempty"`
	X             *float64        `json:"x,omitempty"`
	Y             *float64        `json:"y,omitempty"`
	Lat           *float64        `json:"lat,omitempty"`
	Lng           *float64        `json:"lng,omitempty"`
	Website       string          `json:"website,omitempty"`
	Booking       string          `json:"booking,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Info          *ExperienceInfo `json:"info,omitempty"`
}

func (e ExperienceItem) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: empty id", utils.ErrInvalidExperience)
	}
	if e.Price < 0 {
		return fmt.Errorf("%w: %s has negative price %.2f", utils.ErrInvalidExperience, e.ID, e.Price)
	}
	if e.Rating < 0 || e.Rating > 5 {
		return fmt.Errorf("%w: %s has rating %.1f outside [0,5]", utils.ErrInvalidExperience, e.ID, e.Rating)
	}
	if e.Category != CategoryNone && !e.Category.IsCatalog() {
		return fmt.Errorf("%w: %s has category %q", utils.ErrInvalidExperience, e.ID, e.Category)
	}
	return nil
}

// Position returns geographic coordinates when both are present.
func (e ExperienceItem) Position() (LatLng, bool) {
	if e.Lat == nil || e.Lng == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: *e.Lat, Lng: *e.Lng}, true
}

// MarkerColor prefers the item's own color hint.
func (e ExperienceItem) MarkerColor() string {
	if e.Color != "" {
		return e.Color
	}
	return e.Category.MarkerColor()
}

// Clone copies slices and pointers so callers cannot alias catalog data.
func (e ExperienceItem) Clone() ExperienceItem {
	out := e
	out.Tags = append([]string(nil), e.Tags...)
	out.X = cloneFloat(e.X)
	out.Y = cloneFloat(e.Y)
	out.Lat = cloneFloat(e.Lat)
	out.Lng = cloneFloat(e.Lng)
	if e.Info != nil {
		info := *e.Info
		info.Highlights = append([]string(nil), e.Info.Highlights...)
		info.Tips = append([]string(nil), e.Info.Tips...)
		info.Nearby = append([]string(nil), e.Info.Nearby...)
		out.Info = &info
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float is a helper for literal coordinates.
func Float(v float64) *float64 { return &v }

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
