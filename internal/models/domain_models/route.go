package domain_models

import (
	"sort"

	"wayfarer/pkg/utils"
)

type RouteActivity struct {
	Time          string   `json:"time"`
	Label         string   `json:"label"`
	Emoji         string   `json:"emoji"`
	ID            string   `json:"id"`
	Location      string   `json:"location"`
	DurationLabel string   `json:"duration"`
	Price         *float64 `json:"price,omitempty"`
	Website       string   `json:"website,omitempty"`
}

// DayRoute is one day of a suggested or confirmed plan.
type DayRoute struct {
	Day             int             `json:"day"`
	Title           string          `json:"title"`
	StartLocation   string          `json:"start_location"`
	EndLocation     string          `json:"end_location"`
	TotalDuration   string          `json:"total_duration"`
	WalkingDistance string          `json:"walking_distance"`
	Activities      []RouteActivity `json:"activities"`
}

// SortActivities orders by display time. Equal times keep their array order.
func (r *DayRoute) SortActivities() {
	sort.SliceStable(r.Activities, func(i, j int) bool {
		return utils.ClockBefore(r.Activities[i].Time, r.Activities[j].Time)
	})
}

func (r DayRoute) Clone() DayRoute {
	out := r
	out.Activities = make([]RouteActivity, len(r.Activities))
	for i, a := range r.Activities {
		a.Price = cloneFloat(a.Price)
		out.Activities[i] = a
	}
	return out
}

func (r DayRoute) Activity(id string) (RouteActivity, bool) {
	for _, a := range r.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return RouteActivity{}, false
}

func CloneRoutes(routes []DayRoute) []DayRoute {
	out := make([]DayRoute, len(routes))
	for i, r := range routes {
		out[i] = r.Clone()
	}
	return out
}
