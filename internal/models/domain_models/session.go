package domain_models

import "time"

// SessionSnapshot is a read-only view of one planner session.
type SessionSnapshot struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Selection     SelectionState  `json:"selection"`
	Itinerary     []ItineraryItem `json:"itinerary"`
	TotalCost     float64         `json:"total_cost"`
	DayView       int             `json:"day_view"`
	Suggestion    []DayRoute      `json:"suggestion,omitempty"`
	ConfirmedDays []int           `json:"confirmed_days"`
	CheckIns      int             `json:"check_ins"`
	MapReady      bool            `json:"map_ready"`
}
