package request_models

import dm "wayfarer/internal/models/domain_models"

type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// SetDayRequest accepts a day number or "all".
type SetDayRequest struct {
	Day dm.Day `json:"day"`
}

type SetSlotRequest struct {
	Slot string `json:"slot" binding:"required"`
}

type HoldRequest struct {
	ExperienceID string `json:"experience_id" binding:"required"`
}

// AddItineraryRequest leaves placement to the confirmed selection when Day is
// omitted.
type AddItineraryRequest struct {
	ExperienceID string  `json:"experience_id" binding:"required"`
	Day          *dm.Day `json:"day,omitempty"`
	Slot         string  `json:"slot,omitempty"`
	Time         string  `json:"time,omitempty"`
}

type SuggestedActivityRequest struct {
	Day        int    `json:"day" binding:"required,min=1"`
	ActivityID string `json:"activity_id" binding:"required"`
}

type DayViewRequest struct {
	Day int `json:"day" binding:"required,min=1"`
}

type MapTapRequest struct {
	ID string `json:"id" binding:"required"`
}

// PrepareCheckInRequest carries the browser's position when it has one.
// Neither coordinates nor geo_denied means ask over the websocket.
type PrepareCheckInRequest struct {
	PointID   string   `json:"point_id" binding:"required"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	GeoDenied bool     `json:"geo_denied,omitempty"`
}

type CheckInNotesRequest struct {
	Notes string `json:"notes"`
}

type ChatRequest struct {
	Text string `json:"text" binding:"required"`
}
