package response_models

import dm "wayfarer/internal/models/domain_models"

type ItineraryResponse struct {
	Items     []dm.ItineraryItem `json:"items"`
	Count     int                `json:"count"`
	TotalCost float64            `json:"total_cost"`
}

type AddItineraryResponse struct {
	Item  dm.ItineraryItem `json:"item"`
	Added bool             `json:"added"`
}

type ConfirmDayResponse struct {
	Day   int                `json:"day"`
	Added []dm.ItineraryItem `json:"added"`
}

type ConfirmPlanResponse struct {
	Added int `json:"added"`
}

type BookingResponse struct {
	ExperienceID string `json:"experience_id"`
	Message      string `json:"message"`
}

type CheckInPhotosResponse struct {
	Draft    dm.CheckInDraft `json:"draft"`
	Rejected []string        `json:"rejected,omitempty"`
}

type ChatResponse struct {
	Messages []dm.ChatMessage `json:"messages"`
}

type CatalogResponse struct {
	Category dm.Category         `json:"category,omitempty"`
	Items    []dm.ExperienceItem `json:"items"`
}
