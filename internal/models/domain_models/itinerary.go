package domain_models

// ItineraryItem is an experience committed to the plan.
type ItineraryItem struct {
	ExperienceItem
	ScheduledDay      Day      `json:"scheduled_day"`
	ScheduledTime     string   `json:"scheduled_time,omitempty"`
	ScheduledTimeSlot TimeSlot `json:"scheduled_time_slot,omitempty"`
}

// Schedule is the optional placement passed when adding to the itinerary.
type Schedule struct {
	Day  Day
	Slot TimeSlot
	Time string
}
