package utils

import "errors"

var (
	ErrExperienceNotFound     = errors.New("experience not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrItineraryItemNotFound  = errors.New("itinerary item not found")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidDay             = errors.New("invalid day")
	ErrInvalidTimeSlot        = errors.New("invalid time slot")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidExperience      = errors.New("invalid experience")
	ErrDuplicateExperience    = errors.New("duplicate experience id")
	ErrSelectionIncomplete    = errors.New("day and time slot must both be selected")
	ErrNoCategorySelected     = errors.New("no catalog category selected")
	ErrSuggestionDayNotFound  = errors.New("suggested day not found")
	ErrSuggestionActivity     = errors.New("suggested activity not found")
	ErrNoDraft                = errors.New("no check-in in progress")
	ErrSubmitPending          = errors.New("check-in submission already pending")
	ErrCheckInNotFound        = errors.New("check-in not found")
	ErrLocationUnavailable    = errors.New("location unavailable")
	ErrInvalidPhoto           = errors.New("invalid photo")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI provider")
	ErrDatabaseError          = errors.New("database error")
)
