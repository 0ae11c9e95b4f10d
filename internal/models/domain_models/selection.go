package domain_models

type WorkflowPhase string

const (
	PhaseIdle                  WorkflowPhase = "idle"
	PhaseCategoryChosen        WorkflowPhase = "category_chosen"
	PhaseTimeSelectionPending  WorkflowPhase = "time_selection_pending"
	PhaseTimeSelectionComplete WorkflowPhase = "time_selection_complete"
	PhaseResultsShown          WorkflowPhase = "results_shown"

	// PhaseItineraryShown is the assistant-plan variant of PhaseResultsShown.
	PhaseItineraryShown WorkflowPhase = "itinerary_shown"
)

// SelectionState is a snapshot; mutate it only through the workflow.
type SelectionState struct {
	SelectedCategory  Category        `json:"selected_category,omitempty"`
	SelectedDay       Day             `json:"selected_day"`
	SelectedTimeSlot  TimeSlot        `json:"selected_time_slot,omitempty"`
	PendingExperience *ExperienceItem `json:"pending_experience,omitempty"`
	Phase             WorkflowPhase   `json:"phase"`
}

// ConfirmEnabled mirrors the confirm button: both inputs must be filled.
func (s SelectionState) ConfirmEnabled() bool {
	return s.Phase == PhaseTimeSelectionComplete
}
