package services

import (
	"fmt"

	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

// Confirmation is what ConfirmSelection hands back to the session: the
// chosen placement plus the experience that was waiting for it, if any.
type Confirmation struct {
	Schedule dm.Schedule
	Pending  *dm.ExperienceItem
}

// SelectionWorkflow drives category → day/slot → confirm. It owns the
// transient SelectionState and never touches the itinerary itself.
//
//	idle ──select(c)──▶ category_chosen ──▶ time_selection_pending ⇄ time_selection_complete ──confirm──▶ results_shown
//	idle ──select(itinerary)──────────────────────────────────────────────────────────────────────────▶ itinerary_shown
type SelectionWorkflow struct {
	state     dm.SelectionState
	confirmed *dm.Schedule
}

func NewSelectionWorkflow() *SelectionWorkflow {
	return &SelectionWorkflow{state: dm.SelectionState{Phase: dm.PhaseIdle}}
}

// SelectCategory switches the workflow to c. Selecting "itinerary" skips the
// time inputs entirely.
func (w *SelectionWorkflow) SelectCategory(c dm.Category) error {
	switch {
	case c == dm.CategoryItinerary:
		w.Reset()
		w.state.SelectedCategory = c
		w.state.Phase = dm.PhaseItineraryShown
		return nil
	case c.IsCatalog():
		w.Reset()
		w.state.SelectedCategory = c
		// category_chosen is left at once: the day/slot inputs open with it
		w.state.Phase = dm.PhaseTimeSelectionPending
		return nil
	default:
		return fmt.Errorf("%w: %q", utils.ErrInvalidCategory, c)
	}
}

func (w *SelectionWorkflow) SetDay(d dm.Day) error {
	if !w.state.SelectedCategory.IsCatalog() {
		return utils.ErrNoCategorySelected
	}
	if !d.IsSet() {
		return utils.ErrInvalidDay
	}
	w.state.SelectedDay = d
	w.recompute()
	return nil
}

func (w *SelectionWorkflow) SetTimeSlot(s dm.TimeSlot) error {
	if !w.state.SelectedCategory.IsCatalog() {
		return utils.ErrNoCategorySelected
	}
	if s.Rank() > dm.SlotEvening.Rank() {
		return utils.ErrInvalidTimeSlot
	}
	w.state.SelectedTimeSlot = s
	w.recompute()
	return nil
}

// recompute reopens selection after any day/slot edit, including one made
// while results are already shown.
func (w *SelectionWorkflow) recompute() {
	w.confirmed = nil
	if w.state.SelectedDay.IsSet() && w.state.SelectedTimeSlot != dm.SlotNone {
		w.state.Phase = dm.PhaseTimeSelectionComplete
		return
	}
	w.state.Phase = dm.PhaseTimeSelectionPending
}

// Hold parks an experience until a day and slot are confirmed.
func (w *SelectionWorkflow) Hold(item dm.ExperienceItem) error {
	if !w.state.SelectedCategory.IsCatalog() {
		return utils.ErrNoCategorySelected
	}
	held := item.Clone()
	w.state.PendingExperience = &held
	return nil
}

// ConfirmSelection is a no-op returning false unless both day and slot are
// chosen.
func (w *SelectionWorkflow) ConfirmSelection() (Confirmation, bool) {
	if w.state.Phase != dm.PhaseTimeSelectionComplete {
		return Confirmation{}, false
	}
	sched := dm.Schedule{Day: w.state.SelectedDay, Slot: w.state.SelectedTimeSlot}
	w.confirmed = &sched
	w.state.Phase = dm.PhaseResultsShown

	conf := Confirmation{Schedule: sched, Pending: w.state.PendingExperience}
	w.state.PendingExperience = nil
	return conf, true
}

// ActiveSchedule is the confirmed placement applied to adds made while
// results are shown.
func (w *SelectionWorkflow) ActiveSchedule() (dm.Schedule, bool) {
	if w.confirmed == nil || w.state.Phase != dm.PhaseResultsShown {
		return dm.Schedule{}, false
	}
	return *w.confirmed, true
}

func (w *SelectionWorkflow) Reset() {
	w.state = dm.SelectionState{Phase: dm.PhaseIdle}
	w.confirmed = nil
}

func (w *SelectionWorkflow) State() dm.SelectionState {
	out := w.state
	if w.state.PendingExperience != nil {
		held := w.state.PendingExperience.Clone()
		out.PendingExperience = &held
	}
	return out
}
