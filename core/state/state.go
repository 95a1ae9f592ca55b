// Package state defines the workbench state machine.
package state

import "fmt"

// WorkbenchState represents how far the user has progressed through
// load, merge and export.
type WorkbenchState int

const (
	// StateEmpty is the initial state before any image is loaded.
	StateEmpty WorkbenchState = iota
	// StateLoaded indicates at least one slot holds an image and the
	// current slots have not been merged yet.
	StateLoaded
	// StateMerged indicates the result reflects the current slots.
	StateMerged
	// StateExported indicates the current result has been written to disk.
	StateExported
)

// String returns the string representation of the state.
func (s WorkbenchState) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateLoaded:
		return "Loaded"
	case StateMerged:
		return "Merged"
	case StateExported:
		return "Exported"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// Every state after Empty is re-enterable.
var validTransitions = map[WorkbenchState][]WorkbenchState{
	StateEmpty:    {StateLoaded},
	StateLoaded:   {StateLoaded, StateMerged},
	StateMerged:   {StateLoaded, StateMerged, StateExported},
	StateExported: {StateLoaded, StateMerged, StateExported},
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s WorkbenchState) CanTransitionTo(target WorkbenchState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target states from the current state.
func (s WorkbenchState) ValidTransitions() []WorkbenchState {
	return validTransitions[s]
}

// CanMerge returns true if a merge may be attempted. Slot validation still
// applies.
func (s WorkbenchState) CanMerge() bool {
	return s != StateEmpty
}

// IsMerged returns true if the result matches the current slots.
func (s WorkbenchState) IsMerged() bool {
	return s == StateMerged || s == StateExported
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From WorkbenchState
	To   WorkbenchState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to WorkbenchState) *TransitionError {
	return &TransitionError{From: from, To: to}
}
