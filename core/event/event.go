// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import (
	"channel-mixer-go/core/state"
	"channel-mixer-go/domain/mixer"
)

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// SlotEvent is an event that concerns a specific slot.
type SlotEvent interface {
	Event
	// Slot returns the source slot
	Slot() mixer.SlotIndex
}

// baseSlotEvent provides common implementation for slot events.
type baseSlotEvent struct {
	slot mixer.SlotIndex
}

func (e *baseSlotEvent) Slot() mixer.SlotIndex {
	return e.slot
}

// StateChanged is published when the workbench state changes.
type StateChanged struct {
	OldState state.WorkbenchState
	NewState state.WorkbenchState
}

func NewStateChanged(oldState, newState state.WorkbenchState) *StateChanged {
	return &StateChanged{OldState: oldState, NewState: newState}
}

func (e *StateChanged) EventName() string {
	return "StateChanged"
}

// OperationFailed is published when a command fails.
type OperationFailed struct {
	Operation string
	Error     error
}

func NewOperationFailed(operation string, err error) *OperationFailed {
	return &OperationFailed{Operation: operation, Error: err}
}

func (e *OperationFailed) EventName() string {
	return "OperationFailed"
}
