// Package eventbus provides the event bus for publishing and subscribing to events.
package eventbus

import (
	"channel-mixer-go/core/event"
	"channel-mixer-go/domain/mixer"
)

// EventBus is the interface for the event bus.
type EventBus interface {
	// Publish publishes an event to all subscribers.
	// This method is non-blocking; events are queued for async dispatch.
	Publish(e event.Event)

	// Subscribe subscribes to all events.
	// Returns a subscription ID that can be used to unsubscribe.
	Subscribe(handler EventHandler) string

	// SubscribeSlot subscribes to events concerning a specific slot.
	// Only events implementing SlotEvent with a matching slot will be delivered.
	// Returns a subscription ID that can be used to unsubscribe.
	SubscribeSlot(slot mixer.SlotIndex, handler EventHandler) string

	// Unsubscribe removes a subscription by its ID.
	Unsubscribe(subscriptionID string)

	// Close drains queued events and shuts down the event bus.
	// After Close is called, Publish will be a no-op.
	Close()
}

// EventHandler is a function that handles an event.
type EventHandler func(e event.Event)
