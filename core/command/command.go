// Package command defines all commands that can be sent to the application.
// Commands represent user intentions and are processed by the application layer.
package command

import "channel-mixer-go/domain/mixer"

// Command is the base interface for all commands.
// Commands are sent from the presentation layer to the application layer.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// SlotCommand is a command that targets a specific slot.
type SlotCommand interface {
	Command
	// Slot returns the target slot
	Slot() mixer.SlotIndex
}

// baseSlotCommand provides common implementation for slot commands.
type baseSlotCommand struct {
	slot mixer.SlotIndex
}

func (c *baseSlotCommand) Slot() mixer.SlotIndex {
	return c.slot
}
