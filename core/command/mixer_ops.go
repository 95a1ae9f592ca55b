package command

import "channel-mixer-go/domain/mixer"

// LoadImage decodes a file into a slot.
type LoadImage struct {
	baseSlotCommand
	Path string
}

func NewLoadImage(slot mixer.SlotIndex, path string) *LoadImage {
	return &LoadImage{baseSlotCommand: baseSlotCommand{slot: slot}, Path: path}
}

func (c *LoadImage) CommandName() string {
	return "LoadImage"
}

// AssignChannel sets the channel a slot feeds.
type AssignChannel struct {
	baseSlotCommand
	Channel mixer.Channel
}

func NewAssignChannel(slot mixer.SlotIndex, ch mixer.Channel) *AssignChannel {
	return &AssignChannel{baseSlotCommand: baseSlotCommand{slot: slot}, Channel: ch}
}

func (c *AssignChannel) CommandName() string {
	return "AssignChannel"
}

// Merge combines the three slots into a new result.
type Merge struct{}

func (c *Merge) CommandName() string {
	return "Merge"
}

// Export writes the current result as a Size×Size PNG to Path.
type Export struct {
	Size int
	Path string
}

func NewExport(size int, path string) *Export {
	return &Export{Size: size, Path: path}
}

func (c *Export) CommandName() string {
	return "Export"
}
