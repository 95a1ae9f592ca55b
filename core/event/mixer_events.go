package event

import (
	"image"

	"channel-mixer-go/domain/mixer"
)

// ImageLoaded is published when a slot receives a new image.
type ImageLoaded struct {
	baseSlotEvent
	Name    string
	Width   int
	Height  int
	Preview image.Image
}

func NewImageLoaded(slot mixer.SlotIndex, name string, size image.Point, preview image.Image) *ImageLoaded {
	return &ImageLoaded{
		baseSlotEvent: baseSlotEvent{slot: slot},
		Name:          name,
		Width:         size.X,
		Height:        size.Y,
		Preview:       preview,
	}
}

func (e *ImageLoaded) EventName() string {
	return "ImageLoaded"
}

// ChannelAssigned is published when a slot's channel label changes.
type ChannelAssigned struct {
	baseSlotEvent
	Channel mixer.Channel
}

func NewChannelAssigned(slot mixer.SlotIndex, ch mixer.Channel) *ChannelAssigned {
	return &ChannelAssigned{
		baseSlotEvent: baseSlotEvent{slot: slot},
		Channel:       ch,
	}
}

func (e *ChannelAssigned) EventName() string {
	return "ChannelAssigned"
}

// MixCompleted is published after a successful merge.
type MixCompleted struct {
	Width   int
	Height  int
	Preview image.Image
}

func NewMixCompleted(size image.Point, preview image.Image) *MixCompleted {
	return &MixCompleted{Width: size.X, Height: size.Y, Preview: preview}
}

func (e *MixCompleted) EventName() string {
	return "MixCompleted"
}

// ExportCompleted is published after the result is written to disk.
type ExportCompleted struct {
	Path string
	Size int
}

func NewExportCompleted(path string, size int) *ExportCompleted {
	return &ExportCompleted{Path: path, Size: size}
}

func (e *ExportCompleted) EventName() string {
	return "ExportCompleted"
}
