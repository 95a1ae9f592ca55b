package mixer

import (
	"fmt"
	"image"
)

// SlotIndex identifies one of the three input positions.
type SlotIndex int

// Validate returns ErrInvalidSlot for indices outside 0..2.
func (i SlotIndex) Validate() error {
	if i < 0 || int(i) >= NumChannels {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, int(i))
	}
	return nil
}

// String returns the 1-based label shown to users.
func (i SlotIndex) String() string {
	return fmt.Sprintf("Image %d", int(i)+1)
}

// Slot holds one source image and the channel it feeds.
type Slot struct {
	// Image is the decoded source; nil until something is loaded.
	Image image.Image
	// Name is the path or display name the image came from.
	Name string
	// Channel is the plane this slot's grayscale becomes in the mix.
	Channel Channel
}

// IsLoaded returns true if the slot holds an image.
func (s *Slot) IsLoaded() bool {
	return s.Image != nil
}

// Size returns the source image dimensions, or zero when empty.
func (s *Slot) Size() image.Point {
	if s.Image == nil {
		return image.Point{}
	}
	return s.Image.Bounds().Size()
}

// Assignment maps every channel to the slot that feeds it.
type Assignment [NumChannels]SlotIndex

// Slot returns the slot assigned to c.
func (a Assignment) Slot(c Channel) SlotIndex {
	return a[c]
}

// buildAssignment inverts the per-slot labels. It fails if the labels are
// not a permutation of R, G, B.
func buildAssignment(slots *[NumChannels]Slot) (Assignment, error) {
	var a Assignment
	var seen [NumChannels]bool
	for i := range slots {
		c := slots[i].Channel
		if !c.IsValid() {
			return a, newValidationError(ErrInvalidChannel, "%s has channel %s", SlotIndex(i), c)
		}
		if seen[c] {
			return a, newValidationError(ErrDuplicateChannel, "%s is assigned more than once", c.Name())
		}
		seen[c] = true
		a[c] = SlotIndex(i)
	}
	return a, nil
}
