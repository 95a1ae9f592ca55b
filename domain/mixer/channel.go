// Package mixer implements the channel mixer: three source slots, a
// channel assignment per slot, and the merge/export operations that turn
// them into a single RGB image.
package mixer

import (
	"fmt"
	"strings"
)

// Channel is one of the three 8-bit color planes of an RGB image.
type Channel int

const (
	// Red is the R plane.
	Red Channel = iota
	// Green is the G plane.
	Green
	// Blue is the B plane.
	Blue
)

// NumChannels is the number of color planes and also the number of slots.
const NumChannels = 3

// Channels lists all channels in plane order.
var Channels = [NumChannels]Channel{Red, Green, Blue}

// String returns the short label used in the UI.
func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Name returns the full channel name.
func (c Channel) Name() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return c.String()
	}
}

// IsValid reports whether c is one of Red, Green or Blue.
func (c Channel) IsValid() bool {
	return c >= Red && c <= Blue
}

// ParseChannel accepts "R", "G", "B" or the full names, case-insensitively.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChannel, s)
	}
}

// ChannelLabels returns the UI labels in plane order.
func ChannelLabels() []string {
	labels := make([]string, NumChannels)
	for i, c := range Channels {
		labels[i] = c.String()
	}
	return labels
}
