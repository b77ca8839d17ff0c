package render

import "strings"

// Hand identifies which hand a set of landmarks belongs to. Detector labels
// are free-form strings; the renderer keys its smoothing state on this
// normalized tag so "Left", "left" and " LEFT " all land in the same slot.
type Hand int

const (
	HandUnknown Hand = iota
	HandLeft
	HandRight
)

// ParseHand normalizes a detector handedness label. Unrecognized labels map
// to HandUnknown rather than an error; an unknown hand still renders.
func ParseHand(label string) Hand {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "left":
		return HandLeft
	case "right":
		return HandRight
	default:
		return HandUnknown
	}
}

// String returns the display label for the hand.
func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "Left"
	case HandRight:
		return "Right"
	default:
		return "Hand"
	}
}
