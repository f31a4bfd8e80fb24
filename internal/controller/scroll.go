package controller

import (
	"math"

	"github.com/ayusman/mudra/internal/pointer"
)

// Scroller integrates vertical tracking-point motion into scroll steps.
type Scroller struct {
	// Gain converts normalized Y motion into scroll units.
	Gain float64
	// Threshold is the magnitude |delta| must exceed to scroll.
	Threshold float64
	// Factor maps delta to a scroll amount. Negative so that raising the hand scrolls up.
	Factor float64
}

// DefaultScroller returns the scroll tuning used by the controller.
func DefaultScroller() Scroller {
	return Scroller{Gain: 1000, Threshold: 5, Factor: -2.0}
}

// Update handles one scrolling frame at tracking-point height y.
//
// Reads and writes s.ScrollRef and s.ScrollRefSet. The reference always moves to y,
// so the first frame after a reset only sets the baseline.
func (sc Scroller) Update(s *Session, y float64) []pointer.Action {
	var out []pointer.Action
	if s.ScrollRefSet {
		delta := (y - s.ScrollRef) * sc.Gain
		if math.Abs(delta) > sc.Threshold {
			if amount := int(math.Round(delta * sc.Factor)); amount != 0 {
				out = []pointer.Action{pointer.ScrollAction(amount)}
			}
		}
	}
	s.ScrollRef = y
	s.ScrollRefSet = true
	return out
}

// Reset forgets the scroll baseline.
func (sc Scroller) Reset(s *Session) {
	s.ScrollRefSet = false
}
