package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/pointer"
)

// Debouncer turns the pinch gesture into click, drag-start and drag-end actions.
type Debouncer struct {
	// DragDelay is how long a pinch must be held, strictly, before it becomes a drag.
	DragDelay time.Duration
	logger    *zap.Logger
}

// NewDebouncer creates a Debouncer.
func NewDebouncer(dragDelay time.Duration, logger *zap.Logger) *Debouncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Debouncer{DragDelay: dragDelay, logger: logger}
}

// Update advances the debouncer by one frame. clicking reports whether the
// pinch is held this frame.
//
// Reads s.Gaming. Reads and writes s.Dragging and s.PinchStart. Writes s.ClickFlash.
// Every ButtonDown it returns is matched by exactly one later ButtonUp.
func (d *Debouncer) Update(s *Session, clicking bool, now time.Time) []pointer.Action {
	if s.Gaming {
		return d.zeroLatency(s, clicking, now)
	}

	if clicking {
		if s.PinchStart.IsZero() {
			s.PinchStart = now
		}
		if !s.Dragging && now.Sub(s.PinchStart) > d.DragDelay {
			s.Dragging = true
			d.logger.Info("drag started", zap.Duration("held", now.Sub(s.PinchStart)))
			return []pointer.Action{{Kind: pointer.ButtonDown}}
		}
		return nil
	}

	var out []pointer.Action
	switch {
	case s.Dragging:
		s.Dragging = false
		d.logger.Info("drag ended")
		out = []pointer.Action{{Kind: pointer.ButtonUp}}
	case !s.PinchStart.IsZero():
		s.ClickFlash = now
		d.logger.Info("click")
		out = []pointer.Action{{Kind: pointer.Click}}
	}
	s.PinchStart = time.Time{}
	return out
}

// zeroLatency presses on the first pinch frame and releases on the first
// frame without one. Pinches are never timed here, so a timer left over from
// desktop mode is dropped.
func (d *Debouncer) zeroLatency(s *Session, clicking bool, now time.Time) []pointer.Action {
	s.PinchStart = time.Time{}
	switch {
	case clicking && !s.Dragging:
		s.Dragging = true
		s.ClickFlash = now
		return []pointer.Action{{Kind: pointer.ButtonDown}}
	case !clicking && s.Dragging:
		s.Dragging = false
		return []pointer.Action{{Kind: pointer.ButtonUp}}
	}
	return nil
}

// Progress returns how far the current pinch is toward becoming a drag, in [0,1].
// It is zero when no pinch is being timed.
func (d *Debouncer) Progress(s *Session, now time.Time) float64 {
	if s.PinchStart.IsZero() || d.DragDelay <= 0 {
		return 0
	}
	p := float64(now.Sub(s.PinchStart)) / float64(d.DragDelay)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
