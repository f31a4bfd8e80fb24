// Package controller turns per-frame hand landmarks into pointer actions.
//
// A Controller owns one Session and is driven from a single goroutine: every
// call to Process reads and mutates the session in place without locking.
package controller

import (
	"time"

	"github.com/ayusman/mudra/internal/motion"
)

// Session is the state carried from one frame to the next.
// Components document which fields they read and write.
type Session struct {
	// Motion is the cursor filter's reference point and running displacement.
	Motion motion.State
	// LastFist is when a fist was last classified. Zero means never.
	LastFist time.Time
	// PinchStart is when the current pinch began. Zero means no pinch is being timed.
	PinchStart time.Time
	// Dragging is set while a button-down is outstanding.
	Dragging bool
	// ScrollRef is the tracking-point Y of the previous scrolling frame.
	ScrollRef    float64
	ScrollRefSet bool
	// LastRightClick is when a right click last fired. Zero means never.
	// It is reported in snapshots and status events; the limiter keeps its own budget.
	LastRightClick time.Time
	// Gaming selects zero-latency clicking.
	Gaming bool
	// ClickFlash is when the last click or gaming-mode press was issued. Read only by the overlay.
	ClickFlash time.Time
}
