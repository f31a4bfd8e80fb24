package controller

import (
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/pointer"
)

// effect runs the per-gesture work for one frame.
type effect func(c *Controller, l *hand.Landmarks, now time.Time) []pointer.Action

// dispatch maps each gesture to its frame effect.
//
//	state        motion                            click/drag     other
//	IDLE         frozen                            release        -
//	MOVING       active                            release        -
//	LEFT_CLICK   active; frozen in desktop mode    pinch held     -
//	             until the drag starts
//	RIGHT_CLICK  frozen                            release        rate-limited right click
//	SCROLLING    reference cleared                 release        scroll
var dispatch = map[gesture.State]effect{
	gesture.Idle:       idle,
	gesture.Moving:     moving,
	gesture.LeftClick:  leftClick,
	gesture.RightClick: rightClick,
	gesture.Scrolling:  scrolling,
}

func idle(c *Controller, l *hand.Landmarks, now time.Time) []pointer.Action {
	out := c.moveCursor(l, true)
	return append(out, c.debouncer.Update(&c.s, false, now)...)
}

func moving(c *Controller, l *hand.Landmarks, now time.Time) []pointer.Action {
	out := c.moveCursor(l, false)
	return append(out, c.debouncer.Update(&c.s, false, now)...)
}

func leftClick(c *Controller, l *hand.Landmarks, now time.Time) []pointer.Action {
	// Decided before the debouncer runs, so the frame that starts a drag is still frozen.
	freeze := !c.s.Gaming && !c.s.Dragging
	out := c.moveCursor(l, freeze)
	return append(out, c.debouncer.Update(&c.s, true, now)...)
}

func rightClick(c *Controller, l *hand.Landmarks, now time.Time) []pointer.Action {
	out := c.moveCursor(l, true)
	out = append(out, c.debouncer.Update(&c.s, false, now)...)
	return append(out, c.rightClick.Fire(&c.s, now)...)
}

func scrolling(c *Controller, l *hand.Landmarks, now time.Time) []pointer.Action {
	out := c.debouncer.Update(&c.s, false, now)
	out = append(out, c.scroller.Update(&c.s, l.Tracking().Y)...)
	c.s.Motion.Clear()
	return out
}

// noHand handles a frame without a detected hand.
func noHand(c *Controller, now time.Time) []pointer.Action {
	out := c.debouncer.Update(&c.s, false, now)
	c.s.Motion.Clear()
	c.scroller.Reset(&c.s)
	return out
}
