package app

import (
	"time"

	"github.com/ayusman/mudra/internal/controller"
	"github.com/ayusman/mudra/internal/pointer"
)

// Event is the per-frame status record sent to publishers.
type Event struct {
	Session     string           `json:"session,omitempty"`
	Frame       uint64           `json:"frame"`
	Time        time.Time        `json:"time"`
	Mode        string           `json:"mode"`
	State       string           `json:"state"`
	Rule        string           `json:"rule,omitempty"`
	Label       string           `json:"label,omitempty"`
	HandPresent bool             `json:"hand_present"`
	Gaming      bool             `json:"gaming"`
	Dragging    bool             `json:"dragging"`
	Pinch       float64          `json:"pinch,omitempty"`
	Actions     []pointer.Action `json:"actions,omitempty"`
	// LastRightClick is nil until a right click has fired.
	LastRightClick *time.Time `json:"last_right_click,omitempty"`
}

// NewEvent builds the status record for one frame.
func NewEvent(session string, mode Mode, snap controller.Snapshot, actions []pointer.Action, label string, now time.Time) Event {
	e := Event{
		Session:     session,
		Frame:       snap.Frame,
		Time:        now,
		Mode:        mode.String(),
		State:       snap.State.String(),
		Rule:        snap.Rule,
		Label:       label,
		HandPresent: snap.HandPresent,
		Gaming:      snap.Gaming,
		Dragging:    snap.Dragging,
		Pinch:       snap.Pinch,
		Actions:     actions,
	}
	if !snap.LastRightClick.IsZero() {
		t := snap.LastRightClick
		e.LastRightClick = &t
	}
	return e
}
