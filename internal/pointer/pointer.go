// Package pointer injects mouse actions into the operating system.
package pointer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnsupported is returned by injectors that cannot perform an action on this platform.
var ErrUnsupported = errors.New("pointer action not supported")

// Injector drives the OS pointer. Implementations must not add artificial delay
// between calls; the frame loop already paces them.
type Injector interface {
	MoveAbsolute(x, y int) error
	ButtonDown() error
	ButtonUp() error
	Click() error
	RightClick() error
	// ScrollBy scrolls by amount; positive scrolls up.
	ScrollBy(amount int) error
	ScreenSize() (w, h int, err error)
	CursorPosition() (x, y int, err error)
}

// Kind identifies a pointer action.
type Kind int

const (
	Move Kind = iota
	ButtonDown
	ButtonUp
	Click
	RightClick
	Scroll
)

var kindNames = [...]string{
	Move:       "move",
	ButtonDown: "button_down",
	ButtonUp:   "button_up",
	Click:      "click",
	RightClick: "right_click",
	Scroll:     "scroll",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Action is one pointer operation produced by the controller.
type Action struct {
	Kind Kind `json:"kind"`
	// X and Y are the absolute target of a Move.
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`
	// Amount is the step count of a Scroll.
	Amount int `json:"amount,omitempty"`
}

// MoveTo returns a Move action.
func MoveTo(x, y int) Action { return Action{Kind: Move, X: x, Y: y} }

// ScrollAction returns a Scroll action.
func ScrollAction(amount int) Action { return Action{Kind: Scroll, Amount: amount} }

func (a Action) String() string {
	switch a.Kind {
	case Move:
		return fmt.Sprintf("move(%d,%d)", a.X, a.Y)
	case Scroll:
		return fmt.Sprintf("scroll(%d)", a.Amount)
	default:
		return a.Kind.String()
	}
}

// Perform executes a single action on inj.
func Perform(inj Injector, a Action) error {
	switch a.Kind {
	case Move:
		return inj.MoveAbsolute(a.X, a.Y)
	case ButtonDown:
		return inj.ButtonDown()
	case ButtonUp:
		return inj.ButtonUp()
	case Click:
		return inj.Click()
	case RightClick:
		return inj.RightClick()
	case Scroll:
		return inj.ScrollBy(a.Amount)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, a.Kind)
}

// Apply executes actions in order. A failed action is logged and skipped; it never
// stops the remaining actions. Apply returns the number of failures.
func Apply(inj Injector, actions []Action, logger *zap.Logger) int {
	failed := 0
	for _, a := range actions {
		if err := Perform(inj, a); err != nil {
			failed++
			if logger != nil {
				logger.Warn("pointer action failed", zap.Stringer("action", a), zap.Error(err))
			}
		}
	}
	return failed
}
