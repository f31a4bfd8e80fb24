//go:build !windows

package pointer

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robotgo injects input through robotgo.
type Robotgo struct{}

// NewSystem returns the platform injector.
func NewSystem() (Injector, error) {
	// No pause between injected events.
	robotgo.MouseSleep = 0
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("query screen size: got %dx%d", w, h)
	}
	return &Robotgo{}, nil
}

func (r *Robotgo) MoveAbsolute(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (r *Robotgo) ButtonDown() error {
	if err := robotgo.Toggle("left"); err != nil {
		return fmt.Errorf("left button down: %w", err)
	}
	return nil
}

func (r *Robotgo) ButtonUp() error {
	if err := robotgo.Toggle("left", "up"); err != nil {
		return fmt.Errorf("left button up: %w", err)
	}
	return nil
}

func (r *Robotgo) Click() error {
	robotgo.Click("left")
	return nil
}

func (r *Robotgo) RightClick() error {
	robotgo.Click("right")
	return nil
}

// ScrollBy scrolls by amount wheel ticks.
func (r *Robotgo) ScrollBy(amount int) error {
	switch {
	case amount > 0:
		robotgo.ScrollDir(amount, "up")
	case amount < 0:
		robotgo.ScrollDir(-amount, "down")
	}
	return nil
}

func (r *Robotgo) ScreenSize() (int, int, error) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("query screen size: got %dx%d", w, h)
	}
	return w, h, nil
}

func (r *Robotgo) CursorPosition() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}
