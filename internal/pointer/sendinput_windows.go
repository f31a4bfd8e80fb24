//go:build windows

package pointer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/lxn/win"
)

const (
	inputMouse = 0

	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
	mouseeventfWheel     = 0x0800
)

var errInputBlocked = errors.New("SendInput inserted no events")

// mouseInput mirrors the Win32 INPUT structure for mouse events.
type mouseInput struct {
	itype                  uint32
	x, y                   int32
	mousedata, flags, time uint32
	extrainfo              uintptr
}

// SendInput injects input through the Win32 SendInput and cursor APIs.
type SendInput struct{}

// NewSystem returns the platform injector.
func NewSystem() (Injector, error) {
	s := &SendInput{}
	if _, _, err := s.ScreenSize(); err != nil {
		return nil, err
	}
	return s, nil
}

func send(inputs ...mouseInput) error {
	n := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(mouseInput{})))
	if int(n) != len(inputs) {
		return fmt.Errorf("%w: %d of %d", errInputBlocked, n, len(inputs))
	}
	return nil
}

func buttons(flags ...uint32) error {
	inputs := make([]mouseInput, len(flags))
	for i, f := range flags {
		inputs[i] = mouseInput{itype: inputMouse, flags: f}
	}
	return send(inputs...)
}

func (s *SendInput) MoveAbsolute(x, y int) error {
	if !win.SetCursorPos(int32(x), int32(y)) {
		return fmt.Errorf("SetCursorPos(%d, %d) failed", x, y)
	}
	return nil
}

func (s *SendInput) ButtonDown() error { return buttons(mouseeventfLeftDown) }
func (s *SendInput) ButtonUp() error   { return buttons(mouseeventfLeftUp) }

func (s *SendInput) Click() error {
	return buttons(mouseeventfLeftDown, mouseeventfLeftUp)
}

func (s *SendInput) RightClick() error {
	return buttons(mouseeventfRightDown, mouseeventfRightUp)
}

// ScrollBy sends amount as raw wheel delta. One notch is 120.
func (s *SendInput) ScrollBy(amount int) error {
	if amount == 0 {
		return nil
	}
	return send(mouseInput{itype: inputMouse, flags: mouseeventfWheel, mousedata: uint32(int32(amount))})
}

func (s *SendInput) ScreenSize() (int, int, error) {
	w := int(win.GetSystemMetrics(win.SM_CXSCREEN))
	h := int(win.GetSystemMetrics(win.SM_CYSCREEN))
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("query screen size: got %dx%d", w, h)
	}
	return w, h, nil
}

func (s *SendInput) CursorPosition() (int, int, error) {
	var p win.POINT
	if !win.GetCursorPos(&p) {
		return 0, 0, errors.New("GetCursorPos failed")
	}
	return int(p.X), int(p.Y), nil
}
