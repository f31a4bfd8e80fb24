package app

import (
	"sync"

	"gocv.io/x/gocv"
)

// Key codes handled by the session loop.
const (
	KeyNone   = -1
	KeyQuit   = 'q'
	KeyGaming = 'g'
)

// KeySource is a non-blocking key poll. PollKey returns KeyNone when no key
// is pending.
type KeySource interface {
	PollKey() int
}

// Display shows annotated frames and delivers key presses.
type Display interface {
	KeySource
	Show(frame *gocv.Mat)
	Close() error
}

// Window is a Display backed by an OpenCV HighGUI window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a preview window with the given title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

func (w *Window) Show(frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}
	w.win.IMShow(*frame)
}

// PollKey waits one millisecond for a key, which also pumps the window's
// event loop.
func (w *Window) PollKey() int {
	k := w.win.WaitKey(1)
	if k < 0 {
		return KeyNone
	}
	k &= 0xFF
	// Accept the shifted letters too.
	if k >= 'A' && k <= 'Z' {
		k += 'a' - 'A'
	}
	return k
}

func (w *Window) Close() error {
	return w.win.Close()
}

// Headless is a Display that shows nothing and can be fed keys
// programmatically.
type Headless struct {
	mu    sync.Mutex
	keys  []int
	shown int
}

// NewHeadless returns a Headless display with the given keys queued.
func NewHeadless(keys ...int) *Headless {
	return &Headless{keys: keys}
}

// Press queues a key for the next poll.
func (h *Headless) Press(key int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys = append(h.keys, key)
}

func (h *Headless) PollKey() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.keys) == 0 {
		return KeyNone
	}
	k := h.keys[0]
	h.keys = h.keys[1:]
	return k
}

func (h *Headless) Show(*gocv.Mat) {
	h.mu.Lock()
	h.shown++
	h.mu.Unlock()
}

// Shown returns how many frames were shown.
func (h *Headless) Shown() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shown
}

func (h *Headless) Close() error { return nil }
