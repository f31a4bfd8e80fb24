// Package tray provides a system tray menu for a running mudra session.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
	"go.uber.org/zap"
)

// Tray represents the system tray application.
type Tray struct {
	onToggleGaming func()
	onQuit         func()
	gaming         bool
	last           string
	mu             sync.RWMutex
	logger         *zap.Logger

	// Menu items stored for later updates
	menuGaming      *systray.MenuItem
	menuLastGesture *systray.MenuItem
}

// New creates a new Tray with gaming mode off.
func New(logger *zap.Logger) *Tray {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tray{logger: logger}
}

// GamingTitle is the menu label for the gaming toggle.
func GamingTitle(on bool) string {
	if on {
		return "● Gaming: on"
	}
	return "○ Gaming: off"
}

// LastGestureTitle is the menu label for the most recent gesture state.
func LastGestureTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}

// OnToggleGaming sets the callback run when the gaming item is clicked.
func (t *Tray) OnToggleGaming(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggleGaming = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Stop is called or Quit is clicked.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop removes the tray icon and makes Run return.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra hand gesture mouse")

	t.mu.Lock()
	t.menuGaming = systray.AddMenuItem(GamingTitle(t.gaming), "Toggle gaming mode")
	systray.AddSeparator()
	t.menuLastGesture = systray.AddMenuItem(LastGestureTitle(t.last), "Last gesture state")
	t.menuLastGesture.Disable()
	systray.AddSeparator()
	menuGaming := t.menuGaming
	t.mu.Unlock()

	menuQuit := systray.AddMenuItem("Quit", "Stop the session and quit")
	t.logger.Debug("tray ready")

	go func() {
		for {
			select {
			case <-menuGaming.ClickedCh:
				t.handleToggle()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.logger.Debug("tray exited")
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.gaming = !t.gaming
	if t.menuGaming != nil {
		t.menuGaming.SetTitle(GamingTitle(t.gaming))
	}
	callback := t.onToggleGaming
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// SetGaming updates the gaming toggle label.
func (t *Tray) SetGaming(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gaming = on
	if t.menuGaming != nil {
		t.menuGaming.SetTitle(GamingTitle(on))
	}
}

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = name
	if t.menuLastGesture != nil {
		t.menuLastGesture.SetTitle(LastGestureTitle(name))
	}
}

// Gaming returns the gaming state shown in the menu.
func (t *Tray) Gaming() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.gaming
}

// LastGesture returns the last gesture name shown in the menu.
func (t *Tray) LastGesture() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}
