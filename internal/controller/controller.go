package controller

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/motion"
	"github.com/ayusman/mudra/internal/pointer"
)

// CursorSource reports the current OS cursor position.
type CursorSource interface {
	CursorPosition() (x, y int, err error)
}

// Config holds controller tuning.
type Config struct {
	Motion             motion.Config
	Thresholds         gesture.Thresholds
	Scroll             Scroller
	DragDelay          time.Duration
	RightClickCooldown time.Duration
	// Gaming starts the session in zero-latency mode.
	Gaming bool
}

// DefaultConfig returns the standard controller tuning.
func DefaultConfig() Config {
	return Config{
		Motion:             motion.DefaultConfig(),
		Thresholds:         gesture.DefaultThresholds(),
		Scroll:             DefaultScroller(),
		DragDelay:          200 * time.Millisecond,
		RightClickCooldown: time.Second,
	}
}

// Validate checks the tuning for values that would stall or invert the controller.
func (c Config) Validate() error {
	if c.Motion.Sensitivity <= 0 {
		return fmt.Errorf("sensitivity must be positive, got %v", c.Motion.Sensitivity)
	}
	if c.Motion.SpeedCeiling <= 0 {
		return fmt.Errorf("speed ceiling must be positive, got %v", c.Motion.SpeedCeiling)
	}
	if c.DragDelay < 0 {
		return fmt.Errorf("drag delay must not be negative, got %v", c.DragDelay)
	}
	if c.RightClickCooldown <= 0 {
		return fmt.Errorf("right click cooldown must be positive, got %v", c.RightClickCooldown)
	}
	return nil
}

// Snapshot is a read-only view of the controller after the last frame.
type Snapshot struct {
	State       gesture.State
	Rule        string
	HandPresent bool
	Fingers     gesture.FingerState
	Pinch       float64
	Gaming      bool
	Dragging    bool
	// DragProgress is how far a desktop-mode pinch is toward becoming a drag, in [0,1].
	DragProgress   float64
	ClickFlash     time.Time
	LastRightClick time.Time
	Frame          uint64
}

// Controller runs the gesture state machine for one session.
// It is not safe for concurrent use.
type Controller struct {
	cfg        Config
	screen     motion.Size
	cursor     CursorSource
	classifier *gesture.Classifier
	filter     *motion.Filter
	debouncer  *Debouncer
	scroller   Scroller
	rightClick *RightClickLimiter
	logger     *zap.Logger

	s    Session
	last Snapshot
}

// New creates a Controller for a screen of the given size. cursor is queried
// before every cursor move.
func New(cfg Config, screen motion.Size, cursor CursorSource, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		cfg:        cfg,
		screen:     screen,
		cursor:     cursor,
		classifier: gesture.NewClassifier(cfg.Thresholds),
		filter:     motion.NewFilter(cfg.Motion),
		debouncer:  NewDebouncer(cfg.DragDelay, logger),
		scroller:   cfg.Scroll,
		rightClick: NewRightClickLimiter(cfg.RightClickCooldown, logger),
		logger:     logger,
	}
	c.s.Gaming = cfg.Gaming
	c.last.Gaming = cfg.Gaming
	return c
}

// Process handles one frame. l is nil when no hand was detected.
// It returns the recognized gesture and the pointer actions to inject, in order.
func (c *Controller) Process(l *hand.Landmarks, now time.Time) (gesture.State, []pointer.Action) {
	frame := c.last.Frame + 1
	prev := c.last.State
	prevPresent := c.last.HandPresent

	if l == nil {
		actions := noHand(c, now)
		c.last = Snapshot{
			State:          gesture.Idle,
			Gaming:         c.s.Gaming,
			Dragging:       c.s.Dragging,
			ClickFlash:     c.s.ClickFlash,
			LastRightClick: c.s.LastRightClick,
			Frame:          frame,
		}
		if prevPresent {
			c.logger.Debug("hand lost")
		}
		return gesture.Idle, actions
	}

	obs := gesture.Observation{
		Fingers:   gesture.Fingers(l),
		Pinch:     l.PinchDistance(),
		FistSeen:  !c.s.LastFist.IsZero(),
		SinceFist: now.Sub(c.s.LastFist),
	}
	state, rule := c.classifier.Classify(obs)
	if state == gesture.Idle {
		c.s.LastFist = now
	}

	var actions []pointer.Action
	if eff, ok := dispatch[state]; ok {
		actions = eff(c, l, now)
	}
	if state != gesture.Scrolling {
		c.scroller.Reset(&c.s)
	}

	progress := 0.0
	if state == gesture.LeftClick && !c.s.Gaming && !c.s.Dragging {
		progress = c.debouncer.Progress(&c.s, now)
	}
	c.last = Snapshot{
		State:          state,
		Rule:           rule,
		HandPresent:    true,
		Fingers:        obs.Fingers,
		Pinch:          obs.Pinch,
		Gaming:         c.s.Gaming,
		Dragging:       c.s.Dragging,
		DragProgress:   progress,
		ClickFlash:     c.s.ClickFlash,
		LastRightClick: c.s.LastRightClick,
		Frame:          frame,
	}
	if state != prev || !prevPresent {
		c.logger.Info("gesture changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", state),
			zap.String("rule", rule))
	}
	return state, actions
}

// ToggleGaming flips zero-latency mode and returns the new setting.
// A drag held across the toggle is still released by the next non-pinch frame.
// A pinch being timed for a click or drag is forgotten.
func (c *Controller) ToggleGaming() bool {
	c.s.Gaming = !c.s.Gaming
	c.s.PinchStart = time.Time{}
	c.last.Gaming = c.s.Gaming
	c.logger.Info("gaming mode toggled", zap.Bool("gaming", c.s.Gaming))
	return c.s.Gaming
}

// Gaming reports whether zero-latency mode is on.
func (c *Controller) Gaming() bool {
	return c.s.Gaming
}

// Release returns the button-up needed to end a held drag, if any.
// Call it before shutting down the pointer.
func (c *Controller) Release() []pointer.Action {
	c.s.PinchStart = time.Time{}
	if !c.s.Dragging {
		return nil
	}
	c.s.Dragging = false
	c.last.Dragging = false
	c.logger.Info("drag released on shutdown")
	return []pointer.Action{{Kind: pointer.ButtonUp}}
}

// Snapshot returns the state after the most recent frame.
func (c *Controller) Snapshot() Snapshot {
	return c.last
}

// Session returns a copy of the session state.
func (c *Controller) Session() Session {
	return c.s
}

// Screen returns the screen extent the controller maps motion onto.
func (c *Controller) Screen() motion.Size {
	return c.screen
}

// moveCursor steps the motion filter and returns the resulting cursor move.
// The move is dropped when the cursor position cannot be read.
func (c *Controller) moveCursor(l *hand.Landmarks, freeze bool) []pointer.Action {
	d, ok := c.filter.Step(&c.s.Motion, l.Tracking(), c.screen, freeze)
	if !ok {
		return nil
	}
	x, y, err := c.cursor.CursorPosition()
	if err != nil {
		c.logger.Debug("cursor position unavailable, skipping move", zap.Error(err))
		return nil
	}
	nx, ny := motion.Clamp(x, y, d, c.screen)
	return []pointer.Action{pointer.MoveTo(nx, ny)}
}
