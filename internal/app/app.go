// Package app runs a gesture session: it reads frames, detects the hand,
// drives the controller, injects pointer actions and renders the preview.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/controller"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/hud"
	"github.com/ayusman/mudra/internal/motion"
	"github.com/ayusman/mudra/internal/pointer"
)

// ErrAcquisition is returned by Run when the frame source fails.
var ErrAcquisition = errors.New("frame acquisition failed")

// Mode selects what a session does with recognized gestures.
type Mode int

const (
	// ModeControl drives the system pointer.
	ModeControl Mode = iota
	// ModePractice only shows the practice labels.
	ModePractice
)

func (m Mode) String() string {
	if m == ModePractice {
		return "practice"
	}
	return "control"
}

// Command is an out-of-band request delivered to the loop.
type Command int

const (
	CmdToggleGaming Command = iota + 1
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdToggleGaming:
		return "toggle_gaming"
	case CmdQuit:
		return "quit"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Config configures a session.
type Config struct {
	Mode Mode
	// DryRun runs the controller in practice mode and reports the actions it
	// would inject. The injector should be a recorder.
	DryRun bool
	// SkipStatic skips detection while no hand is tracked and the scene is still.
	SkipStatic bool
	// ActivityThreshold is the changed-pixel percentage that counts as scene
	// activity. Zero uses capture.DefaultActivityThreshold.
	ActivityThreshold float64
	Controller        controller.Config
}

// Publisher receives one status event per processed frame. Publish must not block.
type Publisher interface {
	Publish(v any)
}

// FrameSink receives the annotated preview frame. The Mat is only valid
// during the call.
type FrameSink interface {
	Update(frame *gocv.Mat)
}

// Deps are the collaborators of a session. Camera and Detector are required;
// Injector is required when a controller runs.
type Deps struct {
	Camera    capture.Camera
	Detector  detector.Detector
	Injector  pointer.Injector
	Display   Display
	Publisher Publisher
	Frames    FrameSink
	// OnGesture is called when the recognized gesture changes.
	OnGesture func(state gesture.State)
	SessionID string
	Clock     func() time.Time
}

// App is one gesture session. Run must be called at most once.
type App struct {
	config Config
	deps   Deps
	logger *zap.Logger

	ctrl     *controller.Controller
	activity *capture.ActivityMeter
	fps      hud.FPSMeter
	commands chan Command

	handSeen   bool
	lastAction string
	faults     int
}

// New builds a session. In control mode, and in practice mode with DryRun,
// the injector's screen size is read here.
func New(config Config, deps Deps, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Camera == nil {
		return nil, errors.New("app: camera is required")
	}
	if deps.Detector == nil {
		return nil, errors.New("app: detector is required")
	}
	if deps.Display == nil {
		deps.Display = NewHeadless()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	a := &App{
		config:   config,
		deps:     deps,
		logger:   logger,
		commands: make(chan Command, 8),
	}

	if config.Mode == ModeControl || config.DryRun {
		if deps.Injector == nil {
			return nil, errors.New("app: injector is required to run the controller")
		}
		if err := config.Controller.Validate(); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		w, h, err := deps.Injector.ScreenSize()
		if err != nil {
			return nil, fmt.Errorf("app: read screen size: %w", err)
		}
		a.ctrl = controller.New(config.Controller, motion.Size{W: w, H: h}, deps.Injector, logger.Named("controller"))
		logger.Info("controller ready",
			zap.Int("screen_w", w),
			zap.Int("screen_h", h),
			zap.Bool("gaming", config.Controller.Gaming))
	}

	if config.SkipStatic {
		a.activity = capture.NewActivityMeter(config.ActivityThreshold)
	}

	return a, nil
}

// Send queues a command for the loop. It reports false when the queue is full.
func (a *App) Send(cmd Command) bool {
	select {
	case a.commands <- cmd:
		return true
	default:
		return false
	}
}

// Controller returns the session's controller, or nil in plain practice mode.
func (a *App) Controller() *controller.Controller {
	return a.ctrl
}

// Faults returns how many frames were abandoned after a panic.
func (a *App) Faults() int {
	return a.faults
}

// Run processes frames until ctx is cancelled, the quit key or command
// arrives, or the frame source fails. A held drag is always released before
// the detector, camera and display are closed.
func (a *App) Run(ctx context.Context) error {
	if err := a.deps.Camera.Open(); err != nil {
		a.closeAll()
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer a.shutdown()

	a.logger.Info("session started", zap.Stringer("mode", a.config.Mode))
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("session cancelled")
			return nil
		default:
		}

		quit, err := a.step()
		if err != nil {
			a.logger.Error("session ended", zap.Error(err))
			return err
		}
		if quit {
			a.logger.Info("session ended by user")
			return nil
		}
	}
}

// step reads and handles one frame, then polls keys and drains commands.
// Key handling runs even when the frame faulted.
func (a *App) step() (bool, error) {
	frame, err := a.deps.Camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer frame.Close()

	a.guard(frame)

	quit := a.handleKey(a.deps.Display.PollKey())
	for {
		select {
		case cmd := <-a.commands:
			if a.handleCommand(cmd) {
				quit = true
			}
		default:
			return quit, nil
		}
	}
}

// guard is the per-frame fault boundary. It covers processing, preview
// encoding and display; a panic anywhere in them drops the rest of the frame.
func (a *App) guard(frame *gocv.Mat) {
	defer func() {
		if r := recover(); r != nil {
			a.faults++
			a.logger.Error("frame processing panicked",
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	a.processFrame(frame)

	if a.deps.Frames != nil {
		a.deps.Frames.Update(frame)
	}
	a.deps.Display.Show(frame)
}

func (a *App) processFrame(frame *gocv.Mat) {
	now := a.deps.Clock()

	l, ok := a.detect(frame)
	if !ok {
		return
	}
	a.handSeen = l != nil

	if a.config.Mode == ModePractice {
		a.practice(frame, l, now)
		return
	}
	a.control(frame, l, now)
}

// detect returns the primary hand, nil for none. It reports false when the
// frame should be skipped entirely.
func (a *App) detect(frame *gocv.Mat) (*hand.Landmarks, bool) {
	if a.activity != nil && !a.handSeen {
		if active, _ := a.activity.Measure(frame); !active {
			return nil, true
		}
	}

	hands, err := a.deps.Detector.Detect(frame)
	if err != nil {
		a.logger.Warn("hand detection failed, skipping frame", zap.Error(err))
		return nil, false
	}
	return detector.Primary(hands), true
}

func (a *App) control(frame *gocv.Mat, l *hand.Landmarks, now time.Time) {
	prev := a.ctrl.Snapshot()
	state, actions := a.ctrl.Process(l, now)
	pointer.Apply(a.deps.Injector, actions, a.logger.Named("pointer"))

	snap := a.ctrl.Snapshot()
	hud.Control(frame, l, snap, now)
	a.publish(snap, actions, "", now)
	a.notify(prev, snap, state)
}

func (a *App) practice(frame *gocv.Mat, l *hand.Landmarks, now time.Time) {
	view := hud.PracticeView{
		Landmarks: l,
		Label:     gesture.LabelNoHand,
		FPS:       a.fps.Tick(now),
	}
	if l != nil {
		view.Fingers = gesture.Fingers(l)
		view.Label = gesture.Practice(view.Fingers)
	}

	var snap controller.Snapshot
	var actions []pointer.Action
	if a.ctrl != nil {
		prev := a.ctrl.Snapshot()
		var state gesture.State
		state, actions = a.ctrl.Process(l, now)
		pointer.Apply(a.deps.Injector, actions, a.logger.Named("pointer"))
		for _, act := range actions {
			a.logger.Debug("dry run action", zap.Stringer("action", act))
		}
		if len(actions) > 0 {
			a.lastAction = actions[len(actions)-1].String()
		}
		snap = a.ctrl.Snapshot()
		a.notify(prev, snap, state)
	} else {
		snap = controller.Snapshot{HandPresent: l != nil, Fingers: view.Fingers}
	}
	view.Action = a.lastAction

	hud.Practice(frame, view)
	a.publish(snap, actions, view.Label.Name, now)
}

func (a *App) notify(prev, snap controller.Snapshot, state gesture.State) {
	if a.deps.OnGesture == nil {
		return
	}
	if prev.Frame == 0 || prev.State != state || prev.HandPresent != snap.HandPresent {
		a.deps.OnGesture(state)
	}
}

func (a *App) publish(snap controller.Snapshot, actions []pointer.Action, label string, now time.Time) {
	if a.deps.Publisher == nil {
		return
	}
	a.deps.Publisher.Publish(NewEvent(a.deps.SessionID, a.config.Mode, snap, actions, label, now))
}

// handleKey reports whether the key requests shutdown.
func (a *App) handleKey(key int) bool {
	switch key {
	case KeyQuit:
		return true
	case KeyGaming:
		a.toggleGaming()
	}
	return false
}

func (a *App) handleCommand(cmd Command) bool {
	switch cmd {
	case CmdQuit:
		return true
	case CmdToggleGaming:
		a.toggleGaming()
	default:
		a.logger.Warn("unknown command", zap.Stringer("command", cmd))
	}
	return false
}

func (a *App) toggleGaming() {
	if a.ctrl == nil {
		return
	}
	a.ctrl.ToggleGaming()
}

// shutdown releases a held drag, then closes the detector, camera and display.
func (a *App) shutdown() {
	if a.ctrl != nil {
		if release := a.ctrl.Release(); len(release) > 0 {
			pointer.Apply(a.deps.Injector, release, a.logger.Named("pointer"))
		}
	}
	a.closeAll()
}

func (a *App) closeAll() {
	if err := a.deps.Detector.Close(); err != nil {
		a.logger.Warn("close detector", zap.Error(err))
	}
	if err := a.deps.Camera.Close(); err != nil {
		a.logger.Warn("close camera", zap.Error(err))
	}
	if err := a.deps.Display.Close(); err != nil {
		a.logger.Warn("close display", zap.Error(err))
	}
	if a.activity != nil {
		a.activity.Close()
	}
}
