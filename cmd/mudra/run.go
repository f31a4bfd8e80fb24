package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/observability"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/tray"
)

// Dry runs have no real screen to measure.
const (
	dryRunWidth  = 1920
	dryRunHeight = 1080
)

func newRunCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a gesture mouse control session.",
		Long: `Start a gesture mouse control session.

Point with the index finger to move, pinch to click (hold to drag), raise
the pinky to right-click, raise index and middle to scroll, and make a fist
to pause. Press 'g' to toggle gaming mode and 'q' to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.session(cmd, app.ModeControl)
		},
	}

	flags := cmd.Flags()
	def := config.Default()
	flags.Float64("sensitivity", def.Control.Sensitivity, "cursor acceleration multiplier")
	flags.Bool("gaming", def.Control.Gaming, "start in zero-latency gaming mode")
	flags.Bool("dry-run", def.Control.DryRun, "record pointer actions instead of injecting them")
	flags.Bool("tray", def.UI.Tray, "show a system tray menu")
	bindFlags(o.v, flags, map[string]string{
		"control.sensitivity": "sensitivity",
		"control.gaming":      "gaming",
		"control.dry_run":     "dry-run",
		"ui.tray":             "tray",
	})
	return cmd
}

func newPracticeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Practice gestures without controlling the mouse.",
		Long: `Practice gestures without controlling the mouse.

The preview shows the recognized gesture, which fingers are raised and the
frame rate. With --dry-run-controller the real controller also runs and the
actions it would have injected are shown and logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.session(cmd, app.ModePractice)
		},
	}
	cmd.Flags().Bool("dry-run-controller", false, "run the controller against a recorder")
	// Practice never injects, so the flag has its own key rather than
	// sharing control.dry_run with run.
	bindFlags(o.v, cmd.Flags(), map[string]string{"practice.dry_run": "dry-run-controller"})
	return cmd
}

// commandFromName maps tray and status server command names to session commands.
func commandFromName(name string) (app.Command, bool) {
	switch name {
	case app.CmdToggleGaming.String():
		return app.CmdToggleGaming, true
	case app.CmdQuit.String():
		return app.CmdQuit, true
	}
	return 0, false
}

func (o *options) session(cmd *cobra.Command, mode app.Mode) error {
	cfg := o.cfg
	logger := o.logger.Named(mode.String())

	dryRun := cfg.Control.DryRun
	if mode == app.ModePractice {
		dryRun = o.v.GetBool("practice.dry_run")
	}

	det, err := o.newDetector(cfg.Detection(), o.logger.Named("detector"))
	if err != nil {
		return fmt.Errorf("start hand detector: %w", err)
	}

	var inj pointer.Injector
	switch {
	case dryRun:
		inj = pointer.NewRecorder(dryRunWidth, dryRunHeight)
	case mode == app.ModeControl:
		if inj, err = o.newInjector(); err != nil {
			det.Close()
			return fmt.Errorf("pointer injection unavailable: %w", err)
		}
	}

	var display app.Display = app.NewHeadless()
	if cfg.UI.Preview {
		title := "Mudra"
		if mode == app.ModePractice {
			title = "Mudra Practice"
		}
		display = o.newDisplay(title)
	}

	var a *app.App
	send := func(name string) bool {
		c, ok := commandFromName(name)
		return ok && a.Send(c)
	}

	deps := app.Deps{
		Camera:    o.newCamera(cfg.Capture()),
		Detector:  det,
		Injector:  inj,
		Display:   display,
		SessionID: observability.SessionID(),
	}

	var services []app.Service
	if cfg.Server.Addr != "" {
		srv := server.New(server.Config{
			Addr:      cfg.Server.Addr,
			OnCommand: send,
			Logger:    o.logger.Named("server"),
		})
		deps.Publisher = srv
		deps.Frames = srv
		services = append(services, srv)
	}

	var tr *tray.Tray
	if cfg.UI.Tray && mode == app.ModeControl {
		tr = tray.New(o.logger.Named("tray"))
		tr.SetGaming(cfg.Control.Gaming)
		tr.OnToggleGaming(func() { send(app.CmdToggleGaming.String()) })
		tr.OnQuit(func() { send(app.CmdQuit.String()) })
		deps.OnGesture = func(s gesture.State) { tr.SetLastGesture(s.String()) }
	}

	a, err = app.New(app.Config{
		Mode:       mode,
		DryRun:     dryRun,
		SkipStatic: cfg.Detector.SkipStatic,
		Controller: cfg.Controller(),
	}, deps, logger)
	if err != nil {
		det.Close()
		display.Close()
		return err
	}

	if tr == nil {
		err = app.Supervise(cmd.Context(), a, services...)
	} else {
		err = runWithTray(cmd.Context(), tr, a, services)
	}

	if rec, ok := inj.(*pointer.Recorder); ok {
		logger.Info("dry run finished", zap.Int("actions", len(rec.Actions())))
	}
	if errors.Is(err, app.ErrAcquisition) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not read from camera %d. Check that it is connected and not in use, or run: mudra check\n", cfg.Camera.Device)
	}
	return err
}

// runWithTray keeps the tray on the calling goroutine, which must be the main
// one on macOS, and runs the session beside it.
func runWithTray(ctx context.Context, tr *tray.Tray, a *app.App, services []app.Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- app.Supervise(ctx, a, services...)
		tr.Stop()
	}()
	tr.Run()
	cancel()
	return <-done
}
