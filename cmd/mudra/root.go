package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/observability"
	"github.com/ayusman/mudra/internal/pointer"
)

// options carries the loaded configuration and the adapter constructors,
// which tests replace with mocks.
type options struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger

	newCamera   func(capture.Config) capture.Camera
	newDetector func(detector.Config, *zap.Logger) (detector.Detector, error)
	newInjector func() (pointer.Injector, error)
	newDisplay  func(title string) app.Display
}

func defaultOptions() *options {
	return &options{
		v:         config.New(),
		newCamera: capture.NewCamera,
		newDetector: func(cfg detector.Config, logger *zap.Logger) (detector.Detector, error) {
			d, err := detector.NewMediaPipeDetector(cfg, logger)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
		newInjector: pointer.NewSystem,
		newDisplay: func(title string) app.Display {
			return app.NewWindow(title)
		},
	}
}

// load runs before every subcommand: flags and MUDRA_* variables are merged
// over the defaults, then logging is set up from the result.
func (o *options) load() error {
	cfg, err := config.Load(o.v)
	if err != nil {
		observability.InitializeLogger(config.Default().Logger)
		return fmt.Errorf("failed to load config: %w", err)
	}
	observability.InitializeLogger(cfg.Logger)

	o.cfg = cfg
	o.logger = observability.GetLogger()
	o.logger.Debug("configuration loaded",
		zap.String("version", Version),
		zap.Int("camera", cfg.Camera.Device),
		zap.String("server", cfg.Server.Addr))
	return nil
}

func newRootCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mudra",
		Short:         "Control the mouse with hand gestures.",
		Long:          "Mudra turns webcam hand gestures into cursor movement, clicks, drags, right-clicks and scrolling.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	def := config.Default()
	flags := cmd.PersistentFlags()
	flags.Int("camera", def.Camera.Device, "camera device index")
	flags.Int("width", def.Camera.Width, "capture width")
	flags.Int("height", def.Camera.Height, "capture height")
	flags.Int("fps", def.Camera.FPS, "capture frame rate")
	flags.Bool("mirror", def.Camera.Mirror, "mirror frames horizontally")
	flags.Float64("min-confidence", def.Detector.MinConfidence, "minimum hand detection confidence")
	flags.Float64("min-tracking", def.Detector.MinTracking, "minimum hand tracking confidence")
	flags.String("detector-script", def.Detector.Script, "path to mediapipe_service.py")
	flags.String("python", def.Detector.Python, "python interpreter for the detector")
	flags.Bool("skip-static", def.Detector.SkipStatic, "skip detection while the scene is still and no hand is tracked")
	flags.Bool("preview", def.UI.Preview, "show the preview window")
	flags.String("addr", def.Server.Addr, "status server address, e.g. 127.0.0.1:8765 (empty disables)")
	flags.String("log-level", def.Logger.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", def.Logger.Format, "log format (console, json)")
	flags.String("log-file", def.Logger.LogFile, "also write JSON logs to this rotating file")

	bindFlags(o.v, flags, map[string]string{
		"camera.device":           "camera",
		"camera.width":            "width",
		"camera.height":           "height",
		"camera.fps":              "fps",
		"camera.mirror":           "mirror",
		"detector.min_confidence": "min-confidence",
		"detector.min_tracking":   "min-tracking",
		"detector.script":         "detector-script",
		"detector.python":         "python",
		"detector.skip_static":    "skip-static",
		"ui.preview":              "preview",
		"server.addr":             "addr",
		"logger.level":            "log-level",
		"logger.format":           "log-format",
		"logger.log_file":         "log-file",
	})

	cmd.AddCommand(newRunCommand(o), newPracticeCommand(o), newCheckCommand(o))
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			// Only a nil flag fails, which is a programming error.
			panic(fmt.Sprintf("bind flag %q: %v", name, err))
		}
	}
}
