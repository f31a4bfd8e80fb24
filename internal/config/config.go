// Package config holds the runtime configuration. Values come from defaults,
// MUDRA_* environment variables and command-line flags; there are no config files.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/controller"
	"github.com/ayusman/mudra/internal/detector"
)

// EnvPrefix is the prefix of every environment override, e.g. MUDRA_CAMERA_DEVICE.
const EnvPrefix = "MUDRA"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full runtime configuration.
type Config struct {
	Camera   CameraConfig   `mapstructure:"camera"`
	Detector DetectorConfig `mapstructure:"detector"`
	Control  ControlConfig  `mapstructure:"control"`
	UI       UIConfig       `mapstructure:"ui"`
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// CameraConfig selects and shapes the capture device.
type CameraConfig struct {
	Device int  `mapstructure:"device"`
	Width  int  `mapstructure:"width"`
	Height int  `mapstructure:"height"`
	FPS    int  `mapstructure:"fps"`
	Mirror bool `mapstructure:"mirror"`
}

// DetectorConfig configures the MediaPipe helper.
type DetectorConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
	MinTracking   float64 `mapstructure:"min_tracking"`
	Script        string  `mapstructure:"script"`
	Python        string  `mapstructure:"python"`
	// SkipStatic skips detection while no hand is tracked and the scene is still.
	SkipStatic bool `mapstructure:"skip_static"`
}

// ControlConfig tunes the pointer controller.
type ControlConfig struct {
	Sensitivity float64 `mapstructure:"sensitivity"`
	Gaming      bool    `mapstructure:"gaming"`
	// DryRun records pointer actions instead of injecting them.
	DryRun bool `mapstructure:"dry_run"`
}

// UIConfig toggles the optional front ends.
type UIConfig struct {
	Preview bool `mapstructure:"preview"`
	Tray    bool `mapstructure:"tray"`
}

// ServerConfig configures the local status server. An empty Addr disables it.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggerConfig configures structured logging.
type LoggerConfig struct {
	Level       string      `mapstructure:"level"`
	Format      string      `mapstructure:"format"`
	AddSource   bool        `mapstructure:"add_source"`
	ServiceName string      `mapstructure:"service_name"`
	LogFile     string      `mapstructure:"log_file"`
	MaxSize     int         `mapstructure:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups"`
	MaxAge      int         `mapstructure:"max_age"`
	Compress    bool        `mapstructure:"compress"`
	Colors      ColorConfig `mapstructure:"colors"`
}

// ColorConfig names the console color of each log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug"`
	Info   string `mapstructure:"info"`
	Warn   string `mapstructure:"warn"`
	Error  string `mapstructure:"error"`
	DPanic string `mapstructure:"dpanic"`
	Panic  string `mapstructure:"panic"`
	Fatal  string `mapstructure:"fatal"`
}

// SetDefaults registers every key with its default value. Keys must be
// registered for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	cam := capture.DefaultConfig()
	v.SetDefault("camera.device", cam.Device)
	v.SetDefault("camera.width", cam.Width)
	v.SetDefault("camera.height", cam.Height)
	v.SetDefault("camera.fps", cam.FPS)
	v.SetDefault("camera.mirror", cam.Mirror)

	det := detector.DefaultConfig()
	v.SetDefault("detector.min_confidence", det.MinConfidence)
	v.SetDefault("detector.min_tracking", det.MinTrackingConf)
	v.SetDefault("detector.script", "")
	v.SetDefault("detector.python", "")
	v.SetDefault("detector.skip_static", false)

	ctl := controller.DefaultConfig()
	v.SetDefault("control.sensitivity", ctl.Motion.Sensitivity)
	v.SetDefault("control.gaming", false)
	v.SetDefault("control.dry_run", false)

	v.SetDefault("ui.preview", true)
	v.SetDefault("ui.tray", false)

	v.SetDefault("server.addr", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "mudra")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")
}

// BindEnv makes MUDRA_* environment variables override registered keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// New returns a viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

// Default returns the configuration with only defaults applied.
func Default() Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults always decode.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every section. All errors wrap ErrInvalid.
func (c Config) Validate() error {
	if c.Camera.Device < 0 {
		return invalid("camera.device must not be negative, got %d", c.Camera.Device)
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return invalid("camera.width and camera.height must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.FPS <= 0 {
		return invalid("camera.fps must be positive, got %d", c.Camera.FPS)
	}
	if err := c.Detection().Validate(); err != nil {
		return invalid("detector: %v", err)
	}
	if err := c.Controller().Validate(); err != nil {
		return invalid("control: %v", err)
	}
	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return invalid("server.addr %q: %v", c.Server.Addr, err)
		}
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return invalid("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}

// Capture returns the camera settings.
func (c Config) Capture() capture.Config {
	return capture.Config{
		Device: c.Camera.Device,
		Width:  c.Camera.Width,
		Height: c.Camera.Height,
		FPS:    c.Camera.FPS,
		Mirror: c.Camera.Mirror,
	}
}

// Detection returns the detector settings.
func (c Config) Detection() detector.Config {
	d := detector.DefaultConfig()
	d.MinConfidence = c.Detector.MinConfidence
	d.MinTrackingConf = c.Detector.MinTracking
	d.ScriptPath = c.Detector.Script
	d.Python = c.Detector.Python
	return d
}

// Controller returns the controller tuning.
func (c Config) Controller() controller.Config {
	ctl := controller.DefaultConfig()
	ctl.Motion.Sensitivity = c.Control.Sensitivity
	ctl.Gaming = c.Control.Gaming
	return ctl
}
