package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0, cfg.Camera.Device)
	assert.Equal(t, 1280, cfg.Camera.Width)
	assert.Equal(t, 720, cfg.Camera.Height)
	assert.True(t, cfg.Camera.Mirror)
	assert.Equal(t, 0.8, cfg.Detector.MinConfidence)
	assert.Equal(t, 0.7, cfg.Detector.MinTracking)
	assert.Equal(t, 1.3, cfg.Control.Sensitivity)
	assert.False(t, cfg.Control.Gaming)
	assert.True(t, cfg.UI.Preview)
	assert.Empty(t, cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MUDRA_CAMERA_DEVICE", "2")
	t.Setenv("MUDRA_CONTROL_SENSITIVITY", "2.5")
	t.Setenv("MUDRA_CONTROL_GAMING", "true")
	t.Setenv("MUDRA_SERVER_ADDR", "127.0.0.1:8765")
	t.Setenv("MUDRA_LOGGER_FORMAT", "json")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Camera.Device)
	assert.Equal(t, 2.5, cfg.Control.Sensitivity)
	assert.True(t, cfg.Control.Gaming)
	assert.Equal(t, "127.0.0.1:8765", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_ExplicitSetWins(t *testing.T) {
	t.Setenv("MUDRA_CAMERA_WIDTH", "640")
	v := New()
	v.Set("camera.width", 1920)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Camera.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative device", func(c *Config) { c.Camera.Device = -1 }},
		{"zero width", func(c *Config) { c.Camera.Width = 0 }},
		{"zero fps", func(c *Config) { c.Camera.FPS = 0 }},
		{"confidence above one", func(c *Config) { c.Detector.MinConfidence = 1.2 }},
		{"tracking below zero", func(c *Config) { c.Detector.MinTracking = -0.1 }},
		{"zero sensitivity", func(c *Config) { c.Control.Sensitivity = 0 }},
		{"bad server addr", func(c *Config) { c.Server.Addr = "localhost" }},
		{"bad log format", func(c *Config) { c.Logger.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("camera.fps", -1)

	_, err := Load(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Camera.Device = 3
	cfg.Camera.Mirror = false
	cfg.Detector.Script = "/opt/mudra/mediapipe_service.py"
	cfg.Control.Sensitivity = 2.0
	cfg.Control.Gaming = true

	cam := cfg.Capture()
	assert.Equal(t, 3, cam.Device)
	assert.False(t, cam.Mirror)

	det := cfg.Detection()
	assert.Equal(t, 1, det.MaxHands)
	assert.Equal(t, "/opt/mudra/mediapipe_service.py", det.ScriptPath)
	assert.Equal(t, 30*time.Second, det.IdleTimeout)

	ctl := cfg.Controller()
	assert.Equal(t, 2.0, ctl.Motion.Sensitivity)
	assert.True(t, ctl.Gaming)
	assert.Equal(t, 200*time.Millisecond, ctl.DragDelay)
}
