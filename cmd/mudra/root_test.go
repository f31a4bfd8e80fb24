package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/observability"
	"github.com/ayusman/mudra/internal/pointer"
)

// testOptions wires mocks in place of the camera, detector, injector and window.
type testOptions struct {
	*options
	cameras  []capture.Config
	detector *detector.MockDetector
	recorder *pointer.Recorder
}

func newTestOptions(t *testing.T) *testOptions {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	to := &testOptions{
		options:  &options{v: config.New()},
		detector: detector.NewMockDetector(),
		recorder: pointer.NewRecorder(1920, 1080),
	}
	to.newCamera = func(cfg capture.Config) capture.Camera {
		to.cameras = append(to.cameras, cfg)
		return capture.NewMockCamera(nil, false)
	}
	to.newDetector = func(detector.Config, *zap.Logger) (detector.Detector, error) {
		return to.detector, nil
	}
	to.newInjector = func() (pointer.Injector, error) { return to.recorder, nil }
	to.newDisplay = func(string) app.Display { return app.NewHeadless() }
	return to
}

func runCLI(t *testing.T, o *options, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(o)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_VersionFlag(t *testing.T) {
	o := newTestOptions(t)
	out, _, err := runCLI(t, o.options, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	o := newTestOptions(t)
	out, _, err := runCLI(t, o.options)
	require.NoError(t, err)
	assert.Contains(t, out, "Mudra turns webcam hand gestures")
	for _, sub := range []string{"run", "practice", "check"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	o := newTestOptions(t)
	_, _, err := runCLI(t, o.options, "--fps", "0", "check")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid), "got %v", err)
	assert.Empty(t, o.cameras, "nothing should be opened with an invalid config")
}

func TestRootCmd_FlagBeatsEnv(t *testing.T) {
	if testing.Short() {
		t.Skip("needs OpenCV for the probe frame")
	}
	t.Setenv("MUDRA_CAMERA_DEVICE", "3")
	t.Setenv("MUDRA_CAMERA_WIDTH", "640")

	o := newTestOptions(t)
	_, _, err := runCLI(t, o.options, "--camera", "5", "check")
	require.ErrorIs(t, err, app.ErrCheckFailed)
	require.Len(t, o.cameras, 1)
	assert.Equal(t, 5, o.cameras[0].Device)
	assert.Equal(t, 640, o.cameras[0].Width)
}

func TestCheckCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("needs OpenCV for the probe frame")
	}
	o := newTestOptions(t)
	o.detector.SetError(errors.New("no python"))

	out, _, err := runCLI(t, o.options, "check")
	require.ErrorIs(t, err, app.ErrCheckFailed)
	assert.Contains(t, out, "[X] ERROR: cannot read from camera")
	assert.Contains(t, out, "[X] ERROR: detection failed: no python")
	assert.Contains(t, out, "[OK] Pointer OK - Screen size: 1920x1080")
	assert.True(t, o.detector.Closed())
}

func TestPracticeCmd_CameraFailure(t *testing.T) {
	o := newTestOptions(t)
	_, stderr, err := runCLI(t, o.options, "--preview=false", "practice")
	require.ErrorIs(t, err, app.ErrAcquisition)
	assert.Contains(t, stderr, "Could not read from camera 0")
	assert.Equal(t, 0, o.detector.Calls())
	assert.True(t, o.detector.Closed())
}

func TestRunCmd_DryRunSkipsInjector(t *testing.T) {
	o := newTestOptions(t)
	o.newInjector = func() (pointer.Injector, error) {
		t.Error("system injector must not be created in a dry run")
		return nil, errors.New("unexpected")
	}
	_, _, err := runCLI(t, o.options, "--preview=false", "run", "--dry-run")
	require.ErrorIs(t, err, app.ErrAcquisition)
}

func TestRunCmd_InjectorUnavailable(t *testing.T) {
	o := newTestOptions(t)
	o.newInjector = func() (pointer.Injector, error) { return nil, pointer.ErrUnsupported }
	_, _, err := runCLI(t, o.options, "--preview=false", "run")
	require.ErrorIs(t, err, pointer.ErrUnsupported)
	assert.True(t, o.detector.Closed())
}

func TestCommandFromName(t *testing.T) {
	tests := []struct {
		name string
		want app.Command
		ok   bool
	}{
		{"toggle_gaming", app.CmdToggleGaming, true},
		{"quit", app.CmdQuit, true},
		{"click", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := commandFromName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
