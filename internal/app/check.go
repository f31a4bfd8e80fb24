package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/pointer"
)

// ErrCheckFailed is returned by Check when any probe fails.
var ErrCheckFailed = errors.New("system check failed")

// CheckDeps are the collaborators probed by Check. The constructors let Check
// report construction failures as ordinary probe failures.
type CheckDeps struct {
	Camera      capture.Camera
	NewDetector func() (detector.Detector, error)
	NewInjector func() (pointer.Injector, error)
}

// CheckResult is the outcome of one probe.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

const (
	probeWidth  = 640
	probeHeight = 480
	ruleWidth   = 50
)

// Check probes the camera, the hand detector and the pointer injector,
// writing an [OK]/[X] line for each and a summary to w.
func Check(w io.Writer, deps CheckDeps) ([]CheckResult, error) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Hand Gesture Controller - System Check")
	fmt.Fprintln(w, rule)

	probe := gocv.NewMat()
	defer probe.Close()

	results := []CheckResult{
		checkCamera(w, deps.Camera, &probe),
		checkDetector(w, deps.NewDetector, &probe),
		checkInjector(w, deps.NewInjector),
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, rule)
	failed := 0
	for _, r := range results {
		status := "PASS"
		if !r.OK {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%-20s %s\n", r.Name, status)
	}
	fmt.Fprintln(w, rule)

	if failed > 0 {
		fmt.Fprintln(w, "\n[WARNING] Some checks failed. See the errors above.")
		return results, fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(results))
	}
	fmt.Fprintln(w, "\n[SUCCESS] All checks passed. Run: mudra run")
	return results, nil
}

func report(w io.Writer, r CheckResult) CheckResult {
	if r.OK {
		fmt.Fprintf(w, "[OK] %s\n", r.Detail)
	} else {
		fmt.Fprintf(w, "[X] ERROR: %s\n", r.Detail)
	}
	return r
}

// checkCamera reads one frame into probe.
func checkCamera(w io.Writer, cam capture.Camera, probe *gocv.Mat) (res CheckResult) {
	fmt.Fprintln(w, "\nTesting camera access...")
	res = CheckResult{Name: "Camera"}
	defer func() {
		if r := recover(); r != nil {
			res.OK, res.Detail = false, fmt.Sprintf("camera check crashed: %v", r)
			report(w, res)
		}
	}()

	if cam == nil {
		res.Detail = "no camera configured"
		return report(w, res)
	}
	if err := cam.Open(); err != nil {
		res.Detail = fmt.Sprintf("cannot access camera: %v", err)
		return report(w, res)
	}
	defer cam.Close()

	frame, err := cam.ReadFrame()
	if err != nil {
		res.Detail = fmt.Sprintf("cannot read from camera: %v", err)
		return report(w, res)
	}
	defer frame.Close()
	frame.CopyTo(probe)

	res.OK = true
	res.Detail = fmt.Sprintf("Camera OK - Resolution: %dx%d", frame.Cols(), frame.Rows())
	return report(w, res)
}

// checkDetector runs one detection on probe, or on a blank frame when the
// camera probe failed.
func checkDetector(w io.Writer, newDetector func() (detector.Detector, error), probe *gocv.Mat) (res CheckResult) {
	fmt.Fprintln(w, "\nTesting hand detector...")
	res = CheckResult{Name: "Hand detector"}
	defer func() {
		if r := recover(); r != nil {
			res.OK, res.Detail = false, fmt.Sprintf("detector check crashed: %v", r)
			report(w, res)
		}
	}()

	if newDetector == nil {
		res.Detail = "no detector configured"
		return report(w, res)
	}
	d, err := newDetector()
	if err != nil {
		res.Detail = fmt.Sprintf("detector unavailable: %v", err)
		return report(w, res)
	}
	defer d.Close()

	frame := probe
	if probe.Empty() {
		blank := gocv.NewMatWithSize(probeHeight, probeWidth, gocv.MatTypeCV8UC3)
		defer blank.Close()
		frame = &blank
	}

	hands, err := d.Detect(frame)
	if err != nil {
		res.Detail = fmt.Sprintf("detection failed: %v", err)
		return report(w, res)
	}
	res.OK = true
	res.Detail = fmt.Sprintf("Hand detector OK - %d hand(s) in test frame", len(hands))
	return report(w, res)
}

func checkInjector(w io.Writer, newInjector func() (pointer.Injector, error)) (res CheckResult) {
	fmt.Fprintln(w, "\nTesting pointer injection...")
	res = CheckResult{Name: "Pointer"}
	defer func() {
		if r := recover(); r != nil {
			res.OK, res.Detail = false, fmt.Sprintf("pointer check crashed: %v", r)
			report(w, res)
		}
	}()

	if newInjector == nil {
		res.Detail = "no injector configured"
		return report(w, res)
	}
	inj, err := newInjector()
	if err != nil {
		res.Detail = fmt.Sprintf("pointer injection unavailable: %v", err)
		return report(w, res)
	}
	sw, sh, err := inj.ScreenSize()
	if err != nil {
		res.Detail = fmt.Sprintf("cannot read screen size: %v", err)
		return report(w, res)
	}
	res.OK = true
	res.Detail = fmt.Sprintf("Pointer OK - Screen size: %dx%d", sw, sh)
	return report(w, res)
}
