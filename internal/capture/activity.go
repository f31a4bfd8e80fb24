package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	// activityWidth is the width frames are shrunk to before differencing.
	activityWidth = 160
	// activityBlur is the Gaussian kernel applied to the shrunk frame.
	activityBlur = 5
	// activityDiff is the per-pixel intensity change that counts as changed.
	activityDiff = 25
)

// DefaultActivityThreshold is the share of changed pixels, in percent, above which
// a frame counts as active.
const DefaultActivityThreshold = 1.0

// ActivityMeter measures how much of the scene changed since the previous frame.
// The frame loop uses it to skip hand detection on a static, empty scene.
type ActivityMeter struct {
	threshold float64
	prev      gocv.Mat
	hasPrev   bool
	mu        sync.Mutex
}

// NewActivityMeter creates an ActivityMeter. Thresholds at or below zero use the default.
func NewActivityMeter(threshold float64) *ActivityMeter {
	if threshold <= 0 {
		threshold = DefaultActivityThreshold
	}
	return &ActivityMeter{
		threshold: threshold,
		prev:      gocv.NewMat(),
	}
}

// Measure compares frame with the previous one. It returns whether the changed
// share exceeds the threshold and the share itself in percent. The first frame
// after construction or Reset only sets the baseline and always counts as active.
func (m *ActivityMeter) Measure(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	small := gocv.NewMat()
	defer small.Close()
	h := gray.Rows() * activityWidth / gray.Cols()
	if h < 1 {
		h = 1
	}
	gocv.Resize(gray, &small, image.Point{X: activityWidth, Y: h}, 0, 0, gocv.InterpolationArea)
	gocv.GaussianBlur(small, &small, image.Point{X: activityBlur, Y: activityBlur}, 0, 0, gocv.BorderDefault)

	if !m.hasPrev || m.prev.Rows() != small.Rows() || m.prev.Cols() != small.Cols() {
		small.CopyTo(&m.prev)
		m.hasPrev = true
		return true, 100
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(small, m.prev, &diff)
	gocv.Threshold(diff, &diff, activityDiff, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(diff)) / float64(diff.Rows()*diff.Cols()) * 100.0
	small.CopyTo(&m.prev)

	return changed > m.threshold, changed
}

// Threshold returns the active threshold in percent.
func (m *ActivityMeter) Threshold() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold
}

// Reset drops the baseline so the next frame starts fresh.
func (m *ActivityMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasPrev = false
}

// Close releases the baseline frame. Close may be called more than once.
func (m *ActivityMeter) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prev.Close()
	m.prev = gocv.NewMat()
	m.hasPrev = false
}
