// Package motion turns successive tracking-point positions into smoothed,
// accelerated cursor displacement.
package motion

import (
	"math"

	"github.com/ayusman/mudra/internal/hand"
)

// Size is a screen extent in pixels.
type Size struct {
	W, H int
}

// Vector returns the extent as a float vector.
func (s Size) Vector() Vector {
	return Vector{X: float64(s.W), Y: float64(s.H)}
}

// Config holds the filter's tuning constants.
type Config struct {
	// Sensitivity is the constant gain applied to every displacement.
	Sensitivity float64
	// SpeedCeiling bounds the speed fed into the smoothing curve.
	SpeedCeiling float64
	// AccelThreshold is the speed at or below which no acceleration applies.
	AccelThreshold float64
	// AccelGain is the extra gain per unit of speed above AccelThreshold.
	AccelGain float64
	// SmoothingMin and SmoothingMax bound the EMA weight of the previous displacement.
	SmoothingMin float64
	SmoothingMax float64
	// SmoothingSpan and SmoothingExponent shape the weight curve:
	// SmoothingMax - SmoothingSpan * t^SmoothingExponent.
	SmoothingSpan     float64
	SmoothingExponent float64
	// Deadzone zeroes the smoothed displacement when both axes are below it.
	Deadzone float64
}

// DefaultConfig returns the tuning used by the controller.
func DefaultConfig() Config {
	return Config{
		Sensitivity:       1.3,
		SpeedCeiling:      60,
		AccelThreshold:    3.0,
		AccelGain:         0.08,
		SmoothingMin:      0.1,
		SmoothingMax:      0.95,
		SmoothingSpan:     0.85,
		SmoothingExponent: 0.6,
		Deadzone:          1.0,
	}
}

// State is the part of the controller session owned by the filter.
type State struct {
	// Prev is the tracking point seen on the last filtered frame, in normalized coordinates.
	Prev    Vector
	HasPrev bool
	// Smoothed is the running displacement in pixels.
	Smoothed Vector
}

// Clear drops the reference point so the next step re-baselines instead of jumping.
// The smoothed displacement is kept.
func (s *State) Clear() {
	s.HasPrev = false
}

// Filter applies adaptive smoothing and acceleration to tracking-point motion.
type Filter struct {
	cfg Config
}

// NewFilter creates a Filter.
func NewFilter(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Config returns the filter's tuning.
func (f *Filter) Config() Config {
	return f.cfg
}

// Smoothing returns the EMA weight of the previous displacement for a raw speed.
// Fast motion gets a low weight, slow motion a high one. The result is always
// within [SmoothingMin, SmoothingMax].
func (f *Filter) Smoothing(speed float64) float64 {
	c := f.cfg
	clamped := math.Min(math.Max(speed, 0), c.SpeedCeiling)
	t := clamped / c.SpeedCeiling
	s := math.Max(c.SmoothingMin, c.SmoothingMax-c.SmoothingSpan*math.Pow(t, c.SmoothingExponent))
	return math.Min(s, c.SmoothingMax)
}

// Acceleration returns the gain multiplier for a raw speed.
func (f *Filter) Acceleration(speed float64) float64 {
	if speed <= f.cfg.AccelThreshold {
		return 1.0
	}
	return 1.0 + speed*f.cfg.AccelGain
}

// Step advances the filter by one frame and returns the cursor displacement.
//
// Reads and writes st.Prev, st.HasPrev and st.Smoothed. The returned bool reports
// whether the pointer should be moved this frame: it is false when freeze is set
// and when there was no reference point to measure against. In both cases the
// current point becomes the new reference.
func (f *Filter) Step(st *State, p hand.Point, screen Size, freeze bool) (Vector, bool) {
	cur := Vector{X: p.X, Y: p.Y}
	if freeze || !st.HasPrev {
		st.Prev = cur
		st.HasPrev = true
		return Vector{}, false
	}

	raw := cur.Sub(st.Prev).Scale(screen.Vector())
	speed := raw.Mag()
	smoothing := f.Smoothing(speed)
	target := raw.Mul(f.cfg.Sensitivity * f.Acceleration(speed))

	st.Smoothed = st.Smoothed.Lerp(target, smoothing)
	if math.Abs(st.Smoothed.X) < f.cfg.Deadzone && math.Abs(st.Smoothed.Y) < f.cfg.Deadzone {
		st.Smoothed = Vector{}
	}
	st.Prev = cur
	return st.Smoothed, true
}

// Clamp applies a displacement to a cursor position and keeps the result on screen,
// within 0..extent-1 on each axis. Fractional pixels are truncated.
func Clamp(x, y int, d Vector, screen Size) (int, int) {
	nx := int(float64(x) + d.X)
	ny := int(float64(y) + d.Y)
	return clampInt(nx, 0, screen.W-1), clampInt(ny, 0, screen.H-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
