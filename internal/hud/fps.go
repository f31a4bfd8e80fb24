package hud

import "time"

// FPSMeter reports the instantaneous frame rate from consecutive ticks.
type FPSMeter struct {
	last time.Time
	fps  float64
}

// Tick records a frame at now and returns the rate implied by the gap since
// the previous tick. The first tick, and ticks that do not advance, keep the
// last reading.
func (m *FPSMeter) Tick(now time.Time) float64 {
	if !m.last.IsZero() {
		if dt := now.Sub(m.last); dt > 0 {
			m.fps = 1 / dt.Seconds()
		}
	}
	m.last = now
	return m.fps
}

// FPS returns the last reading.
func (m *FPSMeter) FPS() float64 {
	return m.fps
}
