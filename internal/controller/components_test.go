package controller

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/pointer"
)

func countKinds(actions []pointer.Action) map[pointer.Kind]int {
	m := make(map[pointer.Kind]int)
	for _, a := range actions {
		m[a.Kind]++
	}
	return m
}

func TestDebouncer_DesktopSustainedPinch(t *testing.T) {
	for _, hold := range []time.Duration{210 * time.Millisecond, 500 * time.Millisecond, 3 * time.Second} {
		d := NewDebouncer(200*time.Millisecond, nil)
		var s Session
		var all []pointer.Action

		for at := time.Duration(0); at <= hold; at += 10 * time.Millisecond {
			all = append(all, d.Update(&s, true, t0.Add(at))...)
		}
		require.True(t, s.Dragging, "hold %v", hold)
		all = append(all, d.Update(&s, false, t0.Add(hold+10*time.Millisecond))...)

		n := countKinds(all)
		assert.Equal(t, 1, n[pointer.ButtonDown], "hold %v", hold)
		assert.Equal(t, 1, n[pointer.ButtonUp], "hold %v", hold)
		assert.Zero(t, n[pointer.Click], "hold %v", hold)
		assert.True(t, s.PinchStart.IsZero())
	}
}

func TestDebouncer_DesktopTap(t *testing.T) {
	for _, hold := range []time.Duration{0, 50 * time.Millisecond, 190 * time.Millisecond, 200 * time.Millisecond} {
		d := NewDebouncer(200*time.Millisecond, nil)
		var s Session
		var all []pointer.Action

		for at := time.Duration(0); at <= hold; at += 10 * time.Millisecond {
			all = append(all, d.Update(&s, true, t0.Add(at))...)
		}
		all = append(all, d.Update(&s, false, t0.Add(hold+5*time.Millisecond))...)

		n := countKinds(all)
		assert.Equal(t, 1, n[pointer.Click], "hold %v", hold)
		assert.Zero(t, n[pointer.ButtonDown], "hold %v", hold)
		assert.Zero(t, n[pointer.ButtonUp], "hold %v", hold)
	}
}

func TestDebouncer_ReleaseWithoutPinchIsSilent(t *testing.T) {
	d := NewDebouncer(200*time.Millisecond, nil)
	var s Session

	for i := 0; i < 5; i++ {
		assert.Empty(t, d.Update(&s, false, t0.Add(time.Duration(i)*time.Millisecond)))
	}
	assert.True(t, s.ClickFlash.IsZero())
}

func TestDebouncer_ZeroLatencyBalanced(t *testing.T) {
	d := NewDebouncer(200*time.Millisecond, nil)
	s := Session{Gaming: true}
	rng := rand.New(rand.NewSource(7))

	downs, ups := 0, 0
	for i := 0; i < 1000; i++ {
		wasDragging := s.Dragging
		out := d.Update(&s, rng.Intn(2) == 0, t0.Add(time.Duration(i)*time.Millisecond))
		for _, a := range out {
			switch a.Kind {
			case pointer.ButtonDown:
				require.False(t, wasDragging, "down issued while dragging at step %d", i)
				downs++
			case pointer.ButtonUp:
				ups++
			case pointer.Click:
				t.Fatalf("zero-latency mode issued a click at step %d", i)
			}
		}
	}
	out := d.Update(&s, false, t0.Add(time.Hour))
	ups += countKinds(out)[pointer.ButtonUp]

	assert.Equal(t, downs, ups)
	assert.Positive(t, downs)
}

func TestDebouncer_ZeroLatencyFlash(t *testing.T) {
	d := NewDebouncer(200*time.Millisecond, nil)
	s := Session{Gaming: true}

	out := d.Update(&s, true, t0)
	assert.Equal(t, []pointer.Action{{Kind: pointer.ButtonDown}}, out)
	assert.Equal(t, t0, s.ClickFlash)
	assert.True(t, s.PinchStart.IsZero(), "zero-latency mode does not time the pinch")
}

func TestDebouncer_ZeroLatencyClearsDesktopTimer(t *testing.T) {
	d := NewDebouncer(200*time.Millisecond, nil)
	var s Session

	d.Update(&s, true, t0)
	require.False(t, s.PinchStart.IsZero())

	s.Gaming = true
	assert.Equal(t, []pointer.Action{{Kind: pointer.ButtonDown}}, d.Update(&s, true, t0.Add(50*time.Millisecond)))
	assert.Equal(t, []pointer.Action{{Kind: pointer.ButtonUp}}, d.Update(&s, false, t0.Add(80*time.Millisecond)))
	assert.True(t, s.PinchStart.IsZero())

	s.Gaming = false
	assert.Empty(t, d.Update(&s, false, t0.Add(5*time.Second)))
}

func TestDebouncer_Progress(t *testing.T) {
	d := NewDebouncer(200*time.Millisecond, nil)
	var s Session
	assert.Zero(t, d.Progress(&s, t0))

	d.Update(&s, true, t0)
	assert.InDelta(t, 0.25, d.Progress(&s, t0.Add(50*time.Millisecond)), 1e-9)
	assert.Equal(t, 1.0, d.Progress(&s, t0.Add(time.Second)))
}

func TestScroller(t *testing.T) {
	sc := DefaultScroller()

	tests := []struct {
		name string
		ref  float64
		y    float64
		want []pointer.Action
	}{
		{"hand drops scrolls down", 0.40, 0.41, []pointer.Action{pointer.ScrollAction(-20)}},
		{"hand rises scrolls up", 0.50, 0.47, []pointer.Action{pointer.ScrollAction(60)}},
		{"below threshold", 0.40, 0.404, nil},
		{"just below threshold", 0.40, 0.4049, nil},
		{"no motion", 0.33, 0.33, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ScrollRef: tt.ref, ScrollRefSet: true}
			assert.Equal(t, tt.want, sc.Update(&s, tt.y))
			assert.Equal(t, tt.y, s.ScrollRef)
		})
	}
}

func TestScroller_BaselineAtZero(t *testing.T) {
	sc := DefaultScroller()
	var s Session

	// A reference of exactly 0 is a valid baseline.
	assert.Empty(t, sc.Update(&s, 0))
	assert.True(t, s.ScrollRefSet)
	assert.Equal(t, []pointer.Action{pointer.ScrollAction(-40)}, sc.Update(&s, 0.02))

	sc.Reset(&s)
	assert.Empty(t, sc.Update(&s, 0.9))
}

func TestRightClickLimiter(t *testing.T) {
	r := NewRightClickLimiter(time.Second, nil)
	var s Session

	assert.Len(t, r.Fire(&s, t0), 1)
	assert.Equal(t, t0, s.LastRightClick)

	for _, at := range []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 999 * time.Millisecond} {
		assert.Empty(t, r.Fire(&s, t0.Add(at)), "attempt at %v", at)
		assert.Equal(t, t0, s.LastRightClick)
	}

	assert.Equal(t, []pointer.Action{{Kind: pointer.RightClick}}, r.Fire(&s, t0.Add(time.Second)))
	assert.Equal(t, t0.Add(time.Second), s.LastRightClick)

	assert.Len(t, r.Fire(&s, t0.Add(5*time.Second)), 1)
	assert.Equal(t, time.Second, r.Cooldown())
}

func TestRightClickLimiter_DeniedAttemptsDoNotExtendCooldown(t *testing.T) {
	r := NewRightClickLimiter(time.Second, nil)
	var s Session

	r.Fire(&s, t0)
	for at := 50 * time.Millisecond; at < time.Second; at += 50 * time.Millisecond {
		r.Fire(&s, t0.Add(at))
	}
	assert.Len(t, r.Fire(&s, t0.Add(time.Second)), 1)
}
