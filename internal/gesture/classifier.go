package gesture

import "time"

// State is the discrete gesture recognized in a frame.
type State int

const (
	// Idle is a fist: the pointer is paused.
	Idle State = iota
	// Moving drives the cursor.
	Moving
	// LeftClick is a thumb-index pinch: click or drag.
	LeftClick
	// RightClick is the pinky (or index + pinky) pose.
	RightClick
	// Scrolling is the two-finger pose.
	Scrolling
)

var stateNames = map[State]string{
	Idle:       "IDLE",
	Moving:     "MOVING",
	LeftClick:  "LEFT_CLICK",
	RightClick: "RIGHT_CLICK",
	Scrolling:  "SCROLLING",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Thresholds are the tuning constants of the classifier.
type Thresholds struct {
	// PinchDistance is the normalized thumb-index distance below which a pinch is reported.
	PinchDistance float64
	// FistGuard is how long after a fist every gesture reads as Moving.
	FistGuard time.Duration
}

// DefaultThresholds returns the thresholds used by the controller.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PinchDistance: 0.05,
		FistGuard:     500 * time.Millisecond,
	}
}

// Observation is everything the classifier looks at for one frame.
type Observation struct {
	Fingers FingerState
	// Pinch is the normalized thumb-tip to index-tip distance.
	Pinch float64
	// SinceFist is the time elapsed since the last fist. Ignored when FistSeen is false.
	SinceFist time.Duration
	FistSeen  bool
}

// Rule maps a predicate to the state it produces.
type Rule struct {
	Name  string
	Match func(o Observation, t Thresholds) bool
	State State
}

// DefaultRules is the gesture precedence, highest first. The first matching rule wins,
// so later rules only see observations every earlier rule rejected.
var DefaultRules = []Rule{
	{
		Name: "fist",
		Match: func(o Observation, _ Thresholds) bool {
			f := o.Fingers
			return !f.Index && !f.Middle && !f.Ring && !f.Pinky
		},
		State: Idle,
	},
	{
		// Suppresses clicks and scrolls while the hand is opening out of a fist.
		Name: "fist-guard",
		Match: func(o Observation, t Thresholds) bool {
			return o.FistSeen && o.SinceFist < t.FistGuard
		},
		State: Moving,
	},
	{
		Name: "pinky",
		Match: func(o Observation, _ Thresholds) bool {
			f := o.Fingers
			return f.Pinky && !f.Index && !f.Middle && !f.Ring
		},
		State: RightClick,
	},
	{
		Name: "rock",
		Match: func(o Observation, _ Thresholds) bool {
			f := o.Fingers
			return f.Pinky && f.Index && !f.Middle && !f.Ring
		},
		State: RightClick,
	},
	{
		Name: "two-finger",
		Match: func(o Observation, _ Thresholds) bool {
			f := o.Fingers
			return f.Index && f.Middle && !f.Ring
		},
		State: Scrolling,
	},
	{
		Name: "pinch",
		Match: func(o Observation, t Thresholds) bool {
			return o.Pinch < t.PinchDistance
		},
		State: LeftClick,
	},
}

// Classifier evaluates an ordered rule table. It keeps no state between frames.
type Classifier struct {
	thresholds Thresholds
	rules      []Rule
}

// NewClassifier creates a Classifier with the default rule table.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t, rules: DefaultRules}
}

// Thresholds returns the thresholds the classifier was built with.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify returns the state of the first matching rule and that rule's name.
// When no rule matches the hand is Moving.
func (c *Classifier) Classify(o Observation) (State, string) {
	for _, r := range c.rules {
		if r.Match(o, c.thresholds) {
			return r.State, r.Name
		}
	}
	return Moving, "default"
}
