package hand

// Synthetic right-hand poses for tests, dry runs and the mock detector.
// The layout assumes a mirrored front camera: the thumb sits on the left of the
// palm and extended fingers point up (smaller Y).

const (
	fixtureWristY   = 0.85
	fixtureMCPY     = 0.68
	fixturePIPY     = 0.56
	fixtureDIPUpY   = 0.46
	fixtureTipUpY   = 0.38
	fixtureDIPDownY = 0.60
	fixtureTipDownY = 0.63
)

var fixtureFingerX = [4]float64{0.44, 0.50, 0.56, 0.62} // index, middle, ring, pinky

// Pose builds a hand whose digits are extended or curled as requested.
// Thumb and index tips are always kept further apart than a pinch.
func Pose(thumb, index, middle, ring, pinky bool) Landmarks {
	l := Landmarks{Handedness: "Right", Score: 0.95}
	l.Points[Wrist] = Point{X: 0.50, Y: fixtureWristY}

	l.Points[ThumbCMC] = Point{X: 0.42, Y: 0.76}
	l.Points[ThumbMCP] = Point{X: 0.37, Y: 0.71}
	l.Points[ThumbIP] = Point{X: 0.33, Y: 0.66}
	if thumb {
		l.Points[ThumbTip] = Point{X: 0.28, Y: 0.61}
	} else {
		l.Points[ThumbTip] = Point{X: 0.40, Y: 0.72}
	}

	extended := [4]bool{index, middle, ring, pinky}
	for i, up := range extended {
		mcp := IndexMCP + i*4
		x := fixtureFingerX[i]
		l.Points[mcp] = Point{X: x, Y: fixtureMCPY}
		l.Points[mcp+1] = Point{X: x, Y: fixturePIPY}
		if up {
			l.Points[mcp+2] = Point{X: x, Y: fixtureDIPUpY}
			l.Points[mcp+3] = Point{X: x, Y: fixtureTipUpY}
		} else {
			l.Points[mcp+2] = Point{X: x, Y: fixtureDIPDownY}
			l.Points[mcp+3] = Point{X: x, Y: fixtureTipDownY}
		}
	}
	return l
}

// FistPose returns a closed fist with the thumb tucked in.
func FistPose() Landmarks { return Pose(false, false, false, false, false) }

// PointPose returns a hand with only the index finger extended.
func PointPose() Landmarks { return Pose(false, true, false, false, false) }

// OpenPalmPose returns a hand with every digit extended.
func OpenPalmPose() Landmarks { return Pose(true, true, true, true, true) }

// ScrollPose returns the two-finger (index + middle) pose.
func ScrollPose() Landmarks { return Pose(false, true, true, false, false) }

// PinkyPose returns a hand with only the pinky extended.
func PinkyPose() Landmarks { return Pose(false, false, false, false, true) }

// RockPose returns the index + pinky pose.
func RockPose() Landmarks { return Pose(false, true, false, false, true) }

// PinchPose returns an "OK" sign: thumb and index tips touching, the other
// three fingers extended so the hand does not read as a fist or a scroll.
func PinchPose() Landmarks {
	l := Pose(false, false, true, true, true)
	thumb := l.Points[ThumbTip]
	l.Points[IndexTip] = Point{X: thumb.X + 0.01, Y: thumb.Y + 0.01}
	return l
}
