// Package hand defines the per-frame hand landmark model shared by the detector and the controller.
package hand

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// TrackingPoint is the landmark that drives the cursor and the scroll integrator.
// The index knuckle moves with the hand but stays put while the fingertips pinch.
const TrackingPoint = IndexMCP

// Point is a normalized image-space keypoint. X and Y lie in [0,1] with Y growing
// downward. Z is passed through from the detector and is not used for control.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Landmarks is one detected hand: 21 keypoints indexed by the constants above.
type Landmarks struct {
	Points     [NumLandmarks]Point `json:"points"`
	Handedness string              `json:"handedness"` // "Left" or "Right"
	Score      float64             `json:"score"`
}

// Distance2D returns the Euclidean distance between a and b in the image plane.
func Distance2D(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PinchDistance returns the normalized distance between the thumb tip and the index tip.
func (l *Landmarks) PinchDistance() float64 {
	return Distance2D(l.Points[ThumbTip], l.Points[IndexTip])
}

// Tracking returns the cursor tracking landmark.
func (l *Landmarks) Tracking() Point {
	return l.Points[TrackingPoint]
}

// Translate returns a copy of the hand shifted by (dx, dy) in normalized coordinates.
func (l Landmarks) Translate(dx, dy float64) Landmarks {
	for i := range l.Points {
		l.Points[i].X += dx
		l.Points[i].Y += dy
	}
	return l
}

// Connections lists the bone segments of the MediaPipe hand skeleton.
var Connections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}
