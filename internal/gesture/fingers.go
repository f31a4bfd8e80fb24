// Package gesture classifies hand landmarks into the discrete gestures that drive the pointer.
package gesture

import "github.com/ayusman/mudra/internal/hand"

// FingerState records which digits are extended in a single frame.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// fingerJoints pairs each non-thumb tip with the joint it is compared against.
var fingerJoints = [4][2]int{
	{hand.IndexTip, hand.IndexPIP},
	{hand.MiddleTip, hand.MiddlePIP},
	{hand.RingTip, hand.RingPIP},
	{hand.PinkyTip, hand.PinkyPIP},
}

// Fingers derives the extension state of each digit.
//
// The thumb counts as extended when its tip is left of its IP joint, which holds
// for a right hand seen through a mirrored front camera. The other digits count
// as extended when the tip is above the PIP joint (image Y grows downward).
// Rotated or mirrored hands are not handled.
func Fingers(l *hand.Landmarks) FingerState {
	ext := [4]bool{}
	for i, j := range fingerJoints {
		ext[i] = l.Points[j[0]].Y < l.Points[j[1]].Y
	}
	return FingerState{
		Thumb:  l.Points[hand.ThumbTip].X < l.Points[hand.ThumbIP].X,
		Index:  ext[0],
		Middle: ext[1],
		Ring:   ext[2],
		Pinky:  ext[3],
	}
}

// Slice returns the states in thumb-to-pinky order.
func (f FingerState) Slice() []bool {
	return []bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky}
}

// FingerNames labels the entries returned by Slice.
var FingerNames = []string{"Thumb", "Index", "Middle", "Ring", "Pinky"}
