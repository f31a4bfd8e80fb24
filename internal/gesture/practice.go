package gesture

import "image/color"

// PracticeLabel is the simplified gesture vocabulary shown in practice mode.
// It never drives the pointer.
type PracticeLabel struct {
	Name  string
	Color color.RGBA
}

// Practice labels in match order.
var (
	LabelMove   = PracticeLabel{Name: "MOVE CURSOR", Color: color.RGBA{R: 255, G: 255, A: 255}}
	LabelClick  = PracticeLabel{Name: "CLICK", Color: color.RGBA{G: 255, A: 255}}
	LabelScroll = PracticeLabel{Name: "SCROLL", Color: color.RGBA{R: 0, G: 128, B: 255, A: 255}}
	LabelDrag   = PracticeLabel{Name: "DRAG & DROP", Color: color.RGBA{R: 255, B: 255, A: 255}}
	LabelIdle   = PracticeLabel{Name: "IDLE", Color: color.RGBA{R: 100, G: 100, B: 100, A: 255}}
	LabelNoHand = PracticeLabel{Name: "NO HAND DETECTED", Color: color.RGBA{R: 100, G: 100, B: 100, A: 255}}
)

// PracticeGuide is the on-screen cheat sheet for practice mode.
var PracticeGuide = []PracticeLabel{
	{Name: "1 finger - Move", Color: LabelMove.Color},
	{Name: "2 fingers - Click", Color: LabelClick.Color},
	{Name: "All fingers - Scroll", Color: LabelScroll.Color},
	{Name: "Thumb+Index - Drag", Color: LabelDrag.Color},
}

// Practice maps finger extension to a practice label. The first matching
// rule wins, so thumb plus index reads as MOVE CURSOR and DRAG & DROP is
// never returned.
func Practice(f FingerState) PracticeLabel {
	switch {
	case f.Index && !f.Middle && !f.Ring && !f.Pinky:
		return LabelMove
	case f.Index && f.Middle && !f.Ring && !f.Pinky:
		return LabelClick
	case f.Index && f.Middle && f.Ring && f.Pinky:
		return LabelScroll
	case f.Thumb && f.Index && !f.Middle && !f.Ring && !f.Pinky:
		return LabelDrag
	}
	return LabelIdle
}
