package hud

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/controller"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
)

// KeyHints is the control-mode help line.
const KeyHints = "'G': Game Mode | FIST: Pause | PINCH: Click | 'Q': Quit"

type skeletonStyle struct {
	bone      color.RGBA
	boneWidth int
	joint     color.RGBA
	hollow    bool
}

var (
	controlSkeleton  = skeletonStyle{bone: Cyan, boneWidth: 1, joint: Cyan, hollow: true}
	practiceSkeleton = skeletonStyle{bone: Magenta, boneWidth: 2, joint: Green}
)

func drawSkeleton(frame *gocv.Mat, l *hand.Landmarks, style skeletonStyle) {
	w, h := frame.Cols(), frame.Rows()
	for _, c := range hand.Connections {
		p1 := ToPixel(l.Points[c[0]], w, h)
		p2 := ToPixel(l.Points[c[1]], w, h)
		gocv.Line(frame, p1, p2, style.bone, style.boneWidth)
	}
	for _, p := range l.Points {
		px := ToPixel(p, w, h)
		if style.hollow {
			gocv.Circle(frame, px, jointRadius, Black, -1)
			gocv.Circle(frame, px, jointRadius, style.joint, 1)
			continue
		}
		gocv.Circle(frame, px, jointRadius, style.joint, -1)
	}
}

func drawReticle(frame *gocv.Mat, at image.Point, c color.RGBA) {
	gocv.Circle(frame, at, reticleRadius, c, 1)
	gocv.Line(frame, image.Pt(at.X-reticleOuter, at.Y), image.Pt(at.X-reticleInner, at.Y), c, 1)
	gocv.Line(frame, image.Pt(at.X+reticleInner, at.Y), image.Pt(at.X+reticleOuter, at.Y), c, 1)
	gocv.Line(frame, image.Pt(at.X, at.Y-reticleOuter), image.Pt(at.X, at.Y-reticleInner), c, 1)
	gocv.Line(frame, image.Pt(at.X, at.Y+reticleInner), image.Pt(at.X, at.Y+reticleOuter), c, 1)
}

// Control draws the control-session overlay: the hand skeleton, the cursor
// reticle, the click flash and drag-progress arc, then the mode and state text.
// l may be nil when no hand was detected.
func Control(frame *gocv.Mat, l *hand.Landmarks, snap controller.Snapshot, now time.Time) {
	if frame == nil || frame.Empty() {
		return
	}
	w, h := frame.Cols(), frame.Rows()

	if l != nil {
		drawSkeleton(frame, l, controlSkeleton)

		tip := ToPixel(l.Points[hand.IndexTip], w, h)
		drawReticle(frame, tip, ReticleColor(snap.Gaming))

		if !snap.ClickFlash.IsZero() {
			if r, ok := FlashRadius(now.Sub(snap.ClickFlash)); ok {
				gocv.Circle(frame, tip, r, White, 2)
			}
		}

		if snap.DragProgress > 0 {
			wrist := ToPixel(l.Points[hand.Wrist], w, h)
			center := ArcCenter(tip, wrist)
			axes := image.Pt(arcRadius, arcRadius)
			gocv.Ellipse(frame, center, axes, 0, 0, ArcEnd(snap.DragProgress), Magenta, 2)
		}
	}

	if snap.Gaming {
		for _, seg := range Corners(w, h) {
			gocv.Line(frame, seg[0], seg[1], Red, cornerWidth)
		}
		gocv.PutText(frame, "COMBAT MODE ACTIVE", image.Pt(w/2-150, 30), gocv.FontHersheySimplex, 0.7, Red, 2)
	}

	gocv.PutText(frame, snap.State.String(), image.Pt(20, 50), gocv.FontHersheySimplex, 1.0, Green, 2)
	gocv.PutText(frame, KeyHints, image.Pt(20, h-20), gocv.FontHersheyPlain, 1.2, Gray, 1)
}

// PracticeView is what the practice overlay shows for one frame.
type PracticeView struct {
	Landmarks *hand.Landmarks
	Label     gesture.PracticeLabel
	Fingers   gesture.FingerState
	FPS       float64
	// Action is the last controller action in dry-run mode, if any.
	Action string
}

// Practice draws the practice-mode overlay: skeleton, detected-gesture badge,
// info panel with the finger checklist, and the gesture guide.
func Practice(frame *gocv.Mat, v PracticeView) {
	if frame == nil || frame.Empty() {
		return
	}
	w, h := frame.Cols(), frame.Rows()

	if v.Landmarks != nil {
		drawSkeleton(frame, v.Landmarks, practiceSkeleton)
		if v.Label != gesture.LabelIdle {
			gocv.Circle(frame, image.Pt(w/2, 50), 30, v.Label.Color, -1)
			gocv.PutText(frame, "DETECTED!", image.Pt(w/2-50, 60), gocv.FontHersheySimplex, 0.5, White, 2)
		}
	}

	panel := frame.Clone()
	gocv.Rectangle(&panel, image.Rect(10, 10, 400, 250), Black, -1)
	gocv.AddWeighted(panel, 0.7, *frame, 0.3, 0, frame)
	panel.Close()

	gocv.PutText(frame, "PRACTICE MODE", image.Pt(20, 40), gocv.FontHersheyDuplex, 0.7, White, 2)
	gocv.PutText(frame, fmt.Sprintf("FPS: %d", int(v.FPS)), image.Pt(20, 70), gocv.FontHersheySimplex, 0.6, Green, 2)
	gocv.PutText(frame, "Gesture: "+v.Label.Name, image.Pt(20, 105), gocv.FontHersheySimplex, 0.7, v.Label.Color, 2)

	y := 140
	gocv.PutText(frame, "Fingers Extended:", image.Pt(20, y), gocv.FontHersheySimplex, 0.5, Gray, 1)
	for i, on := range v.Fingers.Slice() {
		y += 20
		gocv.PutText(frame, Checkbox(on)+" "+gesture.FingerNames[i], image.Pt(30, y), gocv.FontHersheySimplex, 0.4, checkColor(on), 1)
	}

	if v.Action != "" {
		gocv.PutText(frame, "Would inject: "+v.Action, image.Pt(20, h-45), gocv.FontHersheySimplex, 0.5, Magenta, 1)
	}
	gocv.PutText(frame, "Press 'q' to quit", image.Pt(20, h-20), gocv.FontHersheySimplex, 0.5, Gray, 1)

	gx, gy := w-250, 30
	gocv.PutText(frame, "GESTURE GUIDE:", image.Pt(gx, gy), gocv.FontHersheySimplex, 0.5, White, 1)
	for i, g := range gesture.PracticeGuide {
		gocv.PutText(frame, g.Name, image.Pt(gx, gy+25+i*25), gocv.FontHersheySimplex, 0.4, g.Color, 1)
	}
}

// Checkbox renders a finger checklist entry.
func Checkbox(on bool) string {
	if on {
		return "[X]"
	}
	return "[ ]"
}

func checkColor(on bool) color.RGBA {
	if on {
		return Green
	}
	return DimGray
}
