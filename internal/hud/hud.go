// Package hud draws the preview overlays on camera frames. It only reads
// controller snapshots and never feeds anything back into control.
package hud

import (
	"image"
	"image/color"
	"time"

	"github.com/ayusman/mudra/internal/hand"
)

// Overlay palette.
var (
	Cyan      = color.RGBA{G: 255, B: 255, A: 255}
	Magenta   = color.RGBA{R: 255, B: 255, A: 255}
	NeonGreen = color.RGBA{R: 50, G: 255, B: 50, A: 255}
	Red       = color.RGBA{R: 255, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black     = color.RGBA{A: 255}
	Green     = color.RGBA{G: 255, A: 255}
	Gray      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	DimGray   = color.RGBA{R: 100, G: 100, B: 100, A: 255}
)

const (
	// FlashDuration is how long the click ring stays visible.
	FlashDuration = 150 * time.Millisecond
	flashGrowth   = 300 // pixels per second
	flashBase     = 10

	jointRadius   = 3
	reticleRadius = 8
	reticleInner  = 4
	reticleOuter  = 12
	arcRadius     = 30
	cornerLength  = 50
	cornerWidth   = 3
)

// ToPixel maps a normalized landmark onto a w×h frame, truncating like the
// int conversions of the drawing calls.
func ToPixel(p hand.Point, w, h int) image.Point {
	return image.Point{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))}
}

// ReticleColor is green in desktop mode and red in gaming mode.
func ReticleColor(gaming bool) color.RGBA {
	if gaming {
		return Red
	}
	return NeonGreen
}

// FlashRadius returns the click ring radius after elapsed, and false once the
// flash has expired or never started.
func FlashRadius(elapsed time.Duration) (int, bool) {
	if elapsed < 0 || elapsed >= FlashDuration {
		return 0, false
	}
	return int(elapsed.Seconds()*flashGrowth) + flashBase, true
}

// ArcEnd converts drag progress in [0,1] to the end angle of the loading arc.
func ArcEnd(progress float64) float64 {
	switch {
	case progress <= 0:
		return 0
	case progress >= 1:
		return 360
	}
	return float64(int(360 * progress))
}

// ArcCenter is the midpoint of the index tip and the wrist.
func ArcCenter(tip, wrist image.Point) image.Point {
	return image.Point{X: (tip.X + wrist.X) / 2, Y: (tip.Y + wrist.Y) / 2}
}

// Corners returns the eight line segments of the gaming-mode corner brackets.
func Corners(w, h int) [8][2]image.Point {
	l := cornerLength
	return [8][2]image.Point{
		{image.Pt(0, 0), image.Pt(l, 0)}, {image.Pt(0, 0), image.Pt(0, l)},
		{image.Pt(w, 0), image.Pt(w-l, 0)}, {image.Pt(w, 0), image.Pt(w, l)},
		{image.Pt(0, h), image.Pt(l, h)}, {image.Pt(0, h), image.Pt(0, h-l)},
		{image.Pt(w, h), image.Pt(w-l, h)}, {image.Pt(w, h), image.Pt(w, h-l)},
	}
}
