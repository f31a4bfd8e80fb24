package motion

import "math"

// Vector is a point or displacement in screen space.
type Vector struct {
	X, Y float64
}

// Add returns the vector sum of v and other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the vector difference of v and other.
func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns v scaled by a scalar.
func (v Vector) Mul(scalar float64) Vector {
	return Vector{X: v.X * scalar, Y: v.Y * scalar}
}

// Scale multiplies each axis by the matching axis of other.
func (v Vector) Scale(other Vector) Vector {
	return Vector{X: v.X * other.X, Y: v.Y * other.Y}
}

// Lerp blends v toward target, keeping weight of v.
func (v Vector) Lerp(target Vector, weight float64) Vector {
	return target.Mul(1 - weight).Add(v.Mul(weight))
}

// Mag returns the length of v.
func (v Vector) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both axes are exactly zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
