// Package sim implements the deterministic platformer physics core.
// It contains no external dependencies so the hot path stays pure,
// allocation-free, and embeddable from any host.
package sim

import "math"

// Rect is an axis-aligned rectangle in world units.
// X, Y is the top-left corner; +x is right, +y is down.
type Rect struct {
	X, Y float32
	W, H float32
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Intersects reports whether two rectangles overlap.
// All four comparisons are strict: touching edges do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Round rounds half away from zero: floor(v+0.5) for v >= 0, ceil(v-0.5)
// otherwise. Every rectangle coordinate passes through this at the points
// the integrator specifies; hosts on other runtimes must match it exactly.
func Round(v float32) float32 {
	if v >= 0 {
		return float32(math.Floor(float64(v + 0.5)))
	}
	return float32(math.Ceil(float64(v - 0.5)))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func signf(v float32) float32 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
