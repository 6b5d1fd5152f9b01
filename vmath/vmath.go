// Package vmath holds the scalar helpers shared by the motion core
// All values are float64; angles are degrees unless a name says otherwise
package vmath

import "math"

// Epsilon is the threshold below which a length is treated as zero
const Epsilon = 1e-9

// --- Arithmetic ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampInt limits i to [lo, hi]
func ClampInt(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// Lerp performs linear interpolation between a and b
// t is not clamped; callers clamp when they need to
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Wrap maps v into [0, length) using floored modulo
// Returns 0 for a non-positive length
func Wrap(v, length float64) float64 {
	if length <= 0 || math.IsNaN(length) {
		return 0
	}
	w := math.Mod(v, length)
	if w < 0 {
		w += length
	}
	// Mod of a tiny negative can round back up to length
	if w >= length {
		w = 0
	}
	return w
}

// WrappedDelta returns the signed shortest difference to-from on a loop of the given length
// Result in [-length/2, length/2)
func WrappedDelta(from, to, length float64) float64 {
	d := Wrap(to-from, length)
	if d >= length/2 {
		d -= length
	}
	return d
}

// Approach moves cur toward target by at most maxDelta without overshoot
func Approach(cur, target, maxDelta float64) float64 {
	if maxDelta < 0 {
		maxDelta = 0
	}
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// --- Angles ---

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeAngle wraps a degree angle to [0, 360)
func NormalizeAngle(deg float64) float64 {
	return Wrap(deg, 360)
}
