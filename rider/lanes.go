// Package rider holds the path-relative state shared by every entity on the track
package rider

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/wheelie/vmath"
)

// ErrLanes is returned for lane geometry that cannot place a rider
var ErrLanes = errors.New("invalid lane geometry")

// State is the scalar placement of a rider: distance along the path and lateral offset
type State struct {
	Distance float64
	Lateral  float64
}

// Lanes describes evenly spaced lanes centered on the path
// Lane 0 is the most negative lateral offset
type Lanes struct {
	Count int
	Width float64
}

// Validate rejects lane counts below one and non-positive widths
func (l Lanes) Validate() error {
	if l.Count < 1 {
		return fmt.Errorf("%w: lane count %d < 1", ErrLanes, l.Count)
	}
	if l.Width <= 0 || math.IsNaN(l.Width) {
		return fmt.Errorf("%w: lane width %v", ErrLanes, l.Width)
	}
	return nil
}

// Center returns the fractional index of the centerline lane
func (l Lanes) Center() float64 {
	return float64(l.Count-1) / 2
}

// Bound returns the largest lateral offset magnitude a lane center can have
func (l Lanes) Bound() float64 {
	return l.Center() * l.Width
}

// Clamp limits a lane index to [0, Count)
func (l Lanes) Clamp(i int) int {
	return vmath.ClampInt(i, 0, l.Count-1)
}

// Offset returns the lateral offset of lane i's center; out-of-range indices are clamped
func (l Lanes) Offset(i int) float64 {
	return (float64(l.Clamp(i)) - l.Center()) * l.Width
}

// ClampOffset limits a lateral offset to the outer lane centers
func (l Lanes) ClampOffset(x float64) float64 {
	b := l.Bound()
	return vmath.Clamp(x, -b, b)
}

// Nearest returns the lane whose center is closest to lateral offset x
func (l Lanes) Nearest(x float64) int {
	if l.Width <= 0 {
		return 0
	}
	return l.Clamp(int(math.Round(x/l.Width + l.Center())))
}

// CenterLane returns the integer lane a run starts in (left of center for even counts)
func (l Lanes) CenterLane() int {
	return (l.Count - 1) / 2
}
