// Package spline maps a scalar distance along a track plus a lateral offset to a world pose
//
// A Path is read-only once built and may be shared by every rider on it;
// Resolve is a pure function of its inputs. Follower adds the one piece of
// per-rider memory the pose needs: the last good orientation, reused when the
// path reports a degenerate tangent.
package spline

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidPath is returned for a nil path or one without positive length
var ErrInvalidPath = errors.New("invalid path")

// Path is a parametric curve in its own local frame
type Path interface {
	// Length returns the arc length, constant for the lifetime of the path
	Length() float64

	// Evaluate returns local position, tangent and up at t in [0, 1]
	Evaluate(t float64) (position, tangent, up mgl64.Vec3)

	// LocalToWorld returns the transform from the path frame into the world
	LocalToWorld() mgl64.Mat4

	// Closed reports whether t wraps (looped track)
	Closed() bool
}

// Validate fails fast for paths Resolve cannot normalize against
func Validate(p Path) error {
	if p == nil {
		return ErrInvalidPath
	}
	l := p.Length()
	if l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return ErrInvalidPath
	}
	return nil
}

// Direction is the sign of travel relative to the path parameter
type Direction int8

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Sign returns the direction as a float multiplier
func (d Direction) Sign() float64 {
	if d < 0 {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d < 0 {
		return "reverse"
	}
	return "forward"
}
