package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/vmath"
)

// Pivot is the model-local rotation layered on the path orientation, in degrees
type Pivot struct {
	Pitch float64 // nose up, about the lateral axis (wheelie, fall)
	Roll  float64 // about the forward axis (tilt)
	Yaw   float64 // about the vertical axis (fall spin)
}

// Rotation returns the pivot as a quaternion in the vehicle frame (+Z forward, +Y up)
func (p Pivot) Rotation() mgl64.Quat {
	yaw := mgl64.QuatRotate(vmath.Radians(p.Yaw), mgl64.Vec3{0, 1, 0})
	// Positive rotation about +X dips +Z, so nose-up is negative
	pitch := mgl64.QuatRotate(-vmath.Radians(p.Pitch), mgl64.Vec3{1, 0, 0})
	roll := mgl64.QuatRotate(vmath.Radians(p.Roll), mgl64.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Mul(roll)
}

// PlayerPose is the full placement written to the player's transform each step
type PlayerPose struct {
	Body  spline.Pose // path pose with lift applied to Position
	Lift  float64
	Pivot Pivot
}

// Rotation combines path orientation with the pivot
func (p PlayerPose) Rotation() mgl64.Quat {
	return p.Body.Rotation().Mul(p.Pivot.Rotation())
}
