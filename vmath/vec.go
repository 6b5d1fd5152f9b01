package vmath

import "github.com/go-gl/mathgl/mgl64"

// WorldUp is the +Y axis every path frame is built against
var WorldUp = mgl64.Vec3{0, 1, 0}

// Flatten projects v onto the horizontal plane and normalizes it
// ok is false when the projection has no length
func Flatten(v mgl64.Vec3) (mgl64.Vec3, bool) {
	flat := mgl64.Vec3{v.X(), 0, v.Z()}
	l := flat.Len()
	if l < Epsilon {
		return mgl64.Vec3{}, false
	}
	return flat.Mul(1 / l), true
}

// NormalizeOr returns v normalized, or fallback when v has no length
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon || !IsFinite(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// TransformPoint applies m to a position (w = 1)
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDir applies m to a direction (w = 0)
func TransformDir(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}
