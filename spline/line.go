package spline

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lixenwraith/wheelie/vmath"
)

// Line is a straight path from A to B
// A closed line behaves as a treadmill: t wraps from B back to A
type Line struct {
	A, B      mgl64.Vec3
	Transform mgl64.Mat4
	Loop      bool

	length  float64
	tangent mgl64.Vec3
}

// NewLine builds a line path; A == B is rejected
func NewLine(a, b mgl64.Vec3, loop bool) (*Line, error) {
	d := b.Sub(a)
	length := d.Len()
	if length < vmath.Epsilon {
		return nil, ErrInvalidPath
	}
	return &Line{
		A:         a,
		B:         b,
		Transform: mgl64.Ident4(),
		Loop:      loop,
		length:    length,
		tangent:   d.Mul(1 / length),
	}, nil
}

func (l *Line) Length() float64 { return l.length }

func (l *Line) Evaluate(t float64) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	t = vmath.Clamp01(t)
	return l.A.Add(l.B.Sub(l.A).Mul(t)), l.tangent, vmath.WorldUp
}

func (l *Line) LocalToWorld() mgl64.Mat4 { return l.Transform }

func (l *Line) Closed() bool { return l.Loop }
