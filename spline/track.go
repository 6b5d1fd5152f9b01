package spline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EllipsePoints returns n control points on a horizontal ellipse, counter-clockwise seen from +Y
// Used for the default looped track
func EllipsePoints(radiusX, radiusZ float64, n int) []mgl64.Vec3 {
	if n < 3 {
		n = 3
	}
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = mgl64.Vec3{radiusX * math.Cos(a), 0, radiusZ * math.Sin(a)}
	}
	return pts
}
