package spline

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lixenwraith/wheelie/vmath"
)

// DefaultSamplesPerSegment is the arc-length table resolution
const DefaultSamplesPerSegment = 32

// CatmullRom is a uniform Catmull-Rom spline through control points
// Evaluate is arc-length parameterized, so t is proportional to distance
type CatmullRom struct {
	points    []mgl64.Vec3
	loop      bool
	transform mgl64.Mat4

	// Arc-length table: arc[i] is the distance at global parameter param[i]
	arc    []float64
	param  []float64
	length float64
}

// NewCatmullRom builds the spline and its arc-length table
// Closed splines need at least 3 points, open ones 2
func NewCatmullRom(points []mgl64.Vec3, closed bool, transform mgl64.Mat4) (*CatmullRom, error) {
	minPoints := 2
	if closed {
		minPoints = 3
	}
	if len(points) < minPoints {
		return nil, fmt.Errorf("%w: catmull-rom needs %d points, got %d", ErrInvalidPath, minPoints, len(points))
	}

	c := &CatmullRom{
		points:    append([]mgl64.Vec3(nil), points...),
		loop:      closed,
		transform: transform,
	}
	c.buildArcTable(DefaultSamplesPerSegment)

	if c.length < vmath.Epsilon {
		return nil, fmt.Errorf("%w: catmull-rom has zero length", ErrInvalidPath)
	}
	return c, nil
}

func (c *CatmullRom) segments() int {
	if c.loop {
		return len(c.points)
	}
	return len(c.points) - 1
}

// point returns control point i with wrap (closed) or end clamping (open)
func (c *CatmullRom) point(i int) mgl64.Vec3 {
	n := len(c.points)
	if c.loop {
		return c.points[((i%n)+n)%n]
	}
	return c.points[vmath.ClampInt(i, 0, n-1)]
}

// at evaluates position and derivative at global parameter u in [0, segments]
func (c *CatmullRom) at(u float64) (mgl64.Vec3, mgl64.Vec3) {
	segs := c.segments()
	seg := int(u)
	if seg >= segs {
		seg = segs - 1
	}
	if seg < 0 {
		seg = 0
	}
	s := u - float64(seg)

	p0 := c.point(seg - 1)
	p1 := c.point(seg)
	p2 := c.point(seg + 1)
	p3 := c.point(seg + 2)

	a := p1.Mul(2)
	b := p2.Sub(p0)
	cc := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3)
	d := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3)

	pos := a.Add(b.Mul(s)).Add(cc.Mul(s * s)).Add(d.Mul(s * s * s)).Mul(0.5)
	deriv := b.Add(cc.Mul(2 * s)).Add(d.Mul(3 * s * s)).Mul(0.5)
	return pos, deriv
}

func (c *CatmullRom) buildArcTable(samplesPerSegment int) {
	total := c.segments() * samplesPerSegment
	c.arc = make([]float64, total+1)
	c.param = make([]float64, total+1)

	prev, _ := c.at(0)
	for i := 1; i <= total; i++ {
		u := float64(i) / float64(samplesPerSegment)
		p, _ := c.at(u)
		c.arc[i] = c.arc[i-1] + p.Sub(prev).Len()
		c.param[i] = u
		prev = p
	}
	c.length = c.arc[total]
}

// paramAt converts a distance in [0, length] to a global spline parameter
func (c *CatmullRom) paramAt(s float64) float64 {
	i := sort.SearchFloat64s(c.arc, s)
	if i <= 0 {
		return 0
	}
	if i >= len(c.arc) {
		return c.param[len(c.param)-1]
	}
	span := c.arc[i] - c.arc[i-1]
	if span <= 0 {
		return c.param[i]
	}
	f := (s - c.arc[i-1]) / span
	return vmath.Lerp(c.param[i-1], c.param[i], f)
}

func (c *CatmullRom) Length() float64 { return c.length }

func (c *CatmullRom) Evaluate(t float64) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	if c.loop {
		t = vmath.Wrap(t, 1)
	} else {
		t = vmath.Clamp01(t)
	}
	pos, deriv := c.at(c.paramAt(t * c.length))
	return pos, vmath.NormalizeOr(deriv, mgl64.Vec3{}), vmath.WorldUp
}

func (c *CatmullRom) LocalToWorld() mgl64.Mat4 { return c.transform }

func (c *CatmullRom) Closed() bool { return c.loop }

// Points returns a copy of the control points
func (c *CatmullRom) Points() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), c.points...)
}
