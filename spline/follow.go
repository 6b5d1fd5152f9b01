package spline

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lixenwraith/wheelie/vmath"
)

// Pose is the world placement of a rider at a distance and lateral offset
type Pose struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3 // unit path tangent in the direction of travel
	Up       mgl64.Vec3
	Side     mgl64.Vec3 // unit horizontal axis positive lateral offsets move along

	// Degenerate is set when the path tangent had no horizontal component;
	// orientation fields are then zero and Position is the centerline point
	Degenerate bool
}

// identity frame used before any valid orientation has been seen
var defaultPose = Pose{
	Forward: mgl64.Vec3{0, 0, 1},
	Up:      vmath.WorldUp,
	Side:    mgl64.Vec3{1, 0, 0},
}

// Reversed returns the pose facing against the path direction
// Side is a property of the path frame and is left alone so lanes keep their meaning
func (p Pose) Reversed() Pose {
	p.Forward = p.Forward.Mul(-1)
	return p
}

// Facing returns p oriented for dir
func (p Pose) Facing(dir Direction) Pose {
	if dir == Reverse {
		return p.Reversed()
	}
	return p
}

// Rotation returns the world orientation as a quaternion: +Z maps to Forward,
// +Y to Up made orthogonal to Forward, +X to Up x Forward
func (p Pose) Rotation() mgl64.Quat {
	if p.Degenerate {
		return mgl64.QuatIdent()
	}
	var zero mgl64.Vec3
	z := vmath.NormalizeOr(p.Forward, zero)
	x := vmath.NormalizeOr(p.Up.Cross(z), zero)
	if x == zero {
		// Up along Forward: fall back to the world vertical
		x = vmath.NormalizeOr(vmath.WorldUp.Cross(z), zero)
	}
	if x == zero {
		return mgl64.QuatIdent()
	}
	y := z.Cross(x)
	basis := mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return mgl64.Mat4ToQuat(basis).Normalize()
}

// Resolve maps distance and lateral offset against path to a world pose
// Distance always wraps modulo the path length; non-looped paths expect the caller to clamp
func Resolve(path Path, distance, lateral float64) (Pose, error) {
	if err := Validate(path); err != nil {
		return Pose{}, err
	}
	return resolve(path, distance, lateral), nil
}

// resolve assumes path was validated
func resolve(path Path, distance, lateral float64) Pose {
	length := path.Length()

	// Wrapping the distance first keeps d and d+k*length bit-identical
	t := vmath.Wrap(distance, length) / length
	if t >= 1 {
		t = 0
	}

	lp, lt, lu := path.Evaluate(t)
	m := path.LocalToWorld()

	pos := vmath.TransformPoint(m, lp)
	tangent := vmath.TransformDir(m, lt)
	up := vmath.NormalizeOr(vmath.TransformDir(m, lu), vmath.WorldUp)

	flat, ok := vmath.Flatten(tangent)
	if !ok {
		return Pose{Position: pos, Degenerate: true}
	}

	side := vmath.WorldUp.Cross(flat)

	return Pose{
		Position: pos.Add(side.Mul(lateral)),
		Forward:  tangent.Normalize(),
		Up:       up,
		Side:     side,
	}
}

// Follower resolves poses for one rider and remembers the last valid orientation
type Follower struct {
	path Path
	last Pose
	seen bool
}

// NewFollower validates path once so Resolve can stay error-free per step
func NewFollower(path Path) (*Follower, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}
	return &Follower{path: path}, nil
}

// Path returns the followed path
func (f *Follower) Path() Path {
	return f.path
}

// Resolve returns the pose, reusing the previous orientation across degenerate segments
func (f *Follower) Resolve(distance, lateral float64) Pose {
	p := resolve(f.path, distance, lateral)
	if !p.Degenerate {
		f.last = p
		f.seen = true
		return p
	}

	prev := defaultPose
	if f.seen {
		prev = f.last
	}
	return Pose{
		Position:   p.Position.Add(prev.Side.Mul(lateral)),
		Forward:    prev.Forward,
		Up:         prev.Up,
		Side:       prev.Side,
		Degenerate: true,
	}
}

// Reset forgets the remembered orientation
func (f *Follower) Reset() {
	f.last = Pose{}
	f.seen = false
}
