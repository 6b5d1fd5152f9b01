package rider

import (
	"math"

	"github.com/google/uuid"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/vmath"
)

// Kind classifies a non-player rider
type Kind uint8

const (
	KindTruck Kind = iota
	KindBarrier
	KindCoin
	KindSpeedUp
	KindSlowDown
	KindRocket
	KindSign
)

var kindNames = [...]string{
	KindTruck:    "truck",
	KindBarrier:  "barrier",
	KindCoin:     "coin",
	KindSpeedUp:  "speed_up",
	KindSlowDown: "slow_down",
	KindRocket:   "rocket",
	KindSign:     "sign",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a config name back to a Kind
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsObstacle reports whether touching this kind ends the run
func (k Kind) IsObstacle() bool {
	return k == KindTruck || k == KindBarrier
}

// IsPickup reports whether touching this kind consumes it
func (k Kind) IsPickup() bool {
	switch k {
	case KindCoin, KindSpeedUp, KindSlowDown, KindRocket:
		return true
	}
	return false
}

// Rider is a prop riding the path: truck, collectable or sign
// It runs only the reduced motion model: externally advanced distance, fixed lane
type Rider struct {
	ID    uuid.UUID
	Kind  Kind
	Lane  int
	Dir   spline.Direction
	Speed float64 // path units per second along Dir, 0 for static props
	State State

	// Finished is set when a rider on an open path runs off either end
	Finished bool

	follower *spline.Follower
	pose     spline.Pose
}

// New places a rider in lane at distance; the path is validated once here
func New(kind Kind, path spline.Path, lanes Lanes, lane int, distance float64, dir spline.Direction, speed float64) (*Rider, error) {
	if err := lanes.Validate(); err != nil {
		return nil, err
	}
	f, err := spline.NewFollower(path)
	if err != nil {
		return nil, err
	}
	r := &Rider{
		ID:       uuid.New(),
		Kind:     kind,
		Lane:     lanes.Clamp(lane),
		Dir:      dir,
		Speed:    speed,
		follower: f,
	}
	r.State = State{Distance: distance, Lateral: lanes.Offset(r.Lane)}
	r.Advance(0)
	return r, nil
}

// Advance moves the rider by a signed distance delta and refreshes its pose
// Closed paths wrap; open paths clamp and mark the rider finished
func (r *Rider) Advance(delta float64) {
	path := r.follower.Path()
	length := path.Length()
	d := r.State.Distance + delta

	if path.Closed() {
		d = vmath.Wrap(d, length)
	} else if d < 0 || d > length {
		d = vmath.Clamp(d, 0, length)
		r.Finished = true
	}
	r.State.Distance = d

	// The far end of an open path would wrap to its start
	at := d
	if !path.Closed() && at >= length {
		at = math.Nextafter(length, 0)
	}
	r.pose = r.follower.Resolve(at, r.State.Lateral).Facing(r.Dir)
}

// Step advances by its own speed over dt in its travel direction
func (r *Rider) Step(dt float64) {
	if dt <= 0 || r.Finished {
		return
	}
	r.Advance(r.Speed * dt * r.Dir.Sign())
}

// Pose returns the pose computed by the last Advance or Step
func (r *Rider) Pose() spline.Pose {
	return r.pose
}
