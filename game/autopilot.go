package game

import (
	"github.com/lixenwraith/wheelie/collide"
	"github.com/lixenwraith/wheelie/motion"
)

// Autopilot drives headless runs
// It steers toward the nearest lane without an obstacle inside Horizon and
// holds the wheelie near the middle of the survivable band
type Autopilot struct {
	// Horizon is how far ahead obstacles are considered
	Horizon float64
	// Margin is how far behind the player an obstacle still blocks a lane
	Margin float64
}

// NewAutopilot sizes the look-ahead from the lane change time at top speed
func NewAutopilot(cfg motion.Config) *Autopilot {
	return &Autopilot{
		Horizon: cfg.MaxSpeed*cfg.LaneChangeDuration*2 + 4,
		Margin:  2,
	}
}

func (a *Autopilot) Next(s *Session, _ float64) motion.InputSource {
	c := s.Controller()
	cfg := c.Config()
	in := motion.Input{}

	// Bang-bang around the middle of [tol, max - tol]
	in.Accelerate = c.WheelieAngle() < cfg.MaxWheelieAngle/2

	if c.ChangingLane() || !c.Racing() {
		return in
	}

	lane := c.Lane()
	if !a.blocked(s, lane) {
		return in
	}

	// Head for the closest free lane, toward the center on a tie
	left, right := a.freeLane(s, lane, -1), a.freeLane(s, lane, +1)
	switch {
	case left < 0 && right < 0:
	case right < 0, left >= 0 && lane-left < right-lane:
		in.Left = true
	case left < 0, right-lane < lane-left:
		in.Right = true
	case float64(lane) > cfg.Lanes.Center():
		in.Left = true
	default:
		in.Right = true
	}
	return in
}

// freeLane returns the first unblocked lane from lane in direction dir, or -1
func (a *Autopilot) freeLane(s *Session, lane, dir int) int {
	for l := lane + dir; l >= 0 && l < s.lanes.Count; l += dir {
		if !a.blocked(s, l) {
			return l
		}
	}
	return -1
}

// blocked reports an obstacle in lane within the horizon
func (a *Autopilot) blocked(s *Session, lane int) bool {
	return collide.Nearest(s.ctrl.State(), lane, a.Margin, a.Horizon, s.length, s.closed, s.props) != nil
}
