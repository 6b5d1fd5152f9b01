package game

import (
	"slices"

	"github.com/lixenwraith/wheelie/collide"
	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/score"
	"github.com/lixenwraith/wheelie/spline"
)

// Prop is the drawable state of one prop
type Prop struct {
	Kind    rider.Kind
	Lane    int
	Dir     spline.Direction
	Ahead   float64 // signed path distance from the player
	Lateral float64
}

// Frame is a copy of everything the renderer draws; it shares nothing with the session
type Frame struct {
	Run      int
	Steps    uint64
	Lanes    rider.Lanes
	Player   rider.State
	Lane     int
	Pose     motion.PlayerPose
	Lift     float64
	Wheelie  float64
	Tilt     float64
	Speed    float64
	Racing   bool
	RunEnded bool
	Reason   motion.FallReason

	// Props sorted far to near
	Props   []Prop
	Summary score.Summary
}

// Frame snapshots the session
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.ctrl
	f := Frame{
		Run:      s.run,
		Steps:    s.steps,
		Lanes:    s.lanes,
		Player:   c.State(),
		Lane:     c.Lane(),
		Pose:     c.Pose(),
		Lift:     c.Lift(),
		Wheelie:  c.WheelieAngle(),
		Tilt:     c.TiltAngle(),
		Speed:    c.Speed(),
		Racing:   c.Racing(),
		RunEnded: c.RunEnded(),
		Reason:   c.FallReason(),
		Props:    make([]Prop, 0, len(s.props)),
		Summary:  s.keeper.Summary(),
	}
	for _, p := range s.props {
		f.Props = append(f.Props, Prop{
			Kind:    p.Kind,
			Lane:    p.Lane,
			Dir:     p.Dir,
			Ahead:   collide.Delta(f.Player.Distance, p.State.Distance, s.length, s.closed),
			Lateral: p.State.Lateral,
		})
	}
	slices.SortFunc(f.Props, func(a, b Prop) int {
		switch {
		case a.Ahead > b.Ahead:
			return -1
		case a.Ahead < b.Ahead:
			return 1
		}
		return 0
	})
	return f
}
