package game

import (
	"context"
	"fmt"
	"log"

	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/score"
)

// Result summarizes a headless run
type Result struct {
	Steps    int
	Elapsed  float64 // simulated seconds, fall animation included
	RunTime  float64 // seconds spent racing
	Odometer float64
	Reason   motion.FallReason
	Ended    bool
	Summary  score.Summary
}

// Simulate steps s by dt until the run ends or limit simulated seconds pass
// The session's driver supplies input; no wall clock is involved
func Simulate(ctx context.Context, s *Session, dt, limit float64) (Result, error) {
	if !(dt > 0) || !(limit > 0) {
		return Result{}, fmt.Errorf("%w: step %v, limit %v", motion.ErrConfiguration, dt, limit)
	}
	var res Result
	for res.Elapsed < limit {
		if res.Steps%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res.fill(s), err
			}
		}
		s.Step(dt)
		res.Steps++
		res.Elapsed += dt
		if s.RunEnded() {
			break
		}
	}
	res = res.fill(s)
	log.Printf("simulate: %d steps, %.1fs racing, odometer %.1f, fall %s, score %d",
		res.Steps, res.RunTime, res.Odometer, res.Reason, res.Summary.Score)
	return res, nil
}

func (r Result) fill(s *Session) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ctrl
	r.RunTime = c.RunTime()
	r.Odometer = c.Odometer()
	r.Reason = c.FallReason()
	r.Ended = c.RunEnded()
	r.Summary = s.keeper.Summary()
	return r
}
