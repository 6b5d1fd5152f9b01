package game

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wheelie/engine"
	"github.com/lixenwraith/wheelie/status"
)

// Runner steps a session on a fixed tick of pausable time
type Runner struct {
	session *Session
	clock   *engine.PausableClock
	sched   *engine.ClockScheduler
	updates <-chan struct{}

	statPaused *atomic.Bool
}

// NewRunner schedules s every tick; nil clock uses the system clock
func NewRunner(s *Session, clock *engine.PausableClock, tick time.Duration) *Runner {
	if clock == nil {
		clock = engine.NewPausableClock(nil)
	}
	r := &Runner{
		session:    s,
		clock:      clock,
		statPaused: s.Registry().Bools.Get(status.KeyPaused),
	}
	r.sched, r.updates = engine.NewClockScheduler(s, clock, tick, s.Registry())
	r.sched.OnReset(func() {
		s.Restart()
		r.statPaused.Store(false)
	})
	return r
}

// Run steps the session until ctx is done
func (r *Runner) Run(ctx context.Context) error {
	log.Printf("runner: started")
	r.sched.Start()
	<-ctx.Done()
	r.sched.Stop()
	log.Printf("runner: stopped after %d ticks", r.sched.TickCount())
	return nil
}

// Updates delivers a signal after each step; missed signals collapse
func (r *Runner) Updates() <-chan struct{} { return r.updates }

// TogglePause freezes or resumes stepping and returns the new state
func (r *Runner) TogglePause() bool {
	paused := r.clock.Toggle()
	r.statPaused.Store(paused)
	log.Printf("runner: paused=%v", paused)
	return paused
}

// Restart queues a new run on the stepping goroutine
func (r *Runner) Restart() {
	r.sched.RequestReset()
}

func (r *Runner) Paused() bool { return r.clock.IsPaused() }
