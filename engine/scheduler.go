package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wheelie/core"
	"github.com/lixenwraith/wheelie/parameter"
	"github.com/lixenwraith/wheelie/status"
)

// Ticker advances the simulation by one fixed step
type Ticker interface {
	Tick(dt time.Duration)
}

// TickerFunc adapts a function to Ticker
type TickerFunc func(dt time.Duration)

func (f TickerFunc) Tick(dt time.Duration) { f(dt) }

// ClockScheduler runs a Ticker on a fixed interval of pausable time
// Sleeps between deadlines instead of spinning
type ClockScheduler struct {
	ticker Ticker
	clock  *PausableClock

	tickInterval     time.Duration
	nextTickDeadline time.Time
	tickCount        atomic.Uint64
	mu               sync.RWMutex

	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	running   atomic.Bool
	resetChan chan struct{}
	onReset   func()

	// updateDone signals the frame loop after each tick, dropped if not drained
	updateDone chan struct{}

	statTicks *atomic.Int64
}

// NewClockScheduler returns the scheduler and its tick-done channel
// reg may be nil
func NewClockScheduler(ticker Ticker, clock *PausableClock, tickInterval time.Duration, reg *status.Registry) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)
	cs := &ClockScheduler{
		ticker:       ticker,
		clock:        clock,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		resetChan:    make(chan struct{}, 1),
		updateDone:   updateDone,
	}
	if reg != nil {
		cs.statTicks = reg.Ints.Get(status.KeyTicks)
	}
	return cs, updateDone
}

// OnReset sets the function run on the scheduler goroutine for RequestReset
// Must be called before Start
func (cs *ClockScheduler) OnReset(fn func()) {
	cs.onReset = fn
}

// RequestReset queues a reset; duplicate requests collapse into one
func (cs *ClockScheduler) RequestReset() {
	select {
	case cs.resetChan <- struct{}{}:
	default:
	}
}

func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the loop and waits for it; safe to call more than once
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-cs.resetChan:
			cs.executeReset()
			continue
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			sleepDuration = cs.tickInterval * 2
		} else {
			now := cs.clock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !now.Before(deadline) {
				cs.processTick()

				cs.mu.Lock()
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
				// Too far behind: drop the backlog instead of bursting
				if now.Sub(cs.nextTickDeadline) > cs.tickInterval*parameter.MaxCatchUpTicks {
					cs.nextTickDeadline = now.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				select {
				case cs.updateDone <- struct{}{}:
				default:
				}

				sleepDuration = max(deadline.Sub(cs.clock.Now()), 0)
			} else {
				sleepDuration = deadline.Sub(now)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.resetChan:
				timer.Stop()
				cs.executeReset()
			case <-cs.stopChan:
				return
			}
		}
	}
}

// executeReset runs the reset hook, rewinds the tick counter and resumes the clock
func (cs *ClockScheduler) executeReset() {
	if cs.onReset != nil {
		cs.onReset()
	}

	cs.mu.Lock()
	cs.tickCount.Store(0)
	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	if cs.statTicks != nil {
		cs.statTicks.Store(0)
	}
	cs.clock.Resume()
}

func (cs *ClockScheduler) processTick() {
	if cs.clock.IsPaused() {
		return
	}
	cs.ticker.Tick(cs.tickInterval)

	ticks := cs.tickCount.Add(1)
	if cs.statTicks != nil {
		cs.statTicks.Store(int64(ticks))
	}
}
