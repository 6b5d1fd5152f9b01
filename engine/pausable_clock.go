package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock is run time: real time minus every pause
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider
	start    time.Time // real time of creation

	paused      atomic.Bool
	pauseStart  time.Time
	pausedTotal time.Duration
}

// NewPausableClock creates a running clock; nil provider means the system clock
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider: provider,
		start:    provider.Now(),
	}
}

// Now returns run time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused.Load() {
		return pc.pauseStart.Add(-pc.pausedTotal)
	}
	return pc.provider.Now().Add(-pc.pausedTotal)
}

// Elapsed returns run time since creation
func (pc *PausableClock) Elapsed() time.Duration {
	return pc.Now().Sub(pc.start)
}

// RealTime returns provider time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused.CompareAndSwap(false, true) {
		pc.pauseStart = pc.provider.Now()
	}
}

func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused.CompareAndSwap(true, false) {
		pc.pausedTotal += pc.provider.Now().Sub(pc.pauseStart)
		pc.pauseStart = time.Time{}
	}
}

// Toggle flips the pause state and returns the new one
func (pc *PausableClock) Toggle() bool {
	if pc.paused.Load() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

func (pc *PausableClock) IsPaused() bool {
	return pc.paused.Load()
}

// TotalPauseDuration includes the current pause, if any
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedTotal
	if pc.paused.Load() {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}
