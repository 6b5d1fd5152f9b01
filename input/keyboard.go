// Package input turns terminal key events into controller input
package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wheelie/engine"
	"github.com/lixenwraith/wheelie/motion"
)

// Keyboard collects key events from the event goroutine and hands one
// motion.Input per step to the simulation goroutine
// Lane presses are latched until polled; accelerate and decelerate count as
// held for the hold window after their last press
type Keyboard struct {
	mu sync.Mutex

	table *KeyTable
	clock engine.TimeProvider
	hold  time.Duration

	left, right int
	accelAt     time.Time
	decelAt     time.Time
}

// NewKeyboard creates a keyboard; nil clock uses the system clock
func NewKeyboard(table *KeyTable, clock engine.TimeProvider, hold time.Duration) *Keyboard {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	return &Keyboard{table: table, clock: clock, hold: hold}
}

// Handle records ev and returns its action so the caller can act on pause, restart and quit
func (k *Keyboard) Handle(ev *tcell.EventKey) Action {
	a := k.table.Lookup(ev)
	if a.Steering() {
		k.Press(a)
	}
	return a
}

// Press records a steering action directly
func (k *Keyboard) Press(a Action) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Now()
	switch a {
	case ActionLeft:
		k.left++
	case ActionRight:
		k.right++
	case ActionAccelerate:
		k.accelAt = now
		k.decelAt = time.Time{}
	case ActionDecelerate:
		k.decelAt = now
		k.accelAt = time.Time{}
	}
}

// Poll returns the input for one step and consumes one latched press per side
func (k *Keyboard) Poll() motion.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Now()
	in := motion.Input{
		Left:       k.left > 0,
		Right:      k.right > 0,
		Accelerate: k.held(k.accelAt, now),
		Decelerate: k.held(k.decelAt, now),
	}
	if k.left > 0 {
		k.left--
	}
	if k.right > 0 {
		k.right--
	}
	return in
}

// Clear drops latched presses and releases held actions
func (k *Keyboard) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.left, k.right = 0, 0
	k.accelAt, k.decelAt = time.Time{}, time.Time{}
}

func (k *Keyboard) held(at, now time.Time) bool {
	return !at.IsZero() && now.Sub(at) < k.hold
}
