package motion

import (
	"fmt"

	"github.com/lixenwraith/wheelie/vmath"
)

// Envelope is a three-phase shape: linear ramp in, hold, linear ramp out
// Peak is the value reached during hold
type Envelope struct {
	RampUp   float64
	Hold     float64
	RampDown float64
	Peak     float64
}

// Total returns the lifetime of the envelope
func (e Envelope) Total() float64 {
	return e.RampUp + e.Hold + e.RampDown
}

// Validate rejects negative phases and zero-length envelopes
func (e Envelope) Validate() error {
	if e.RampUp < 0 || e.Hold < 0 || e.RampDown < 0 {
		return fmt.Errorf("%w: negative envelope phase (%v, %v, %v)", ErrConfiguration, e.RampUp, e.Hold, e.RampDown)
	}
	if !(e.Total() > 0) || !vmath.IsFinite(e.Total()) {
		return fmt.Errorf("%w: zero-duration envelope", ErrConfiguration)
	}
	if !vmath.IsFinite(e.Peak) {
		return fmt.Errorf("%w: envelope peak %v", ErrConfiguration, e.Peak)
	}
	return nil
}

// Shape returns the envelope weight in [0, 1] at elapsed seconds
// 0 before start and from Total on
func (e Envelope) Shape(elapsed float64) float64 {
	switch {
	case elapsed < 0 || elapsed >= e.Total():
		return 0
	case elapsed < e.RampUp:
		return elapsed / e.RampUp
	case elapsed < e.RampUp+e.Hold:
		return 1
	default:
		return 1 - (elapsed-e.RampUp-e.Hold)/e.RampDown
	}
}

// Multiplier returns the factor at elapsed: 1 outside the envelope, Peak during hold
func (e Envelope) Multiplier(elapsed float64) float64 {
	return 1 + (e.Peak-1)*e.Shape(elapsed)
}

// Offset returns the additive value at elapsed: 0 outside the envelope, Peak during hold
func (e Envelope) Offset(elapsed float64) float64 {
	return e.Peak * e.Shape(elapsed)
}

// Modifier is a restartable timed effect following an Envelope
type Modifier struct {
	Envelope Envelope

	active  bool
	elapsed float64
}

// NewModifier returns an inactive modifier
func NewModifier(e Envelope) Modifier {
	return Modifier{Envelope: e}
}

// Trigger starts the envelope from zero; re-triggering restarts it
func (m *Modifier) Trigger() {
	m.active = true
	m.elapsed = 0
}

// Advance moves elapsed forward and deactivates at the end of the envelope
func (m *Modifier) Advance(dt float64) {
	if !m.active || dt <= 0 {
		return
	}
	m.elapsed += dt
	if m.elapsed >= m.Envelope.Total() {
		m.active = false
	}
}

// SetElapsed places the modifier at an exact point of its envelope
// Crossing the end deactivates it
func (m *Modifier) SetElapsed(elapsed float64) {
	m.active = elapsed < m.Envelope.Total()
	m.elapsed = elapsed
}

func (m Modifier) Active() bool {
	return m.active
}

func (m Modifier) Elapsed() float64 {
	return m.elapsed
}

// Factor returns the multiplicative effect, 1 when inactive
func (m Modifier) Factor() float64 {
	if !m.active {
		return 1
	}
	return m.Envelope.Multiplier(m.elapsed)
}

// Value returns the additive effect, 0 when inactive
func (m Modifier) Value() float64 {
	if !m.active {
		return 0
	}
	return m.Envelope.Offset(m.elapsed)
}

