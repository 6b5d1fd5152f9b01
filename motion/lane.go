package motion

import "github.com/lixenwraith/wheelie/vmath"

// LaneChange interpolates the lateral offset between two lane centers
type LaneChange struct {
	active   bool
	start    float64
	target   float64
	elapsed  float64
	duration float64
	cooldown float64 // remaining seconds before another change may start
}

// Active reports whether a change is in progress
func (l *LaneChange) Active() bool {
	return l.active
}

// Ready reports whether a new change may start
func (l *LaneChange) Ready() bool {
	return !l.active && l.cooldown <= 0
}

// Start begins a change; ignored unless Ready
func (l *LaneChange) Start(from, to, duration float64) bool {
	if !l.Ready() || duration <= 0 {
		return false
	}
	l.active = true
	l.start = from
	l.target = to
	l.elapsed = 0
	l.duration = duration
	return true
}

// Advance steps the change and returns the new offset
// done is true exactly on the step that completes it, which also arms the cooldown
func (l *LaneChange) Advance(dt, cooldown float64) (offset float64, done bool) {
	if !l.active {
		return l.target, false
	}
	l.elapsed += dt
	if l.elapsed >= l.duration {
		l.active = false
		l.cooldown = cooldown
		return l.target, true
	}
	return vmath.Lerp(l.start, l.target, vmath.Clamp01(l.elapsed/l.duration)), false
}

// Cool counts the cooldown down
func (l *LaneChange) Cool(dt float64) {
	if l.cooldown > 0 {
		l.cooldown -= dt
	}
}
