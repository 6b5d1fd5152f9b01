package motion

import "github.com/lixenwraith/wheelie/vmath"

// Wheelie is the damped pitch of the vehicle; angle drives the speed target
type Wheelie struct {
	Angle  float64
	Target float64

	Min, Max   float64
	SmoothTime float64

	damper vmath.Damper
}

// Update picks the target from input, damps toward it and clamps
func (w *Wheelie) Update(accelerate, decelerate bool, dt float64) {
	switch {
	case accelerate:
		w.Target = w.Max
	case decelerate && w.Min < 0:
		w.Target = w.Min
	default:
		w.Target = 0
	}

	w.Angle = w.damper.Step(w.Angle, w.Target, w.SmoothTime, 0, dt)
	if w.Angle < w.Min || w.Angle > w.Max {
		w.Angle = vmath.Clamp(w.Angle, w.Min, w.Max)
		w.damper.Reset()
	}
}

// Factor maps the angle onto [0, 1] of the speed range; lean-forward counts as 0
func (w *Wheelie) Factor() float64 {
	if w.Max <= 0 {
		return 0
	}
	return vmath.Clamp01(w.Angle / w.Max)
}

// OutsideBand reports the failure window: angle <= tol or angle > max - tol
func (w *Wheelie) OutsideBand(tol float64) bool {
	return w.Angle <= tol || w.Angle > w.Max-tol
}

// Reset levels the vehicle
func (w *Wheelie) Reset() {
	w.Angle = 0
	w.Target = 0
	w.damper.Reset()
}

// Tilt is the damped roll that follows lane changes
type Tilt struct {
	Angle      float64
	Target     float64
	Max        float64
	SmoothTime float64

	damper vmath.Damper
}

// Update damps toward target and clamps to [-Max, Max]
func (t *Tilt) Update(target, dt float64) {
	t.Target = vmath.Clamp(target, -t.Max, t.Max)
	t.Angle = t.damper.Step(t.Angle, t.Target, t.SmoothTime, 0, dt)
	if t.Angle < -t.Max || t.Angle > t.Max {
		t.Angle = vmath.Clamp(t.Angle, -t.Max, t.Max)
		t.damper.Reset()
	}
}

// Reset levels the vehicle
func (t *Tilt) Reset() {
	t.Angle = 0
	t.Target = 0
	t.damper.Reset()
}
