package vmath

import "math"

// Damper is a critically damped spring toward a moving target
// Velocity is carried between calls; zero value is at rest
type Damper struct {
	Velocity float64
}

// Step advances current toward target over dt with the given smoothing time
// maxSpeed <= 0 means unbounded
func (d *Damper) Step(current, target, smoothTime, maxSpeed, dt float64) float64 {
	return SmoothDamp(current, target, &d.Velocity, smoothTime, maxSpeed, dt)
}

// Reset stops the spring
func (d *Damper) Reset() {
	d.Velocity = 0
}

// SmoothDamp moves current toward target using a critically damped spring
// approximated with the 4th order exp polynomial; velocity is read and written
// Never overshoots target; dt <= 0 returns current unchanged
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	if smoothTime < 1e-4 {
		smoothTime = 1e-4
	}

	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target

	if maxSpeed > 0 {
		maxChange := maxSpeed * smoothTime
		change = Clamp(change, -maxChange, maxChange)
	}
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// Clamp overshoot
	if (originalTo-current > 0) == (out > originalTo) {
		out = originalTo
		*velocity = (out - originalTo) / dt
	}

	if math.IsNaN(out) {
		*velocity = 0
		return originalTo
	}
	return out
}
