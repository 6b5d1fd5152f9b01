package motion

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/wheelie/parameter"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/vmath"
)

// ErrConfiguration is returned for settings a run cannot start with
var ErrConfiguration = errors.New("configuration error")

// Config holds every tuning value of the player controller
type Config struct {
	Lanes rider.Lanes
	// StartLane is the lane a run begins in; -1 selects the center lane
	StartLane int

	LaneChangeDuration float64
	LaneChangeCooldown float64
	LaneInputBuffer    float64

	MaxTiltAngle   float64
	TiltSmoothTime float64

	MaxWheelieAngle       float64
	WheelieSmoothTime     float64
	WheelieMandatory      bool
	AllowNegativeWheelie  bool
	WheelieErrorTolerance float64
	WheelieGracePeriod    float64

	BaseSpeed    float64
	MaxSpeed     float64
	Acceleration float64

	SpeedUp  Envelope
	SlowDown Envelope
	Rocket   Envelope

	RocketBobAmplitude  float64
	RocketBobFrequency  float64
	RocketDistanceScale float64

	FallDuration float64
	FallPitch    float64
	FallSpinRate float64

	PointsPerUnit float64
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		Lanes:     rider.Lanes{Count: parameter.LaneCount, Width: parameter.LaneWidth},
		StartLane: -1,

		LaneChangeDuration: parameter.LaneChangeDuration,
		LaneChangeCooldown: parameter.LaneChangeCooldown,
		LaneInputBuffer:    parameter.LaneInputBuffer,

		MaxTiltAngle:   parameter.MaxTiltAngle,
		TiltSmoothTime: parameter.TiltSmoothTime,

		MaxWheelieAngle:       parameter.MaxWheelieAngle,
		WheelieSmoothTime:     parameter.WheelieSmoothTime,
		WheelieMandatory:      parameter.WheelieMandatory,
		AllowNegativeWheelie:  parameter.AllowNegativeWheelie,
		WheelieErrorTolerance: parameter.WheelieErrorTolerance,
		WheelieGracePeriod:    parameter.WheelieGracePeriod,

		BaseSpeed:    parameter.BaseSpeed,
		MaxSpeed:     parameter.MaxSpeed,
		Acceleration: parameter.Acceleration,

		SpeedUp: Envelope{
			RampUp:   parameter.SpeedUpRampUp,
			Hold:     parameter.SpeedUpHold,
			RampDown: parameter.SpeedUpRampDown,
			Peak:     parameter.SpeedUpPeak,
		},
		SlowDown: Envelope{
			RampUp:   parameter.SlowDownRampUp,
			Hold:     parameter.SlowDownHold,
			RampDown: parameter.SlowDownRampDown,
			Peak:     parameter.SlowDownPeak,
		},
		Rocket: Envelope{
			RampUp:   parameter.RocketRampUp,
			Hold:     parameter.RocketHold,
			RampDown: parameter.RocketRampDown,
			Peak:     parameter.RocketPeak,
		},

		RocketBobAmplitude:  parameter.RocketBobAmplitude,
		RocketBobFrequency:  parameter.RocketBobFrequency,
		RocketDistanceScale: parameter.RocketDistanceScale,

		FallDuration: parameter.FallDuration,
		FallPitch:    parameter.FallPitch,
		FallSpinRate: parameter.FallSpinRate,

		PointsPerUnit: parameter.PointsPerUnit,
	}
}

// Validate rejects configurations a run cannot start with
func (c Config) Validate() error {
	if err := c.Lanes.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.StartLane < -1 || c.StartLane >= c.Lanes.Count {
		return fmt.Errorf("%w: start lane %d outside [0, %d)", ErrConfiguration, c.StartLane, c.Lanes.Count)
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"lane change duration", c.LaneChangeDuration},
		{"max wheelie angle", c.MaxWheelieAngle},
		{"acceleration", c.Acceleration},
		{"fall duration", c.FallDuration},
	}
	for _, p := range positive {
		if !(p.v > 0) || !vmath.IsFinite(p.v) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrConfiguration, p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"lane change cooldown", c.LaneChangeCooldown},
		{"lane input buffer", c.LaneInputBuffer},
		{"max tilt angle", c.MaxTiltAngle},
		{"tilt smooth time", c.TiltSmoothTime},
		{"wheelie smooth time", c.WheelieSmoothTime},
		{"wheelie error tolerance", c.WheelieErrorTolerance},
		{"wheelie grace period", c.WheelieGracePeriod},
		{"base speed", c.BaseSpeed},
		{"rocket bob amplitude", c.RocketBobAmplitude},
		{"rocket bob frequency", c.RocketBobFrequency},
		{"points per unit", c.PointsPerUnit},
	}
	for _, p := range nonNegative {
		if !(p.v >= 0) || !vmath.IsFinite(p.v) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrConfiguration, p.name, p.v)
		}
	}

	if c.MaxSpeed < c.BaseSpeed || !vmath.IsFinite(c.MaxSpeed) {
		return fmt.Errorf("%w: max speed %v below base speed %v", ErrConfiguration, c.MaxSpeed, c.BaseSpeed)
	}
	if c.WheelieMandatory && 2*c.WheelieErrorTolerance >= c.MaxWheelieAngle {
		return fmt.Errorf("%w: wheelie tolerance %v leaves no safe band below %v", ErrConfiguration, c.WheelieErrorTolerance, c.MaxWheelieAngle)
	}
	if !(c.RocketDistanceScale > 0) {
		return fmt.Errorf("%w: rocket distance scale must be positive, got %v", ErrConfiguration, c.RocketDistanceScale)
	}

	for _, e := range []struct {
		name string
		env  Envelope
	}{
		{"speed-up", c.SpeedUp},
		{"slow-down", c.SlowDown},
		{"rocket", c.Rocket},
	} {
		if err := e.env.Validate(); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}
	if !(c.SpeedUp.Peak > 0) || !(c.SlowDown.Peak > 0) {
		return fmt.Errorf("%w: speed multipliers must be positive", ErrConfiguration)
	}
	return nil
}

// wheelieMin is the lower wheelie bound; mandatory mode never leans forward
func (c Config) wheelieMin() float64 {
	if c.AllowNegativeWheelie && !c.WheelieMandatory {
		return -c.MaxWheelieAngle
	}
	return 0
}

// startLane resolves the -1 sentinel
func (c Config) startLane() int {
	if c.StartLane < 0 {
		return c.Lanes.CenterLane()
	}
	return c.StartLane
}
