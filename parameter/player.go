package parameter

// Distances are path units (meters), times are seconds, angles are degrees

// Lanes
const (
	LaneCount = 3
	LaneWidth = 2.5

	// LaneChangeDuration is the time to slide from one lane center to the next
	LaneChangeDuration = 0.25
	// LaneChangeCooldown is the pause after a completed change before the next can start
	LaneChangeCooldown = 0.1
	// LaneInputBuffer is how long a lane press waits for the current change or cooldown to end
	LaneInputBuffer = 0.2
)

// Tilt
const (
	MaxTiltAngle   = 20.0
	TiltSmoothTime = 0.08
)

// Wheelie
const (
	MaxWheelieAngle   = 40.0
	WheelieSmoothTime = 0.35

	// WheelieErrorTolerance is the band at each end of the wheelie range that ends the run
	WheelieErrorTolerance = 2.0
	// WheelieGracePeriod is the invulnerability window at the start of a run
	WheelieGracePeriod = 2.0

	WheelieMandatory     = true
	AllowNegativeWheelie = false
)

// Speed
const (
	BaseSpeed = 12.0
	MaxSpeed  = 24.0
	// Acceleration is the rate current speed approaches the target, units/s²
	Acceleration = 8.0
)

// Speed-up power-up envelope
const (
	SpeedUpRampUp   = 0.5
	SpeedUpHold     = 4.0
	SpeedUpRampDown = 0.5
	SpeedUpPeak     = 1.5
)

// Slow-down power-up envelope
const (
	SlowDownRampUp   = 0.5
	SlowDownHold     = 3.0
	SlowDownRampDown = 0.5
	SlowDownPeak     = 0.6
)

// Rocket envelope; peak is the lift height
const (
	RocketRampUp   = 0.6
	RocketHold     = 3.0
	RocketRampDown = 0.8
	RocketPeak     = 6.0

	RocketBobAmplitude = 0.25
	RocketBobFrequency = 1.5
	// RocketDistanceScale multiplies distance gained while airborne
	RocketDistanceScale = 1.5
)

// Fall-over animation
const (
	FallDuration = 1.2
	FallPitch    = 90.0
	FallSpinRate = 540.0
)

// Scoring
const (
	PointsPerUnit = 1.0
	CoinValue     = 1
)
