package parameter

import "time"

// Game loop timing
const (
	// TickInterval is the fixed simulation step
	TickInterval = 16 * time.Millisecond

	// FrameInterval is the terminal redraw interval
	FrameInterval = 33 * time.Millisecond

	// MaxCatchUpTicks is the tick backlog past which the scheduler drops missed ticks
	MaxCatchUpTicks = 5
)

// Default looped track: ellipse through evenly spaced control points
const (
	TrackRadiusX = 120.0
	TrackRadiusZ = 70.0
	TrackPoints  = 16
)

// Spawner
const (
	// SpawnRowSpacing is the distance between consecutive prop rows
	SpawnRowSpacing = 18.0
	// SpawnAhead is how far ahead of the player rows are kept filled
	SpawnAhead = 160.0
	// SpawnBehind is how far behind the player props survive before culling
	SpawnBehind = 20.0
	// SpawnSafeStart keeps the first stretch of a run clear
	SpawnSafeStart = 40.0

	TruckSpeed         = 6.0
	OncomingTruckSpeed = 8.0

	SpawnSeed = 1
)

// Spawn weights per kind name
var SpawnWeights = map[string]float64{
	"truck":     4,
	"barrier":   3,
	"coin":      6,
	"speed_up":  1,
	"slow_down": 1,
	"rocket":    0.5,
	"sign":      1,
}

// Collision footprint in path space
const (
	// HitLength is the half extent along the path within which two riders overlap
	HitLength = 1.2
	// HitWidth is the half extent across the path within which two riders overlap
	HitWidth = 0.9
	// RocketClearance is the lift above which obstacles pass underneath
	RocketClearance = 1.5
)
