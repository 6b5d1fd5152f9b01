package status

// Metric keys written by the game session
const (
	KeyState    = "run.state"
	KeyFall     = "run.fall_reason"
	KeyRunTime  = "run.time"
	KeyRuns     = "run.count"
	KeyDistance = "player.distance"
	KeyOdometer = "player.odometer"
	KeyLane     = "player.lane"
	KeyLateral  = "player.lateral"
	KeySpeed    = "player.speed"
	KeyTopSpeed = "player.top_speed"
	KeyLift     = "player.lift"
	KeyWheelie  = "player.wheelie"
	KeyTilt     = "player.tilt"
	KeySpeedUp  = "modifier.speed_up"
	KeySlowDown = "modifier.slow_down"
	KeyRocket   = "modifier.rocket"
	KeyPoints   = "score.points"
	KeyCoins    = "score.coins"
	KeyBest     = "score.best"
	KeyProps    = "world.props"
	KeySpawned  = "world.spawned"
	KeyTicks    = "engine.ticks"
	KeyPaused   = "engine.paused"
)
