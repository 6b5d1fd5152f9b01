package input

// Action is what a bound key does
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionAccelerate
	ActionDecelerate
	ActionPause
	ActionRestart
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:       "none",
	ActionLeft:       "left",
	ActionRight:      "right",
	ActionAccelerate: "accelerate",
	ActionDecelerate: "decelerate",
	ActionPause:      "pause",
	ActionRestart:    "restart",
	ActionQuit:       "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Steering reports whether the action feeds the player controller
func (a Action) Steering() bool {
	return a >= ActionLeft && a <= ActionDecelerate
}
