package motion

// InputSource is polled once per step
// Lane presses are edge-triggered; accelerate and decelerate are held
type InputSource interface {
	LaneLeftPressed() bool
	LaneRightPressed() bool
	AcceleratePressed() bool
	DeceleratePressed() bool
}

// Input is a plain value InputSource
type Input struct {
	Left       bool
	Right      bool
	Accelerate bool
	Decelerate bool
}

func (i Input) LaneLeftPressed() bool   { return i.Left }
func (i Input) LaneRightPressed() bool  { return i.Right }
func (i Input) AcceleratePressed() bool { return i.Accelerate }
func (i Input) DeceleratePressed() bool { return i.Decelerate }

// ScoreSink receives points and coins as they are earned
type ScoreSink interface {
	AddPoints(n int)
	AddCoins(n int)
}

// RunEndSink is told once per run when the fall animation finishes
type RunEndSink interface {
	OnRunEnded(finalScore int)
}

// EventKind enumerates controller notifications
type EventKind uint8

const (
	EventLaneChangeStarted EventKind = iota
	EventLaneChangeDone
	EventSpeedUpStarted
	EventSlowDownStarted
	EventRocketStarted
	EventCoinsCollected
	EventFellOver
	EventRunEnded
)

var eventNames = [...]string{
	EventLaneChangeStarted: "lane_change_started",
	EventLaneChangeDone:    "lane_change_done",
	EventSpeedUpStarted:    "speed_up_started",
	EventSlowDownStarted:   "slow_down_started",
	EventRocketStarted:     "rocket_started",
	EventCoinsCollected:    "coins_collected",
	EventFellOver:          "fell_over",
	EventRunEnded:          "run_ended",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// FallReason records what ended a run
type FallReason uint8

const (
	FallNone FallReason = iota
	FallCollision
	FallWheelie
)

func (r FallReason) String() string {
	switch r {
	case FallCollision:
		return "collision"
	case FallWheelie:
		return "wheelie"
	default:
		return "none"
	}
}

// Event is a controller notification
type Event struct {
	Kind     EventKind
	Distance float64
	Lane     int
	Value    int        // coins collected, final score
	Reason   FallReason // set for EventFellOver
}

// EventSink observes controller events (audio cues, logs)
type EventSink interface {
	OnMotionEvent(e Event)
}

// EventSinkFunc adapts a function to EventSink
type EventSinkFunc func(e Event)

func (f EventSinkFunc) OnMotionEvent(e Event) { f(e) }

// nopSink fills unset dependencies
type nopSink struct{}

func (nopSink) AddPoints(int)         {}
func (nopSink) AddCoins(int)          {}
func (nopSink) OnRunEnded(int)        {}
func (nopSink) OnMotionEvent(e Event) {}
