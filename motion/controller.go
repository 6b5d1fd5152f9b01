package motion

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/wheelie/engine/fsm"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/vmath"
)

// Run states
const (
	StateRacing fsm.StateID = iota + 1
	StateFallenOver
	StateFalling // child of FallenOver
	StateEnded   // child of FallenOver
)

// Run events
const (
	eventObstacleHit fsm.EventType = iota + 1
	eventWheelieFailed
)

// Deps are the collaborators injected at construction
// Path is required; nil sinks discard their notifications
type Deps struct {
	Path   spline.Path
	Score  ScoreSink
	RunEnd RunEndSink
	Events EventSink
}

// Controller drives the player along a path for one run at a time
type Controller struct {
	cfg Config

	follower *spline.Follower
	length   float64

	score  ScoreSink
	runEnd RunEndSink
	events EventSink

	machine *fsm.Machine[*Controller]

	// Rider state
	state rider.State
	lane  int

	laneChange LaneChange
	bufferDir  int     // pending lane input: -1 left, +1 right, 0 none
	bufferLeft float64 // seconds the pending input stays valid
	laneDir    int     // direction of the active change, drives tilt

	tilt    Tilt
	wheelie Wheelie

	speedUp  Modifier
	slowDown Modifier
	rocket   Modifier
	lift     float64

	speed    float64
	odometer float64
	runTime  float64

	points      int
	pointsCarry float64
	coins       int

	// FallenOver
	reason    FallReason
	fallStart float64
	fallPitch float64
	fallYaw   float64
	runEnded  bool

	// Step being processed, read by state actions
	dt    float64
	input InputSource

	pose PlayerPose
}

// New validates cfg and the path and returns a controller ready to race
func New(cfg Config, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Path == nil {
		return nil, fmt.Errorf("%w: nil path", spline.ErrInvalidPath)
	}
	follower, err := spline.NewFollower(deps.Path)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:      cfg,
		follower: follower,
		length:   deps.Path.Length(),
		score:    deps.Score,
		runEnd:   deps.RunEnd,
		events:   deps.Events,
	}
	if c.score == nil {
		c.score = nopSink{}
	}
	if c.runEnd == nil {
		c.runEnd = nopSink{}
	}
	if c.events == nil {
		c.events = nopSink{}
	}

	c.machine, err = buildMachine(cfg)
	if err != nil {
		return nil, err
	}
	c.Reset()
	return c, nil
}

func buildMachine(cfg Config) (*fsm.Machine[*Controller], error) {
	m := fsm.NewMachine[*Controller]()

	racing, err := m.AddState(StateRacing, "Racing", fsm.StateNone)
	if err != nil {
		return nil, err
	}
	racing.OnUpdate = append(racing.OnUpdate, (*Controller).race)

	if _, err = m.AddState(StateFallenOver, "FallenOver", fsm.StateNone); err != nil {
		return nil, err
	}

	falling, err := m.AddState(StateFalling, "Falling", StateFallenOver)
	if err != nil {
		return nil, err
	}
	falling.OnEnter = append(falling.OnEnter, (*Controller).enterFall)
	falling.OnUpdate = append(falling.OnUpdate, (*Controller).fall)

	ended, err := m.AddState(StateEnded, "Ended", StateFallenOver)
	if err != nil {
		return nil, err
	}
	ended.OnEnter = append(ended.OnEnter, (*Controller).endRun)

	for _, ev := range []fsm.EventType{eventObstacleHit, eventWheelieFailed} {
		if err = m.AddTransition(StateRacing, fsm.Transition[*Controller]{TargetID: StateFalling, Event: ev}); err != nil {
			return nil, err
		}
	}

	duration := cfg.FallDuration
	err = m.AddTransition(StateFalling, fsm.Transition[*Controller]{
		TargetID: StateEnded,
		Event:    fsm.EventTick,
		Guard: func(_ *Controller, timeInState float64) bool {
			return timeInState >= duration
		},
	})
	if err != nil {
		return nil, err
	}

	m.SetInitial(StateRacing)
	if err = m.Compile(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset starts a fresh run at distance 0 in the start lane
func (c *Controller) Reset() {
	c.lane = c.cfg.startLane()
	c.state = rider.State{Distance: 0, Lateral: c.cfg.Lanes.Offset(c.lane)}

	c.laneChange = LaneChange{}
	c.bufferDir, c.bufferLeft, c.laneDir = 0, 0, 0

	c.tilt = Tilt{Max: c.cfg.MaxTiltAngle, SmoothTime: c.cfg.TiltSmoothTime}
	c.wheelie = Wheelie{
		Min:        c.cfg.wheelieMin(),
		Max:        c.cfg.MaxWheelieAngle,
		SmoothTime: c.cfg.WheelieSmoothTime,
	}

	c.speedUp = NewModifier(c.cfg.SpeedUp)
	c.slowDown = NewModifier(c.cfg.SlowDown)
	c.rocket = NewModifier(c.cfg.Rocket)
	c.lift = 0

	c.speed = c.cfg.BaseSpeed
	c.odometer, c.runTime = 0, 0
	c.points, c.pointsCarry, c.coins = 0, 0, 0

	c.reason = FallNone
	c.fallStart, c.fallPitch, c.fallYaw = 0, 0, 0
	c.runEnded = false

	c.follower.Reset()
	if err := c.machine.Reset(c); err != nil {
		// Compiled in New; unreachable
		log.Printf("motion: fsm reset: %v", err)
	}
	c.updatePose()
}

// Step advances the run by dt seconds and returns the resulting pose
// Non-positive or non-finite dt leaves all state untouched
func (c *Controller) Step(dt float64, in InputSource) PlayerPose {
	if !(dt > 0) || !vmath.IsFinite(dt) {
		return c.pose
	}
	if in == nil {
		in = Input{}
	}

	c.dt = dt
	c.input = in
	c.machine.Update(c, dt)
	c.input = nil

	c.updatePose()
	return c.pose
}

// --- Racing ---

// race is the Racing update; the order of the stages is fixed
func (c *Controller) race() {
	dt := c.dt
	in := c.input
	c.runTime += dt

	c.stepLane(in, dt)
	c.stepTilt(dt)
	if c.stepWheelie(in, dt) {
		return
	}
	c.stepModifiers(dt)
	c.stepSpeed(dt)
	c.stepDistance(dt)
}

// stepLane buffers lane presses and drives the active change
func (c *Controller) stepLane(in InputSource, dt float64) {
	left, right := in.LaneLeftPressed(), in.LaneRightPressed()
	switch {
	case left && right:
		c.bufferDir, c.bufferLeft = 0, 0
	case left:
		c.bufferDir, c.bufferLeft = -1, c.cfg.LaneInputBuffer
	case right:
		c.bufferDir, c.bufferLeft = 1, c.cfg.LaneInputBuffer
	}

	c.laneChange.Cool(dt)
	if c.bufferDir != 0 && c.laneChange.Ready() {
		target := c.cfg.Lanes.Clamp(c.lane + c.bufferDir)
		if target != c.lane && c.laneChange.Start(c.state.Lateral, c.cfg.Lanes.Offset(target), c.cfg.LaneChangeDuration) {
			c.lane = target
			c.laneDir = c.bufferDir
			c.emit(Event{Kind: EventLaneChangeStarted})
		}
		c.bufferDir, c.bufferLeft = 0, 0
	}
	if c.bufferDir != 0 {
		c.bufferLeft -= dt
		if c.bufferLeft <= 0 {
			c.bufferDir, c.bufferLeft = 0, 0
		}
	}

	if c.laneChange.Active() {
		offset, done := c.laneChange.Advance(dt, c.cfg.LaneChangeCooldown)
		c.state.Lateral = c.cfg.Lanes.ClampOffset(offset)
		if done {
			c.laneDir = 0
			c.emit(Event{Kind: EventLaneChangeDone})
		}
	}
}

func (c *Controller) stepTilt(dt float64) {
	target := 0.0
	if c.laneChange.Active() {
		target = float64(c.laneDir) * c.cfg.MaxTiltAngle
	}
	c.tilt.Update(target, dt)
}

// stepWheelie returns true when the wheelie failed and the run is over
func (c *Controller) stepWheelie(in InputSource, dt float64) bool {
	c.wheelie.Update(in.AcceleratePressed(), in.DeceleratePressed(), dt)
	if !c.cfg.WheelieMandatory || c.runTime <= c.cfg.WheelieGracePeriod {
		return false
	}
	if c.wheelie.OutsideBand(c.cfg.WheelieErrorTolerance) {
		c.fallOver(FallWheelie, eventWheelieFailed)
		return true
	}
	return false
}

func (c *Controller) stepModifiers(dt float64) {
	c.speedUp.Advance(dt)
	c.slowDown.Advance(dt)
	c.rocket.Advance(dt)

	lift := c.rocket.Value()
	if lift > 0 {
		phase := 2 * math.Pi * c.cfg.RocketBobFrequency * c.rocket.Elapsed()
		lift = math.Max(0, lift+c.cfg.RocketBobAmplitude*math.Sin(phase))
	}
	c.lift = lift
}

func (c *Controller) stepSpeed(dt float64) {
	scale := c.speedUp.Factor() * c.slowDown.Factor()
	base := c.cfg.BaseSpeed
	target := (base + c.wheelie.Factor()*(c.cfg.MaxSpeed-base)) * scale

	c.speed = vmath.Approach(c.speed, target, c.cfg.Acceleration*dt)
	c.speed = vmath.Clamp(c.speed, base*scale, c.cfg.MaxSpeed*scale)
}

func (c *Controller) stepDistance(dt float64) {
	advance := c.speed * dt
	if c.rocket.Active() {
		advance *= c.cfg.RocketDistanceScale
	}
	c.state.Distance = vmath.Wrap(c.state.Distance+advance, c.length)
	c.odometer += advance

	c.pointsCarry += advance * c.cfg.PointsPerUnit
	if whole := math.Floor(c.pointsCarry); whole >= 1 {
		n := int(whole)
		c.pointsCarry -= whole
		c.points += n
		c.score.AddPoints(n)
	}
}

// --- FallenOver ---

func (c *Controller) fallOver(reason FallReason, ev fsm.EventType) {
	if !c.machine.In(StateRacing) {
		return
	}
	c.reason = reason
	c.machine.HandleEvent(c, ev)
}

func (c *Controller) enterFall() {
	c.fallStart = c.wheelie.Angle
	c.fallPitch = c.fallStart
	c.fallYaw = 0
	c.speed = 0
	c.emit(Event{Kind: EventFellOver, Reason: c.reason})
}

func (c *Controller) fall() {
	frac := vmath.Clamp01(c.machine.TimeInState() / c.cfg.FallDuration)
	c.fallPitch = vmath.Lerp(c.fallStart, c.cfg.FallPitch, frac)
	c.fallYaw = vmath.NormalizeAngle(c.fallYaw + c.cfg.FallSpinRate*c.dt)
}

func (c *Controller) endRun() {
	if c.runEnded {
		return
	}
	c.runEnded = true
	c.fallPitch = c.cfg.FallPitch
	c.runEnd.OnRunEnded(c.points)
	c.emit(Event{Kind: EventRunEnded, Value: c.points})
}

// --- Triggers ---

// ApplySpeedUp starts or restarts the speed-up envelope
func (c *Controller) ApplySpeedUp() {
	if c.trigger(&c.speedUp) {
		c.emit(Event{Kind: EventSpeedUpStarted})
	}
}

// ApplySlowDown starts or restarts the slow-down envelope
func (c *Controller) ApplySlowDown() {
	if c.trigger(&c.slowDown) {
		c.emit(Event{Kind: EventSlowDownStarted})
	}
}

// ApplyRocket starts or restarts the rocket envelope
func (c *Controller) ApplyRocket() {
	if c.trigger(&c.rocket) {
		c.emit(Event{Kind: EventRocketStarted})
	}
}

func (c *Controller) trigger(m *Modifier) bool {
	if !c.machine.In(StateRacing) {
		return false
	}
	m.Trigger()
	return true
}

// OnObstacleCollision ends the run regardless of active modifiers
func (c *Controller) OnObstacleCollision() {
	c.fallOver(FallCollision, eventObstacleHit)
	c.updatePose()
}

// CollectCoins credits picked up coins while racing
func (c *Controller) CollectCoins(n int) {
	if n <= 0 || !c.machine.In(StateRacing) {
		return
	}
	c.coins += n
	c.score.AddCoins(n)
	c.emit(Event{Kind: EventCoinsCollected, Value: n})
}

// --- Pose ---

func (c *Controller) updatePose() {
	body := c.follower.Resolve(c.state.Distance, c.state.Lateral)
	if c.lift != 0 {
		body.Position = body.Position.Add(vmath.WorldUp.Mul(c.lift))
	}

	pivot := Pivot{Pitch: c.wheelie.Angle, Roll: c.tilt.Angle}
	if c.machine.In(StateFallenOver) {
		pivot = Pivot{Pitch: c.fallPitch, Roll: c.tilt.Angle, Yaw: c.fallYaw}
	}
	c.pose = PlayerPose{Body: body, Lift: c.lift, Pivot: pivot}
}

func (c *Controller) emit(e Event) {
	e.Distance = c.state.Distance
	e.Lane = c.lane
	c.events.OnMotionEvent(e)
}

// --- Accessors ---

// Pose returns the pose computed by the last step
func (c *Controller) Pose() PlayerPose { return c.pose }

func (c *Controller) Config() Config         { return c.cfg }
func (c *Controller) Distance() float64      { return c.state.Distance }
func (c *Controller) Lateral() float64       { return c.state.Lateral }
func (c *Controller) State() rider.State     { return c.state }
func (c *Controller) Lane() int              { return c.lane }
func (c *Controller) Speed() float64         { return c.speed }
func (c *Controller) Lift() float64          { return c.lift }
func (c *Controller) Odometer() float64      { return c.odometer }
func (c *Controller) RunTime() float64       { return c.runTime }
func (c *Controller) Points() int            { return c.points }
func (c *Controller) Coins() int             { return c.coins }
func (c *Controller) WheelieAngle() float64  { return c.wheelie.Angle }
func (c *Controller) TiltAngle() float64     { return c.tilt.Angle }
func (c *Controller) ChangingLane() bool     { return c.laneChange.Active() }
func (c *Controller) FallReason() FallReason { return c.reason }

// Racing reports whether input is still being processed
func (c *Controller) Racing() bool { return c.machine.In(StateRacing) }

// FallenOver reports whether the run has failed
func (c *Controller) FallenOver() bool { return c.machine.In(StateFallenOver) }

// RunEnded reports whether the fall animation finished and run-end was signalled
func (c *Controller) RunEnded() bool { return c.runEnded }

// StateName returns the active state's name
func (c *Controller) StateName() string { return c.machine.StateName() }

// SpeedUp, SlowDown and Rocket return copies of the modifiers
func (c *Controller) SpeedUp() Modifier  { return c.speedUp }
func (c *Controller) SlowDown() Modifier { return c.slowDown }
func (c *Controller) Rocket() Modifier   { return c.rocket }
