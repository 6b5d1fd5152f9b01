package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder implements every sink
type recorder struct {
	points int
	coins  int
	ended  []int
	events []Event
}

func (r *recorder) AddPoints(n int)       { r.points += n }
func (r *recorder) AddCoins(n int)        { r.coins += n }
func (r *recorder) OnRunEnded(score int)  { r.ended = append(r.ended, score) }
func (r *recorder) OnMotionEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type zeroPath struct{}

func (zeroPath) Length() float64 { return 0 }
func (zeroPath) Evaluate(float64) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	return mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}
}
func (zeroPath) LocalToWorld() mgl64.Mat4 { return mgl64.Ident4() }
func (zeroPath) Closed() bool             { return true }

func testPath(t *testing.T) *spline.Line {
	t.Helper()
	l, err := spline.NewLine(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 100}, true)
	require.NoError(t, err)
	return l
}

// testConfig is a free-wheelie setup with constant speed 10
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Lanes = rider.Lanes{Count: 3, Width: 2}
	cfg.LaneChangeDuration = 1
	cfg.LaneChangeCooldown = 0
	cfg.WheelieMandatory = false
	cfg.BaseSpeed = 10
	cfg.MaxSpeed = 10
	return cfg
}

func newController(t *testing.T, cfg Config) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := New(cfg, Deps{Path: testPath(t), Score: rec, RunEnd: rec, Events: rec})
	require.NoError(t, err)
	return c, rec
}

// --- Envelope ---

func TestEnvelopeShape(t *testing.T) {
	m := NewModifier(Envelope{RampUp: 1, Hold: 2, RampDown: 1, Peak: 2})
	m.Trigger()

	prev := m.Factor()
	for i := 0; i <= 45; i++ {
		elapsed := float64(i) / 10
		m.SetElapsed(elapsed)
		f := m.Factor()
		switch {
		case elapsed <= 1:
			assert.GreaterOrEqual(t, f, prev, "ramp up at %v", elapsed)
			assert.True(t, m.Active())
		case elapsed <= 3:
			assert.InDelta(t, 2.0, f, 1e-12, "hold at %v", elapsed)
			assert.True(t, m.Active())
		case elapsed < 4:
			assert.LessOrEqual(t, f, prev, "ramp down at %v", elapsed)
			assert.True(t, m.Active())
		default:
			assert.False(t, m.Active(), "inactive at %v", elapsed)
			assert.Equal(t, 1.0, f)
		}
		prev = f
	}
}

func TestSpeedUpHalfwayPoints(t *testing.T) {
	m := NewModifier(Envelope{RampUp: 1, Hold: 5, RampDown: 1, Peak: 2})
	m.Trigger()

	m.Advance(0.5)
	assert.InDelta(t, 1.5, m.Factor(), 1e-12)
	m.Advance(2.5)
	assert.InDelta(t, 2.0, m.Factor(), 1e-12)
	m.Advance(3.5)
	assert.InDelta(t, 1.5, m.Factor(), 1e-12)
	m.Advance(0.6)
	assert.False(t, m.Active())
	assert.Equal(t, 1.0, m.Factor())
	assert.Equal(t, 0.0, m.Value())
}

func TestControllerModifierSnapshots(t *testing.T) {
	cfg := testConfig()
	cfg.SpeedUp = Envelope{RampUp: 1, Hold: 1, RampDown: 1, Peak: 2}
	c, _ := newController(t, cfg)

	assert.False(t, c.SpeedUp().Active())
	assert.Equal(t, 1.0, c.SlowDown().Factor())
	assert.Equal(t, 0.0, c.Rocket().Value())

	c.ApplySpeedUp()
	c.Step(0.5, nil)
	assert.True(t, c.SpeedUp().Active())
	assert.InDelta(t, 0.5, c.SpeedUp().Elapsed(), 1e-12)
	assert.InDelta(t, 1.5, c.SpeedUp().Factor(), 1e-12)

	snap := c.SpeedUp()
	snap.Advance(10)
	assert.False(t, snap.Active())
	assert.True(t, c.SpeedUp().Active(), "a copy never drives the controller")
}

func TestModifierRetriggerRestarts(t *testing.T) {
	m := NewModifier(Envelope{RampUp: 1, Hold: 1, RampDown: 1, Peak: 3})
	m.Trigger()
	m.Advance(2.5)
	m.Trigger()
	assert.True(t, m.Active())
	assert.Equal(t, 0.0, m.Elapsed())
	assert.InDelta(t, 1.0, m.Factor(), 1e-12)
}

func TestEnvelopeValidate(t *testing.T) {
	assert.NoError(t, Envelope{RampUp: 0, Hold: 1, RampDown: 0, Peak: 2}.Validate())
	assert.ErrorIs(t, Envelope{}.Validate(), ErrConfiguration)
	assert.ErrorIs(t, Envelope{RampUp: -1, Hold: 2}.Validate(), ErrConfiguration)
	assert.ErrorIs(t, Envelope{Hold: 1, Peak: math.Inf(1)}.Validate(), ErrConfiguration)
}

func TestEnvelopeOffset(t *testing.T) {
	e := Envelope{RampUp: 2, Hold: 1, RampDown: 2, Peak: 6}
	assert.InDelta(t, 3.0, e.Offset(1), 1e-12)
	assert.InDelta(t, 6.0, e.Offset(2.5), 1e-12)
	assert.InDelta(t, 3.0, e.Offset(4), 1e-12)
	assert.Equal(t, 0.0, e.Offset(5))
	assert.Equal(t, 0.0, e.Offset(-1))
}

// --- Config ---

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Lanes.Count = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, rider.ErrLanes)

	cfg = DefaultConfig()
	cfg.Rocket = Envelope{Peak: 6}
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)

	cfg = DefaultConfig()
	cfg.MaxSpeed = cfg.BaseSpeed - 1
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)

	cfg = DefaultConfig()
	cfg.WheelieMandatory = true
	cfg.WheelieErrorTolerance = cfg.MaxWheelieAngle / 2
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)

	cfg = DefaultConfig()
	cfg.StartLane = cfg.Lanes.Count
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
}

func TestNewRejectsBadInputs(t *testing.T) {
	_, err := New(DefaultConfig(), Deps{})
	assert.ErrorIs(t, err, spline.ErrInvalidPath)

	_, err = New(DefaultConfig(), Deps{Path: zeroPath{}})
	assert.ErrorIs(t, err, spline.ErrInvalidPath)

	cfg := DefaultConfig()
	cfg.LaneChangeDuration = 0
	_, err = New(cfg, Deps{Path: testPath(t)})
	assert.ErrorIs(t, err, ErrConfiguration)
}

// --- Lane change ---

func TestLaneChangeHalfway(t *testing.T) {
	c, rec := newController(t, testConfig())
	require.Equal(t, 1, c.Lane())
	require.Equal(t, 0.0, c.Lateral())

	c.Step(0.5, Input{Left: true})
	assert.Equal(t, 0, c.Lane())
	assert.InDelta(t, -1.0, c.Lateral(), 1e-12)
	assert.True(t, c.ChangingLane())
	assert.Equal(t, 1, rec.count(EventLaneChangeStarted))
}

func TestLaneChangeCompletesExactlyOnce(t *testing.T) {
	c, rec := newController(t, testConfig())

	c.Step(0.25, Input{Left: true})
	for i := 0; i < 3; i++ {
		require.True(t, c.ChangingLane(), "step %d", i)
		require.NotEqual(t, -2.0, c.Lateral())
		c.Step(0.25, nil)
	}
	assert.Equal(t, -2.0, c.Lateral())
	assert.False(t, c.ChangingLane())
	assert.Equal(t, 1, rec.count(EventLaneChangeDone))

	for i := 0; i < 10; i++ {
		c.Step(0.25, nil)
		assert.False(t, c.ChangingLane())
		assert.Equal(t, -2.0, c.Lateral())
	}
	assert.Equal(t, 1, rec.count(EventLaneChangeDone))
}

func TestLaneChangeSingleStepOfDuration(t *testing.T) {
	c, _ := newController(t, testConfig())
	c.Step(1, Input{Right: true})
	assert.Equal(t, 2.0, c.Lateral())
	assert.False(t, c.ChangingLane())
}

func TestLaneChangeEdgeLaneIgnored(t *testing.T) {
	cfg := testConfig()
	cfg.StartLane = 0
	c, rec := newController(t, cfg)

	c.Step(0.1, Input{Left: true})
	assert.Equal(t, 0, c.Lane())
	assert.Equal(t, -2.0, c.Lateral())
	assert.False(t, c.ChangingLane())
	assert.Zero(t, rec.count(EventLaneChangeStarted))
}

func TestLaneChangeBothPressedCancels(t *testing.T) {
	c, _ := newController(t, testConfig())
	c.Step(0.1, Input{Left: true, Right: true})
	assert.False(t, c.ChangingLane())
	assert.Equal(t, 1, c.Lane())
}

func TestLaneInputBufferedDuringChange(t *testing.T) {
	cfg := testConfig()
	cfg.Lanes = rider.Lanes{Count: 5, Width: 2}
	cfg.LaneChangeDuration = 0.25
	cfg.LaneChangeCooldown = 0.1
	cfg.LaneInputBuffer = 0.5
	c, _ := newController(t, cfg)
	require.Equal(t, 2, c.Lane())

	c.Step(0.1, Input{Right: true})
	assert.Equal(t, 3, c.Lane())
	c.Step(0.1, Input{Right: true}) // buffered, change still active
	assert.Equal(t, 3, c.Lane())
	c.Step(0.1, nil) // completes, arms cooldown
	assert.False(t, c.ChangingLane())
	c.Step(0.1, nil) // cooldown expires, buffered press fires
	assert.Equal(t, 4, c.Lane())
	assert.True(t, c.ChangingLane())
}

func TestLaneInputBufferExpires(t *testing.T) {
	cfg := testConfig()
	cfg.Lanes = rider.Lanes{Count: 5, Width: 2}
	cfg.LaneChangeDuration = 0.25
	cfg.LaneChangeCooldown = 1
	cfg.LaneInputBuffer = 0.2
	c, _ := newController(t, cfg)

	c.Step(0.3, Input{Right: true})
	require.Equal(t, 3, c.Lane())
	c.Step(0.1, Input{Right: true})
	for i := 0; i < 20; i++ {
		c.Step(0.1, nil)
	}
	assert.Equal(t, 3, c.Lane())
}

func TestTiltFollowsLaneChange(t *testing.T) {
	cfg := testConfig()
	cfg.LaneChangeDuration = 2
	c, _ := newController(t, cfg)

	for i := 0; i < 30; i++ {
		c.Step(0.05, Input{Right: i == 0})
		assert.LessOrEqual(t, math.Abs(c.TiltAngle()), cfg.MaxTiltAngle)
	}
	assert.Greater(t, c.TiltAngle(), 0.0)

	for i := 0; i < 200; i++ {
		c.Step(0.05, nil)
	}
	assert.False(t, c.ChangingLane())
	assert.InDelta(t, 0.0, c.TiltAngle(), 1e-3)
}

// --- Wheelie ---

func TestWheelieClampMandatory(t *testing.T) {
	rng := vmath.NewFastRand(7)
	w := Wheelie{Min: 0, Max: 40, SmoothTime: 0.2}
	for i := 0; i < 5000; i++ {
		dt := 0.001 + rng.Float64()*0.1
		w.Update(rng.Intn(2) == 0, rng.Intn(2) == 0, dt)
		require.GreaterOrEqual(t, w.Angle, 0.0)
		require.LessOrEqual(t, w.Angle, 40.0)
	}
}

func TestWheelieClampFree(t *testing.T) {
	cfg := testConfig()
	cfg.AllowNegativeWheelie = true
	require.Equal(t, -cfg.MaxWheelieAngle, cfg.wheelieMin())

	cfg.WheelieMandatory = true
	assert.Equal(t, 0.0, cfg.wheelieMin(), "mandatory mode never leans forward")

	w := Wheelie{Min: -40, Max: 40, SmoothTime: 0.1}
	for i := 0; i < 100; i++ {
		w.Update(false, true, 0.05)
	}
	assert.InDelta(t, -40.0, w.Angle, 0.5)
	assert.GreaterOrEqual(t, w.Angle, -40.0)
	assert.Equal(t, 0.0, w.Factor())
}

func TestWheelieClampThroughController(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WheelieGracePeriod = 1e9
	c, _ := newController(t, cfg)

	rng := vmath.NewFastRand(3)
	for i := 0; i < 2000; i++ {
		c.Step(1.0/60, Input{Accelerate: rng.Intn(3) > 0, Decelerate: rng.Intn(2) == 0})
		require.GreaterOrEqual(t, c.WheelieAngle(), 0.0)
		require.LessOrEqual(t, c.WheelieAngle(), cfg.MaxWheelieAngle)
	}
	assert.True(t, c.Racing())
}

func TestWheelieFailureAfterGrace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WheelieGracePeriod = 0.5
	c, rec := newController(t, cfg)

	c.Step(0.25, nil)
	c.Step(0.25, nil)
	assert.True(t, c.Racing(), "grace period still covers the level start")

	c.Step(0.1, nil)
	assert.True(t, c.FallenOver())
	assert.Equal(t, FallWheelie, c.FallReason())
	require.Equal(t, 1, rec.count(EventFellOver))
}

func TestWheelieFailureHeldTooHigh(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WheelieGracePeriod = 0.5
	c, rec := newController(t, cfg)

	for i := 0; i < 60*10 && c.Racing(); i++ {
		c.Step(1.0/60, Input{Accelerate: true})
	}
	require.True(t, c.FallenOver(), "holding accelerate tips the vehicle over")
	assert.Equal(t, FallWheelie, c.FallReason())
	assert.Greater(t, c.WheelieAngle(), cfg.MaxWheelieAngle-cfg.WheelieErrorTolerance)
	assert.Greater(t, c.RunTime(), cfg.WheelieGracePeriod)
	assert.Equal(t, 1, rec.count(EventFellOver))
}

func TestWheelieBandEdges(t *testing.T) {
	const tol = 2.0
	tests := []struct {
		angle   float64
		outside bool
	}{
		{0, true},
		{tol, true},
		{tol + 1e-9, false},
		{20, false},
		{40 - tol, false},
		{40 - tol + 1e-9, true},
		{40, true},
	}
	for _, tt := range tests {
		w := Wheelie{Max: 40, Angle: tt.angle}
		assert.Equal(t, tt.outside, w.OutsideBand(tol), "angle %v", tt.angle)
	}
}

func TestWheelieHeldInBandSurvives(t *testing.T) {
	cfg := DefaultConfig()
	c, _ := newController(t, cfg)

	mid := cfg.MaxWheelieAngle / 2
	for i := 0; i < 60*20; i++ {
		c.Step(1.0/60, Input{Accelerate: c.WheelieAngle() < mid})
	}
	assert.True(t, c.Racing(), "angle %v", c.WheelieAngle())
	assert.Greater(t, c.Speed(), cfg.BaseSpeed)
}

func TestSpeedFollowsWheelie(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSpeed = 20
	cfg.Acceleration = 1e6
	c, _ := newController(t, cfg)

	for i := 0; i < 300; i++ {
		c.Step(1.0/60, Input{Accelerate: true})
	}
	assert.InDelta(t, cfg.MaxWheelieAngle, c.WheelieAngle(), 1e-3)
	assert.InDelta(t, 20.0, c.Speed(), 1e-3)

	for i := 0; i < 600; i++ {
		c.Step(1.0/60, nil)
	}
	assert.InDelta(t, 10.0, c.Speed(), 1e-3)
}

func TestSpeedApproachIsBounded(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSpeed = 20
	cfg.Acceleration = 2
	cfg.WheelieSmoothTime = 0
	c, _ := newController(t, cfg)

	c.Step(0.5, Input{Accelerate: true})
	assert.InDelta(t, 11.0, c.Speed(), 1e-9)
}

// --- Distance and pose ---

func TestDistanceWrapsAcrossLoop(t *testing.T) {
	c, _ := newController(t, testConfig())
	c.state.Distance = 95

	pose := c.Step(1.0, nil)
	assert.InDelta(t, 5.0, c.Distance(), 1e-9)

	want, err := spline.Resolve(testPath(t), 5.0, c.Lateral())
	require.NoError(t, err)
	assert.Equal(t, want.Position, pose.Body.Position)
	assert.Equal(t, want.Forward, pose.Body.Forward)
}

func TestStepOrderSpeedBeforeDistanceBeforePose(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSpeed = 20
	cfg.Acceleration = 1e6
	cfg.SpeedUp = Envelope{RampUp: 0, Hold: 1, RampDown: 1, Peak: 2}
	c, _ := newController(t, cfg)

	c.ApplySpeedUp()
	pose := c.Step(0.5, nil)

	// Boosted speed of this step is used for this step's advance
	assert.InDelta(t, 20.0, c.Speed(), 1e-9)
	assert.InDelta(t, 10.0, c.Distance(), 1e-9)
	assert.InDelta(t, 10.0, pose.Body.Position.Z(), 1e-9)
}

func TestSlowDownScalesSpeedRange(t *testing.T) {
	cfg := testConfig()
	cfg.Acceleration = 1e6
	cfg.SlowDown = Envelope{RampUp: 0, Hold: 2, RampDown: 1, Peak: 0.5}
	c, _ := newController(t, cfg)

	c.ApplySlowDown()
	c.Step(0.5, nil)
	assert.InDelta(t, 5.0, c.Speed(), 1e-9)

	for i := 0; i < 40; i++ {
		c.Step(0.1, nil)
	}
	assert.False(t, c.SlowDown().Active())
	assert.InDelta(t, 10.0, c.Speed(), 1e-9)
}

func TestRocketLiftsAndScalesDistance(t *testing.T) {
	cfg := testConfig()
	cfg.Rocket = Envelope{RampUp: 0, Hold: 2, RampDown: 0.5, Peak: 6}
	cfg.RocketBobAmplitude = 0
	cfg.RocketDistanceScale = 1.5
	c, rec := newController(t, cfg)

	c.ApplyRocket()
	pose := c.Step(0.5, nil)
	assert.InDelta(t, 6.0, c.Lift(), 1e-12)
	assert.InDelta(t, 6.0, pose.Body.Position.Y(), 1e-12)
	assert.InDelta(t, 7.5, c.Distance(), 1e-9)
	assert.Equal(t, 1, rec.count(EventRocketStarted))

	for i := 0; i < 30; i++ {
		c.Step(0.1, nil)
	}
	assert.False(t, c.Rocket().Active())
	assert.Equal(t, 0.0, c.Lift())
	assert.Equal(t, 0.0, c.Pose().Body.Position.Y())
}

func TestRocketBobNeverNegative(t *testing.T) {
	cfg := testConfig()
	cfg.Rocket = Envelope{RampUp: 1, Hold: 1, RampDown: 1, Peak: 0.2}
	cfg.RocketBobAmplitude = 1
	cfg.RocketBobFrequency = 3
	c, _ := newController(t, cfg)

	c.ApplyRocket()
	for i := 0; i < 200; i++ {
		c.Step(1.0/60, nil)
		assert.GreaterOrEqual(t, c.Lift(), 0.0)
	}
}

func TestPointsAccumulateWithDistance(t *testing.T) {
	c, rec := newController(t, testConfig())
	for i := 0; i < 4; i++ {
		c.Step(0.25, nil)
	}
	assert.Equal(t, 10, c.Points())
	assert.Equal(t, 10, rec.points)
	assert.InDelta(t, 10.0, c.Odometer(), 1e-9)

	c.CollectCoins(3)
	c.CollectCoins(0)
	assert.Equal(t, 3, c.Coins())
	assert.Equal(t, 3, rec.coins)
}

func TestInvalidStepIsNoop(t *testing.T) {
	c, _ := newController(t, testConfig())
	before := c.Pose()
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c.Step(dt, Input{Left: true, Accelerate: true})
	}
	assert.Equal(t, before, c.Pose())
	assert.Equal(t, 0.0, c.Distance())
	assert.Equal(t, 0.0, c.RunTime())
}

// --- FallenOver ---

func TestFallenOverFreezesRiderState(t *testing.T) {
	c, rec := newController(t, testConfig())
	c.Step(0.5, Input{Right: true})
	c.OnObstacleCollision()
	require.True(t, c.FallenOver())
	assert.Equal(t, FallCollision, c.FallReason())

	dist, lat := c.Distance(), c.Lateral()
	for i := 0; i < 50; i++ {
		c.ApplySpeedUp()
		c.ApplySlowDown()
		c.ApplyRocket()
		c.CollectCoins(1)
		c.Step(0.1, Input{Left: i%2 == 0, Right: i%2 == 1, Accelerate: true})
		require.Equal(t, dist, c.Distance())
		require.Equal(t, lat, c.Lateral())
	}
	assert.False(t, c.SpeedUp().Active())
	assert.False(t, c.Rocket().Active())
	assert.Zero(t, c.Coins())
	assert.Zero(t, rec.count(EventSpeedUpStarted))
	assert.Equal(t, 0.0, c.Speed())
}

func TestRunEndSignalledOnce(t *testing.T) {
	cfg := testConfig()
	cfg.FallDuration = 1
	c, rec := newController(t, cfg)

	c.Step(1, nil)
	c.OnObstacleCollision()
	c.OnObstacleCollision()
	assert.Equal(t, "Falling", c.StateName())

	c.Step(0.5, nil)
	assert.False(t, c.RunEnded())
	assert.Empty(t, rec.ended)

	for i := 0; i < 20; i++ {
		c.Step(0.1, nil)
	}
	assert.True(t, c.RunEnded())
	assert.Equal(t, "Ended", c.StateName())
	assert.Equal(t, []int{10}, rec.ended)
	assert.Equal(t, 1, rec.count(EventFellOver))
	assert.Equal(t, 1, rec.count(EventRunEnded))
	assert.InDelta(t, cfg.FallPitch, c.Pose().Pivot.Pitch, 1e-9)
}

func TestFallAnimationSpins(t *testing.T) {
	cfg := testConfig()
	cfg.FallDuration = 2
	cfg.FallSpinRate = 90
	c, _ := newController(t, cfg)

	c.OnObstacleCollision()
	c.Step(1, nil)
	p := c.Pose().Pivot
	assert.InDelta(t, cfg.FallPitch/2, p.Pitch, 1e-9)
	assert.InDelta(t, 90.0, p.Yaw, 1e-9)
}

func TestResetStartsNewRun(t *testing.T) {
	c, rec := newController(t, testConfig())
	c.Step(1, Input{Left: true})
	c.OnObstacleCollision()
	for i := 0; i < 30; i++ {
		c.Step(0.1, nil)
	}
	require.True(t, c.RunEnded())

	c.Reset()
	assert.True(t, c.Racing())
	assert.False(t, c.RunEnded())
	assert.Equal(t, 0.0, c.Distance())
	assert.Equal(t, 1, c.Lane())
	assert.Equal(t, 0, c.Points())

	c.OnObstacleCollision()
	for i := 0; i < 30; i++ {
		c.Step(0.1, nil)
	}
	assert.Len(t, rec.ended, 2)
}

// --- Pose ---

func TestPivotNoseUp(t *testing.T) {
	q := Pivot{Pitch: 90}.Rotation()
	got := q.Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 0.0, got.Z(), 1e-9)
	assert.InDelta(t, 1.0, got.Y(), 1e-9)

	yaw := Pivot{Yaw: 90}.Rotation().Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 1.0, yaw.X(), 1e-9)
}

func TestPlayerPoseRotationOnSidewaysPath(t *testing.T) {
	body := spline.Pose{Forward: mgl64.Vec3{1, 0, 0}, Up: mgl64.Vec3{0, 1, 0}}

	level := PlayerPose{Body: body}.Rotation().Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 1.0, level.X(), 1e-9)

	nose := PlayerPose{Body: body, Pivot: Pivot{Pitch: 30}}.Rotation().Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, math.Cos(vmath.Radians(30)), nose.X(), 1e-9)
	assert.InDelta(t, 0.5, nose.Y(), 1e-9)
	assert.InDelta(t, 0.0, nose.Z(), 1e-9)
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "rocket_started", EventRocketStarted.String())
	assert.Equal(t, "unknown", EventKind(200).String())
	assert.Equal(t, "wheelie", FallWheelie.String())
}
