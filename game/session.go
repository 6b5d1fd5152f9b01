// Package game owns one playthrough: the player controller, the props around
// it, collisions, scoring and the telemetry the HUD reads
package game

import (
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wheelie/collide"
	"github.com/lixenwraith/wheelie/config"
	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/score"
	"github.com/lixenwraith/wheelie/spawn"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/status"
)

// Driver produces the player input for one step
// Called with the session lock held; it may read the session but not step it
type Driver interface {
	Next(s *Session, dt float64) motion.InputSource
}

// DriverFunc adapts a function to Driver
type DriverFunc func(s *Session, dt float64) motion.InputSource

func (f DriverFunc) Next(s *Session, dt float64) motion.InputSource { return f(s, dt) }

// Options are the optional collaborators of a session
type Options struct {
	// Driver defaults to no input
	Driver Driver
	// Events receive every controller event after the session's own handling
	Events []motion.EventSink
	// Registry defaults to a private one
	Registry *status.Registry
}

// Session is safe for concurrent use; Step and Restart serialize on one lock
type Session struct {
	mu sync.Mutex

	cfg    config.File
	path   spline.Path
	lanes  rider.Lanes
	length float64
	closed bool

	ctrl     *motion.Controller
	spawner  *spawn.Weighted
	detector collide.Detector
	keeper   *score.Keeper
	driver   Driver

	props []*rider.Rider
	run   int
	steps uint64

	// Cached metric pointers
	reg         *status.Registry
	statState   *status.AtomicString
	statFall    *status.AtomicString
	statRunTime *status.AtomicFloat
	statRuns    *atomic.Int64
	statDist    *status.AtomicFloat
	statOdo     *status.AtomicFloat
	statLane    *atomic.Int64
	statLateral *status.AtomicFloat
	statSpeed   *status.AtomicFloat
	statTop     *status.AtomicFloat
	statLift    *status.AtomicFloat
	statWheelie *status.AtomicFloat
	statTilt    *status.AtomicFloat
	statSpeedUp *status.AtomicFloat
	statSlow    *status.AtomicFloat
	statRocket  *status.AtomicFloat
	statPoints  *atomic.Int64
	statCoins   *atomic.Int64
	statBest    *atomic.Int64
	statProps   *atomic.Int64
	statSpawned *atomic.Int64
}

// NewSession builds every collaborator from a validated configuration and starts the first run
func NewSession(cfg config.File, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path, err := BuildTrack(cfg.Track)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(path, cfg.Spawn.Ahead, cfg.Spawn.Behind); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		path:   path,
		lanes:  cfg.LaneGeometry(),
		length: path.Length(),
		closed: path.Closed(),
		detector: collide.Detector{
			HitLength: cfg.Collision.HitLength,
			HitWidth:  cfg.Collision.HitWidth,
			Clearance: cfg.Collision.RocketClearance,
		},
		keeper: score.NewKeeper(cfg.Score.CoinValue),
		driver: opts.Driver,
		reg:    opts.Registry,
	}
	if s.driver == nil {
		s.driver = DriverFunc(func(*Session, float64) motion.InputSource { return motion.Input{} })
	}
	if s.reg == nil {
		s.reg = status.NewRegistry()
	}
	s.cacheMetrics()

	sinks := append(Fanout{logSink{run: &s.run}}, opts.Events...)
	s.ctrl, err = motion.New(cfg.Motion(), motion.Deps{
		Path:   path,
		Score:  s.keeper,
		RunEnd: s.keeper,
		Events: sinks,
	})
	if err != nil {
		return nil, err
	}

	s.spawner, err = spawn.NewWeighted(spawn.Config{
		Lanes:              s.lanes,
		RowSpacing:         cfg.Spawn.RowSpacing,
		SafeStart:          cfg.Spawn.SafeStart,
		TruckSpeed:         cfg.Spawn.TruckSpeed,
		OncomingTruckSpeed: cfg.Spawn.OncomingTruckSpeed,
		Weights:            spawn.Weights(cfg.Spawn.Weights),
		Seed:               cfg.Spawn.Seed,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", motion.ErrConfiguration, err)
	}

	s.keeper.OnEnd(func(sum score.Summary) {
		log.Printf("run %d: score %d (points %d, coins %d), best %d", sum.Runs, sum.Score, sum.Points, sum.Coins, sum.Best)
	})

	s.mu.Lock()
	s.restartLocked()
	s.mu.Unlock()
	return s, nil
}

func (s *Session) cacheMetrics() {
	s.statState = s.reg.Strings.Get(status.KeyState)
	s.statFall = s.reg.Strings.Get(status.KeyFall)
	s.statRunTime = s.reg.Floats.Get(status.KeyRunTime)
	s.statRuns = s.reg.Ints.Get(status.KeyRuns)
	s.statDist = s.reg.Floats.Get(status.KeyDistance)
	s.statOdo = s.reg.Floats.Get(status.KeyOdometer)
	s.statLane = s.reg.Ints.Get(status.KeyLane)
	s.statLateral = s.reg.Floats.Get(status.KeyLateral)
	s.statSpeed = s.reg.Floats.Get(status.KeySpeed)
	s.statTop = s.reg.Floats.Get(status.KeyTopSpeed)
	s.statLift = s.reg.Floats.Get(status.KeyLift)
	s.statWheelie = s.reg.Floats.Get(status.KeyWheelie)
	s.statTilt = s.reg.Floats.Get(status.KeyTilt)
	s.statSpeedUp = s.reg.Floats.Get(status.KeySpeedUp)
	s.statSlow = s.reg.Floats.Get(status.KeySlowDown)
	s.statRocket = s.reg.Floats.Get(status.KeyRocket)
	s.statPoints = s.reg.Ints.Get(status.KeyPoints)
	s.statCoins = s.reg.Ints.Get(status.KeyCoins)
	s.statBest = s.reg.Ints.Get(status.KeyBest)
	s.statProps = s.reg.Ints.Get(status.KeyProps)
	s.statSpawned = s.reg.Ints.Get(status.KeySpawned)
}

// Restart begins a new run; best score and run count carry over
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartLocked()
}

func (s *Session) restartLocked() {
	s.run++
	s.ctrl.Reset()
	s.spawner.Reset()
	s.keeper.Begin()
	s.props = s.props[:0]
	s.steps = 0
	s.statTop.Set(0)
	s.fill()
	s.publish()
	log.Printf("run %d: started on %.1f unit %s track, %d lanes", s.run, s.length, s.cfg.Track.Kind, s.lanes.Count)
}

// Tick steps by a scheduler interval
func (s *Session) Tick(dt time.Duration) {
	s.Step(dt.Seconds())
}

// Step advances one fixed step: player, props, collisions, telemetry
// Non-positive or non-finite dt is ignored
func (s *Session) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.driver.Next(s, dt)
	s.ctrl.Step(dt, in)
	s.steps++

	for _, p := range s.props {
		p.Step(dt)
	}
	if s.ctrl.Racing() {
		s.fill()
		hits := s.detector.Check(s.ctrl.State(), s.ctrl.Lift(), s.length, s.closed, s.props)
		collide.Dispatch(hits, s)
	}
	s.cull()
	s.publish()
}

// fill spawns rows up to the look-ahead window in odometer space
func (s *Session) fill() {
	odo := s.ctrl.Odometer()
	before := len(s.props)
	s.props = append(s.props, s.spawner.Fill(odo, odo+s.cfg.Spawn.Ahead)...)
	if n := len(s.props) - before; n > 0 {
		log.Printf("run %d: spawned %d props, %d live", s.run, n, len(s.props))
	}
}

// cull drops finished props and those left behind
func (s *Session) cull() {
	player := s.ctrl.Distance()
	keep := s.props[:0]
	for _, p := range s.props {
		if p.Finished {
			continue
		}
		if collide.Delta(player, p.State.Distance, s.length, s.closed) < -s.cfg.Spawn.Behind {
			continue
		}
		keep = append(keep, p)
	}
	clear(s.props[len(keep):])
	s.props = keep
}

// ObstacleHit ends the run
func (s *Session) ObstacleHit(r *rider.Rider) {
	log.Printf("run %d: hit %s in lane %d", s.run, r.Kind, r.Lane)
	s.ctrl.OnObstacleCollision()
}

// PickupHit consumes the prop and applies its effect
func (s *Session) PickupHit(r *rider.Rider) {
	if !s.ctrl.Racing() {
		return
	}
	switch r.Kind {
	case rider.KindCoin:
		s.ctrl.CollectCoins(1)
	case rider.KindSpeedUp:
		s.ctrl.ApplySpeedUp()
	case rider.KindSlowDown:
		s.ctrl.ApplySlowDown()
	case rider.KindRocket:
		s.ctrl.ApplyRocket()
	}
	r.Finished = true
}

func (s *Session) publish() {
	c := s.ctrl
	s.statState.Store(c.StateName())
	s.statFall.Store(c.FallReason().String())
	s.statRunTime.Set(c.RunTime())
	s.statDist.Set(c.Distance())
	s.statOdo.Set(c.Odometer())
	s.statLane.Store(int64(c.Lane()))
	s.statLateral.Set(c.Lateral())
	s.statSpeed.Set(c.Speed())
	s.statTop.Max(c.Speed())
	s.statLift.Set(c.Lift())
	s.statWheelie.Set(c.WheelieAngle())
	s.statTilt.Set(c.TiltAngle())

	su, sd, rk := c.SpeedUp(), c.SlowDown(), c.Rocket()
	s.statSpeedUp.Set(su.Factor())
	s.statSlow.Set(sd.Factor())
	s.statRocket.Set(rk.Value())

	sum := s.keeper.Summary()
	s.statPoints.Store(int64(sum.Points))
	s.statCoins.Store(int64(sum.Coins))
	s.statBest.Store(int64(sum.Best))
	s.statRuns.Store(int64(sum.Runs))
	s.statProps.Store(int64(len(s.props)))
	s.statSpawned.Store(int64(s.spawner.Spawned()))
}

// --- Read access ---

// Controller is the player; callers outside a Driver must not step it
func (s *Session) Controller() *motion.Controller { return s.ctrl }

func (s *Session) Config() config.File        { return s.cfg }
func (s *Session) Path() spline.Path          { return s.path }
func (s *Session) Lanes() rider.Lanes         { return s.lanes }
func (s *Session) Keeper() *score.Keeper      { return s.keeper }
func (s *Session) Registry() *status.Registry { return s.reg }
func (s *Session) Detector() collide.Detector { return s.detector }
func (s *Session) Summary() score.Summary     { return s.keeper.Summary() }

// Props returns the live props; valid only inside a Driver call
func (s *Session) Props() []*rider.Rider { return s.props }

// RunEnded reports whether the current run has finished its fall
func (s *Session) RunEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.RunEnded()
}
