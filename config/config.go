// Package config loads the game's TOML configuration
//
// Values start from the parameter defaults, are overlaid by the optional
// config file, then by WHEELIE_* environment variables, and are validated
// as a whole before a run may start.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/parameter"
	"github.com/lixenwraith/wheelie/rider"
)

// File mirrors the TOML document
type File struct {
	Lanes     LanesSection     `toml:"lanes"`
	Player    PlayerSection    `toml:"player"`
	Fall      FallSection      `toml:"fall"`
	Track     TrackSection     `toml:"track"`
	Spawn     SpawnSection     `toml:"spawn"`
	Collision CollisionSection `toml:"collision"`
	Score     ScoreSection     `toml:"score"`
	Audio     AudioSection     `toml:"audio"`
	Keys      KeysSection      `toml:"keys"`
}

type LanesSection struct {
	Count int     `toml:"count"`
	Width float64 `toml:"width"`
	// Start lane index; -1 is the center lane
	Start int `toml:"start"`
}

// EnvelopeSection is a timed modifier in seconds
type EnvelopeSection struct {
	RampUp   float64 `toml:"ramp_up"`
	Hold     float64 `toml:"hold"`
	RampDown float64 `toml:"ramp_down"`
	Peak     float64 `toml:"peak"`
}

func (e EnvelopeSection) envelope() motion.Envelope {
	return motion.Envelope{RampUp: e.RampUp, Hold: e.Hold, RampDown: e.RampDown, Peak: e.Peak}
}

type RocketSection struct {
	RampUp        float64 `toml:"ramp_up"`
	Hold          float64 `toml:"hold"`
	RampDown      float64 `toml:"ramp_down"`
	Peak          float64 `toml:"peak"`
	BobAmplitude  float64 `toml:"bob_amplitude"`
	BobFrequency  float64 `toml:"bob_frequency"`
	DistanceScale float64 `toml:"distance_scale"`
}

type PlayerSection struct {
	LaneChangeDuration float64 `toml:"lane_change_duration"`
	LaneChangeCooldown float64 `toml:"lane_change_cooldown"`
	LaneInputBuffer    float64 `toml:"lane_input_buffer"`

	MaxTiltAngle   float64 `toml:"max_tilt_angle"`
	TiltSmoothTime float64 `toml:"tilt_smooth_time"`

	MaxWheelieAngle       float64 `toml:"max_wheelie_angle"`
	WheelieSmoothTime     float64 `toml:"wheelie_smooth_time"`
	WheelieMandatory      bool    `toml:"wheelie_mandatory"`
	AllowNegativeWheelie  bool    `toml:"allow_negative_wheelie"`
	WheelieErrorTolerance float64 `toml:"wheelie_error_tolerance"`
	WheelieGracePeriod    float64 `toml:"wheelie_grace_period"`

	BaseSpeed    float64 `toml:"base_speed"`
	MaxSpeed     float64 `toml:"max_speed"`
	Acceleration float64 `toml:"acceleration"`

	SpeedUp  EnvelopeSection `toml:"speed_up"`
	SlowDown EnvelopeSection `toml:"slow_down"`
	Rocket   RocketSection   `toml:"rocket"`
}

type FallSection struct {
	Duration float64 `toml:"duration"`
	Pitch    float64 `toml:"pitch"`
	SpinRate float64 `toml:"spin_rate"`
}

// Track kinds
const (
	TrackOval = "oval"
	TrackLine = "line"
)

type TrackSection struct {
	Kind    string  `toml:"kind"`
	RadiusX float64 `toml:"radius_x"`
	RadiusZ float64 `toml:"radius_z"`
	Points  int     `toml:"points"`
	// Length of the straight treadmill used by kind "line"
	Length float64 `toml:"length"`
}

type SpawnSection struct {
	RowSpacing         float64            `toml:"row_spacing"`
	Ahead              float64            `toml:"ahead"`
	Behind             float64            `toml:"behind"`
	SafeStart          float64            `toml:"safe_start"`
	TruckSpeed         float64            `toml:"truck_speed"`
	OncomingTruckSpeed float64            `toml:"oncoming_truck_speed"`
	Seed               uint64             `toml:"seed"`
	Weights            map[string]float64 `toml:"weights"`
}

type CollisionSection struct {
	HitLength       float64 `toml:"hit_length"`
	HitWidth        float64 `toml:"hit_width"`
	RocketClearance float64 `toml:"rocket_clearance"`
}

type ScoreSection struct {
	PointsPerUnit float64 `toml:"points_per_unit"`
	CoinValue     int     `toml:"coin_value"`
}

type AudioSection struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
}

// KeysSection binds actions to key names ("a", "Left", "space")
type KeysSection struct {
	Left       []string `toml:"left"`
	Right      []string `toml:"right"`
	Accelerate []string `toml:"accelerate"`
	Decelerate []string `toml:"decelerate"`
	Pause      []string `toml:"pause"`
	Restart    []string `toml:"restart"`
	Quit       []string `toml:"quit"`
}

// Default returns the built-in configuration
func Default() File {
	weights := make(map[string]float64, len(parameter.SpawnWeights))
	for k, v := range parameter.SpawnWeights {
		weights[k] = v
	}

	return File{
		Lanes: LanesSection{
			Count: parameter.LaneCount,
			Width: parameter.LaneWidth,
			Start: -1,
		},
		Player: PlayerSection{
			LaneChangeDuration:    parameter.LaneChangeDuration,
			LaneChangeCooldown:    parameter.LaneChangeCooldown,
			LaneInputBuffer:       parameter.LaneInputBuffer,
			MaxTiltAngle:          parameter.MaxTiltAngle,
			TiltSmoothTime:        parameter.TiltSmoothTime,
			MaxWheelieAngle:       parameter.MaxWheelieAngle,
			WheelieSmoothTime:     parameter.WheelieSmoothTime,
			WheelieMandatory:      parameter.WheelieMandatory,
			AllowNegativeWheelie:  parameter.AllowNegativeWheelie,
			WheelieErrorTolerance: parameter.WheelieErrorTolerance,
			WheelieGracePeriod:    parameter.WheelieGracePeriod,
			BaseSpeed:             parameter.BaseSpeed,
			MaxSpeed:              parameter.MaxSpeed,
			Acceleration:          parameter.Acceleration,
			SpeedUp: EnvelopeSection{
				RampUp:   parameter.SpeedUpRampUp,
				Hold:     parameter.SpeedUpHold,
				RampDown: parameter.SpeedUpRampDown,
				Peak:     parameter.SpeedUpPeak,
			},
			SlowDown: EnvelopeSection{
				RampUp:   parameter.SlowDownRampUp,
				Hold:     parameter.SlowDownHold,
				RampDown: parameter.SlowDownRampDown,
				Peak:     parameter.SlowDownPeak,
			},
			Rocket: RocketSection{
				RampUp:        parameter.RocketRampUp,
				Hold:          parameter.RocketHold,
				RampDown:      parameter.RocketRampDown,
				Peak:          parameter.RocketPeak,
				BobAmplitude:  parameter.RocketBobAmplitude,
				BobFrequency:  parameter.RocketBobFrequency,
				DistanceScale: parameter.RocketDistanceScale,
			},
		},
		Fall: FallSection{
			Duration: parameter.FallDuration,
			Pitch:    parameter.FallPitch,
			SpinRate: parameter.FallSpinRate,
		},
		Track: TrackSection{
			Kind:    TrackOval,
			RadiusX: parameter.TrackRadiusX,
			RadiusZ: parameter.TrackRadiusZ,
			Points:  parameter.TrackPoints,
			Length:  4 * parameter.SpawnAhead,
		},
		Spawn: SpawnSection{
			RowSpacing:         parameter.SpawnRowSpacing,
			Ahead:              parameter.SpawnAhead,
			Behind:             parameter.SpawnBehind,
			SafeStart:          parameter.SpawnSafeStart,
			TruckSpeed:         parameter.TruckSpeed,
			OncomingTruckSpeed: parameter.OncomingTruckSpeed,
			Seed:               parameter.SpawnSeed,
			Weights:            weights,
		},
		Collision: CollisionSection{
			HitLength:       parameter.HitLength,
			HitWidth:        parameter.HitWidth,
			RocketClearance: parameter.RocketClearance,
		},
		Score: ScoreSection{
			PointsPerUnit: parameter.PointsPerUnit,
			CoinValue:     parameter.CoinValue,
		},
		Audio: AudioSection{
			Enabled:      true,
			MasterVolume: parameter.AudioMasterVolume,
		},
		Keys: KeysSection{
			Left:       []string{"a", "Left"},
			Right:      []string{"d", "Right"},
			Accelerate: []string{"w", "Up"},
			Decelerate: []string{"s", "Down"},
			Pause:      []string{"p"},
			Restart:    []string{"r", "Enter"},
			Quit:       []string{"q", "Esc"},
		},
	}
}

// Load reads path over the defaults, applies the environment and validates
// An empty path skips the file
func Load(path string, getenv func(string) string) (File, error) {
	f := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &f)
		if err != nil {
			return File{}, fmt.Errorf("%w: %s: %w", motion.ErrConfiguration, path, err)
		}
		if err := rejectUndecoded(md, path); err != nil {
			return File{}, err
		}
	}

	if getenv != nil {
		if err := f.ApplyEnv(getenv); err != nil {
			return File{}, err
		}
	}

	if err := f.Validate(); err != nil {
		if path != "" {
			return File{}, fmt.Errorf("%s: %w", path, err)
		}
		return File{}, err
	}
	return f, nil
}

// Decode parses a TOML document over the defaults without touching the environment
func Decode(data string) (File, error) {
	f := Default()
	md, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, fmt.Errorf("%w: %w", motion.ErrConfiguration, err)
	}
	if err := rejectUndecoded(md, "document"); err != nil {
		return File{}, err
	}
	return f, f.Validate()
}

// rejectUndecoded fails when the TOML source carried keys File does not declare
func rejectUndecoded(md toml.MetaData, source string) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("%w: %s: unknown keys %s", motion.ErrConfiguration, source, strings.Join(keys, ", "))
}

// Write encodes f as TOML
func (f File) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(f)
}

// Validate checks every section a run depends on
func (f File) Validate() error {
	if err := f.Motion().Validate(); err != nil {
		return err
	}

	switch f.Track.Kind {
	case TrackOval:
		if !(f.Track.RadiusX > 0) || !(f.Track.RadiusZ > 0) || f.Track.Points < 3 {
			return fmt.Errorf("%w: oval track needs positive radii and at least 3 points", motion.ErrConfiguration)
		}
	case TrackLine:
		if !(f.Track.Length > 0) {
			return fmt.Errorf("%w: line track length must be positive", motion.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown track kind %q", motion.ErrConfiguration, f.Track.Kind)
	}

	if !(f.Spawn.RowSpacing > 0) || f.Spawn.Ahead < 0 || f.Spawn.Behind < 0 || f.Spawn.SafeStart < 0 {
		return fmt.Errorf("%w: spawn distances", motion.ErrConfiguration)
	}
	total := 0.0
	for name, w := range f.Spawn.Weights {
		if _, ok := rider.ParseKind(name); !ok {
			return fmt.Errorf("%w: unknown spawn kind %q", motion.ErrConfiguration, name)
		}
		if w < 0 {
			return fmt.Errorf("%w: negative weight for %q", motion.ErrConfiguration, name)
		}
		total += w
	}
	if !(total > 0) {
		return fmt.Errorf("%w: spawn weights sum to zero", motion.ErrConfiguration)
	}

	if !(f.Collision.HitLength > 0) || !(f.Collision.HitWidth > 0) || f.Collision.RocketClearance < 0 {
		return fmt.Errorf("%w: collision footprint", motion.ErrConfiguration)
	}
	if f.Score.CoinValue < 0 {
		return fmt.Errorf("%w: negative coin value", motion.ErrConfiguration)
	}
	if f.Audio.MasterVolume < 0 || f.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: master volume %v outside [0, 1]", motion.ErrConfiguration, f.Audio.MasterVolume)
	}
	return nil
}

// LaneGeometry returns the lane layout
func (f File) LaneGeometry() rider.Lanes {
	return rider.Lanes{Count: f.Lanes.Count, Width: f.Lanes.Width}
}

// Motion builds the player controller configuration
func (f File) Motion() motion.Config {
	p := f.Player
	return motion.Config{
		Lanes:     f.LaneGeometry(),
		StartLane: f.Lanes.Start,

		LaneChangeDuration: p.LaneChangeDuration,
		LaneChangeCooldown: p.LaneChangeCooldown,
		LaneInputBuffer:    p.LaneInputBuffer,

		MaxTiltAngle:   p.MaxTiltAngle,
		TiltSmoothTime: p.TiltSmoothTime,

		MaxWheelieAngle:       p.MaxWheelieAngle,
		WheelieSmoothTime:     p.WheelieSmoothTime,
		WheelieMandatory:      p.WheelieMandatory,
		AllowNegativeWheelie:  p.AllowNegativeWheelie,
		WheelieErrorTolerance: p.WheelieErrorTolerance,
		WheelieGracePeriod:    p.WheelieGracePeriod,

		BaseSpeed:    p.BaseSpeed,
		MaxSpeed:     p.MaxSpeed,
		Acceleration: p.Acceleration,

		SpeedUp:  p.SpeedUp.envelope(),
		SlowDown: p.SlowDown.envelope(),
		Rocket: motion.Envelope{
			RampUp:   p.Rocket.RampUp,
			Hold:     p.Rocket.Hold,
			RampDown: p.Rocket.RampDown,
			Peak:     p.Rocket.Peak,
		},

		RocketBobAmplitude:  p.Rocket.BobAmplitude,
		RocketBobFrequency:  p.Rocket.BobFrequency,
		RocketDistanceScale: p.Rocket.DistanceScale,

		FallDuration: f.Fall.Duration,
		FallPitch:    f.Fall.Pitch,
		FallSpinRate: f.Fall.SpinRate,

		PointsPerUnit: f.Score.PointsPerUnit,
	}
}
