package config

import (
	"fmt"
	"strconv"

	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/vmath"
)

// Environment overrides
const (
	EnvLanes            = "WHEELIE_LANES"
	EnvBaseSpeed        = "WHEELIE_BASE_SPEED"
	EnvMaxSpeed         = "WHEELIE_MAX_SPEED"
	EnvMandatoryWheelie = "WHEELIE_MANDATORY_WHEELIE"
	EnvAudioEnabled     = "WHEELIE_AUDIO_ENABLED"
	EnvMasterVolume     = "WHEELIE_MASTER_VOLUME"
	EnvSeed             = "WHEELIE_SEED"
)

// ApplyEnv overlays WHEELIE_* variables read through getenv
// Unset variables are skipped; malformed values are errors
func (f *File) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLanes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvLanes, v, err)
		}
		f.Lanes.Count = n
	}

	if v := getenv(EnvBaseSpeed); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvBaseSpeed, v, err)
		}
		f.Player.BaseSpeed = s
	}

	if v := getenv(EnvMaxSpeed); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvMaxSpeed, v, err)
		}
		f.Player.MaxSpeed = s
	}

	if v := getenv(EnvMandatoryWheelie); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvMandatoryWheelie, v, err)
		}
		f.Player.WheelieMandatory = b
	}

	if v := getenv(EnvAudioEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvAudioEnabled, v, err)
		}
		f.Audio.Enabled = b
	}

	// Master volume is 0-100
	if v := getenv(EnvMasterVolume); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvMasterVolume, v, err)
		}
		f.Audio.MasterVolume = vmath.Clamp01(float64(n) / 100)
	}

	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError(EnvSeed, v, err)
		}
		f.Spawn.Seed = n
	}

	return nil
}

func envError(name, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %w", motion.ErrConfiguration, name, value, err)
}
