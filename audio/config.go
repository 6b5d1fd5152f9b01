package audio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lixenwraith/wheelie/config"
	"github.com/lixenwraith/wheelie/parameter"
)

// Audio-only environment overrides
const (
	EnvCueVolumes = "WHEELIE_SFX_VOLUMES" // JSON object of cue name to volume
	EnvSampleRate = "WHEELIE_SAMPLE_RATE"
)

// Config is the resolved audio setup
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns full cue volumes at the default master volume
func DefaultConfig() *Config {
	cfg := &Config{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
	}
	for i := range cfg.CueVolumes {
		cfg.CueVolumes[i] = 1
	}
	cfg.CueVolumes[CueLane] = 0.4
	cfg.CueVolumes[CueCrash] = 0.8
	return cfg
}

// LoadConfig starts from the [audio] section and applies the audio-only environment
func LoadConfig(section config.AudioSection, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Enabled = section.Enabled
	cfg.MasterVolume = section.MasterVolume
	if getenv == nil {
		return cfg, nil
	}

	if v := getenv(EnvCueVolumes); v != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(v), &volumes); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvCueVolumes, err)
		}
		for name, vol := range volumes {
			c, ok := ParseCue(name)
			if !ok {
				return nil, fmt.Errorf("%s: unknown cue %q", EnvCueVolumes, name)
			}
			cfg.CueVolumes[c] = max(vol, 0)
		}
	}

	if v := getenv(EnvSampleRate); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("%s: invalid sample rate %q", EnvSampleRate, v)
		}
		cfg.SampleRate = rate
	}
	return cfg, nil
}

// volume is the final gain of a cue
func (c *Config) volume(cue Cue) float64 {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	return c.CueVolumes[cue] * c.MasterVolume
}
