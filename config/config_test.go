package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/parameter"
)

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wheelie.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	f := Default()
	require.NoError(t, f.Validate())
	assert.Equal(t, motion.DefaultConfig(), f.Motion())
}

func TestLoadWithoutFile(t *testing.T) {
	f, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, parameter.LaneCount, f.Lanes.Count)
	assert.Equal(t, TrackOval, f.Track.Kind)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeFile(t, `
[lanes]
count = 5
width = 3.0

[player]
base_speed = 8.0
wheelie_mandatory = false

[player.speed_up]
ramp_up = 1.0
hold = 5.0
ramp_down = 1.0
peak = 2.0

[track]
kind = "line"
length = 500.0

[spawn.weights]
coin = 10.0

[keys]
left = ["j"]
`)
	f, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, f.Lanes.Count)
	assert.Equal(t, 3.0, f.Lanes.Width)
	assert.Equal(t, 8.0, f.Player.BaseSpeed)
	assert.Equal(t, parameter.MaxSpeed, f.Player.MaxSpeed, "unset keys keep defaults")
	assert.False(t, f.Player.WheelieMandatory)
	assert.Equal(t, motion.Envelope{RampUp: 1, Hold: 5, RampDown: 1, Peak: 2}, f.Motion().SpeedUp)
	assert.Equal(t, TrackLine, f.Track.Kind)
	assert.Equal(t, 10.0, f.Spawn.Weights["coin"])
	assert.Equal(t, []string{"j"}, f.Keys.Left)
	assert.Equal(t, []string{"d", "Right"}, f.Keys.Right)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "[player]\nbase_sped = 3.0\n")
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, motion.ErrConfiguration)
	assert.Contains(t, err.Error(), "player.base_sped")
	assert.Contains(t, err.Error(), path)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode("[lanes]\ncount = 3\nwidht = 2.0\n\n[hud]\nshow = true\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, motion.ErrConfiguration)
	assert.Contains(t, err.Error(), "lanes.widht")
	assert.Contains(t, err.Error(), "hud")

	f, err := Decode("[lanes]\ncount = 5\n")
	require.NoError(t, err)
	assert.Equal(t, 5, f.Lanes.Count)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := writeFile(t, "[lanes\ncount = 3\n")
	_, err := Load(path, nil)
	assert.ErrorIs(t, err, motion.ErrConfiguration)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero lanes":        "[lanes]\ncount = 0\n",
		"zero envelope":     "[player.rocket]\nramp_up = 0.0\nhold = 0.0\nramp_down = 0.0\n",
		"unknown track":     "[track]\nkind = \"figure8\"\n",
		"unknown kind":      "[spawn.weights]\nunicorn = 1.0\n",
		"volume":            "[audio]\nmaster_volume = 2.0\n",
		"max below base":    "[player]\nbase_speed = 30.0\nmax_speed = 10.0\n",
		"negative cooldown": "[player]\nlane_change_cooldown = -1.0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body), nil)
			assert.ErrorIs(t, err, motion.ErrConfiguration)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	f, err := Load("", env(map[string]string{
		EnvLanes:            "4",
		EnvBaseSpeed:        "9.5",
		EnvMaxSpeed:         "30",
		EnvMandatoryWheelie: "false",
		EnvAudioEnabled:     "0",
		EnvMasterVolume:     "150",
		EnvSeed:             "42",
	}))
	require.NoError(t, err)
	assert.Equal(t, 4, f.Lanes.Count)
	assert.Equal(t, 9.5, f.Player.BaseSpeed)
	assert.Equal(t, 30.0, f.Player.MaxSpeed)
	assert.False(t, f.Player.WheelieMandatory)
	assert.False(t, f.Audio.Enabled)
	assert.Equal(t, 1.0, f.Audio.MasterVolume, "volume clamps to 100")
	assert.Equal(t, uint64(42), f.Spawn.Seed)
}

func TestApplyEnvMalformed(t *testing.T) {
	_, err := Load("", env(map[string]string{EnvLanes: "three"}))
	assert.ErrorIs(t, err, motion.ErrConfiguration)
	assert.Contains(t, err.Error(), EnvLanes)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[lanes]\ncount = 5\n")
	f, err := Load(path, env(map[string]string{EnvLanes: "2"}))
	require.NoError(t, err)
	assert.Equal(t, 2, f.Lanes.Count)
}

func TestWriteRoundTripsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Write(&buf))
	assert.Contains(t, buf.String(), "[player.rocket]")

	f, err := Decode(buf.String())
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}
