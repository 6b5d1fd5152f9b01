package parameter

import "time"

// Audio defaults
const (
	AudioSampleRate   = 44100
	AudioMasterVolume = 0.5
	AudioBufferSize   = 100 * time.Millisecond
)

// Cue timings
const (
	CoinCueNote1Duration = 60 * time.Millisecond
	CoinCueNote2Duration = 120 * time.Millisecond
	CoinCueAttack        = 5 * time.Millisecond
	CoinCueRelease       = 40 * time.Millisecond

	LaneCueDuration = 40 * time.Millisecond
	LaneCueAttack   = 2 * time.Millisecond
	LaneCueRelease  = 25 * time.Millisecond

	SweepCueDuration = 350 * time.Millisecond
	SweepCueAttack   = 20 * time.Millisecond
	SweepCueRelease  = 150 * time.Millisecond

	RocketCueDuration = 600 * time.Millisecond
	RocketCueAttack   = 80 * time.Millisecond
	RocketCueRelease  = 300 * time.Millisecond

	CrashCueDuration = 400 * time.Millisecond
	CrashCueAttack   = 3 * time.Millisecond
	CrashCueRelease  = 300 * time.Millisecond
)
