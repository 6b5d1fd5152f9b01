package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/wheelie/parameter"
	"github.com/lixenwraith/wheelie/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from freq to freqEnd
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a constant-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator sliding from one frequency to another over duration
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		freqEnd:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(from*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := vmath.Lerp(o.freq, o.freqEnd, float64(o.position)/float64(o.duration))
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// shaped is an oscillator wrapped in its envelope
func shaped(from, to float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, duration, wave, rate), duration, attack, release, rate)
}

// --- Cue generators, unity gain ---

func laneCue(rate beep.SampleRate) beep.Streamer {
	return shaped(0, 0, WaveNoise, parameter.LaneCueDuration, parameter.LaneCueAttack, parameter.LaneCueRelease, rate)
}

func sweepCue(from, to float64, rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(shaped(from, to, WaveSaw, parameter.SweepCueDuration, parameter.SweepCueAttack, parameter.SweepCueRelease, rate), 0.6),
		newVolume(shaped(from*2, to*2, WaveSine, parameter.SweepCueDuration, parameter.SweepCueAttack, parameter.SweepCueRelease, rate), 0.4),
	)
}

func rocketCue(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(shaped(0, 0, WaveNoise, parameter.RocketCueDuration, parameter.RocketCueAttack, parameter.RocketCueRelease, rate), 0.5),
		newVolume(shaped(110, 440, WaveSquare, parameter.RocketCueDuration, parameter.RocketCueAttack, parameter.RocketCueRelease, rate), 0.3),
	)
}

func coinCue(rate beep.SampleRate) beep.Streamer {
	// B5 then E6
	n1 := shaped(987.77, 987.77, WaveSquare, parameter.CoinCueNote1Duration, parameter.CoinCueAttack, parameter.CoinCueRelease, rate)
	n2 := shaped(1318.51, 1318.51, WaveSquare, parameter.CoinCueNote2Duration, parameter.CoinCueAttack, parameter.CoinCueRelease, rate)
	return beep.Seq(n1, n2)
}

func crashCue(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(shaped(0, 0, WaveNoise, parameter.CrashCueDuration, parameter.CrashCueAttack, parameter.CrashCueRelease, rate), 0.6),
		newVolume(shaped(90, 40, WaveSine, parameter.CrashCueDuration, parameter.CrashCueAttack, parameter.CrashCueRelease, rate), 0.5),
	)
}

func runEndCue(rate beep.SampleRate) beep.Streamer {
	// A3 with an octave overtone
	d := parameter.SweepCueDuration * 2
	return beep.Mix(
		newVolume(shaped(220, 220, WaveSine, d, parameter.CoinCueAttack, d-parameter.CoinCueAttack, rate), 0.7),
		newVolume(shaped(440, 440, WaveSine, d, parameter.CoinCueAttack, d/2, rate), 0.3),
	)
}

// generate returns the unity-gain streamer of a cue, nil for unknown cues
func generate(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueLane:
		return laneCue(rate)
	case CueSpeedUp:
		return sweepCue(220, 660, rate)
	case CueSlowDown:
		return sweepCue(660, 220, rate)
	case CueRocket:
		return rocketCue(rate)
	case CueCoin:
		return coinCue(rate)
	case CueCrash:
		return crashCue(rate)
	case CueRunEnd:
		return runEndCue(rate)
	}
	return nil
}
