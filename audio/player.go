package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/parameter"
)

// Player mixes cues into the speaker and turns controller events into cues
// Without a successful Start it still mixes, so callers never branch on audio availability
type Player struct {
	mu      sync.Mutex
	cfg     *Config
	cache   *cueCache
	mixer   *beep.Mixer
	started bool

	muted  atomic.Bool
	played [cueCount]atomic.Int64
}

// NewPlayer prepares the cue cache; a disabled config starts muted
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Player{
		cfg:   cfg,
		cache: newCueCache(beep.SampleRate(cfg.SampleRate)),
		mixer: &beep.Mixer{},
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Start opens the speaker and renders every cue
// A missing audio device is returned once; the player then stays silent
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	p.cache.preload()

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferSize)); err != nil {
		p.muted.Store(true)
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences the mixer; the speaker itself cannot be reopened by beep
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withMixer(func(m *beep.Mixer) { m.Clear() })
	if p.started {
		speaker.Close()
		p.started = false
	}
}

// Play mixes a cue at its configured volume; ignored while muted
func (p *Player) Play(cue Cue) {
	if p.muted.Load() {
		return
	}
	buf := p.cache.get(cue)
	if buf == nil {
		return
	}
	vol := p.cfg.volume(cue)
	if vol <= 0 {
		return
	}
	s := newVolume(buf.Streamer(0, buf.Len()), vol)

	p.mu.Lock()
	p.withMixer(func(m *beep.Mixer) { m.Add(s) })
	p.mu.Unlock()
	p.played[cue].Add(1)
}

// withMixer runs fn under the speaker lock once the speaker owns the mixer
// Callers hold p.mu
func (p *Player) withMixer(fn func(m *beep.Mixer)) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn(p.mixer)
}

// ToggleMute flips the mute state and returns the new one
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (p *Player) Muted() bool { return p.muted.Load() }

// Played returns how many times a cue was mixed
func (p *Player) Played(cue Cue) int64 {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	return p.played[cue].Load()
}

// Active returns how many cues are still sounding
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	p.withMixer(func(m *beep.Mixer) { n = m.Len() })
	return n
}

// Stream pulls mixed samples directly; used when no speaker is attached
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	var ok bool
	p.withMixer(func(m *beep.Mixer) { n, ok = m.Stream(samples) })
	return n, ok
}

// OnMotionEvent maps controller events to cues
func (p *Player) OnMotionEvent(e motion.Event) {
	switch e.Kind {
	case motion.EventLaneChangeStarted:
		p.Play(CueLane)
	case motion.EventSpeedUpStarted:
		p.Play(CueSpeedUp)
	case motion.EventSlowDownStarted:
		p.Play(CueSlowDown)
	case motion.EventRocketStarted:
		p.Play(CueRocket)
	case motion.EventCoinsCollected:
		p.Play(CueCoin)
	case motion.EventFellOver:
		p.Play(CueCrash)
	case motion.EventRunEnded:
		p.Play(CueRunEnd)
	}
}
