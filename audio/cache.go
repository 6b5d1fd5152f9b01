package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// cueCache stores rendered unity-gain cues
type cueCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  [cueCount]*beep.Buffer
}

func newCueCache(rate beep.SampleRate) *cueCache {
	return &cueCache{format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}}
}

// get returns the cached buffer, rendering it on first use
func (c *cueCache) get(cue Cue) *beep.Buffer {
	if cue < 0 || cue >= cueCount {
		return nil
	}

	c.mu.RLock()
	buf := c.store[cue]
	c.mu.RUnlock()
	if buf != nil {
		return buf
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store[cue] != nil {
		return c.store[cue]
	}
	buf = beep.NewBuffer(c.format)
	buf.Append(generate(cue, c.format.SampleRate))
	c.store[cue] = buf
	return buf
}

// preload renders every cue so the first play never stalls a tick
func (c *cueCache) preload() {
	for cue := Cue(0); cue < cueCount; cue++ {
		c.get(cue)
	}
}
