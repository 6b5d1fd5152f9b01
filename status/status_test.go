package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugesCachePointersInKeyOrder(t *testing.T) {
	g := NewGauges[AtomicFloat]()
	speed := g.Get(KeySpeed)
	speed.Set(12.5)
	g.Get(KeyDistance).Set(3)
	g.Get(KeyLift)

	assert.Same(t, speed, g.Get(KeySpeed))
	assert.Equal(t, 12.5, g.Get(KeySpeed).Get())
	assert.Equal(t, 3, g.Len())

	var keys []string
	g.Each(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	assert.Equal(t, []string{KeyDistance, KeyLift, KeySpeed}, keys)

	v, ok := g.Lookup(KeySpeed)
	require.True(t, ok)
	assert.Same(t, speed, v)

	v, ok = g.Lookup(KeyWheelie)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 3, g.Len(), "lookup must not register")
}

func TestGaugesConcurrentGet(t *testing.T) {
	g := NewGauges[atomic.Int64]()
	keys := []string{KeyTicks, KeyRuns, KeyLane, KeyPoints}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Get(keys[j%len(keys)]).Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(keys), g.Len())
	for _, k := range keys {
		assert.Equal(t, int64(200), g.Get(k).Load(), k)
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 0.0, f.Get())
	assert.Equal(t, 1.5, f.Add(1.5))
	assert.Equal(t, 4.0, f.Max(4))
	assert.Equal(t, 4.0, f.Max(2))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 804.0, f.Get())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("Racing")
	assert.Equal(t, "Racing", s.Load())
	s.Store("abcdefghijklmnopqrstuvwxyz0123")
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Floats.Get(KeySpeed).Set(3.14159)
	r.Floats.Get(KeyDistance).Set(10)
	r.Ints.Get(KeyLane).Store(2)
	r.Bools.Get(KeyPaused).Store(true)
	r.Strings.Get(KeyState).Store("Falling")

	assert.Equal(t, 5, r.Len())
	assert.Equal(t, []Entry{
		{KeyPaused, "true"},
		{KeyDistance, "10.00"},
		{KeyLane, "2"},
		{KeySpeed, "3.14"},
		{KeyState, "Falling"},
	}, r.Snapshot())
}
