package status

import (
	"slices"
	"strings"
	"sync"
)

// Gauges is a grow-only set of metrics of type T kept in key order
// Get locks; callers keep the returned pointer and touch it lock-free after that
type Gauges[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
}

type slot[T any] struct {
	key string
	val *T
}

// NewGauges returns an empty set
func NewGauges[T any]() *Gauges[T] {
	return &Gauges[T]{}
}

func (g *Gauges[T]) find(key string) (int, bool) {
	return slices.BinarySearchFunc(g.slots, key, func(s slot[T], k string) int {
		return strings.Compare(s.key, k)
	})
}

// Get returns the metric for key, registering a zero value on first use
func (g *Gauges[T]) Get(key string) *T {
	g.mu.RLock()
	i, ok := g.find(key)
	if ok {
		v := g.slots[i].val
		g.mu.RUnlock()
		return v
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	// Another writer may have registered key between the locks
	if i, ok = g.find(key); ok {
		return g.slots[i].val
	}
	v := new(T)
	g.slots = slices.Insert(g.slots, i, slot[T]{key, v})
	return v
}

// Lookup returns the metric for key without registering it
func (g *Gauges[T]) Lookup(key string) (*T, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if i, ok := g.find(key); ok {
		return g.slots[i].val, true
	}
	return nil, false
}

func (g *Gauges[T]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.slots)
}

// Each visits every metric in key order
func (g *Gauges[T]) Each(fn func(key string, v *T)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, s := range g.slots {
		fn(s.key, s.val)
	}
}
