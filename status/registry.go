// Package status is a lock-free telemetry board
//
// The session caches metric pointers once and writes atomics every step;
// the HUD and the debug log read them from their own goroutines.
package status

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

// Registry is the central metrics facade
type Registry struct {
	Bools   *Gauges[atomic.Bool]
	Ints    *Gauges[atomic.Int64]
	Floats  *Gauges[AtomicFloat]
	Strings *Gauges[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewGauges[atomic.Bool](),
		Ints:    NewGauges[atomic.Int64](),
		Floats:  NewGauges[AtomicFloat](),
		Strings: NewGauges[AtomicString](),
	}
}

// Len counts metrics of every type
func (r *Registry) Len() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric in key order, so each subsystem prefix reads as one block
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.Len())
	r.Strings.Each(func(k string, v *AtomicString) {
		out = append(out, Entry{k, v.Load()})
	})
	r.Bools.Each(func(k string, v *atomic.Bool) {
		out = append(out, Entry{k, strconv.FormatBool(v.Load())})
	})
	r.Ints.Each(func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Each(func(k string, v *AtomicFloat) {
		out = append(out, Entry{k, fmt.Sprintf("%.2f", v.Get())})
	})
	slices.SortStableFunc(out, func(a, b Entry) int { return strings.Compare(a.Key, b.Key) })
	return out
}
