// Package spawn places rows of props ahead of the player
package spawn

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/vmath"
)

var ErrNoWeights = errors.New("spawn weights sum to zero")

// Spawner creates the props for every row between two odometer distances
type Spawner interface {
	Fill(from, to float64) []*rider.Rider
}

// Config tunes the weighted spawner
type Config struct {
	Lanes      rider.Lanes
	RowSpacing float64
	// SafeStart keeps rows out of the first stretch of a run
	SafeStart float64

	TruckSpeed         float64
	OncomingTruckSpeed float64

	Weights map[rider.Kind]float64
	Seed    uint64
}

var _ Spawner = (*Weighted)(nil)

// Weighted picks one kind per row by weight and shuffles it across lanes
// Obstacle rows always leave at least one lane free
type Weighted struct {
	cfg  Config
	path spline.Path
	rng  *vmath.FastRand

	kinds      []rider.Kind
	cumulative []float64

	next  float64 // odometer distance of the next row
	order []int   // lane shuffle scratch

	rows    int
	spawned int
}

// NewWeighted validates cfg against path
func NewWeighted(cfg Config, path spline.Path) (*Weighted, error) {
	if err := spline.Validate(path); err != nil {
		return nil, err
	}
	if err := cfg.Lanes.Validate(); err != nil {
		return nil, err
	}
	if !(cfg.RowSpacing > 0) {
		return nil, fmt.Errorf("row spacing must be positive, got %v", cfg.RowSpacing)
	}

	w := &Weighted{
		cfg:   cfg,
		path:  path,
		rng:   vmath.NewFastRand(cfg.Seed),
		order: make([]int, cfg.Lanes.Count),
	}

	// Kind order keeps picks deterministic for a seed
	total := 0.0
	for k := rider.KindTruck; k <= rider.KindSign; k++ {
		weight := cfg.Weights[k]
		if !(weight > 0) {
			continue
		}
		total += weight
		w.kinds = append(w.kinds, k)
		w.cumulative = append(w.cumulative, total)
	}
	if len(w.kinds) == 0 {
		return nil, ErrNoWeights
	}

	w.Reset()
	return w, nil
}

// Reset rewinds to the start of a run with the original seed
func (w *Weighted) Reset() {
	w.rng = vmath.NewFastRand(w.cfg.Seed)
	w.next = math.Max(w.cfg.SafeStart, w.cfg.RowSpacing)
	w.rows, w.spawned = 0, 0
}

// Fill spawns every row whose distance lies in [from, to]
// Rows skipped by a jump past from are dropped
func (w *Weighted) Fill(from, to float64) []*rider.Rider {
	var out []*rider.Rider
	for w.next <= to {
		at := w.next
		w.next += w.cfg.RowSpacing
		if at < from {
			continue
		}
		out = w.row(at, out)
	}
	return out
}

// Rows returns how many rows were generated since Reset
func (w *Weighted) Rows() int { return w.rows }

// Spawned returns how many props were generated since Reset
func (w *Weighted) Spawned() int { return w.spawned }

func (w *Weighted) pick() rider.Kind {
	r := w.rng.Float64() * w.cumulative[len(w.cumulative)-1]
	for i, c := range w.cumulative {
		if r < c {
			return w.kinds[i]
		}
	}
	return w.kinds[len(w.kinds)-1]
}

func (w *Weighted) row(at float64, out []*rider.Rider) []*rider.Rider {
	length := w.path.Length()
	if !w.path.Closed() && at > length {
		return out
	}
	distance := at
	if w.path.Closed() {
		distance = vmath.Wrap(at, length)
	}
	lanes := w.cfg.Lanes
	w.rows++

	for i := range w.order {
		w.order[i] = i
	}
	w.rng.Shuffle(len(w.order), func(i, j int) {
		w.order[i], w.order[j] = w.order[j], w.order[i]
	})

	kind := w.pick()
	count := 1
	switch {
	case kind.IsObstacle() && lanes.Count == 1:
		kind = rider.KindCoin
	case kind.IsObstacle():
		// 1 .. Count-1 blocked lanes
		count = 1 + w.rng.Intn(lanes.Count-1)
	case kind == rider.KindCoin:
		count = 1 + w.rng.Intn(lanes.Count)
	case kind == rider.KindSign:
		// Overhead gantry on an outer lane
		if w.rng.Intn(2) == 0 {
			w.order[0] = 0
		} else {
			w.order[0] = lanes.Count - 1
		}
	}

	for _, lane := range w.order[:count] {
		dir, speed := spline.Forward, 0.0
		if kind == rider.KindTruck {
			if w.rng.Intn(2) == 0 {
				dir, speed = spline.Reverse, w.cfg.OncomingTruckSpeed
			} else {
				speed = w.cfg.TruckSpeed
			}
		}
		r, err := rider.New(kind, w.path, lanes, lane, distance, dir, speed)
		if err != nil {
			// Path and lanes were validated in NewWeighted
			continue
		}
		out = append(out, r)
		w.spawned++
	}
	return out
}

// Weights converts config names to kinds, skipping unknown names
func Weights(named map[string]float64) map[rider.Kind]float64 {
	out := make(map[rider.Kind]float64, len(named))
	for name, weight := range named {
		if k, ok := rider.ParseKind(name); ok {
			out[k] = weight
		}
	}
	return out
}
