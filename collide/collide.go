// Package collide finds overlaps between the player and props in path space
//
// Distance and lateral offset are compared directly rather than world
// positions, so overlaps are exact on any curve and across the loop seam.
package collide

import (
	"math"

	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/vmath"
)

// Hit is one overlapping prop
type Hit struct {
	Rider *rider.Rider
	// Ahead is the signed path distance from the player to the prop
	Ahead float64
}

// Obstacle reports whether the hit ends the run
func (h Hit) Obstacle() bool { return h.Rider.Kind.IsObstacle() }

// Events receives the hits of one check
type Events interface {
	ObstacleHit(r *rider.Rider)
	PickupHit(r *rider.Rider)
}

// Detector is a box overlap test in (distance, lateral) space
type Detector struct {
	// Half extents of the overlap box
	HitLength float64
	HitWidth  float64
	// Clearance is the lift above which obstacles pass underneath
	Clearance float64
}

// Delta returns the signed distance from a to b along a path
// Closed paths take the shorter way around the loop
func Delta(a, b, length float64, closed bool) float64 {
	if closed {
		return vmath.WrappedDelta(a, b, length)
	}
	return b - a
}

// Check returns every prop overlapping the player, in props order
// Finished props and signs never hit
func (d Detector) Check(player rider.State, lift, length float64, closed bool, props []*rider.Rider) []Hit {
	var hits []Hit
	airborne := lift > d.Clearance
	for _, p := range props {
		if p == nil || p.Finished {
			continue
		}
		if !p.Kind.IsObstacle() && !p.Kind.IsPickup() {
			continue
		}
		if airborne && p.Kind.IsObstacle() {
			continue
		}
		ahead := Delta(player.Distance, p.State.Distance, length, closed)
		if math.Abs(ahead) > d.HitLength || math.Abs(p.State.Lateral-player.Lateral) > d.HitWidth {
			continue
		}
		hits = append(hits, Hit{Rider: p, Ahead: ahead})
	}
	return hits
}

// Dispatch forwards hits, obstacles before pickups
func Dispatch(hits []Hit, ev Events) {
	for _, h := range hits {
		if h.Obstacle() {
			ev.ObstacleHit(h.Rider)
		}
	}
	for _, h := range hits {
		if !h.Obstacle() {
			ev.PickupHit(h.Rider)
		}
	}
}

// Nearest returns the closest obstacle in lane within [-behind, horizon] of the player, or nil
func Nearest(player rider.State, lane int, behind, horizon, length float64, closed bool, props []*rider.Rider) *rider.Rider {
	var best *rider.Rider
	bestAhead := math.Inf(1)
	for _, p := range props {
		if p == nil || p.Finished || !p.Kind.IsObstacle() || p.Lane != lane {
			continue
		}
		ahead := Delta(player.Distance, p.State.Distance, length, closed)
		if ahead < -behind || ahead > horizon {
			continue
		}
		if ahead < bestAhead {
			best, bestAhead = p, ahead
		}
	}
	return best
}
