package geometry

import (
	"math/rand"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// AggregateOptions configures how an Aggregate resolves intersections
type AggregateOptions struct {
	UseBVH   bool                  // false falls back to a linear scan over bounded primitives
	Counters *IntersectionCounters // Optional diagnostics, may be nil
	Random   *rand.Rand            // Split-axis source for the BVH build, may be nil
}

// DefaultAggregateOptions returns sensible default values
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{UseBVH: true}
}

// Aggregate combines a BVH over bounded primitives with a flat list of
// unbounded primitives and behaves as a single primitive. It must not be
// modified after construction.
type Aggregate struct {
	bounded   []core.BoundedPrimitive
	unbounded []core.Primitive
	bvh       *BVH // nil when there are no bounded primitives
	useBVH    bool
	counters  *IntersectionCounters
}

// NewAggregate builds the aggregate. The input slices are copied; the BVH
// spans exactly the bounded primitives given here.
func NewAggregate(bounded []core.BoundedPrimitive, unbounded []core.Primitive, options AggregateOptions) *Aggregate {
	a := &Aggregate{
		bounded:   append([]core.BoundedPrimitive(nil), bounded...),
		unbounded: append([]core.Primitive(nil), unbounded...),
		useBVH:    options.UseBVH,
		counters:  options.Counters,
	}

	if len(a.bounded) > 0 {
		a.bvh = NewBVH(a.bounded, options.Random)
		a.bvh.counters = options.Counters
	}

	return a
}

// Hit returns the closest hit over all primitives. Bounded primitives are
// resolved first (BVH or linear scan) so the unbounded scan starts with the
// tightest possible window.
func (a *Aggregate) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	var closest core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	if a.useBVH {
		if a.bvh != nil {
			if hit, isHit := a.bvh.Hit(ray, tMin, closestSoFar); isHit {
				hitAnything = true
				closestSoFar = hit.T
				closest = hit
			}
		}
	} else {
		for _, primitive := range a.bounded {
			a.counters.primitiveTested()
			if hit, isHit := primitive.Hit(ray, tMin, closestSoFar); isHit {
				hitAnything = true
				closestSoFar = hit.T
				closest = hit
			}
		}
	}

	for _, primitive := range a.unbounded {
		a.counters.primitiveTested()
		if hit, isHit := primitive.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the smallest box containing every bounded primitive.
// It panics when there are none.
func (a *Aggregate) BoundingBox() core.AABB {
	if a.bvh == nil {
		panic("geometry: aggregate has no bounded primitives")
	}
	return a.bvh.BoundingBox()
}

// BVH returns the hierarchy over the bounded primitives, or nil if there are none
func (a *Aggregate) BVH() *BVH {
	return a.bvh
}

// UsesBVH reports whether intersections go through the BVH
func (a *Aggregate) UsesBVH() bool {
	return a.useBVH
}

// Len returns the number of bounded and unbounded primitives
func (a *Aggregate) Len() (bounded, unbounded int) {
	return len(a.bounded), len(a.unbounded)
}
