package geometry

import "sync/atomic"

// IntersectionCounters collects optional diagnostics about intersection work.
// A nil *IntersectionCounters is valid and records nothing.
type IntersectionCounters struct {
	nodeHits       atomic.Int64
	nodeMisses     atomic.Int64
	primitiveTests atomic.Int64
}

// CounterSnapshot is a point-in-time copy of IntersectionCounters
type CounterSnapshot struct {
	NodeHits       int64 // BVH node boxes the ray entered
	NodeMisses     int64 // BVH node boxes the ray missed (pruned subtrees)
	PrimitiveTests int64 // Primitive intersection tests performed
}

// NewIntersectionCounters creates zeroed counters
func NewIntersectionCounters() *IntersectionCounters {
	return &IntersectionCounters{}
}

func (c *IntersectionCounters) nodeTested(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.nodeHits.Add(1)
	} else {
		c.nodeMisses.Add(1)
	}
}

func (c *IntersectionCounters) primitiveTested() {
	if c == nil {
		return
	}
	c.primitiveTests.Add(1)
}

// Snapshot returns the current counter values
func (c *IntersectionCounters) Snapshot() CounterSnapshot {
	if c == nil {
		return CounterSnapshot{}
	}
	return CounterSnapshot{
		NodeHits:       c.nodeHits.Load(),
		NodeMisses:     c.nodeMisses.Load(),
		PrimitiveTests: c.primitiveTests.Load(),
	}
}
