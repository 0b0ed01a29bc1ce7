package geometry

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// bvhNode is one entry of the BVH arena. Leaves have left == -1 and refer to
// a primitive by index; branches refer to their children by index.
type bvhNode struct {
	box       core.AABB
	left      int32
	right     int32
	primitive int32
}

func (n *bvhNode) isLeaf() bool {
	return n.left < 0
}

// BVH is a binary Bounding Volume Hierarchy over bounded primitives, built by
// median splits on a random axis. It is immutable after construction and safe
// for concurrent traversal.
type BVH struct {
	nodes      []bvhNode // nodes[0] is the root
	primitives []core.BoundedPrimitive
	counters   *IntersectionCounters
}

// buildItem pairs a primitive with its bounding box so sorting does not
// recompute boxes.
type buildItem struct {
	primitive core.BoundedPrimitive
	box       core.AABB
}

// NewBVH constructs a BVH over primitives. The slice is reordered in place and
// referenced by the tree afterwards. Passing no primitives panics. A nil
// random uses a time-seeded source.
func NewBVH(primitives []core.BoundedPrimitive, random *rand.Rand) *BVH {
	if len(primitives) == 0 {
		panic("geometry: cannot build a BVH from zero primitives")
	}
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	items := make([]buildItem, len(primitives))
	for i, p := range primitives {
		items[i] = buildItem{primitive: p, box: p.BoundingBox()}
	}

	bvh := &BVH{
		nodes: make([]bvhNode, 0, 2*len(items)-1),
	}
	bvh.build(items, 0, random)

	// Leaves index into primitives in build order
	for i, item := range items {
		primitives[i] = item.primitive
	}
	bvh.primitives = primitives

	return bvh
}

// build appends the subtree over items to the arena and returns its index.
// offset is the position of items[0] within the full primitive list.
func (bvh *BVH) build(items []buildItem, offset int, random *rand.Rand) int32 {
	index := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, bvhNode{})

	if len(items) == 1 {
		bvh.nodes[index] = bvhNode{
			box:       items[0].box,
			left:      -1,
			right:     -1,
			primitive: int32(offset),
		}
		return index
	}

	axis := random.Intn(3)
	sort.Slice(items, func(i, j int) bool {
		return items[i].box.Min.Axis(axis) < items[j].box.Min.Axis(axis)
	})

	mid := len(items) / 2
	left := bvh.build(items[:mid], offset, random)
	right := bvh.build(items[mid:], offset+mid, random)

	bvh.nodes[index] = bvhNode{
		box:       bvh.nodes[left].box.Union(bvh.nodes[right].box),
		left:      left,
		right:     right,
		primitive: -1,
	}
	return index
}

// BoundingBox returns the box of the root node
func (bvh *BVH) BoundingBox() core.AABB {
	return bvh.nodes[0].box
}

// Hit tests if a ray intersects any primitive in the BVH and returns the
// closest hit
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	return bvh.hitNode(0, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(index int32, ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	node := &bvh.nodes[index]

	// Prune the whole subtree when the ray misses its box
	if !node.box.Hit(ray, tMin, tMax) {
		bvh.counters.nodeTested(false)
		return core.HitRecord{}, false
	}
	bvh.counters.nodeTested(true)

	if node.isLeaf() {
		bvh.counters.primitiveTested()
		return bvh.primitives[node.primitive].Hit(ray, tMin, tMax)
	}

	closest, hitAnything := bvh.hitNode(node.left, ray, tMin, tMax)
	closestSoFar := tMax
	if hitAnything {
		closestSoFar = closest.T
	}

	// The right child only needs to report strictly closer hits
	if hit, isHit := bvh.hitNode(node.right, ray, tMin, closestSoFar); isHit {
		closest = hit
		hitAnything = true
	}

	return closest, hitAnything
}

// Validate checks that every leaf box equals its primitive's box and every
// branch box equals the union of its children's boxes
func (bvh *BVH) Validate() error {
	_, err := bvh.validateNode(0)
	return err
}

func (bvh *BVH) validateNode(index int32) (core.AABB, error) {
	node := &bvh.nodes[index]

	if node.isLeaf() {
		expected := bvh.primitives[node.primitive].BoundingBox()
		if node.box != expected {
			return node.box, fmt.Errorf("leaf %d: box %v does not match primitive box %v", index, node.box, expected)
		}
		return node.box, nil
	}

	leftBox, err := bvh.validateNode(node.left)
	if err != nil {
		return node.box, err
	}
	rightBox, err := bvh.validateNode(node.right)
	if err != nil {
		return node.box, err
	}

	if expected := leftBox.Union(rightBox); node.box != expected {
		return node.box, fmt.Errorf("branch %d: box %v is not the union of its children %v", index, node.box, expected)
	}
	return node.box, nil
}

// BVHStats describes the shape of a BVH
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	bvh.collectStats(0, 0, &stats)
	return stats
}

func (bvh *BVH) collectStats(index int32, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	node := &bvh.nodes[index]
	if node.isLeaf() {
		stats.LeafNodes++
		return
	}
	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}
