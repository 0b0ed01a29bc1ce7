package geometry

import (
	"github.com/df07/go-tile-tracer/pkg/core"
)

// InfinitePlane is a plane through Point with a fixed Normal. It has no finite
// bounding box, so it never goes into a BVH.
type InfinitePlane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Normal returned for every hit
	Material int       // Index into the scene material table
}

// NewInfinitePlane creates a new plane
func NewInfinitePlane(point, normal core.Vec3, material int) *InfinitePlane {
	return &InfinitePlane{
		Point:    point,
		Normal:   normal,
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *InfinitePlane) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if denominator == 0 {
		// Parallel to the plane
		return core.HitRecord{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !(t > tMin && t < tMax) {
		return core.HitRecord{}, false
	}

	return core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   p.Normal,
		Material: p.Material,
	}, true
}

// MaterialIndex returns the material table index carried by every hit
func (p *InfinitePlane) MaterialIndex() int {
	return p.Material
}
