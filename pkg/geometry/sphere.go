package geometry

import (
	"math"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material int // Index into the scene material table
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material int) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.LengthSquared()
	b := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - a*c
	if discriminant <= 0 {
		return core.HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / a
	if !(root > tMin && root < tMax) {
		root = (-b + sqrtD) / a
		if !(root > tMin && root < tMax) {
			return core.HitRecord{}, false
		}
	}

	point := ray.At(root)
	return core.HitRecord{
		T:        root,
		Point:    point,
		Normal:   point.Subtract(s.Center).Divide(s.Radius),
		Material: s.Material,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// MaterialIndex returns the material table index carried by every hit
func (s *Sphere) MaterialIndex() int {
	return s.Material
}
