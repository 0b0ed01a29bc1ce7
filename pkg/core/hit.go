package core

// HitRecord contains information about a ray-primitive intersection
type HitRecord struct {
	T        float64 // Parameter t along the ray
	Point    Vec3    // Point of intersection
	Normal   Vec3    // Outward surface normal, not flipped toward the ray
	Material int     // Index into the scene's material table
}

// Primitive is anything a ray can hit.
//
// Hit reports the closest intersection with t strictly inside (tMin, tMax).
type Primitive interface {
	Hit(ray Ray, tMin, tMax float64) (HitRecord, bool)
}

// BoundedPrimitive is a Primitive with a finite bounding box, which makes it
// eligible for the BVH.
type BoundedPrimitive interface {
	Primitive
	BoundingBox() AABB
}
