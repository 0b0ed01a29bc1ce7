package material

import (
	"fmt"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when
	// the ray is absorbed
	Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// Table holds the scene's materials, indexed by the material field of each
// hit record
type Table []Material

// Lookup returns the material at index. An index outside the table is a
// broken scene and panics.
func (t Table) Lookup(index int) Material {
	if index < 0 || index >= len(t) {
		panic(fmt.Sprintf("material: index %d out of range for table of %d materials", index, len(t)))
	}
	return t[index]
}

// Validate checks that every index a primitive may produce is in range
func (t Table) Validate(indices ...int) error {
	for _, index := range indices {
		if index < 0 || index >= len(t) {
			return fmt.Errorf("material index %d out of range [0, %d)", index, len(t))
		}
	}
	return nil
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// randomInUnitSphere returns a point inside the unit sphere
func randomInUnitSphere(sampler core.Sampler) core.Vec3 {
	return core.SamplePointInUnitSphere(sampler.Get3D())
}
