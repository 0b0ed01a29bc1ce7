package material

import (
	"github.com/df07/go-tile-tracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo    core.Vec3 // Metal color
	Roughness float64   // 0.0 = perfect mirror
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, roughness float64) *Metal {
	return &Metal{Albedo: albedo, Roughness: roughness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)
	reflected = reflected.Add(randomInUnitSphere(sampler).Multiply(m.Roughness))

	// Absorbed when the perturbed reflection points into the surface
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}
