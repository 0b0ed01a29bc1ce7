package material

import (
	"math"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Hit normals point outward, so the side is decided by the ray direction.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass does not tint
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	dirDotNormal := rayIn.Direction.Dot(hit.Normal)

	if dirDotNormal > 0 {
		// Exiting the material (from glass to air)
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotNormal / rayIn.Direction.Length()
	} else {
		// Entering the material (from air to glass)
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -dirDotNormal / rayIn.Direction.Length()
	}

	direction := reflect(rayIn.Direction, hit.Normal)
	if refracted, ok := Refract(rayIn.Direction, outwardNormal, refractionRatio); ok {
		if sampler.Get1D() >= Reflectance(cosine, d.RefractiveIndex) {
			direction = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Refract bends v through a surface with normal n using Snell's law.
// It returns false under total internal reflection.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
