package material

import (
	"math/rand"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// Lambertian represents a diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// NewRandomLambertian creates a lambertian material whose color is drawn
// once from [0.1, 0.7) per channel
func NewRandomLambertian(random *rand.Rand) *Lambertian {
	return NewLambertian(core.NewVec3(
		random.Float64()*0.6+0.1,
		random.Float64()*0.6+0.1,
		random.Float64()*0.6+0.1,
	))
}

// Scatter implements the Material interface for lambertian scattering.
// It never absorbs.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Point on the unit sphere tangent at the hit point
	scatterDirection := hit.Normal.Add(randomInUnitSphere(sampler))

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo.Evaluate(core.Vec2{}, hit.Point),
	}, true
}
