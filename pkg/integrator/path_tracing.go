package integrator

import (
	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/scene"
)

// PathTracerConfig controls ray termination
type PathTracerConfig struct {
	MaxDepth int     // Bounces past this depth return black
	TMin     float64 // Ignore hits closer than this to avoid self-intersection
	TMax     float64 // Ignore hits farther than this
}

// DefaultPathTracerConfig returns sensible default values
func DefaultPathTracerConfig() PathTracerConfig {
	return PathTracerConfig{
		MaxDepth: 32,
		TMin:     1e-4,
		TMax:     1000.0,
	}
}

// PathTracingIntegrator implements recursive unidirectional path tracing
// with no light sampling: all light comes from the sky
type PathTracingIntegrator struct {
	config PathTracerConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config PathTracerConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator's configuration
func (pt *PathTracingIntegrator) Config() PathTracerConfig {
	return pt.config
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.RenderRay(ray, scene, sampler, 0)
}

// RenderRay traces ray at the given bounce depth
func (pt *PathTracingIntegrator) RenderRay(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth > pt.config.MaxDepth {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := scene.Primitives.Hit(ray, pt.config.TMin, pt.config.TMax)
	if !isHit {
		return scene.Background.Color(ray)
	}

	scatter, didScatter := scene.Materials.Lookup(hit.Material).Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(pt.RenderRay(scatter.Scattered, scene, sampler, depth+1))
}
