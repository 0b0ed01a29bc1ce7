package integrator

import (
	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color carried back along ray. The scene
	// must be preprocessed.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
