package scene

import (
	"fmt"

	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/geometry"
	"github.com/df07/go-tile-tracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Camera     *geometry.Camera
	Bounded    []core.BoundedPrimitive // Objects that go into the BVH
	Unbounded  []core.Primitive        // Objects with no finite bounds, e.g. planes
	Materials  material.Table
	Background SkyGradient
	Config     SceneConfig
	Primitives *geometry.Aggregate // Built by Preprocess
}

// SceneConfig contains the scene's preferred output size
type SceneConfig struct {
	Width  int // Image width
	Height int // Image height
}

// AspectRatio returns width / height
func (c SceneConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// SkyGradient is the color seen by rays that escape the scene, blended from
// Bottom to Top by the y component of the normalized ray direction
type SkyGradient struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// DefaultSky returns the white to light blue sky
func DefaultSky() SkyGradient {
	return SkyGradient{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the sky color in the direction of ray
func (g SkyGradient) Color(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}

// materialIndexed is implemented by primitives that reference the material table
type materialIndexed interface {
	MaterialIndex() int
}

// AddMaterial appends a material and returns its index
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddSphere adds a sphere to the bounded primitives
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialIndex int) {
	s.Bounded = append(s.Bounded, geometry.NewSphere(center, radius, materialIndex))
}

// AddPlane adds an infinite plane to the unbounded primitives
func (s *Scene) AddPlane(point, normal core.Vec3, materialIndex int) {
	s.Unbounded = append(s.Unbounded, geometry.NewInfinitePlane(point, normal, materialIndex))
}

// Preprocess prepares the scene for rendering: it checks every material
// reference and builds the primitive aggregate
func (s *Scene) Preprocess(options geometry.AggregateOptions) error {
	if s.Camera == nil {
		return fmt.Errorf("scene %q has no camera", s.Name)
	}
	if len(s.Bounded) == 0 && len(s.Unbounded) == 0 {
		return fmt.Errorf("scene %q has no primitives", s.Name)
	}

	for _, primitive := range s.Bounded {
		if err := s.checkMaterial(primitive); err != nil {
			return err
		}
	}
	for _, primitive := range s.Unbounded {
		if err := s.checkMaterial(primitive); err != nil {
			return err
		}
	}

	s.Primitives = geometry.NewAggregate(s.Bounded, s.Unbounded, options)
	return nil
}

func (s *Scene) checkMaterial(primitive core.Primitive) error {
	indexed, ok := primitive.(materialIndexed)
	if !ok {
		return nil
	}
	if err := s.Materials.Validate(indexed.MaterialIndex()); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// GetPrimitiveCount returns the number of bounded and unbounded primitives
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Bounded) + len(s.Unbounded)
}
