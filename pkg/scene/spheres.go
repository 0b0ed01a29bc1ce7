package scene

import (
	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/geometry"
	"github.com/df07/go-tile-tracer/pkg/material"
)

// NewSpheresScene creates three spheres resting on a huge ground sphere, seen
// through a fixed pinhole viewport
func NewSpheresScene() *Scene {
	s := &Scene{
		Name: "spheres",
		Camera: geometry.NewViewportCamera(
			core.NewVec3(0, 0, 0),
			core.NewVec3(-2, -1, -1),
			core.NewVec3(4, 0, 0),
			core.NewVec3(0, 2, 0),
		),
		Background: DefaultSky(),
		Config:     SceneConfig{Width: 800, Height: 400},
	}

	metal := s.AddMaterial(material.NewMetal(core.NewVec3(0.95, 0.5, 0.5), 0.0))
	diffuse := s.AddMaterial(material.NewLambertian(core.NewVec3(0.7, 0.7, 0.2)))
	glass := s.AddMaterial(material.NewDielectric(1.5))

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, metal)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, diffuse)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, diffuse)

	return s
}
