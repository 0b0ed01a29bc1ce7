package scene

import (
	"math/rand"

	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/geometry"
	"github.com/df07/go-tile-tracer/pkg/material"
)

// gridMaterials is the palette shared by the grid and scatter scenes: metal,
// two diffuse colors, three glasses, brushed metal and ten random colors
func gridMaterials(s *Scene, random *rand.Rand) {
	s.AddMaterial(material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.0))
	s.AddMaterial(material.NewLambertian(core.NewVec3(0.7, 0.7, 0.2)))
	s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddMaterial(material.NewDielectric(1.5))
	s.AddMaterial(material.NewDielectric(1.7))
	s.AddMaterial(material.NewDielectric(1.7))
	s.AddMaterial(material.NewMetal(core.NewVec3(0.4, 0.5, 0.6), 0.1))

	for i := 0; i < 10; i++ {
		s.AddMaterial(material.NewRandomLambertian(random))
	}
}

// gridCamera looks down at the centre spheres from the front right with a
// shallow depth of field focused just in front of them
func gridCamera(config SceneConfig) *geometry.Camera {
	center := core.NewVec3(3.5, 0.35, 1.0)
	lookAt := core.NewVec3(0, -0.4, -1)

	return geometry.NewCamera(geometry.CameraConfig{
		Center:        center,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   config.AspectRatio(),
		VFov:          40,
		Aperture:      0.06,
		FocusDistance: lookAt.Subtract(center).Length() - 0.5,
	})
}

// centerSpheres adds the three large spheres every grid variant shares
func centerSpheres(s *Scene) {
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, 0)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, 3)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, 1)
}

// NewGridScene creates three large spheres and a 20x20 grid of small spheres
// on an infinite ground plane. random picks the ten random diffuse colors.
func NewGridScene(random *rand.Rand) *Scene {
	s := &Scene{
		Name:       "grid",
		Background: DefaultSky(),
		Config:     SceneConfig{Width: 800, Height: 500},
	}
	s.Camera = gridCamera(s.Config)
	gridMaterials(s, random)

	centerSpheres(s)
	for i := 0; i < 20; i++ {
		x := -5.0 + 0.5*float64(i)
		for j := 0; j < 20; j++ {
			z := -5.0 + 0.5*float64(j)
			s.AddSphere(core.NewVec3(x, -0.4, z), 0.1, (i*20+j)%len(s.Materials))
		}
	}

	s.AddPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), 2)
	return s
}

// NewScatterScene is the grid scene with 300 randomly placed small spheres
// resting on a checkered plane instead of the regular grid
func NewScatterScene(random *rand.Rand) *Scene {
	s := &Scene{
		Name:       "scatter",
		Background: DefaultSky(),
		Config:     SceneConfig{Width: 800, Height: 500},
	}
	s.Camera = gridCamera(s.Config)
	gridMaterials(s, random)

	centerSpheres(s)
	for i := 0; i < 300; i++ {
		x := random.Float64()*10 - 5
		z := random.Float64()*10 - 6
		radius := random.Float64()*0.02 + 0.09
		s.AddSphere(core.NewVec3(x, -0.5+radius, z), radius, random.Intn(len(s.Materials)))
	}

	ground := s.AddMaterial(material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.2, 0.3, 0.1), 10),
	))
	s.AddPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), ground)
	return s
}
