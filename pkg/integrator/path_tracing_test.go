package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/geometry"
	"github.com/df07/go-tile-tracer/pkg/material"
	"github.com/df07/go-tile-tracer/pkg/scene"
)

// createTestScene builds and preprocesses a scene around the given materials
func createTestScene(t *testing.T, setup func(s *scene.Scene)) *scene.Scene {
	t.Helper()
	s := &scene.Scene{
		Name:       "test",
		Camera:     geometry.NewViewportCamera(core.Vec3{}, core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0)),
		Background: scene.DefaultSky(),
	}
	setup(s)
	if err := s.Preprocess(geometry.DefaultAggregateOptions()); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	return s
}

// countingMaterial wraps a material and counts Scatter calls
type countingMaterial struct {
	material.Material
	calls int
}

func (c *countingMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	c.calls++
	return c.Material.Scatter(rayIn, hit, sampler)
}

func TestPathTracing_MissReturnsSky(t *testing.T) {
	sc := createTestScene(t, func(s *scene.Scene) {
		diffuse := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
		s.AddSphere(core.NewVec3(0, 0, -5), 1, diffuse)
	})
	integrator := NewPathTracingIntegrator(DefaultPathTracerConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	color := integrator.RayColor(ray, sc, sampler)
	if color != sc.Background.Color(ray) {
		t.Errorf("Expected sky color %v, got %v", sc.Background.Color(ray), color)
	}
}

func TestPathTracing_AbsorptionReturnsBlack(t *testing.T) {
	sc := createTestScene(t, func(s *scene.Scene) {
		absorber := s.AddMaterial(material.Null{})
		s.AddSphere(core.NewVec3(0, 0, -5), 1, absorber)
	})
	integrator := NewPathTracingIntegrator(DefaultPathTracerConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, sampler)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black from an absorbing surface, got %v", color)
	}
}

func TestPathTracing_MirrorAttenuatesSky(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	sc := createTestScene(t, func(s *scene.Scene) {
		mirror := s.AddMaterial(material.NewMetal(albedo, 0))
		s.AddPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), mirror)
	})
	integrator := NewPathTracingIntegrator(DefaultPathTracerConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	// Reflected ray heads up at the same angle and escapes
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, -1, 0))
	expected := albedo.MultiplyVec(sc.Background.Color(core.NewRay(core.Vec3{}, core.NewVec3(1, 1, 0))))

	color := integrator.RayColor(ray, sc, sampler)
	if color.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPathTracing_FacingMirrorsTerminate(t *testing.T) {
	counter := &countingMaterial{Material: material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)}
	sc := createTestScene(t, func(s *scene.Scene) {
		mirror := s.AddMaterial(counter)
		s.AddPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), mirror)
		s.AddPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), mirror)
	})
	config := DefaultPathTracerConfig()
	integrator := NewPathTracingIntegrator(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	// Bounces back and forth along z forever without the depth cap
	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, sampler)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black once the depth cap triggers, got %v", color)
	}
	if counter.calls != config.MaxDepth+1 {
		t.Errorf("Expected %d scatter events, got %d", config.MaxDepth+1, counter.calls)
	}
}

func TestPathTracing_DepthCap(t *testing.T) {
	sc := createTestScene(t, func(s *scene.Scene) {
		diffuse := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
		s.AddSphere(core.NewVec3(0, 0, -2), 0.5, diffuse)
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	// Depth 0 gathers no light at all
	integrator := NewPathTracingIntegrator(PathTracerConfig{MaxDepth: -1, TMin: 1e-4, TMax: 1000})
	if color := integrator.RayColor(ray, sc, sampler); color != (core.Vec3{}) {
		t.Errorf("Expected black with a negative depth cap, got %v", color)
	}

	// One bounce off a diffuse sphere sees the sky, attenuated by the albedo
	integrator = NewPathTracingIntegrator(DefaultPathTracerConfig())
	for i := 0; i < 100; i++ {
		color := integrator.RayColor(ray, sc, sampler)
		if color.X <= 0 || color.X > 0.5+1e-9 || math.IsNaN(color.X) {
			t.Fatalf("Expected color in (0, 0.5], got %v", color)
		}
	}
}

func TestPathTracing_TMinAvoidsSelfIntersection(t *testing.T) {
	sc := createTestScene(t, func(s *scene.Scene) {
		diffuse := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
		s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), diffuse)
	})
	integrator := NewPathTracingIntegrator(DefaultPathTracerConfig())

	// A ray starting on the plane and leaving it must not hit it again
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	if color := integrator.RayColor(ray, sc, sampler); color != sc.Background.Color(ray) {
		t.Errorf("Expected sky, got %v", color)
	}
}
