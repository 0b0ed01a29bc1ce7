package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tile-tracer/pkg/core"
)

func TestInfinitePlane_Hit_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0
	plane := NewInfinitePlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 2)

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Point.Length() > 1e-9 {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}
	if hit.Material != 2 {
		t.Errorf("Expected material 2, got %d", hit.Material)
	}
}

func TestInfinitePlane_Hit_ConstantNormal(t *testing.T) {
	plane := NewInfinitePlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), 0)

	// From below the normal is still the plane's own normal
	ray := core.NewRay(core.NewVec3(3, -2, 1), core.NewVec3(0.2, 1, 0))
	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit from below")
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected constant normal (0, 1, 0), got %v", hit.Normal)
	}
	if math.Abs(hit.Point.Y+0.5) > 1e-9 {
		t.Errorf("Expected hit on the plane, got %v", hit.Point)
	}
}

func TestInfinitePlane_Hit_ParallelRay(t *testing.T) {
	plane := NewInfinitePlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))
	if hit, isHit := plane.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss for parallel ray, but got hit at t=%f", hit.T)
	}

	// Parallel and lying inside the plane is still no hit
	ray = core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if _, isHit := plane.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Expected miss for a ray lying in the plane")
	}
}

func TestInfinitePlane_Hit_BehindRay(t *testing.T) {
	plane := NewInfinitePlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	if hit, isHit := plane.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss for plane behind ray, got t=%f", hit.T)
	}
}

func TestInfinitePlane_Hit_Window(t *testing.T) {
	plane := NewInfinitePlane(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := plane.Hit(ray, 0.001, 4.0); isHit {
		t.Error("Expected miss when plane is beyond tMax")
	}
	if _, isHit := plane.Hit(ray, 0.001, 6.0); !isHit {
		t.Error("Expected hit when plane is inside the window")
	}
}
