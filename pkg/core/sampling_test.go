package core

import (
	"math/rand"
	"testing"
)

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var sum Vec3
	const n = 10000
	for i := 0; i < n; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-9 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
		sum = sum.Add(p)
	}

	// Uniform samples should average out near the origin
	if mean := sum.Multiply(1.0 / n); mean.Length() > 0.05 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 10000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Disk sample %v should lie in the z=0 plane", p)
		}
		if p.Length() > 1+1e-9 {
			t.Fatalf("Point %v lies outside the unit disk", p)
		}
	}

	if center := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); center != (Vec3{}) {
		t.Errorf("Expected the center sample to map to the origin, got %v", center)
	}
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		v := sampler.Get1D()
		if v < 0 || v >= 1 {
			t.Fatalf("Get1D out of range: %f", v)
		}
	}
}
