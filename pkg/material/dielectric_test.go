package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-tile-tracer/pkg/core"
)

func TestReflectance_NormalIncidence(t *testing.T) {
	r0 := (1 - 1.5) / (1 + 1.5)
	expected := r0 * r0

	if got := Reflectance(1.0, 1.5); math.Abs(got-expected) > 1e-15 {
		t.Errorf("Expected reflectance %f at cos=1, got %f", expected, got)
	}
	if got := Reflectance(0.0, 1.5); math.Abs(got-1.0) > 1e-15 {
		t.Errorf("Expected reflectance 1 at grazing incidence, got %f", got)
	}
}

func TestRefract(t *testing.T) {
	// Straight through at normal incidence
	refracted, ok := Refract(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), 1/1.5)
	if !ok {
		t.Fatal("Expected refraction at normal incidence")
	}
	if refracted.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected undeviated direction, got %v", refracted)
	}

	// Snell's law: n1 sin(θ1) = n2 sin(θ2)
	incoming := core.NewVec3(1, 0, -1)
	refracted, ok = Refract(incoming, core.NewVec3(0, 0, 1), 1/1.5)
	if !ok {
		t.Fatal("Expected refraction entering glass")
	}
	sinIn := math.Sin(math.Pi / 4)
	sinOut := refracted.Normalize().X
	if math.Abs(sinIn-1.5*sinOut) > 1e-12 {
		t.Errorf("Snell's law violated: sin(in)=%f, 1.5*sin(out)=%f", sinIn, 1.5*sinOut)
	}

	// Total internal reflection leaving glass at a shallow angle
	if _, ok := Refract(core.NewVec3(1, 0, 0.1), core.NewVec3(0, 0, -1), 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}

func TestDielectric_NormalIncidenceRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 0, 1)}

	// Above the 4% reflect probability the ray refracts straight through
	scatter, didScatter := glass.Scatter(ray, hit, fixedSampler{0.5})
	if !didScatter {
		t.Fatal("Dielectric should always scatter")
	}
	if scatter.Scattered.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected refraction straight through, got %v", scatter.Scattered.Direction)
	}
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected neutral attenuation, got %v", scatter.Attenuation)
	}

	// Below it the ray reflects straight back
	scatter, _ = glass.Scatter(ray, hit, fixedSampler{0.01})
	if scatter.Scattered.Direction != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected reflection straight back, got %v", scatter.Scattered.Direction)
	}
}

func TestDielectric_ReflectFrequency(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 0, 1)}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	const samples = 20000
	reflected := 0
	for i := 0; i < samples; i++ {
		scatter, _ := glass.Scatter(ray, hit, sampler)
		if scatter.Scattered.Direction.Z > 0 {
			reflected++
		}
	}

	// Binomial with p=0.04: standard deviation is about 0.0014
	if fraction := float64(reflected) / samples; math.Abs(fraction-0.04) > 0.01 {
		t.Errorf("Expected about 4%% reflections, got %.4f", fraction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass, shallow angle to the outward normal
	ray := core.NewRay(core.NewVec3(-1, 0, 0.9), core.NewVec3(1, 0, 0.1))
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 0, 1)}

	for _, value := range []float64{0.0, 0.5, 0.999} {
		scatter, didScatter := glass.Scatter(ray, hit, fixedSampler{value})
		if !didScatter {
			t.Fatal("Dielectric should always scatter")
		}
		expected := core.NewVec3(1, 0, -0.1)
		if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Errorf("sample %f: expected total internal reflection %v, got %v", value, expected, scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_ExitingRefractsAwayFromNormal(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass, steep enough to escape
	ray := core.NewRay(core.NewVec3(-0.3, 0, 0), core.NewVec3(0.3, 0, 1))
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 0, 1)}

	scatter, _ := glass.Scatter(ray, hit, fixedSampler{0.999})
	direction := scatter.Scattered.Direction.Normalize()
	if direction.Z <= 0 {
		t.Fatalf("Expected the ray to leave through the surface, got %v", direction)
	}

	sinIn := ray.Direction.Normalize().X
	if math.Abs(direction.X-1.5*sinIn) > 1e-12 {
		t.Errorf("Expected sin(out) = 1.5*sin(in) = %f, got %f", 1.5*sinIn, direction.X)
	}
}
