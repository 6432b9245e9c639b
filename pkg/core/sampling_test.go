package core

import (
	"math"
	"testing"
)

func TestRandomUnitVector_IsUnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d: expected unit length, got %f", i, v.Length())
		}
	}
}

func TestRandomInUnitSphere_StaysInside(t *testing.T) {
	sampler := NewSeededSampler(7)
	var sum Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(sampler)
		if p.Length() > 1+1e-12 {
			t.Fatalf("Sample %d outside unit sphere: %v", i, p)
		}
		sum = sum.Add(p)
	}

	// Uniform samples average to the center
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestRandomOnHemisphere(t *testing.T) {
	sampler := NewSeededSampler(1)
	normal := NewVec3(0, 0, 1)
	for i := 0; i < 1000; i++ {
		if d := RandomOnHemisphere(sampler, normal); d.Dot(normal) < 0 {
			t.Fatalf("Sample %d below hemisphere: %v", i, d)
		}
	}
}

func TestRandomVec3_Range(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		v := RandomVec3(sampler, -2, 3)
		for axis := 0; axis < 3; axis++ {
			c := v.Axis(axis)
			if c < -2 || c >= 3 {
				t.Fatalf("Component %f out of [-2,3)", c)
			}
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed diverged")
		}
	}
}
