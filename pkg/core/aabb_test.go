package core

import (
	"math"
	"testing"
)

func TestInterval_Membership(t *testing.T) {
	i := NewInterval(0, 1)

	if !i.Contains(0) || !i.Contains(1) {
		t.Error("Closed interval should contain its bounds")
	}
	if i.Surrounds(0) || i.Surrounds(1) {
		t.Error("Open test should exclude the bounds")
	}
	if !i.Surrounds(0.5) {
		t.Error("Expected 0.5 inside ]0,1[")
	}
	if got := i.Clamp(2); got != 1 {
		t.Errorf("Expected clamp to 1, got %f", got)
	}
	if got := i.Clamp(-2); got != 0 {
		t.Errorf("Expected clamp to 0, got %f", got)
	}

	if !EmptyInterval.IsEmpty() {
		t.Error("EmptyInterval should be empty")
	}
	if EmptyInterval.Contains(0) {
		t.Error("EmptyInterval should contain nothing")
	}
	if u := EmptyInterval.Union(i); u != i {
		t.Errorf("Empty should be the union identity, got %v", u)
	}
}

func TestAABB_PadsFlatBoxes(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 0))
	if box.Z.Size() < aabbPadding {
		t.Errorf("Expected flat axis padded to at least %g, got %g", aabbPadding, box.Z.Size())
	}
	if box.Z.Min >= 0 || box.Z.Max <= 0 {
		t.Errorf("Expected padding to straddle the plane, got %v", box.Z)
	}
	if box.X.Size() != 1 {
		t.Errorf("Expected thick axis untouched, got %g", box.X.Size())
	}
}

func TestAABB_CornerOrderIrrelevant(t *testing.T) {
	a := NewAABB(NewVec3(1, 2, 3), NewVec3(-1, -2, -3))
	b := NewAABB(NewVec3(-1, -2, -3), NewVec3(1, 2, 3))
	if a != b {
		t.Errorf("Expected identical boxes, got %v and %v", a, b)
	}
}

func TestAABB_UnionInvariant(t *testing.T) {
	sampler := NewSeededSampler(42)

	for i := 0; i < 200; i++ {
		a := NewAABB(RandomVec3(sampler, -10, 10), RandomVec3(sampler, -10, 10))
		b := NewAABB(RandomVec3(sampler, -10, 10), RandomVec3(sampler, -10, 10))
		u := a.Union(b)

		// Every corner of both boxes is contained
		for _, box := range []AABB{a, b} {
			for _, corner := range []Vec3{box.Min(), box.Max()} {
				if !u.Contains(corner) {
					t.Fatalf("Union %v does not contain corner %v", u, corner)
				}
			}
		}

		// And the union is the tightest such box
		for axis := 0; axis < 3; axis++ {
			expectedMin := math.Min(a.Axis(axis).Min, b.Axis(axis).Min)
			expectedMax := math.Max(a.Axis(axis).Max, b.Axis(axis).Max)
			if u.Axis(axis).Min != expectedMin || u.Axis(axis).Max != expectedMax {
				t.Fatalf("Axis %d: expected [%f,%f], got %v", axis, expectedMin, expectedMax, u.Axis(axis))
			}
		}
	}

	if got := EmptyAABB.Union(NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))); got.Min() != NewVec3(0, 0, 0) || got.Max() != NewVec3(1, 1, 1) {
		t.Errorf("EmptyAABB should be the union identity, got %v", got)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{
			name:     "through center",
			ray:      NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)),
			rayT:     NewInterval(0, 100),
			expected: true,
		},
		{
			name:     "negative direction components",
			ray:      NewRay(NewVec3(5, 5, 5), NewVec3(-1, -1, -1)),
			rayT:     NewInterval(0, 100),
			expected: true,
		},
		{
			name:     "parallel and offset",
			ray:      NewRay(NewVec3(2, 0, 5), NewVec3(0, 0, -1)),
			rayT:     NewInterval(0, 100),
			expected: false,
		},
		{
			name:     "parallel inside slab",
			ray:      NewRay(NewVec3(0.5, 0.5, 5), NewVec3(0, 0, -1)),
			rayT:     NewInterval(0, 100),
			expected: true,
		},
		{
			name:     "box behind ray",
			ray:      NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)),
			rayT:     NewInterval(0, 100),
			expected: false,
		},
		{
			name:     "interval ends before box",
			ray:      NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)),
			rayT:     NewInterval(0, 3),
			expected: false,
		},
		{
			name:     "origin inside box",
			ray:      NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3)),
			rayT:     NewInterval(0.001, math.Inf(1)),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_HitFlatBox(t *testing.T) {
	// A quad-like box lying in z=0 must still be hit head-on
	box := NewAABB(NewVec3(-1, -1, 0), NewVec3(1, 1, 0))
	ray := NewRay(NewVec3(0, 0, 1), NewVec3(0, 0, -1))
	if !box.Hit(ray, NewInterval(0.001, 10)) {
		t.Error("Expected padded flat box to be hit")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		size     Vec3
		expected int
	}{
		{"x longest", NewVec3(3, 2, 1), 0},
		{"y longest", NewVec3(1, 3, 2), 1},
		{"z longest", NewVec3(1, 2, 3), 2},
		{"x y tie goes to y", NewVec3(2, 2, 1), 1},
		{"y z tie goes to z", NewVec3(1, 2, 2), 2},
		{"x z tie goes to z", NewVec3(2, 1, 2), 2},
		{"cube goes to z", NewVec3(1, 1, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABB(Vec3{}, tt.size)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected axis %d, got %d", tt.expected, got)
			}
		})
	}
}
