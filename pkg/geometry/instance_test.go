package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

func TestInstance_Translate(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	moved := NewTranslate(sphere, core.NewVec3(10, 0, 0))

	bbox := moved.BoundingBox()
	if math.Abs(bbox.X.Min-9) > 1e-9 || math.Abs(bbox.X.Max-11) > 1e-9 {
		t.Errorf("Expected X extent [9, 11], got %v", bbox.X)
	}

	ray := core.NewRay(core.NewVec3(10, 0, 5), core.NewVec3(0, 0, -1))
	var rec material.HitRecord
	if !moved.Hit(ray, testRayT, &rec, nil) {
		t.Fatal("Expected hit on translated sphere")
	}
	if math.Abs(rec.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", rec.T)
	}
	if rec.Point.Subtract(core.NewVec3(10, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected world-space point (10,0,1), got %v", rec.Point)
	}

	// The untranslated position is now empty
	ray = core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if moved.Hit(ray, testRayT, &rec, nil) {
		t.Error("Expected miss at the original position")
	}
}

func TestInstance_RotateY(t *testing.T) {
	// Unit quad in the z=0 plane facing +Z; a quarter turn about Y makes it face +X
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	rotated := NewRotateY(quad, 90)

	ray := core.NewRay(core.NewVec3(5, 0.5, -0.5), core.NewVec3(-1, 0, 0))
	var rec material.HitRecord
	if !rotated.Hit(ray, testRayT, &rec, nil) {
		t.Fatal("Expected hit on rotated quad")
	}
	if math.Abs(rec.T-5) > 1e-9 {
		t.Errorf("Expected t=5, got %f", rec.T)
	}
	if rec.Normal.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected normal (1,0,0), got %v", rec.Normal)
	}
	if rec.Point.Subtract(core.NewVec3(0, 0.5, -0.5)).Length() > 1e-9 {
		t.Errorf("Expected point (0,0.5,-0.5), got %v", rec.Point)
	}
	if !rec.FrontFace {
		t.Error("Expected front face")
	}
}

func TestInstance_RotatedBoundingBox(t *testing.T) {
	box := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), nil)
	rotated := NewInstance(box, core.NewVec3(0, 1, 0), 45, core.NewVec3(0, 2, 0))

	bbox := rotated.BoundingBox()
	if math.Abs(bbox.X.Max-math.Sqrt2) > 1e-9 || math.Abs(bbox.Z.Min+math.Sqrt2) > 1e-9 {
		t.Errorf("Expected X/Z extent of ±√2, got X=%v Z=%v", bbox.X, bbox.Z)
	}
	if math.Abs(bbox.Y.Min-1) > 1e-9 || math.Abs(bbox.Y.Max-3) > 1e-9 {
		t.Errorf("Expected Y extent [1, 3], got %v", bbox.Y)
	}

	// Every hit on the rotated box lies inside its box, up to rounding
	loose := core.NewAABB(bbox.Min().Subtract(core.Splat(1e-9)), bbox.Max().Add(core.Splat(1e-9)))
	sampler := core.NewSeededSampler(8)
	for i := 0; i < 200; i++ {
		origin := core.NewVec3(0, 2, 0).Add(core.RandomUnitVector(sampler).Multiply(6))
		target := core.RandomVec3(sampler, -0.5, 0.5).Add(core.NewVec3(0, 2, 0))
		ray := core.NewRay(origin, target.Subtract(origin))

		var rec material.HitRecord
		if !rotated.Hit(ray, testRayT, &rec, nil) {
			t.Fatalf("Ray aimed at the box interior missed")
		}
		if !loose.Contains(rec.Point) {
			t.Errorf("Hit point %v outside bounding box %v", rec.Point, bbox)
		}
	}
}

func TestInstance_ZeroAxisIsIdentity(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 1, nil)
	inst := NewInstance(sphere, core.Vec3{}, 30, core.Vec3{})

	ray := core.NewRay(core.NewVec3(1, 2, 10), core.NewVec3(0, 0, -1))
	var expected, got material.HitRecord
	sphere.Hit(ray, testRayT, &expected, nil)
	if !inst.Hit(ray, testRayT, &got, nil) {
		t.Fatal("Expected hit")
	}
	if got.Point.Subtract(expected.Point).Length() > 1e-9 || math.Abs(got.T-expected.T) > 1e-9 {
		t.Errorf("Expected %v at t=%f, got %v at t=%f", expected.Point, expected.T, got.Point, got.T)
	}
}
