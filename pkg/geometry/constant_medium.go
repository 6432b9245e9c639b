package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// mediumExitOffset separates the search for the exit crossing from the entry crossing
const mediumExitOffset = 0.0001

// ConstantMedium is a homogeneous participating medium, such as smoke or fog,
// filling the inside of a closed boundary.
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium with a solid-color isotropic phase function
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose albedo is given by a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1.0 / density,
	}
}

// Hit samples an exponential free-flight distance through the boundary.
// The ray passes through untouched when the distance exceeds the path length inside.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	var entry, exit material.HitRecord

	if !m.Boundary.Hit(ray, core.UniverseInterval, &entry, sampler) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(entry.T+mediumExitOffset, math.Inf(1)), &exit, sampler) {
		return false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = t1 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(0, 1, 0) // arbitrary
	rec.FrontFace = true               // arbitrary
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction
	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
