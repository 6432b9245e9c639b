package material

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Metal reflects specularly. Fuzz perturbs the mirror direction by a random
// vector inside a sphere of that radius: 0 is a perfect mirror, 1 is brushed.
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64
}

// NewMetal creates a metal; fuzz is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: core.UnitInterval.Clamp(fuzz)}
}

// Scatter mirrors the incoming direction about the normal. Rays fuzzed
// below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := core.Reflect(rayIn.Direction, hit.Normal).Normalize()
	if m.Fuzz > 0 {
		direction = direction.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))
	}

	result := ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: m.Albedo,
	}
	return result, direction.Dot(hit.Normal) > 0
}
