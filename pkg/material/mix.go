package material

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Mix scatters with B on a Ratio fraction of hits and with A on the rest.
// On average this is the linear blend of the two materials.
type Mix struct {
	A, B  Material
	Ratio float64
}

// NewMix blends a and b; ratio is clamped to [0, 1] and 1 means all b
func NewMix(a, b Material, ratio float64) *Mix {
	return &Mix{A: a, B: b, Ratio: core.UnitInterval.Clamp(ratio)}
}

// Scatter picks one of the two materials per hit
func (m *Mix) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	chosen := m.A
	if sampler.Get1D() < m.Ratio {
		chosen = m.B
	}
	return chosen.Scatter(rayIn, hit, sampler)
}

// Emitted is the ratio-weighted sum of the emission of both materials
func (m *Mix) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	emission := func(mat Material) core.Vec3 {
		if emitter, ok := mat.(Emitter); ok {
			return emitter.Emitted(uv, point)
		}
		return core.Vec3{}
	}
	return emission(m.A).Multiply(1 - m.Ratio).Add(emission(m.B).Multiply(m.Ratio))
}
