package material

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Layered is a coating over a base, such as varnish over wood or glass over paint.
// The outer material scatters first; only rays it sends inward reach the inner one.
type Layered struct {
	Outer Material
	Inner Material
}

// NewLayered creates a coating of outer over inner
func NewLayered(outer, inner Material) *Layered {
	return &Layered{Outer: outer, Inner: inner}
}

// Scatter returns the coating's scatter when it leaves the surface, otherwise
// the base's scatter of the transmitted ray tinted by both attenuations.
func (l *Layered) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	coat, ok := l.Outer.Scatter(rayIn, hit, sampler)
	if !ok {
		return ScatterResult{}, false
	}

	transmitted := coat.Scattered.Direction.Normalize()
	if transmitted.Dot(hit.Normal) >= 0 {
		return coat, true
	}

	baseHit := *hit
	baseHit.Material = l.Inner
	base, ok := l.Inner.Scatter(core.NewRayAtTime(hit.Point, transmitted, rayIn.Time), &baseHit, sampler)
	if !ok {
		return ScatterResult{}, false
	}

	base.Attenuation = coat.Attenuation.MultiplyVec(base.Attenuation)
	return base, true
}
