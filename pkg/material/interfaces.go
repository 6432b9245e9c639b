package material

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Material decides how light leaving a surface or volume point is redirected.
// Implementations are immutable after construction and may be shared by many primitives.
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false if the
	// incoming light is absorbed. The scattered ray keeps rayIn's time.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that inject light into the scene.
// Materials that don't implement it emit nothing.
type Emitter interface {
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is filled in fresh for each intersection query and never shared between rays.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Surface coordinates
	FrontFace bool      // Whether ray hit the outward-facing side
	Material  Material  // Material of the hit object, may be nil
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Scatter dispatches to the hit's material. A nil material absorbs.
func Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	if hit.Material == nil {
		return ScatterResult{}, false
	}
	return hit.Material.Scatter(rayIn, hit, sampler)
}

// Emitted returns the light emitted at the hit, black for non-emissive or nil materials
func Emitted(hit *HitRecord) core.Vec3 {
	if emitter, ok := hit.Material.(Emitter); ok {
		return emitter.Emitted(hit.UV, hit.Point)
	}
	return core.Vec3{}
}
