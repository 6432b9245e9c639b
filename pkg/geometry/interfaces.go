package geometry

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// Hittable is anything a ray can be intersected with: a primitive, a list, or a BVH.
// Implementations are immutable after construction and safe for concurrent Hit calls.
type Hittable interface {
	// Hit reports the closest intersection with t strictly inside rayT.
	// rec is only written when Hit returns true. sampler is used by
	// volumes that need randomness and is owned by the calling goroutine.
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool
	BoundingBox() core.AABB
}
