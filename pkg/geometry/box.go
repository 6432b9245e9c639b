package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// NewBox returns the six outward-facing quads of the axis-aligned box
// spanned by two opposite corners a and b.
func NewBox(a, b core.Vec3, mat material.Material) *HittableList {
	minP := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	maxP := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(maxP.X-minP.X, 0, 0)
	dy := core.NewVec3(0, maxP.Y-minP.Y, 0)
	dz := core.NewVec3(0, 0, maxP.Z-minP.Z)

	return NewHittableList(
		NewQuad(core.NewVec3(minP.X, minP.Y, maxP.Z), dx, dy, mat),          // front (Z+)
		NewQuad(core.NewVec3(maxP.X, minP.Y, maxP.Z), dz.Negate(), dy, mat), // right (X+)
		NewQuad(core.NewVec3(maxP.X, minP.Y, minP.Z), dx.Negate(), dy, mat), // back (Z-)
		NewQuad(core.NewVec3(minP.X, minP.Y, minP.Z), dz, dy, mat),          // left (X-)
		NewQuad(core.NewVec3(minP.X, maxP.Y, maxP.Z), dx, dz.Negate(), mat), // top (Y+)
		NewQuad(core.NewVec3(minP.X, minP.Y, minP.Z), dx, dz, mat),          // bottom (Y-)
	)
}
