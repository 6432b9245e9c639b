package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Material material.Material
	normal   core.Vec3 // Unit normal (U × V)
	d        float64   // Plane equation constant: normal · p = d
	w        core.Vec3 // n / (n·n), used to project hit points onto the (U, V) frame
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	// Both diagonals are needed when the edges point in opposite directions
	diagonal1 := core.NewAABB(corner, corner.Add(u).Add(v))
	diagonal2 := core.NewAABB(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: mat,
		normal:   normal,
		d:        normal.Dot(corner),
		w:        n.Multiply(1.0 / n.Dot(n)),
		bbox:     diagonal1.Union(diagonal2),
	}
}

// Normal returns the unit normal of the quad's plane
func (q *Quad) Normal() core.Vec3 {
	return q.normal
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	denominator := q.normal.Dot(ray.Direction)

	// Parallel rays and degenerate quads never hit
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.d - q.normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))

	if !core.UnitInterval.Contains(alpha) || !core.UnitInterval.Contains(beta) {
		return false
	}

	rec.T = t
	rec.Point = hitPoint
	rec.UV = core.NewVec2(alpha, beta)
	rec.Material = q.Material
	rec.SetFaceNormal(ray, q.normal)
	return true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
