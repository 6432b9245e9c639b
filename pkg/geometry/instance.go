package geometry

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
)

// Instance places a shared object in the world with a rotation followed by a translation.
// Rays are moved into object space, so the wrapped geometry is never copied.
type Instance struct {
	Object   Hittable
	Offset   core.Vec3
	rotation mgl64.Quat
	inverse  mgl64.Quat
	bbox     core.AABB
}

// NewInstance rotates object by angleDegrees about axis (through the origin), then translates it by offset
func NewInstance(object Hittable, axis core.Vec3, angleDegrees float64, offset core.Vec3) *Instance {
	rotation := mgl64.QuatIdent()
	if n := axis.Normalize(); n != (core.Vec3{}) {
		rotation = mgl64.QuatRotate(mgl64.DegToRad(angleDegrees), toMgl(n)).Normalize()
	}

	inst := &Instance{
		Object:   object,
		Offset:   offset,
		rotation: rotation,
		inverse:  rotation.Inverse(),
	}
	inst.bbox = inst.transformBox(object.BoundingBox())
	return inst
}

// NewRotateY rotates object about the Y axis
func NewRotateY(object Hittable, angleDegrees float64) *Instance {
	return NewInstance(object, core.NewVec3(0, 1, 0), angleDegrees, core.Vec3{})
}

// NewTranslate moves object by offset
func NewTranslate(object Hittable, offset core.Vec3) *Instance {
	return NewInstance(object, core.Vec3{}, 0, offset)
}

// Hit transforms the ray into object space and the hit back into world space.
// Rotation preserves length, so t and the front-face flag carry over unchanged.
func (inst *Instance) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	localRay := core.NewRayAtTime(
		inst.toLocal(ray.Origin.Subtract(inst.Offset)),
		inst.toLocal(ray.Direction),
		ray.Time,
	)

	if !inst.Object.Hit(localRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = inst.toWorld(rec.Point).Add(inst.Offset)
	rec.Normal = inst.toWorld(rec.Normal)
	return true
}

// BoundingBox returns the world-space box around the transformed object box
func (inst *Instance) BoundingBox() core.AABB {
	return inst.bbox
}

func (inst *Instance) toLocal(v core.Vec3) core.Vec3 {
	return fromMgl(inst.inverse.Rotate(toMgl(v)))
}

func (inst *Instance) toWorld(v core.Vec3) core.Vec3 {
	return fromMgl(inst.rotation.Rotate(toMgl(v)))
}

// transformBox bounds the eight transformed corners of box
func (inst *Instance) transformBox(box core.AABB) core.AABB {
	if box.IsEmpty() {
		return box
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					pick(box.X, i),
					pick(box.Y, j),
					pick(box.Z, k),
				)
				corners = append(corners, inst.toWorld(corner).Add(inst.Offset))
			}
		}
	}
	return core.NewAABBFromPoints(corners...)
}

func pick(interval core.Interval, i int) float64 {
	if i == 0 {
		return interval.Min
	}
	return interval.Max
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
