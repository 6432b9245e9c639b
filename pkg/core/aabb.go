package core

import "math"

// aabbPadding is the minimum thickness of a box along any axis. Flat primitives
// such as axis-aligned quads would otherwise produce zero-width slabs.
const aabbPadding = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB contains no points and is the identity for Union
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB contains every point
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates an AABB from two opposite corners given in any order
func NewAABB(a, b Vec3) AABB {
	box := AABB{
		X: Interval{Min: math.Min(a.X, b.X), Max: math.Max(a.X, b.X)},
		Y: Interval{Min: math.Min(a.Y, b.Y), Max: math.Max(a.Y, b.Y)},
		Z: Interval{Min: math.Min(a.Z, b.Z), Max: math.Max(a.Z, b.Z)},
	}
	return box.padToMinimums()
}

// NewAABBFromIntervals creates an AABB from per-axis intervals
func NewAABBFromIntervals(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}.padToMinimums()
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB
	}

	minP := points[0]
	maxP := points[0]
	for _, point := range points[1:] {
		minP = Vec3{math.Min(minP.X, point.X), math.Min(minP.Y, point.Y), math.Min(minP.Z, point.Z)}
		maxP = Vec3{math.Max(maxP.X, point.X), math.Max(maxP.Y, point.Y), math.Max(maxP.Z, point.Z)}
	}
	return NewAABB(minP, maxP)
}

// padToMinimums widens any axis thinner than aabbPadding. Empty axes are left alone.
func (aabb AABB) padToMinimums() AABB {
	if !aabb.X.IsEmpty() && aabb.X.Size() < aabbPadding {
		aabb.X = aabb.X.Expand(aabbPadding)
	}
	if !aabb.Y.IsEmpty() && aabb.Y.Size() < aabbPadding {
		aabb.Y = aabb.Y.Expand(aabbPadding)
	}
	if !aabb.Z.IsEmpty() && aabb.Z.Size() < aabbPadding {
		aabb.Z = aabb.Z.Expand(aabbPadding)
	}
	return aabb
}

// Axis returns the interval for axis n (0=X, 1=Y, anything else=Z)
func (aabb AABB) Axis(n int) Interval {
	switch n {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return Vec3{aabb.X.Min, aabb.Y.Min, aabb.Z.Min}
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return Vec3{aabb.X.Max, aabb.Y.Max, aabb.Z.Max}
}

// Hit tests if a ray intersects the box within rayT using the slab method.
// The interval is narrowed axis by axis and the test fails as soon as it becomes empty.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Parallel to this slab: either always inside it or never
		if direction == 0 {
			if origin < slab.Min || origin > slab.Max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// Union returns the smallest AABB that bounds both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: aabb.X.Union(other.X),
		Y: aabb.Y.Union(other.Y),
		Z: aabb.Z.Union(other.Z),
	}
}

// Contains reports whether point lies inside the box (boundary included)
func (aabb AABB) Contains(point Vec3) bool {
	return aabb.X.Contains(point.X) && aabb.Y.Contains(point.Y) && aabb.Z.Contains(point.Z)
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Vec3 {
	return Vec3{
		X: 0.5 * (aabb.X.Min + aabb.X.Max),
		Y: 0.5 * (aabb.Y.Min + aabb.Y.Max),
		Z: 0.5 * (aabb.Z.Min + aabb.Z.Max),
	}
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return Vec3{aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()}
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
// Ties go to the later axis, which keeps BVH shapes reproducible.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y {
		if x > z {
			return 0
		}
		return 2
	}
	if y > z {
		return 1
	}
	return 2
}

// IsEmpty reports whether the box contains no points
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}

// Translate returns the box shifted by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}
