package geometry

import (
	"math"

	"github.com/fathomrender/pathtracer/pkg/core"
)

// AABB is an axis-aligned bounding box, used by the BVH to prune
// ray-shape tests.
type AABB struct {
	Min, Max core.Vec3
}

func NewAABB(min, max core.Vec3) AABB { return AABB{Min: min, Max: max} }

func NewAABBFromPoints(points ...core.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return AABB{Min: min, Max: max}
}

// Hit tests the box against a ray using the slab method.
func (b AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < 1e-12 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return false
			}
			continue
		}
		invD := 1 / dir[axis]
		t1 := (lo[axis] - origin[axis]) * invD
		t2 := (hi[axis] - origin[axis]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

func (b AABB) Center() core.Vec3 { return b.Min.Midpoint(b.Max) }

func (b AABB) Size() core.Vec3 { return b.Max.Subtract(b.Min) }

// LongestAxis returns 0/1/2 for the axis (X/Y/Z) with the greatest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

func (b AABB) axisExtent(axis int) (lo, hi float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}
