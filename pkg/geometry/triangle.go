package geometry

import (
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// Triangle is a single triangle sharing a material with its parent
// mesh; TriangleMesh builds one of these per face and hands the slice
// to the BVH.
type Triangle struct {
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 core.Vec2
	Normal        core.Vec3
	Mat           material.Material
}

const triangleEpsilon = 1e-8

// Hit implements the Möller-Trumbore ray-triangle intersection.
func (tr *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		return nil, false // ray parallel to triangle
	}

	f := 1 / a
	s := ray.Origin.Subtract(tr.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return nil, false
	}

	w := 1 - u - v
	uv := tr.UV0.Multiply(w).Add(tr.UV1.Multiply(u)).Add(tr.UV2.Multiply(v))

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       uv,
		Material: tr.Mat,
	}
	hit.SetFaceNormal(ray, tr.Normal)
	return hit, true
}

func (tr *Triangle) BoundingBox() AABB {
	return NewAABBFromPoints(tr.V0, tr.V1, tr.V2)
}

func computeNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// NewTriangle builds a triangle with a flat face normal and default
// (zero) UVs.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, Normal: computeNormal(v0, v1, v2), Mat: mat}
}
