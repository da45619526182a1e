package geometry

import (
	"fmt"

	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// TriangleMesh is a collection of triangles sharing one material,
// indexed by a BVH for logarithmic-time intersection. Construct one
// with NewTriangleMesh once positions/indices are loaded, then use it
// as a single Shape in the top-level scene BVH.
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
	bbox      AABB
}

// NewTriangleMesh builds a mesh from a flat position array and
// triangle-index triples. normals/uvs may be nil; when present they
// must have one entry per position. Each face's three vertex normals
// are averaged into one flat face normal (no per-hit interpolation);
// UVs are interpolated barycentrically at each hit. Without normals
// the face normal comes from the winding order. Returns an error if
// indices reference out-of-range
// vertices or don't come in triples.
func NewTriangleMesh(positions []core.Vec3, indices []int, normals []core.Vec3, uvs []core.Vec2, mat material.Material) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangle mesh: index count %d is not a multiple of 3", len(indices))
	}
	triCount := len(indices) / 3
	triangles := make([]*Triangle, 0, triCount)
	shapes := make([]Shape, 0, triCount)

	for f := 0; f < triCount; f++ {
		i0, i1, i2 := indices[f*3], indices[f*3+1], indices[f*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("triangle mesh: index %d out of range for %d positions", idx, len(positions))
			}
		}
		v0, v1, v2 := positions[i0], positions[i1], positions[i2]

		tri := &Triangle{V0: v0, V1: v1, V2: v2, Mat: mat}
		if normals != nil {
			tri.Normal = normals[i0].Add(normals[i1]).Add(normals[i2]).Normalize()
		} else {
			tri.Normal = computeNormal(v0, v1, v2)
		}
		if uvs != nil {
			tri.UV0, tri.UV1, tri.UV2 = uvs[i0], uvs[i1], uvs[i2]
		}

		triangles = append(triangles, tri)
		shapes = append(shapes, tri)
	}

	bvh := NewBVH(shapes)
	bbox := bvh.BoundingBox()
	if len(shapes) == 0 {
		bbox = AABB{}
	}

	return &TriangleMesh{triangles: triangles, bvh: bvh, bbox: bbox}, nil
}

func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.bvh == nil {
		return nil, false
	}
	return m.bvh.Hit(ray, tMin, tMax)
}

func (m *TriangleMesh) BoundingBox() AABB { return m.bbox }

// TriangleCount reports how many faces the mesh contains.
func (m *TriangleMesh) TriangleCount() int { return len(m.triangles) }
