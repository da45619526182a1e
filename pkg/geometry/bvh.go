package geometry

import (
	"sort"

	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// leafSize is the maximum number of shapes kept in a BVH leaf before
// the builder splits again.
const leafSize = 4

// BVH is a binary bounding volume hierarchy over an arbitrary set of
// shapes, built once via a median split along each node's longest
// axis. It is itself a Shape so meshes can nest inside the top-level
// scene BVH.
type BVH struct {
	box    AABB
	left   *BVH
	right  *BVH
	shapes []Shape
}

// NewBVH builds a tree over shapes. An empty input yields a BVH with
// a degenerate bounding box that never reports a hit.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}
	cp := make([]Shape, len(shapes))
	copy(cp, shapes)
	return build(cp)
}

func build(shapes []Shape) *BVH {
	box := shapes[0].BoundingBox()
	for _, s := range shapes[1:] {
		box = box.Union(s.BoundingBox())
	}

	if len(shapes) <= leafSize {
		return &BVH{box: box, shapes: shapes}
	}

	axis := box.LongestAxis()
	sort.Slice(shapes, func(i, j int) bool {
		return axisValue(shapes[i].BoundingBox().Center(), axis) < axisValue(shapes[j].BoundingBox().Center(), axis)
	})

	mid := len(shapes) / 2
	return &BVH{
		box:   box,
		left:  build(shapes[:mid]),
		right: build(shapes[mid:]),
	}
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if b == nil || !b.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if b.shapes != nil {
		var closest *material.HitRecord
		closestT := tMax
		for _, s := range b.shapes {
			if hit, ok := s.Hit(ray, tMin, closestT); ok {
				closest = hit
				closestT = hit.T
			}
		}
		return closest, closest != nil
	}

	leftHit, leftOK := b.left.Hit(ray, tMin, tMax)
	if leftOK {
		tMax = leftHit.T
	}
	rightHit, rightOK := b.right.Hit(ray, tMin, tMax)
	if rightOK {
		return rightHit, true
	}
	return leftHit, leftOK
}

func (b *BVH) BoundingBox() AABB { return b.box }
