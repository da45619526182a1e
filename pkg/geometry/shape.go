// Package geometry implements the intersection oracle: a sphere
// primitive, a BVH-accelerated triangle mesh, and the BVH itself that
// both share.
package geometry

import (
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// Shape is anything the BVH can intersect against a ray, returning a
// hit record or a miss.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() AABB
}
