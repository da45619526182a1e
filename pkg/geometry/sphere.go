package geometry

import (
	"math"

	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// Sphere intersects a ray by substituting into |p-c|^2 = r^2 and
// solving the resulting quadratic.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1 / s.Radius)

	theta := math.Acos(-outwardNormal.Y)
	phi := math.Atan2(-outwardNormal.Z, outwardNormal.X) + math.Pi
	uv := core.NewVec2(phi/(2*math.Pi), theta/math.Pi)

	hit := &material.HitRecord{
		T:        root,
		Point:    point,
		UV:       uv,
		Material: s.Material,
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

func (s *Sphere) BoundingBox() AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}
