package geometry

import (
	"math"
	"testing"

	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
)

func TestTriangleHitCenter(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		material.NewLambertian(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, -0.3, 5), core.NewVec3(0, 0, -1))
	hit, ok := tri.Hit(ray, 0.001, 1000)
	if !ok {
		t.Fatal("expected hit through triangle interior")
	}
	if hit.T < 4.9 || hit.T > 5.1 {
		t.Errorf("t = %f, want ~5", hit.T)
	}
}

func TestTriangleMissesOutsideEdges(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		material.NewLambertian(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1))
	if _, ok := tri.Hit(ray, 0.001, 1000); ok {
		t.Error("expected miss outside triangle bounds")
	}
}

func TestTriangleMissesParallelRay(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		material.NewLambertian(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(1, 0, 0))
	if _, ok := tri.Hit(ray, 0.001, 1000); ok {
		t.Error("expected miss for a ray parallel to the triangle plane")
	}
}

func TestTriangleInterpolatesUV(t *testing.T) {
	tri := &Triangle{
		V0: core.NewVec3(-1, -1, 0), V1: core.NewVec3(1, -1, 0), V2: core.NewVec3(0, 1, 0),
		UV0: core.NewVec2(0, 0), UV1: core.NewVec2(1, 0), UV2: core.NewVec2(0.5, 1),
		Normal: core.NewVec3(0, 0, 1),
		Mat:    material.NewLambertian(core.NewVec3(1, 1, 1)),
	}
	ray := core.NewRay(core.NewVec3(1, -1, 5), core.NewVec3(0, 0, -1))
	hit, ok := tri.Hit(ray, 0.001, 1000)
	if !ok {
		t.Fatal("expected hit at V1")
	}
	if d := hit.UV.Subtract(core.NewVec2(1, 0)); math.Abs(d.X) > 1e-6 || math.Abs(d.Y) > 1e-6 {
		t.Errorf("UV at V1 = %v, want (1,0)", hit.UV)
	}
}

func TestTriangleBoundingBox(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -2, 0),
		core.NewVec3(3, -1, 0),
		core.NewVec3(0, 4, 1),
		nil,
	)
	box := tri.BoundingBox()
	if box.Min != (core.Vec3{X: -1, Y: -2, Z: 0}) {
		t.Errorf("min = %v", box.Min)
	}
	if box.Max != (core.Vec3{X: 3, Y: 4, Z: 1}) {
		t.Errorf("max = %v", box.Max)
	}
}
