// Package scene assembles a camera, intersectable geometry, an
// environment, and render preferences into the immutable, read-only
// world that workers trace rays against. Nothing here mutates once a
// render starts; any per-material caching must be thread-safe or
// thread-local on its own.
package scene

import (
	"fmt"

	"github.com/fathomrender/pathtracer/pkg/camera"
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/geometry"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// Prefs holds the knobs that control a single render: image
// dimensions, sampling budget, path depth, and scheduling.
type Prefs struct {
	ImageWidth      int
	ImageHeight     int
	SamplesPerPixel int
	MaxDepth        int
	TileWidth       int
	TileHeight      int
	WorkerCount     int
	Antialias       bool
	RussianRoulette bool
	RouletteDepth   int
	SeedBase        int64
}

// Scene is the immutable world a render traces against.
type Scene struct {
	Camera      *camera.Camera
	Shapes      *geometry.BVH
	Environment Environment
	Prefs       Prefs
}

// New validates and assembles a Scene. It returns an error for any
// precondition a render cannot safely start without: a missing
// camera, a non-positive image/sample size, or a non-positive max
// depth. A scene with no shapes
// at all is valid -- every ray simply misses and the render reduces
// to filling the image with the environment's radiance.
func New(cam *camera.Camera, shapes []geometry.Shape, env Environment, prefs Prefs) (*Scene, error) {
	if cam == nil {
		return nil, fmt.Errorf("scene: camera is required")
	}
	if prefs.ImageWidth <= 0 || prefs.ImageHeight <= 0 {
		return nil, fmt.Errorf("scene: image dimensions must be positive, got %dx%d", prefs.ImageWidth, prefs.ImageHeight)
	}
	if prefs.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("scene: samples per pixel must be positive, got %d", prefs.SamplesPerPixel)
	}
	if prefs.MaxDepth <= 0 {
		return nil, fmt.Errorf("scene: max depth must be positive, got %d", prefs.MaxDepth)
	}
	if env == nil {
		env = ConstantEnvironment{Color: core.Vec3{}}
	}

	return &Scene{
		Camera:      cam,
		Shapes:      geometry.NewBVH(shapes),
		Environment: env,
		Prefs:       prefs,
	}, nil
}

// Hit intersects a ray against every shape in the scene via the
// top-level BVH.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.Shapes.Hit(ray, tMin, tMax)
}
