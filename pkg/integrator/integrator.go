// Package integrator implements the recursive Monte Carlo radiance
// estimator at the heart of the renderer: L(ray, scene, depth, ...).
package integrator

import (
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
	"github.com/fathomrender/pathtracer/pkg/scene"
)

const surfaceEpsilon = 1e-4

// Options controls integrator behavior beyond the fixed depth bound.
// RussianRoulette is off by default: bounces are depth-bounded, never
// stochastically terminated, unless a caller opts in.
type Options struct {
	RussianRoulette bool
	RouletteDepth   int
}

// L estimates the radiance arriving along ray, recursing through
// scattering events up to maxDepth. depth is the current recursion
// level (0 at the primary ray).
func L(ray core.Ray, sc *scene.Scene, depth, maxDepth int, rng *core.Rng, opts Options) core.Vec3 {
	if depth > maxDepth {
		return core.Vec3{}
	}
	if !ray.Direction.IsFinite() || ray.Direction.IsZero() {
		return sc.Environment.Radiance(ray.Direction)
	}

	hit, ok := sc.Hit(ray, surfaceEpsilon, core.Infinity)
	if !ok {
		return sc.Environment.Radiance(ray.Direction)
	}

	var emitted core.Vec3
	if e, ok := hit.Material.(material.Emitter); ok {
		emitted = e.Emit()
	}
	if !emitted.IsFinite() {
		emitted = core.Vec3{}
	}

	result, scattered := hit.Material.Scatter(ray, *hit, rng)
	if !scattered || result.Weight.IsZero() {
		return emitted
	}

	weight := result.Weight
	if opts.RussianRoulette && depth >= opts.RouletteDepth {
		survive := clampProbability(weight.Luminance())
		if rng.Get1D() >= survive {
			return emitted
		}
		weight = weight.Multiply(1 / survive)
	}

	incoming := L(result.Scattered, sc, depth+1, maxDepth, rng, opts)
	if !incoming.IsFinite() {
		return emitted
	}

	radiance := emitted.Add(weight.MultiplyVec(incoming))
	if !radiance.IsFinite() {
		return core.Vec3{}
	}
	return radiance
}

func clampProbability(p float64) float64 {
	if p < 0.05 {
		return 0.05
	}
	if p > 1 {
		return 1
	}
	return p
}
