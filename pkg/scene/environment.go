package scene

import (
	"math"

	"github.com/fathomrender/pathtracer/pkg/core"
)

// Environment supplies the radiance returned for rays that escape the
// scene without hitting anything.
type Environment interface {
	Radiance(direction core.Vec3) core.Vec3
}

// ConstantEnvironment returns the same radiance regardless of
// direction -- a flat ambient sky.
type ConstantEnvironment struct {
	Color core.Vec3
}

func (e ConstantEnvironment) Radiance(core.Vec3) core.Vec3 { return e.Color }

// GradientEnvironment interpolates linearly between a horizon and
// zenith color based on the ray direction's vertical component, the
// simplest non-constant sky model.
type GradientEnvironment struct {
	Horizon, Zenith core.Vec3
}

func (e GradientEnvironment) Radiance(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1)
	return e.Horizon.Multiply(1 - t).Add(e.Zenith.Multiply(t))
}

// ImageEnvironment samples a decoded equirectangular HDR image by
// direction. Pixels holds linear RGB in row-major order, top row
// first.
type ImageEnvironment struct {
	Width, Height int
	Pixels        []core.Vec3
}

func (e *ImageEnvironment) Radiance(direction core.Vec3) core.Vec3 {
	if e == nil || len(e.Pixels) == 0 {
		return core.Vec3{}
	}
	d := direction.Normalize()
	u := 0.5 + math.Atan2(d.X, -d.Z)/(2*math.Pi)
	v := 0.5 - math.Asin(clampUnit(d.Y))/math.Pi

	x := int(u * float64(e.Width))
	y := int(v * float64(e.Height))
	x = clampInt(x, 0, e.Width-1)
	y = clampInt(y, 0, e.Height-1)
	return e.Pixels[y*e.Width+x]
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
