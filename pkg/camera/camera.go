// Package camera generates primary rays for a thin-lens (or, at zero
// aperture, pinhole) camera model.
package camera

import (
	"math"

	"github.com/fathomrender/pathtracer/pkg/core"
)

// Camera holds the fixed parameters of a view: where it sits, which
// way it looks, its field of view, and its lens geometry. Rotation is
// baked into Left/Up/Forward once at construction so ray generation
// never has to re-derive a basis per sample.
type Camera struct {
	Position      core.Vec3
	Left, Up      core.Vec3
	Forward       core.Vec3
	FocalLength   float64
	Aperture      float64
	FocalDistance float64
	ImageWidth    int
	ImageHeight   int
}

// New builds a camera looking from lookFrom toward lookAt, with the
// given vertical field of view in degrees, image dimensions, lens
// aperture (0 disables depth of field), and focal distance.
func New(lookFrom, lookAt, worldUp core.Vec3, vFovDegrees float64, imageWidth, imageHeight int, aperture, focalDistance float64) *Camera {
	forward := lookAt.Subtract(lookFrom).Normalize()
	left := worldUp.Cross(forward).Normalize()
	up := forward.Cross(left)

	theta := vFovDegrees * math.Pi / 180
	focalLength := float64(imageHeight) / (2 * math.Tan(theta/2))

	return &Camera{
		Position:      lookFrom,
		Left:          left,
		Up:            up,
		Forward:       forward,
		FocalLength:   focalLength,
		Aperture:      aperture,
		FocalDistance: focalDistance,
		ImageWidth:    imageWidth,
		ImageHeight:   imageHeight,
	}
}

// Ray generates a primary ray through pixel (x,y). When jitter is
// true, (x,y) is perturbed by independent draws in [-1/4, 1/4] before
// the direction is computed, for antialiasing. The (possibly jittered)
// coordinate maps to the camera-space direction ((x-W/2)/f, (y-H/2)/f, 1)
// with no half-pixel offset. rng supplies every
// random draw this call needs (jitter, then lens sampling if the
// aperture is nonzero).
func (c *Camera) Ray(x, y int, jitter bool, rng *core.Rng) core.Ray {
	px, py := float64(x), float64(y)
	if jitter {
		px += rng.RangeFloat64(-0.25, 0.25)
		py += rng.RangeFloat64(-0.25, 0.25)
	}

	dirCamera := core.NewVec3(
		(px-float64(c.ImageWidth)/2)/c.FocalLength,
		(py-float64(c.ImageHeight)/2)/c.FocalLength,
		1,
	).Normalize()

	direction := c.toWorld(dirCamera).Normalize()
	origin := c.Position

	if c.Aperture > 0 {
		focalPoint := origin.Add(direction.Multiply(c.FocalDistance / dirCamera.Z))

		lensSample := core.SampleUnitDisc(rng.Get2D()).Multiply(c.Aperture)
		origin = origin.Add(c.Left.Multiply(lensSample.X)).Add(c.Up.Multiply(lensSample.Y))

		direction = focalPoint.Subtract(origin).Normalize()
	}

	return core.NewRay(origin, direction)
}

// toWorld rotates a camera-space direction into world space using the
// camera's left/up/forward basis.
func (c *Camera) toWorld(d core.Vec3) core.Vec3 {
	return c.Left.Multiply(d.X).Add(c.Up.Multiply(d.Y)).Add(c.Forward.Multiply(d.Z))
}
