package material

import (
	"math"

	"github.com/fathomrender/pathtracer/pkg/core"
)

// Texture is a decoded 2D image sampled in linear RGB by UV
// coordinate, used for a material's albedo map. Pixels holds linear
// RGB in row-major order, top row first.
type Texture struct {
	Width, Height int
	Pixels        []core.Vec3
}

// Sample bilinearly interpolates the texture at UV coordinates
// (u,v) in [0,1], wrapping at the edges. A nil or empty texture
// samples as black.
func (t *Texture) Sample(u, v float64) core.Vec3 {
	if t == nil || len(t.Pixels) == 0 {
		return core.Vec3{}
	}
	u = wrapUnit(u)
	v = wrapUnit(v)

	fx := u * float64(t.Width)
	fy := v * float64(t.Height)
	x0 := int(math.Floor(fx)) % t.Width
	y0 := int(math.Floor(fy)) % t.Height
	x1 := (x0 + 1) % t.Width
	y1 := (y0 + 1) % t.Height
	tx := fx - math.Floor(fx)
	ty := fy - math.Floor(fy)

	c00 := t.Pixels[y0*t.Width+x0]
	c10 := t.Pixels[y0*t.Width+x1]
	c01 := t.Pixels[y1*t.Width+x0]
	c11 := t.Pixels[y1*t.Width+x1]

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	return v
}
