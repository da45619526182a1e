// Package teximg decodes texture and HDR environment images from
// disk into the renderer's own linear-RGB pixel buffers.
package teximg

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/material"
	"github.com/fathomrender/pathtracer/pkg/scene"
)

// LoadEnvironment decodes an image file (PNG or JPEG) at path into an
// equirectangular ImageEnvironment, converting sRGB-encoded pixels to
// linear radiance on the way in.
func LoadEnvironment(path string) (*scene.ImageEnvironment, error) {
	w, h, pixels, err := decodeLinear(path)
	if err != nil {
		return nil, err
	}
	return &scene.ImageEnvironment{Width: w, Height: h, Pixels: pixels}, nil
}

// Load decodes an image file into a linear-RGB material.Texture,
// ready to be sampled for a textured material's albedo.
func Load(path string) (*material.Texture, error) {
	w, h, pixels, err := decodeLinear(path)
	if err != nil {
		return nil, err
	}
	return &material.Texture{Width: w, Height: h, Pixels: pixels}, nil
}

// decodeLinear opens and decodes an image file, converting its
// sRGB-encoded pixels to linear radiance.
func decodeLinear(path string) (width, height int, pixels []core.Vec3, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("teximg: open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("teximg: decode %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]core.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out[y*w+x] = core.Vec3{
				X: core.FromSRGB(float64(r) / 0xffff),
				Y: core.FromSRGB(float64(g) / 0xffff),
				Z: core.FromSRGB(float64(b) / 0xffff),
			}
		}
	}
	return w, h, out, nil
}
