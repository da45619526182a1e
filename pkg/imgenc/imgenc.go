// Package imgenc writes a rendered framebuffer's 8-bit sRGB display
// image out to disk as PNG or BMP.
package imgenc

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
)

// ToImage wraps an RGB byte buffer (width*height*3 bytes, row-major,
// top-to-bottom) in a standard library image.Image for encoding.
func ToImage(width, height int, rgb []byte) (*image.RGBA, error) {
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("imgenc: pixel buffer has %d bytes, want %d for %dx%d", len(rgb), width*height*3, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = rgb[i*3+0]
		img.Pix[i*4+1] = rgb[i*3+1]
		img.Pix[i*4+2] = rgb[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

// WritePNG encodes a width x height RGB byte buffer as a PNG file.
func WritePNG(path string, width, height int, rgb []byte) error {
	img, err := ToImage(width, height, rgb)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgenc: create %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("imgenc: encode png %q: %w", path, err)
	}
	return f.Close()
}

// WriteBMP encodes a width x height RGB byte buffer as a BMP file.
func WriteBMP(path string, width, height int, rgb []byte) error {
	img, err := ToImage(width, height, rgb)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgenc: create %q: %w", path, err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("imgenc: encode bmp %q: %w", path, err)
	}
	return f.Close()
}
