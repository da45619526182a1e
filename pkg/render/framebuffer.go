// Package render drives the worker pool and controller that turn a
// scene into a finished image: the framebuffer accumulator, the
// per-tile worker loop, and the supervisory controller that spawns
// workers, reports progress, and honors pause/abort.
package render

import (
	"sync"

	"github.com/fathomrender/pathtracer/pkg/core"
)

// pixelStat is the running-mean accumulator for one pixel: the sum of
// every completed sample and how many contributed. Dividing on
// read-out (rather than mutating an in-place mean each sample) keeps
// rounding error from compounding at high sample counts.
type pixelStat struct {
	sum   core.Vec3
	count int
}

// Framebuffer holds the float accumulator and the 8-bit sRGB display
// image for a render in progress. Tiles partition the image, so two
// workers never touch the same pixel concurrently; no per-pixel lock
// is needed for the accumulator or display bytes themselves. mu is
// only read-locked, by Mean and DisplayImage; AddSample never takes
// it, so a snapshot taken while workers are running may mix pixels
// updated at different moments.
type Framebuffer struct {
	mu      sync.RWMutex
	width   int
	height  int
	accum   []pixelStat
	display []byte // RGB, row-major, top row first
}

// NewFramebuffer allocates a zeroed width x height framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:   width,
		height:  height,
		accum:   make([]pixelStat, width*height),
		display: make([]byte, width*height*3),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// AddSample folds one more radiance sample into pixel (x,y) and
// refreshes its sRGB display bytes. Safe to call concurrently from
// different workers as long as no two workers ever touch the same
// pixel, which tile partitioning guarantees.
func (f *Framebuffer) AddSample(x, y int, sample core.Vec3) {
	if !sample.IsFinite() {
		sample = core.Vec3{}
	}
	idx := y*f.width + x
	p := &f.accum[idx]
	p.sum = p.sum.Add(sample)
	p.count++

	mean := p.sum.Multiply(1 / float64(p.count))
	encoded := core.ToSRGBColor(mean)
	d := idx * 3
	f.display[d+0] = byte(encoded.X*255 + 0.5)
	f.display[d+1] = byte(encoded.Y*255 + 0.5)
	f.display[d+2] = byte(encoded.Z*255 + 0.5)
}

// Mean returns the current running-mean radiance at pixel (x,y).
func (f *Framebuffer) Mean(x, y int) core.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p := f.accum[y*f.width+x]
	if p.count == 0 {
		return core.Vec3{}
	}
	return p.sum.Multiply(1 / float64(p.count))
}

// DisplayImage returns a copy of the current 8-bit sRGB display
// buffer, safe for a reader to hold onto after this call returns.
func (f *Framebuffer) DisplayImage() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]byte, len(f.display))
	copy(out, f.display)
	return out
}
