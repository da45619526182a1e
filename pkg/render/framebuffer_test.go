package render

import (
	"math"
	"testing"

	"github.com/fathomrender/pathtracer/pkg/core"
)

func TestAddSampleAccumulatesRunningMean(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.AddSample(1, 1, core.NewVec3(1, 0, 0))
	fb.AddSample(1, 1, core.NewVec3(0, 1, 0))

	mean := fb.Mean(1, 1)
	want := core.NewVec3(0.5, 0.5, 0)
	if mean.Subtract(want).Length() > 1e-9 {
		t.Errorf("mean = %v, want %v", mean, want)
	}
}

func TestAddSampleClampsNonFiniteToBlack(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.AddSample(0, 0, core.NewVec3(math.Inf(1), 0, 0))
	if mean := fb.Mean(0, 0); mean != (core.Vec3{}) {
		t.Errorf("mean after non-finite sample = %v, want black", mean)
	}
}

func TestDisplayImageEncodesSRGB(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.AddSample(0, 0, core.NewVec3(0.5, 0.5, 0.5))
	img := fb.DisplayImage()
	want := byte(core.ToSRGB(0.5)*255 + 0.5)
	for i := 0; i < 3; i++ {
		if img[i] != want {
			t.Errorf("display[%d] = %d, want %d", i, img[i], want)
		}
	}
}

func TestDisplayImageIsACopy(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.AddSample(0, 0, core.NewVec3(1, 1, 1))
	img := fb.DisplayImage()
	img[0] = 0
	if fb.DisplayImage()[0] == 0 {
		t.Error("DisplayImage should return an independent copy")
	}
}

func TestUnsampledPixelIsBlack(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	if mean := fb.Mean(0, 0); mean != (core.Vec3{}) {
		t.Errorf("unsampled pixel mean = %v, want black", mean)
	}
}
