package render

import (
	"testing"
	"time"

	"github.com/fathomrender/pathtracer/pkg/camera"
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/geometry"
	"github.com/fathomrender/pathtracer/pkg/integrator"
	"github.com/fathomrender/pathtracer/pkg/material"
	"github.com/fathomrender/pathtracer/pkg/scene"
)

func testRenderScene(t *testing.T, w, h, spp, workers int) *scene.Scene {
	t.Helper()
	cam := camera.New(core.NewVec3(0, 0, -5), core.Vec3{}, core.NewVec3(0, 1, 0), 50, w, h, 0, 5)
	shapes := []geometry.Shape{geometry.NewSphere(core.NewVec3(1000, 1000, 1000), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))}
	sc, err := scene.New(cam, shapes, scene.ConstantEnvironment{Color: core.NewVec3(0.5, 0.5, 0.5)}, scene.Prefs{
		ImageWidth: w, ImageHeight: h, SamplesPerPixel: spp, MaxDepth: 2, TileWidth: 4, TileHeight: 4, WorkerCount: workers,
	})
	if err != nil {
		t.Fatalf("scene.New: %v", err)
	}
	return sc
}

func TestRenderProducesConstantEnvironmentImage(t *testing.T) {
	sc := testRenderScene(t, 16, 16, 16, 4)
	ctrl := NewController(nil)

	fb, stats, err := ctrl.Render(sc, integrator.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if stats.Aborted {
		t.Error("render should not report aborted")
	}
	if stats.CompletedSamples != stats.TotalSamples {
		t.Errorf("completed samples = %d, want %d", stats.CompletedSamples, stats.TotalSamples)
	}

	want := core.NewVec3(0.5, 0.5, 0.5)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if mean := fb.Mean(x, y); mean.Subtract(want).Length() > 1e-9 {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, mean, want)
			}
		}
	}
}

func TestRenderRejectsNonPositiveWorkerCount(t *testing.T) {
	sc := testRenderScene(t, 4, 4, 1, 0)
	ctrl := NewController(nil)
	if _, _, err := ctrl.Render(sc, integrator.Options{}); err == nil {
		t.Error("expected error for zero worker count")
	}
}

func TestRenderDeterministicAcrossWorkerCounts(t *testing.T) {
	sc1 := testRenderScene(t, 16, 16, 8, 1)
	fb1, _, err := NewController(nil).Render(sc1, integrator.Options{})
	if err != nil {
		t.Fatalf("single-threaded render: %v", err)
	}

	sc4 := testRenderScene(t, 16, 16, 8, 4)
	fb4, _, err := NewController(nil).Render(sc4, integrator.Options{})
	if err != nil {
		t.Fatalf("multi-threaded render: %v", err)
	}

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			m1, m4 := fb1.Mean(x, y), fb4.Mean(x, y)
			if m1.Subtract(m4).Length() > 1e-9 {
				t.Fatalf("pixel (%d,%d) differs across worker counts: %v vs %v", x, y, m1, m4)
			}
		}
	}
}

func TestAbortStopsRenderEarly(t *testing.T) {
	sc := testRenderScene(t, 64, 64, 100000, 2)
	ctrl := NewController(nil)

	done := make(chan struct{})
	go func() {
		_, stats, err := ctrl.Render(sc, integrator.Options{})
		if err != nil {
			t.Errorf("Render: %v", err)
		}
		if !stats.Aborted {
			t.Error("expected stats.Aborted = true")
		}
		if stats.CompletedSamples >= stats.TotalSamples {
			t.Error("expected an early abort to complete fewer than all planned samples")
		}
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	ctrl.Abort()
	<-done
}

func TestRenderCompletesAfterResumingFromPause(t *testing.T) {
	sc := testRenderScene(t, 32, 32, 2000, 2)
	ctrl := NewController(nil)
	ctrl.Pause(true)

	done := make(chan struct{})
	go func() {
		ctrl.Render(sc, integrator.Options{})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	ctrl.Pause(false)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("render did not complete after resuming from pause")
	}
}
