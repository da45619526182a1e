package render

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fathomrender/pathtracer/pkg/abortflag"
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/integrator"
	"github.com/fathomrender/pathtracer/pkg/scene"
	"github.com/fathomrender/pathtracer/pkg/scheduler"
)

// Worker repeatedly claims a tile from the shared scheduler, renders
// every sample of every pixel in it, and writes results into the
// shared framebuffer. One Worker runs per goroutine; its exported
// counters are read by the controller for progress and ETA.
type Worker struct {
	ID int

	scene     *scene.Scene
	sched     *scheduler.Scheduler
	fb        *Framebuffer
	abort     *abortflag.Flag
	pauseCond *sync.Cond
	paused    *bool
	opts      integrator.Options

	completedSamples atomic.Int64
	avgSampleNanos    atomic.Int64
	done              atomic.Bool
}

// NewWorker constructs a worker sharing the given scene, scheduler,
// framebuffer, abort flag, and pause condition with every other
// worker in the pool.
func NewWorker(id int, sc *scene.Scene, sched *scheduler.Scheduler, fb *Framebuffer, abort *abortflag.Flag, pauseCond *sync.Cond, paused *bool, opts integrator.Options) *Worker {
	return &Worker{
		ID:        id,
		scene:     sc,
		sched:     sched,
		fb:        fb,
		abort:     abort,
		pauseCond: pauseCond,
		paused:    paused,
		opts:      opts,
	}
}

// CompletedSamples reports the total number of samples this worker
// has finished across every tile it has processed.
func (w *Worker) CompletedSamples() int64 { return w.completedSamples.Load() }

// AvgSampleNanos reports the mean wall time of the worker's most
// recently measured per-sample pass.
func (w *Worker) AvgSampleNanos() int64 { return w.avgSampleNanos.Load() }

// Done reports whether the worker has exhausted the scheduler's tile
// supply and returned.
func (w *Worker) Done() bool { return w.done.Load() }

// Run drives the worker loop until the scheduler runs out of tiles or
// the shared abort flag is set. It is meant to run on its own
// goroutine; the controller joins it via a sync.WaitGroup.
func (w *Worker) Run() {
	defer w.done.Store(true)

	prefs := w.scene.Prefs
	for {
		if w.abort.Aborted() {
			return
		}
		tile, ok := w.sched.NextTile()
		if !ok {
			return
		}

		w.renderTile(tile, prefs.SamplesPerPixel)
		w.sched.MarkComplete(tile.Index)
	}
}

// renderTile sweeps the tile one pass per sample index: a pass visits
// every pixel in the tile at a fixed sample index s before the next
// pass begins, scanning each pass bottom-to-top then left-to-right to
// match the ray generator's pixel convention.
func (w *Worker) renderTile(tile scheduler.Tile, sampleCount int) {
	prefs := w.scene.Prefs
	for s := 0; s < sampleCount; s++ {
		start := time.Now()

		for y := tile.MaxY - 1; y >= tile.MinY; y-- {
			for x := tile.MinX; x < tile.MaxX; x++ {
				if w.abort.Aborted() {
					return
				}

				seed := core.SeedFor(x, y, prefs.ImageWidth, sampleCount, s)
				rng := core.NewRng(core.Hash64(seed) ^ uint64(prefs.SeedBase))

				ray := w.scene.Camera.Ray(x, y, prefs.Antialias, rng)
				sample := integrator.L(ray, w.scene, 0, prefs.MaxDepth, rng, w.opts)
				w.fb.AddSample(x, y, sample)

				w.completedSamples.Add(1)
			}
		}

		w.avgSampleNanos.Store(time.Since(start).Nanoseconds() / int64(tile.Width()*tile.Height()))
		w.waitWhilePaused()
	}
}

// waitWhilePaused blocks on the shared pause condition while *w.paused
// is true and abort has not fired, then returns. All workers share one
// sync.Cond and one pause flag rather than each carrying its own
// boolean, since every worker is always paused or resumed together.
func (w *Worker) waitWhilePaused() {
	w.pauseCond.L.Lock()
	defer w.pauseCond.L.Unlock()
	for *w.paused && !w.abort.Aborted() {
		w.pauseCond.Wait()
	}
}
