package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/fathomrender/pathtracer/pkg/abortflag"
	"github.com/fathomrender/pathtracer/pkg/integrator"
	"github.com/fathomrender/pathtracer/pkg/scene"
	"github.com/fathomrender/pathtracer/pkg/scheduler"
)

// DisplaySink receives periodic framebuffer snapshots while a render
// is in progress. A nil sink is valid and simply means nobody is
// watching.
type DisplaySink interface {
	Display(fb *Framebuffer)
}

// Stats summarizes a finished (or aborted) render.
type Stats struct {
	TotalSamples     int64
	CompletedSamples int64
	WallTime         time.Duration
	Aborted          bool
}

// Controller owns one render end to end: it sizes the framebuffer,
// partitions tiles, spawns workers, supervises them at a fixed tick
// rate honoring pause/abort, and joins every worker before returning.
type Controller struct {
	sink DisplaySink

	pauseMu sync.Mutex
	cond    *sync.Cond
	paused  bool
	abort   *abortflag.Flag

	etaMu sync.Mutex
	eta   time.Duration
}

// NewController builds a controller that will publish progress to
// sink (which may be nil).
func NewController(sink DisplaySink) *Controller {
	c := &Controller{sink: sink, abort: abortflag.New()}
	c.cond = sync.NewCond(&c.pauseMu)
	return c
}

// Pause sets the shared pause flag to paused for every worker in the current
// or next render. Workers block on a single condition variable rather
// than each carrying an independent flag, since every worker is
// always paused or resumed together.
func (c *Controller) Pause(paused bool) {
	c.pauseMu.Lock()
	c.paused = paused
	c.pauseMu.Unlock()
	if !paused {
		c.cond.Broadcast()
	}
}

// Abort raises the shared abort flag. Safe to call at any time,
// including before a render starts or after it has finished.
func (c *Controller) Abort() {
	c.abort.Abort()
	c.cond.Broadcast()
}

// Render builds a tile scheduler and framebuffer for sc, spawns
// workerCount workers (runtime.NumCPU() count if workerCount <= 0 is
// the caller's responsibility to resolve before calling Render), and
// runs the supervisory loop until every worker is done or abort fires.
// It returns the framebuffer and aggregate stats; the framebuffer is
// still populated even on abort so callers can choose to keep the
// partial image.
func (c *Controller) Render(sc *scene.Scene, opts integrator.Options) (*Framebuffer, Stats, error) {
	if sc == nil {
		return nil, Stats{}, fmt.Errorf("render: scene is required")
	}

	prefs := sc.Prefs
	workerCount := prefs.WorkerCount
	if workerCount <= 0 {
		return nil, Stats{}, fmt.Errorf("render: worker count must be positive, got %d", workerCount)
	}

	sched := scheduler.New(prefs.ImageWidth, prefs.ImageHeight, prefs.TileWidth, prefs.TileHeight)
	fb := NewFramebuffer(prefs.ImageWidth, prefs.ImageHeight)

	workers := make([]*Worker, 0, workerCount)
	var wg sync.WaitGroup
	spawnErrs := make(chan error, workerCount)
	for i := 0; i < workerCount; i++ {
		w := NewWorker(i, sc, sched, fb, c.abort, c.cond, &c.paused, opts)
		workers = append(workers, w)
	}

	start := time.Now()
	for _, w := range workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			defer func() {
				// A panicking worker is this core's only analogue to an
				// OS thread failing to start: the controller must still
				// join every already-started worker (with abort set)
				// before it can fail.
				if r := recover(); r != nil {
					c.Abort()
					spawnErrs <- fmt.Errorf("render: worker %d failed: %v", w.ID, r)
				}
			}()
			w.Run()
		}(w)
	}

	totalSamples := int64(prefs.SamplesPerPixel) * int64(prefs.ImageWidth) * int64(prefs.ImageHeight)
	c.superviseUntilDone(workers, &wg, fb, totalSamples)

	wg.Wait()
	close(spawnErrs)

	completed := sumCompleted(workers)
	stats := Stats{
		TotalSamples:     totalSamples,
		CompletedSamples: completed,
		WallTime:         time.Since(start),
		Aborted:          c.abort.Aborted(),
	}

	if err := <-spawnErrs; err != nil {
		return fb, stats, err
	}
	return fb, stats, nil
}

// superviseUntilDone runs the ~60Hz display tick and completion check
// until every worker reports done or the abort flag fires. It never
// blocks on wg.Wait itself so a caller can still observe display ticks
// while workers wind down.
func (c *Controller) superviseUntilDone(workers []*Worker, wg *sync.WaitGroup, fb *Framebuffer, totalSamples int64) {
	const activeTick = 16 * time.Millisecond
	const pausedTick = 100 * time.Millisecond
	const etaInterval = 280 * time.Millisecond

	lastETA := time.Now()
	for {
		if c.abort.Aborted() || allDone(workers) {
			if c.sink != nil {
				c.sink.Display(fb)
			}
			return
		}

		if c.sink != nil && !c.isPaused() {
			c.sink.Display(fb)
		}

		if time.Since(lastETA) >= etaInterval {
			c.setETA(ETA(workers, totalSamples))
			lastETA = time.Now()
		}

		if c.isPaused() {
			time.Sleep(pausedTick)
		} else {
			time.Sleep(activeTick)
		}
	}
}

func (c *Controller) setETA(d time.Duration) {
	c.etaMu.Lock()
	c.eta = d
	c.etaMu.Unlock()
}

// ETAEstimate returns the most recently computed remaining-time
// estimate for the render currently in progress.
func (c *Controller) ETAEstimate() time.Duration {
	c.etaMu.Lock()
	defer c.etaMu.Unlock()
	return c.eta
}

func (c *Controller) isPaused() bool {
	c.pauseMu.Lock()
	defer c.pauseMu.Unlock()
	return c.paused
}

func allDone(workers []*Worker) bool {
	for _, w := range workers {
		if !w.Done() {
			return false
		}
	}
	return true
}

func sumCompleted(workers []*Worker) int64 {
	var total int64
	for _, w := range workers {
		total += w.CompletedSamples()
	}
	return total
}

// ETA estimates the remaining wall time for a render in progress from
// each worker's most recently measured per-sample-pass time.
func ETA(workers []*Worker, totalSamples int64) time.Duration {
	if len(workers) == 0 {
		return 0
	}
	var avgNanos int64
	for _, w := range workers {
		avgNanos += w.AvgSampleNanos()
	}
	avgNanos /= int64(len(workers))

	completed := sumCompleted(workers)
	remaining := totalSamples - completed
	if remaining <= 0 {
		return 0
	}

	nanosRemaining := avgNanos * remaining / int64(len(workers))
	return time.Duration(nanosRemaining)
}
