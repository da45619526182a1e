// Command pathtracer renders a YAML scene description to a PNG or BMP
// file, logging the render's start and finish on the console and
// honoring Ctrl-C as a cooperative abort.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fathomrender/pathtracer/pkg/imgenc"
	"github.com/fathomrender/pathtracer/pkg/integrator"
	"github.com/fathomrender/pathtracer/pkg/logging"
	"github.com/fathomrender/pathtracer/pkg/render"
	"github.com/fathomrender/pathtracer/pkg/scene"
	"github.com/fathomrender/pathtracer/pkg/sceneio"

	"flag"
)

// config holds the command-line configuration for a single render.
type config struct {
	ScenePath       string
	OutPath         string
	Seed            int64
	Width           int
	Height          int
	Samples         int
	Bounces         int
	TileWidth       int
	TileHeight      int
	Workers         int
	Antialias       bool
	RussianRoulette bool
	RouletteDepth   int
	Help            bool
}

func main() {
	cfg := parseFlags()
	if cfg.Help {
		showHelp()
		return
	}

	logger := logging.NewDefault(slog.LevelInfo)

	if err := run(cfg, logger); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.ScenePath, "scene", "", "path to a YAML scene document")
	flag.StringVar(&cfg.OutPath, "out", "render.png", "output image path (.png or .bmp)")
	flag.Int64Var(&cfg.Seed, "seed", 1, "deterministic seed base")
	flag.IntVar(&cfg.Width, "width", 0, "image width override (0 = use scene file)")
	flag.IntVar(&cfg.Height, "height", 0, "image height override (0 = use scene file)")
	flag.IntVar(&cfg.Samples, "samples", 0, "samples per pixel override (0 = use scene file)")
	flag.IntVar(&cfg.Bounces, "bounces", 0, "max path depth override (0 = use scene file)")
	flag.IntVar(&cfg.TileWidth, "tile-width", 0, "tile width override (0 = use scene file)")
	flag.IntVar(&cfg.TileHeight, "tile-height", 0, "tile height override (0 = use scene file)")
	flag.IntVar(&cfg.Workers, "workers", 0, "worker count (0 = number of CPUs)")
	flag.BoolVar(&cfg.Antialias, "aa", true, "jitter primary rays within the pixel")
	flag.BoolVar(&cfg.RussianRoulette, "rr", false, "enable Russian roulette path termination")
	flag.IntVar(&cfg.RouletteDepth, "rr-depth", 4, "minimum depth before Russian roulette applies")
	flag.BoolVar(&cfg.Help, "help", false, "show help information")
	flag.Parse()
	return cfg
}

func showHelp() {
	fmt.Println("pathtracer - offline physically based path tracer")
	fmt.Println()
	fmt.Println("Usage: pathtracer -scene scene.yaml -out render.png [options]")
	fmt.Println()
	flag.PrintDefaults()
}

func run(cfg config, logger logging.Logger) error {
	if cfg.ScenePath == "" {
		return fmt.Errorf("main: -scene is required")
	}

	data, err := os.ReadFile(cfg.ScenePath)
	if err != nil {
		return fmt.Errorf("main: read scene %q: %w", cfg.ScenePath, err)
	}

	sc, err := sceneio.Load(data)
	if err != nil {
		return fmt.Errorf("main: %w", err)
	}
	applyOverrides(sc, cfg)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sc.Prefs.WorkerCount = workers

	logger.Info("starting render",
		"scene", cfg.ScenePath,
		"width", sc.Prefs.ImageWidth,
		"height", sc.Prefs.ImageHeight,
		"samples", sc.Prefs.SamplesPerPixel,
		"workers", sc.Prefs.WorkerCount,
	)

	controller := render.NewController(nil)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-sigChan; ok {
			logger.Warn("interrupt received, aborting render")
			controller.Abort()
		}
	}()
	defer signal.Stop(sigChan)

	opts := integrator.Options{
		RussianRoulette: sc.Prefs.RussianRoulette,
		RouletteDepth:   sc.Prefs.RouletteDepth,
	}

	start := time.Now()
	fb, stats, err := controller.Render(sc, opts)
	if err != nil {
		return fmt.Errorf("main: %w", err)
	}

	logger.Info("render finished",
		"wallTime", time.Since(start),
		"completedSamples", stats.CompletedSamples,
		"totalSamples", stats.TotalSamples,
		"aborted", stats.Aborted,
	)

	if err := writeImage(cfg.OutPath, fb); err != nil {
		return fmt.Errorf("main: %w", err)
	}
	logger.Info("wrote image", "path", cfg.OutPath)
	return nil
}

// applyOverrides lets command-line flags override the scene file's
// render preferences without requiring a full YAML edit for quick
// experiments. For the size, sample, depth and tile overrides a zero
// value means "use the scene file"; the -aa, -rr, -rr-depth and -seed
// flags always replace the scene file's values.
func applyOverrides(sc *scene.Scene, cfg config) {
	if cfg.Width > 0 {
		sc.Prefs.ImageWidth = cfg.Width
	}
	if cfg.Height > 0 {
		sc.Prefs.ImageHeight = cfg.Height
	}
	if cfg.Samples > 0 {
		sc.Prefs.SamplesPerPixel = cfg.Samples
	}
	if cfg.Bounces > 0 {
		sc.Prefs.MaxDepth = cfg.Bounces
	}
	if cfg.TileWidth > 0 {
		sc.Prefs.TileWidth = cfg.TileWidth
	}
	if cfg.TileHeight > 0 {
		sc.Prefs.TileHeight = cfg.TileHeight
	}
	sc.Prefs.Antialias = cfg.Antialias
	sc.Prefs.RussianRoulette = cfg.RussianRoulette
	sc.Prefs.RouletteDepth = cfg.RouletteDepth
	sc.Prefs.SeedBase = cfg.Seed
}

func writeImage(path string, fb *render.Framebuffer) error {
	rgb := fb.DisplayImage()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return imgenc.WriteBMP(path, fb.Width(), fb.Height(), rgb)
	default:
		return imgenc.WritePNG(path, fb.Width(), fb.Height(), rgb)
	}
}
