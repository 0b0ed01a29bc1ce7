package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/geometry"
	"github.com/df07/go-tile-tracer/pkg/integrator"
	"github.com/df07/go-tile-tracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for tiled rendering
type Config struct {
	Width           int   // Output width in pixels
	Height          int   // Output height in pixels
	TileSize        int   // Edge length of each tile (64x64 recommended)
	SamplesPerPixel int   // Jittered samples averaged per pixel
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	UseBVH          bool  // false intersects bounded primitives by linear scan
	Seed            int64 // Base seed for worker random sources (0 = time based)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          500,
		TileSize:        64,
		SamplesPerPixel: 100,
		NumWorkers:      0, // Auto-detect CPU count
		UseBVH:          true,
		Seed:            0,
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.TileSize <= 0:
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int             // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile in the full image
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Tiles completed so far, including this one
	TotalTiles int // Total number of tiles in the image
}

// Renderer renders a preprocessed scene tile by tile on a worker pool
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	counters   *geometry.IntersectionCounters
	logger     core.Logger
}

// NewRenderer creates a renderer. The scene must already be preprocessed.
// counters may be nil.
func NewRenderer(scene *scene.Scene, integratorInst integrator.Integrator, config Config, counters *geometry.IntersectionCounters, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		scene:      scene,
		integrator: integratorInst,
		config:     config,
		counters:   counters,
		logger:     logger,
	}
}

// Render renders every tile and assembles the image. Tiles are merged by
// the calling goroutine as their results arrive, so a tile's pixels are
// written only after its worker has finished it. The first failed tile
// aborts the render; tiles still queued are skipped and the failed tile is
// never merged. tileCallback may be nil.
func (r *Renderer) Render(tileCallback func(TileCompletionResult)) (*RawImage, RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if r.scene.Primitives == nil {
		return nil, RenderStats{}, fmt.Errorf("scene %q has not been preprocessed", r.scene.Name)
	}

	startTime := time.Now()
	seed := r.config.Seed
	if seed == 0 {
		seed = startTime.UnixNano()
	}

	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)
	tileRenderer := NewTileRenderer(r.scene, r.integrator, r.config.Width, r.config.Height, r.config.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, r.config.NumWorkers, len(tiles), seed)

	r.logger.Printf("Rendering %q at %dx%d: %d tiles of %d, %d samples/pixel, %d workers\n",
		r.scene.Name, r.config.Width, r.config.Height, len(tiles), r.config.TileSize,
		r.config.SamplesPerPixel, pool.GetNumWorkers())

	pool.Start()
	defer pool.Stop()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	img := NewRawImage(r.config.Width, r.config.Height)
	stats := RenderStats{
		SamplesPerPixel: r.config.SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
	}

	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, RenderStats{}, fmt.Errorf("render %q failed: %w", r.scene.Name, result.Error)
		}

		if err := img.MergeTile(result.Tile, result.Buffer); err != nil {
			return nil, RenderStats{}, err
		}
		stats.add(result.Stats)

		r.logger.Printf("Tile %d/%d (%d,%d) done by worker %d\n",
			i+1, len(tiles), result.Tile.TileX, result.Tile.TileY, result.WorkerID)

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:      result.Tile.TileX,
				TileY:      result.Tile.TileY,
				Bounds:     result.Tile.Bounds,
				TileImage:  TonemapBuffer(result.Tile.Bounds, result.Buffer),
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}

	stats.finalize()
	stats.Duration = time.Since(startTime)
	stats.Intersections = r.counters.Snapshot()

	r.logger.Printf("Render of %q completed in %v (%.0f samples/s)\n",
		r.scene.Name, stats.Duration, stats.SamplesPerSecond())

	return img, stats, nil
}
