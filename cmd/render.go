package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/df07/go-tile-tracer/pkg/geometry"
	"github.com/df07/go-tile-tracer/pkg/integrator"
	"github.com/df07/go-tile-tracer/pkg/log"
	"github.com/df07/go-tile-tracer/pkg/output"
	"github.com/df07/go-tile-tracer/pkg/renderer"
	"github.com/df07/go-tile-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command. Every flag can
// also be set through its environment variable.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "scene, s",
		Value:  "spheres",
		Usage:  "built-in scene to render",
		EnvVar: "TRACER_SCENE",
	},
	cli.IntFlag{
		Name:   "width",
		Usage:  "frame width (0 uses the scene default)",
		EnvVar: "TRACER_WIDTH",
	},
	cli.IntFlag{
		Name:   "height",
		Usage:  "frame height (0 uses the scene default)",
		EnvVar: "TRACER_HEIGHT",
	},
	cli.IntFlag{
		Name:   "spp",
		Value:  renderer.DefaultConfig().SamplesPerPixel,
		Usage:  "samples per pixel",
		EnvVar: "TRACER_SPP",
	},
	cli.IntFlag{
		Name:   "tile-size",
		Value:  renderer.DefaultConfig().TileSize,
		Usage:  "tile edge length in pixels",
		EnvVar: "TRACER_TILE_SIZE",
	},
	cli.IntFlag{
		Name:   "workers",
		Usage:  "number of render workers (0 uses every logical CPU)",
		EnvVar: "TRACER_WORKERS",
	},
	cli.IntFlag{
		Name:   "max-depth",
		Value:  integrator.DefaultPathTracerConfig().MaxDepth,
		Usage:  "maximum scatter depth per path",
		EnvVar: "TRACER_MAX_DEPTH",
	},
	cli.Int64Flag{
		Name:   "seed",
		Usage:  "random seed for scene content and sampling (0 is time based)",
		EnvVar: "TRACER_SEED",
	},
	cli.BoolTFlag{
		Name:   "bvh",
		Usage:  "accelerate intersections with a BVH (--bvh=false scans linearly)",
		EnvVar: "TRACER_BVH",
	},
	cli.BoolFlag{
		Name:   "counters",
		Usage:  "collect and report intersection counters",
		EnvVar: "TRACER_COUNTERS",
	},
	cli.StringFlag{
		Name:   "out, o",
		Usage:  "image filename for the rendered frame (default output/<scene>.png)",
		EnvVar: "TRACER_OUT",
	},
	cli.UintFlag{
		Name:   "thumbnail",
		Usage:  "also write a thumbnail no larger than this many pixels (0 disables)",
		EnvVar: "TRACER_THUMBNAIL",
	},
	cli.StringFlag{
		Name:   "s3-bucket",
		Usage:  "publish the frame to this S3 bucket",
		EnvVar: "TRACER_S3_BUCKET",
	},
	cli.StringFlag{
		Name:   "s3-prefix",
		Usage:  "key prefix for published frames",
		EnvVar: "TRACER_S3_PREFIX",
	},
	cli.StringFlag{
		Name:   "s3-region",
		Value:  "us-east-1",
		Usage:  "S3 region",
		EnvVar: "TRACER_S3_REGION",
	},
	cli.StringFlag{
		Name:   "s3-endpoint",
		Usage:  "S3 compatible endpoint",
		EnvVar: "TRACER_S3_ENDPOINT",
	},
	cli.StringFlag{
		Name:   "s3-access-key",
		Usage:  "S3 access key",
		EnvVar: "TRACER_S3_ACCESS_KEY",
	},
	cli.StringFlag{
		Name:   "s3-secret-key",
		Usage:  "S3 secret key",
		EnvVar: "TRACER_S3_SECRET_KEY",
	},
}

// Render a still frame of a built-in scene.
func Render(ctx *cli.Context) error {
	seed := ctx.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sc, err := scene.NewScene(ctx.String("scene"), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	config := renderConfig(ctx, sc, seed)

	var counters *geometry.IntersectionCounters
	if ctx.Bool("counters") {
		counters = geometry.NewIntersectionCounters()
	}

	start := time.Now()
	err = sc.Preprocess(geometry.AggregateOptions{
		UseBVH:   config.UseBVH,
		Counters: counters,
		Random:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return fmt.Errorf("failed to prepare scene %s: %w", sc.Name, err)
	}
	logger.Infof("prepared scene %q with %d primitives in %v", sc.Name, sc.GetPrimitiveCount(), time.Since(start))

	tracerConfig := integrator.DefaultPathTracerConfig()
	tracerConfig.MaxDepth = ctx.Int("max-depth")
	pathTracer := integrator.NewPathTracingIntegrator(tracerConfig)

	r := renderer.NewRenderer(sc, pathTracer, config, counters, log.Printf(log.New("renderer")))
	img, stats, err := r.Render(func(result renderer.TileCompletionResult) {
		logger.Debugf("tile (%d,%d) %d/%d", result.TileX, result.TileY, result.TileNumber, result.TotalTiles)
	})
	if err != nil {
		return err
	}

	frame := img.Tonemap()
	outFile := ctx.String("out")
	if outFile == "" {
		outFile = filepath.Join("output", sc.Name+".png")
	}
	if err := output.Save(outFile, frame); err != nil {
		return err
	}
	logger.Noticef("frame saved to %s", outFile)

	if size := ctx.Uint("thumbnail"); size > 0 {
		thumbFile := output.ThumbnailPath(outFile)
		if err := output.Save(thumbFile, output.Thumbnail(frame, size)); err != nil {
			return err
		}
		logger.Noticef("thumbnail saved to %s", thumbFile)
	}

	s3Config := output.S3Config{
		AccessKey: ctx.String("s3-access-key"),
		SecretKey: ctx.String("s3-secret-key"),
		Endpoint:  ctx.String("s3-endpoint"),
		Region:    ctx.String("s3-region"),
		Bucket:    ctx.String("s3-bucket"),
		Prefix:    ctx.String("s3-prefix"),
	}
	if s3Config.Enabled() {
		publisher, err := output.NewS3Publisher(s3Config)
		if err != nil {
			return err
		}
		key, err := publisher.PublishImage(context.Background(), filepath.Base(outFile), frame)
		if err != nil {
			return err
		}
		logger.Noticef("frame published to s3://%s/%s", s3Config.Bucket, key)
	}

	displayRenderStats(stats, counters != nil)
	return nil
}

// renderConfig builds the renderer configuration from the command flags,
// falling back to the scene's preferred frame size.
func renderConfig(ctx *cli.Context, sc *scene.Scene, seed int64) renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = sc.Config.Width
	config.Height = sc.Config.Height
	if w := ctx.Int("width"); w > 0 {
		config.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		config.Height = h
	}
	config.SamplesPerPixel = ctx.Int("spp")
	config.TileSize = ctx.Int("tile-size")
	config.UseBVH = ctx.BoolT("bvh")
	config.Seed = seed

	config.NumWorkers = ctx.Int("workers")
	if config.NumWorkers == 0 {
		config.NumWorkers = defaultWorkerCount()
	}
	return config
}

func displayRenderStats(stats renderer.RenderStats, withCounters bool) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Tiles", fmt.Sprintf("%d", stats.Tiles)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", stats.Workers)})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", stats.TotalPixels)})
	table.Append([]string{"Samples", fmt.Sprintf("%d", stats.TotalSamples)})
	table.Append([]string{"Samples/pixel", fmt.Sprintf("%.1f", stats.AverageSamples)})
	table.Append([]string{"Samples/second", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})
	if withCounters {
		table.Append([]string{"BVH nodes entered", fmt.Sprintf("%d", stats.Intersections.NodeHits)})
		table.Append([]string{"BVH nodes pruned", fmt.Sprintf("%d", stats.Intersections.NodeMisses)})
		table.Append([]string{"Primitive tests", fmt.Sprintf("%d", stats.Intersections.PrimitiveTests)})
	}
	table.SetFooter([]string{"TOTAL", stats.Duration.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
