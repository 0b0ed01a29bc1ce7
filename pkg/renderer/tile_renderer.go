package renderer

import (
	"image"

	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/df07/go-tile-tracer/pkg/integrator"
	"github.com/df07/go-tile-tracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           scene,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile renders every pixel of bounds in row-major order and returns a
// buffer of averaged linear colors sized to the bounds
func (tr *TileRenderer) RenderTile(bounds image.Rectangle, sampler core.Sampler) ([]core.Vec3, RenderStats) {
	buffer := make([]core.Vec3, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buffer = append(buffer, tr.samplePixel(x, y, sampler))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return buffer, RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    pixels * tr.samplesPerPixel,
		SamplesPerPixel: tr.samplesPerPixel,
	}
}

// samplePixel averages jittered camera samples for pixel (x, y). Image rows
// run top to bottom while screen t runs bottom to top.
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	var colorAccum core.Vec3
	for i := 0; i < tr.samplesPerPixel; i++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := (float64(tr.height-y-1) + jitter.Y) / float64(tr.height)

		ray := tr.scene.Camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.scene, sampler))
	}
	return colorAccum.Divide(float64(tr.samplesPerPixel))
}
