package renderer

import (
	"image"
	"time"

	"github.com/df07/go-tile-tracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int                      // Total number of pixels rendered
	TotalSamples    int                      // Total number of samples taken
	AverageSamples  float64                  // Average samples per pixel
	SamplesPerPixel int                      // Samples requested per pixel
	Tiles           int                      // Tiles rendered
	Workers         int                      // Worker goroutines used
	Duration        time.Duration            // Wall time of the render
	Intersections   geometry.CounterSnapshot // Zero unless counters were enabled
}

// add accumulates a tile's stats into the render totals
func (s *RenderStats) add(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.Tiles++
}

// finalize calculates derived statistics once all tiles are in
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// SamplesPerSecond returns the sample throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean luminance of img in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
