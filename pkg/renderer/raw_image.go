package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// DisplayGamma is the gamma assumed when tonemapping
const DisplayGamma = 2.2

// maxChannelValue scales [0, 1] so that 1.0 still lands on 255
const maxChannelValue = 255.999

// RawImage holds linear float colors straight from the renderer, row-major
// with x varying fastest. It must be tonemapped before viewing.
type RawImage struct {
	width, height int
	pixels        []core.Vec3
}

// NewRawImage creates a black image
func NewRawImage(width, height int) *RawImage {
	return &RawImage{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the image width in pixels
func (r *RawImage) Width() int { return r.width }

// Height returns the image height in pixels
func (r *RawImage) Height() int { return r.height }

// At returns the linear color at (x, y)
func (r *RawImage) At(x, y int) core.Vec3 {
	return r.pixels[y*r.width+x]
}

// Set stores the linear color at (x, y)
func (r *RawImage) Set(x, y int, c core.Vec3) {
	r.pixels[y*r.width+x] = c
}

// MergeTile copies a finished tile buffer into the tile's region. The buffer
// is row-major over the tile bounds.
func (r *RawImage) MergeTile(tile *Tile, buffer []core.Vec3) error {
	bounds := tile.Bounds
	if !bounds.In(image.Rect(0, 0, r.width, r.height)) {
		return fmt.Errorf("tile %d bounds %v outside %dx%d image", tile.ID, bounds, r.width, r.height)
	}
	if len(buffer) != bounds.Dx()*bounds.Dy() {
		return fmt.Errorf("tile %d buffer has %d pixels, want %d", tile.ID, len(buffer), bounds.Dx()*bounds.Dy())
	}

	tileWidth := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := buffer[(y-bounds.Min.Y)*tileWidth : (y-bounds.Min.Y+1)*tileWidth]
		copy(r.pixels[y*r.width+bounds.Min.X:], row)
	}
	return nil
}

// Tonemap converts the image to 8-bit sRGB-ish colors
func (r *RawImage) Tonemap() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(r.pixels[y*r.width+x]))
		}
	}
	return img
}

// TonemapBuffer converts a tile buffer to an image of the tile's size
func TonemapBuffer(bounds image.Rectangle, buffer []core.Vec3) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for i, c := range buffer {
		img.SetRGBA(i%bounds.Dx(), i/bounds.Dx(), vec3ToColor(c))
	}
	return img
}

// vec3ToColor applies gamma correction and quantizes to 8 bits
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(DisplayGamma)

	return color.RGBA{
		R: quantize(colorVec.X),
		G: quantize(colorVec.Y),
		B: quantize(colorVec.Z),
		A: 255,
	}
}

// quantize maps [0, 1] onto [0, 255], saturating outside that range
func quantize(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	v := c * maxChannelValue
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
