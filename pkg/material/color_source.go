package material

import (
	"math"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two color sources in a 3D checker
// pattern. Scale is the number of checks per 2π units along each axis.
type CheckerTexture struct {
	Even  ColorSource
	Odd   ColorSource
	Scale float64
}

// NewCheckerTexture creates a checker of two solid colors
func NewCheckerTexture(even, odd core.Vec3, scale float64) *CheckerTexture {
	return &CheckerTexture{
		Even:  NewSolidColor(even),
		Odd:   NewSolidColor(odd),
		Scale: scale,
	}
}

// Evaluate picks a color source by the sign of the product of sines
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
