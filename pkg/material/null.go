package material

import (
	"github.com/df07/go-tile-tracer/pkg/core"
)

// Null absorbs every ray
type Null struct{}

// Scatter always reports absorption
func (Null) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}
