package algorithms

import (
	"math/rand/v2"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/paint"
	"github.com/gogpu/pointillism/placement"
)

// Simple draws uniformly placed circular dots coloured by the source pixel
// under each centre.
type Simple struct{}

// Info implements pointillism.Algorithm.
func (Simple) Info() pointillism.Info {
	return pointillism.Info{
		Key:         "simple",
		Name:        "Simple Dots",
		Description: "Basic uniform circular dots",
		Author:      "Pointillism Generator",
		Version:     defaultVersion,
	}
}

// Parameters implements pointillism.Algorithm.
func (Simple) Parameters() []pointillism.ParameterSpec {
	return []pointillism.ParameterSpec{dotSizeParam(), dotCountParam()}
}

// Render implements pointillism.Algorithm.
func (Simple) Render(src *pointillism.Image, params pointillism.Params, rng *rand.Rand) (*pointillism.Rendering, error) {
	pts := placement.Uniform(src.Width(), src.Height(), params.DotCount(), rng)
	sampler := placement.NewSampler(src, 0)

	prims := dots(pts, params.DotSize(), func(p placement.Point) pointillism.RGB {
		return sampler.At(p.X, p.Y)
	})
	return composite(src, nil, prims, paint.DefaultStyle())
}
