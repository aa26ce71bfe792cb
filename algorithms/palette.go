package algorithms

import (
	"math/rand/v2"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/analysis"
	"github.com/gogpu/pointillism/paint"
	"github.com/gogpu/pointillism/placement"
)

// Palette parameter names.
const (
	paramPaletteSize  = "palette_size"
	paramDistance     = "distance"
	paramSmoothSample = "smooth_sample"
)

// Palette quantises the image to a small k-means palette and draws
// uniformly placed dots in the nearest palette colour.
type Palette struct{}

// Info implements pointillism.Algorithm.
func (Palette) Info() pointillism.Info {
	return pointillism.Info{
		Key:         "palette",
		Name:        "Palette Dots",
		Description: "Uniform dots restricted to a k-means colour palette",
		Author:      "Pointillism Generator",
		Version:     defaultVersion,
	}
}

// Parameters implements pointillism.Algorithm.
func (Palette) Parameters() []pointillism.ParameterSpec {
	return []pointillism.ParameterSpec{
		pointillism.Slider(paramPaletteSize, "Palette Size", 2, 64, 1, 12).
			Describe("Number of colours the image is reduced to"),
		pointillism.Select(paramDistance, "Colour Matching", string(analysis.DistanceRGB),
			pointillism.Option{Value: string(analysis.DistanceRGB), Label: "RGB distance"},
			pointillism.Option{Value: string(analysis.DistanceLab), Label: "Perceptual (Lab)"},
		).Describe("How a sampled colour is matched to the palette"),
		pointillism.Checkbox(paramSmoothSample, "Smooth Sampling", false).
			Describe("Average the neighbourhood under each dot before matching"),
		dotSizeParam(),
		dotCountParam(),
	}
}

// Render implements pointillism.Algorithm.
func (Palette) Render(src *pointillism.Image, params pointillism.Params, rng *rand.Rand) (*pointillism.Rendering, error) {
	pal, err := analysis.KMeans(src, params.Int(paramPaletteSize, 12), rng)
	if err != nil {
		return nil, pointillism.StageErr(pointillism.StageAnalyze, err)
	}
	match := pal.Matcher(analysis.Distance(params.String(paramDistance, string(analysis.DistanceRGB))))

	size := params.DotSize()
	radius := 0
	if params.Bool(paramSmoothSample, false) {
		radius = max(1, int(size/2))
	}
	sampler := placement.NewSampler(src, radius)

	pts := placement.Uniform(src.Width(), src.Height(), params.DotCount(), rng)
	prims := dots(pts, size, func(p placement.Point) pointillism.RGB {
		return match(sampler.At(p.X, p.Y))
	})
	return composite(src, nil, prims, paint.DefaultStyle())
}
