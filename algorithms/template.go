package algorithms

import (
	"math/rand/v2"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/internal/filter"
	"github.com/gogpu/pointillism/paint"
	"github.com/gogpu/pointillism/placement"
)

// paramUseEffect toggles the template's finishing effect.
const paramUseEffect = "use_effect"

// templateRadius maps the template's style values to radius multipliers.
var templateRadius = map[string]float64{
	"soft":    1.0,
	"bold":    1.3,
	"minimal": 0.7,
}

// Template is a starting point for new algorithms. It is hidden from
// listings but validated like every other algorithm.
type Template struct{}

// Info implements pointillism.Algorithm.
func (Template) Info() pointillism.Info {
	return pointillism.Info{
		Key:         "template",
		Name:        "My Algorithm Name",
		Description: "Brief description of what your algorithm does",
		Author:      "Your Name",
		Version:     defaultVersion,
		Hidden:      true,
	}
}

// Parameters implements pointillism.Algorithm.
func (Template) Parameters() []pointillism.ParameterSpec {
	return []pointillism.ParameterSpec{
		dotSizeParam().Describe("Size of the dots/strokes"),
		dotCountParam().Describe("Number of dots/strokes to generate"),
		pointillism.Slider(paramIntensity, "Color Intensity", 0.5, 2.0, 0.1, 1.2).
			Describe("How intense the colors should be"),
		pointillism.Select(paramStyle, "Artistic Style", "soft",
			pointillism.Option{Value: "soft", Label: "Soft & Gentle"},
			pointillism.Option{Value: "bold", Label: "Bold & Expressive"},
			pointillism.Option{Value: "minimal", Label: "Minimal & Clean"},
		).Describe("Choose the artistic style"),
		pointillism.Checkbox(paramUseEffect, "Apply Special Effect", true).
			Describe("Add a special effect to the result"),
	}
}

// Render implements pointillism.Algorithm.
func (Template) Render(src *pointillism.Image, params pointillism.Params, rng *rand.Rand) (*pointillism.Rendering, error) {
	radius, ok := templateRadius[params.String(paramStyle, "soft")]
	if !ok {
		radius = 1
	}

	pts := placement.Uniform(src.Width(), src.Height(), params.DotCount(), rng)
	sampler := placement.NewSampler(src, 0)
	prims := dots(pts, params.DotSize(), func(p placement.Point) pointillism.RGB {
		return sampler.At(p.X, p.Y)
	})

	out, err := composite(src, nil, prims, paint.Style{
		Intensity:   params.Float(paramIntensity, 1.2),
		RadiusScale: radius,
	})
	if err != nil {
		return nil, err
	}
	if params.Bool(paramUseEffect, true) {
		out = finish(out, filter.NewBlurFilter(0.5))
	}
	return out, nil
}
