package algorithms

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/analysis"
	"github.com/gogpu/pointillism/paint"
	"github.com/gogpu/pointillism/placement"
)

// Adaptive parameter names.
const (
	paramAdaptivity   = "adaptivity"
	paramDetailSignal = "detail_signal"
	paramDetailRadius = "detail_radius"
	paramAverageColor = "average_color"
	paramStrokes      = "strokes"
)

// Stroke proportions relative to the dot radius.
const (
	strokeLength = 2.0
	strokeWidth  = 0.6
)

// Adaptive concentrates primitives where the image is detailed: busy
// regions get more, smaller marks and flat regions fewer, larger ones.
type Adaptive struct{}

// Info implements pointillism.Algorithm.
func (Adaptive) Info() pointillism.Info {
	return pointillism.Info{
		Key:         "adaptive",
		Name:        "Adaptive Detail",
		Description: "Denser, finer dots where the image has detail",
		Author:      "Pointillism Generator",
		Version:     defaultVersion,
	}
}

// Parameters implements pointillism.Algorithm.
func (Adaptive) Parameters() []pointillism.ParameterSpec {
	return []pointillism.ParameterSpec{
		dotSizeParam(),
		dotCountParam(),
		pointillism.Slider(paramAdaptivity, "Adaptivity", 0, 3, 0.1, 1.5).
			Describe("How strongly density follows detail (0 = uniform)"),
		pointillism.Select(paramDetailSignal, "Detail Measure", string(analysis.SignalVariance),
			pointillism.Option{Value: string(analysis.SignalVariance), Label: "Local variance"},
			pointillism.Option{Value: string(analysis.SignalGradient), Label: "Edge strength"},
		),
		pointillism.Slider(paramDetailRadius, "Detail Radius", 1, 10, 1, 3).
			Describe("Neighbourhood used to measure detail"),
		pointillism.Checkbox(paramAverageColor, "Average Colour", true).
			Describe("Colour each mark by the mean of the area it covers"),
		pointillism.Checkbox(paramStrokes, "Brush Strokes", false).
			Describe("Draw strokes aligned with image edges instead of dots"),
	}
}

// Render implements pointillism.Algorithm.
func (Adaptive) Render(src *pointillism.Image, params pointillism.Params, rng *rand.Rand) (*pointillism.Rendering, error) {
	prims, err := adaptivePrimitives(src, params, params.Float(paramAdaptivity, 1.5), params.Bool(paramStrokes, false), rng)
	if err != nil {
		return nil, err
	}
	return composite(src, nil, prims, paint.DefaultStyle())
}

// adaptivePrimitives runs detail analysis and adaptive placement and
// returns the coloured primitives. It is shared with the impressionist
// style.
func adaptivePrimitives(src *pointillism.Image, params pointillism.Params, strength float64, strokes bool, rng *rand.Rand) ([]pointillism.Primitive, error) {
	signal, err := analysis.ParseSignal(params.String(paramDetailSignal, string(analysis.SignalVariance)))
	if err != nil {
		return nil, pointillism.StageErr(pointillism.StageAnalyze, err)
	}
	radius := params.Int(paramDetailRadius, 3)
	detail := analysis.Detail(src, signal, radius)

	var field *analysis.Field
	if strokes {
		field = analysis.Gradient(src)
		field.Smooth(radius)
	}

	size := params.DotSize()
	sampleRadius := 0
	if params.Bool(paramAverageColor, true) {
		sampleRadius = max(1, int(size/2))
	}
	sampler := placement.NewSampler(src, sampleRadius)

	pts := placement.Adaptive(detail, params.DotCount(), placement.AdaptiveOptions{Strength: strength}, rng)
	prims := make([]pointillism.Primitive, len(pts))
	for i, p := range pts {
		r := size * p.Scale
		c := sampler.At(p.X, p.Y)
		if field == nil {
			prims[i] = pointillism.Dot(p.X, p.Y, r, c)
			continue
		}
		angle := field.Direction(int(p.X), int(p.Y)) + math.Pi/2
		prims[i] = pointillism.Stroke(p.X, p.Y, r*strokeLength, r*strokeWidth, angle, c)
	}
	return prims, nil
}
