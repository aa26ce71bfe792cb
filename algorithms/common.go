package algorithms

import (
	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/internal/filter"
	"github.com/gogpu/pointillism/paint"
	"github.com/gogpu/pointillism/placement"
)

const defaultVersion = "1.0.0"

// dotSizeParam and dotCountParam are the shared primitive controls.
func dotSizeParam() pointillism.ParameterSpec {
	return pointillism.Slider(pointillism.ParamDotSize, "Dot Size", 1, 20, 1, pointillism.DefaultDotSize).
		Describe("Size of the dots")
}

func dotCountParam() pointillism.ParameterSpec {
	return pointillism.Slider(pointillism.ParamDotCount, "Number of Dots", 100, 100000, 100, pointillism.DefaultDotCount).
		Describe("Number of dots to generate")
}

// dots turns placement points into dot primitives of radius size·Scale
// coloured by pick.
func dots(pts []placement.Point, size float64, pick func(placement.Point) pointillism.RGB) []pointillism.Primitive {
	prims := make([]pointillism.Primitive, len(pts))
	for i, p := range pts {
		prims[i] = pointillism.Dot(p.X, p.Y, size*p.Scale, pick(p))
	}
	return prims
}

// composite draws prims over a canvas with a white background, or over
// base when it is non-nil, and returns the result.
func composite(src, base *pointillism.Image, prims []pointillism.Primitive, style paint.Style) (*pointillism.Rendering, error) {
	var (
		c   *paint.Canvas
		err error
	)
	if base != nil {
		c, err = paint.NewCanvasFrom(base)
	} else {
		c, err = paint.NewCanvas(src.Width(), src.Height(), pointillism.White)
	}
	if err != nil {
		return nil, pointillism.StageErr(pointillism.StageComposite, err)
	}
	defer c.Close()

	if err := c.DrawAll(prims, style); err != nil {
		return nil, pointillism.StageErr(pointillism.StageComposite, err)
	}
	img, err := c.Image()
	if err != nil {
		return nil, pointillism.StageErr(pointillism.StageComposite, err)
	}
	return &pointillism.Rendering{Image: img, Primitives: c.Drawn()}, nil
}

// finish applies post filters to a rendering in place.
func finish(r *pointillism.Rendering, filters ...filter.Filter) *pointillism.Rendering {
	r.Image = filter.Chain(r.Image, filters...)
	return r
}
