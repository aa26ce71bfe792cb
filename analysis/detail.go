package analysis

import (
	"fmt"
	"math"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/internal/parallel"
)

// Signal selects how local detail is measured.
type Signal string

// Detail signals.
const (
	// SignalVariance measures local luminance variance.
	SignalVariance Signal = "variance"
	// SignalGradient measures local mean gradient magnitude.
	SignalGradient Signal = "gradient"
)

// ParseSignal converts a parameter value to a Signal.
func ParseSignal(s string) (Signal, error) {
	switch Signal(s) {
	case SignalVariance, SignalGradient:
		return Signal(s), nil
	}
	return "", fmt.Errorf("analysis: unknown detail signal %q", s)
}

// DetailMap holds one value in [0, 1] per pixel; 1 is the most detailed
// location of the image. A flat image yields an all-zero map.
type DetailMap struct {
	width, height int
	values        []float64
	integral      []float64 // (w+1)*(h+1) summed-area table of values
}

// Detail computes the detail map of img using a (2*radius+1)² window.
func Detail(img *pointillism.Image, signal Signal, radius int) *DetailMap {
	if radius < 1 {
		radius = 1
	}
	w, h := img.Width(), img.Height()
	luma := Luma(img)

	var raw []float64
	switch signal {
	case SignalGradient:
		raw = windowMean(sobel(luma, w, h), w, h, radius)
	default:
		raw = localVariance(luma, w, h, radius)
	}

	m := &DetailMap{width: w, height: h, values: normalize(raw)}
	m.integral = summedArea(m.values, w, h)
	return m
}

// NewDetailMap wraps precomputed values, which are clamped into [0, 1].
// It is intended for tests and custom placements.
func NewDetailMap(width, height int, values []float64) (*DetailMap, error) {
	if width <= 0 || height <= 0 || len(values) != width*height {
		return nil, fmt.Errorf("analysis: detail map %dx%d needs %d values, got %d",
			width, height, width*height, len(values))
	}
	v := make([]float64, len(values))
	for i, x := range values {
		v[i] = math.Min(1, math.Max(0, x))
	}
	return &DetailMap{width: width, height: height, values: v, integral: summedArea(v, width, height)}, nil
}

// Width returns the map width.
func (m *DetailMap) Width() int { return m.width }

// Height returns the map height.
func (m *DetailMap) Height() int { return m.height }

// At returns the detail at (x, y), clamped to the map.
func (m *DetailMap) At(x, y int) float64 {
	x = min(max(x, 0), m.width-1)
	y = min(max(y, 0), m.height-1)
	return m.values[y*m.width+x]
}

// Mean returns the mean detail of the rectangle [x0,x1)×[y0,y1).
func (m *DetailMap) Mean(x0, y0, x1, y1 int) float64 {
	x0, x1 = min(max(x0, 0), m.width), min(max(x1, 0), m.width)
	y0, y1 = min(max(y0, 0), m.height), min(max(y1, 0), m.height)
	area := (x1 - x0) * (y1 - y0)
	if area <= 0 {
		return 0
	}
	return rectSum(m.integral, m.width, x0, y0, x1, y1) / float64(area)
}

// Luma returns the Rec. 601 luminance plane of img.
func Luma(img *pointillism.Image) []float64 {
	pix := img.Pix()
	out := make([]float64, img.Width()*img.Height())
	for i := range out {
		j := i * 3
		out[i] = 0.299*float64(pix[j]) + 0.587*float64(pix[j+1]) + 0.114*float64(pix[j+2])
	}
	return out
}

// varianceEpsilon absorbs summed-area rounding on flat regions.
const varianceEpsilon = 1e-3

// localVariance returns E[x²]-E[x]² over each pixel's window.
func localVariance(luma []float64, w, h, r int) []float64 {
	sq := make([]float64, len(luma))
	for i, v := range luma {
		sq[i] = v * v
	}
	sum := summedArea(luma, w, h)
	sumSq := summedArea(sq, w, h)

	out := make([]float64, len(luma))
	parallel.Rows(h, func(ya, yb int) {
		for y := ya; y < yb; y++ {
			y0, y1 := max(y-r, 0), min(y+r+1, h)
			for x := 0; x < w; x++ {
				x0, x1 := max(x-r, 0), min(x+r+1, w)
				n := float64((x1 - x0) * (y1 - y0))
				mean := rectSum(sum, w, x0, y0, x1, y1) / n
				v := rectSum(sumSq, w, x0, y0, x1, y1)/n - mean*mean
				if v < varianceEpsilon {
					v = 0
				}
				out[y*w+x] = v
			}
		}
	})
	return out
}

// windowMean box-averages a plane over each pixel's window.
func windowMean(plane []float64, w, h, r int) []float64 {
	sat := summedArea(plane, w, h)
	out := make([]float64, len(plane))
	parallel.Rows(h, func(ya, yb int) {
		for y := ya; y < yb; y++ {
			y0, y1 := max(y-r, 0), min(y+r+1, h)
			for x := 0; x < w; x++ {
				x0, x1 := max(x-r, 0), min(x+r+1, w)
				out[y*w+x] = rectSum(sat, w, x0, y0, x1, y1) / float64((x1-x0)*(y1-y0))
			}
		}
	})
	return out
}

// sobel returns the Sobel gradient magnitude with edge extension.
func sobel(luma []float64, w, h int) []float64 {
	at := func(x, y int) float64 {
		return luma[min(max(y, 0), h-1)*w+min(max(x, 0), w-1)]
	}
	out := make([]float64, len(luma))
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
					at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
				gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
					at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
				out[y*w+x] = math.Hypot(gx, gy)
			}
		}
	})
	return out
}

// normalize scales values into [0, 1] by the maximum.
func normalize(v []float64) []float64 {
	peak := 0.0
	for _, x := range v {
		peak = math.Max(peak, x)
	}
	if peak <= 0 {
		return make([]float64, len(v))
	}
	for i := range v {
		v[i] /= peak
	}
	return v
}

// summedArea builds a (w+1)×(h+1) integral image with a zero border.
func summedArea(v []float64, w, h int) []float64 {
	stride := w + 1
	sat := make([]float64, stride*(h+1))
	for y := 0; y < h; y++ {
		var row float64
		for x := 0; x < w; x++ {
			row += v[y*w+x]
			sat[(y+1)*stride+x+1] = sat[y*stride+x+1] + row
		}
	}
	return sat
}

// rectSum returns the sum over [x0,x1)×[y0,y1) from a summed-area table.
func rectSum(sat []float64, w, x0, y0, x1, y1 int) float64 {
	stride := w + 1
	return sat[y1*stride+x1] - sat[y0*stride+x1] - sat[y1*stride+x0] + sat[y0*stride+x0]
}
