package analysis

import (
	"math"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/internal/filter"
	"github.com/gogpu/pointillism/internal/parallel"
)

// scharrNorm scales the Scharr response so a unit luminance step yields a
// gradient of roughly one.
const scharrNorm = 15.36

// Field is a per-pixel 2D vector field, typically the luminance gradient.
type Field struct {
	width, height int
	x, y          []float32
}

// Gradient computes the Scharr luminance gradient of img.
func Gradient(img *pointillism.Image) *Field {
	w, h := img.Width(), img.Height()
	luma := Luma(img)
	at := func(x, y int) float64 {
		return luma[min(max(y, 0), h-1)*w+min(max(x, 0), w-1)]
	}

	f := &Field{width: w, height: h, x: make([]float32, w*h), y: make([]float32, w*h)}
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				gx := 3*at(x+1, y-1) + 10*at(x+1, y) + 3*at(x+1, y+1) -
					3*at(x-1, y-1) - 10*at(x-1, y) - 3*at(x-1, y+1)
				gy := 3*at(x-1, y+1) + 10*at(x, y+1) + 3*at(x+1, y+1) -
					3*at(x-1, y-1) - 10*at(x, y-1) - 3*at(x+1, y-1)
				f.x[y*w+x] = float32(gx / scharrNorm)
				f.y[y*w+x] = float32(gy / scharrNorm)
			}
		}
	})
	return f
}

// Smooth blurs both components with a Gaussian kernel of side 2*radius+1.
func (f *Field) Smooth(radius int) {
	sigma := filter.SigmaForSize(radius)
	filter.BlurPlane(f.x, f.width, f.height, sigma)
	filter.BlurPlane(f.y, f.width, f.height, sigma)
}

// Width returns the field width.
func (f *Field) Width() int { return f.width }

// Height returns the field height.
func (f *Field) Height() int { return f.height }

// Vector returns the components at (x, y), clamped to the field.
func (f *Field) Vector(x, y int) (float64, float64) {
	x = min(max(x, 0), f.width-1)
	y = min(max(y, 0), f.height-1)
	i := y*f.width + x
	return float64(f.x[i]), float64(f.y[i])
}

// Direction returns the gradient angle at (x, y) in radians.
func (f *Field) Direction(x, y int) float64 {
	gx, gy := f.Vector(x, y)
	return math.Atan2(gy, gx)
}

// Magnitude returns the gradient length at (x, y).
func (f *Field) Magnitude(x, y int) float64 {
	gx, gy := f.Vector(x, y)
	return math.Hypot(gx, gy)
}
