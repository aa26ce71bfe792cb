package placement

import (
	"math"

	"github.com/gogpu/pointillism"
)

// Sampler reads primitive colours from a source image, either directly or
// as the mean of a (2*Radius+1)² neighbourhood.
type Sampler struct {
	img    *pointillism.Image
	radius int
	sums   [3][]uint64 // per-channel summed-area tables, nil when radius == 0
}

// NewSampler creates a sampler. radius <= 0 samples single pixels.
func NewSampler(img *pointillism.Image, radius int) *Sampler {
	s := &Sampler{img: img, radius: max(radius, 0)}
	if s.radius == 0 {
		return s
	}

	w, h := img.Width(), img.Height()
	stride := w + 1
	pix := img.Pix()
	for c := range s.sums {
		sat := make([]uint64, stride*(h+1))
		for y := 0; y < h; y++ {
			var row uint64
			for x := 0; x < w; x++ {
				row += uint64(pix[(y*w+x)*3+c])
				sat[(y+1)*stride+x+1] = sat[y*stride+x+1] + row
			}
		}
		s.sums[c] = sat
	}
	return s
}

// At returns the colour for a primitive centred at (x, y). Coordinates
// are floored and clamped to the image.
func (s *Sampler) At(x, y float64) pointillism.RGB {
	w, h := s.img.Width(), s.img.Height()
	px := min(max(int(math.Floor(x)), 0), w-1)
	py := min(max(int(math.Floor(y)), 0), h-1)
	if s.radius == 0 {
		return s.img.RGBAt(px, py)
	}

	x0, x1 := max(px-s.radius, 0), min(px+s.radius+1, w)
	y0, y1 := max(py-s.radius, 0), min(py+s.radius+1, h)
	n := uint64((x1 - x0) * (y1 - y0))
	stride := w + 1

	var out [3]uint8
	for c, sat := range s.sums {
		sum := sat[y1*stride+x1] - sat[y0*stride+x1] - sat[y1*stride+x0] + sat[y0*stride+x0]
		out[c] = uint8((sum + n/2) / n)
	}
	return pointillism.RGB{R: out[0], G: out[1], B: out[2]}
}
