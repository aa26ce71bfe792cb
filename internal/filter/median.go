package filter

import (
	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/internal/parallel"
)

// MedianFilter replaces every pixel with the per-channel median of a
// Size×Size window. Edges are extended. It is used to flatten texture
// before gradient analysis while keeping edges sharp.
type MedianFilter struct {
	// Size is the window side; even values are rounded up to the next odd.
	Size int
}

// NewMedianFilter creates a median filter with the given window size.
func NewMedianFilter(size int) *MedianFilter {
	return &MedianFilter{Size: size}
}

// Apply returns a median-filtered copy of src.
//
// Each row keeps one 256-bin histogram per channel and slides it
// horizontally (Huang's algorithm), so the cost per pixel is O(Size)
// rather than O(Size²).
func (f *MedianFilter) Apply(src *pointillism.Image) *pointillism.Image {
	dst := src.Clone()
	size := f.Size
	if size <= 1 {
		return dst
	}
	if size%2 == 0 {
		size++
	}

	half := size / 2
	width, height := src.Width(), src.Height()
	in := src.Pix()
	out := dst.Pix()
	target := size*size/2 + 1

	parallel.Rows(height, func(y0, y1 int) {
		var hist [3][256]int
		for y := y0; y < y1; y++ {
			medianRow(&hist, in, out, y, width, height, half, target)
		}
	})
	return dst
}

// medianRow filters row y, reusing hist as scratch space.
func medianRow(hist *[3][256]int, in, out []uint8, y, width, height, half, target int) {
	for c := range hist {
		hist[c] = [256]int{}
	}

	// Prime the window centred on x = 0.
	for dy := -half; dy <= half; dy++ {
		yy := clampInt(y+dy, 0, height-1)
		for dx := -half; dx <= half; dx++ {
			xx := clampInt(dx, 0, width-1)
			i := (yy*width + xx) * 3
			hist[0][in[i+0]]++
			hist[1][in[i+1]]++
			hist[2][in[i+2]]++
		}
	}

	for x := 0; x < width; x++ {
		o := (y*width + x) * 3
		for c := 0; c < 3; c++ {
			out[o+c] = histMedian(&hist[c], target)
		}

		if x == width-1 {
			break
		}

		// Slide: drop column x-half, add column x+half+1.
		oldX := clampInt(x-half, 0, width-1)
		newX := clampInt(x+half+1, 0, width-1)
		for dy := -half; dy <= half; dy++ {
			yy := clampInt(y+dy, 0, height-1)
			i := (yy*width + oldX) * 3
			j := (yy*width + newX) * 3
			for c := 0; c < 3; c++ {
				hist[c][in[i+c]]--
				hist[c][in[j+c]]++
			}
		}
	}
}

// histMedian returns the value at which the cumulative count reaches target.
func histMedian(h *[256]int, target int) uint8 {
	sum := 0
	for v := 0; v < 256; v++ {
		sum += h[v]
		if sum >= target {
			return uint8(v)
		}
	}
	return 255
}

// clampInt clamps an integer to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
