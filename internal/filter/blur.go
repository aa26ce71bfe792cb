package filter

import (
	"sync"

	"github.com/gogpu/pointillism"
)

// Filter transforms an image into a new image of the same size.
type Filter interface {
	Apply(src *pointillism.Image) *pointillism.Image
}

// Chain applies filters in order. Nil entries are skipped.
func Chain(src *pointillism.Image, filters ...Filter) *pointillism.Image {
	out := src
	for _, f := range filters {
		if f == nil {
			continue
		}
		out = f.Apply(out)
	}
	return out
}

// BlurFilter applies separable Gaussian blur to an image.
// The separable algorithm processes horizontal and vertical passes
// independently, achieving O(w*h*(rx+ry)) complexity instead of O(w*h*rx*ry).
type BlurFilter struct {
	// RadiusX is the horizontal blur radius (sigma) in pixels.
	RadiusX float64

	// RadiusY is the vertical blur radius (sigma) in pixels.
	RadiusY float64
}

// NewBlurFilter creates a new blur filter with equal radius in both directions.
func NewBlurFilter(radius float64) *BlurFilter {
	return &BlurFilter{
		RadiusX: radius,
		RadiusY: radius,
	}
}

// Apply returns a blurred copy of src.
//  1. Horizontal pass: convolve each row with 1D kernel (src -> temp)
//  2. Vertical pass: convolve each column with 1D kernel (temp -> dst)
func (f *BlurFilter) Apply(src *pointillism.Image) *pointillism.Image {
	if f.RadiusX <= 0 && f.RadiusY <= 0 {
		return src.Clone()
	}

	width, height := src.Width(), src.Height()
	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, CachedGaussianKernel(f.RadiusX))

	dst := src.Clone()
	blurVertical(temp, dst, CachedGaussianKernel(f.RadiusY))
	return dst
}

// blurHorizontal applies 1D horizontal convolution with edge extension.
// Reads from src, writes to temp buffer.
func blurHorizontal(src *pointillism.Image, temp []float32, kernel []float32) {
	half := len(kernel) / 2
	width, height := src.Width(), src.Height()
	data := src.Pix()

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var r, g, b float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}
				i := (row + kx) * 3
				r += float32(data[i+0]) * weight
				g += float32(data[i+1]) * weight
				b += float32(data[i+2]) * weight
			}
			t := (row + x) * 3
			temp[t+0] = r
			temp[t+1] = g
			temp[t+2] = b
		}
	}
}

// blurVertical applies 1D vertical convolution with edge extension.
// Reads from temp buffer, writes to dst.
func blurVertical(temp []float32, dst *pointillism.Image, kernel []float32) {
	half := len(kernel) / 2
	width, height := dst.Width(), dst.Height()
	data := dst.Pix()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}
				t := (ky*width + x) * 3
				r += temp[t+0] * weight
				g += temp[t+1] * weight
				b += temp[t+2] * weight
			}
			i := (y*width + x) * 3
			data[i+0] = clampUint8(r)
			data[i+1] = clampUint8(g)
			data[i+2] = clampUint8(b)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for blur operations.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 512*512*3)}
	},
}

// getTempBuffer retrieves a temporary buffer from the pool.
// The buffer is guaranteed to have at least width*height*3 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 3
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 4096*4096*3 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
