package filter

import "github.com/gogpu/pointillism"

// ColorMatrixFilter applies a 3x4 colour transformation to every pixel:
//
//	[R']   [a00 a01 a02 a03]   [R]
//	[G'] = [a10 a11 a12 a13] * [G]
//	[B']   [a20 a21 a22 a23]   [B]
//	                           [1]
//
// The fourth column is a bias in the [0, 255] range.
type ColorMatrixFilter struct {
	// Matrix is row-major: [0-3] = R, [4-7] = G, [8-11] = B.
	Matrix [12]float32
}

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// NewSaturationFilter adjusts colour saturation.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated
func NewSaturationFilter(factor float32) *ColorMatrixFilter {
	inv := 1 - factor
	return &ColorMatrixFilter{Matrix: [12]float32{
		lumR*inv + factor, lumG * inv, lumB * inv, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0,
	}}
}

// NewContrastFilter adjusts contrast around mid-gray.
// factor: 0.0 = gray, 1.0 = unchanged
func NewContrastFilter(factor float32) *ColorMatrixFilter {
	offset := 128 * (1 - factor)
	return &ColorMatrixFilter{Matrix: [12]float32{
		factor, 0, 0, offset,
		0, factor, 0, offset,
		0, 0, factor, offset,
	}}
}

// NewSepiaFilter applies a sepia tone.
func NewSepiaFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{Matrix: [12]float32{
		0.393, 0.769, 0.189, 0,
		0.349, 0.686, 0.168, 0,
		0.272, 0.534, 0.131, 0,
	}}
}

// Apply returns a transformed copy of src.
func (f *ColorMatrixFilter) Apply(src *pointillism.Image) *pointillism.Image {
	dst := src.Clone()
	data := dst.Pix()
	m := &f.Matrix

	for i := 0; i < len(data); i += 3 {
		r := float32(data[i+0])
		g := float32(data[i+1])
		b := float32(data[i+2])

		data[i+0] = clampUint8(m[0]*r + m[1]*g + m[2]*b + m[3])
		data[i+1] = clampUint8(m[4]*r + m[5]*g + m[6]*b + m[7])
		data[i+2] = clampUint8(m[8]*r + m[9]*g + m[10]*b + m[11])
	}
	return dst
}

// Multiply returns a filter equivalent to applying f and then other.
func (f *ColorMatrixFilter) Multiply(other *ColorMatrixFilter) *ColorMatrixFilter {
	a := &f.Matrix
	b := &other.Matrix

	result := &ColorMatrixFilter{}
	r := &result.Matrix

	// other * f, with the bias column treated as a constant fourth input.
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += b[row*4+k] * a[k*4+col]
			}
			r[row*4+col] = sum
		}
		r[row*4+3] = b[row*4+0]*a[3] + b[row*4+1]*a[7] + b[row*4+2]*a[11] + b[row*4+3]
	}
	return result
}
