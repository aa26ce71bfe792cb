package filter

import "github.com/gogpu/pointillism"

// SharpenFilter is an unsharp mask: the difference between the image and
// its Gaussian blur is scaled by Amount and added back.
type SharpenFilter struct {
	Radius float64
	Amount float64
}

// NewSharpenFilter creates an unsharp-mask filter.
func NewSharpenFilter(radius, amount float64) *SharpenFilter {
	return &SharpenFilter{Radius: radius, Amount: amount}
}

// Apply returns a sharpened copy of src.
func (f *SharpenFilter) Apply(src *pointillism.Image) *pointillism.Image {
	if f.Radius <= 0 || f.Amount == 0 {
		return src.Clone()
	}

	blurred := NewBlurFilter(f.Radius).Apply(src)
	orig := src.Pix()
	data := blurred.Pix()
	amount := float32(f.Amount)

	// Reuse the blurred buffer for the result.
	for i := range data {
		o := float32(orig[i])
		data[i] = clampUint8(o + (o-float32(data[i]))*amount)
	}
	return blurred
}
