package filter

import (
	"math/rand/v2"

	"github.com/gogpu/pointillism"
)

// TextureFilter overlays a paper-like grain: each pixel's brightness is
// scaled by a factor drawn from [1-Strength, 1+Strength]. The grain is a
// pure function of Seed, so the same seed always produces the same paper.
type TextureFilter struct {
	Strength float64
	Seed     uint64
}

// NewTextureFilter creates a texture filter.
func NewTextureFilter(strength float64, seed uint64) *TextureFilter {
	return &TextureFilter{Strength: strength, Seed: seed}
}

// Apply returns a textured copy of src.
func (f *TextureFilter) Apply(src *pointillism.Image) *pointillism.Image {
	dst := src.Clone()
	if f.Strength <= 0 {
		return dst
	}

	rng := rand.New(rand.NewPCG(f.Seed, f.Seed^0xda942042e4dd58b5))
	data := dst.Pix()
	span := 2 * f.Strength

	for i := 0; i < len(data); i += 3 {
		k := float32(1 - f.Strength + rng.Float64()*span)
		data[i+0] = clampUint8(float32(data[i+0]) * k)
		data[i+1] = clampUint8(float32(data[i+1]) * k)
		data[i+2] = clampUint8(float32(data[i+2]) * k)
	}
	return dst
}
