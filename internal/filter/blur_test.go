package filter

import (
	"testing"

	"github.com/gogpu/pointillism"
)

func TestNewBlurFilter(t *testing.T) {
	f := NewBlurFilter(5.0)

	if f.RadiusX != 5.0 {
		t.Errorf("RadiusX = %v, want 5.0", f.RadiusX)
	}
	if f.RadiusY != 5.0 {
		t.Errorf("RadiusY = %v, want 5.0", f.RadiusY)
	}
}

func TestBlurFilterApplyZeroRadius(t *testing.T) {
	src := createTestImage(t, 10, 10, pointillism.RGB{R: 200, G: 10, B: 10})
	src.Set(3, 3, pointillism.RGB{})

	dst := NewBlurFilter(0).Apply(src)

	if !dst.Equal(src) {
		t.Error("zero radius blur should copy the image unchanged")
	}
	if &dst.Pix()[0] == &src.Pix()[0] {
		t.Error("zero radius blur should return a new buffer")
	}
}

func TestBlurFilterApplyUniformImage(t *testing.T) {
	c := pointillism.RGB{R: 40, G: 120, B: 220}
	src := createTestImage(t, 20, 20, c)

	dst := NewBlurFilter(3).Apply(src)

	for _, p := range [][2]int{{0, 0}, {10, 10}, {19, 19}, {0, 19}} {
		got := dst.RGBAt(p[0], p[1])
		if !colorApproxEqual(got, c, 1) {
			t.Errorf("pixel %v = %+v, want ~%+v", p, got, c)
		}
	}
}

func TestBlurFilterApplySmallImage(t *testing.T) {
	src := createTestImage(t, 10, 10, pointillism.White)
	src.Set(5, 5, pointillism.Black)

	dst := NewBlurFilter(1).Apply(src)

	center := dst.RGBAt(5, 5)
	if center.R == 0 {
		t.Error("blur should spread the dark pixel")
	}
	neighbor := dst.RGBAt(6, 5)
	if neighbor.R == 255 {
		t.Error("blur should darken neighbors of the dark pixel")
	}
	if src.RGBAt(5, 5) != pointillism.Black {
		t.Error("blur must not modify its input")
	}
}

func TestBlurFilterPreservesSize(t *testing.T) {
	tests := []struct{ w, h int }{{1, 1}, {1, 7}, {13, 3}, {64, 48}}

	for _, tt := range tests {
		src := createTestImage(t, tt.w, tt.h, pointillism.White)
		dst := NewBlurFilter(2.5).Apply(src)
		if !src.SameSize(dst) {
			t.Errorf("%dx%d: got %dx%d", tt.w, tt.h, dst.Width(), dst.Height())
		}
	}
}

func TestBlurFilterApplyOnlyHorizontal(t *testing.T) {
	src := createTestImage(t, 20, 20, pointillism.White)
	for y := 0; y < 20; y++ {
		src.Set(10, y, pointillism.Black)
	}

	dst := (&BlurFilter{RadiusX: 2, RadiusY: 0}).Apply(src)

	// A vertical line blurred horizontally stays uniform along the line.
	c1 := dst.RGBAt(9, 2)
	c2 := dst.RGBAt(9, 17)
	if !colorApproxEqual(c1, c2, 0) {
		t.Errorf("horizontal-only blur should be uniform vertically: %+v vs %+v", c1, c2)
	}
	if c1.R == 255 {
		t.Error("horizontal blur should spread into adjacent columns")
	}
}

func TestBlurFilterApplyOnlyVertical(t *testing.T) {
	src := createTestImage(t, 20, 20, pointillism.White)
	for x := 0; x < 20; x++ {
		src.Set(x, 10, pointillism.Black)
	}

	dst := (&BlurFilter{RadiusX: 0, RadiusY: 2}).Apply(src)

	c1 := dst.RGBAt(5, 9)
	c2 := dst.RGBAt(15, 9)
	if !colorApproxEqual(c1, c2, 0) {
		t.Errorf("vertical-only blur should be uniform horizontally: %+v vs %+v", c1, c2)
	}
}

func TestChainSkipsNil(t *testing.T) {
	src := createTestImage(t, 4, 4, pointillism.RGB{R: 100, G: 100, B: 100})

	out := Chain(src, nil, NewSaturationFilter(1), nil)

	if !out.Equal(src) {
		t.Error("neutral chain should leave pixels unchanged")
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		v, min, max, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10}, // at max
		{0, 0, 10, 0},   // at min
	}

	for _, tt := range tests {
		got := clampInt(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestClampUint8(t *testing.T) {
	tests := []struct {
		v    float32
		want uint8
	}{
		{0, 0},
		{127.5, 128}, // Rounds up
		{127.4, 127}, // Rounds down
		{255, 255},
		{-10, 0},
		{300, 255},
	}

	for _, tt := range tests {
		got := clampUint8(tt.v)
		if got != tt.want {
			t.Errorf("clampUint8(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

// Benchmarks

func BenchmarkBlurFilter(b *testing.B) {
	sizes := []struct {
		name string
		w, h int
	}{
		{"100x100", 100, 100},
		{"500x500", 500, 500},
	}

	radii := []float64{1, 5, 10}

	for _, size := range sizes {
		for _, r := range radii {
			name := size.name + "_r" + formatFloat(r)
			b.Run(name, func(b *testing.B) {
				src := createTestImage(b, size.w, size.h, pointillism.RGB{R: 255})
				f := NewBlurFilter(r)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_ = f.Apply(src)
				}
			})
		}
	}
}
