package filter

import (
	"testing"

	"github.com/gogpu/pointillism"
)

// Test helper functions shared across filter tests.

// createTestImage creates an image filled with the given color.
func createTestImage(t testing.TB, w, h int, c pointillism.RGB) *pointillism.Image {
	t.Helper()
	img, err := pointillism.NewImage(w, h)
	if err != nil {
		t.Fatalf("NewImage(%d, %d): %v", w, h, err)
	}
	img.Fill(c)
	return img
}

// colorApproxEqual compares two colors channel by channel with tolerance.
func colorApproxEqual(a, b pointillism.RGB, tolerance int) bool {
	return absInt(int(a.R)-int(b.R)) <= tolerance &&
		absInt(int(a.G)-int(b.G)) <= tolerance &&
		absInt(int(a.B)-int(b.B)) <= tolerance
}

// absInt returns the absolute value of an int.
func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// formatFloat formats a float for benchmark names.
func formatFloat(f float64) string {
	if f == float64(int(f)) {
		return formatInt(int(f))
	}
	intPart := int(f)
	fracPart := int((f - float64(intPart)) * 100)
	if fracPart < 0 {
		fracPart = -fracPart
	}
	return formatInt(intPart) + "." + formatInt(fracPart)
}

// formatInt formats an integer without using fmt.
func formatInt(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
