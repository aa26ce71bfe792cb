package filter

import (
	"testing"

	"github.com/gogpu/pointillism"
)

func TestMedianFilterRemovesSaltNoise(t *testing.T) {
	gray := pointillism.RGB{R: 100, G: 100, B: 100}
	src := createTestImage(t, 15, 15, gray)
	src.Set(7, 7, pointillism.White)
	src.Set(2, 3, pointillism.Black)

	dst := NewMedianFilter(3).Apply(src)

	if got := dst.RGBAt(7, 7); got != gray {
		t.Errorf("isolated white pixel survived: %+v", got)
	}
	if got := dst.RGBAt(2, 3); got != gray {
		t.Errorf("isolated black pixel survived: %+v", got)
	}
}

func TestMedianFilterKeepsEdges(t *testing.T) {
	src := createTestImage(t, 20, 20, pointillism.White)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			src.Set(x, y, pointillism.Black)
		}
	}

	dst := NewMedianFilter(5).Apply(src)

	if dst.RGBAt(8, 10) != pointillism.White || dst.RGBAt(11, 10) != pointillism.Black {
		t.Errorf("edge moved: left=%+v right=%+v", dst.RGBAt(8, 10), dst.RGBAt(11, 10))
	}
}

func TestMedianFilterMatchesBruteForce(t *testing.T) {
	src := createTestImage(t, 9, 7, pointillism.White)
	pix := src.Pix()
	for i := range pix {
		pix[i] = uint8((i * 37) % 251)
	}

	const size = 3
	dst := NewMedianFilter(size).Apply(src)

	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			var hist [256]int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					hist[src.RGBAt(x+dx, y+dy).R]++
				}
			}
			want := histMedian(&hist, size*size/2+1)
			if got := dst.RGBAt(x, y).R; got != want {
				t.Fatalf("(%d,%d) R = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestMedianFilterSmallSizeIsCopy(t *testing.T) {
	src := createTestImage(t, 4, 4, pointillism.RGB{R: 1, G: 2, B: 3})
	src.Set(1, 1, pointillism.White)

	if !NewMedianFilter(1).Apply(src).Equal(src) {
		t.Error("size 1 median should be the identity")
	}
}
