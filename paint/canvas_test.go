package paint

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/pointillism"
)

func newCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h, pointillism.White)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func snapshot(t *testing.T, c *Canvas) *pointillism.Image {
	t.Helper()
	img, err := c.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	return img
}

func near(a, b pointillism.RGB, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol
}

func TestNewCanvasBackground(t *testing.T) {
	c, err := NewCanvas(5, 4, pointillism.RGB{R: 10, G: 20, B: 30})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	img := snapshot(t, c)
	if img.Width() != 5 || img.Height() != 4 {
		t.Fatalf("size %dx%d", img.Width(), img.Height())
	}
	if got := img.RGBAt(2, 2); got != (pointillism.RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("background = %+v", got)
	}
}

func TestNewCanvasRejectsEmpty(t *testing.T) {
	if _, err := NewCanvas(0, 3, pointillism.White); !errors.Is(err, pointillism.ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func TestNewCanvasFrom(t *testing.T) {
	src, _ := pointillism.NewImage(6, 6)
	src.Set(1, 2, pointillism.RGB{R: 1, G: 2, B: 3})

	c, err := NewCanvasFrom(src)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if !snapshot(t, c).Equal(src) {
		t.Error("canvas should start as a copy of the source")
	}
}

func TestDrawDot(t *testing.T) {
	c := newCanvas(t, 20, 20)
	red := pointillism.RGB{R: 255}

	if err := c.Draw(pointillism.Dot(10, 10, 4, red), DefaultStyle()); err != nil {
		t.Fatal(err)
	}

	img := snapshot(t, c)
	if got := img.RGBAt(10, 10); !near(got, red, 2) {
		t.Errorf("centre = %+v, want red", got)
	}
	if got := img.RGBAt(1, 1); got != pointillism.White {
		t.Errorf("corner = %+v, want white", got)
	}
	if c.Drawn() != 1 {
		t.Errorf("Drawn = %d, want 1", c.Drawn())
	}
}

func TestDrawRotatedStroke(t *testing.T) {
	c := newCanvas(t, 30, 30)
	black := pointillism.Black

	// A long thin stroke rotated a quarter turn becomes vertical.
	p := pointillism.Stroke(15, 15, 10, 1.5, math.Pi/2, black)
	if err := c.Draw(p, DefaultStyle()); err != nil {
		t.Fatal(err)
	}

	img := snapshot(t, c)
	if got := img.RGBAt(15, 22); !near(got, black, 40) {
		t.Errorf("below centre = %+v, want dark", got)
	}
	if got := img.RGBAt(22, 15); got != pointillism.White {
		t.Errorf("right of centre = %+v, want white", got)
	}
}

func TestDrawStyle(t *testing.T) {
	tests := []struct {
		name  string
		color pointillism.RGB
		style Style
		want  pointillism.RGB
		tol   int
	}{
		{"intensity", pointillism.RGB{R: 100, G: 50, B: 25}, Style{Intensity: 2}, pointillism.RGB{R: 200, G: 100, B: 50}, 2},
		{"intensity clamps", pointillism.RGB{R: 200, G: 50, B: 25}, Style{Intensity: 2}, pointillism.RGB{R: 255, G: 100, B: 50}, 2},
		{"half alpha", pointillism.Black, Style{Alpha: 0.5}, pointillism.RGB{R: 128, G: 128, B: 128}, 3},
		{"zero style is identity", pointillism.RGB{R: 40, G: 80, B: 120}, Style{}, pointillism.RGB{R: 40, G: 80, B: 120}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(t, 20, 20)
			if err := c.Draw(pointillism.Dot(10, 10, 5, tt.color), tt.style); err != nil {
				t.Fatal(err)
			}
			if got := snapshot(t, c).RGBAt(10, 10); !near(got, tt.want, tt.tol) {
				t.Errorf("centre = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDrawRadiusScale(t *testing.T) {
	c := newCanvas(t, 40, 40)

	if err := c.Draw(pointillism.Dot(20, 20, 3, pointillism.Black), Style{RadiusScale: 4}); err != nil {
		t.Fatal(err)
	}

	if got := snapshot(t, c).RGBAt(29, 20); !near(got, pointillism.Black, 2) {
		t.Errorf("pixel 9px from centre = %+v, want covered by radius 12", got)
	}
}

func TestDrawRejectsNonFinite(t *testing.T) {
	c := newCanvas(t, 10, 10)

	tests := []pointillism.Primitive{
		pointillism.Dot(math.NaN(), 1, 1, pointillism.Black),
		pointillism.Dot(1, math.Inf(1), 1, pointillism.Black),
		pointillism.Stroke(1, 1, 2, 1, math.NaN(), pointillism.Black),
	}
	for _, p := range tests {
		if err := c.Draw(p, DefaultStyle()); !errors.Is(err, ErrNonFinite) {
			t.Errorf("Draw(%+v) err = %v, want ErrNonFinite", p, err)
		}
	}
	if c.Drawn() != 0 {
		t.Errorf("Drawn = %d, want 0", c.Drawn())
	}
}

func TestDrawAllDeterministic(t *testing.T) {
	prims := []pointillism.Primitive{
		pointillism.Dot(3, 3, 2, pointillism.RGB{R: 200}),
		pointillism.Stroke(8, 6, 5, 1, 0.7, pointillism.RGB{G: 200}),
		pointillism.Dot(12, 9, 3.3, pointillism.RGB{B: 200}),
	}

	render := func() *pointillism.Image {
		c := newCanvas(t, 16, 12)
		if err := c.DrawAll(prims, DefaultStyle()); err != nil {
			t.Fatal(err)
		}
		return snapshot(t, c)
	}

	if !render().Equal(render()) {
		t.Error("identical primitives should composite identically")
	}
}
