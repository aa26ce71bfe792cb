// Package paint composites primitives onto an image using the gg software
// rasterizer.
package paint

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/pointillism"
)

// ErrNonFinite is returned for a primitive with a NaN or infinite field.
var ErrNonFinite = errors.New("paint: non-finite primitive")

// MinRadius is the smallest radius drawn; smaller radii are raised to it.
const MinRadius = 0.5

// Style holds draw-time multipliers applied to every primitive.
type Style struct {
	// Intensity scales primitive colours, clamped per channel.
	Intensity float64
	// RadiusScale multiplies both radii.
	RadiusScale float64
	// Alpha multiplies primitive opacity.
	Alpha float64
}

// DefaultStyle leaves primitives unchanged.
func DefaultStyle() Style {
	return Style{Intensity: 1, RadiusScale: 1, Alpha: 1}
}

// orOne treats zero (an unset field) as the identity multiplier.
func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Canvas is an output surface. It is not safe for concurrent use.
type Canvas struct {
	width, height int
	pm            *gg.Pixmap
	dc            *gg.Context
	drawn         int
}

// NewCanvas creates a canvas filled with bg.
func NewCanvas(width, height int, bg pointillism.RGB) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", pointillism.ErrEmptyImage, width, height)
	}
	pm := gg.NewPixmap(width, height)
	dc := gg.NewContext(width, height, gg.WithPixmap(pm))
	dc.ClearWithColor(toRGBA(bg, 1))
	return &Canvas{width: width, height: height, pm: pm, dc: dc}, nil
}

// NewCanvasFrom creates a canvas whose background is a copy of img.
func NewCanvasFrom(img *pointillism.Image) (*Canvas, error) {
	c, err := NewCanvas(img.Width(), img.Height(), pointillism.White)
	if err != nil {
		return nil, err
	}
	data := c.pm.Data()
	pix := img.Pix()
	for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
		data[j+0] = pix[i+0]
		data[j+1] = pix[i+1]
		data[j+2] = pix[i+2]
		data[j+3] = 0xff
	}
	return c, nil
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.height }

// Drawn returns how many primitives have been drawn.
func (c *Canvas) Drawn() int { return c.drawn }

// Draw fills one primitive. Dots are axis-aligned ellipses; strokes are
// ellipses rotated by Angle about their centre.
func (c *Canvas) Draw(p pointillism.Primitive, s Style) error {
	if !finite(p.X, p.Y, p.RadiusX, p.RadiusY, p.Angle, p.Alpha) {
		return fmt.Errorf("%w: %+v", ErrNonFinite, p)
	}

	scale := orOne(s.RadiusScale)
	rx := math.Max(p.RadiusX*scale, MinRadius)
	ry := math.Max(p.RadiusY*scale, MinRadius)
	alpha := math.Min(1, math.Max(0, orOne(p.Alpha)*orOne(s.Alpha)))

	col := p.Color
	if k := orOne(s.Intensity); k != 1 {
		col = col.Scale(k)
	}
	c.dc.SetRGBA(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, alpha)

	rotated := p.Shape == pointillism.ShapeStroke && p.Angle != 0
	if rotated {
		c.dc.Push()
		c.dc.RotateAbout(p.Angle, p.X, p.Y)
	}
	c.dc.DrawEllipse(p.X, p.Y, rx, ry)
	err := c.dc.Fill()
	if rotated {
		c.dc.Pop()
	}
	if err != nil {
		return fmt.Errorf("paint: fill: %w", err)
	}
	c.drawn++
	return nil
}

// DrawAll draws primitives in order, stopping at the first error.
func (c *Canvas) DrawAll(ps []pointillism.Primitive, s Style) error {
	for i := range ps {
		if err := c.Draw(ps[i], s); err != nil {
			return err
		}
	}
	return nil
}

// Image copies the canvas into a new Image.
func (c *Canvas) Image() (*pointillism.Image, error) {
	return pointillism.FromRGBA(c.width, c.height, c.pm.Data())
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

func toRGBA(c pointillism.RGB, alpha float64) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
