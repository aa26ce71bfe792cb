package pointillism

import (
	"math/rand/v2"
	"slices"
)

// Info identifies an algorithm.
type Info struct {
	// Key is the stable identifier used to request the algorithm.
	Key         string
	Name        string
	Description string
	Author      string
	Version     string

	// Hidden algorithms are validated but left out of registry snapshots.
	// Use it for templates and work in progress.
	Hidden bool
}

// Algorithm is the capability every pointillism strategy implements.
//
// Render must not modify src and must return an image with the same
// dimensions. All randomness must come from rng so that a fixed seed
// reproduces the output bit for bit.
type Algorithm interface {
	// Info returns the algorithm's identity.
	Info() Info

	// Parameters returns the ordered parameter schema. It may be empty.
	Parameters() []ParameterSpec

	// Render paints src with primitives.
	Render(src *Image, params Params, rng *rand.Rand) (*Rendering, error)
}

// Rendering is what an Algorithm produces.
type Rendering struct {
	Image *Image
	// Primitives is the number of primitives actually drawn.
	Primitives int
}

// Shape is the kind of mark a primitive leaves on the canvas.
type Shape uint8

const (
	// ShapeDot is an axis-aligned ellipse (a circle when both radii match).
	ShapeDot Shape = iota
	// ShapeStroke is an ellipse rotated by Angle, used for brush strokes.
	ShapeStroke
)

func (s Shape) String() string {
	switch s {
	case ShapeDot:
		return "dot"
	case ShapeStroke:
		return "stroke"
	default:
		return "unknown"
	}
}

// Primitive is one mark placed on the output canvas.
type Primitive struct {
	X, Y    float64
	RadiusX float64
	RadiusY float64
	// Angle is the stroke rotation in radians.
	Angle float64
	Color RGB
	// Alpha is the opacity in [0, 1]; 0 is treated as fully opaque.
	Alpha float64
	Shape Shape
}

// Dot returns a circular primitive.
func Dot(x, y, r float64, c RGB) Primitive {
	return Primitive{X: x, Y: y, RadiusX: r, RadiusY: r, Color: c, Shape: ShapeDot}
}

// Stroke returns an elongated primitive rotated by angle.
func Stroke(x, y, length, width, angle float64, c RGB) Primitive {
	return Primitive{X: x, Y: y, RadiusX: length, RadiusY: width, Angle: angle, Color: c, Shape: ShapeStroke}
}

// Descriptor is the immutable registry record for one algorithm.
type Descriptor struct {
	Key         string          `json:"key" yaml:"key"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Author      string          `json:"author" yaml:"author"`
	Version     string          `json:"version" yaml:"version"`
	Parameters  []ParameterSpec `json:"parameters" yaml:"parameters"`
	// Origin names the source the algorithm was loaded from.
	Origin string `json:"-" yaml:"-"`

	impl Algorithm
}

// Algorithm returns the bound implementation.
func (d Descriptor) Algorithm() Algorithm { return d.impl }

// newDescriptor snapshots the algorithm's identity and schema.
func newDescriptor(a Algorithm, origin string) Descriptor {
	info := a.Info()
	return Descriptor{
		Key:         info.Key,
		Name:        info.Name,
		Description: info.Description,
		Author:      info.Author,
		Version:     info.Version,
		Parameters:  slices.Clone(a.Parameters()),
		Origin:      origin,
		impl:        a,
	}
}

// clone copies the parameter schema so callers cannot edit the snapshot.
func (d Descriptor) clone() Descriptor {
	d.Parameters = slices.Clone(d.Parameters)
	for i := range d.Parameters {
		d.Parameters[i].Options = slices.Clone(d.Parameters[i].Options)
	}
	return d
}
