package placement

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/gogpu/pointillism/analysis"
)

// Point is one primitive position. Scale multiplies the base primitive
// size; it is 1 for every placement except Adaptive.
type Point struct {
	X, Y  float64
	Scale float64
	// Detail is the local detail in [0, 1], when known.
	Detail float64
}

// Uniform returns n positions drawn uniformly over the integer pixel grid
// of a width×height image.
func Uniform(width, height, n int, rng *rand.Rand) []Point {
	if width <= 0 || height <= 0 || n <= 0 {
		return nil
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X:     float64(rng.IntN(width)),
			Y:     float64(rng.IntN(height)),
			Scale: 1,
		}
	}
	return pts
}

// Grid returns one position per scale×scale cell, jittered by up to
// scale/2 in each direction (wrapping at the borders) and shuffled.
func Grid(width, height, scale int, rng *rand.Rand) []Point {
	if width <= 0 || height <= 0 {
		return nil
	}
	if scale < 1 {
		scale = 1
	}
	r := scale / 2

	pts := make([]Point, 0, ((height+scale-1)/scale)*((width+scale-1)/scale))
	for i := 0; i < height; i += scale {
		for j := 0; j < width; j += scale {
			y := mod(i+rng.IntN(2*r+1)-r, height)
			x := mod(j+rng.IntN(2*r+1)-r, width)
			pts = append(pts, Point{X: float64(x), Y: float64(y), Scale: 1})
		}
	}
	rng.Shuffle(len(pts), func(a, b int) { pts[a], pts[b] = pts[b], pts[a] })
	return pts
}

// Defaults for AdaptiveOptions.
const (
	DefaultCellSize    = 8
	DefaultDetailFloor = 0.05
	// MinStrength is the smallest effective positive strength; smaller
	// positive values are raised to it.
	MinStrength = 1e-3
)

// AdaptiveOptions controls detail-adaptive placement.
type AdaptiveOptions struct {
	// Strength is the exponent applied to detail; 0 yields uniform density
	// and any positive value puts strictly more primitives where detail is
	// higher.
	Strength float64
	// Floor keeps flat cells from receiving a zero share.
	Floor float64
	// Cell is the side of the budgeting cells in pixels.
	Cell int
}

func (o AdaptiveOptions) normalized() AdaptiveOptions {
	switch {
	case o.Strength <= 0 || math.IsNaN(o.Strength):
		o.Strength = 0
	case o.Strength < MinStrength:
		o.Strength = MinStrength
	}
	if o.Floor <= 0 {
		o.Floor = DefaultDetailFloor
	}
	if o.Cell < 1 {
		o.Cell = DefaultCellSize
	}
	return o
}

// Cell is one budgeting cell of an adaptive placement.
type Cell struct {
	X0, Y0, X1, Y1 int
	Detail         float64
	// Quota is the exact real-valued share of the total.
	Quota float64
	// Count is Quota floored, plus one for the cells that receive a
	// leftover unit.
	Count int
}

// Area returns the cell area in pixels.
func (c Cell) Area() int { return (c.X1 - c.X0) * (c.Y1 - c.Y0) }

// Budget splits n primitives over the cells of the detail map. A cell's
// quota is n·w/Σw with w = area·(floor+detail)^strength. Counts are the
// floored quotas; the leftover units go one each to the most detailed
// cells (largest fractional part first when strength is 0), so counts sum
// to exactly n and stay within 1 of their quota.
func Budget(m *analysis.DetailMap, n int, opts AdaptiveOptions) []Cell {
	opts = opts.normalized()
	w, h := m.Width(), m.Height()
	if n < 0 {
		n = 0
	}

	cells := make([]Cell, 0, ((w+opts.Cell-1)/opts.Cell)*((h+opts.Cell-1)/opts.Cell))
	weights := make([]float64, 0, cap(cells))
	total := 0.0
	for y := 0; y < h; y += opts.Cell {
		for x := 0; x < w; x += opts.Cell {
			c := Cell{X0: x, Y0: y, X1: min(x+opts.Cell, w), Y1: min(y+opts.Cell, h)}
			c.Detail = m.Mean(c.X0, c.Y0, c.X1, c.Y1)
			wt := float64(c.Area()) * math.Pow(opts.Floor+c.Detail, opts.Strength)
			cells = append(cells, c)
			weights = append(weights, wt)
			total += wt
		}
	}

	assigned := 0
	for i := range cells {
		cells[i].Quota = float64(n) * weights[i] / total
		cells[i].Count = int(math.Floor(cells[i].Quota))
		assigned += cells[i].Count
	}

	if rest := n - assigned; rest > 0 {
		order := make([]int, len(cells))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			return leftoverOrder(cells[a], cells[b], opts.Strength > 0)
		})
		for i := 0; i < rest; i++ {
			cells[order[i%len(order)]].Count++
		}
	}
	return cells
}

// Adaptive places n primitives according to Budget. Positions are jittered
// uniformly inside their cell and the result is shuffled so drawing order
// does not sweep the image. Scale shrinks as detail grows, from 1+s/2 on
// flat cells to 1-s/2 on the most detailed, where s = min(Strength, 1).
func Adaptive(m *analysis.DetailMap, n int, opts AdaptiveOptions, rng *rand.Rand) []Point {
	opts = opts.normalized()
	cells := Budget(m, n, opts)
	s := math.Min(opts.Strength, 1)

	pts := make([]Point, 0, n)
	for _, c := range cells {
		scale := 1 + s*(0.5-c.Detail)
		for k := 0; k < c.Count; k++ {
			pts = append(pts, Point{
				X:      float64(c.X0) + rng.Float64()*float64(c.X1-c.X0),
				Y:      float64(c.Y0) + rng.Float64()*float64(c.Y1-c.Y0),
				Scale:  scale,
				Detail: c.Detail,
			})
		}
	}
	rng.Shuffle(len(pts), func(a, b int) { pts[a], pts[b] = pts[b], pts[a] })
	return pts
}

// leftoverOrder ranks cells for the units left after flooring the quotas.
// With a positive strength the more detailed cell goes first, so rounding
// can never level a detail gradient; otherwise, and on equal detail, the
// larger fractional part wins. Remaining ties keep index order.
func leftoverOrder(a, b Cell, byDetail bool) int {
	if byDetail {
		if c := cmp.Compare(b.Detail, a.Detail); c != 0 {
			return c
		}
	}
	fa := a.Quota - float64(a.Count)
	fb := b.Quota - float64(b.Count)
	return cmp.Compare(fb, fa)
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
