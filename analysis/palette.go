package analysis

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/gogpu/pointillism"
)

// Palette clustering limits.
const (
	// ClusterMaxSize is the longest side the image is reduced to before
	// clustering.
	ClusterMaxSize = 200
	// clusterIterations bounds Lloyd iterations.
	clusterIterations = 24
)

// Distance names a colour metric for nearest-colour lookup.
type Distance string

// Colour metrics.
const (
	DistanceRGB Distance = "rgb"
	DistanceLab Distance = "lab"
)

// ErrPaletteSize is returned for a non-positive palette size.
var ErrPaletteSize = errors.New("analysis: palette size must be positive")

// Palette is an ordered set of colours. The first Base entries are the
// clustered colours; any further entries are variants added by Extend.
type Palette struct {
	Colors []pointillism.RGB
	Base   int
}

// Len returns the number of colours.
func (p Palette) Len() int { return len(p.Colors) }

// KMeans clusters the colours of img into k representative colours using
// k-means++ seeding and Lloyd iterations. The image is first reduced so its
// longest side is at most ClusterMaxSize.
func KMeans(img *pointillism.Image, k int, rng *rand.Rand) (Palette, error) {
	if k <= 0 {
		return Palette{}, fmt.Errorf("%w: %d", ErrPaletteSize, k)
	}
	samples := clusterSamples(img)
	if k > len(samples) {
		k = len(samples)
	}

	centers := seedCenters(samples, k, rng)
	assign := make([]int, len(samples))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < clusterIterations; iter++ {
		changed := false
		for i, s := range samples {
			best := nearestIndex(centers, s)
			if best != assign[i] {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][4]float64, k)
		for i, s := range samples {
			c := &sums[assign[i]]
			c[0] += s[0]
			c[1] += s[1]
			c[2] += s[2]
			c[3]++
		}
		for j := range centers {
			// Empty clusters keep their previous centre.
			if n := sums[j][3]; n > 0 {
				centers[j] = [3]float64{sums[j][0] / n, sums[j][1] / n, sums[j][2] / n}
			}
		}
	}

	colors := make([]pointillism.RGB, k)
	for j, c := range centers {
		colors[j] = pointillism.RGB{R: round8(c[0]), G: round8(c[1]), B: round8(c[2])}
	}
	return Palette{Colors: colors, Base: k}, nil
}

// HSVShift describes one palette variant: hue in degrees, saturation and
// value as fractions of full scale.
type HSVShift struct {
	Hue, Saturation, Value float64
}

// Extend appends one shifted copy of the base colours per shift. Saturation
// and value are clamped to [0, 1]; hue wraps.
func (p Palette) Extend(shifts ...HSVShift) Palette {
	base := p.Colors
	if p.Base > 0 && p.Base < len(p.Colors) {
		base = p.Colors[:p.Base]
	}
	out := make([]pointillism.RGB, 0, len(base)*(len(shifts)+1))
	out = append(out, base...)
	for _, sh := range shifts {
		for _, c := range base {
			h, s, v := toColorful(c).Hsv()
			h = math.Mod(h+sh.Hue, 360)
			if h < 0 {
				h += 360
			}
			s = clamp01(s + sh.Saturation)
			v = clamp01(v + sh.Value)
			out = append(out, fromColorful(colorful.Hsv(h, s, v)))
		}
	}
	return Palette{Colors: out, Base: len(base)}
}

// Matcher returns a function mapping a colour to its nearest palette entry
// under the given metric.
func (p Palette) Matcher(metric Distance) func(pointillism.RGB) pointillism.RGB {
	if metric == DistanceLab {
		labs := make([]colorful.Color, len(p.Colors))
		for i, c := range p.Colors {
			labs[i] = toColorful(c)
		}
		return func(c pointillism.RGB) pointillism.RGB {
			q := toColorful(c)
			best, bestD := 0, math.Inf(1)
			for i, l := range labs {
				if d := q.DistanceLab(l); d < bestD {
					best, bestD = i, d
				}
			}
			return p.Colors[best]
		}
	}

	centers := make([][3]float64, len(p.Colors))
	for i, c := range p.Colors {
		centers[i] = [3]float64{float64(c.R), float64(c.G), float64(c.B)}
	}
	return func(c pointillism.RGB) pointillism.RGB {
		return p.Colors[nearestIndex(centers, [3]float64{float64(c.R), float64(c.G), float64(c.B)})]
	}
}

// Probabilities returns the cumulative selection distribution over the
// palette for colour c. Closer colours are exponentially more likely;
// larger k concentrates the mass on the nearest entries.
func (p Palette) Probabilities(c pointillism.RGB, k float64) []float64 {
	n := len(p.Colors)
	weights := make([]float64, n)
	if n == 0 {
		return weights
	}

	far := 0.0
	for i, pc := range p.Colors {
		weights[i] = rgbDistance(c, pc)
		far = math.Max(far, weights[i])
	}

	total := 0.0
	for i := range weights {
		weights[i] = far - weights[i]
		total += weights[i]
	}

	// exp(k·n·w) normalised; the largest exponent is subtracted first so
	// large palettes do not overflow.
	peak := math.Inf(-1)
	for i := range weights {
		if total > 0 {
			weights[i] = k * float64(n) * weights[i] / total
		} else {
			weights[i] = 0
		}
		peak = math.Max(peak, weights[i])
	}
	sum := 0.0
	for i := range weights {
		weights[i] = math.Exp(weights[i] - peak)
		sum += weights[i]
	}

	acc := 0.0
	for i := range weights {
		acc += weights[i] / sum
		weights[i] = acc
	}
	weights[n-1] = 1
	return weights
}

// Pick draws a palette colour from a cumulative distribution produced by
// Probabilities.
func (p Palette) Pick(cumulative []float64, rng *rand.Rand) pointillism.RGB {
	r := rng.Float64()
	for i, c := range cumulative {
		if r <= c {
			return p.Colors[i]
		}
	}
	return p.Colors[len(p.Colors)-1]
}

// clusterSamples downsizes img and returns its pixels as float triples.
func clusterSamples(img *pointillism.Image) [][3]float64 {
	w, h := img.Width(), img.Height()
	var src image.Image = img
	if longest := max(w, h); longest > ClusterMaxSize {
		ratio := float64(ClusterMaxSize) / float64(longest)
		nw, nh := max(1, int(float64(w)*ratio)), max(1, int(float64(h)*ratio))
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		src = dst
		w, h = nw, nh
	}

	out := make([][3]float64, 0, w*h)
	if rgba, ok := src.(*image.RGBA); ok {
		for i := 0; i < len(rgba.Pix); i += 4 {
			out = append(out, [3]float64{float64(rgba.Pix[i]), float64(rgba.Pix[i+1]), float64(rgba.Pix[i+2])})
		}
		return out
	}
	pix := img.Pix()
	for i := 0; i < len(pix); i += 3 {
		out = append(out, [3]float64{float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])})
	}
	return out
}

// seedCenters picks k initial centres with k-means++.
func seedCenters(samples [][3]float64, k int, rng *rand.Rand) [][3]float64 {
	centers := make([][3]float64, 0, k)
	centers = append(centers, samples[rng.IntN(len(samples))])

	dist := make([]float64, len(samples))
	for i := range dist {
		dist[i] = sqDist(samples[i], centers[0])
	}

	for len(centers) < k {
		total := 0.0
		for _, d := range dist {
			total += d
		}

		next := rng.IntN(len(samples))
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range dist {
				target -= d
				if target <= 0 && d > 0 {
					next = i
					break
				}
			}
		}

		c := samples[next]
		centers = append(centers, c)
		for i := range dist {
			dist[i] = math.Min(dist[i], sqDist(samples[i], c))
		}
	}
	return centers
}

func nearestIndex(centers [][3]float64, s [3]float64) int {
	best, bestD := 0, math.Inf(1)
	for j, c := range centers {
		if d := sqDist(s, c); d < bestD {
			best, bestD = j, d
		}
	}
	return best
}

func sqDist(a, b [3]float64) float64 {
	dr, dg, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dr*dr + dg*dg + db*db
}

func rgbDistance(a, b pointillism.RGB) float64 {
	return math.Sqrt(sqDist(
		[3]float64{float64(a.R), float64(a.G), float64(a.B)},
		[3]float64{float64(b.R), float64(b.G), float64(b.B)}))
}

func toColorful(c pointillism.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) pointillism.RGB {
	r, g, b := c.Clamped().RGB255()
	return pointillism.RGB{R: r, G: g, B: b}
}

func round8(v float64) uint8 {
	return uint8(math.Min(255, math.Max(0, math.Round(v))))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
