package pointillism

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Common colours.
var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Luma returns the Rec. 601 luminance in the range [0, 255].
func (c RGB) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Scale multiplies every channel by k, clamping to [0, 255].
func (c RGB) Scale(k float64) RGB {
	return RGB{clamp8(float64(c.R) * k), clamp8(float64(c.G) * k), clamp8(float64(c.B) * k)}
}

// Image is a width×height grid of RGB pixels stored in one owned buffer,
// 3 bytes per pixel, row-major.
//
// Images handed to an algorithm are read-only; stages that change pixels
// produce a new Image. Image implements image.Image.
type Image struct {
	width  int
	height int
	pix    []uint8
}

// NewImage creates a white image with the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	img := &Image{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
	img.Fill(White)
	return img, nil
}

// FromImage converts any image.Image to an RGB Image. Translucent pixels
// are composited onto white so that grayscale, paletted, CMYK and alpha
// inputs all normalise to plain RGB.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	img, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	// Flatten through NRGBA onto a white backdrop.
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Over)

	for y := 0; y < img.height; y++ {
		srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+img.width*4]
		dstRow := img.pix[y*img.width*3 : (y+1)*img.width*3]
		for x := 0; x < img.width; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}
	return img, nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Pix returns the raw RGB buffer. Callers must not modify an Image they
// do not own.
func (m *Image) Pix() []uint8 { return m.pix }

// SameSize reports whether m and other have identical dimensions.
func (m *Image) SameSize(other *Image) bool {
	return other != nil && m.width == other.width && m.height == other.height
}

// RGBAt returns the pixel at (x, y). Coordinates are clamped to the image.
func (m *Image) RGBAt(x, y int) RGB {
	x = clampInt(x, 0, m.width-1)
	y = clampInt(y, 0, m.height-1)
	i := (y*m.width + x) * 3
	return RGB{m.pix[i], m.pix[i+1], m.pix[i+2]}
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (m *Image) Set(x, y int, c RGB) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := (y*m.width + x) * 3
	m.pix[i+0] = c.R
	m.pix[i+1] = c.G
	m.pix[i+2] = c.B
}

// Fill sets every pixel to c.
func (m *Image) Fill(c RGB) {
	for i := 0; i < len(m.pix); i += 3 {
		m.pix[i+0] = c.R
		m.pix[i+1] = c.G
		m.pix[i+2] = c.B
	}
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.pix))
	copy(pix, m.pix)
	return &Image{width: m.width, height: m.height, pix: pix}
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(other *Image) bool {
	if !m.SameSize(other) {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ToRGBA converts the image to an opaque *image.RGBA.
func (m *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	m.writeRGBA(out.Pix)
	return out
}

// writeRGBA expands the RGB buffer into a 4-byte-per-pixel slice.
func (m *Image) writeRGBA(dst []uint8) {
	for i, j := 0, 0; i < len(m.pix); i, j = i+3, j+4 {
		dst[j+0] = m.pix[i+0]
		dst[j+1] = m.pix[i+1]
		dst[j+2] = m.pix[i+2]
		dst[j+3] = 0xff
	}
}

// FromRGBA copies an RGBA byte buffer of matching dimensions into a new
// Image, dropping alpha. It is the inverse of writeRGBA for opaque data.
func FromRGBA(width, height int, data []uint8) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("pointillism: RGBA buffer has %d bytes, want %d", len(data), width*height*4)
	}
	img := &Image{width: width, height: height, pix: make([]uint8, width*height*3)}
	for i, j := 0, 0; j < len(data); i, j = i+3, j+4 {
		img.pix[i+0] = data[j+0]
		img.pix[i+1] = data[j+1]
		img.pix[i+2] = data[j+2]
	}
	return img, nil
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return color.RGBA{}
	}
	return m.RGBAt(x, y)
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
