package pointillism

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	// Register the standard decoders alongside the x/image ones.
	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec errors.
var (
	// ErrUnsupportedFormat is returned when an output format is not supported.
	ErrUnsupportedFormat = errors.New("pointillism: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("pointillism: empty image data")

	// ErrTooLarge is returned when an image exceeds the configured dimension ceiling.
	ErrTooLarge = errors.New("pointillism: image exceeds dimension limit")
)

// Output formats understood by Encode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	// FormatRaw skips encoding; only Result.Image is populated.
	FormatRaw = "raw"
)

// DefaultJPEGQuality is used by Encode for FormatJPEG.
const DefaultJPEGQuality = 92

// NormalizeFormat maps user-facing format names to the canonical constants.
// Unknown names fall back to PNG.
func NormalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "bmp":
		return FormatBMP
	case "tif", "tiff":
		return FormatTIFF
	case "raw", "none":
		return FormatRaw
	default:
		return FormatPNG
	}
}

// Decode decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes into an RGB Image.
// Failures are reported as *DecodeError.
func Decode(data []byte) (*Image, error) {
	return DecodeLimit(data, 0)
}

// DecodeLimit is Decode with a ceiling on the larger image dimension.
// The header is inspected first so oversized inputs are rejected before
// their pixels are allocated. maxDim <= 0 disables the check.
func DecodeLimit(data []byte, maxDim int) (*Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: ErrEmptyData}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %dx%d", ErrEmptyImage, cfg.Width, cfg.Height)}
	}
	if maxDim > 0 && (cfg.Width > maxDim || cfg.Height > maxDim) {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, cfg.Width, cfg.Height, maxDim)}
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%s: %w", format, err)}
	}
	img, err := FromImage(src)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// Encode writes img in the given format (see NormalizeFormat).
func Encode(w io.Writer, img *Image, format string) error {
	switch NormalizeFormat(format) {
	case FormatPNG:
		return png.Encode(w, img.ToRGBA())
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case FormatBMP:
		return bmp.Encode(w, img.ToRGBA())
	case FormatTIFF:
		return tiff.Encode(w, img.ToRGBA(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// EncodeBytes is Encode into a new byte slice.
func EncodeBytes(img *Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
