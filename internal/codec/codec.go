// Package codec moves images between encoded bytes and raster.Image.
// Decoding accepts gray, gray+alpha, RGB, RGBA and paletted sources and
// always yields 8-bit straight-alpha RGBA.
//
// Encoding is lossless for PNG at the pixel level but not at the file
// level: a fully opaque image is written as an 8-bit RGB PNG without an
// alpha channel. Decoding such a file restores A=255 everywhere, so the
// raster.Image read back equals the one written.
package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/pixlens/internal/raster"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWebP = "webp"

	DefaultJPEGQuality = 90
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type backend interface {
	decode(data []byte) (*raster.Image, string, error)
	encode(img *raster.Image, format string, quality int) ([]byte, error)
}

var active = newBackend()

// NormalizeFormat maps a user-supplied format name onto one of the Format
// constants.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	}
	return NormalizeFormat(ext)
}

func ContentType(format string) string {
	switch format {
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/png"
	}
}

// Decode returns the image and the name of the format it was stored in.
func Decode(data []byte) (*raster.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}
	return active.decode(data)
}

// Encode writes img as format. Quality applies to lossy formats and falls
// back to DefaultJPEGQuality when outside 1..100.
func Encode(img *raster.Image, format string, quality int) ([]byte, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return active.encode(img, format, quality)
}

func ReadFile(path string) (*raster.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read input file %s: %w", path, err)
	}
	img, format, err := Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// WriteFile encodes img in the format named by the path's extension.
func WriteFile(path string, img *raster.Image, quality int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(img, format, quality)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", path, err)
	}
	return nil
}
