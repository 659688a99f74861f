//go:build govips && cgo

package codec

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/dunamismax/pixlens/internal/raster"
)

// govipsBackend hands formats the standard library reads natively to the
// stdlib path and routes everything else through libvips, which re-exports
// it as PNG for conversion.
type govipsBackend struct{}

func (g govipsBackend) decode(data []byte) (*raster.Image, string, error) {
	switch vips.DetermineImageType(data) {
	case vips.ImageTypePNG:
		img, _, err := stdlibBackend{}.decode(data)
		return img, FormatPNG, err
	case vips.ImageTypeJPEG:
		img, _, err := stdlibBackend{}.decode(data)
		return img, FormatJPEG, err
	case vips.ImageTypeUnknown:
		return nil, "", fmt.Errorf("%w: libvips cannot identify input", ErrUnsupportedFormat)
	}

	ref, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode source image: %w", err)
	}
	defer ref.Close()

	format := vipsFormatName(ref.Format())
	png, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, "", fmt.Errorf("convert %s source: %w", format, err)
	}
	img, _, err := stdlibBackend{}.decode(png)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

func (g govipsBackend) encode(img *raster.Image, format string, quality int) ([]byte, error) {
	source, err := stdlibBackend{}.encode(img, FormatPNG, quality)
	if err != nil {
		return nil, err
	}
	if format == FormatPNG {
		return source, nil
	}

	ref, err := vips.NewImageFromBuffer(source)
	if err != nil {
		return nil, fmt.Errorf("load raster into libvips: %w", err)
	}
	defer ref.Close()

	switch format {
	case FormatJPEG:
		params := vips.NewJpegExportParams()
		params.Quality = quality
		data, _, err := ref.ExportJpeg(params)
		if err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		return data, nil
	case FormatWebP:
		params := vips.NewWebpExportParams()
		params.Quality = quality
		data, _, err := ref.ExportWebp(params)
		if err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func vipsFormatName(t vips.ImageType) string {
	switch t {
	case vips.ImageTypeWEBP:
		return FormatWebP
	case vips.ImageTypeJPEG:
		return FormatJPEG
	case vips.ImageTypePNG:
		return FormatPNG
	default:
		if name, ok := vips.ImageTypes[t]; ok {
			return name
		}
		return "unknown"
	}
}
