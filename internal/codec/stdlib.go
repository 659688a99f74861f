package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/dunamismax/pixlens/internal/raster"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type stdlibBackend struct{}

func (stdlibBackend) decode(data []byte) (*raster.Image, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("decode source image: %w", err)
	}
	img, err := FromImage(src)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

func (stdlibBackend) encode(img *raster.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img.NRGBA(), &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatPNG:
		encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := encoder.Encode(&buf, img.NRGBA()); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s export requires the govips build tag", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// FromImage converts any image.Image into a raster.Image with straight alpha.
func FromImage(src image.Image) (*raster.Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: source image is %dx%d", raster.ErrInvalidParameter, w, h)
	}

	pix := make([]raster.Pixel, w*h)
	switch s := src.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+w]
			for x, v := range row {
				pix[y*w+x] = raster.Gray(v)
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			copyRGBARow(pix[y*w:(y+1)*w], s.Pix[y*s.Stride:y*s.Stride+w*4])
		}
	case *image.Paletted:
		palette := make([]raster.Pixel, len(s.Palette))
		for i, c := range s.Palette {
			palette[i] = toPixel(c)
		}
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+w]
			for x, idx := range row {
				if int(idx) < len(palette) {
					pix[y*w+x] = palette[idx]
				}
			}
		}
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		for y := 0; y < h; y++ {
			copyRGBARow(pix[y*w:(y+1)*w], dst.Pix[y*dst.Stride:y*dst.Stride+w*4])
		}
	}

	return raster.Adopt(w, h, pix), nil
}

func copyRGBARow(dst []raster.Pixel, src []byte) {
	for x := range dst {
		o := x * 4
		dst[x] = raster.Pixel{R: src[o], G: src[o+1], B: src[o+2], A: src[o+3]}
	}
}

func toPixel(c color.Color) raster.Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return raster.Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}
