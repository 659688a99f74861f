package filter

import (
	"fmt"
	"math"

	"github.com/dunamismax/pixlens/internal/lens"
	"github.com/dunamismax/pixlens/internal/raster"
)

type CropOptions struct {
	Width   int
	Height  int
	OffsetX int
	OffsetY int
}

func CropLens(src lens.Lens[raster.Pixel], opts CropOptions) (lens.Lens[raster.Pixel], error) {
	sw, sh := src.Size()
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: crop size %dx%d must be positive", raster.ErrInvalidParameter, opts.Width, opts.Height)
	}
	if opts.OffsetX < 0 || opts.OffsetY < 0 {
		return nil, fmt.Errorf("%w: crop offset %d,%d must not be negative", raster.ErrInvalidParameter, opts.OffsetX, opts.OffsetY)
	}
	if opts.OffsetX+opts.Width > sw || opts.OffsetY+opts.Height > sh {
		return nil, fmt.Errorf("%w: crop %dx%d+%d+%d exceeds source %dx%d", raster.ErrInvalidParameter, opts.Width, opts.Height, opts.OffsetX, opts.OffsetY, sw, sh)
	}

	return lens.Remap(src, opts.Width, opts.Height, lens.Clamp, func(x, y int) (int, int) {
		return x + opts.OffsetX, y + opts.OffsetY
	})
}

func Crop(img *raster.Image, opts CropOptions, threads raster.Threads) (*raster.Image, error) {
	l, err := CropLens(lens.FromImage(img), opts)
	if err != nil {
		return nil, err
	}
	return lens.Materialize(lens.For(threads), l), nil
}

// ResizeLens is a nearest-neighbor remap: the source coordinate for output
// (ox, oy) is round(ox*srcW/width), round(oy*srcH/height), clamped into the
// source. Halves round to even so integer upscales duplicate pixels evenly.
func ResizeLens(src lens.Lens[raster.Pixel], width, height int) (lens.Lens[raster.Pixel], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize target %dx%d must be positive", raster.ErrInvalidParameter, width, height)
	}

	sw, sh := src.Size()
	sx := float64(sw) / float64(width)
	sy := float64(sh) / float64(height)
	return lens.Remap(src, width, height, lens.Clamp, func(x, y int) (int, int) {
		return int(math.RoundToEven(float64(x) * sx)), int(math.RoundToEven(float64(y) * sy))
	})
}

func Resize(img *raster.Image, width, height int, threads raster.Threads) (*raster.Image, error) {
	l, err := ResizeLens(lens.FromImage(img), width, height)
	if err != nil {
		return nil, err
	}
	return lens.Materialize(lens.For(threads), l), nil
}
