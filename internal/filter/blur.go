package filter

import (
	"github.com/dunamismax/pixlens/internal/lens"
	"github.com/dunamismax/pixlens/internal/raster"
)

// ConvolveLens computes the kernel-weighted sum of the neighborhood for every
// selected channel. Unselected channels, alpha by default, keep the center
// pixel's value.
func ConvolveLens(src lens.Lens[raster.Pixel], k lens.Kernel, ch Channels) (lens.Lens[raster.Pixel], error) {
	return lens.Window(src, k.Radius(), lens.Clamp, func(n lens.Neighborhood[raster.Pixel]) raster.Pixel {
		var r, g, b, a float64
		n.Each(func(dx, dy int, p raster.Pixel) {
			w := k.Weight(dx, dy)
			r += w * float64(p.R)
			g += w * float64(p.G)
			b += w * float64(p.B)
			a += w * float64(p.A)
		})
		return ch.merge(n.Center(), raster.Pixel{
			R: raster.ClampByte(r),
			G: raster.ClampByte(g),
			B: raster.ClampByte(b),
			A: raster.ClampByte(a),
		})
	})
}

func MeanBlurLens(src lens.Lens[raster.Pixel], radius int, ch Channels) (lens.Lens[raster.Pixel], error) {
	k, err := lens.MeanKernel(radius)
	if err != nil {
		return nil, err
	}
	return ConvolveLens(src, k, ch)
}

func MeanBlur(img *raster.Image, radius int, ch Channels, threads raster.Threads) (*raster.Image, error) {
	l, err := MeanBlurLens(lens.FromImage(img), radius, ch)
	if err != nil {
		return nil, err
	}
	return lens.Materialize(lens.For(threads), l), nil
}

func GaussianBlurLens(src lens.Lens[raster.Pixel], radius int, sigma float64, ch Channels) (lens.Lens[raster.Pixel], error) {
	k, err := lens.GaussianKernel(radius, sigma)
	if err != nil {
		return nil, err
	}
	return ConvolveLens(src, k, ch)
}

func GaussianBlur(img *raster.Image, radius int, sigma float64, ch Channels, threads raster.Threads) (*raster.Image, error) {
	l, err := GaussianBlurLens(lens.FromImage(img), radius, sigma, ch)
	if err != nil {
		return nil, err
	}
	return lens.Materialize(lens.For(threads), l), nil
}
