package filter

import (
	"fmt"
	"math"

	"github.com/dunamismax/pixlens/internal/lens"
	"github.com/dunamismax/pixlens/internal/raster"
)

func GrayscaleLens(src lens.Lens[raster.Pixel], ch Channels) lens.Lens[raster.Pixel] {
	return lens.Map(src, func(p raster.Pixel) raster.Pixel {
		v := raster.ClampByte(p.Luma())
		return ch.merge(p, raster.Pixel{R: v, G: v, B: v, A: v})
	})
}

func Grayscale(img *raster.Image, ch Channels, threads raster.Threads) *raster.Image {
	return lens.Materialize(lens.For(threads), GrayscaleLens(lens.FromImage(img), ch))
}

func SepiaLens(src lens.Lens[raster.Pixel], ch Channels) lens.Lens[raster.Pixel] {
	return lens.Map(src, func(p raster.Pixel) raster.Pixel {
		r, g, b := float64(p.R), float64(p.G), float64(p.B)
		return ch.merge(p, raster.Pixel{
			R: raster.ClampByte(0.393*r + 0.769*g + 0.189*b),
			G: raster.ClampByte(0.349*r + 0.686*g + 0.168*b),
			B: raster.ClampByte(0.272*r + 0.534*g + 0.131*b),
			A: p.A,
		})
	})
}

func Sepia(img *raster.Image, ch Channels, threads raster.Threads) *raster.Image {
	return lens.Materialize(lens.For(threads), SepiaLens(lens.FromImage(img), ch))
}

func NegativeLens(src lens.Lens[raster.Pixel], ch Channels) lens.Lens[raster.Pixel] {
	return lens.Map(src, func(p raster.Pixel) raster.Pixel {
		return ch.merge(p, raster.Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B, A: 255 - p.A})
	})
}

func Negative(img *raster.Image, ch Channels, threads raster.Threads) *raster.Image {
	return lens.Materialize(lens.For(threads), NegativeLens(lens.FromImage(img), ch))
}

// GammaLens maps every selected channel through round(255 * (v/255)^(1/gamma)).
func GammaLens(src lens.Lens[raster.Pixel], gamma float64, ch Channels) (lens.Lens[raster.Pixel], error) {
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return nil, fmt.Errorf("%w: gamma %v must be positive and finite", raster.ErrInvalidParameter, gamma)
	}

	var table [256]uint8
	exp := 1 / gamma
	for i := range table {
		table[i] = raster.ClampByte(255 * math.Pow(float64(i)/255, exp))
	}

	return lens.Map(src, func(p raster.Pixel) raster.Pixel {
		return ch.merge(p, raster.Pixel{R: table[p.R], G: table[p.G], B: table[p.B], A: table[p.A]})
	}), nil
}

func Gamma(img *raster.Image, gamma float64, ch Channels, threads raster.Threads) (*raster.Image, error) {
	l, err := GammaLens(lens.FromImage(img), gamma, ch)
	if err != nil {
		return nil, err
	}
	return lens.Materialize(lens.For(threads), l), nil
}
