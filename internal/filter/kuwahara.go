package filter

import (
	"math/bits"

	"github.com/dunamismax/pixlens/internal/lens"
	"github.com/dunamismax/pixlens/internal/raster"
)

const DefaultKuwaharaRadius = 5

// quadrant offsets of the top-left corner relative to the center, scaled by
// the radius. Order is the tie-break priority.
var quadrants = [4][2]int{
	{-1, -1}, // top-left
	{0, -1},  // top-right
	{-1, 0},  // bottom-left
	{0, 0},   // bottom-right
}

// KuwaharaLens splits the (2r+1)² window into four overlapping (r+1)²
// quadrants that share the center pixel, and outputs the color mean of the
// quadrant with the lowest luminance variance. Alpha passes through.
//
// Variances are compared exactly on integer luma so equal quadrants always
// resolve in quadrant order.
func KuwaharaLens(src lens.Lens[raster.Pixel], radius int) (lens.Lens[raster.Pixel], error) {
	return lens.Window(src, radius, lens.Clamp, func(n lens.Neighborhood[raster.Pixel]) raster.Pixel {
		r := n.Radius()
		count := uint64((r + 1) * (r + 1))

		var (
			best  uint128
			found bool
			out   raster.Pixel
		)
		for _, q := range quadrants {
			x0, y0 := q[0]*r, q[1]*r

			var sumL, sumL2, sumR, sumG, sumB uint64
			for dy := y0; dy <= y0+r; dy++ {
				for dx := x0; dx <= x0+r; dx++ {
					p := n.At(dx, dy)
					l := lumaMilli(p)
					sumL += l
					sumL2 += l * l
					sumR += uint64(p.R)
					sumG += uint64(p.G)
					sumB += uint64(p.B)
				}
			}

			spread := scaledVariance(count, sumL, sumL2)
			if !found || spread.less(best) {
				best, found = spread, true
				c := float64(count)
				out = raster.Pixel{
					R: raster.ClampByte(float64(sumR) / c),
					G: raster.ClampByte(float64(sumG) / c),
					B: raster.ClampByte(float64(sumB) / c),
				}
			}
		}

		out.A = n.Center().A
		return out
	})
}

// lumaMilli is Pixel.Luma scaled by 1000, exact in integers.
func lumaMilli(p raster.Pixel) uint64 {
	return 299*uint64(p.R) + 587*uint64(p.G) + 114*uint64(p.B)
}

type uint128 struct {
	hi, lo uint64
}

func (a uint128) less(b uint128) bool {
	return a.hi < b.hi || (a.hi == b.hi && a.lo < b.lo)
}

// scaledVariance returns n·Σl² − (Σl)², which is n² times the variance and
// never negative.
func scaledVariance(n, sum, sumSq uint64) uint128 {
	aHi, aLo := bits.Mul64(n, sumSq)
	bHi, bLo := bits.Mul64(sum, sum)
	lo, borrow := bits.Sub64(aLo, bLo, 0)
	hi, _ := bits.Sub64(aHi, bHi, borrow)
	return uint128{hi: hi, lo: lo}
}

func Kuwahara(img *raster.Image, radius int, threads raster.Threads) (*raster.Image, error) {
	l, err := KuwaharaLens(lens.FromImage(img), radius)
	if err != nil {
		return nil, err
	}
	return lens.Materialize(lens.For(threads), l), nil
}
