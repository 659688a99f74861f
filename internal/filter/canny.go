package filter

import (
	"fmt"
	"math"

	"github.com/dunamismax/pixlens/internal/lens"
	"github.com/dunamismax/pixlens/internal/raster"
)

type CannyOptions struct {
	Radius int
	Sigma  float64
	Low    float64
	High   float64
}

func DefaultCannyOptions() CannyOptions {
	return CannyOptions{Radius: 2, Sigma: 2, Low: 10, High: 20}
}

func (o CannyOptions) Validate() error {
	if o.Radius < 0 {
		return fmt.Errorf("%w: canny radius %d must not be negative", raster.ErrInvalidParameter, o.Radius)
	}
	if o.Sigma <= 0 || math.IsNaN(o.Sigma) || math.IsInf(o.Sigma, 0) {
		return fmt.Errorf("%w: canny sigma %v must be positive and finite", raster.ErrInvalidParameter, o.Sigma)
	}
	if o.Low < 0 || o.High < o.Low || math.IsNaN(o.Low) || math.IsNaN(o.High) {
		return fmt.Errorf("%w: canny thresholds low=%v high=%v must satisfy 0 <= low <= high", raster.ErrInvalidParameter, o.Low, o.High)
	}
	return nil
}

// Direction is a gradient direction quantized to 45 degree steps.
type Direction uint8

const (
	DirectionHorizontal   Direction = iota // 0°: compare left and right
	DirectionDiagonalDown                  // 45°: compare (-1,-1) and (+1,+1)
	DirectionVertical                      // 90°: compare above and below
	DirectionDiagonalUp                    // 135°: compare (+1,-1) and (-1,+1)
)

// neighbors returns the two offsets along the gradient direction, with y
// growing downward.
func (d Direction) neighbors() (dx, dy int) {
	switch d {
	case DirectionDiagonalDown:
		return 1, 1
	case DirectionVertical:
		return 0, 1
	case DirectionDiagonalUp:
		return -1, 1
	default:
		return 1, 0
	}
}

func quantizeDirection(gx, gy float64) Direction {
	angle := math.Atan2(gy, gx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return DirectionHorizontal
	case angle < 67.5:
		return DirectionDiagonalDown
	case angle < 112.5:
		return DirectionVertical
	default:
		return DirectionDiagonalUp
	}
}

// MaxMagnitude is the ceiling gradient magnitudes are scaled and clamped to.
const MaxMagnitude = 255.0

// sobelGain is the largest raw Sobel magnitude over 8-bit input divided by 255.
var sobelGain = 4 * math.Sqrt2

type Gradient struct {
	Magnitude float64
	Direction Direction
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// gradientLens applies the Sobel pair to the red channel of a grayscale lens.
func gradientLens(src lens.Lens[raster.Pixel]) (lens.Lens[Gradient], error) {
	return lens.Window(src, 1, lens.Clamp, func(n lens.Neighborhood[raster.Pixel]) Gradient {
		var gx, gy float64
		n.Each(func(dx, dy int, p raster.Pixel) {
			v := float64(p.R)
			gx += sobelX[dy+1][dx+1] * v
			gy += sobelY[dy+1][dx+1] * v
		})
		return Gradient{
			Magnitude: math.Min(math.Hypot(gx, gy)/sobelGain, MaxMagnitude),
			Direction: quantizeDirection(gx, gy),
		}
	})
}

// suppressionLens keeps a magnitude only where it is a local maximum along
// its gradient direction and zeroes it otherwise. The comparison is strict
// toward the trailing neighbor, so a run of equal magnitudes keeps only its
// first pixel.
func suppressionLens(src lens.Lens[Gradient]) (lens.Lens[float64], error) {
	return lens.Window(src, 1, lens.Clamp, func(n lens.Neighborhood[Gradient]) float64 {
		g := n.Center()
		if g.Magnitude == 0 {
			return 0
		}
		dx, dy := g.Direction.neighbors()
		if g.Magnitude >= n.At(dx, dy).Magnitude && g.Magnitude > n.At(-dx, -dy).Magnitude {
			return g.Magnitude
		}
		return 0
	})
}

type edgeClass uint8

const (
	edgeNone edgeClass = iota
	edgeWeak
	edgeStrong
)

func thresholdLens(src lens.Lens[float64], low, high float64) lens.Lens[edgeClass] {
	return lens.Map(src, func(m float64) edgeClass {
		switch {
		case m > 0 && m >= high:
			return edgeStrong
		case m > 0 && m >= low:
			return edgeWeak
		default:
			return edgeNone
		}
	})
}

// hysteresis promotes every weak pixel 8-connected, directly or through
// other weak pixels, to a strong one and drops the rest.
func hysteresis(classes *lens.Grid[edgeClass]) []bool {
	w, h := classes.Size()
	edges := make([]bool, w*h)
	stack := make([]int, 0, 64)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if classes.At(x, y) == edgeStrong && !edges[y*w+x] {
				edges[y*w+x] = true
				stack = append(stack, y*w+x)
			}
			for len(stack) > 0 {
				i := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := i%w, i/w
				for ny := max(0, cy-1); ny <= min(h-1, cy+1); ny++ {
					for nx := max(0, cx-1); nx <= min(w-1, cx+1); nx++ {
						j := ny*w + nx
						if !edges[j] && classes.At(nx, ny) != edgeNone {
							edges[j] = true
							stack = append(stack, j)
						}
					}
				}
			}
		}
	}
	return edges
}

var (
	edgePixel       = raster.Pixel{R: 255, G: 255, B: 255, A: 255}
	backgroundPixel = raster.Pixel{A: 255}
)

// Canny runs grayscale, gaussian smoothing, Sobel gradient, non-maximum
// suppression and hysteresis thresholding. Each stage is materialized
// before the next one starts. The result is white edges on an opaque black
// background.
func Canny(img *raster.Image, opts CannyOptions, threads raster.Threads) (*raster.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := lens.For(threads)

	gray := lens.Materialize(m, GrayscaleLens(lens.FromImage(img), ChannelsRGB))

	blurLens, err := GaussianBlurLens(lens.FromImage(gray), opts.Radius, opts.Sigma, ChannelsRGB)
	if err != nil {
		return nil, err
	}
	smooth := lens.Materialize(m, blurLens)

	gradLens, err := gradientLens(lens.FromImage(smooth))
	if err != nil {
		return nil, err
	}
	gradients := lens.Collect(m, gradLens)

	nmsLens, err := suppressionLens(gradients)
	if err != nil {
		return nil, err
	}
	suppressed := lens.Collect(m, nmsLens)

	classes := lens.Collect(m, thresholdLens(suppressed, opts.Low, opts.High))
	edges := hysteresis(classes)

	w, h := classes.Size()
	out, err := lens.FromFunc(w, h, func(x, y int) raster.Pixel {
		if edges[y*w+x] {
			return edgePixel
		}
		return backgroundPixel
	})
	if err != nil {
		return nil, err
	}
	return lens.Materialize(m, out), nil
}
