package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/dunamismax/pixlens/internal/lens"
	"github.com/dunamismax/pixlens/internal/raster"
)

func TestCannyFlatImageHasNoEdges(t *testing.T) {
	img, err := raster.Filled(16, 12, raster.Pixel{R: 120, G: 80, B: 40, A: 255})
	if err != nil {
		t.Fatalf("filled: %v", err)
	}

	out, err := Canny(img, DefaultCannyOptions(), 4)
	if err != nil {
		t.Fatalf("canny: %v", err)
	}
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if out.At(x, y) != backgroundPixel {
				t.Fatalf("unexpected edge at (%d,%d)", x, y)
			}
		}
	}
}

func TestCannyFindsVerticalEdge(t *testing.T) {
	img := splitImage(t, 20, 10, 10)

	out, err := Canny(img, DefaultCannyOptions(), 2)
	if err != nil {
		t.Fatalf("canny: %v", err)
	}

	for y := 0; y < out.Height(); y++ {
		if (out.At(9, y) == edgePixel) == (out.At(10, y) == edgePixel) {
			t.Fatalf("row %d: expected exactly one edge pixel at x=9 or x=10", y)
		}
		for x := 0; x < out.Width(); x++ {
			px := out.At(x, y)
			if px != edgePixel && px != backgroundPixel {
				t.Fatalf("pixel (%d,%d) is neither edge nor background: %+v", x, y, px)
			}
			if (x <= 6 || x >= 13) && px == edgePixel {
				t.Fatalf("unexpected edge at (%d,%d) far from the step", x, y)
			}
		}
	}
}

func TestCannyThinsSteadyRamp(t *testing.T) {
	const w, h = 13, 8
	pix := make([]raster.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 20)
			pix[y*w+x] = raster.Pixel{R: v, G: v, B: v, A: 255}
		}
	}
	img, err := raster.New(w, h, pix)
	if err != nil {
		t.Fatalf("new image: %v", err)
	}

	out, err := Canny(img, DefaultCannyOptions(), 1)
	if err != nil {
		t.Fatalf("canny: %v", err)
	}
	for y := 0; y < h; y++ {
		edges := 0
		for x := 0; x < w; x++ {
			if out.At(x, y) == edgePixel {
				edges++
			}
		}
		if edges < 1 || edges > 2 {
			t.Fatalf("row %d: expected a thin edge of 1 or 2 pixels, got %d", y, edges)
		}
	}
}

func TestCannySuppressionNeverExceedsGradient(t *testing.T) {
	img := gradientImage(t, 17, 11)
	m := lens.Sequential{}

	grads, err := gradientLens(lens.FromImage(Grayscale(img, ChannelsRGB, 1)))
	if err != nil {
		t.Fatalf("gradient: %v", err)
	}
	g := lens.Collect[Gradient](m, grads)

	nms, err := suppressionLens(g)
	if err != nil {
		t.Fatalf("suppression: %v", err)
	}
	s := lens.Collect[float64](m, nms)

	for y := 0; y < 11; y++ {
		for x := 0; x < 17; x++ {
			v := s.At(x, y)
			if v != 0 && v != g.At(x, y).Magnitude {
				t.Fatalf("(%d,%d): suppressed %v differs from gradient %v", x, y, v, g.At(x, y).Magnitude)
			}
			if v < 0 || v > MaxMagnitude {
				t.Fatalf("(%d,%d): magnitude %v out of range", x, y, v)
			}
		}
	}
}

func TestCannyHysteresisPromotesConnectedWeakPixels(t *testing.T) {
	classes := []edgeClass{
		edgeStrong, edgeWeak, edgeNone, edgeNone,
		edgeNone, edgeNone, edgeWeak, edgeNone,
		edgeNone, edgeNone, edgeNone, edgeNone,
		edgeWeak, edgeNone, edgeNone, edgeNone,
	}
	l, err := lens.FromFunc(4, 4, func(x, y int) edgeClass { return classes[y*4+x] })
	if err != nil {
		t.Fatalf("from func: %v", err)
	}

	edges := hysteresis(lens.Collect(lens.Sequential{}, l))
	want := []bool{
		true, true, false, false,
		false, false, true, false,
		false, false, false, false,
		false, false, false, false,
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], edges[i])
		}
	}
}

func TestQuantizeDirection(t *testing.T) {
	cases := []struct {
		gx, gy float64
		want   Direction
	}{
		{1, 0, DirectionHorizontal},
		{-1, 0, DirectionHorizontal},
		{1, 1, DirectionDiagonalDown},
		{0, 1, DirectionVertical},
		{0, -1, DirectionVertical},
		{-1, 1, DirectionDiagonalUp},
		{1, -1, DirectionDiagonalUp},
	}
	for _, tc := range cases {
		if got := quantizeDirection(tc.gx, tc.gy); got != tc.want {
			t.Fatalf("gx=%v gy=%v: expected %d, got %d", tc.gx, tc.gy, tc.want, got)
		}
	}
}

func TestCannyOptionsValidate(t *testing.T) {
	bad := []CannyOptions{
		{Radius: -1, Sigma: 2, Low: 10, High: 20},
		{Radius: 2, Sigma: 0, Low: 10, High: 20},
		{Radius: 2, Sigma: math.NaN(), Low: 10, High: 20},
		{Radius: 2, Sigma: 2, Low: 30, High: 20},
		{Radius: 2, Sigma: 2, Low: -1, High: 20},
	}
	for _, opts := range bad {
		if err := opts.Validate(); !errors.Is(err, raster.ErrInvalidParameter) {
			t.Fatalf("%+v: expected ErrInvalidParameter, got %v", opts, err)
		}
	}
	if err := DefaultCannyOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
}

func TestCannySinglePixel(t *testing.T) {
	img, err := raster.Filled(1, 1, raster.Pixel{R: 255, A: 255})
	if err != nil {
		t.Fatalf("filled: %v", err)
	}
	out, err := Canny(img, DefaultCannyOptions(), 8)
	if err != nil {
		t.Fatalf("canny: %v", err)
	}
	if out.Width() != 1 || out.Height() != 1 || out.At(0, 0) != backgroundPixel {
		t.Fatalf("unexpected output %dx%d %+v", out.Width(), out.Height(), out.At(0, 0))
	}
}
