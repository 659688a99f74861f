package filter

import (
	"errors"
	"testing"

	"github.com/dunamismax/pixlens/internal/raster"
)

func TestKuwaharaRadiusZeroIsIdentity(t *testing.T) {
	img := gradientImage(t, 7, 5)

	out, err := Kuwahara(img, 0, 1)
	if err != nil {
		t.Fatalf("kuwahara: %v", err)
	}
	assertSameImage(t, img, out)
}

func TestKuwaharaPreservesStepEdge(t *testing.T) {
	img := splitImage(t, 20, 10, 10)

	for _, radius := range []int{1, 2, DefaultKuwaharaRadius} {
		out, err := Kuwahara(img, radius, 3)
		if err != nil {
			t.Fatalf("kuwahara radius %d: %v", radius, err)
		}
		assertSameImage(t, img, out)
	}
}

func TestKuwaharaKeepsCenterAlpha(t *testing.T) {
	pix := make([]raster.Pixel, 5*5)
	for i := range pix {
		pix[i] = raster.Pixel{R: uint8(i * 9), G: 40, B: 40, A: uint8(255 - i)}
	}
	img, err := raster.New(5, 5, pix)
	if err != nil {
		t.Fatalf("new image: %v", err)
	}

	out, err := Kuwahara(img, 2, 1)
	if err != nil {
		t.Fatalf("kuwahara: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if out.At(x, y).A != img.At(x, y).A {
				t.Fatalf("alpha at (%d,%d): expected %d, got %d", x, y, img.At(x, y).A, out.At(x, y).A)
			}
		}
	}
}

func TestKuwaharaRejectsNegativeRadius(t *testing.T) {
	img := gradientImage(t, 3, 3)
	if _, err := Kuwahara(img, -1, 1); !errors.Is(err, raster.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestKuwaharaTieBreaksTopLeftFirst(t *testing.T) {
	// (0,0)/(2,0) and (0,1)/(2,1) differ in color but share integer luma, so
	// the top-left and top-right quadrants have identical variance.
	img, err := raster.New(3, 3, []raster.Pixel{
		{R: 241, G: 194, B: 107, A: 255}, {R: 120, G: 120, B: 120, A: 255}, {R: 103, G: 254, B: 160, A: 255},
		{R: 241, G: 194, B: 107, A: 255}, {R: 125, G: 118, B: 130, A: 255}, {R: 103, G: 254, B: 160, A: 255},
		{R: 0, G: 0, B: 0, A: 255}, {R: 255, G: 255, B: 255, A: 255}, {R: 0, G: 0, B: 0, A: 255},
	})
	if err != nil {
		t.Fatalf("new image: %v", err)
	}
	if lumaMilli(img.At(0, 0)) != lumaMilli(img.At(2, 0)) || lumaMilli(img.At(0, 1)) != lumaMilli(img.At(2, 1)) {
		t.Fatal("fixture pixels must share luma")
	}

	out, err := Kuwahara(img, 1, 1)
	if err != nil {
		t.Fatalf("kuwahara: %v", err)
	}
	want := raster.Pixel{R: 182, G: 157, B: 116, A: 255}
	if got := out.At(1, 1); got != want {
		t.Fatalf("center: expected top-left mean %+v, got %+v", want, got)
	}
}

func TestScaledVarianceMatchesDefinition(t *testing.T) {
	ls := []uint64{100000, 255000, 0, 37500}
	var sum, sumSq uint64
	for _, l := range ls {
		sum += l
		sumSq += l * l
	}
	got := scaledVariance(uint64(len(ls)), sum, sumSq)

	// Σ over ordered pairs (li-lj)² / 2 equals n·Σl² − (Σl)².
	var want uint64
	for _, a := range ls {
		for _, b := range ls {
			d := int64(a) - int64(b)
			want += uint64(d * d)
		}
	}
	want /= 2
	if got.hi != 0 || got.lo != want {
		t.Fatalf("scaledVariance = %+v, want %d", got, want)
	}
	if !(uint128{lo: 1}).less(uint128{hi: 1}) || (uint128{hi: 1}).less(uint128{lo: ^uint64(0)}) {
		t.Fatal("uint128 ordering is wrong")
	}
}
