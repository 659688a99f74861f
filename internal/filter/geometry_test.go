package filter

import (
	"errors"
	"testing"

	"github.com/dunamismax/pixlens/internal/raster"
)

func TestCropCopiesOffsetRegion(t *testing.T) {
	img := gradientImage(t, 4, 4)

	out, err := Crop(img, CropOptions{Width: 2, Height: 2, OffsetX: 1, OffsetY: 1}, 2)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if out.Width() != 2 || out.Height() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", out.Width(), out.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if out.At(x, y) != img.At(x+1, y+1) {
				t.Fatalf("pixel (%d,%d) does not match source (%d,%d)", x, y, x+1, y+1)
			}
		}
	}
}

func TestCropRejectsInvalidRegions(t *testing.T) {
	img := gradientImage(t, 4, 4)

	cases := []CropOptions{
		{Width: 3, Height: 3, OffsetX: 2, OffsetY: 2},
		{Width: 0, Height: 2},
		{Width: 2, Height: -1},
		{Width: 2, Height: 2, OffsetX: -1},
		{Width: 5, Height: 1},
	}
	for _, opts := range cases {
		if _, err := Crop(img, opts, 1); !errors.Is(err, raster.ErrInvalidParameter) {
			t.Fatalf("%+v: expected ErrInvalidParameter, got %v", opts, err)
		}
	}
}

func TestResizeUpscalesCheckerboard(t *testing.T) {
	black := raster.Pixel{A: 255}
	white := raster.Pixel{R: 255, G: 255, B: 255, A: 255}
	img, err := raster.New(2, 2, []raster.Pixel{black, white, white, black})
	if err != nil {
		t.Fatalf("new image: %v", err)
	}

	out, err := Resize(img, 4, 4, 2)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := img.At(x/2, y/2)
			if out.At(x, y) != want {
				t.Fatalf("pixel (%d,%d): expected %+v, got %+v", x, y, want, out.At(x, y))
			}
		}
	}
}

func TestResizeDownscale(t *testing.T) {
	img := gradientImage(t, 4, 4)

	out, err := Resize(img, 2, 2, 1)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if out.Width() != 2 || out.Height() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", out.Width(), out.Height())
	}
	if out.At(1, 1) != img.At(2, 2) {
		t.Fatalf("expected source (2,2) at (1,1), got %+v", out.At(1, 1))
	}
}

func TestResizeRejectsNonPositiveTarget(t *testing.T) {
	img := gradientImage(t, 4, 4)
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if _, err := Resize(img, dims[0], dims[1], 1); !errors.Is(err, raster.ErrInvalidParameter) {
			t.Fatalf("%v: expected ErrInvalidParameter, got %v", dims, err)
		}
	}
}
