//go:build !govips || !cgo

package codec

import (
	"errors"
	"testing"

	"github.com/dunamismax/pixlens/internal/raster"
)

func TestWebPExportNeedsGovips(t *testing.T) {
	img, err := raster.Filled(1, 1, raster.Pixel{A: 255})
	if err != nil {
		t.Fatalf("filled: %v", err)
	}
	if _, err := Encode(img, FormatWebP, 80); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
