package main

import (
	"errors"
	"testing"

	"github.com/dunamismax/pixlens/internal/filter"
	"github.com/dunamismax/pixlens/internal/raster"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("640x480")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w != 640 || h != 480 {
		t.Fatalf("expected 640x480, got %dx%d", w, h)
	}

	if _, _, err := parseSize(" 3X2 "); err != nil {
		t.Fatalf("expected upper-case separator to parse, got %v", err)
	}

	for _, bad := range []string{"", "640", "0x10", "10x-1", "axb", "10x10x10"} {
		if _, _, err := parseSize(bad); !errors.Is(err, raster.ErrInvalidParameter) {
			t.Fatalf("parseSize(%q): expected ErrInvalidParameter, got %v", bad, err)
		}
	}
}

func TestParseCropGeometry(t *testing.T) {
	cases := map[string]filter.CropOptions{
		"10x20+3x4": {Width: 10, Height: 20, OffsetX: 3, OffsetY: 4},
		"5x5":       {Width: 5, Height: 5},
		"5x5+0x0":   {Width: 5, Height: 5},
	}
	for in, want := range cases {
		got, err := parseCropGeometry(in)
		if err != nil {
			t.Fatalf("parseCropGeometry(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parseCropGeometry(%q) = %+v, want %+v", in, got, want)
		}
	}

	for _, bad := range []string{"5x5+", "5x5+-1x2", "0x5+1x1", "5x5+1"} {
		if _, err := parseCropGeometry(bad); !errors.Is(err, raster.ErrInvalidParameter) {
			t.Fatalf("parseCropGeometry(%q): expected ErrInvalidParameter, got %v", bad, err)
		}
	}
}
