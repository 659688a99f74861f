package raster

import (
	"errors"
	"testing"
)

func TestNewRejectsBufferMismatch(t *testing.T) {
	if _, err := New(2, 2, make([]Pixel, 3)); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := FromBytes(2, 2, make([]byte, 15)); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := New(0, 2, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero width, got %v", err)
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	pix := []Pixel{{R: 1, A: 255}, {R: 2, A: 255}}
	img, err := New(2, 1, pix)
	if err != nil {
		t.Fatalf("new image: %v", err)
	}

	pix[0].R = 99
	if img.At(0, 0).R != 1 {
		t.Fatal("expected image to own a copy of the input buffer")
	}

	out := img.Pixels()
	out[1].R = 42
	if img.At(1, 0).R != 2 {
		t.Fatal("expected Pixels to return a copy")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	buf := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	img, err := FromBytes(2, 2, buf)
	if err != nil {
		t.Fatalf("from bytes: %v", err)
	}

	if got := img.At(1, 1); got != (Pixel{R: 13, G: 14, B: 15, A: 16}) {
		t.Fatalf("unexpected pixel at (1,1): %+v", got)
	}

	out := img.Bytes()
	for i := range buf {
		if out[i] != buf[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, buf[i], out[i])
		}
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	img, err := Filled(3, 2, Gray(10))
	if err != nil {
		t.Fatalf("filled: %v", err)
	}

	if _, err := img.Pixel(2, 1); err != nil {
		t.Fatalf("expected in-bounds read, got %v", err)
	}
	for _, pt := range [][2]int{{3, 0}, {0, 2}, {-1, 0}} {
		if _, err := img.Pixel(pt[0], pt[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("point %v: expected ErrOutOfBounds, got %v", pt, err)
		}
	}
}

func TestNRGBAMatchesBuffer(t *testing.T) {
	img, err := New(2, 1, []Pixel{{R: 10, G: 20, B: 30, A: 128}, {R: 40, G: 50, B: 60, A: 0}})
	if err != nil {
		t.Fatalf("new image: %v", err)
	}

	n := img.NRGBA()
	c := n.NRGBAAt(0, 0)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 128 {
		t.Fatalf("unexpected NRGBA pixel: %+v", c)
	}
}

func TestClampByte(t *testing.T) {
	cases := map[float64]uint8{
		-3:    0,
		0.49:  0,
		0.5:   1,
		127.4: 127,
		254.6: 255,
		300:   255,
	}
	for in, want := range cases {
		if got := ClampByte(in); got != want {
			t.Fatalf("ClampByte(%v): expected %d, got %d", in, want, got)
		}
	}
}

func TestParseThreads(t *testing.T) {
	auto, err := ParseThreads("auto")
	if err != nil || auto != ThreadsAuto {
		t.Fatalf("expected auto threads, got %v err=%v", auto, err)
	}
	if auto.Count() < 1 {
		t.Fatalf("expected auto to resolve to at least one worker, got %d", auto.Count())
	}

	four, err := ParseThreads("4")
	if err != nil || four.Count() != 4 {
		t.Fatalf("expected 4 threads, got %v err=%v", four, err)
	}

	for _, bad := range []string{"0", "-2", "many"} {
		if _, err := ParseThreads(bad); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("threads %q: expected ErrInvalidParameter, got %v", bad, err)
		}
	}
}
