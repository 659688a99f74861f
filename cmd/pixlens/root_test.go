package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dunamismax/pixlens/internal/raster"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: uint8(x * 20), B: uint8(y * 20), A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetOut(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stderr.String(), err
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return img
}

func TestGrayscaleCommand(t *testing.T) {
	in := writeTestPNG(t, 6, 4)
	out := filepath.Join(t.TempDir(), "gray.png")

	logs, err := runCLI(t, "grayscale", "-i", in, "-o", out, "--threads", "2")
	if err != nil {
		t.Fatalf("grayscale: %v", err)
	}
	if !strings.Contains(logs, "[pixlens] ") || !strings.Contains(logs, "filtered action=grayscale") {
		t.Fatalf("expected timing logs, got %q", logs)
	}

	img := readPNG(t, out)
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Fatalf("unexpected output bounds %v", img.Bounds())
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r != g || g != b {
		t.Fatalf("expected gray pixel, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestResizeCommandQuiet(t *testing.T) {
	in := writeTestPNG(t, 8, 8)
	out := filepath.Join(t.TempDir(), "small.png")

	logs, err := runCLI(t, "resize", "-i", in, "-o", out, "--size", "4x2", "--quiet")
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if logs != "" {
		t.Fatalf("expected no output with --quiet, got %q", logs)
	}
	if b := readPNG(t, out).Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("expected 4x2 output, got %v", b)
	}
}

func TestCropCommandOutOfBounds(t *testing.T) {
	in := writeTestPNG(t, 4, 4)
	out := filepath.Join(t.TempDir(), "crop.png")

	_, err := runCLI(t, "crop", "-i", in, "-o", out, "--size", "3x3+2x2", "-q")
	if !errors.Is(err, raster.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, got %v", statErr)
	}
}

func TestInvalidThreadsRejected(t *testing.T) {
	in := writeTestPNG(t, 2, 2)
	out := filepath.Join(t.TempDir(), "x.png")

	_, err := runCLI(t, "negative", "-i", in, "-o", out, "--threads", "0")
	if !errors.Is(err, raster.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBlurRequiresKind(t *testing.T) {
	in := writeTestPNG(t, 2, 2)
	out := filepath.Join(t.TempDir(), "x.png")

	if _, err := runCLI(t, "blur", "box", "-i", in, "-o", out, "-q"); err == nil {
		t.Fatal("expected an error for an unknown blur kind")
	}
	if _, err := runCLI(t, "blur", "gaussian", "-i", in, "-o", out, "-r", "1", "--sigma", "0.8", "-q"); err != nil {
		t.Fatalf("gaussian blur: %v", err)
	}
}
