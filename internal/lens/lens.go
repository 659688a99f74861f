// Package lens models image transformations as pure functions of output
// coordinates. A Lens is evaluated point by point; combinators wrap lenses in
// new lenses without allocating buffers. Buffers are only produced when a
// Materializer walks a lens's whole domain.
package lens

import (
	"fmt"

	"github.com/dunamismax/pixlens/internal/raster"
)

// Lens is a lazily evaluated, total function over [0,width) x [0,height).
//
// Implementations must be pure: At may be called from several goroutines at
// once and must return the same value for the same point every time. At is
// only defined inside the declared domain; use Look for a checked read.
type Lens[T any] interface {
	Size() (width, height int)
	At(x, y int) T
}

// Look evaluates l at (x, y), failing with raster.ErrOutOfBounds when the
// point lies outside the lens's domain.
func Look[T any](l Lens[T], x, y int) (T, error) {
	w, h := l.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		var zero T
		return zero, fmt.Errorf("%w: (%d,%d) outside %dx%d lens", raster.ErrOutOfBounds, x, y, w, h)
	}
	return l.At(x, y), nil
}

type imageLens struct {
	img *raster.Image
}

// FromImage is the source lens over an image's pixels.
func FromImage(img *raster.Image) Lens[raster.Pixel] {
	return imageLens{img: img}
}

func (l imageLens) Size() (int, int) {
	return l.img.Width(), l.img.Height()
}

func (l imageLens) At(x, y int) raster.Pixel {
	return l.img.At(x, y)
}

type funcLens[T any] struct {
	width, height int
	fn            func(x, y int) T
}

// FromFunc is a synthetic source lens whose value at each point is fn(x, y).
func FromFunc[T any](width, height int, fn func(x, y int) T) (Lens[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: lens dimensions %dx%d must be positive", raster.ErrInvalidParameter, width, height)
	}
	return funcLens[T]{width: width, height: height, fn: fn}, nil
}

func (l funcLens[T]) Size() (int, int) {
	return l.width, l.height
}

func (l funcLens[T]) At(x, y int) T {
	return l.fn(x, y)
}
