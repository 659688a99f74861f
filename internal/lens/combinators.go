package lens

import (
	"fmt"

	"github.com/dunamismax/pixlens/internal/raster"
)

type mapLens[T, U any] struct {
	base Lens[T]
	fn   func(T) U
}

// Map returns a lens whose value at every point is fn applied to base's value.
func Map[T, U any](base Lens[T], fn func(T) U) Lens[U] {
	return mapLens[T, U]{base: base, fn: fn}
}

func (l mapLens[T, U]) Size() (int, int) {
	return l.base.Size()
}

func (l mapLens[T, U]) At(x, y int) U {
	return l.fn(l.base.At(x, y))
}

type remapLens[T any] struct {
	base          Lens[T]
	width, height int
	fn            func(x, y int) (int, int)
	border        BorderPolicy
}

// Remap declares a new domain of width x height and reads base at fn(x, y).
// Coordinates produced by fn that fall outside base are resolved by border.
func Remap[T any](base Lens[T], width, height int, border BorderPolicy, fn func(x, y int) (int, int)) (Lens[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: remap dimensions %dx%d must be positive", raster.ErrInvalidParameter, width, height)
	}
	return remapLens[T]{base: base, width: width, height: height, fn: fn, border: border}, nil
}

func (l remapLens[T]) Size() (int, int) {
	return l.width, l.height
}

func (l remapLens[T]) At(x, y int) T {
	sx, sy := l.fn(x, y)
	bw, bh := l.base.Size()
	sx, sy = l.border(sx, sy, bw, bh)
	return l.base.At(sx, sy)
}

// Pair is the value of a zipped lens.
type Pair[A, B any] struct {
	First  A
	Second B
}

type zipLens[A, B any] struct {
	a Lens[A]
	b Lens[B]
}

// Zip evaluates two lenses of identical size at the same point.
func Zip[A, B any](a Lens[A], b Lens[B]) (Lens[Pair[A, B]], error) {
	aw, ah := a.Size()
	bw, bh := b.Size()
	if aw != bw || ah != bh {
		return nil, fmt.Errorf("%w: cannot zip %dx%d with %dx%d", raster.ErrInvalidParameter, aw, ah, bw, bh)
	}
	return zipLens[A, B]{a: a, b: b}, nil
}

func (l zipLens[A, B]) Size() (int, int) {
	return l.a.Size()
}

func (l zipLens[A, B]) At(x, y int) Pair[A, B] {
	return Pair[A, B]{First: l.a.At(x, y), Second: l.b.At(x, y)}
}
