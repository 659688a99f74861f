package lens

import (
	"fmt"

	"github.com/dunamismax/pixlens/internal/raster"
)

// BorderPolicy maps a possibly out-of-range coordinate into [0,width) x [0,height).
type BorderPolicy func(x, y, width, height int) (int, int)

// Clamp resolves out-of-range coordinates to the nearest edge pixel.
func Clamp(x, y, width, height int) (int, int) {
	return clampInt(x, 0, width-1), clampInt(y, 0, height-1)
}

// Neighborhood is the (2r+1)x(2r+1) window of a base lens centered on one
// output point. Samples are taken on demand; out-of-range offsets go through
// the window's border policy.
type Neighborhood[T any] struct {
	base          Lens[T]
	border        BorderPolicy
	x, y          int
	radius        int
	width, height int
}

func (n Neighborhood[T]) Radius() int {
	return n.radius
}

func (n Neighborhood[T]) Center() T {
	return n.base.At(n.x, n.y)
}

// At samples the base lens at offset (dx, dy) from the center.
func (n Neighborhood[T]) At(dx, dy int) T {
	x, y := n.x+dx, n.y+dy
	if x < 0 || y < 0 || x >= n.width || y >= n.height {
		x, y = n.border(x, y, n.width, n.height)
	}
	return n.base.At(x, y)
}

// Each visits every sample of the window in row-major order.
func (n Neighborhood[T]) Each(fn func(dx, dy int, v T)) {
	for dy := -n.radius; dy <= n.radius; dy++ {
		for dx := -n.radius; dx <= n.radius; dx++ {
			fn(dx, dy, n.At(dx, dy))
		}
	}
}

type windowLens[T, U any] struct {
	base   Lens[T]
	radius int
	border BorderPolicy
	reduce func(Neighborhood[T]) U
}

// Window returns a lens of the same size as base whose value at (x, y) is
// reduce applied to the neighborhood of radius around (x, y).
func Window[T, U any](base Lens[T], radius int, border BorderPolicy, reduce func(Neighborhood[T]) U) (Lens[U], error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: window radius %d must not be negative", raster.ErrInvalidParameter, radius)
	}
	if border == nil {
		border = Clamp
	}
	return windowLens[T, U]{base: base, radius: radius, border: border, reduce: reduce}, nil
}

func (l windowLens[T, U]) Size() (int, int) {
	return l.base.Size()
}

func (l windowLens[T, U]) At(x, y int) U {
	w, h := l.base.Size()
	return l.reduce(Neighborhood[T]{
		base:   l.base,
		border: l.border,
		x:      x,
		y:      y,
		radius: l.radius,
		width:  w,
		height: h,
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
