package lens

import (
	"github.com/dunamismax/pixlens/internal/raster"
	"golang.org/x/sync/errgroup"
)

// Materializer schedules row ranges of an output domain. Every row in
// [0,height) is passed to fn exactly once; ranges never overlap.
type Materializer interface {
	Rows(height int, fn func(start, end int))
}

// Sequential visits rows in order on the calling goroutine.
type Sequential struct{}

func (Sequential) Rows(height int, fn func(start, end int)) {
	if height > 0 {
		fn(0, height)
	}
}

// Parallel splits rows into contiguous chunks and runs them on a fixed-size
// pool of goroutines. Chunks write disjoint output regions, so no locking is
// needed as long as the evaluated lens is pure.
type Parallel struct {
	Threads raster.Threads
}

func (p Parallel) Rows(height int, fn func(start, end int)) {
	if height <= 0 {
		return
	}

	workers := min(p.Threads.Count(), height)
	if workers == 1 {
		fn(0, height)
		return
	}

	chunk := (height + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += chunk {
		end := min(start+chunk, height)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// For picks the materializer for a thread setting: one explicit thread runs
// sequentially, anything else in parallel.
func For(threads raster.Threads) Materializer {
	if threads == 1 {
		return Sequential{}
	}
	return Parallel{Threads: threads}
}

// Grid is a materialized lens of arbitrary value type. It is the stage
// barrier for pipelines whose intermediate values are not pixels.
type Grid[T any] struct {
	width, height int
	cells         []T
}

func (g *Grid[T]) Size() (int, int) {
	return g.width, g.height
}

func (g *Grid[T]) At(x, y int) T {
	return g.cells[y*g.width+x]
}

// Collect evaluates l at every point of its domain.
func Collect[T any](m Materializer, l Lens[T]) *Grid[T] {
	w, h := l.Size()
	cells := make([]T, w*h)
	m.Rows(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := cells[y*w : (y+1)*w]
			for x := range row {
				row[x] = l.At(x, y)
			}
		}
	})
	return &Grid[T]{width: w, height: h, cells: cells}
}

// Materialize realizes a pixel lens into a new image.
func Materialize(m Materializer, l Lens[raster.Pixel]) *raster.Image {
	g := Collect(m, l)
	return raster.Adopt(g.width, g.height, g.cells)
}
