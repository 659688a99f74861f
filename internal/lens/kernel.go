package lens

import (
	"fmt"
	"math"

	"github.com/dunamismax/pixlens/internal/raster"
)

// Kernel is an immutable (2r+1)x(2r+1) weight matrix stored row-major.
type Kernel struct {
	radius  int
	weights []float64
}

func NewKernel(radius int, weights []float64) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, fmt.Errorf("%w: kernel radius %d must not be negative", raster.ErrInvalidParameter, radius)
	}
	size := 2*radius + 1
	if len(weights) != size*size {
		return Kernel{}, fmt.Errorf("%w: kernel of radius %d needs %d weights, got %d", raster.ErrInvalidParameter, radius, size*size, len(weights))
	}

	owned := make([]float64, len(weights))
	copy(owned, weights)
	return Kernel{radius: radius, weights: owned}, nil
}

// MeanKernel weights every sample uniformly.
func MeanKernel(radius int) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, fmt.Errorf("%w: mean kernel radius %d must not be negative", raster.ErrInvalidParameter, radius)
	}
	size := 2*radius + 1
	weights := make([]float64, size*size)
	w := 1 / float64(size*size)
	for i := range weights {
		weights[i] = w
	}
	return Kernel{radius: radius, weights: weights}, nil
}

// GaussianKernel samples exp(-(i²+j²)/(2σ²)) and normalizes the result to sum to 1.
func GaussianKernel(radius int, sigma float64) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, fmt.Errorf("%w: gaussian kernel radius %d must not be negative", raster.ErrInvalidParameter, radius)
	}
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return Kernel{}, fmt.Errorf("%w: gaussian sigma %v must be positive and finite", raster.ErrInvalidParameter, sigma)
	}

	size := 2*radius + 1
	weights := make([]float64, size*size)
	denom := 2 * sigma * sigma
	var sum float64
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			v := math.Exp(-float64(i*i+j*j) / denom)
			weights[(j+radius)*size+(i+radius)] = v
			sum += v
		}
	}
	for i := range weights {
		weights[i] /= sum
	}
	return Kernel{radius: radius, weights: weights}, nil
}

func (k Kernel) Radius() int {
	return k.radius
}

// Size is the side length 2r+1.
func (k Kernel) Size() int {
	return 2*k.radius + 1
}

// Weight returns the weight at offset (dx, dy) from the center.
func (k Kernel) Weight(dx, dy int) float64 {
	return k.weights[(dy+k.radius)*k.Size()+(dx+k.radius)]
}

func (k Kernel) Sum() float64 {
	var sum float64
	for _, w := range k.weights {
		sum += w
	}
	return sum
}
