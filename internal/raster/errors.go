package raster

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrOutOfBounds      = errors.New("out of bounds")
)
