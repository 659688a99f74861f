package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dunamismax/pixlens/internal/filter"
	"github.com/dunamismax/pixlens/internal/raster"
)

// parseSize reads a "WxH" pair of positive integers.
func parseSize(s string) (int, int, error) {
	w, h, err := parsePair(s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: size %q: %v", raster.ErrInvalidParameter, s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: size %q must be positive", raster.ErrInvalidParameter, s)
	}
	return w, h, nil
}

// parseCropGeometry reads "WxH+XxY"; the offset part may be omitted.
func parseCropGeometry(s string) (filter.CropOptions, error) {
	sizePart, offsetPart, hasOffset := strings.Cut(strings.TrimSpace(s), "+")

	w, h, err := parseSize(sizePart)
	if err != nil {
		return filter.CropOptions{}, err
	}
	opts := filter.CropOptions{Width: w, Height: h}
	if !hasOffset {
		return opts, nil
	}

	x, y, err := parsePair(offsetPart)
	if err != nil {
		return filter.CropOptions{}, fmt.Errorf("%w: crop offset %q: %v", raster.ErrInvalidParameter, offsetPart, err)
	}
	if x < 0 || y < 0 {
		return filter.CropOptions{}, fmt.Errorf("%w: crop offset %q must not be negative", raster.ErrInvalidParameter, offsetPart)
	}
	opts.OffsetX, opts.OffsetY = x, y
	return opts, nil
}

func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected two numbers separated by x")
	}
	first, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	second, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
