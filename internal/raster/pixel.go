package raster

import "math"

// Pixel holds straight (non-premultiplied) 8-bit RGBA channels.
type Pixel struct {
	R, G, B, A uint8
}

func Gray(v uint8) Pixel {
	return Pixel{R: v, G: v, B: v, A: 255}
}

// Luma is the Rec. 601 weighted brightness of the color channels.
func (p Pixel) Luma() float64 {
	return 0.299*float64(p.R) + 0.587*float64(p.G) + 0.114*float64(p.B)
}

// ClampByte rounds v to the nearest integer and saturates it into [0,255].
func ClampByte(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
