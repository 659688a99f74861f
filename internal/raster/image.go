package raster

import (
	"fmt"
	"image"
)

// Image is an immutable RGBA8 pixel buffer. Every operation that produces an
// Image allocates a fresh buffer; accessors hand out copies.
type Image struct {
	width  int
	height int
	pix    []Pixel
}

func New(width, height int, pix []Pixel) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: buffer holds %d pixels, want %dx%d=%d", ErrInvalidParameter, len(pix), width, height, width*height)
	}

	owned := make([]Pixel, len(pix))
	copy(owned, pix)
	return &Image{width: width, height: height, pix: owned}, nil
}

// FromBytes builds an image from a flat R,G,B,A byte buffer.
func FromBytes(width, height int, buf []byte) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(buf) != width*height*4 {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, want %dx%dx4=%d", ErrInvalidParameter, len(buf), width, height, width*height*4)
	}

	pix := make([]Pixel, width*height)
	for i := range pix {
		o := i * 4
		pix[i] = Pixel{R: buf[o], G: buf[o+1], B: buf[o+2], A: buf[o+3]}
	}
	return &Image{width: width, height: height, pix: pix}, nil
}

// Filled returns a width x height image where every pixel is px.
func Filled(width, height int, px Pixel) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	pix := make([]Pixel, width*height)
	for i := range pix {
		pix[i] = px
	}
	return &Image{width: width, height: height, pix: pix}, nil
}

// Adopt wraps pix without copying. The caller must not retain pix; it is used
// by materializers that allocated the buffer themselves.
func Adopt(width, height int, pix []Pixel) *Image {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		panic(fmt.Sprintf("raster: adopt %dx%d with %d pixels", width, height, len(pix)))
	}
	return &Image{width: width, height: height, pix: pix}
}

func (img *Image) Width() int {
	return img.width
}

func (img *Image) Height() int {
	return img.height
}

func (img *Image) Area() int {
	return img.width * img.height
}

// At returns the pixel at (x, y) without a bounds check beyond the slice's own.
func (img *Image) At(x, y int) Pixel {
	return img.pix[y*img.width+x]
}

func (img *Image) Pixel(x, y int) (Pixel, error) {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return Pixel{}, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	return img.At(x, y), nil
}

func (img *Image) Pixels() []Pixel {
	out := make([]Pixel, len(img.pix))
	copy(out, img.pix)
	return out
}

// Bytes returns the raw buffer as interleaved R,G,B,A bytes in row-major order.
func (img *Image) Bytes() []byte {
	out := make([]byte, len(img.pix)*4)
	for i, p := range img.pix {
		o := i * 4
		out[o] = p.R
		out[o+1] = p.G
		out[o+2] = p.B
		out[o+3] = p.A
	}
	return out
}

func (img *Image) Equal(other *Image) bool {
	if img.width != other.width || img.height != other.height {
		return false
	}
	for i := range img.pix {
		if img.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// NRGBA converts to the standard library representation with matching
// straight-alpha semantics.
func (img *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	copy(dst.Pix, img.Bytes())
	return dst
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidParameter, width, height)
	}
	return nil
}
