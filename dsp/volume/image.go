package volume

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// ErrShape reports invalid image dimensions.
var ErrShape = errors.New("invalid image shape")

// quantizationScale maps [0,1] pixel values onto approximately [-1,1] under
// the assumption that 8-bit values sit at pixel centres.
const quantizationScale = 2.0 * 255.0 / 256.0

// Image is a 2D pixel grid stored as one row-major plane per channel.
type Image struct {
	Width  int
	Height int
	// Planes holds Channels() slices of Width*Height values.
	Planes [][]float64
	// HDR marks images in native floating range. HDR images are never
	// remapped.
	HDR bool
}

// NewImage allocates a zeroed image.
func NewImage(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, width, height)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channels must be > 0: %d", ErrShape, channels)
	}
	planes := make([][]float64, channels)
	for c := range planes {
		planes[c] = make([]float64, width*height)
	}
	return &Image{Width: width, Height: height, Planes: planes}, nil
}

// Channels returns the number of channel planes.
func (img *Image) Channels() int {
	return len(img.Planes)
}

// At returns channel c of pixel (x, y).
func (img *Image) At(x, y, c int) float64 {
	return img.Planes[c][y*img.Width+x]
}

// Set stores channel c of pixel (x, y).
func (img *Image) Set(x, y, c int, v float64) {
	img.Planes[c][y*img.Width+x] = v
}

// Pixel copies the channels of pixel (x, y) into dst and returns it.
func (img *Image) Pixel(dst []float64, x, y int) []float64 {
	dst = dst[:0]
	i := y*img.Width + x
	for _, p := range img.Planes {
		dst = append(dst, p[i])
	}
	return dst
}

// Select returns a view of the first n channels. Excess channels are
// dropped; the planes are shared with img.
func (img *Image) Select(n int) (*Image, error) {
	if n <= 0 || n > len(img.Planes) {
		return nil, fmt.Errorf("%w: cannot select %d of %d channels", ErrShape, n, len(img.Planes))
	}
	return &Image{Width: img.Width, Height: img.Height, Planes: img.Planes[:n], HDR: img.HDR}, nil
}

// Remapped returns a copy of img mapped from [0,1] to approximately [-1,1]
// via (x-0.5)*2*255/256. HDR images are returned unchanged.
func (img *Image) Remapped() *Image {
	if img.HDR {
		return img
	}
	out := &Image{Width: img.Width, Height: img.Height, Planes: make([][]float64, len(img.Planes))}
	for c, p := range img.Planes {
		q := make([]float64, len(p))
		for i, v := range p {
			q[i] = v - 0.5
		}
		vecmath.ScaleBlock(q, q, quantizationScale)
		out.Planes[c] = q
	}
	return out
}
