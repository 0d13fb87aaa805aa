package volume

import (
	"errors"
	"fmt"
)

// ErrNotSquareStack reports an image that cannot be split into square frames.
var ErrNotSquareStack = errors.New("image height must be a multiple of its width")

// Volume is an ordered stack of square frames sharing the planes of the
// image it was decomposed from.
type Volume struct {
	size   int
	frames int
	planes [][]float64
}

// Decompose splits img into height/width square frames.
func Decompose(img *Image) (*Volume, error) {
	if img == nil || len(img.Planes) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrShape)
	}
	if img.Width <= 0 || img.Height%img.Width != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquareStack, img.Width, img.Height)
	}
	n := img.Width * img.Height
	for c, p := range img.Planes {
		if len(p) != n {
			return nil, fmt.Errorf("%w: plane %d has %d values, want %d", ErrShape, c, len(p), n)
		}
	}
	return &Volume{size: img.Width, frames: img.Height / img.Width, planes: img.Planes}, nil
}

// Size returns the edge length of each square frame.
func (v *Volume) Size() int { return v.size }

// Frames returns the number of frames.
func (v *Volume) Frames() int { return v.frames }

// Channels returns the number of channel planes.
func (v *Volume) Channels() int { return len(v.planes) }

// FramePixels returns the number of pixels per frame.
func (v *Volume) FramePixels() int { return v.size * v.size }

// Len returns the number of pixels in the whole volume.
func (v *Volume) Len() int { return v.frames * v.size * v.size }

// Shape returns the volume dimensions as [frames, rows, cols].
func (v *Volume) Shape() []int { return []int{v.frames, v.size, v.size} }

// Planes returns the channel planes of the whole volume, frame-major.
func (v *Volume) Planes() [][]float64 { return v.planes }

// Frame returns views of the channel planes restricted to frame k.
func (v *Volume) Frame(k int) ([][]float64, error) {
	if k < 0 || k >= v.frames {
		return nil, fmt.Errorf("frame index out of range: %d (frames %d)", k, v.frames)
	}
	n := v.FramePixels()
	out := make([][]float64, len(v.planes))
	for c, p := range v.planes {
		out[c] = p[k*n : (k+1)*n : (k+1)*n]
	}
	return out, nil
}
