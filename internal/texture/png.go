package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/cwbudde/algo-heaviside/dsp/volume"
)

// DecodePNG reads a PNG into a normalized planar image. Gray images give
// one channel, opaque color images three and images with alpha four.
func DecodePNG(r io.Reader) (*volume.Image, error) {
	src, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	channels := pngChannels(src)
	img, err := volume.NewImage(w, h, channels)
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			switch channels {
			case 1:
				g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				img.Planes[0][i] = float64(g.Y) / 0xffff
			default:
				c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				img.Planes[0][i] = float64(c.R) / 0xffff
				img.Planes[1][i] = float64(c.G) / 0xffff
				img.Planes[2][i] = float64(c.B) / 0xffff
				if channels == 4 {
					img.Planes[3][i] = float64(c.A) / 0xffff
				}
			}
		}
	}
	return img, nil
}

func pngChannels(src image.Image) int {
	switch m := src.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.RGBA, *image.RGBA64:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	default:
		return 4
	}
}

// EncodeSpectrumPNG writes values as a 16-bit grayscale PNG of width x
// height, scaled so that the largest value maps to white. An all-zero
// input gives a black image.
func EncodeSpectrumPNG(w io.Writer, values []float64, width, height int) error {
	if width <= 0 || height <= 0 || len(values) != width*height {
		return fmt.Errorf("%w: %d values for %dx%d", ErrFormat, len(values), width, height)
	}

	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}
	scale := 0.0
	if peak > 0 {
		scale = 0xffff / peak
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := min(max(values[y*width+x]*scale, 0), 0xffff)
			img.SetGray16(x, y, color.Gray16{Y: uint16(v + 0.5)})
		}
	}
	return png.Encode(w, img)
}

// WriteSpectrumPNG writes [EncodeSpectrumPNG] output to path.
func WriteSpectrumPNG(path string, values []float64, width, height int) error {
	return writeFile(path, func(w *bufio.Writer) error {
		return EncodeSpectrumPNG(w, values, width, height)
	})
}
