package texture

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"

	"github.com/cwbudde/algo-heaviside/dsp/volume"
)

// MaxPixels bounds the image size accepted from a file header.
const MaxPixels = 1 << 26

// DecodeHDR reads a Radiance picture (RGBE or XYZE, flat or run-length
// encoded scanlines, "-Y h +X w" orientation) into a three-channel HDR RGB
// image.
func DecodeHDR(r io.Reader) (*volume.Image, error) {
	return decodeFloat(r, "hdr", rgbe.DecodeConfig, rgbe.Decode)
}

// decodeFloat checks the header dimensions with decodeConfig before decode
// allocates the pixel buffer, then converts the result to planar RGB.
func decodeFloat(
	r io.Reader,
	name string,
	decodeConfig func(io.Reader) (image.Config, error),
	decode func(io.Reader) (image.Image, error),
) (*volume.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg, err := decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s header: %v", ErrFormat, name, err)
	}
	if err := checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	m, err := decodeRecovered(decode, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	hm, ok := m.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("%w: %s decoder returned %T", ErrFormat, name, m)
	}
	return fromHDR(hm)
}

// decodeRecovered runs decode on data. Corrupt run lengths can index past
// the codec's scanline buffer; that is reported as an error.
func decodeRecovered(decode func(io.Reader) (image.Image, error), data []byte) (m image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("corrupt pixel data: %v", r)
		}
	}()
	return decode(bytes.NewReader(data))
}

// fromHDR copies m into a planar float image flagged HDR.
func fromHDR(m hdr.Image) (*volume.Image, error) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	img, err := volume.NewImage(w, h, 3)
	if err != nil {
		return nil, err
	}
	img.HDR = true

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := m.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
			i := y*w + x
			img.Planes[0][i] = r
			img.Planes[1][i] = g
			img.Planes[2][i] = bl
		}
	}
	return img, nil
}

// checkSize rejects header dimensions that are not positive or exceed
// MaxPixels.
func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrFormat, w, h)
	}
	if w > MaxPixels/h {
		return fmt.Errorf("%w: image size %dx%d exceeds %d pixels", ErrFormat, w, h, MaxPixels)
	}
	return nil
}
