// Package texture reads sampling textures into planar float images and
// writes the estimator artifacts.
//
// PNG input is normalized to [0, 1]. Radiance HDR and PFM input keep their
// native float range and are flagged HDR.
package texture

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-heaviside/dsp/volume"
)

// ErrFormat reports an unsupported or malformed image file.
var ErrFormat = errors.New("unsupported image format")

// Load reads the image at path. The decoder is chosen by file extension:
// .png, .hdr or .pfm.
func Load(path string) (*volume.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var img *volume.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = DecodePNG(r)
	case ".hdr":
		img, err = DecodeHDR(r)
	case ".pfm":
		img, err = DecodePFM(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// OutputPath derives an artifact path from the input path by replacing the
// extension with suffix, e.g. ("a/noise.png", "_spectrum.png") gives
// "a/noise_spectrum.png".
func OutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// writeFile creates path and hands it to write. The file is removed again
// when write fails so that no partial artifact is left behind.
func writeFile(path string, write func(w *bufio.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
