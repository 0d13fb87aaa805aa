package texture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mdouchement/hdr/codec/pfm"

	"github.com/cwbudde/algo-heaviside/dsp/volume"
)

// DecodePFM reads a Portable FloatMap ("Pf" gray or "PF" color). Rows are
// stored bottom to top; a negative scale marks little-endian samples and
// samples are divided by its magnitude.
func DecodePFM(r io.Reader) (*volume.Image, error) {
	br := bufio.NewReader(r)
	sig, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("%w: pfm header: %v", ErrFormat, err)
	}
	switch string(sig) {
	case "PF":
		return decodeFloat(br, "pfm", pfm.DecodeConfig, pfm.Decode)
	case "Pf":
		return decodeGrayPFM(br)
	}
	return nil, fmt.Errorf("%w: pfm signature %q", ErrFormat, sig)
}

// decodeGrayPFM reads the single-channel variant, which the pfm codec does
// not implement.
func decodeGrayPFM(br *bufio.Reader) (*volume.Image, error) {
	fields := make([]string, 0, 4)
	for len(fields) < 4 {
		tok, err := pfmToken(br)
		if err != nil {
			return nil, fmt.Errorf("%w: pfm header: %v", ErrFormat, err)
		}
		fields = append(fields, tok)
	}

	w, errW := strconv.Atoi(fields[1])
	h, errH := strconv.Atoi(fields[2])
	scale, errS := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || errS != nil || scale == 0 {
		return nil, fmt.Errorf("%w: pfm header %v", ErrFormat, fields)
	}
	if err := checkSize(w, h); err != nil {
		return nil, err
	}

	var order binary.ByteOrder = binary.BigEndian
	if scale < 0 {
		order = binary.LittleEndian
	}
	inv := 1 / math.Abs(scale)

	img, err := volume.NewImage(w, h, 1)
	if err != nil {
		return nil, err
	}
	img.HDR = true

	row := make([]byte, 4*w)
	for y := h - 1; y >= 0; y-- {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("%w: pfm row %d: %v", ErrFormat, y, err)
		}
		for x := 0; x < w; x++ {
			v := math.Float32frombits(order.Uint32(row[4*x:]))
			img.Planes[0][y*w+x] = float64(v) * inv
		}
	}
	return img, nil
}

// pfmToken reads one whitespace-delimited header token. The single
// whitespace byte after the scale is consumed with it.
func pfmToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// EncodePFM writes a big-endian PFM. One channel gives "Pf"; otherwise the
// first three channels are written as "PF".
func EncodePFM(w io.Writer, img *volume.Image) error {
	channels := 1
	sig := "Pf"
	if img.Channels() >= 3 {
		channels = 3
		sig = "PF"
	} else if img.Channels() != 1 {
		return fmt.Errorf("%w: pfm needs 1 or 3 channels, have %d", ErrFormat, img.Channels())
	}

	if _, err := fmt.Fprintf(w, "%s\n%d %d\n1.0\n", sig, img.Width, img.Height); err != nil {
		return err
	}

	row := make([]byte, 4*channels*img.Width)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			for c := 0; c < channels; c++ {
				v := float32(img.Planes[c][y*img.Width+x])
				binary.BigEndian.PutUint32(row[4*(x*channels+c):], math.Float32bits(v))
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WritePFM writes a single-channel float map of values to path.
func WritePFM(path string, values []float64, width, height int) error {
	if width <= 0 || height <= 0 || len(values) != width*height {
		return fmt.Errorf("%w: %d values for %dx%d", ErrFormat, len(values), width, height)
	}
	img := &volume.Image{Width: width, Height: height, Planes: [][]float64{values}, HDR: true}
	return writeFile(path, func(w *bufio.Writer) error {
		return EncodePFM(w, img)
	})
}
