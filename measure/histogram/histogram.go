// Package histogram tabulates the value distribution of sampling textures:
// one histogram per channel and one joint histogram per channel pair, all
// over the unit range.
package histogram

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/dsp/volume"
)

// DefaultBins is the bin count per axis.
const DefaultBins = 256

// ErrBins reports a non-positive bin count.
var ErrBins = errors.New("bins must be > 0")

// Histogram counts the values of one channel in equal bins over [0, 1].
// The value 1 falls into the last bin. NaN and values outside the range
// are counted in Outside.
type Histogram struct {
	Channel int
	Counts  []int
	Outside int
}

// Joint counts value pairs of channels I and J on a Bins x Bins grid over
// [0, 1]^2. Counts is row-major with the I value selecting the row.
type Joint struct {
	I, J    int
	Bins    int
	Counts  []int
	Outside int
}

// At returns the count of grid cell (row, col).
func (j *Joint) At(row, col int) int {
	return j.Counts[row*j.Bins+col]
}

// Result holds every 1D and pairwise table of an image.
type Result struct {
	Bins     int
	Channels []Histogram
	Pairs    []Joint
}

// bin maps v to its bin index, or -1 when v lies outside [0, 1].
func bin(v float64, bins int) int {
	if !(v >= 0 && v <= 1) {
		return -1
	}
	return min(int(math.Floor(v*float64(bins))), bins-1)
}

// Compute tabulates the first channels channels of img.
func Compute(img *volume.Image, channels, bins int) (*Result, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBins, bins)
	}
	if img == nil || channels <= 0 || channels > img.Channels() {
		have := 0
		if img != nil {
			have = img.Channels()
		}
		return nil, fmt.Errorf("%w: want %d channels, image has %d", samplespace.ErrChannels, channels, have)
	}

	res := &Result{Bins: bins}
	for c := 0; c < channels; c++ {
		h := Histogram{Channel: c, Counts: make([]int, bins)}
		for _, v := range img.Planes[c] {
			if b := bin(v, bins); b >= 0 {
				h.Counts[b]++
			} else {
				h.Outside++
			}
		}
		res.Channels = append(res.Channels, h)
	}

	for i := 0; i < channels; i++ {
		for j := i + 1; j < channels; j++ {
			jt := Joint{I: i, J: j, Bins: bins, Counts: make([]int, bins*bins)}
			pi, pj := img.Planes[i], img.Planes[j]
			for p := range pi {
				bi, bj := bin(pi[p], bins), bin(pj[p], bins)
				if bi < 0 || bj < 0 {
					jt.Outside++
					continue
				}
				jt.Counts[bi*bins+bj]++
			}
			res.Pairs = append(res.Pairs, jt)
		}
	}
	return res, nil
}

// WriteCSV writes the 1D tables side by side: one row per bin with the bin
// edges followed by one count column per channel. A final "outside" row
// holds the out-of-range counts.
func (r *Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"low", "high"}
	for _, h := range r.Channels {
		header = append(header, "c"+strconv.Itoa(h.Channel))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	width := 1 / float64(r.Bins)
	for b := 0; b < r.Bins; b++ {
		row := []string{
			strconv.FormatFloat(float64(b)*width, 'g', -1, 64),
			strconv.FormatFloat(float64(b+1)*width, 'g', -1, 64),
		}
		for _, h := range r.Channels {
			row = append(row, strconv.Itoa(h.Counts[b]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	row := []string{"outside", ""}
	for _, h := range r.Channels {
		row = append(row, strconv.Itoa(h.Outside))
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the grid as Bins rows of Bins counts.
func (j *Joint) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	row := make([]string, j.Bins)
	for r := 0; r < j.Bins; r++ {
		for c := range row {
			row[c] = strconv.Itoa(j.At(r, c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
