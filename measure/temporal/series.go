package temporal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-heaviside/stats/field"
)

// Series holds one RMS error value per frame.
type Series []float64

// Summary condenses a series the way error curves are usually compared.
// Aggregate is sqrt(sum e_k^2). Peak is the largest per-frame error and
// PeakFrame the first frame reaching it.
type Summary struct {
	First     float64
	Aggregate float64
	Last      float64
	Mean      float64
	Peak      float64
	PeakFrame int
}

// Summary returns the condensed view of s. An empty series yields zeros.
func (s Series) Summary() Summary {
	if len(s) == 0 {
		return Summary{}
	}
	st := field.Calculate(s)
	return Summary{
		First:     s[0],
		Aggregate: math.Sqrt(st.Energy),
		Last:      s[len(s)-1],
		Mean:      st.Mean,
		Peak:      st.Max,
		PeakFrame: st.MaxPos,
	}
}

// WriteTo writes one value per line in %.18e notation.
func (s Series) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, v := range s {
		m, err := fmt.Fprintf(bw, "%.18e\n", v)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadSeries parses whitespace-separated floating-point values.
func ReadSeries(r io.Reader) (Series, error) {
	var out Series
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("series value %d: %w", len(out), err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
