package temporal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-heaviside/stats/field"
)

// Accumulator sums the spatial variance of filtered fields per frame. It is
// owned by a single goroutine; partial accumulators are combined with
// [Accumulator.Merge].
type Accumulator struct {
	sum   []float64
	count []int
}

// NewAccumulator returns an accumulator for frames frames.
func NewAccumulator(frames int) *Accumulator {
	return &Accumulator{sum: make([]float64, frames), count: make([]int, frames)}
}

// Frames returns the number of frames tracked.
func (a *Accumulator) Frames() int { return len(a.sum) }

// Accumulate adds the population variance of values to frame k.
func (a *Accumulator) Accumulate(k int, values []float64) error {
	if k < 0 || k >= len(a.sum) {
		return fmt.Errorf("frame index out of range: %d (frames %d)", k, len(a.sum))
	}
	a.sum[k] += field.Variance(values)
	a.count[k]++
	return nil
}

// Merge adds the sums and counts of other into a.
func (a *Accumulator) Merge(other *Accumulator) error {
	if len(other.sum) != len(a.sum) {
		return fmt.Errorf("cannot merge accumulators of %d and %d frames", len(a.sum), len(other.sum))
	}
	for k := range a.sum {
		a.sum[k] += other.sum[k]
		a.count[k] += other.count[k]
	}
	return nil
}

// Finalize returns sqrt(sum/count) for every frame.
func (a *Accumulator) Finalize() (Series, error) {
	out := make(Series, len(a.sum))
	for k, s := range a.sum {
		if a.count[k] == 0 {
			return nil, fmt.Errorf("frame %d has no samples", k)
		}
		out[k] = math.Sqrt(s / float64(a.count[k]))
	}
	return out, nil
}
