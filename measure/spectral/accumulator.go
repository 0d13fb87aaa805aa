package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-heaviside/dsp/fftn"
)

// Accumulator sums squared Fourier magnitudes over trials. It is owned by a
// single goroutine; partial accumulators are combined with [Accumulator.Merge].
type Accumulator struct {
	shape  []int
	sum    []float64
	re, im []float64
	power  []float64
	trials int
}

// NewAccumulator returns an empty accumulator for arrays of the given shape.
func NewAccumulator(shape ...int) *Accumulator {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Accumulator{
		shape: append([]int(nil), shape...),
		sum:   make([]float64, n),
		re:    make([]float64, n),
		im:    make([]float64, n),
		power: make([]float64, n),
	}
}

// Len returns the number of bins.
func (a *Accumulator) Len() int { return len(a.sum) }

// Trials returns how many spectra have been added.
func (a *Accumulator) Trials() int { return a.trials }

// Add accumulates |X|^2 of one trial's spectrum.
func (a *Accumulator) Add(spectrum []complex128) error {
	if len(spectrum) != len(a.sum) {
		return fmt.Errorf("spectrum has %d bins, accumulator %d", len(spectrum), len(a.sum))
	}
	for i, c := range spectrum {
		a.re[i] = real(c)
		a.im[i] = imag(c)
	}
	vecmath.Power(a.power, a.re, a.im)
	vecmath.AddBlockInPlace(a.sum, a.power)
	a.trials++
	return nil
}

// Merge adds the sums of other into a.
func (a *Accumulator) Merge(other *Accumulator) error {
	if len(other.sum) != len(a.sum) {
		return fmt.Errorf("cannot merge accumulators of %d and %d bins", len(a.sum), len(other.sum))
	}
	vecmath.AddBlockInPlace(a.sum, other.sum)
	a.trials += other.trials
	return nil
}

// Finalize returns the root of the summed power, sqrt(sum), with the DC bin
// set to zero, shifted so that zero frequency is at the centre of every
// axis. The accumulator is left untouched.
func (a *Accumulator) Finalize() ([]float64, error) {
	if a.trials == 0 {
		return nil, fmt.Errorf("spectrum accumulator has no trials")
	}

	rms := make([]float64, len(a.sum))
	for i, v := range a.sum {
		rms[i] = math.Sqrt(v)
	}
	// DC reflects the mask mean, not spatial structure.
	rms[0] = 0

	out := make([]float64, len(rms))
	if err := fftn.Shift(out, rms, a.shape); err != nil {
		return nil, err
	}
	return out, nil
}
