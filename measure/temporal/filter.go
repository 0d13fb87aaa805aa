package temporal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrAlpha reports a smoothing factor outside (0, 1].
var ErrAlpha = errors.New("alpha must be in (0, 1]")

// Filter is a one-pole exponential moving average over a sequence of
// fields. It starts uninitialized; the first field seeds the state verbatim
// and every later field x updates it to alpha*x + (1-alpha)*state.
type Filter struct {
	alpha  float64
	state  []float64
	tmp    []float64
	seeded bool
}

// NewFilter returns an uninitialized filter.
func NewFilter(alpha float64) (*Filter, error) {
	if !(alpha > 0 && alpha <= 1) || math.IsNaN(alpha) {
		return nil, fmt.Errorf("%w: %v", ErrAlpha, alpha)
	}
	return &Filter{alpha: alpha}, nil
}

// Alpha returns the smoothing factor.
func (f *Filter) Alpha() float64 { return f.alpha }

// Seeded reports whether the filter has seen a field since the last reset.
func (f *Filter) Seeded() bool { return f.seeded }

// State returns the current filtered field, or nil before seeding. The slice
// is owned by the filter and changes on the next Update.
func (f *Filter) State() []float64 {
	if !f.seeded {
		return nil
	}
	return f.state
}

// Update feeds the next field and returns the new state.
func (f *Filter) Update(x []float64) ([]float64, error) {
	if !f.seeded {
		if cap(f.state) < len(x) {
			f.state = make([]float64, len(x))
			f.tmp = make([]float64, len(x))
		}
		f.state = f.state[:len(x)]
		f.tmp = f.tmp[:len(x)]
		copy(f.state, x)
		f.seeded = true
		return f.state, nil
	}

	if len(x) != len(f.state) {
		return nil, fmt.Errorf("field has %d values, filter state %d", len(x), len(f.state))
	}
	vecmath.ScaleBlock(f.tmp, x, f.alpha)
	vecmath.ScaleBlock(f.state, f.state, 1-f.alpha)
	vecmath.AddBlockInPlace(f.state, f.tmp)
	return f.state, nil
}

// Reset returns the filter to the uninitialized state, keeping its buffers.
func (f *Filter) Reset() {
	f.seeded = false
}
