package spatial

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnsupportedKind reports an unknown filter kind.
	ErrUnsupportedKind = errors.New("unsupported spatial filter")
	// ErrParam reports an invalid filter parameter.
	ErrParam = errors.New("invalid spatial filter parameter")
)

// gaussTruncate is the kernel half-width in standard deviations.
const gaussTruncate = 4.0

// Kind identifies a filter kernel family.
type Kind int

const (
	KindBox Kind = iota
	KindBinomial
	KindGauss
)

// String returns the kind's command-line name.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindBinomial:
		return "binomial"
	case KindGauss:
		return "gauss"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "box" (alias "uniform"), "binomial" or "gauss".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "box", "uniform":
		return KindBox, nil
	case "binomial":
		return KindBinomial, nil
	case "gauss", "gaussian":
		return KindGauss, nil
	default:
		return 0, fmt.Errorf("%w: %q (want box|binomial|gauss)", ErrUnsupportedKind, name)
	}
}

// Filter is a separable periodic 2D filter. A Filter holds scratch memory
// and must not be shared between goroutines; use [Filter.Clone].
type Filter struct {
	kind   Kind
	param  float64
	passes int
	taps   []tap
	tmp    []float64
	line   []float64
	out    []float64
}

// tap is one kernel weight at a signed offset from the output index.
type tap struct {
	offset int
	weight float64
}

// New creates a filter. box and binomial take a positive integer parameter,
// gauss a positive standard deviation.
func New(kind Kind, param float64) (*Filter, error) {
	f := &Filter{kind: kind, param: param, passes: 1}

	switch kind {
	case KindBox:
		n, err := integerParam(kind, param)
		if err != nil {
			return nil, err
		}
		f.taps = boxTaps(n)
	case KindBinomial:
		n, err := integerParam(kind, param)
		if err != nil {
			return nil, err
		}
		f.taps = boxTaps(2)
		f.passes = n
	case KindGauss:
		if !(param > 0) || math.IsInf(param, 0) {
			return nil, fmt.Errorf("%w: gauss sigma must be > 0: %v", ErrParam, param)
		}
		f.taps = gaussTaps(param)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
	}
	return f, nil
}

// Parse creates a filter from a kind name and parameter.
func Parse(name string, param float64) (*Filter, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New(kind, param)
}

// Kind returns the kernel family.
func (f *Filter) Kind() Kind { return f.kind }

// Param returns the kernel parameter.
func (f *Filter) Param() float64 { return f.param }

// Clone returns a filter with the same kernel and its own scratch memory.
func (f *Filter) Clone() *Filter {
	return &Filter{kind: f.kind, param: f.param, passes: f.passes, taps: f.taps}
}

// Kernel returns the 1D weights and the offset of the first weight.
func (f *Filter) Kernel() (weights []float64, origin int) {
	weights = make([]float64, len(f.taps))
	for i, t := range f.taps {
		weights[i] = t.weight
	}
	return weights, f.taps[0].offset
}

// Apply filters the width x height field src into dst with wrap-around
// boundaries. dst and src may be the same slice.
func (f *Filter) Apply(dst, src []float64, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: field %dx%d", ErrParam, width, height)
	}
	n := width * height
	if len(src) != n || len(dst) != n {
		return fmt.Errorf("%w: field %dx%d needs %d values, got dst=%d src=%d", ErrParam, width, height, n, len(dst), len(src))
	}

	if cap(f.tmp) < n {
		f.tmp = make([]float64, n)
	}
	tmp := f.tmp[:n]
	if longest := max(width, height); cap(f.line) < longest {
		f.line = make([]float64, longest)
		f.out = make([]float64, longest)
	}

	if &dst[0] != &src[0] {
		copy(dst, src)
	}
	for pass := 0; pass < f.passes; pass++ {
		f.rows(tmp, dst, width, height)
		f.cols(dst, tmp, width, height)
	}
	return nil
}

// rows correlates every row of src with the kernel.
func (f *Filter) rows(dst, src []float64, width, height int) {
	for y := 0; y < height; y++ {
		f.correlate(dst[y*width:(y+1)*width], src[y*width:(y+1)*width])
	}
}

// cols correlates every column of src with the kernel.
func (f *Filter) cols(dst, src []float64, width, height int) {
	col := f.line[:height]
	out := f.out[:height]
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = src[y*width+x]
		}
		f.correlate(out, col)
		for y := 0; y < height; y++ {
			dst[y*width+x] = out[y]
		}
	}
}

// correlate computes dst[i] = sum_t w_t * src[(i + offset_t) mod n].
func (f *Filter) correlate(dst, src []float64) {
	n := len(src)
	for i := range dst {
		var acc float64
		for _, t := range f.taps {
			j := (i + t.offset) % n
			if j < 0 {
				j += n
			}
			acc += t.weight * src[j]
		}
		dst[i] = acc
	}
}

func integerParam(kind Kind, param float64) (int, error) {
	if param < 1 || param != math.Trunc(param) || param > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s size must be an integer >= 1: %v", ErrParam, kind, param)
	}
	return int(param), nil
}

// boxTaps returns a uniform window of size n placed at [-n/2, n - n/2).
func boxTaps(n int) []tap {
	taps := make([]tap, n)
	w := 1 / float64(n)
	for j := range taps {
		taps[j] = tap{offset: j - n/2, weight: w}
	}
	return taps
}

// gaussTaps returns a normalized Gaussian kernel with radius
// int(4*sigma+0.5).
func gaussTaps(sigma float64) []tap {
	radius := int(gaussTruncate*sigma + 0.5)
	taps := make([]tap, 2*radius+1)

	var sum float64
	for j := range taps {
		x := float64(j - radius)
		w := math.Exp(-0.5 * x * x / (sigma * sigma))
		taps[j] = tap{offset: j - radius, weight: w}
		sum += w
	}
	for j := range taps {
		taps[j].weight /= sum
	}
	return taps
}
