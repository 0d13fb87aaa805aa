package spectral

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-heaviside/dsp/fftn"
	"github.com/cwbudde/algo-heaviside/dsp/mask"
	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/dsp/volume"
	"github.com/cwbudde/algo-heaviside/internal/trials"
)

// Result is a finalized RMS spectrum laid out like the input image: Height
// rows of Width values, frame after frame. Zero frequency sits at the centre
// of every axis.
type Result struct {
	Width  int
	Height int
	Frames int
	Trials int
	Values []float64
}

// At returns the spectrum value at image coordinates (x, y).
func (r *Result) At(x, y int) float64 {
	return r.Values[y*r.Width+x]
}

// Frame returns the frequency plane k (a Width x Width view).
func (r *Result) Frame(k int) []float64 {
	n := r.Width * r.Width
	return r.Values[k*n : (k+1)*n]
}

// Centre returns the flat index of the zero-frequency bin.
func (r *Result) Centre() int {
	return (r.Frames/2)*r.Width*r.Width + (r.Width/2)*r.Width + r.Width/2
}

// Max returns the largest spectrum value.
func (r *Result) Max() float64 {
	var m float64
	for _, v := range r.Values {
		m = max(m, v)
	}
	return m
}

// worker holds the per-goroutine state of the trial loop.
type worker struct {
	plan     *fftn.Plan
	mask     []float64
	spectrum []complex128
	acc      *Accumulator
}

// Estimate runs the Monte-Carlo spectrum estimate of vol in space. Every
// configuration problem is reported before the first trial runs.
func Estimate(ctx context.Context, vol *volume.Volume, space samplespace.Space, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if vol == nil {
		return nil, fmt.Errorf("spectral: nil volume")
	}

	gen, err := mask.New(space, cfg.Trials)
	if err != nil {
		return nil, err
	}
	if err := gen.Check(vol); err != nil {
		return nil, err
	}

	shape := vol.Shape()
	plan, err := fftn.NewPlan(shape...)
	if err != nil {
		return nil, err
	}
	workers := make([]*worker, cfg.WorkerCount())
	for i := range workers {
		workers[i] = &worker{
			plan:     plan.Clone(),
			mask:     make([]float64, vol.Len()),
			spectrum: make([]complex128, vol.Len()),
			acc:      NewAccumulator(shape...),
		}
	}

	err = trials.Run(ctx, cfg.Config, func(w, trial int, src samplespace.Source) error {
		wk := workers[w]
		p := gen.Draw(src, trial)
		if err := gen.Volume(wk.mask, p, vol); err != nil {
			return err
		}
		for i, m := range wk.mask {
			wk.spectrum[i] = complex(m, 0)
		}
		if err := wk.plan.Forward(wk.spectrum, wk.spectrum); err != nil {
			return err
		}
		return wk.acc.Add(wk.spectrum)
	})
	if err != nil {
		return nil, err
	}

	total := workers[0].acc
	for _, wk := range workers[1:] {
		if err := total.Merge(wk.acc); err != nil {
			return nil, err
		}
	}

	values, err := total.Finalize()
	if err != nil {
		return nil, err
	}

	return &Result{
		Width:  vol.Size(),
		Height: vol.Size() * vol.Frames(),
		Frames: vol.Frames(),
		Trials: total.Trials(),
		Values: values,
	}, nil
}
