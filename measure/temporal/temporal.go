package temporal

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-heaviside/dsp/filter/spatial"
	"github.com/cwbudde/algo-heaviside/dsp/mask"
	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/dsp/volume"
	"github.com/cwbudde/algo-heaviside/internal/trials"
)

// ErrNoFilter reports a missing spatial filter.
var ErrNoFilter = errors.New("temporal: nil spatial filter")

type worker struct {
	spatial  *spatial.Filter
	ema      *Filter
	mask     []float64
	filtered []float64
	acc      *Accumulator
}

// Estimate runs the Monte-Carlo temporal error estimate of vol in space,
// smoothing every mask with sf before the exponential moving average.
// The returned series has one value per frame.
func Estimate(ctx context.Context, vol *volume.Volume, space samplespace.Space, sf *spatial.Filter, opts ...Option) (Series, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if vol == nil {
		return nil, fmt.Errorf("temporal: nil volume")
	}
	if sf == nil {
		return nil, ErrNoFilter
	}

	gen, err := mask.New(space, cfg.Trials)
	if err != nil {
		return nil, err
	}
	if err := gen.Check(vol); err != nil {
		return nil, err
	}

	size, frames := vol.Size(), vol.Frames()
	workers := make([]*worker, cfg.WorkerCount())
	for i := range workers {
		ema, err := NewFilter(cfg.Alpha)
		if err != nil {
			return nil, err
		}
		workers[i] = &worker{
			spatial:  sf.Clone(),
			ema:      ema,
			mask:     make([]float64, vol.FramePixels()),
			filtered: make([]float64, vol.FramePixels()),
			acc:      NewAccumulator(frames),
		}
	}

	err = trials.Run(ctx, cfg.Config, func(w, trial int, src samplespace.Source) error {
		wk := workers[w]
		wk.ema.Reset()

		p := gen.Draw(src, trial)
		for k := 0; k < frames; k++ {
			if k > 0 && cfg.PartitionPerFrame {
				p = gen.Draw(src, trial)
			}
			if err := gen.Frame(wk.mask, p, vol, k); err != nil {
				return err
			}
			if err := wk.spatial.Apply(wk.filtered, wk.mask, size, size); err != nil {
				return err
			}
			state, err := wk.ema.Update(wk.filtered)
			if err != nil {
				return err
			}
			if err := wk.acc.Accumulate(k, state); err != nil {
				return err
			}
		}
		return nil
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
	return total.Finalize()
}
