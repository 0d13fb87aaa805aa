// Package trials runs independent Monte-Carlo trials on a fixed pool of
// workers.
//
// Trials are striped statically over workers: worker w runs trials w,
// w+W, w+2W, ... in increasing order. Each worker keeps its own partial
// state, so the caller can reduce worker results in a fixed order and get
// the same answer on every run with the same worker count.
package trials

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/internal/rng"
)

const (
	// DefaultTrials is the trial count used when none is configured.
	DefaultTrials = 256
	// DefaultSeed is the run seed used when none is configured.
	DefaultSeed = 1
)

// ErrTrials reports a non-positive trial count.
var ErrTrials = errors.New("trial count must be > 0")

// Config holds the trial-loop settings shared by the estimators.
type Config struct {
	Trials  int
	Seed    uint64
	Workers int
	// Progress, if set, is called after every completed trial with the
	// number of finished trials. Calls are serialized.
	Progress func(done, total int)
	// Source, if set, replaces the seeded per-trial random streams.
	Source func(trial int) samplespace.Source
}

// DefaultConfig returns sensible defaults: 256 trials, seed 1, one worker
// per available CPU.
func DefaultConfig() Config {
	return Config{
		Trials:  DefaultTrials,
		Seed:    DefaultSeed,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: %d", ErrTrials, c.Trials)
	}
	return nil
}

// WorkerCount returns the number of workers Run will start.
func (c Config) WorkerCount() int {
	w := c.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, c.Trials))
}

// SourceFor returns the random stream for a trial.
func (c Config) SourceFor(trial int) samplespace.Source {
	if c.Source != nil {
		return c.Source(trial)
	}
	return rng.ForTrial(c.Seed, trial)
}

// Run calls work for every trial in [0, c.Trials). work receives the index
// of the worker running it, in [0, c.WorkerCount()). The first error stops
// all workers and is returned; a cancelled ctx returns ctx.Err().
func Run(ctx context.Context, c Config, work func(worker, trial int, src samplespace.Source) error) error {
	if err := c.Validate(); err != nil {
		return err
	}

	workers := c.WorkerCount()

	var (
		wg       sync.WaitGroup
		done     atomic.Int64
		stop     atomic.Bool
		errOnce  sync.Once
		firstErr error
		progMu   sync.Mutex
	)

	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		stop.Store(true)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := w; trial < c.Trials; trial += workers {
				if stop.Load() {
					return
				}
				if err := ctx.Err(); err != nil {
					fail(err)
					return
				}
				if err := work(w, trial, c.SourceFor(trial)); err != nil {
					fail(fmt.Errorf("trial %d: %w", trial, err))
					return
				}
				n := done.Add(1)
				if c.Progress != nil {
					progMu.Lock()
					c.Progress(int(n), c.Trials)
					progMu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}
