package spectral

import (
	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/internal/trials"
)

// Config defines configuration for the spectral estimator.
type Config struct {
	trials.Config
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Config: trials.DefaultConfig()}
}

// WithTrials sets the number of random partitions.
func WithTrials(n int) Option {
	return func(cfg *Config) {
		cfg.Trials = n
	}
}

// WithSeed sets the run seed the per-trial random streams derive from.
func WithSeed(seed uint64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithWorkers sets the number of parallel workers. Values <= 0 use one
// worker per CPU.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		cfg.Workers = n
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn func(done, total int)) Option {
	return func(cfg *Config) {
		cfg.Progress = fn
	}
}

// WithSource replaces the seeded per-trial random streams.
func WithSource(fn func(trial int) samplespace.Source) Option {
	return func(cfg *Config) {
		cfg.Source = fn
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
