package temporal

import (
	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/internal/trials"
)

// DefaultAlpha is the analysis smoothing factor used when none is set.
const DefaultAlpha = 0.1

// Config defines configuration for the temporal estimator.
type Config struct {
	trials.Config
	// Alpha is the smoothing factor of the analysis filter. It has no
	// relation to any parameter used to generate the texture.
	Alpha float64
	// PartitionPerFrame draws a fresh partition for every frame of a trial
	// instead of one partition shared by all frames.
	PartitionPerFrame bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Config: trials.DefaultConfig(), Alpha: DefaultAlpha}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	_, err := NewFilter(c.Alpha)
	return err
}

// WithTrials sets the number of random partitions.
func WithTrials(n int) Option {
	return func(cfg *Config) {
		cfg.Trials = n
	}
}

// WithAlpha sets the analysis smoothing factor.
func WithAlpha(alpha float64) Option {
	return func(cfg *Config) {
		cfg.Alpha = alpha
	}
}

// WithSeed sets the run seed.
func WithSeed(seed uint64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithWorkers sets the number of parallel workers.
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

// WithPartitionPerFrame selects whether every frame gets its own partition.
func WithPartitionPerFrame(enabled bool) Option {
	return func(cfg *Config) {
		cfg.PartitionPerFrame = enabled
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
