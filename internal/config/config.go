// Package config handles heaviside run configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-heaviside/dsp/filter/spatial"
	"github.com/cwbudde/algo-heaviside/internal/trials"
	"github.com/cwbudde/algo-heaviside/measure/histogram"
	"github.com/cwbudde/algo-heaviside/measure/temporal"
)

// ErrInvalid reports a configuration that cannot be used: a file that
// cannot be read or parsed, or a value out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Trials   TrialsConfig    `yaml:"trials"`
	Spectrum SpectrumConfig  `yaml:"spectrum"`
	Temporal TemporalConfig  `yaml:"temporal"`
	Histo    HistogramConfig `yaml:"histogram"`
}

// TrialsConfig holds the Monte-Carlo loop settings shared by the
// estimators.
type TrialsConfig struct {
	Count   int    `yaml:"count"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"` // 0 = one per CPU
}

// SpectrumConfig holds spectrum output settings.
type SpectrumConfig struct {
	WritePFM    bool `yaml:"write_pfm"`
	WriteRadial bool `yaml:"write_radial"`
}

// TemporalConfig holds the defaults of the temporal estimator. Positional
// command-line arguments override them.
type TemporalConfig struct {
	Filter            string  `yaml:"filter"`
	Param             float64 `yaml:"param"`
	Alpha             float64 `yaml:"alpha"`
	PartitionPerFrame bool    `yaml:"partition_per_frame"`
}

// HistogramConfig holds histogram settings.
type HistogramConfig struct {
	Bins int `yaml:"bins"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Trials: TrialsConfig{
			Count: trials.DefaultTrials,
			Seed:  trials.DefaultSeed,
		},
		Spectrum: SpectrumConfig{
			WriteRadial: true,
		},
		Temporal: TemporalConfig{
			Filter: "box",
			Param:  1,
			Alpha:  temporal.DefaultAlpha,
		},
		Histo: HistogramConfig{
			Bins: histogram.DefaultBins,
		},
	}
}

// Load loads configuration from a file. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config: %w", ErrInvalid, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns the default configuration when path is empty and
// loads path otherwise. A named file that does not exist is an error.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every value that can be checked without an input image.
func (c *Config) Validate() error {
	if c.Trials.Count <= 0 {
		return fmt.Errorf("%w: trials.count must be > 0: %d", ErrInvalid, c.Trials.Count)
	}
	if c.Trials.Workers < 0 {
		return fmt.Errorf("%w: trials.workers must be >= 0: %d", ErrInvalid, c.Trials.Workers)
	}
	if c.Histo.Bins <= 0 {
		return fmt.Errorf("%w: histogram.bins must be > 0: %d", ErrInvalid, c.Histo.Bins)
	}
	if _, err := spatial.Parse(c.Temporal.Filter, c.Temporal.Param); err != nil {
		return fmt.Errorf("%w: temporal: %w", ErrInvalid, err)
	}
	if _, err := temporal.NewFilter(c.Temporal.Alpha); err != nil {
		return fmt.Errorf("%w: temporal: %w", ErrInvalid, err)
	}
	return nil
}
