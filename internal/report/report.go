// Package report records what an estimator run did: its parameters, its
// artifacts and a short numeric summary.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest describes one completed run.
type Manifest struct {
	ID       string    `yaml:"id"`
	Command  string    `yaml:"command"`
	Input    string    `yaml:"input"`
	Space    string    `yaml:"space,omitempty"`
	Started  time.Time `yaml:"started"`
	Duration string    `yaml:"duration"`

	// Trial loop
	Trials  int    `yaml:"trials,omitempty"`
	Seed    uint64 `yaml:"seed,omitempty"`
	Workers int    `yaml:"workers,omitempty"`

	// Image
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
	Frames   int  `yaml:"frames,omitempty"`
	Channels int  `yaml:"channels"`
	HDR      bool `yaml:"hdr"`

	// Temporal analysis
	Filter            string  `yaml:"filter,omitempty"`
	FilterParam       float64 `yaml:"filter_param,omitempty"`
	Alpha             float64 `yaml:"alpha,omitempty"`
	PartitionPerFrame bool    `yaml:"partition_per_frame,omitempty"`

	Summary map[string]float64 `yaml:"summary,omitempty"`
	Outputs []string           `yaml:"outputs"`
}

// New creates a manifest with a generated ID, started now.
func New(command, input string) *Manifest {
	return &Manifest{
		ID:      uuid.New().String(),
		Command: command,
		Input:   input,
		Started: time.Now().UTC(),
		Summary: map[string]float64{},
	}
}

// AddOutput records an artifact path.
func (m *Manifest) AddOutput(path string) {
	m.Outputs = append(m.Outputs, path)
}

// SetSummary records a named summary value.
func (m *Manifest) SetSummary(name string, v float64) {
	if m.Summary == nil {
		m.Summary = map[string]float64{}
	}
	m.Summary[name] = v
}

// Finish stamps the run duration.
func (m *Manifest) Finish() {
	m.Duration = time.Since(m.Started).Round(time.Millisecond).String()
}

// Encode writes m as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return enc.Close()
}

// Save writes m as YAML to path.
func (m *Manifest) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a manifest written by Save.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if _, err := uuid.Parse(m.ID); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: id: %w", err)
	}
	return &m, nil
}
