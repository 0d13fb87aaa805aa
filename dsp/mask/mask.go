// Package mask evaluates random Heaviside partitions over texture frames.
//
// A mask is a []float64 holding exactly 0 or 1 per pixel. Masks over a whole
// volume are frame-major, matching the layout of [volume.Volume.Planes].
package mask

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/dsp/volume"
)

// ErrStrata reports a non-positive stratum count.
var ErrStrata = errors.New("strata must be > 0")

// Generator draws partitions of one sample space and evaluates them over
// volume pixels.
type Generator struct {
	space  samplespace.Space
	strata int
}

// New returns a Generator for space whose stratified draws divide the trial
// range into strata strata.
func New(space samplespace.Space, strata int) (*Generator, error) {
	if space == nil {
		return nil, fmt.Errorf("%w: nil sample space", samplespace.ErrUnknownSpace)
	}
	if strata <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrStrata, strata)
	}
	return &Generator{space: space, strata: strata}, nil
}

// Space returns the sample space.
func (g *Generator) Space() samplespace.Space { return g.space }

// Strata returns the stratum count.
func (g *Generator) Strata() int { return g.strata }

// Check reports whether vol has enough channels for the space.
func (g *Generator) Check(vol *volume.Volume) error {
	return samplespace.Validate(g.space, vol.Channels())
}

// Draw returns a fresh partition for the given stratum.
func (g *Generator) Draw(src samplespace.Source, stratum int) samplespace.Partition {
	return g.space.Draw(src, stratum, g.strata)
}

// Frame evaluates p over frame k of vol into dst, which must hold
// vol.FramePixels() values.
func (g *Generator) Frame(dst []float64, p samplespace.Partition, vol *volume.Volume, k int) error {
	if len(dst) != vol.FramePixels() {
		return fmt.Errorf("mask length %d, frame has %d pixels", len(dst), vol.FramePixels())
	}
	planes, err := vol.Frame(k)
	if err != nil {
		return err
	}
	return p.Mask(dst, planes)
}

// Volume evaluates p over every pixel of vol into dst, which must hold
// vol.Len() values.
func (g *Generator) Volume(dst []float64, p samplespace.Partition, vol *volume.Volume) error {
	if len(dst) != vol.Len() {
		return fmt.Errorf("mask length %d, volume has %d pixels", len(dst), vol.Len())
	}
	return p.Mask(dst, vol.Planes())
}

// Fraction returns the share of ones in mask.
func Fraction(mask []float64) float64 {
	if len(mask) == 0 {
		return 0
	}
	return vecmath.Sum(mask) / float64(len(mask))
}
