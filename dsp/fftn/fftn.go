package fftn

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrShape reports an invalid array shape.
var ErrShape = errors.New("invalid transform shape")

// Plan is a reusable N-dimensional forward transform. A Plan holds scratch
// memory and must not be used from more than one goroutine at a time; use
// [Plan.Clone] to obtain one plan per goroutine.
type Plan struct {
	shape []int
	total int
	nd    *algofft.PlanND[complex128]
}

// NewPlan creates a plan for a row-major array with the given shape.
func NewPlan(shape ...int) (*Plan, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrShape)
	}

	total := 1
	for i, n := range shape {
		if n <= 0 {
			return nil, fmt.Errorf("%w: axis %d has length %d", ErrShape, i, n)
		}
		total *= n
	}

	nd, err := algofft.NewPlanND64(shape)
	if err != nil {
		return nil, fmt.Errorf("fftn: shape %v: %w", shape, err)
	}

	return &Plan{
		shape: append([]int(nil), shape...),
		total: total,
		nd:    nd,
	}, nil
}

// Clone returns an independent plan of the same shape with its own scratch
// memory.
func (p *Plan) Clone() *Plan {
	return &Plan{
		shape: append([]int(nil), p.shape...),
		total: p.total,
		nd:    p.nd.Clone(),
	}
}

// Shape returns a copy of the plan shape.
func (p *Plan) Shape() []int {
	return append([]int(nil), p.shape...)
}

// Len returns the number of elements the plan transforms.
func (p *Plan) Len() int {
	return p.total
}

// Forward computes the unnormalized forward DFT of src into dst. dst and src
// may be the same slice.
func (p *Plan) Forward(dst, src []complex128) error {
	if len(dst) != p.total || len(src) != p.total {
		return fmt.Errorf("%w: want %d elements, got dst=%d src=%d", ErrShape, p.total, len(dst), len(src))
	}
	if err := p.nd.Forward(dst, src); err != nil {
		return fmt.Errorf("fftn: forward: %w", err)
	}
	return nil
}
