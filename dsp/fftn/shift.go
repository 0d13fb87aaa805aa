package fftn

import "fmt"

// Shift writes src to dst with the zero-frequency element moved to the centre
// of every axis: index i of an axis of length n moves to (i + n/2) mod n.
// dst and src must not overlap.
func Shift[T any](dst, src []T, shape []int) error {
	total := 1
	for i, n := range shape {
		if n <= 0 {
			return fmt.Errorf("%w: axis %d has length %d", ErrShape, i, n)
		}
		total *= n
	}
	if len(src) != total || len(dst) != total {
		return fmt.Errorf("%w: want %d elements, got dst=%d src=%d", ErrShape, total, len(dst), len(src))
	}

	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}

	for idx := range src {
		rem := idx
		target := 0
		for axis, n := range shape {
			coord := rem / strides[axis]
			rem %= strides[axis]
			target += ((coord + n/2) % n) * strides[axis]
		}
		dst[target] = src[idx]
	}
	return nil
}
