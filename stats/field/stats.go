// Package field computes summary statistics of real-valued fields such as
// filtered masks and spectra.
package field

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Stats holds summary statistics of a field.
type Stats struct {
	Length   int
	Mean     float64
	Variance float64 // population variance
	StdDev   float64
	RMS      float64
	Energy   float64 // sum of squares
	Max      float64
	MaxPos   int
}

// Calculate computes all statistics in a single pass, using Welford's
// update for the variance.
func Calculate[T constraints.Float](values []T) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}

	var (
		mean, m2 float64
		sumSq    float64
		maxVal   = float64(values[0])
		maxPos   int
	)

	for i, v := range values {
		x := float64(v)
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal, maxPos = x, i
		}
	}

	nf := float64(n)
	variance := max(m2/nf, 0)

	return Stats{
		Length:   n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		RMS:      math.Sqrt(sumSq / nf),
		Energy:   sumSq,
		Max:      maxVal,
		MaxPos:   maxPos,
	}
}

// Mean returns the arithmetic mean using Kahan summation.
func Mean[T constraints.Float](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum, c float64
	for _, v := range values {
		y := float64(v) - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(values))
}

// Variance returns the population variance (divisor n) using Welford's
// algorithm. The result is never negative.
func Variance[T constraints.Float](values []T) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var mean, m2 float64
	for i, v := range values {
		x := float64(v)
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	return max(m2/float64(n), 0)
}

// RMS returns the root-mean-square of values.
func RMS[T constraints.Float](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		x := float64(v)
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
