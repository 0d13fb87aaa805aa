package testutil

import (
	"math"
	"math/rand"
)

// NoisePlanes generates channels planes of n white-noise pixels in [0, 1)
// with a fixed seed for reproducibility.
func NoisePlanes(seed int64, channels, n int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	planes := make([][]float64, channels)
	for c := range planes {
		planes[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for c := range planes {
			planes[c][i] = rng.Float64()
		}
	}
	return planes
}

// SpherePlanes generates n pixels uniformly distributed on the unit sphere
// as three planes.
func SpherePlanes(seed int64, n int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	planes := [][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * rng.Float64()
		u := 2*rng.Float64() - 1
		r := math.Sqrt(1 - u*u)
		planes[0][i] = r * math.Cos(phi)
		planes[1][i] = r * math.Sin(phi)
		planes[2][i] = u
	}
	return planes
}

// ConstantPlanes returns channels planes of n pixels all set to value.
func ConstantPlanes(value float64, channels, n int) [][]float64 {
	planes := make([][]float64, channels)
	for c := range planes {
		planes[c] = DC(value, n)
	}
	return planes
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued field.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Stream is a scripted random source that replays fixed values. Both
// Float64 and NormFloat64 consume the same sequence, wrapping at the end.
type Stream struct {
	Values []float64
	next   int
}

// Float64 returns the next scripted value.
func (s *Stream) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// NormFloat64 returns the next scripted value.
func (s *Stream) NormFloat64() float64 {
	return s.Float64()
}

// Consumed reports how many values have been drawn.
func (s *Stream) Consumed() int {
	return s.next
}
