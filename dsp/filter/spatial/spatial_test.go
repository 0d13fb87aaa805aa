package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-heaviside/internal/testutil"
)

func binaryField(seed int64, n int) []float64 {
	noise := testutil.NoisePlanes(seed, 1, n)[0]
	for i, v := range noise {
		if v < 0.5 {
			noise[i] = 0
		} else {
			noise[i] = 1
		}
	}
	return noise
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"box", KindBox},
		{"uniform", KindBox},
		{"binomial", KindBinomial},
		{"gauss", KindGauss},
		{"Gaussian", KindGauss},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseKind("median")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestNewRejectsBadParams(t *testing.T) {
	for _, tc := range []struct {
		kind  Kind
		param float64
	}{
		{KindBox, 0},
		{KindBox, 2.5},
		{KindBinomial, -1},
		{KindGauss, 0},
		{KindGauss, math.NaN()},
		{KindGauss, math.Inf(1)},
	} {
		_, err := New(tc.kind, tc.param)
		assert.ErrorIsf(t, err, ErrParam, "%v %v", tc.kind, tc.param)
	}
	_, err := New(Kind(9), 1)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestBoxSizeOneIsIdentity(t *testing.T) {
	f, err := New(KindBox, 1)
	require.NoError(t, err)
	src := binaryField(1, 16*16)
	dst := make([]float64, len(src))
	require.NoError(t, f.Apply(dst, src, 16, 16))
	assert.Equal(t, src, dst)
}

func TestBoxWrapsAround(t *testing.T) {
	f, err := New(KindBox, 3)
	require.NoError(t, err)
	// Single one in the corner spreads to the 3x3 wrapped neighbourhood.
	const w, h = 5, 4
	src := testutil.Impulse(w*h, 0)
	dst := make([]float64, w*h)
	require.NoError(t, f.Apply(dst, src, w, h))

	var total float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := dst[y*w+x]
			total += v
			inX := x == 0 || x == 1 || x == w-1
			inY := y == 0 || y == 1 || y == h-1
			if inX && inY {
				assert.InDelta(t, 1.0/9, v, 1e-15, "(%d,%d)", x, y)
			} else {
				assert.Equal(t, 0.0, v, "(%d,%d)", x, y)
			}
		}
	}
	assert.InDelta(t, 1, total, 1e-12)
}

func TestBoxEvenWindowOrigin(t *testing.T) {
	f, err := New(KindBox, 2)
	require.NoError(t, err)
	weights, origin := f.Kernel()
	assert.Equal(t, []float64{0.5, 0.5}, weights)
	assert.Equal(t, -1, origin)
}

func TestBinomialMatchesBinomialCoefficients(t *testing.T) {
	// Three size-2 passes give the 1D kernel [1 3 3 1]/8 on each axis.
	f, err := New(KindBinomial, 3)
	require.NoError(t, err)
	const n = 8
	src := testutil.Impulse(n*n, 0)
	dst := make([]float64, n*n)
	require.NoError(t, f.Apply(dst, src, n, n))

	coeff := map[int]float64{0: 1.0 / 8, 1: 3.0 / 8, 2: 3.0 / 8, 3: 1.0 / 8}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			want := coeff[x] * coeff[y]
			assert.InDelta(t, want, dst[y*n+x], 1e-15, "(%d,%d)", x, y)
		}
	}
}

func TestGaussKernelNormalized(t *testing.T) {
	sigma := 1.3435
	f, err := New(KindGauss, sigma)
	require.NoError(t, err)
	weights, origin := f.Kernel()
	radius := int(4*sigma + 0.5)
	assert.Len(t, weights, 2*radius+1)
	assert.Equal(t, -radius, origin)

	var sum float64
	for i, w := range weights {
		sum += w
		assert.InDelta(t, w, weights[len(weights)-1-i], 1e-15)
	}
	assert.InDelta(t, 1, sum, 1e-12)
}

func TestFiltersPreserveMeanAndRange(t *testing.T) {
	const n = 32
	src := binaryField(2, n*n)
	var mean float64
	for _, v := range src {
		mean += v
	}
	mean /= n * n

	for _, tc := range []struct {
		kind  Kind
		param float64
	}{
		{KindBox, 4},
		{KindBinomial, 5},
		{KindGauss, 1.5},
		{KindGauss, 20},
	} {
		f, err := New(tc.kind, tc.param)
		require.NoError(t, err)
		dst := make([]float64, n*n)
		require.NoError(t, f.Apply(dst, src, n, n))

		var got float64
		for _, v := range dst {
			got += v
			assert.GreaterOrEqual(t, v, -1e-12)
			assert.LessOrEqual(t, v, 1+1e-12)
		}
		assert.InDelta(t, mean, got/(n*n), 1e-12, "%v %v", tc.kind, tc.param)
	}
}

func TestApplyInPlace(t *testing.T) {
	f, err := New(KindGauss, 1)
	require.NoError(t, err)
	src := binaryField(3, 64)
	want := make([]float64, 64)
	require.NoError(t, f.Apply(want, src, 8, 8))

	got := append([]float64(nil), src...)
	require.NoError(t, f.Clone().Apply(got, got, 8, 8))
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestApplyShapeMismatch(t *testing.T) {
	f, err := Parse("box", 2)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Apply(make([]float64, 4), make([]float64, 6), 2, 2), ErrParam)
	assert.ErrorIs(t, f.Apply(nil, nil, 0, 2), ErrParam)
}
