package samplespace_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/internal/testutil"
)

var allKinds = []samplespace.Kind{
	samplespace.KindReal,
	samplespace.KindCircle,
	samplespace.KindSphere,
	samplespace.KindVector2,
	samplespace.KindVector3,
	samplespace.KindVector4,
}

func TestParse(t *testing.T) {
	tests := []struct {
		tag      string
		kind     samplespace.Kind
		channels int
	}{
		{"real", samplespace.KindReal, 1},
		{"circle", samplespace.KindCircle, 1},
		{"sphere", samplespace.KindSphere, 3},
		{"vector2", samplespace.KindVector2, 2},
		{"Vector3", samplespace.KindVector3, 3},
		{" vector4 ", samplespace.KindVector4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			s, err := samplespace.Parse(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
			assert.Equal(t, tt.channels, s.Channels())
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := samplespace.Parse("torus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, samplespace.ErrUnknownSpace))
}

func TestNewRoundTripsKind(t *testing.T) {
	for _, k := range allKinds {
		s, err := samplespace.New(k)
		require.NoError(t, err)
		assert.Equal(t, k, s.Kind())
		assert.Equal(t, k.String(), s.Kind().String())
	}
	_, err := samplespace.New(samplespace.Kind(42))
	assert.ErrorIs(t, err, samplespace.ErrUnknownSpace)
}

func TestValidateChannels(t *testing.T) {
	require.NoError(t, samplespace.Validate(samplespace.Vector3{}, 4))
	require.NoError(t, samplespace.Validate(samplespace.Real{}, 1))
	err := samplespace.Validate(samplespace.Vector4{}, 3)
	assert.ErrorIs(t, err, samplespace.ErrChannels)
}

func TestEvaluateTotalOverDomain(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, k := range allKinds {
		s, err := samplespace.New(k)
		require.NoError(t, err)
		for trial := 0; trial < 64; trial++ {
			p := s.Draw(rng, trial, 64)
			for i := 0; i < 64; i++ {
				pixel := []float64{2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1}
				assert.NotPanics(t, func() { p.Evaluate(pixel) })
			}
		}
	}
}

func TestMaskMatchesEvaluate(t *testing.T) {
	const n = 512
	rng := rand.New(rand.NewPCG(3, 4))
	planes := testutil.NoisePlanes(5, 4, n)
	for c := range planes {
		for i := range planes[c] {
			planes[c][i] = 2*planes[c][i] - 1
		}
	}
	pixel := make([]float64, 4)
	dst := make([]float64, n)
	for _, k := range allKinds {
		s, err := samplespace.New(k)
		require.NoError(t, err)
		for trial := 0; trial < 16; trial++ {
			p := s.Draw(rng, trial, 16)
			require.NoError(t, p.Mask(dst, planes))
			testutil.RequireBinary(t, dst)
			for i := 0; i < n; i++ {
				for c := range pixel {
					pixel[c] = planes[c][i]
				}
				want := 0.0
				if p.Evaluate(pixel) {
					want = 1
				}
				require.Equalf(t, want, dst[i], "%v trial %d pixel %d", k, trial, i)
			}
		}
	}
}

func TestMaskRejectsMissingPlanes(t *testing.T) {
	p := samplespace.Hyperplane{Normal: []float64{1, 0, 0}, Offset: 0}
	err := p.Mask(make([]float64, 4), [][]float64{{0, 0, 0, 0}})
	assert.ErrorIs(t, err, samplespace.ErrChannels)
}

func TestRealStratifiedThresholds(t *testing.T) {
	src := &testutil.Stream{Values: []float64{0.0, 0.25, 0.5, 0.75}}
	want := []float64{-1, -0.375, 0.25, 0.875}
	for s := 0; s < 4; s++ {
		p := samplespace.Real{}.Draw(src, s, 4)
		th, ok := p.(samplespace.Threshold)
		require.True(t, ok)
		assert.InDelta(t, want[s], th.T, 1e-15)
	}
}

func TestRealThresholdStaysInStratum(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	const strata = 32
	for s := 0; s < strata; s++ {
		th := samplespace.Real{}.Draw(rng, s, strata).(samplespace.Threshold)
		lo := 2*float64(s)/strata - 1
		hi := 2*float64(s+1)/strata - 1
		assert.GreaterOrEqual(t, th.T, lo)
		assert.Less(t, th.T, hi)
	}
}

func TestCircleRotationWraps(t *testing.T) {
	p := samplespace.Rotation{T: 1.5}
	// (1.5 + 0.75) mod 2 = 0.25
	assert.True(t, p.Evaluate([]float64{0.75}))
	// (1.5 - 0.25) mod 2 = 1.25
	assert.False(t, p.Evaluate([]float64{-0.25}))
	// (1.5 - 1.75) mod 2 = 1.75 with floor semantics
	assert.False(t, p.Evaluate([]float64{-1.75}))
}

func TestDirectionsAreUnitVectors(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for _, s := range []samplespace.Space{samplespace.Sphere{}, samplespace.Vector2{}, samplespace.Vector3{}, samplespace.Vector4{}} {
		for i := 0; i < 100; i++ {
			h := s.Draw(rng, i, 100).(samplespace.Hyperplane)
			require.Len(t, h.Normal, s.Channels())
			var n float64
			for _, v := range h.Normal {
				n += v * v
			}
			assert.InDelta(t, 1, math.Sqrt(n), 1e-12)
		}
	}
}

func TestOffsetRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	limits := map[samplespace.Kind]float64{
		samplespace.KindSphere:  0,
		samplespace.KindVector2: math.Sqrt2,
		samplespace.KindVector3: math.Sqrt(3),
		samplespace.KindVector4: 2,
	}
	for kind, limit := range limits {
		s, err := samplespace.New(kind)
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			h := s.Draw(rng, i, 200).(samplespace.Hyperplane)
			assert.LessOrEqual(t, math.Abs(h.Offset), limit, "%v", kind)
		}
	}
}

// Averaged over random partitions, a uniformly distributed pixel set lands
// on the "one" side half of the time for the periodic domains.
func TestRotationInvariantMaskFraction(t *testing.T) {
	const (
		pixels = 4096
		draws  = 400
	)
	circle := testutil.NoisePlanes(21, 1, pixels)
	for i := range circle[0] {
		circle[0][i] = 2*circle[0][i] - 1
	}
	sphere := testutil.SpherePlanes(22, pixels)

	cases := []struct {
		space  samplespace.Space
		planes [][]float64
	}{
		{samplespace.Circle{}, circle},
		{samplespace.Sphere{}, sphere},
	}

	rng := rand.New(rand.NewPCG(23, 24))
	dst := make([]float64, pixels)
	for _, tc := range cases {
		var total float64
		for s := 0; s < draws; s++ {
			p := tc.space.Draw(rng, s, draws)
			require.NoError(t, p.Mask(dst, tc.planes))
			var sum float64
			for _, v := range dst {
				sum += v
			}
			total += sum / pixels
		}
		assert.InDelta(t, 0.5, total/draws, 0.02, "%v", tc.space.Kind())
	}
}

func TestZeroPixelsFollowOffsetSign(t *testing.T) {
	rng := rand.New(rand.NewPCG(31, 32))
	zero := testutil.ConstantPlanes(0, 2, 16)
	dst := make([]float64, 16)
	for i := 0; i < 50; i++ {
		h := samplespace.Vector2{}.Draw(rng, i, 50).(samplespace.Hyperplane)
		require.NoError(t, h.Mask(dst, zero))
		want := 0.0
		if h.Offset > 0 {
			want = 1
		}
		for _, v := range dst {
			assert.Equal(t, want, v)
		}
	}
}
