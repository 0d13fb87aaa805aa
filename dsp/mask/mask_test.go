package mask_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-heaviside/dsp/mask"
	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/dsp/volume"
	"github.com/cwbudde/algo-heaviside/internal/testutil"
)

func constantVolume(t *testing.T, value float64, size, frames, channels int) *volume.Volume {
	t.Helper()
	img, err := volume.NewImage(size, size*frames, channels)
	require.NoError(t, err)
	for c := range img.Planes {
		copy(img.Planes[c], testutil.DC(value, size*size*frames))
	}
	vol, err := volume.Decompose(img)
	require.NoError(t, err)
	return vol
}

func TestNewValidates(t *testing.T) {
	_, err := mask.New(samplespace.Real{}, 0)
	assert.ErrorIs(t, err, mask.ErrStrata)
	_, err = mask.New(nil, 4)
	assert.ErrorIs(t, err, samplespace.ErrUnknownSpace)
}

func TestCheckChannels(t *testing.T) {
	g, err := mask.New(samplespace.Vector3{}, 4)
	require.NoError(t, err)
	vol := constantVolume(t, 0, 4, 1, 2)
	assert.ErrorIs(t, g.Check(vol), samplespace.ErrChannels)
}

// A constant 0.5 image remaps to 0; thresholds drawn from the stream
// [0, .25, .5, .75] over 4 strata are -1, -0.375, 0.25, 0.875.
func TestStratifiedRealFractions(t *testing.T) {
	g, err := mask.New(samplespace.Real{}, 4)
	require.NoError(t, err)

	img, err := volume.NewImage(128, 128, 1)
	require.NoError(t, err)
	copy(img.Planes[0], testutil.DC(0.5, 128*128))
	vol, err := volume.Decompose(img.Remapped())
	require.NoError(t, err)

	src := &testutil.Stream{Values: []float64{0.0, 0.25, 0.5, 0.75}}
	dst := make([]float64, vol.Len())
	want := []float64{0, 0, 1, 1}
	for s := 0; s < 4; s++ {
		p := g.Draw(src, s)
		require.NoError(t, g.Volume(dst, p, vol))
		assert.Equal(t, want[s], mask.Fraction(dst), "stratum %d", s)
	}
}

func TestFrameMatchesVolumeSlice(t *testing.T) {
	const size, frames = 8, 3
	img, err := volume.NewImage(size, size*frames, 2)
	require.NoError(t, err)
	noise := testutil.NoisePlanes(3, 2, size*size*frames)
	copy(img.Planes[0], noise[0])
	copy(img.Planes[1], noise[1])
	vol, err := volume.Decompose(img.Remapped())
	require.NoError(t, err)

	g, err := mask.New(samplespace.Vector2{}, 1)
	require.NoError(t, err)
	p := g.Draw(rand.New(rand.NewPCG(1, 1)), 0)

	whole := make([]float64, vol.Len())
	require.NoError(t, g.Volume(whole, p, vol))
	testutil.RequireBinary(t, whole)

	frame := make([]float64, vol.FramePixels())
	for k := 0; k < frames; k++ {
		require.NoError(t, g.Frame(frame, p, vol, k))
		assert.Equal(t, whole[k*size*size:(k+1)*size*size], frame)
	}
}

func TestLengthMismatch(t *testing.T) {
	g, err := mask.New(samplespace.Real{}, 1)
	require.NoError(t, err)
	vol := constantVolume(t, 0, 4, 2, 1)
	p := samplespace.Threshold{T: 0}
	assert.Error(t, g.Volume(make([]float64, 3), p, vol))
	assert.Error(t, g.Frame(make([]float64, 3), p, vol, 0))
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, mask.Fraction(nil))
	assert.Equal(t, 0.25, mask.Fraction([]float64{1, 0, 0, 0}))
}
