package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilterRejectsAlpha(t *testing.T) {
	for _, alpha := range []float64{0, -0.5, 1.0001, math.NaN(), math.Inf(1)} {
		_, err := NewFilter(alpha)
		require.ErrorIs(t, err, ErrAlpha, "alpha=%v", alpha)
	}
}

func TestFilterSeedsWithFirstField(t *testing.T) {
	f, err := NewFilter(0.25)
	require.NoError(t, err)
	assert.False(t, f.Seeded())
	assert.Nil(t, f.State())

	x := []float64{1, 2, 3}
	state, err := f.Update(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, state)
	assert.True(t, f.Seeded())

	x[0] = 100
	assert.Equal(t, 1.0, f.State()[0], "state must not alias the input")
}

func TestFilterAlphaOneIsIdentity(t *testing.T) {
	f, err := NewFilter(1)
	require.NoError(t, err)

	for _, x := range [][]float64{{0, 1, 0}, {1, 1, 0}, {0.25, 0, 1}} {
		state, err := f.Update(x)
		require.NoError(t, err)
		assert.Equal(t, x, state)
	}
}

func TestFilterBlend(t *testing.T) {
	f, err := NewFilter(0.5)
	require.NoError(t, err)

	_, err = f.Update([]float64{0, 1})
	require.NoError(t, err)
	state, err := f.Update([]float64{1, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1}, state, 1e-15)

	state, err = f.Update([]float64{1, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.5}, state, 1e-15)
}

func TestFilterResetReseeds(t *testing.T) {
	f, err := NewFilter(0.1)
	require.NoError(t, err)
	_, err = f.Update([]float64{5, 5})
	require.NoError(t, err)

	f.Reset()
	assert.False(t, f.Seeded())
	state, err := f.Update([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, state)
}

func TestFilterLengthMismatch(t *testing.T) {
	f, err := NewFilter(0.5)
	require.NoError(t, err)
	_, err = f.Update([]float64{1, 2})
	require.NoError(t, err)
	_, err = f.Update([]float64{1})
	require.Error(t, err)
}
