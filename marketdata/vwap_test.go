package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVWAPRejectsBadInputs(t *testing.T) {
	_, err := NewVWAP(0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
	_, err = NewVWAP(-3)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	v, err := NewVWAP(3)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Observe(100.0, 0), ErrInvalidVolume)
	assert.ErrorIs(t, v.Observe(100.0, -5), ErrInvalidVolume)
	assert.Zero(t, v.Count(), "rejected observations leave the window untouched")
}

func TestVWAPAccumulates(t *testing.T) {
	v, err := NewVWAP(3)
	require.NoError(t, err)

	assert.Zero(t, v.Value(), "empty window reports zero")

	require.NoError(t, v.Observe(100.0, 10))
	assert.InDelta(t, 100.0, v.Value(), 1e-9)

	require.NoError(t, v.Observe(102.0, 30))
	// (100*10 + 102*30) / 40 = 101.5
	assert.InDelta(t, 101.5, v.Value(), 1e-9)
	assert.Equal(t, int64(40), v.TotalVolume())
	assert.Equal(t, 2, v.Count())
}

func TestVWAPWindowEviction(t *testing.T) {
	v, err := NewVWAP(3)
	require.NoError(t, err)

	require.NoError(t, v.Observe(100.0, 10))
	require.NoError(t, v.Observe(101.0, 10))
	require.NoError(t, v.Observe(102.0, 10))
	require.NoError(t, v.Observe(103.0, 10)) // evicts the 100.0 tick

	assert.Equal(t, 3, v.Count())
	assert.Equal(t, int64(30), v.TotalVolume())
	// (101 + 102 + 103) / 3 = 102
	assert.InDelta(t, 102.0, v.Value(), 1e-9)
}

func TestVWAPReset(t *testing.T) {
	v, err := NewVWAP(3)
	require.NoError(t, err)
	require.NoError(t, v.Observe(100.0, 10))

	v.Reset()
	assert.Zero(t, v.Count())
	assert.Zero(t, v.TotalVolume())
	assert.Zero(t, v.Value())
}

func TestVWAPNoFloatDriftOnLongRuns(t *testing.T) {
	v, err := NewVWAP(1000)
	require.NoError(t, err)

	// A constant price stream must report exactly that price however long
	// it runs; the decimal accumulator keeps the sums exact.
	for i := 0; i < 10000; i++ {
		require.NoError(t, v.Observe(100.01, 7))
	}
	assert.Equal(t, 100.01, v.Value())
}
