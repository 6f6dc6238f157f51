package hups_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hups"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Number of points: 4\nPoint set dimension: infinite", hups.Describe(twoCycles(t)))
	assert.Equal(t, "Number of points: 8\nPoint set dimension: 2", hups.Describe(hammersley8(t)))
}

func TestFormatPoints(t *testing.T) {
	s, err := hups.FormatPoints(hammersley8(t), -1, -1)
	require.NoError(t, err)
	assert.Contains(t, s, "Points of the point set:\n  0  0\n  0.5  0.125\n")
	assert.Contains(t, s, "  0.875  0.875\n")

	_, err = hups.FormatPoints(twoCycles(t), -1, 2)
	assert.ErrorIs(t, err, hups.ErrInfinite)
	_, err = hups.FormatPoints(twoCycles(t), 2, -1)
	assert.ErrorIs(t, err, hups.ErrInfinite)

	s, err = hups.FormatPoints(twoCycles(t), 10, 3)
	require.NoError(t, err)
	assert.Contains(t, s, "  0.25  0.5  0.75\n")
}

func TestFormatPointsBase(t *testing.T) {
	s, err := hups.FormatPointsBase(hammersley8(t), 2, 1, 2)
	require.NoError(t, err)
	assert.Contains(t, s, "0.10000000000000000000")

	_, err = hups.FormatPointsBase(hammersley8(t), 2, 1, 1)
	assert.ErrorIs(t, err, hups.ErrInvalidArgument)
}

func TestFormatPointsNumbered(t *testing.T) {
	s, err := hups.FormatPointsNumbered(hammersley8(t), 2, 2)
	require.NoError(t, err)
	assert.Contains(t, s, "Point 0  =  (0, 0)")
	assert.Contains(t, s, "Point 1  =  (0.5, 0.125)")
	assert.NotContains(t, s, "Point 2")
}

func TestFormatBase(t *testing.T) {
	assert.Equal(t, "0.1100", hups.FormatBase(0.75, 2, 4))
	assert.Equal(t, "0.5", hups.FormatBase(0.5, 10, 1))
}
