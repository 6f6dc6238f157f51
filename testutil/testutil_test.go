package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG(t *testing.T) {
	rng := NewRNG(4711)

	for i := 0; i < 100; i++ {
		x := rng.NextDouble()
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)

		k := rng.NextInt(3, 5)
		assert.GreaterOrEqual(t, k, 3)
		assert.LessOrEqual(t, k, 5)
	}

	rng.Reset()
	first := rng.NextDouble()
	rng.Reset()
	assert.Equal(t, first, rng.NextDouble())
}

func TestScriptedStream(t *testing.T) {
	s := NewScriptedStream([]int{1, 9}, []float64{0.25})

	assert.Equal(t, 1, s.NextInt(0, 5))
	assert.Equal(t, 5, s.NextInt(0, 5)) // clamped
	assert.Equal(t, 1, s.NextInt(0, 5)) // wraps
	assert.Equal(t, 0.25, s.NextDouble())
	assert.Equal(t, 4, s.Calls)
}

func TestArrayPointSet(t *testing.T) {
	ps := NewArrayPointSet([][]float64{{0.1, 0.2}, {0.3, 0.4}})
	assert.Equal(t, 2, ps.Dimension())
	assert.Equal(t, 2, ps.NumPoints())

	got, err := Collect(ps.Iterator(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}}, got)

	got, err = CollectCoordinates(ps.Iterator(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, Table(ps, 2, 2), got)
}

func TestNetFile(t *testing.T) {
	s := NetFile(2, 2, 1, IdentityColumns(2))
	assert.Contains(t, s, "1073741824")
	assert.Contains(t, s, "536870912")
}
