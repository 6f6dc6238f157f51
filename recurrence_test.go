package hups_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hups"
)

func TestCyclesFromRecurrence(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		cycles, err := hups.CyclesFromRecurrence(3, func(x uint32) uint32 { return x })
		require.NoError(t, err)
		assert.Len(t, cycles, 8)
		for s, cyc := range cycles {
			assert.Equal(t, []uint32{uint32(s)}, cyc)
		}
	})

	t.Run("increment", func(t *testing.T) {
		cycles, err := hups.CyclesFromRecurrence(3, func(x uint32) uint32 { return x + 1 })
		require.NoError(t, err)
		require.Len(t, cycles, 1)
		assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, cycles[0])
	})

	t.Run("not a bijection", func(t *testing.T) {
		_, err := hups.CyclesFromRecurrence(3, func(uint32) uint32 { return 0 })
		assert.ErrorIs(t, err, hups.ErrInvalidArgument)
	})

	t.Run("bad width", func(t *testing.T) {
		_, err := hups.CyclesFromRecurrence(0, func(x uint32) uint32 { return x })
		assert.ErrorIs(t, err, hups.ErrInvalidArgument)
		_, err = hups.CyclesFromRecurrence(32, func(x uint32) uint32 { return x })
		assert.ErrorIs(t, err, hups.ErrInvalidArgument)
	})
}

func TestPolyLCGNext(t *testing.T) {
	// z^3 + z + 1
	next := hups.PolyLCGNext(0b1011)
	assert.Equal(t, uint32(0b010), next(0b001))
	assert.Equal(t, uint32(0b100), next(0b010))
	assert.Equal(t, uint32(0b011), next(0b100)) // z^3 = z + 1
}

func TestPolyLCGPointSet(t *testing.T) {
	ps, err := hups.NewPolyLCGPointSet(0b1011) // primitive
	require.NoError(t, err)

	assert.Equal(t, 8, ps.NumPoints())
	assert.Equal(t, 2, ps.NumCycles())
	assert.Equal(t, 3, ps.NumBits())

	// Point 0 is the zero cycle.
	for j := 0; j < 5; j++ {
		assert.Equal(t, 0.0, ps.Coordinate(0, j))
	}
	// The long cycle visits every non-zero state once per period.
	seen := map[float64]bool{}
	for j := 0; j < 7; j++ {
		seen[ps.Coordinate(1, j)] = true
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, ps.Coordinate(1, 0), ps.Coordinate(1, 7))

	for _, poly := range []uint64{0b110, 0b1001, 0b10} {
		_, err := hups.NewPolyLCGPointSet(poly)
		assert.ErrorIs(t, err, hups.ErrInvalidArgument, "poly %#b", poly)
	}
}
