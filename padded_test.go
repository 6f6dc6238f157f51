package hups_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/testutil"
)

func setA() *testutil.ArrayPointSet { return testutil.NewColumnPointSet(0, 0.25, 0.5, 0.75) }
func setB() *testutil.ArrayPointSet { return testutil.NewColumnPointSet(0.1, 0.2, 0.3, 0.4) }

func TestPaddedCoordinates(t *testing.T) {
	ps := hups.NewPaddedPointSet(2)
	require.NoError(t, ps.PadPointSet(setA()))
	require.NoError(t, ps.PadPointSet(setB()))

	assert.Equal(t, 2, ps.Dimension())
	assert.Equal(t, 4, ps.NumPoints())
	assert.Equal(t, 2, ps.NumPointSets())
	assert.Equal(t, 0.5, ps.Coordinate(2, 0))
	assert.Equal(t, 0.3, ps.Coordinate(2, 1))

	want := [][]float64{{0, 0.1}, {0.25, 0.2}, {0.5, 0.3}, {0.75, 0.4}}
	got, err := testutil.Collect(ps.Iterator(), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = testutil.CollectCoordinates(ps.Iterator(), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Panics(t, func() { ps.Coordinate(0, 2) })
}

func TestPaddedPadErrors(t *testing.T) {
	t.Run("limit reached", func(t *testing.T) {
		ps := hups.NewPaddedPointSet(1)
		require.NoError(t, ps.PadPointSet(setA()))
		assert.ErrorIs(t, ps.PadPointSet(setB()), hups.ErrInvalidArgument)
		assert.Equal(t, 1, ps.NumPointSets())
		assert.Equal(t, 1, ps.Dimension())
	})

	t.Run("count mismatch", func(t *testing.T) {
		ps := hups.NewPaddedPointSet(2)
		require.NoError(t, ps.PadPointSet(setA()))
		err := ps.PadPointSetPermute(testutil.NewColumnPointSet(0.5))
		assert.ErrorIs(t, err, hups.ErrInvalidArgument)
		assert.Equal(t, 1, ps.NumPointSets())
	})

	t.Run("dimension already infinite", func(t *testing.T) {
		cyc, err := hups.NewCycleBasedPointSetBase2(2, [][]uint32{{0}, {1, 2, 3}})
		require.NoError(t, err)

		ps := hups.NewPaddedPointSet(3)
		require.NoError(t, ps.PadPointSet(cyc))
		assert.Equal(t, hups.Infinite, ps.Dimension())
		assert.ErrorIs(t, ps.PadPointSet(setA()), hups.ErrInvalidArgument)
	})
}

func TestPaddedScriptedShuffle(t *testing.T) {
	ps := hups.NewPaddedPointSet(2)
	require.NoError(t, ps.PadPointSetPermute(setA()))
	require.NoError(t, ps.PadPointSet(setB()))

	assert.Equal(t, []int{0, 1, 2, 3}, ps.Permutation(0))
	assert.Nil(t, ps.Permutation(1))

	// Always swapping with the next slot rotates the identity by one.
	s := testutil.NewScriptedStream([]int{1}, nil)
	require.NoError(t, hups.Randomize(ps, s))
	assert.Equal(t, 3, s.Calls)
	assert.Equal(t, []int{1, 2, 3, 0}, ps.Permutation(0))

	assert.Equal(t, 0.25, ps.Coordinate(0, 0))
	assert.Equal(t, 0.1, ps.Coordinate(0, 1))
	assert.Equal(t, 0.0, ps.Coordinate(3, 0))

	got, err := testutil.Collect(ps.Iterator(), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, testutil.Table(ps, 4, 2), got)

	hups.Unrandomize(ps)
	assert.Equal(t, []int{0, 1, 2, 3}, ps.Permutation(0))
}

func TestPaddedPermutationsPreserveProjections(t *testing.T) {
	ps := hups.NewPaddedPointSet(2)
	require.NoError(t, ps.PadPointSetPermute(setA()))
	require.NoError(t, ps.PadPointSetPermute(setB()))

	rng := testutil.NewRNG(11)
	for rep := 0; rep < 5; rep++ {
		require.NoError(t, ps.RandomizePermutations(rng))
		require.NoError(t, ps.ValidatePermutations())

		for j, src := range []*testutil.ArrayPointSet{setA(), setB()} {
			var got, want []float64
			for i := 0; i < 4; i++ {
				got = append(got, ps.Coordinate(i, j))
				want = append(want, src.Coordinate(i, 0))
			}
			sort.Float64s(got)
			assert.Equal(t, want, got)
		}

		it := ps.Iterator()
		it.SetCurPointIndex(2)
		it.SetCurCoordIndex(1)
		x, err := it.NextCoordinate()
		require.NoError(t, err)
		assert.Equal(t, ps.Coordinate(2, 1), x)
	}

	assert.ErrorIs(t, ps.RandomizePermutations(nil), hups.ErrInvalidArgument)
	assert.ErrorIs(t, ps.Randomize(nil), hups.ErrInvalidArgument)
}

func TestPaddedMixedComponents(t *testing.T) {
	net, err := hups.NewDigitalNetBase2([]uint32{4, 2, 1, 1, 2, 4}, 2, 3, 3, 3)
	require.NoError(t, err)
	cyc, err := hups.NewCycleBasedPointSetBase2(3, [][]uint32{{0}, {1, 2, 4, 3, 6, 7, 5}})
	require.NoError(t, err)

	ps := hups.NewPaddedPointSet(2)
	require.NoError(t, ps.PadPointSetPermute(net))
	require.NoError(t, ps.PadPointSet(cyc))
	assert.Equal(t, hups.Infinite, ps.Dimension())

	check := func() {
		want := testutil.Table(ps, 8, 6)

		got, err := testutil.Collect(ps.Iterator(), 8, 6)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		got, err = testutil.CollectCoordinates(ps.Iterator(), 8, 6)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// Spans larger than the scratch buffer still go through.
		it := ps.Iterator()
		long := make([]float64, 40)
		require.NoError(t, it.NextCoordinates(long))
		for j, x := range long {
			assert.Equal(t, ps.Coordinate(0, j), x)
		}
	}

	check()
	before := testutil.Table(ps, 8, 6)

	require.NoError(t, hups.Randomize(ps, hups.NewStream(5)))
	require.NoError(t, ps.ValidatePermutations())
	check()

	// Only the point order of the permuted net changes; the cycle-based
	// component is not permuted and stays put.
	after := testutil.Table(ps, 8, 6)
	for j := 0; j < 6; j++ {
		var a, b []float64
		for i := 0; i < 8; i++ {
			if j >= 2 {
				assert.Equal(t, before[i][j], after[i][j])
			}
			a = append(a, before[i][j])
			b = append(b, after[i][j])
		}
		sort.Float64s(a)
		sort.Float64s(b)
		assert.Equal(t, a, b, "coordinate %d", j)
	}

	hups.Unrandomize(ps)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, ps.Permutation(0))
	assert.Equal(t, 0.5, ps.Coordinate(1, 0))
	assert.Equal(t, before, testutil.Table(ps, 8, 6))
}

func TestPaddedRandomizeKeepsValues(t *testing.T) {
	vdc := func() *hups.DigitalNetBase2 {
		net, err := hups.NewDigitalNetBase2([]uint32{4, 2, 1}, 1, 3, 3, 3)
		require.NoError(t, err)
		return net
	}
	permuted := vdc()
	shifted := vdc()
	require.NoError(t, shifted.AddRandomShift(0, 1, testutil.NewScriptedStream([]int{4}, nil)))
	shiftedValues := testutil.Table(shifted, 8, 1)

	ps := hups.NewPaddedPointSet(2)
	require.NoError(t, ps.PadPointSetPermute(permuted))
	require.NoError(t, ps.PadPointSet(shifted))

	want := []float64{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875}
	for rep := uint64(1); rep <= 3; rep++ {
		require.NoError(t, hups.Randomize(ps, hups.NewStream(rep)))

		var got []float64
		for i := 0; i < 8; i++ {
			got = append(got, ps.Coordinate(i, 0))
			assert.Equal(t, shiftedValues[i][0], ps.Coordinate(i, 1))
		}
		sort.Float64s(got)
		assert.Equal(t, want, got)
	}

	// Unrandomize restores the point order but keeps the shift applied to
	// the component directly.
	hups.Unrandomize(ps)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, ps.Permutation(0))
	assert.Equal(t, shiftedValues, testutil.Table(shifted, 8, 1))
	assert.Equal(t, 0.5, ps.Coordinate(0, 1))
}

func TestPaddedString(t *testing.T) {
	ps := hups.NewPaddedPointSet(3)
	require.NoError(t, ps.PadPointSetPermute(setA()))
	require.NoError(t, ps.PadPointSet(setB()))

	s := ps.String()
	assert.Contains(t, s, "Maximal number of point sets: 3")
	assert.Contains(t, s, "Current number of point sets: 2")
	assert.Contains(t, s, "Permuted point set 0 information: {")
	assert.Contains(t, s, "Point set 1 information: {")
}
