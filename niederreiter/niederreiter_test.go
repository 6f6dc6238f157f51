package niederreiter

import (
	"context"
	"io"
	"math/bits"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/blobstore"
	"github.com/hupe1980/hups/netfile"
	"github.com/hupe1980/hups/testutil"
)

func vanDerCorput(i int) float64 {
	return float64(bits.Reverse32(uint32(i))) / (1 << 32)
}

func TestComputeTable(t *testing.T) {
	tbl := ComputeTable(3)
	require.Len(t, tbl, 3*NumCols)

	for c := 0; c < NumCols; c++ {
		// z: identity.
		assert.Equal(t, uint32(1)<<(NumCols-1-c), tbl[c], "column %d", c)

		// z+1: Pascal matrix mod 2, row r of column c is C(c, r) mod 2.
		var want uint32
		for r := 0; r < NumCols; r++ {
			if c&r == r {
				want |= 1 << (NumCols - 1 - r)
			}
		}
		assert.Equal(t, want, tbl[NumCols+c], "column %d", c)
	}

	for _, v := range ComputeTable(MaxDim) {
		assert.Zero(t, v>>NumCols)
	}
}

func TestTable(t *testing.T) {
	tbl, err := Table()
	require.NoError(t, err)
	assert.Len(t, tbl, TableSize)

	again, err := Table()
	require.NoError(t, err)
	assert.Same(t, &tbl[0], &again[0])
}

func TestNew_VanDerCorput(t *testing.T) {
	seq, err := New(6, 31, 1)
	require.NoError(t, err)
	assert.Equal(t, 64, seq.NumPoints())
	assert.Equal(t, 31, seq.NumRows())

	pts, err := testutil.Collect(seq.Iterator(), 64, 1)
	require.NoError(t, err)
	for i, p := range pts {
		assert.Equal(t, vanDerCorput(i), p[0], "point %d", i)
	}
}

func TestNew_Stratified(t *testing.T) {
	const k = 5
	seq, err := New(k, 10, 2)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		seen := make(map[int]bool)
		for i := 0; i < 1<<k; i++ {
			seen[int(seq.Coordinate(i, j)*(1<<k))] = true
		}
		assert.Len(t, seen, 1<<k, "coordinate %d", j)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name      string
		k, w, dim int
		param     string
	}{
		{"zero dimension", 3, 31, 0, "dim"},
		{"dimension too large", 3, 31, MaxDim + 1, "dim"},
		{"too many columns", 31, 31, 1, "k"},
		{"columns above resolution", 5, 4, 1, "k"},
		{"resolution too large", 3, 32, 1, "w"},
		{"negative columns", -1, 31, 1, "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.k, tt.w, tt.dim)
			var ae *hups.ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.param, ae.Param)
		})
	}
}

func TestExtendSequence(t *testing.T) {
	seq, err := New(3, 31, 4)
	require.NoError(t, err)
	first := testutil.Table(seq, 8, 4)

	require.NoError(t, seq.ExtendSequence(5))
	assert.Equal(t, 32, seq.NumPoints())
	assert.Equal(t, 4, seq.Dimension())
	assert.Equal(t, first, testutil.Table(seq, 8, 4))

	assert.ErrorIs(t, seq.ExtendSequence(31), hups.ErrInvalidArgument)
	assert.Equal(t, 32, seq.NumPoints())
}

func TestExtendSequence_KeepsShift(t *testing.T) {
	seq, err := New(3, 31, 2)
	require.NoError(t, err)
	require.NoError(t, hups.Randomize(seq, hups.NewStream(3)))
	shifted := seq.Coordinate(0, 1)

	require.NoError(t, seq.ExtendSequence(4))
	assert.Equal(t, shifted, seq.Coordinate(0, 1))

	hups.Unrandomize(seq)
	assert.Equal(t, 0.0, seq.Coordinate(0, 1))
}

func TestString(t *testing.T) {
	seq, err := New(2, 31, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(seq.String(), "Niederreiter sequence:\n"))
	assert.Contains(t, seq.String(), "Number of points: 4")
}

func formatTable(tbl []uint32) string {
	var sb strings.Builder
	sb.WriteString("// Niederreiter generator columns\n")
	for k, v := range tbl {
		if k%NumCols == 0 {
			sb.WriteString("// dim = " + strconv.Itoa(k/NumCols+1) + "\n")
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestLoadTable(t *testing.T) {
	ctx := context.Background()
	want := ComputeTable(MaxDim)

	data, err := blobstore.Compress("nied.txt.zst", []byte(formatTable(want)))
	require.NoError(t, err)
	require.NoError(t, netfile.Memory.Put(ctx, "niederreiter/nied.txt.zst", data))
	t.Cleanup(func() { _ = netfile.Memory.Delete(ctx, "niederreiter/nied.txt.zst") })

	got, err := LoadTable(ctx, "mem://niederreiter/nied.txt.zst")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadTable_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadTable(ctx, "mem://niederreiter/missing.txt")
		assert.ErrorIs(t, err, hups.ErrTableLoad)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Short", func(t *testing.T) {
		require.NoError(t, netfile.Memory.Put(ctx, "niederreiter/short.txt", []byte("1 2 3")))
		t.Cleanup(func() { _ = netfile.Memory.Delete(ctx, "niederreiter/short.txt") })

		_, err := LoadTable(ctx, "mem://niederreiter/short.txt")
		assert.ErrorIs(t, err, hups.ErrTableLoad)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("EntryTooWide", func(t *testing.T) {
		tbl := ComputeTable(MaxDim)
		tbl[7] = 1 << NumCols
		require.NoError(t, netfile.Memory.Put(ctx, "niederreiter/wide.txt", []byte(formatTable(tbl))))
		t.Cleanup(func() { _ = netfile.Memory.Delete(ctx, "niederreiter/wide.txt") })

		_, err := LoadTable(ctx, "mem://niederreiter/wide.txt")
		assert.ErrorIs(t, err, hups.ErrTableLoad)
	})
}
