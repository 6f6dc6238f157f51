package netfile

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/testutil"
)

// hammersleyColumns are the 31-bit columns of an 8-point net: identity in
// the first coordinate, anti-identity in the second.
func hammersleyColumns() []uint32 {
	cols := testutil.IdentityColumns(3)
	for c := 0; c < 3; c++ {
		cols = append(cols, 1<<(hups.MaxBits-1-(2-c)))
	}
	return cols
}

func hammersleyFile() string {
	return testutil.NetFile(3, 31, 2, hammersleyColumns())
}

func TestTokenizer(t *testing.T) {
	cols, err := ReadColumns(strings.NewReader("12//comment\n34 // more\n\t56\r\n-1"), "t", 4)
	require.NoError(t, err)
	assert.Equal(t, []uint32{12, 34, 56, 0xFFFFFFFF}, cols)
}

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(hammersleyFile()))
	require.NoError(t, err)

	assert.Equal(t, Header{Base: 2, NumCols: 3, NumRows: 31, NumPoints: 8, Dim: 2}, p.Header)
	assert.Equal(t, hammersleyColumns(), p.Columns)
}

func TestParseErrors(t *testing.T) {
	t.Run("BadToken", func(t *testing.T) {
		_, err := Parse(strings.NewReader("2 // base\n3\n31\n8\nabc\n"))
		require.Error(t, err)

		var pe *hups.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "abc", pe.Token)
		assert.Equal(t, 5, pe.Line)
		assert.ErrorIs(t, err, hups.ErrParse)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Parse(strings.NewReader("2 3 31 8 2\n1\n2\n"))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.ErrorIs(t, err, hups.ErrParse)
	})

	t.Run("ColumnOutOfRange", func(t *testing.T) {
		_, err := Parse(strings.NewReader("2 1 31 2 1\n4294967296\n"))
		assert.ErrorIs(t, err, hups.ErrParse)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Parse(strings.NewReader("// nothing here"))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestBuild(t *testing.T) {
	p, err := Parse(strings.NewReader(hammersleyFile()))
	require.NoError(t, err)

	t.Run("FullResolution", func(t *testing.T) {
		net, err := Build(p, -1, 31, -1)
		require.NoError(t, err)
		assert.Equal(t, 2, net.Dimension())
		assert.Equal(t, 8, net.NumPoints())
		assert.Equal(t, 31, net.NumRows())
		assert.Equal(t, 31, net.OutDigits())

		vdc := []float64{0, 0.5, 0.25, 0.75, 0.125, 0.625, 0.375, 0.875}
		for i, x := range vdc {
			assert.Equal(t, x, net.Coordinate(i, 0))
			assert.Equal(t, float64(i)/8, net.Coordinate(i, 1))
		}
	})

	t.Run("ReducedResolution", func(t *testing.T) {
		net, err := Build(p, 3, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, net.Dimension())
		assert.Equal(t, 3, net.NumRows())
		assert.Equal(t, []uint32{4, 2, 1}, []uint32{
			net.GeneratorColumn(0, 0), net.GeneratorColumn(0, 1), net.GeneratorColumn(0, 2),
		})
	})

	t.Run("RowsMasked", func(t *testing.T) {
		full := &Params{
			Header:  Header{Base: 2, NumCols: 1, NumRows: 31, NumPoints: 2, Dim: 1},
			Columns: []uint32{0x7FFFFFFF},
		}
		net, err := Build(full, 2, 31, -1)
		require.NoError(t, err)
		assert.Equal(t, uint32(0x60000000), net.GeneratorColumn(0, 0))
		assert.Equal(t, 2, net.NumRows())

		// Rows beyond the resolution are dropped by the shift.
		net, err = Build(full, -1, 4, -1)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xF), net.GeneratorColumn(0, 0))
		assert.Equal(t, 4, net.NumRows())
	})
}

func TestBuildErrors(t *testing.T) {
	valid := Header{Base: 2, NumCols: 1, NumRows: 31, NumPoints: 2, Dim: 2}
	cols := []uint32{1 << 30, 1 << 30}

	tests := []struct {
		name   string
		mutate func(h *Header)
		r1     int
		w      int
		s1     int
		param  string
	}{
		{"ResolutionCheckedFirst", func(h *Header) { h.Base = 3 }, 5, 4, -1, "w"},
		{"ResolutionTooLarge", nil, -1, 32, -1, "w"},
		{"Dimension", func(h *Header) { h.Dim = 0 }, -1, 31, -1, "dim"},
		{"TooManyRows", nil, 32, 31, -1, "w"},
		{"RowsAboveResource", func(h *Header) { h.NumRows = 10 }, 11, 31, -1, "r1"},
		{"DimensionTooLarge", nil, -1, 31, 3, "s1"},
		{"Base", func(h *Header) { h.Base = 3 }, -1, 31, -1, "base"},
		{"NumCols", func(h *Header) { h.NumCols = 31 }, -1, 31, -1, "numCols"},
		{"NumPoints", func(h *Header) { h.NumPoints = 3 }, -1, 31, -1, "numPoints"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			if tt.mutate != nil {
				tt.mutate(&h)
			}
			_, err := Build(&Params{Header: h, Columns: cols}, tt.r1, tt.w, tt.s1)
			require.Error(t, err)

			var ae *hups.ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.param, ae.Param)
			assert.ErrorIs(t, err, hups.ErrInvalidArgument)
		})
	}
}
