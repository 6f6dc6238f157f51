package niederreiter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/internal/gf2"
	"github.com/hupe1980/hups/netfile"
)

const (
	// MaxDim is the number of coordinates covered by the table.
	MaxDim = 318
	// NumCols is the number of columns stored per coordinate; sequences
	// have at most 2^NumCols points.
	NumCols = 30
	// TableSize is the number of entries of the table.
	TableSize = MaxDim * NumCols

	// EnvTable names a resource holding a precomputed table of TableSize
	// integer tokens, readable by netfile.ReadFile.
	EnvTable = "HUPS_NIEDERREITER_TABLE"
)

// tableRows is the number of rows computed per column. Row r of a column is
// stored at bit tableRows-1-r.
const tableRows = NumCols

var table = sync.OnceValues(func() ([]uint32, error) {
	if loc := os.Getenv(EnvTable); loc != "" {
		return LoadTable(context.Background(), loc)
	}
	return ComputeTable(MaxDim), nil
})

// Table returns the process-wide generator table: entry j*NumCols+c is
// column c of coordinate j. The table is built once; a failure is returned
// as a *hups.LoadError on every call. The returned slice must not be
// modified.
func Table() ([]uint32, error) {
	return table()
}

// LoadTable reads a table of TableSize entries from location.
func LoadTable(ctx context.Context, location string) ([]uint32, error) {
	data, err := netfile.ReadFile(ctx, location)
	if err != nil {
		return nil, hups.NewLoadError(location, err)
	}
	t, err := netfile.ReadColumns(bytes.NewReader(data), location, TableSize)
	if err != nil {
		return nil, hups.NewLoadError(location, err)
	}
	for k, v := range t {
		if v>>tableRows != 0 {
			return nil, hups.NewLoadError(location, fmt.Errorf("entry %d: %d does not fit in %d bits", k, v, tableRows))
		}
	}
	return t, nil
}

// ComputeTable computes the generator columns of the first dim coordinates.
// Coordinate j uses the j-th irreducible polynomial over GF(2) in increasing
// order, so coordinate 0 (polynomial z) is the van der Corput sequence.
func ComputeTable(dim int) []uint32 {
	polys := gf2.Irreducibles(dim)
	out := make([]uint32, dim*NumCols)
	for j, p := range polys {
		copy(out[j*NumCols:], columns(p))
	}
	return out
}

// columns returns the NumCols packed columns for polynomial p.
func columns(p gf2.Poly) []uint32 {
	e := p.Degree()
	v := make([]uint8, tableRows+e+1)
	var ci [tableRows][NumCols]uint8 // ci[r][c]: row r of column c

	b := gf2.Poly(1)
	u := 0
	for r := 0; r < tableRows; r++ {
		if u == 0 {
			b = nextV(p, b, v)
		}
		for c := 0; c < NumCols; c++ {
			ci[r][c] = v[c+u]
		}
		u++
		if u == e {
			u = 0
		}
	}

	cols := make([]uint32, NumCols)
	for c := range cols {
		var term uint32
		for r := 0; r < tableRows; r++ {
			term = term<<1 | uint32(ci[r][c])
		}
		cols[c] = term
	}
	return cols
}

// nextV multiplies b by p and fills v with the linear recurring sequence
// whose characteristic polynomial is the new b: v[0..m) has a single one at
// deg(old b), every free value set to 1, and the rest follows from the
// recurrence. It returns the new b.
func nextV(p, b gf2.Poly, v []uint8) gf2.Poly {
	kj := b.Degree()
	b = gf2.Mul(b, p)
	m := b.Degree()

	for r := 0; r < kj; r++ {
		v[r] = 0
	}
	v[kj] = 1
	for r := kj + 1; r < m && r < len(v); r++ {
		v[r] = 1
	}
	for r := 0; r+m < len(v); r++ {
		var term uint8
		for k := 0; k < m; k++ {
			term ^= b.Coeff(k) & v[r+k]
		}
		v[r+m] = term
	}
	return b
}
