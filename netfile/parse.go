package netfile

import (
	"fmt"
	"io"

	"github.com/hupe1980/hups"
)

// Header holds the leading fields of a parameter resource.
type Header struct {
	Base      int
	NumCols   int
	NumRows   int
	NumPoints int
	Dim       int
}

// Params is a parsed parameter resource.
type Params struct {
	Header
	Source  string
	Columns []uint32 // Dim*NumCols generator columns, coordinate-major
}

// Decoder reads a parameter resource in two steps, so that the header can
// be validated before the columns are read.
type Decoder struct {
	t *tokenizer
}

// NewDecoder returns a decoder reading from r. source names r in errors.
func NewDecoder(r io.Reader, source string) *Decoder {
	return &Decoder{t: newTokenizer(r, source)}
}

// Header reads the five header fields.
func (d *Decoder) Header() (Header, error) {
	var h Header
	fields := []struct {
		name string
		dst  *int
	}{
		{"base", &h.Base},
		{"numCols", &h.NumCols},
		{"numRows", &h.NumRows},
		{"numPoints", &h.NumPoints},
		{"dim", &h.Dim},
	}
	for _, f := range fields {
		v, err := d.t.nextHeader(f.name)
		if err != nil {
			return Header{}, err
		}
		*f.dst = v
	}
	return h, nil
}

// Columns reads n generator columns.
func (d *Decoder) Columns(n int) ([]uint32, error) {
	cols := make([]uint32, 0, min(n, 1<<16))
	for len(cols) < n {
		v, err := d.t.nextColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, v)
	}
	return cols, nil
}

// Parse reads a complete parameter resource.
func Parse(r io.Reader) (*Params, error) {
	return parse(r, "<input>")
}

func parse(r io.Reader, source string) (*Params, error) {
	d := NewDecoder(r, source)
	h, err := d.Header()
	if err != nil {
		return nil, err
	}
	if h.Dim < 0 || h.NumCols < 0 {
		return nil, &hups.ArgumentError{Op: "netfile.Parse", Param: "dim*numCols", Value: h.Dim * h.NumCols, Reason: "must be >= 0"}
	}
	cols, err := d.Columns(h.Dim * h.NumCols)
	if err != nil {
		return nil, err
	}
	return &Params{Header: h, Source: source, Columns: cols}, nil
}

// ReadColumns reads exactly n integer tokens, for resources that hold bare
// tables of generator columns.
func ReadColumns(r io.Reader, source string, n int) ([]uint32, error) {
	return NewDecoder(r, source).Columns(n)
}

// Net is a digital net built from a parameter resource.
type Net struct {
	*hups.DigitalNetBase2
	Source string
}

// String describes the net and where it was read from.
func (n *Net) String() string {
	return "File:  " + n.Source + "\n" + n.DigitalNetBase2.String()
}

// FormatMatrices dumps the generator columns of every coordinate.
func (n *Net) FormatMatrices() string {
	return "File:  " + n.Source + "\n" + n.DigitalNetBase2.FormatMatrices()
}

// Build turns parsed parameters into a net with r1 rows, w output digits
// and s1 dimensions. r1 <= 0 keeps all rows of the resource and s1 <= 0
// keeps all dimensions. Of the 31-bit columns only the r1 most significant
// bits are kept, then the columns are shifted right by 31-w.
func Build(p *Params, r1, w, s1 int) (*Net, error) {
	const op = "netfile.Build"
	if err := checkResolution(op, r1, w); err != nil {
		return nil, err
	}
	dim, rows, err := resolve(op, p.Header, r1, s1)
	if err != nil {
		return nil, err
	}
	n := dim * p.NumCols
	if len(p.Columns) < n {
		return nil, &hups.ArgumentError{Op: op, Param: "len(Columns)", Value: len(p.Columns), Reason: fmt.Sprintf("need %d columns", n)}
	}
	return buildNet(op, p.Source, p.Header, p.Columns[:n], dim, rows, w)
}

// checkResolution runs before anything is read.
func checkResolution(op string, r1, w int) error {
	if w < r1 || w < 1 || w > hups.MaxBits {
		return &hups.ArgumentError{Op: op, Param: "w", Value: w, Reason: "must have numRows <= w <= 31"}
	}
	return nil
}

// resolve validates the header against the requested rows and dimension
// and returns the effective dimension and row count.
func resolve(op string, h Header, r1, s1 int) (dim, rows int, err error) {
	switch {
	case h.Dim < 1:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "dim", Value: h.Dim, Reason: "dimension dim <= 0"}
	case r1 > h.NumRows:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "r1", Value: r1, Reason: fmt.Sprintf("must have r1 <= numRows (%d)", h.NumRows)}
	case s1 > h.Dim:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "s1", Value: s1, Reason: fmt.Sprintf("s1 is too large (dim %d)", h.Dim)}
	}
	dim, rows = h.Dim, h.NumRows
	if s1 > 0 {
		dim = s1
	}
	if r1 > 0 {
		rows = r1
	}
	switch {
	case h.Base != 2:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "base", Value: h.Base, Reason: "only base 2 allowed"}
	case h.NumCols < 0 || h.NumCols >= hups.MaxBits:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "numCols", Value: h.NumCols, Reason: "must have numCols < 31"}
	case rows < 0 || rows > hups.MaxBits:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "numRows", Value: rows, Reason: "must be in [0, 31]"}
	case h.NumPoints != 1<<h.NumCols:
		return 0, 0, &hups.ArgumentError{Op: op, Param: "numPoints", Value: h.NumPoints, Reason: fmt.Sprintf("numPoints != 2^%d", h.NumCols)}
	}
	return dim, rows, nil
}

func buildNet(op, source string, h Header, cols []uint32, dim, rows, w int) (*Net, error) {
	mask := uint32((uint64(1)<<rows)-1) << (hups.MaxBits - rows)
	genMat := make([]uint32, len(cols))
	for k, v := range cols {
		genMat[k] = (v & mask) >> (hups.MaxBits - w)
	}

	net, err := hups.NewDigitalNetBase2(genMat, dim, h.NumCols, min(rows, w), w)
	if err != nil {
		return nil, err
	}
	return &Net{DigitalNetBase2: net, Source: source}, nil
}
