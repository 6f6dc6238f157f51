package hups

import (
	"fmt"
	"math/bits"
	"strings"
)

// DigitalNetBase2 is a digital net in base 2 with 2^numCols points. Column c
// of the generator matrix of coordinate j is the bit-packed value
// genMat[j*numCols+c], right-aligned to outDigits bits: bit outDigits-1-r
// holds row r. Coordinate j of point i is the XOR of the columns selected by
// the binary digits of i, scaled by 2^-outDigits.
type DigitalNetBase2 struct {
	genMat     []uint32
	dim        int
	numCols    int
	numRows    int
	outDigits  int
	numPoints  int
	normFactor float64
	shift      *digitalShift
}

// NewDigitalNetBase2 builds a net from right-aligned generator columns.
// numRows is informational (the rows kept by the generator data) and must
// satisfy numRows <= outDigits <= 31. genMat is copied.
func NewDigitalNetBase2(genMat []uint32, dim, numCols, numRows, outDigits int) (*DigitalNetBase2, error) {
	const op = "NewDigitalNetBase2"
	if dim < 1 {
		return nil, argError(op, "dim", dim, "must be >= 1")
	}
	if numCols < 0 || numCols >= MaxBits {
		return nil, argError(op, "numCols", numCols, "must be in [0, 31)")
	}
	if outDigits < 1 || outDigits > MaxBits {
		return nil, argError(op, "outDigits", outDigits, "must be in [1, 31]")
	}
	if numRows > outDigits {
		return nil, argError(op, "numRows", numRows, "must be <= outDigits")
	}
	if len(genMat) != dim*numCols {
		return nil, argError(op, "len(genMat)", len(genMat), fmt.Sprintf("must be dim*numCols = %d", dim*numCols))
	}
	limit := uint64(1) << outDigits
	for k, v := range genMat {
		if uint64(v) >= limit {
			return nil, argError(op, "genMat", k, fmt.Sprintf("value %d does not fit in %d bits", v, outDigits))
		}
	}

	return &DigitalNetBase2{
		genMat:     append([]uint32(nil), genMat...),
		dim:        dim,
		numCols:    numCols,
		numRows:    numRows,
		outDigits:  outDigits,
		numPoints:  1 << numCols,
		normFactor: 1.0 / float64(uint64(1)<<outDigits),
	}, nil
}

// Rebuild replaces the generator columns with numCols columns per
// coordinate, keeping the dimension, the output digits and the random shift.
// Iterators created before the call must not be used afterwards.
func (net *DigitalNetBase2) Rebuild(genMat []uint32, numCols, numRows int) error {
	fresh, err := NewDigitalNetBase2(genMat, net.dim, numCols, numRows, net.outDigits)
	if err != nil {
		return err
	}
	fresh.shift = net.shift
	*net = *fresh
	return nil
}

// Dimension implements PointSet.
func (net *DigitalNetBase2) Dimension() int { return net.dim }

// NumPoints implements PointSet.
func (net *DigitalNetBase2) NumPoints() int { return net.numPoints }

// NumCols returns the number of generator columns k (NumPoints() == 2^k).
func (net *DigitalNetBase2) NumCols() int { return net.numCols }

// NumRows returns the number of generator rows kept.
func (net *DigitalNetBase2) NumRows() int { return net.numRows }

// OutDigits returns the output resolution w.
func (net *DigitalNetBase2) OutDigits() int { return net.outDigits }

// GeneratorColumn returns column c of the generator matrix of coordinate j.
func (net *DigitalNetBase2) GeneratorColumn(j, c int) uint32 {
	return net.genMat[j*net.numCols+c]
}

// raw returns the unshifted integer of coordinate j of point i.
func (net *DigitalNetBase2) raw(i, j int) uint32 {
	var x uint32
	col := net.genMat[j*net.numCols:]
	for c := 0; i != 0; c++ {
		if i&1 != 0 {
			x ^= col[c]
		}
		i >>= 1
	}
	return x
}

// Coordinate implements PointSet.
func (net *DigitalNetBase2) Coordinate(i, j int) float64 {
	return net.scale(net.raw(i, j), j)
}

func (net *DigitalNetBase2) scale(x uint32, j int) float64 {
	if net.shift == nil {
		return float64(x) * net.normFactor
	}
	if j >= net.shift.dim {
		_ = net.AddRandomShift(net.shift.dim, j+1, net.shift.stream)
	}
	return float64(x^net.shift.vals[j])*net.normFactor + epsilonHalf
}

// AddRandomShift implements Shifter. Shift digits are uniform over
// [0, 2^outDigits - 1].
func (net *DigitalNetBase2) AddRandomShift(d1, d2 int, s Stream) error {
	if d2 == 0 {
		d2 = defaultShiftSpan(net.shift, net.dim)
	}
	sh, err := addRandomShift(net.shift, "DigitalNetBase2.AddRandomShift", d1, d2, net.outDigits, s)
	if err != nil {
		return err
	}
	net.shift = sh
	return nil
}

// ClearRandomShift implements Shifter.
func (net *DigitalNetBase2) ClearRandomShift() { net.shift = nil }

// Iterator implements PointSet. Points are visited in natural order; moving
// to the next point updates the cached coordinates with the columns of the
// bits that changed in the point index.
func (net *DigitalNetBase2) Iterator() Iterator {
	return newCursor(net, &netWalker{net: net, point: -1})
}

// GrayIterator visits the points in Gray-code order: the k-th point visited
// is point k^(k>>1), so every step flips exactly one index bit.
func (net *DigitalNetBase2) GrayIterator() Iterator {
	return newCursor(net, &netWalker{net: net, point: -1, gray: true})
}

// DefaultIterator returns an iterator that goes through Coordinate.
func (net *DigitalNetBase2) DefaultIterator() Iterator { return NewCursor(net) }

// String describes the net.
func (net *DigitalNetBase2) String() string {
	return fmt.Sprintf("Digital net in base 2\nNumber of columns: %d\nNumber of rows: %d\nOutput digits: %d\n%s",
		net.numCols, net.numRows, net.outDigits, Describe(net))
}

// FormatMatrices dumps the generator columns of every coordinate.
func (net *DigitalNetBase2) FormatMatrices() string {
	var sb strings.Builder
	sb.WriteString(net.String())
	fmt.Fprintf(&sb, "\ndim = %d\n", net.dim)
	for j := 0; j < net.dim; j++ {
		fmt.Fprintf(&sb, "\n// dim = %d\n", j+1)
		for c := 0; c < net.numCols; c++ {
			fmt.Fprintf(&sb, "%d\n", net.GeneratorColumn(j, c))
		}
	}
	sb.WriteString("--------------------------------\n")
	return sb.String()
}

// netWalker caches the unshifted integers of the coordinates read so far for
// the point currently held in cache.
type netWalker struct {
	net   *DigitalNetBase2
	gray  bool
	point int      // cursor point index the cache belongs to, -1 if none
	vals  []uint32 // vals[j] for j < len(vals)
}

func (w *netWalker) index(p int) int {
	if w.gray {
		return p ^ (p >> 1)
	}
	return p
}

// sync brings the cache to cursor point p.
func (w *netWalker) sync(p int) {
	switch {
	case w.point == p:
	case w.point >= 0 && w.point == p-1:
		diff := uint(w.index(p - 1) ^ w.index(p))
		for diff != 0 {
			c := bits.TrailingZeros(diff)
			diff &= diff - 1
			for j := range w.vals {
				w.vals[j] ^= w.net.genMat[j*w.net.numCols+c]
			}
		}
		w.point = p
	default:
		w.vals = w.vals[:0]
		w.point = p
	}
}

func (w *netWalker) rawAt(p, j int) uint32 {
	w.sync(p)
	if j < len(w.vals) {
		return w.vals[j]
	}
	x := w.net.raw(w.index(p), j)
	if j == len(w.vals) {
		w.vals = append(w.vals, x)
	}
	return x
}

func (w *netWalker) next(c *Cursor) (float64, error) {
	return w.net.scale(w.rawAt(c.point, c.coord), c.coord), nil
}

func (w *netWalker) nextN(c *Cursor, dst []float64) error {
	net := w.net
	if net.shift != nil && c.coord+len(dst) > net.shift.dim {
		if err := net.AddRandomShift(net.shift.dim, c.coord+len(dst), net.shift.stream); err != nil {
			return err
		}
	}
	for i := range dst {
		dst[i] = net.scale(w.rawAt(c.point, c.coord+i), c.coord+i)
	}
	return nil
}

func (w *netWalker) advancePoint(*Cursor) {}
func (w *netWalker) seekPoint(*Cursor)    {}
func (w *netWalker) seekCoord(*Cursor)    {}

func (w *netWalker) formatState(c *Cursor) string {
	return fmt.Sprintf("Current net point: %d", w.index(c.point))
}
