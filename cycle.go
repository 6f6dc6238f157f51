package hups

import (
	"fmt"
	"strings"
)

// CycleBasedPointSetBase2 is a point set whose points are the disjoint cycles
// of a recurrence over k-bit integers. Point i starts at some element of its
// cycle and its successive coordinates walk around that cycle, so the
// dimension is infinite.
//
// Values are kept as k-bit integers and scaled by 2^-k on access, which makes
// the digital shift an exact XOR.
type CycleBasedPointSetBase2 struct {
	cycles     [][]uint32
	numPoints  int
	numBits    int
	normFactor float64
	shift      *digitalShift
}

// NewCycleBasedPointSetBase2 builds a point set from explicit cycles of
// numBits-bit values. Every element of every cycle is one point.
func NewCycleBasedPointSetBase2(numBits int, cycles [][]uint32) (*CycleBasedPointSetBase2, error) {
	const op = "NewCycleBasedPointSetBase2"
	if numBits < 1 || numBits > MaxBits {
		return nil, argError(op, "numBits", numBits, "must be in [1, 31]")
	}
	if len(cycles) == 0 {
		return nil, argError(op, "", 0, "no cycles")
	}

	limit := uint64(1) << numBits
	total := 0
	for k, cyc := range cycles {
		if len(cyc) == 0 {
			return nil, argError(op, "cycle", k, "empty cycle")
		}
		for _, v := range cyc {
			if uint64(v) >= limit {
				return nil, argError(op, "cycle", k, fmt.Sprintf("value %d does not fit in %d bits", v, numBits))
			}
		}
		total += len(cyc)
		if total >= Infinite {
			return nil, argError(op, "numPoints", total, "too many points")
		}
	}

	owned := make([][]uint32, len(cycles))
	for k, cyc := range cycles {
		owned[k] = append([]uint32(nil), cyc...)
	}

	return &CycleBasedPointSetBase2{
		cycles:     owned,
		numPoints:  total,
		numBits:    numBits,
		normFactor: 1.0 / float64(uint64(1)<<numBits),
	}, nil
}

// Dimension implements PointSet. It is always Infinite.
func (ps *CycleBasedPointSetBase2) Dimension() int { return Infinite }

// NumPoints implements PointSet.
func (ps *CycleBasedPointSetBase2) NumPoints() int { return ps.numPoints }

// NumBits returns the register width k.
func (ps *CycleBasedPointSetBase2) NumBits() int { return ps.numBits }

// NumCycles returns the number of cycles.
func (ps *CycleBasedPointSetBase2) NumCycles() int { return len(ps.cycles) }

// Coordinate implements PointSet.
func (ps *CycleBasedPointSetBase2) Coordinate(i, j int) float64 {
	// Find the cycle that contains point i, then the index in the cycle.
	before := 0
	k := 0
	for before+len(ps.cycles[k]) <= i {
		before += len(ps.cycles[k])
		k++
	}
	cyc := ps.cycles[k]
	x := cyc[(i-before+j)%len(cyc)]
	if ps.shift == nil {
		return float64(x) * ps.normFactor
	}
	return float64(x^ps.shiftAt(j))*ps.normFactor + epsilonHalf
}

func (ps *CycleBasedPointSetBase2) shiftAt(j int) uint32 {
	if j >= ps.shift.dim {
		// The stream is known to be non-nil once a shift exists.
		_ = ps.AddRandomShift(ps.shift.dim, j+1, ps.shift.stream)
	}
	return ps.shift.vals[j]
}

// AddRandomShift implements Shifter. Shift digits are uniform over
// [0, 2^min(k,31) - 1].
func (ps *CycleBasedPointSetBase2) AddRandomShift(d1, d2 int, s Stream) error {
	if d2 == 0 {
		d2 = defaultShiftSpan(ps.shift, Infinite)
	}
	sh, err := addRandomShift(ps.shift, "CycleBasedPointSetBase2.AddRandomShift", d1, d2, ps.numBits, s)
	if err != nil {
		return err
	}
	ps.shift = sh
	return nil
}

// ClearRandomShift implements Shifter.
func (ps *CycleBasedPointSetBase2) ClearRandomShift() { ps.shift = nil }

// Iterator implements PointSet. The returned cursor keeps a running position
// in the current cycle instead of searching the cycles for every coordinate.
func (ps *CycleBasedPointSetBase2) Iterator() Iterator {
	return newCursor(ps, &cycleWalker{ps: ps})
}

// DefaultIterator returns an iterator that goes through Coordinate.
func (ps *CycleBasedPointSetBase2) DefaultIterator() Iterator { return NewCursor(ps) }

// String describes the point set.
func (ps *CycleBasedPointSetBase2) String() string {
	return fmt.Sprintf("Cycle-based point set in base 2 (%d bits, %d cycles)\n%s",
		ps.numBits, len(ps.cycles), Describe(ps))
}

// FormatCycles dumps the raw cycle contents.
func (ps *CycleBasedPointSetBase2) FormatCycles() string {
	var sb strings.Builder
	sb.WriteString(ps.String())
	for c, cyc := range ps.cycles {
		fmt.Fprintf(&sb, "\nCycle %d: (", c)
		for e, v := range cyc {
			if e > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", v)
		}
		sb.WriteString(")")
	}
	return sb.String()
}

type cycleWalker struct {
	ps *CycleBasedPointSetBase2

	cycleIdx     int
	cycle        []uint32
	startInCycle int // offset of the current point in its cycle
	coordInCycle int // offset of the current coordinate in the cycle
}

func (w *cycleWalker) setCycle(k int) {
	w.cycleIdx = k
	if k < len(w.ps.cycles) {
		w.cycle = w.ps.cycles[k]
	} else {
		w.cycle = nil
	}
}

func (w *cycleWalker) next(c *Cursor) (float64, error) {
	x := w.cycle[w.coordInCycle]
	w.coordInCycle++
	if w.coordInCycle >= len(w.cycle) {
		w.coordInCycle = 0
	}
	if w.ps.shift == nil {
		return float64(x) * w.ps.normFactor, nil
	}
	return float64(x^w.ps.shiftAt(c.coord))*w.ps.normFactor + epsilonHalf, nil
}

func (w *cycleWalker) nextN(c *Cursor, dst []float64) error {
	ps := w.ps
	if ps.shift != nil && c.coord+len(dst) > ps.shift.dim {
		if err := ps.AddRandomShift(ps.shift.dim, c.coord+len(dst), ps.shift.stream); err != nil {
			return err
		}
	}
	n := len(w.cycle)
	for i := range dst {
		x := w.cycle[w.coordInCycle]
		w.coordInCycle++
		if w.coordInCycle >= n {
			w.coordInCycle = 0
		}
		if ps.shift == nil {
			dst[i] = float64(x) * ps.normFactor
		} else {
			dst[i] = float64(x^ps.shift.vals[c.coord+i])*ps.normFactor + epsilonHalf
		}
	}
	return nil
}

func (w *cycleWalker) advancePoint(*Cursor) {
	if w.cycle == nil {
		return
	}
	w.startInCycle++
	if w.startInCycle >= len(w.cycle) {
		w.setCycle(w.cycleIdx + 1)
		w.startInCycle = 0
	}
	w.coordInCycle = w.startInCycle
}

func (w *cycleWalker) seekPoint(c *Cursor) {
	before := 0
	k := 0
	for k < len(w.ps.cycles) && before+len(w.ps.cycles[k]) <= c.point {
		before += len(w.ps.cycles[k])
		k++
	}
	w.setCycle(k)
	w.startInCycle = c.point - before
	w.coordInCycle = w.startInCycle
}

func (w *cycleWalker) seekCoord(c *Cursor) {
	if w.cycle == nil {
		return
	}
	w.coordInCycle = (w.startInCycle + c.coord) % len(w.cycle)
}

func (w *cycleWalker) formatState(*Cursor) string {
	return fmt.Sprintf("Current cycle: %d\nPosition in cycle: %d", w.cycleIdx, w.coordInCycle)
}
