package hups

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// paddedBufFallback is the bulk-fetch scratch size used when a component has
// an infinite dimension. The buffer grows when a request needs more.
const paddedBufFallback = 16

// PaddedPointSet concatenates the coordinates of several point sets with the
// same number of points: coordinates [0, d1) come from the first component,
// [d1, d1+d2) from the second, and so on. Components added with
// PadPointSetPermute get their own permutation of the point order, which
// Randomize shuffles independently (Latin supercube sampling).
type PaddedPointSet struct {
	maxPointSets int
	dim          int
	numPoints    int
	sets         []PointSet
	endDim       []int   // endDim[k] is one past the last coordinate of sets[k]
	perms        [][]int // nil for unpermuted components
}

// NewPaddedPointSet returns an empty padded point set that accepts at most
// maxPointSets components.
func NewPaddedPointSet(maxPointSets int) *PaddedPointSet {
	return &PaddedPointSet{maxPointSets: maxPointSets}
}

func (ps *PaddedPointSet) checkPad(op string, p PointSet) error {
	if len(ps.sets) >= ps.maxPointSets {
		return argError(op, "maxPointSets", ps.maxPointSets, "cannot pad more, increase maxPointSets")
	}
	if ps.dim == Infinite {
		return argError(op, "", 0, "cannot pad more, dimension already infinite")
	}
	if len(ps.sets) > 0 && ps.numPoints != p.NumPoints() {
		return argError(op, "numPoints", p.NumPoints(),
			fmt.Sprintf("padded point sets must have the same number of points (%s)", countString(ps.numPoints)))
	}
	return nil
}

func (ps *PaddedPointSet) pad(p PointSet, perm []int) {
	if len(ps.sets) == 0 {
		ps.numPoints = p.NumPoints()
	}
	if d := p.Dimension(); d == Infinite || int64(ps.dim)+int64(d) >= Infinite {
		ps.dim = Infinite
	} else {
		ps.dim += d
	}
	ps.sets = append(ps.sets, p)
	ps.endDim = append(ps.endDim, ps.dim)
	ps.perms = append(ps.perms, perm)
}

// PadPointSet appends the coordinates of p. The first component fixes the
// number of points.
func (ps *PaddedPointSet) PadPointSet(p PointSet) error {
	if err := ps.checkPad("PaddedPointSet.PadPointSet", p); err != nil {
		return err
	}
	ps.pad(p, nil)
	return nil
}

// PadPointSetPermute appends the coordinates of p with a point permutation,
// initially the identity. The number of points must be finite.
func (ps *PaddedPointSet) PadPointSetPermute(p PointSet) error {
	const op = "PaddedPointSet.PadPointSetPermute"
	if err := ps.checkPad(op, p); err != nil {
		return err
	}
	n := p.NumPoints()
	if n == Infinite {
		return argError(op, "numPoints", n, "cannot generate infinite permutation")
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	ps.pad(p, perm)
	return nil
}

// Dimension implements PointSet.
func (ps *PaddedPointSet) Dimension() int { return ps.dim }

// NumPoints implements PointSet.
func (ps *PaddedPointSet) NumPoints() int { return ps.numPoints }

// NumPointSets returns the number of padded components.
func (ps *PaddedPointSet) NumPointSets() int { return len(ps.sets) }

// component returns the index of the component owning coordinate j.
func (ps *PaddedPointSet) component(j int) int {
	k := 0
	for j >= ps.endDim[k] {
		k++
	}
	return k
}

func (ps *PaddedPointSet) startDim(k int) int {
	if k == 0 {
		return 0
	}
	return ps.endDim[k-1]
}

// Coordinate implements PointSet. It panics when j is not below Dimension().
func (ps *PaddedPointSet) Coordinate(i, j int) float64 {
	if j >= ps.dim {
		panic(argError("PaddedPointSet.Coordinate", "j", j, "not enough dimensions"))
	}
	k := ps.component(j)
	if perm := ps.perms[k]; perm != nil {
		i = perm[i]
	}
	return ps.sets[k].Coordinate(i, j-ps.startDim(k))
}

// Randomize implements Randomizer: every permuted component gets a fresh
// uniform permutation by Fisher-Yates. Component values and shifts are left
// alone, so unpermuted components are unaffected.
func (ps *PaddedPointSet) Randomize(s Stream) error {
	if s == nil {
		return argError("PaddedPointSet.Randomize", "", 0, "nil stream")
	}
	ps.shuffle(s)
	return nil
}

// RandomizePermutations shuffles the permutations only. It is the same as
// Randomize.
func (ps *PaddedPointSet) RandomizePermutations(s Stream) error {
	if s == nil {
		return argError("PaddedPointSet.RandomizePermutations", "", 0, "nil stream")
	}
	ps.shuffle(s)
	return nil
}

func (ps *PaddedPointSet) shuffle(s Stream) {
	for _, perm := range ps.perms {
		shufflePermutation(perm, s)
	}
}

func shufflePermutation(perm []int, s Stream) {
	n := len(perm)
	for i := 0; i < n-1; i++ {
		u := s.NextInt(0, n-i-1)
		perm[i], perm[i+u] = perm[i+u], perm[i]
	}
}

// Unrandomize implements Randomizer: permutations return to the identity.
// Shifts applied to components directly are kept.
func (ps *PaddedPointSet) Unrandomize() {
	for _, perm := range ps.perms {
		for i := range perm {
			perm[i] = i
		}
	}
}

// Permutation returns a copy of the point permutation of component k, or
// nil when the component is not permuted.
func (ps *PaddedPointSet) Permutation(k int) []int {
	if ps.perms[k] == nil {
		return nil
	}
	return append([]int(nil), ps.perms[k]...)
}

// ValidatePermutations checks that every permutation is a bijection of
// [0, NumPoints()).
func (ps *PaddedPointSet) ValidatePermutations() error {
	for k, perm := range ps.perms {
		if perm == nil {
			continue
		}
		seen := roaring.New()
		for _, v := range perm {
			if v < 0 || v >= ps.numPoints || !seen.CheckedAdd(uint32(v)) {
				return argError("PaddedPointSet.ValidatePermutations", "component", k, "permutation is not a bijection")
			}
		}
	}
	return nil
}

// Iterator implements PointSet. It keeps one iterator per component and
// seeks each to its permuted point.
func (ps *PaddedPointSet) Iterator() Iterator {
	w := &paddedWalker{ps: ps, its: make([]Iterator, len(ps.sets))}
	maxDim := 0
	for k, p := range ps.sets {
		w.its[k] = p.Iterator()
		maxDim = max(maxDim, p.Dimension())
	}
	if maxDim == Infinite {
		maxDim = paddedBufFallback
	}
	w.buf = make([]float64, maxDim)
	return newCursor(ps, w)
}

// String describes the components.
func (ps *PaddedPointSet) String() string {
	var sb strings.Builder
	sb.WriteString("Padded point set\n")
	fmt.Fprintf(&sb, "Maximal number of point sets: %d\n", ps.maxPointSets)
	fmt.Fprintf(&sb, "Current number of point sets: %d\n", len(ps.sets))
	fmt.Fprintf(&sb, "Number of points: %s", countString(ps.numPoints))
	for k, p := range ps.sets {
		sb.WriteString("\n")
		if ps.perms[k] == nil {
			sb.WriteString("Point set ")
		} else {
			sb.WriteString("Permuted point set ")
		}
		desc := Describe(p)
		if s, ok := p.(fmt.Stringer); ok {
			desc = s.String()
		}
		fmt.Fprintf(&sb, "%d information: {\n%s\n}", k, desc)
	}
	return sb.String()
}

type paddedWalker struct {
	ps  *PaddedPointSet
	its []Iterator
	cur int
	buf []float64
}

// seekComponents positions every component iterator on point i, through its
// permutation. i == NumPoints() seeks past the end.
func (w *paddedWalker) seekComponents(i int) {
	for k, it := range w.its {
		perm := w.ps.perms[k]
		if perm == nil || i >= len(perm) {
			it.SetCurPointIndex(i)
			continue
		}
		it.SetCurPointIndex(perm[i])
	}
	w.cur = 0
}

func (w *paddedWalker) next(c *Cursor) (float64, error) {
	for c.coord >= w.ps.endDim[w.cur] {
		w.cur++
	}
	return w.its[w.cur].NextCoordinate()
}

func (w *paddedWalker) nextN(c *Cursor, dst []float64) error {
	i := 0
	for i < len(dst) {
		for c.coord+i >= w.ps.endDim[w.cur] {
			w.cur++
		}
		span := len(dst) - i
		if end := w.ps.endDim[w.cur]; end != Infinite {
			span = min(span, end-(c.coord+i))
		}
		if span > len(w.buf) {
			w.buf = make([]float64, span)
		}
		if err := w.its[w.cur].NextCoordinates(w.buf[:span]); err != nil {
			return err
		}
		copy(dst[i:], w.buf[:span])
		i += span
	}
	return nil
}

func (w *paddedWalker) advancePoint(c *Cursor) {
	for k, it := range w.its {
		perm := w.ps.perms[k]
		if perm == nil {
			it.ResetToNextPoint()
			continue
		}
		if c.point < len(perm) {
			it.SetCurPointIndex(perm[c.point])
		} else {
			it.SetCurPointIndex(c.point)
		}
	}
	w.cur = 0
}

func (w *paddedWalker) seekPoint(c *Cursor) {
	w.seekComponents(c.point)
}

func (w *paddedWalker) seekCoord(c *Cursor) {
	if c.coord == 0 {
		for _, it := range w.its {
			it.ResetCurCoordIndex()
		}
		w.cur = 0
		return
	}
	if c.coord >= w.ps.dim {
		// The cursor bound check reports the exhaustion on the next read.
		w.cur = len(w.its) - 1
		return
	}
	k := w.ps.component(c.coord)
	w.cur = k
	w.its[k].SetCurCoordIndex(c.coord - w.ps.startDim(k))
	for m := k + 1; m < len(w.its); m++ {
		w.its[m].ResetCurCoordIndex()
	}
}

func (w *paddedWalker) formatState(*Cursor) string {
	return fmt.Sprintf("Current padded set: %d", w.cur)
}
