package hups

// digitalShift is the lazily grown per-coordinate XOR mask shared by the
// base-2 point sets. vals has capacity entries; the first dim are drawn.
type digitalShift struct {
	vals   []uint32
	dim    int
	stream Stream
}

// maxShiftValue returns the largest value a shift digit may take for
// numBits-bit registers.
func maxShiftValue(numBits int) int {
	if numBits < MaxBits {
		return (1 << numBits) - 1
	}
	return (1 << MaxBits) - 1
}

// addRandomShift draws shift components [d1, d2) for numBits-bit values.
// sh may be nil; the (possibly new) shift is returned. The shift never
// shrinks: capacity grows by doubling from max(4, capacity).
func addRandomShift(sh *digitalShift, op string, d1, d2, numBits int, s Stream) (*digitalShift, error) {
	if s == nil {
		return sh, argError(op, "", 0, "calling addRandomShift with nil stream")
	}
	if d1 < 0 {
		return sh, argError(op, "d1", d1, "must be >= 0")
	}
	if d2 < d1 {
		return sh, argError(op, "d2", d2, "must be >= d1")
	}

	switch {
	case sh == nil:
		sh = &digitalShift{vals: make([]uint32, d2)}
	case d2 > len(sh.vals):
		d3 := max(4, len(sh.vals))
		for d2 > d3 {
			d3 *= 2
		}
		grown := make([]uint32, d3)
		copy(grown, sh.vals[:sh.dim])
		sh.vals = grown
	}

	maxj := maxShiftValue(numBits)
	for i := d1; i < d2; i++ {
		sh.vals[i] = uint32(s.NextInt(0, maxj))
	}
	sh.dim = max(sh.dim, d2)
	sh.stream = s
	return sh, nil
}

// defaultShiftSpan resolves the d2 == 0 convention: the whole dimension when
// finite, otherwise what is already shifted (at least one coordinate).
func defaultShiftSpan(sh *digitalShift, dim int) int {
	if dim != Infinite {
		return max(1, dim)
	}
	if sh != nil {
		return max(1, sh.dim)
	}
	return 1
}
