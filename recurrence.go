package hups

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hups/internal/gf2"
)

// CyclesFromRecurrence partitions the 2^k states of a bijective map on k-bit
// integers into its disjoint cycles. Cycles are listed in order of their
// smallest state, each starting at that state.
func CyclesFromRecurrence(k int, next func(uint32) uint32) ([][]uint32, error) {
	const op = "CyclesFromRecurrence"
	if k < 1 || k > MaxBits {
		return nil, argError(op, "k", k, "must be in [1, 31]")
	}

	numStates := uint64(1) << k
	mask := uint32(numStates - 1)
	visited := roaring.New()

	var cycles [][]uint32
	for s := uint64(0); s < numStates; s++ {
		start := uint32(s)
		if visited.Contains(start) {
			continue
		}
		cyc := []uint32{start}
		visited.Add(start)
		for x := next(start) & mask; x != start; x = next(x) & mask {
			if visited.Contains(x) {
				return nil, argError(op, "state", int(x), "map is not a bijection")
			}
			visited.Add(x)
			cyc = append(cyc, x)
		}
		cycles = append(cycles, cyc)
	}
	return cycles, nil
}

// PolyLCGNext returns the transition x -> z*x mod P(z) on deg(P)-bit states,
// where bit i of a state is the coefficient of z^i.
func PolyLCGNext(poly uint64) func(uint32) uint32 {
	p := gf2.Poly(poly)
	k := p.Degree()
	top := uint32(1) << uint(k)
	reduce := uint32(p) &^ top
	return func(x uint32) uint32 {
		x <<= 1
		if x&top != 0 {
			x = (x &^ top) ^ reduce
		}
		return x
	}
}

// NewPolyLCGPointSet builds the cycle-based point set of the polynomial LCG
// x -> z*x mod P(z) over GF(2), whose states are read as deg(P)-bit
// fractions. P must be irreducible with a non-zero constant term so that the
// map is a bijection; with a primitive P there are two cycles, {0} and all
// other states.
func NewPolyLCGPointSet(poly uint64) (*CycleBasedPointSetBase2, error) {
	const op = "NewPolyLCGPointSet"
	p := gf2.Poly(poly)
	k := p.Degree()
	if k < 1 || k > MaxBits {
		return nil, argError(op, "degree", k, "must be in [1, 31]")
	}
	if !gf2.IsIrreducible(p) || p&1 == 0 {
		return nil, argError(op, "", 0, fmt.Sprintf("polynomial %#x is not an irreducible polynomial with constant term", poly))
	}
	cycles, err := CyclesFromRecurrence(k, PolyLCGNext(poly))
	if err != nil {
		return nil, err
	}
	return NewCycleBasedPointSetBase2(k, cycles)
}
