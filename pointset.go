package hups

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	// Infinite is the cardinality sentinel for an unbounded dimension or
	// number of points.
	Infinite = math.MaxInt32

	// MaxBits is the number of usable bits in stored digits. Generator-matrix
	// resources are written for 31-bit registers, so the cap stays at 31.
	MaxBits = 31

	// epsilonHalf keeps shifted coordinates away from exact zero.
	epsilonHalf = 1.0 / (1 << 55)
)

// PointSet is a finite or countably infinite family of points in the unit
// hypercube, addressed by point index i and coordinate index j.
type PointSet interface {
	// Dimension returns the dimension, or Infinite.
	Dimension() int
	// NumPoints returns the number of points, or Infinite.
	NumPoints() int
	// Coordinate returns coordinate j of point i, for 0 <= i < NumPoints()
	// and 0 <= j < Dimension(). Other indices are undefined.
	Coordinate(i, j int) float64
	// Iterator returns a fresh, independent cursor positioned at (0, 0).
	Iterator() Iterator
}

// Shifter is implemented by point sets that support a random digital shift.
type Shifter interface {
	// AddRandomShift draws shift components for coordinates [d1, d2) from s,
	// growing the shift vector when needed. d2 == 0 selects the default
	// span of the point set.
	AddRandomShift(d1, d2 int, s Stream) error
	// ClearRandomShift drops the shift so that coordinates revert exactly to
	// their unshifted values.
	ClearRandomShift()
}

// Randomizer is implemented by point sets whose randomization is more than a
// digital shift (for example point permutations).
type Randomizer interface {
	Randomize(s Stream) error
	Unrandomize()
}

// Stream is a source of uniform random numbers. Iterators implement it, so a
// point set can feed any consumer of uniforms.
type Stream interface {
	// NextDouble returns a uniform value in [0, 1).
	NextDouble() float64
	// NextInt returns a uniform integer in [lo, hi], bounds inclusive.
	NextInt(lo, hi int) int
}

// AddRandomShift adds a random shift on coordinates [d1, d2) of ps. Point sets
// without shift support are left untouched and a warning is logged.
func AddRandomShift(ps PointSet, d1, d2 int, s Stream) error {
	sh, ok := ps.(Shifter)
	if !ok {
		DefaultLogger.Warn("addRandomShift does nothing for this point set", "type", typeName(ps))
		return nil
	}
	return sh.AddRandomShift(d1, d2, s)
}

// ClearRandomShift removes any digital shift from ps.
func ClearRandomShift(ps PointSet) {
	if sh, ok := ps.(Shifter); ok {
		sh.ClearRandomShift()
	}
}

// Randomize randomizes ps with s. Point sets implementing Randomizer use
// their own scheme; the others get a digital shift over their default span.
func Randomize(ps PointSet, s Stream) error {
	if r, ok := ps.(Randomizer); ok {
		return r.Randomize(s)
	}
	return AddRandomShift(ps, 0, 0, s)
}

// RandomizeRange randomizes coordinates [d1, d2) of ps with a digital shift.
func RandomizeRange(ps PointSet, d1, d2 int, s Stream) error {
	return AddRandomShift(ps, d1, d2, s)
}

// Unrandomize undoes Randomize.
func Unrandomize(ps PointSet) {
	if r, ok := ps.(Randomizer); ok {
		r.Unrandomize()
		return
	}
	ClearRandomShift(ps)
}

// PointSetRandomization is a reusable randomization that can be applied to
// many point sets.
type PointSetRandomization interface {
	Apply(ps PointSet) error
	Stream() Stream
}

// RandomShift applies a digital shift drawn from its stream.
type RandomShift struct {
	S       Stream
	Logger  *Logger
	Metrics MetricsCollector
}

// Apply implements PointSetRandomization.
func (r *RandomShift) Apply(ps PointSet) error {
	return r.observe("shift", func() error { return AddRandomShift(ps, 0, 0, r.S) })
}

// Stream implements PointSetRandomization.
func (r *RandomShift) Stream() Stream { return r.S }

func (r *RandomShift) observe(kind string, fn func() error) error {
	start := time.Now()
	err := fn()
	if r.Metrics != nil {
		r.Metrics.RecordRandomize(kind, time.Since(start), err)
	}
	if r.Logger != nil {
		r.Logger.LogRandomize(context.Background(), kind, 0, 0, err)
	}
	return err
}

// RandomPermutation applies the point set's own randomization (point
// permutations for padded sets, digital shift otherwise).
type RandomPermutation struct {
	S Stream
}

// Apply implements PointSetRandomization.
func (r *RandomPermutation) Apply(ps PointSet) error {
	return Randomize(ps, r.S)
}

// Stream implements PointSetRandomization.
func (r *RandomPermutation) Stream() Stream { return r.S }

func countString(n int) string {
	if n == Infinite {
		return "infinite"
	}
	return strconv.Itoa(n)
}

func typeName(ps PointSet) string {
	return fmt.Sprintf("%T", ps)
}
