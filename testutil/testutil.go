package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/hupe1980/hups"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe and implements hups.Stream.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// NextDouble returns a pseudo-random number in [0.0,1.0).
func (r *RNG) NextDouble() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NextInt returns a pseudo-random integer in [lo, hi].
func (r *RNG) NextInt(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hi <= lo {
		return lo
	}
	return lo + int(r.rand.Int63n(int64(hi)-int64(lo)+1))
}

// ScriptedStream replays fixed values. NextInt returns the next scripted
// integer clamped to [lo, hi]; NextDouble the next scripted double. Both
// scripts wrap around. An empty int script yields lo, an empty double
// script yields 0.
type ScriptedStream struct {
	Ints    []int
	Doubles []float64
	ni, nd  int
	Calls   int
}

// NewScriptedStream returns a stream replaying ints and doubles.
func NewScriptedStream(ints []int, doubles []float64) *ScriptedStream {
	return &ScriptedStream{Ints: ints, Doubles: doubles}
}

// NextInt implements hups.Stream.
func (s *ScriptedStream) NextInt(lo, hi int) int {
	s.Calls++
	if len(s.Ints) == 0 {
		return lo
	}
	v := s.Ints[s.ni%len(s.Ints)]
	s.ni++
	return max(lo, min(hi, v))
}

// NextDouble implements hups.Stream.
func (s *ScriptedStream) NextDouble() float64 {
	s.Calls++
	if len(s.Doubles) == 0 {
		return 0
	}
	v := s.Doubles[s.nd%len(s.Doubles)]
	s.nd++
	return v
}

// ArrayPointSet is a point set backed by an explicit coordinate table.
type ArrayPointSet struct {
	points [][]float64
	dim    int
}

// NewArrayPointSet returns a point set whose point i is points[i]. All rows
// must have the same length.
func NewArrayPointSet(points [][]float64) *ArrayPointSet {
	dim := 0
	if len(points) > 0 {
		dim = len(points[0])
	}
	return &ArrayPointSet{points: points, dim: dim}
}

// NewColumnPointSet returns a one-dimensional point set with the given
// coordinates.
func NewColumnPointSet(coords ...float64) *ArrayPointSet {
	points := make([][]float64, len(coords))
	for i, x := range coords {
		points[i] = []float64{x}
	}
	return NewArrayPointSet(points)
}

// Dimension implements hups.PointSet.
func (ps *ArrayPointSet) Dimension() int { return ps.dim }

// NumPoints implements hups.PointSet.
func (ps *ArrayPointSet) NumPoints() int { return len(ps.points) }

// Coordinate implements hups.PointSet.
func (ps *ArrayPointSet) Coordinate(i, j int) float64 { return ps.points[i][j] }

// Iterator implements hups.PointSet.
func (ps *ArrayPointSet) Iterator() hups.Iterator { return hups.NewCursor(ps) }

// Collect reads n points of d coordinates from it, starting at its current
// position.
func Collect(it hups.Iterator, n, d int) ([][]float64, error) {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, d)
		if _, err := it.NextPoint(out[i]); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return out, nil
}

// CollectCoordinates reads n points of d coordinates one NextCoordinate call
// at a time.
func CollectCoordinates(it hups.Iterator, n, d int) ([][]float64, error) {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, d)
		for j := range out[i] {
			x, err := it.NextCoordinate()
			if err != nil {
				return nil, fmt.Errorf("point %d coordinate %d: %w", i, j, err)
			}
			out[i][j] = x
		}
		it.ResetToNextPoint()
	}
	return out, nil
}

// Table returns Coordinate(i, j) for i < n and j < d.
func Table(ps hups.PointSet, n, d int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, d)
		for j := range out[i] {
			out[i][j] = ps.Coordinate(i, j)
		}
	}
	return out
}

// NetFile formats a digital-net parameter resource. cols holds dim*numCols
// left-justified 31-bit generator columns, dimension-major.
func NetFile(numCols, numRows, dim int, cols []uint32) string {
	var sb strings.Builder
	sb.WriteString("// digital net in base 2\n")
	fmt.Fprintf(&sb, "2    // base\n%d   // numCols\n%d   // numRows\n%d   // numPoints\n%d   // dim\n",
		numCols, numRows, 1<<numCols, dim)
	for j := 0; j < dim; j++ {
		fmt.Fprintf(&sb, "\n// dim = %d\n", j+1)
		for c := 0; c < numCols; c++ {
			fmt.Fprintf(&sb, "%d\n", cols[j*numCols+c])
		}
	}
	return sb.String()
}

// IdentityColumns returns the left-justified columns of the identity
// generator matrix with numCols columns: column c has only row c set.
func IdentityColumns(numCols int) []uint32 {
	cols := make([]uint32, numCols)
	for c := range cols {
		cols[c] = 1 << (hups.MaxBits - 1 - c)
	}
	return cols
}
