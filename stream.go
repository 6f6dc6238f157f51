package hups

import (
	"math/rand/v2"
	"time"
)

// RandStream is a Stream backed by a PCG generator. It is not safe for
// concurrent use; give each goroutine its own stream.
type RandStream struct {
	rand *rand.Rand
	seed uint64
}

// NewStream returns a stream seeded with seed.
func NewStream(seed uint64) *RandStream {
	return &RandStream{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewTimeSeedStream returns a stream seeded from the current time.
func NewTimeSeedStream() *RandStream {
	return NewStream(uint64(time.Now().UnixNano()))
}

// Seed returns the initial seed.
func (r *RandStream) Seed() uint64 { return r.seed }

// Reset restarts the stream from its initial seed.
func (r *RandStream) Reset() {
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// NextDouble implements Stream.
func (r *RandStream) NextDouble() float64 { return r.rand.Float64() }

// NextInt implements Stream.
func (r *RandStream) NextInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(r.rand.Int64N(int64(hi)-int64(lo)+1))
}
