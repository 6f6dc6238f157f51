// Package hups provides low-discrepancy (quasi-Monte Carlo) point sets in the
// unit hypercube.
//
// A PointSet is addressed by (point index, coordinate index) and may have an
// infinite dimension or number of points (the Infinite sentinel). Points are
// read through an Iterator, which doubles as a Stream of uniforms for code
// that consumes random numbers.
//
// # Point Sets
//
//   - CycleBasedPointSetBase2: points are the cycles of a recurrence over
//     k-bit integers (see CyclesFromRecurrence and NewPolyLCGPointSet).
//   - DigitalNetBase2: 2^k points from bit-packed GF(2) generator matrices.
//     Package netfile loads them from parameter files; package niederreiter
//     builds Niederreiter sequences.
//   - PaddedPointSet: concatenates the coordinates of several point sets,
//     optionally permuting the point order of each one.
//
// # Quick Start
//
//	net, _ := niederreiter.New(10, 31, 5) // 1024 points in 5 dimensions
//	_ = hups.Randomize(net, hups.NewStream(42))
//
//	it := net.Iterator()
//	point := make([]float64, 5)
//	for it.HasNextPoint() {
//	    if _, err := it.NextPoint(point); err != nil {
//	        return err
//	    }
//	    // use point
//	}
//
// # Randomization
//
// Base-2 point sets store their digits as integers and scale them on access,
// so a random digital shift is an exact XOR and ClearRandomShift restores the
// original coordinates bit for bit. Shifted coordinates are offset by 2^-55 so
// they are never exactly zero.
//
// # Concurrency
//
// Point sets are not synchronized. Randomize a point set before creating the
// iterators that read it; any number of iterators may then read it
// concurrently as long as they stay within the randomized coordinates
// (reading past them grows the shift, which is a write). Package rqmc runs
// replications on independent instances instead.
package hups
