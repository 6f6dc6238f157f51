// Package testutil provides testing utilities for hups.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded and scripted random streams, point sets backed by an
// explicit coordinate table, and helpers that drain iterators.
//
// # Streams
//
//	rng := testutil.NewRNG(seed)     // thread-safe, reproducible
//	seq := testutil.NewScriptedStream([]int{2, 0, 1}, nil)
//
// # Point Sets
//
//	ps := testutil.NewArrayPointSet([][]float64{{0, 0.1}, {0.5, 0.2}})
//	pts, _ := testutil.Collect(ps.Iterator(), 2, 2)
package testutil
