// Package niederreiter builds digital Niederreiter sequences in base 2.
//
// The generator matrices of all MaxDim coordinates come from one
// process-wide table of NumCols columns per coordinate. The table is built
// on first use, either computed from the irreducible polynomials over GF(2)
// (the Bratley-Fox-Niederreiter construction) or read from the resource
// named by the HUPS_NIEDERREITER_TABLE environment variable.
package niederreiter
