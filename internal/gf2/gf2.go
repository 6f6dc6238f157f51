// Package gf2 implements arithmetic on polynomials over GF(2).
//
// A polynomial is stored as a uint64 whose bit i is the coefficient of z^i,
// so z^3+z+1 is 0b1011. Degrees above 62 are not supported.
package gf2

import "math/bits"

// Poly is a polynomial over GF(2).
type Poly uint64

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return 63 - bits.LeadingZeros64(uint64(p))
}

// Coeff returns the coefficient of z^i.
func (p Poly) Coeff(i int) uint8 {
	return uint8(p>>uint(i)) & 1
}

// Mul returns a*b. The caller must keep deg(a)+deg(b) < 64.
func Mul(a, b Poly) Poly {
	var r Poly
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		a <<= 1
		b >>= 1
	}
	return r
}

// Mod returns a mod m. It panics if m is zero.
func Mod(a, m Poly) Poly {
	dm := m.Degree()
	if dm < 0 {
		panic("gf2: division by zero polynomial")
	}
	for d := a.Degree(); d >= dm; d = a.Degree() {
		a ^= m << uint(d-dm)
	}
	return a
}

// IsIrreducible reports whether p has no factor of degree in [1, deg(p)/2].
func IsIrreducible(p Poly) bool {
	d := p.Degree()
	if d < 1 {
		return false
	}
	if d == 1 {
		return true
	}
	// Every divisor of degree <= d/2 lies below z^(d/2+1).
	limit := Poly(1) << uint(d/2+1)
	for q := Poly(2); q < limit; q++ {
		if Mod(p, q) == 0 {
			return false
		}
	}
	return true
}

// IsPrimitive reports whether p is irreducible and z generates the
// multiplicative group of GF(2)[z]/p, i.e. the order of z is 2^deg(p)-1.
func IsPrimitive(p Poly) bool {
	if !IsIrreducible(p) {
		return false
	}
	d := p.Degree()
	if d == 1 {
		return p == 3
	}
	order := uint64(1)<<uint(d) - 1
	for _, f := range primeFactors(order) {
		if powZ(order/f, p) == 1 {
			return false
		}
	}
	return true
}

// Irreducibles returns the first n irreducible polynomials in increasing
// order (by degree, then by coefficient pattern): z, z+1, z^2+z+1, ...
func Irreducibles(n int) []Poly {
	out := make([]Poly, 0, n)
	for p := Poly(2); len(out) < n; p++ {
		if IsIrreducible(p) {
			out = append(out, p)
		}
	}
	return out
}

// powZ returns z^e mod m.
func powZ(e uint64, m Poly) Poly {
	result := Poly(1)
	base := Mod(2, m)
	for e > 0 {
		if e&1 != 0 {
			result = Mod(Mul(result, base), m)
		}
		base = Mod(Mul(base, base), m)
		e >>= 1
	}
	return result
}

func primeFactors(n uint64) []uint64 {
	var fs []uint64
	for f := uint64(2); f*f <= n; f++ {
		if n%f == 0 {
			fs = append(fs, f)
			for n%f == 0 {
				n /= f
			}
		}
	}
	if n > 1 {
		fs = append(fs, n)
	}
	return fs
}
