// Package keyhash provides the reduction functions a hash table uses to
// map a key's hash value onto a bucket index, plus a built-in
// fixed-width key hash for callers that don't supply their own.
package keyhash

import "github.com/cespare/xxhash/v2"

// phi is Knuth's suggested multiplier for the multiplicative method,
// the fractional part of the golden ratio.
const phi = 0.6180339887498949

// Division reduces k onto [0, m) via k mod m. m must be nonzero.
func Division(k, m uint64) uint64 {
	return k % m
}

// Multiplicative reduces k onto [0, m) via Knuth's multiplicative
// method: frac(k*phi) * m. The reference implementation computes
// phi*k in 32-bit float; this is the mathematically equivalent
// frac(0.618...*k) formulation in float64, so results match the
// reference in infinite precision but not bit-for-bit at every k —
// spec.md only requires a Knuth-multiplicative variant, not parity.
func Multiplicative(k, m uint64) uint64 {
	frac := float64(k)*phi - float64(uint64(float64(k)*phi))
	return uint64(frac * float64(m))
}

// Bytes computes a general-purpose, fixed-width key hash over an
// arbitrary byte slice. The reference implementation feeds the key's
// bytes through a CRC and complements the result; this library uses
// xxhash instead (see DESIGN.md for the substitution rationale) since
// spec.md treats CRC itself as an out-of-scope collaborator and only
// the reduction functions above carry a specified contract.
func Bytes(b []byte) uint64 {
	return ^xxhash.Sum64(b)
}
