// Package mathutil carries the small integer-arithmetic helpers the
// rest of the library leans on for overflow-checked sizing math,
// adapted from the teacher's erigon-lib/common/math package down to
// the pieces a container library actually needs.
package mathutil

import "math/bits"

// SafeAdd returns x+y and reports whether the addition overflowed.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carryOut := bits.Add64(x, y, 0)
	return sum, carryOut != 0
}

// AbsoluteDifference returns |x-y| for two uint64 operands.
func AbsoluteDifference(x, y uint64) uint64 {
	if x > y {
		return x - y
	}
	return y - x
}
