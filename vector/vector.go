// Package vector implements a resizable contiguous sequence on top of
// package rawarray's sort/search/reverse primitives. Its backing
// buffer always holds one slot past its advertised capacity: the
// reference implementation (original_source/src/vector.c) reserves
// that slot as scratch space for swaps during sort/reverse so the
// generic, memcpy-based element swap never needs to heap-allocate. A
// Go slice swap needs no such scratch memory — tuple assignment moves
// the values directly — but the capacity-plus-one invariant is kept
// here anyway because it is part of what spec.md describes as the
// vector's buffer shape, not an artifact of the reference language's
// genericity.
package vector

import (
	"github.com/erigontech/cstl/mathutil"
	"github.com/erigontech/cstl/rawarray"
)

// CompareFunc orders two values: negative if a < b, zero if equal,
// positive if a > b.
type CompareFunc[T any] func(a, b T) int

// Ordered is CompareFunc's default for any type with a native
// ordering: Sort(vector.Ordered[T], algo) / Search(ex,
// vector.Ordered[T]) spare callers from writing a three-way comparator
// by hand for the common case of a plain ordered element type.
func Ordered[T rawarray.Ordered](a, b T) int {
	return rawarray.OrderedCompare(a, b)
}

// Options configures the constructor/destructor hooks a Vector runs
// when Resize brings new slots into or out of use.
type Options[T any] struct {
	Construct func(*T)
	Destruct  func(*T)
}

// Vector is a resizable sequence of T.
type Vector[T any] struct {
	buf     []T
	count   int
	cap     int
	cons    func(*T)
	destruct func(*T)
}

// New creates an empty vector configured by opts.
func New[T any](opts Options[T]) *Vector[T] {
	return &Vector[T]{cons: opts.Construct, destruct: opts.Destruct}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.count }

// Cap returns the current capacity (excluding the hidden scratch
// slot).
func (v *Vector[T]) Cap() int { return v.cap }

// At returns a pointer to the element at index i. It panics if i is
// out of [0, Len()), mirroring the reference implementation's
// precondition-violation abort.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.count {
		panic("vector: index out of range")
	}
	return &v.buf[i]
}

func (v *Vector[T]) setCapacity(n int) {
	if n < v.count {
		panic("vector: capacity cannot drop below live element count")
	}
	scratch, overflow := mathutil.SafeAdd(uint64(n), 1)
	if overflow || scratch > uint64(^uint(0)>>1) {
		panic("vector: requested capacity overflows")
	}
	buf := make([]T, scratch)
	copy(buf, v.buf[:v.count])
	v.buf = buf
	v.cap = n
}

// Reserve grows the backing buffer so Cap() is at least n, if it
// isn't already.
func (v *Vector[T]) Reserve(n int) {
	if n > v.cap {
		v.setCapacity(n)
	}
}

// ShrinkToFit releases any capacity beyond the live element count.
func (v *Vector[T]) ShrinkToFit() {
	if v.cap > v.count {
		v.setCapacity(v.count)
	}
}

// Resize grows or shrinks the vector to hold exactly n elements.
// Growing past the current capacity reserves first. When growing, the
// configured constructor hook (if any) runs on each newly live slot in
// ascending order; when shrinking, the configured destructor hook (if
// any) runs on each newly dead slot in descending order, so the most
// recently constructed elements are destroyed first.
func (v *Vector[T]) Resize(n int) {
	v.Reserve(n)

	switch {
	case v.count < n:
		for v.count < n {
			if v.cons != nil {
				v.cons(&v.buf[v.count])
			}
			v.count++
		}
	case v.count > n:
		for v.count > n {
			v.count--
			if v.destruct != nil {
				v.destruct(&v.buf[v.count])
			}
		}
	}
}

// Clear empties the vector, running the destructor hook (if any) on
// every live element, and releases the backing buffer entirely.
func (v *Vector[T]) Clear() {
	v.Resize(0)
	v.buf = nil
	v.cap = 0
}

// live returns the slice view over just the vector's live elements.
func (v *Vector[T]) live() []T { return v.buf[:v.count] }

// Sort orders the vector's live elements according to cmp using algo.
func (v *Vector[T]) Sort(cmp CompareFunc[T], algo rawarray.Algorithm) {
	rawarray.Sort(v.live(), rawarray.CompareFunc[T](cmp), algo)
}

// Search performs a binary search for ex among the vector's live
// elements, which must already be sorted under cmp.
func (v *Vector[T]) Search(ex T, cmp CompareFunc[T]) int {
	return rawarray.Search(v.live(), ex, rawarray.CompareFunc[T](cmp))
}

// Find performs a linear scan for ex among the vector's live elements.
func (v *Vector[T]) Find(ex T, cmp CompareFunc[T]) int {
	return rawarray.Find(v.live(), ex, rawarray.CompareFunc[T](cmp))
}

// Reverse reverses the vector's live elements in place.
func (v *Vector[T]) Reverse() {
	rawarray.Reverse(v.live())
}

// Swap exchanges the contents of two vectors in O(1).
func (v *Vector[T]) Swap(o *Vector[T]) {
	*v, *o = *o, *v
}
