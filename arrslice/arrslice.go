// Package arrslice implements a reference-counted array view: a
// backing buffer shared by reference count, addressed through an
// (offset, length) window. Grounded on
// original_source/src/array.c:207-325 (cstl_array_alloc/set/release/
// slice/unslice), a feature spec.md's distillation dropped but that a
// complete container library carries alongside vector.
package arrslice

import "github.com/erigontech/cstl/sptr"

// rawArray is the shared backing storage. external distinguishes a
// buffer the caller supplied via Set (which Release can hand back)
// from one Alloc allocated itself (which Release refuses to release,
// since nothing outside the Array owns it).
type rawArray[T any] struct {
	buf      []T
	external bool
}

// Array is a reference-counted view onto a backing buffer: a shared
// pointer to the buffer plus an (offset, length) window into it.
type Array[T any] struct {
	data sptr.SharedPtr[rawArray[T]]
	off  int
	len  int
}

// Alloc replaces a's contents with a freshly allocated buffer of n
// zero-valued elements, owned internally.
func (a *Array[T]) Alloc(n int) {
	a.data.Reset()
	a.data.Alloc(nil)
	*a.data.Get() = rawArray[T]{buf: make([]T, n)}
	a.off, a.len = 0, n
}

// Set replaces a's contents with the externally supplied buf, without
// copying it. Because buf is externally owned, Release can later hand
// it back (provided a is still the sole owner).
func (a *Array[T]) Set(buf []T) {
	a.data.Reset()
	a.data.Alloc(nil)
	*a.data.Get() = rawArray[T]{buf: buf, external: true}
	a.off, a.len = 0, len(buf)
}

// Reset empties a, releasing its reference to the backing buffer.
func (a *Array[T]) Reset() {
	a.data.Reset()
	a.off, a.len = 0, 0
}

// Release hands the backing buffer back to the caller and empties a.
// It succeeds only when the buffer was externally supplied via Set
// and a is the sole reference to it; otherwise it returns (nil,
// false) and a is left untouched.
func (a *Array[T]) Release() ([]T, bool) {
	ra := a.data.Get()
	if ra == nil || !ra.external || !a.data.Unique() {
		return nil, false
	}
	buf := ra.buf
	a.Reset()
	return buf, true
}

// Len returns the number of elements visible through a's current
// window.
func (a *Array[T]) Len() int { return a.len }

// At returns a pointer to the i'th element of a's window. It panics
// if i is out of range.
func (a *Array[T]) At(i int) *T {
	if i < 0 || i >= a.len {
		panic("arrslice: index out of range")
	}
	return &a.data.Get().buf[a.off+i]
}

// Data returns a's current window as a plain slice sharing the same
// backing storage.
func (a *Array[T]) Data() []T {
	ra := a.data.Get()
	if ra == nil {
		return nil
	}
	return ra.buf[a.off : a.off+a.len]
}

// Slice narrows out to the [beg, end) sub-window of a's current
// window, sharing a's backing buffer. a and out may be the same
// Array, narrowing it in place.
func (a *Array[T]) Slice(beg, end int, out *Array[T]) {
	ra := a.data.Get()
	if ra == nil || end < beg || a.off+end > len(ra.buf) {
		panic("arrslice: invalid slice bounds")
	}
	newOff, newLen := a.off+beg, end-beg
	if a != out {
		a.data.Share(&out.data)
	}
	out.off, out.len = newOff, newLen
}

// Unslice widens out back to the full extent of s's backing buffer,
// sharing it. s and out may be the same Array.
func (s *Array[T]) Unslice(out *Array[T]) {
	ra := s.data.Get()
	if ra == nil {
		panic("arrslice: unslice of an empty array")
	}
	n := len(ra.buf)
	if s != out {
		s.data.Share(&out.data)
	}
	out.off, out.len = 0, n
}
