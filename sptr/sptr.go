// Package sptr provides the library's ownership primitives: a unique
// pointer (single-owner RAII with a custom destructor), a
// reference-counted shared pointer with thread-safe strong/weak
// counts, and a weak pointer with race-free promotion.
//
// The reference implementation (original_source/memory.c) additionally
// defines a "guarded pointer" — a (self-address, payload) pair that
// detects a structure having been byte-copied after initialization and
// aborts on the next read. Go's copy semantics for pointer-bearing
// structs don't admit that hazard the same way C's do: a UniquePtr or
// SharedPtr value assigned or passed by value still shares the same
// underlying pointee, and callers are expected to pass these types by
// pointer (as every method here requires) rather than copy them by
// value. Per spec.md's own Design Notes (§9), the guard is dropped in
// a language with move/assignment semantics; this package keeps no
// guarded pointer, not even a debug-only one (see DESIGN.md).
package sptr

import (
	"runtime"
	"sync/atomic"
)

// DestroyFunc is invoked on a payload immediately before it is freed.
type DestroyFunc[T any] func(v *T)

// UniquePtr is an exclusive owner of a heap-allocated T.
type UniquePtr[T any] struct {
	ptr     *T
	destroy DestroyFunc[T]
}

// Alloc resets u, then allocates a zero-valued T and installs destroy
// as its destructor (destroy may be nil).
func (u *UniquePtr[T]) Alloc(destroy DestroyFunc[T]) *UniquePtr[T] {
	u.Reset()
	u.ptr = new(T)
	u.destroy = destroy
	return u
}

// Get returns the managed pointer, or nil if u owns nothing.
func (u *UniquePtr[T]) Get() *T {
	return u.ptr
}

// Release transfers the payload and destructor to the caller without
// invoking the destructor, and leaves u empty.
func (u *UniquePtr[T]) Release() (*T, DestroyFunc[T]) {
	p, d := u.ptr, u.destroy
	u.ptr, u.destroy = nil, nil
	return p, d
}

// Reset invokes the destructor on the current payload, if any, and
// leaves u empty.
func (u *UniquePtr[T]) Reset() {
	if u.ptr != nil && u.destroy != nil {
		u.destroy(u.ptr)
	}
	u.ptr = nil
	u.destroy = nil
}

// Swap exchanges ownership of the payloads (and destructors) held by u
// and o, without invoking either destructor.
func (u *UniquePtr[T]) Swap(o *UniquePtr[T]) {
	u.ptr, o.ptr = o.ptr, u.ptr
	u.destroy, o.destroy = o.destroy, u.destroy
}

// Borrow makes u reference an externally owned p without taking
// ownership: Reset will not invoke any destructor on it. Intended for
// use on a zero-value UniquePtr to build a throwaway comparison key
// without allocating, mirroring cstl_unique_ptr_init_set.
func (u *UniquePtr[T]) Borrow(p *T) {
	u.ptr = p
	u.destroy = nil
}

// controlBlock is shared between every SharedPtr/WeakPtr derived from
// the same allocation. strong counts the shared pointers keeping the
// payload alive; weak counts the shared-plus-weak pointers keeping the
// control block itself alive. lock arbitrates weak-to-shared
// promotion so that two concurrent Lock calls cannot both observe a
// transient strong count of 1 raised by the other's unchecked
// increment.
type controlBlock[T any] struct {
	strong atomic.Int64
	weak   atomic.Int64
	lock   atomic.Bool
	inner  UniquePtr[T]
}

// SharedPtr is a reference-counted owner of a heap-allocated T.
type SharedPtr[T any] struct {
	data *controlBlock[T]
}

// Alloc resets sp, then allocates a control block and a zero-valued T
// owned by it, installing destroy as the payload's destructor.
func (sp *SharedPtr[T]) Alloc(destroy DestroyFunc[T]) *SharedPtr[T] {
	sp.Reset()
	cb := &controlBlock[T]{}
	cb.strong.Store(1)
	cb.weak.Store(1)
	cb.inner.Alloc(destroy)
	sp.data = cb
	return sp
}

// Get returns the managed pointer, or nil if sp owns nothing.
func (sp *SharedPtr[T]) Get() *T {
	if sp.data == nil {
		return nil
	}
	return sp.data.inner.Get()
}

// UseCount returns the number of shared pointers sharing sp's
// allocation, or 0 if sp is empty.
func (sp *SharedPtr[T]) UseCount() int64 {
	if sp.data == nil {
		return 0
	}
	return sp.data.strong.Load()
}

// Unique reports whether sp is the only shared or weak pointer
// referencing its control block.
func (sp *SharedPtr[T]) Unique() bool {
	if sp.data == nil {
		return false
	}
	return sp.data.weak.Load() == 1
}

// Share resets dst, then makes dst a second owner of sp's allocation.
func (sp *SharedPtr[T]) Share(dst *SharedPtr[T]) {
	dst.Reset()
	if sp.data == nil {
		return
	}
	sp.data.strong.Add(1)
	sp.data.weak.Add(1)
	dst.data = sp.data
}

// Swap exchanges the allocations owned by sp and o in O(1), without
// changing either's reference counts.
func (sp *SharedPtr[T]) Swap(o *SharedPtr[T]) {
	sp.data, o.data = o.data, sp.data
}

// Reset relinquishes sp's ownership. If sp held the last strong
// reference, the payload's destructor runs now; the control block
// itself persists until the last weak reference (shared or plain weak)
// is also released.
func (sp *SharedPtr[T]) Reset() {
	if sp.data == nil {
		return
	}
	data := sp.data
	sp.data = nil
	if data.strong.Add(-1) == 0 {
		data.inner.Reset()
	}
	data.weak.Add(-1)
}

// WeakPtr observes a SharedPtr's allocation without keeping its
// payload alive.
type WeakPtr[T any] struct {
	data *controlBlock[T]
}

// From resets wp, then makes wp observe sp's allocation.
func (wp *WeakPtr[T]) From(sp *SharedPtr[T]) *WeakPtr[T] {
	wp.Reset()
	if sp.data == nil {
		return wp
	}
	sp.data.weak.Add(1)
	wp.data = sp.data
	return wp
}

// Lock resets dst, then attempts to promote wp to a shared pointer.
// If the payload is no longer live, dst is left empty. The promotion
// is race-free with respect to other concurrent Lock calls on weak
// pointers sharing the same control block: the strong count is
// speculatively incremented and only kept if the prior value was
// greater than zero, with a spinlock excluding concurrent promotions
// from racing each other's speculative increment.
func (wp *WeakPtr[T]) Lock(dst *SharedPtr[T]) {
	dst.Reset()
	if wp.data == nil {
		return
	}
	data := wp.data

	for !data.lock.CompareAndSwap(false, true) {
		runtime.Gosched()
	}

	if data.strong.Add(1) > 1 {
		data.weak.Add(1)
		dst.data = data
	} else {
		data.strong.Add(-1)
	}

	data.lock.Store(false)
}

// Reset relinquishes wp's weak reference. If it was the last reference
// of any kind to the control block, the block is abandoned for the
// garbage collector.
func (wp *WeakPtr[T]) Reset() {
	if wp.data == nil {
		return
	}
	data := wp.data
	wp.data = nil
	data.weak.Add(-1)
}
