// Package rawarray implements the comparison-based sort/search
// primitives that operate directly on a slice: quicksort (with a
// choice of pivot strategy), heapsort, binary search, linear find, and
// an in-place two-pointer reverse. These are the algorithms package
// vector delegates to once it has resolved an element's in-buffer
// position; a Go slice already gives direct, swap-by-assignment access
// to its elements, so unlike the reference implementation's
// void*-plus-element-size arithmetic, no address/offset helper is
// needed here.
package rawarray

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// CompareFunc orders two values: negative if a < b, zero if equal,
// positive if a > b.
type CompareFunc[T any] func(a, b T) int

// Ordered re-exports constraints.Ordered so callers of OrderedCompare
// don't need their own import of golang.org/x/exp/constraints.
type Ordered = constraints.Ordered

// OrderedCompare is the default CompareFunc for any type with a native
// ordering, sparing callers from writing a three-way comparator by
// hand for the common case of sorting/searching plain ordered values.
// Intrusive or struct-keyed types still go through an explicit
// CompareFunc.
func OrderedCompare[T Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Algorithm selects a sort strategy for Sort.
type Algorithm int

const (
	// Quick partitions around the first element of each subrange.
	Quick Algorithm = iota
	// QuickRandom partitions around a uniformly random element.
	QuickRandom
	// QuickMedian is nominally a median-of-three pivot selection; it
	// is implemented as randomized pivot selection under the same
	// dispatch path, matching the reference implementation's own
	// documented equivalence between the two strategies.
	QuickMedian
	// Heap sorts via an in-place binary heap.
	Heap
)

// Sort orders s according to cmp using algo. Any value of algo outside
// the four named constants falls through to the deterministic
// quicksort: this is a preserved, deliberate quirk (see DESIGN.md) —
// callers should not rely on a given Algorithm value always producing
// a distinct code path, only that the result is always sorted.
func Sort[T any](s []T, cmp CompareFunc[T], algo Algorithm) {
	switch algo {
	case QuickRandom, QuickMedian:
		quicksort(s, cmp, randomPivot)
	case Heap:
		heapsort(s, cmp)
	default:
		quicksort(s, cmp, firstPivot)
	}
}

func firstPivot(n int) int { return 0 }

func randomPivot(n int) int { return rand.Intn(n) }

func quicksort[T any](s []T, cmp CompareFunc[T], pivot func(n int) int) {
	if len(s) <= 1 {
		return
	}
	m := partition(s, cmp, pivot(len(s)))
	quicksort(s[:m+1], cmp, pivot)
	quicksort(s[m+1:], cmp, pivot)
}

// partition implements the Hoare two-pointer scheme, tracking the
// pivot by position (the slice-index analogue of the reference
// implementation's pivot-by-address tracking): whenever the element
// currently serving as the pivot value is itself swapped, partition
// re-points to wherever it was moved to, so comparisons against the
// pivot stay correct even when the pivot value is duplicated elsewhere
// in the range.
func partition[T any](s []T, cmp CompareFunc[T], pivotPos int) int {
	i, j := 0, len(s)-1
	first := true
	for {
		if !first {
			switch pivotPos {
			case i:
				pivotPos = j
			case j:
				pivotPos = i
			}
			s[i], s[j] = s[j], s[i]
			i++
			j--
		}
		first = false

		for cmp(s[i], s[pivotPos]) < 0 {
			i++
		}
		for cmp(s[j], s[pivotPos]) > 0 {
			j--
		}
		if i >= j {
			break
		}
	}
	return j
}

func heapsort[T any](s []T, cmp CompareFunc[T]) {
	count := len(s)
	if count <= 1 {
		return
	}
	for i := count/2 - 1; i >= 0; i-- {
		siftDown(s, cmp, i, count)
	}
	for i := count - 1; i > 0; i-- {
		s[0], s[i] = s[i], s[0]
		siftDown(s, cmp, 0, i)
	}
}

func siftDown[T any](s []T, cmp CompareFunc[T], n, count int) {
	c := -1
	for {
		if c >= 0 {
			s[n], s[c] = s[c], s[n]
			n = c
		}
		c = n
		l, r := 2*n+1, 2*n+2
		if l < count && cmp(s[l], s[c]) > 0 {
			c = l
		}
		if r < count && cmp(s[r], s[c]) > 0 {
			c = r
		}
		if n == c {
			break
		}
	}
}

// Search performs a binary search for an element comparing equal to
// ex. s must already be sorted under cmp. It returns the index of a
// matching element, or -1 if none compares equal.
func Search[T any](s []T, ex T, cmp CompareFunc[T]) int {
	i, j := 0, len(s)-1
	for i <= j {
		n := (i + j) / 2
		switch eq := cmp(ex, s[n]); {
		case eq == 0:
			return n
		case eq < 0:
			j = n - 1
		default:
			i = n + 1
		}
	}
	return -1
}

// Find performs a linear scan for the first element comparing equal to
// ex, or -1 if none does.
func Find[T any](s []T, ex T, cmp CompareFunc[T]) int {
	for i := range s {
		if cmp(ex, s[i]) == 0 {
			return i
		}
	}
	return -1
}

// Reverse reverses s in place using a two-pointer swap.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
