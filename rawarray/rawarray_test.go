package rawarray

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intCmp(a, b int) int { return a - b }

func isSorted(s []int) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

// TestSortDispatch grounds spec.md scenario S4: every named selector,
// plus one outside the enum, must still produce a sorted sequence.
func TestSortDispatch(t *testing.T) {
	algos := []Algorithm{Quick, QuickRandom, QuickMedian, Heap, Algorithm(2897234)}
	rng := rand.New(rand.NewSource(3))

	for _, algo := range algos {
		s := make([]int, 71)
		for i := range s {
			s[i] = rng.Intn(71)
		}
		Sort(s, intCmp, algo)
		assert.True(t, isSorted(s), "algo %v produced unsorted result: %v", algo, s)
	}
}

func TestSortEmptyAndSingleton(t *testing.T) {
	var empty []int
	Sort(empty, intCmp, Quick)
	assert.Empty(t, empty)

	single := []int{5}
	Sort(single, intCmp, Heap)
	assert.Equal(t, []int{5}, single)
}

func TestSortWithDuplicates(t *testing.T) {
	s := []int{3, 1, 3, 3, 2, 1, 3, 2}
	Sort(s, intCmp, Quick)
	assert.True(t, isSorted(s))
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 3, 3}, s)
}

func TestSearchAndFind(t *testing.T) {
	s := []int{1, 3, 5, 7, 9, 11}
	assert.Equal(t, 3, Search(s, 7, intCmp))
	assert.Equal(t, -1, Search(s, 4, intCmp))

	unsorted := []int{9, 3, 7, 1, 5}
	assert.Equal(t, 2, Find(unsorted, 7, intCmp))
	assert.Equal(t, -1, Find(unsorted, 42, intCmp))
}

// TestReverseIdempotenceLaws checks testable property 6: reversing
// twice is the identity, and sorting then reversing produces the
// original sort in descending order.
func TestReverseIdempotenceLaws(t *testing.T) {
	orig := []int{4, 8, 1, 9, 2, 7, 3}
	s := append([]int(nil), orig...)

	Reverse(s)
	Reverse(s)
	assert.Equal(t, orig, s)

	Sort(s, intCmp, Quick)
	ascending := append([]int(nil), s...)
	Reverse(s)
	for i := range s {
		assert.Equal(t, ascending[len(ascending)-1-i], s[i])
	}
}

func TestReverseEmptyAndOdd(t *testing.T) {
	var empty []int
	Reverse(empty)
	assert.Empty(t, empty)

	s := []int{1, 2, 3}
	Reverse(s)
	assert.Equal(t, []int{3, 2, 1}, s)
}

func TestOrderedCompare(t *testing.T) {
	assert.Equal(t, -1, OrderedCompare(1, 2))
	assert.Equal(t, 1, OrderedCompare(2, 1))
	assert.Equal(t, 0, OrderedCompare(2, 2))
	assert.Equal(t, -1, OrderedCompare("abc", "abd"))

	s := []int{5, 3, 4, 1, 2}
	Sort(s, OrderedCompare[int], Quick)
	assert.True(t, isSorted(s))
	assert.Equal(t, 2, Search(s, 3, OrderedCompare[int]))
}
