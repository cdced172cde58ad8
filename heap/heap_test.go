package heap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCmp(a, b int) int { return a - b }

// verifyHeap checks testable property 3 from spec.md: every node
// compares greater than or equal to both its children (heap order),
// and the tree is as compact as possible (max leaf depth minus min
// leaf depth is at most 1).
func verifyHeap(t *testing.T, h *Heap[int]) {
	t.Helper()
	if h.root == nil {
		return
	}

	var walk func(n *Node[int], depth int) (min, max int)
	walk = func(n *Node[int], depth int) (int, int) {
		if n.Left != nil {
			assert.LessOrEqual(t, n.Left.Value, n.Value)
		}
		if n.Right != nil {
			assert.LessOrEqual(t, n.Right.Value, n.Value)
		}
		if n.Left == nil && n.Right == nil {
			return depth, depth
		}
		min, max := depth, depth
		if n.Left != nil {
			lmin, lmax := walk(n.Left, depth+1)
			if lmin < min || min == depth {
				min = lmin
			}
			if lmax > max {
				max = lmax
			}
		}
		if n.Right != nil {
			rmin, rmax := walk(n.Right, depth+1)
			if rmin < min {
				min = rmin
			}
			if rmax > max {
				max = rmax
			}
		}
		return min, max
	}
	min, max := walk(h.root, 1)
	assert.LessOrEqual(t, max-min, 1)
	assert.LessOrEqual(t, max, int(math.Log2(float64(h.size)))+2)
}

func TestPushPopOrdering(t *testing.T) {
	h := New(intCmp)
	for _, v := range []int{5, 1, 8, 3, 9, 2, 7} {
		h.Push(NewNode(v))
		verifyHeap(t, h)
	}

	var popped []int
	for h.Len() > 0 {
		v, ok := h.Pop()
		require.True(t, ok)
		popped = append(popped, v)
		verifyHeap(t, h)
	}
	for i := 1; i < len(popped); i++ {
		assert.GreaterOrEqual(t, popped[i-1], popped[i])
	}
}

// TestDrain grounds spec.md scenario S2: push 100 elements drawn from
// rand()%100, then pop every element, checking a non-increasing
// sequence and the shape invariant after every single pop.
func TestDrain(t *testing.T) {
	const n = 100
	rng := rand.New(rand.NewSource(7))
	h := New(intCmp)

	for i := 0; i < n; i++ {
		h.Push(NewNode(rng.Intn(n)))
		assert.Equal(t, i+1, h.Len())
	}
	verifyHeap(t, h)

	prev := math.MaxInt
	for h.Len() > 0 {
		sizeBefore := h.Len()
		v, ok := h.Pop()
		require.True(t, ok)
		assert.LessOrEqual(t, v, prev)
		prev = v
		assert.Equal(t, sizeBefore-1, h.Len())
		verifyHeap(t, h)
	}

	_, ok := h.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestTopDoesNotRemove(t *testing.T) {
	h := New(intCmp)
	_, ok := h.Top()
	assert.False(t, ok)

	h.Push(NewNode(3))
	h.Push(NewNode(9))
	h.Push(NewNode(1))

	top, ok := h.Top()
	require.True(t, ok)
	assert.Equal(t, 9, top)
	assert.Equal(t, 3, h.Len())
}

// TestExternalPointerSurvivesRestructuring checks that the node
// allocated for a given value keeps that identity across Push/Pop
// restructuring (promoteChild relinks nodes rather than copying
// payloads between them), per spec.md §4.3.
func TestExternalPointerSurvivesRestructuring(t *testing.T) {
	h := New(intCmp)
	tracked := NewNode(42)
	h.Push(tracked)
	for _, v := range []int{10, 99, 5, 77, 3, 88} {
		h.Push(NewNode(v))
	}
	assert.Equal(t, 42, tracked.Value)
}
