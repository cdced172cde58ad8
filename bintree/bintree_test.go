package bintree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCmp(a, b int) int { return a - b }

func collectInorder(t *Tree[int]) []int {
	var out []int
	t.Foreach(Forward, func(n *Node[int], ev Event) int {
		if ev == EventLeaf || ev == EventMid {
			out = append(out, n.Value)
		}
		return 0
	})
	return out
}

func TestInsertFindOrdering(t *testing.T) {
	tr := New(intCmp)
	vals := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0}
	for _, v := range vals {
		tr.Insert(NewNode(v))
	}
	require.Equal(t, len(vals), tr.Len())

	got := collectInorder(tr)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1], got[i])
	}

	for _, v := range vals {
		n := tr.Find(v)
		require.NotNil(t, n)
		assert.Equal(t, v, n.Value)
	}
	assert.Nil(t, tr.Find(999))
}

func TestTiesRouteRight(t *testing.T) {
	tr := New(intCmp)
	a := NewNode(5)
	b := NewNode(5)
	tr.Insert(a)
	tr.Insert(b)
	assert.Same(t, b, a.Right)
}

// verifyOrdering checks spec.md testable property 1: for every internal
// node n, every left-subtree value compares < n and every right-subtree
// value compares >= n.
func verifyOrdering(t *testing.T, tr *Tree[int]) {
	t.Helper()
	var walk func(n *Node[int], lo, hi *int)
	walk = func(n *Node[int], lo, hi *int) {
		if n == nil {
			return
		}
		if lo != nil {
			assert.GreaterOrEqual(t, n.Value, *lo)
		}
		if hi != nil {
			assert.Less(t, n.Value, *hi)
		}
		walk(n.Left, lo, &n.Value)
		walk(n.Right, &n.Value, hi)
	}
	walk(tr.Root(), nil, nil)
}

func TestEraseMaintainsOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := New(intCmp)
	nodes := make(map[int]*Node[int])
	for i := 0; i < 200; i++ {
		n := NewNode(i)
		tr.Insert(n)
		nodes[i] = n
	}
	verifyOrdering(t, tr)

	order := rng.Perm(200)
	for _, k := range order {
		tr.Erase(nodes[k])
		verifyOrdering(t, tr)
	}
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Root())
}

func TestEraseReturnsPhysicallyRemovedNode(t *testing.T) {
	tr := New(intCmp)
	root := NewNode(5)
	left := NewNode(2)
	right := NewNode(8)
	succ := NewNode(6) // leftmost of right subtree
	tr.Insert(root)
	tr.Insert(left)
	tr.Insert(right)
	tr.Insert(succ)

	removed := tr.Erase(root)
	assert.Same(t, succ, removed)
	assert.Equal(t, 6, tr.Root().Value)
	verifyOrdering(t, tr)
}

func TestHeightAndFlatTree(t *testing.T) {
	tr := New(intCmp)
	min, max := tr.Height()
	assert.Equal(t, 0, min)
	assert.Equal(t, 0, max)

	for i := 0; i < 7; i++ {
		tr.Insert(NewNode(i))
	}
	// ascending inserts on a plain BST degrade to a linked list: min==max==n
	min, max = tr.Height()
	assert.Equal(t, 7, min)
	assert.Equal(t, 7, max)
}

func TestClearInvokesDestroyPostOrder(t *testing.T) {
	tr := New(intCmp)
	for _, v := range []int{4, 2, 6, 1, 3, 5, 7} {
		tr.Insert(NewNode(v))
	}
	var destroyed []int
	tr.Clear(func(n *Node[int]) { destroyed = append(destroyed, n.Value) })
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Root())
	assert.Len(t, destroyed, 7)
	assert.Equal(t, []int{1, 3, 2, 5, 7, 6, 4}, destroyed)
}

func TestForeachShortCircuit(t *testing.T) {
	tr := New(intCmp)
	for _, v := range []int{4, 2, 6, 1, 3, 5, 7} {
		tr.Insert(NewNode(v))
	}
	var seen []int
	r := tr.Foreach(Forward, func(n *Node[int], ev Event) int {
		if ev == EventLeaf || ev == EventMid {
			seen = append(seen, n.Value)
			if n.Value == 3 {
				return 1
			}
		}
		return 0
	})
	assert.Equal(t, 1, r)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestSwap(t *testing.T) {
	a := New(intCmp)
	b := New(intCmp)
	a.Insert(NewNode(1))
	b.Insert(NewNode(2))
	b.Insert(NewNode(3))

	a.Swap(b)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
}
