// Package heap implements a linked (not array-backed) binary max-heap.
// Its node type is independent of package bintree: the reference
// implementation (original_source/heap.c) defines its own self-
// contained node struct with no coupling to the binary-search-tree or
// red-black sources, and this package mirrors that structure exactly
// rather than wrapping bintree.Tree.
//
// A heap element's slot is identified by a numeric id (root is 0, a
// node's children are 2*id+1 and 2*id+2); find walks from the root
// using the bits of id+1, read high-to-low, to decide left/right at
// each level. Promotion and demotion swap a node with its parent by
// relinking pointers — not by copying payloads — so that any external
// pointer into the heap continues to reference the same element across
// heap operations, per spec.md §4.3.
package heap

import "github.com/erigontech/cstl/bitutil"

// Node is a heap element. Parent/Left/Right are maintained by the
// containing Heap; Value is the caller's payload.
type Node[T any] struct {
	Parent, Left, Right *Node[T]
	Value               T
}

// NewNode allocates a detached node holding v.
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// CompareFunc orders two values: positive if a should sit above b.
type CompareFunc[T any] func(a, b T) int

// Heap is a binary max-heap: Top always holds the greatest element
// under cmp.
type Heap[T any] struct {
	root *Node[T]
	size int
	cmp  CompareFunc[T]
}

// New creates an empty heap ordered by cmp.
func New[T any](cmp CompareFunc[T]) *Heap[T] {
	return &Heap[T]{cmp: cmp}
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int { return h.size }

// Top returns the greatest element without removing it, and whether
// the heap was non-empty.
func (h *Heap[T]) Top() (T, bool) {
	var zero T
	if h.root == nil {
		return zero, false
	}
	return h.root.Value, true
}

// find returns the node at slot id (0 == root), or nil if no such slot
// is occupied. It walks from the root using the bits of id+1 from the
// highest set bit down, per the id scheme described in the package
// doc.
func (h *Heap[T]) find(id int) *Node[T] {
	p := h.root
	loc := id + 1
	for b := (1 << uint(bitutil.Fls(uint64(loc)))) >> 1; p != nil && b != 0; b >>= 1 {
		if loc&b == 0 {
			p = p.Left
		} else {
			p = p.Right
		}
	}
	return p
}

// promoteChild swaps node c with its parent in the tree, relinking
// pointers on both sides so that every pointer into the affected
// subtree (from outside, or from c's/p's own children) still resolves
// to the correct node afterward.
func (h *Heap[T]) promoteChild(c *Node[T]) {
	p := c.Parent

	if p.Parent == nil {
		h.root = c
	} else if p.Parent.Left == p {
		p.Parent.Left = c
	} else {
		p.Parent.Right = c
	}

	if c.Left != nil {
		c.Left.Parent = p
	}
	if c.Right != nil {
		c.Right.Parent = p
	}

	if p.Right != nil {
		p.Right.Parent = c
	}
	if p.Left != nil {
		p.Left.Parent = c
	}

	c.Parent = p.Parent
	p.Parent = c

	if p.Left == c {
		p.Left = c.Left
		c.Left = p
		c.Right, p.Right = p.Right, c.Right
	} else {
		p.Right = c.Right
		c.Right = p
		c.Left, p.Left = p.Left, c.Left
	}
}

// Push inserts n at the bottom of the tree (the first open slot in
// breadth-first order) and sifts it up toward the root for as long as
// it compares greater than its parent.
func (h *Heap[T]) Push(n *Node[T]) {
	n.Parent, n.Left, n.Right = nil, nil, nil

	if h.root == nil {
		h.root = n
	} else {
		n.Parent = h.find((h.size - 1) / 2)

		// left children carry odd ids, right children carry even ids
		if h.size%2 == 0 {
			n.Parent.Right = n
		} else {
			n.Parent.Left = n
		}

		for n.Parent != nil && h.cmp(n.Value, n.Parent.Value) > 0 {
			h.promoteChild(n)
		}
	}

	h.size++
}

// Pop removes and returns the greatest element. The last node in
// breadth-first order is relocated into the vacated root slot (keeping
// its own Value, only its tree links are replaced) and sifted down
// until both of its children compare no greater than it.
func (h *Heap[T]) Pop() (T, bool) {
	top, ok := h.Top()
	if !ok {
		return top, false
	}

	n := h.find(h.size - 1)

	if n.Parent == nil {
		h.root = nil
	} else if n.Parent.Left == n {
		n.Parent.Left = nil
	} else {
		n.Parent.Right = nil
	}
	h.size--

	if h.root != nil {
		root := h.root

		n.Parent, n.Left, n.Right = root.Parent, root.Left, root.Right
		if n.Left != nil {
			n.Left.Parent = n
		}
		if n.Right != nil {
			n.Right.Parent = n
		}
		h.root = n

		for (n.Left != nil && h.cmp(n.Left.Value, n.Value) > 0) ||
			(n.Right != nil && h.cmp(n.Right.Value, n.Value) > 0) {
			var c *Node[T]
			if n.Right == nil || (n.Left != nil && h.cmp(n.Left.Value, n.Right.Value) > 0) {
				c = n.Left
			} else {
				c = n.Right
			}
			h.promoteChild(c)
		}
	}

	return top, true
}
