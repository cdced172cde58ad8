// Package rbtree layers CLRS-style red-black balancing on top of the
// unbalanced search tree engine in package bintree. It reuses bintree's
// node type, rotation primitive, and in-order walk directly rather than
// re-deriving tree surgery from scratch; only insertion fixup and
// deletion (and its fixup) are specific to this package, per spec.md
// §2's description of the red-black tree as "the binary tree with a
// rebalancing discipline layered on top."
package rbtree

import "github.com/erigontech/cstl/bintree"

// Node is a red-black tree node. It is the same type bintree uses; the
// Color field that plain bintree usage ignores carries the red-black
// coloring here.
type Node[T any] = bintree.Node[T]

// NewNode allocates a detached, red-colored node holding v. Insert also
// sets the color, but constructing a correctly-colored node up front
// matches the reference library's convention of a single allocation
// site per node.
func NewNode[T any](v T) *Node[T] {
	n := bintree.NewNode(v)
	n.Color = bintree.Red
	return n
}

// CompareFunc orders two values: negative if a < b, zero if equal,
// positive if a > b.
type CompareFunc[T any] func(a, b T) int

// Tree is a red-black tree over elements of type T.
type Tree[T any] struct {
	bt *bintree.Tree[T]
}

// New creates an empty tree ordered by cmp.
func New[T any](cmp CompareFunc[T]) *Tree[T] {
	return &Tree[T]{bt: bintree.New(bintree.CompareFunc[T](cmp))}
}

// Len returns the number of nodes in the tree.
func (t *Tree[T]) Len() int { return t.bt.Len() }

// Root returns the tree's root node, or nil if the tree is empty.
func (t *Tree[T]) Root() *Node[T] { return t.bt.Root() }

// Find returns a node whose value compares equal to v, or nil.
func (t *Tree[T]) Find(v T) *Node[T] { return t.bt.Find(v) }

// Foreach walks the tree; see bintree.Tree.Foreach.
func (t *Tree[T]) Foreach(dir bintree.Direction, visit func(n *Node[T], ev bintree.Event) int) int {
	return t.bt.Foreach(dir, visit)
}

// Height returns the minimum and maximum leaf depth across the tree.
func (t *Tree[T]) Height() (min, max int) { return t.bt.Height() }

// Clear removes every node, invoking destroy (if non-nil) on each.
func (t *Tree[T]) Clear(destroy func(*Node[T])) { t.bt.Clear(destroy) }

// Swap exchanges the contents of two trees in O(1).
func (t *Tree[T]) Swap(o *Tree[T]) { t.bt, o.bt = o.bt, t.bt }

func colorOf[T any](n *Node[T]) bintree.Color {
	if n == nil {
		return bintree.Black
	}
	return n.Color
}

// Insert places n according to the tree's ordering, colors it red, and
// restores the red-black properties with the standard CLRS
// insertion-fixup walk, generalized over a Dir so the "parent is a left
// child of grandparent" / "... right child ..." cases share one body.
func (t *Tree[T]) Insert(n *Node[T]) {
	t.bt.Insert(n)
	n.Color = bintree.Red
	t.insertFixup(n)
}

func (t *Tree[T]) insertFixup(n *Node[T]) {
	for colorOf(n.Parent) == bintree.Red {
		gp := n.Parent.Parent
		d := bintree.Left
		if n.Parent == gp.Right {
			d = bintree.Right
		}
		uncle := gp.Child(d.Other())
		if colorOf(uncle) == bintree.Red {
			n.Parent.Color = bintree.Black
			uncle.Color = bintree.Black
			gp.Color = bintree.Red
			n = gp
			continue
		}
		if n == n.Parent.Child(d.Other()) {
			n = n.Parent
			t.bt.Rotate(n, d)
		}
		n.Parent.Color = bintree.Black
		gp.Color = bintree.Red
		t.bt.Rotate(gp, d.Other())
	}
	t.bt.Root().Color = bintree.Black
}

// Erase removes n from the tree and restores the red-black properties.
// It implements CLRS's RB-DELETE directly against bintree's exported
// Transplant/Leftmost/Rotate/Root/AdjustCount primitives rather than
// composing on bintree.Tree.Erase: CLRS's deletion fixup needs the
// "gap" parent and the direction of the gap even when the node that
// physically fills it (x) is nil, information bintree.Erase's return
// value alone does not carry.
func (t *Tree[T]) Erase(n *Node[T]) {
	y := n
	yColor := y.Color
	var x, xParent *Node[T]
	var d bintree.Dir

	switch {
	case n.Left == nil:
		x, xParent = n.Right, n.Parent
		if n.Parent != nil && n.Parent.Left == n {
			d = bintree.Left
		} else {
			d = bintree.Right
		}
		t.bt.Transplant(n, n.Right)
	case n.Right == nil:
		x, xParent = n.Left, n.Parent
		if n.Parent != nil && n.Parent.Left == n {
			d = bintree.Left
		} else {
			d = bintree.Right
		}
		t.bt.Transplant(n, n.Left)
	default:
		y = bintree.Leftmost(n.Right)
		yColor = y.Color
		x = y.Right
		if y.Parent == n {
			xParent = y
			d = bintree.Right
		} else {
			xParent = y.Parent
			d = bintree.Left
			t.bt.Transplant(y, y.Right)
			y.Right = n.Right
			y.Right.Parent = y
		}
		t.bt.Transplant(n, y)
		y.Left = n.Left
		y.Left.Parent = y
		y.Color = n.Color
	}

	t.bt.AdjustCount(-1)
	if yColor == bintree.Black {
		t.deleteFixup(x, xParent, d)
	}
}

// deleteFixup restores the red-black properties after a black node has
// been physically removed, leaving a "double black" at x (which may be
// nil, hence x's parent and the side it sits on — d — are tracked
// explicitly rather than read off x itself). The four CLRS cases are
// generalized over d exactly as insertFixup generalizes over insertion
// side.
func (t *Tree[T]) deleteFixup(x, xParent *Node[T], d bintree.Dir) {
	for x != t.bt.Root() && colorOf(x) == bintree.Black {
		w := xParent.Child(d.Other())

		if colorOf(w) == bintree.Red {
			w.Color = bintree.Black
			xParent.Color = bintree.Red
			t.bt.Rotate(xParent, d)
			w = xParent.Child(d.Other())
		}

		if colorOf(w.Child(d)) == bintree.Black && colorOf(w.Child(d.Other())) == bintree.Black {
			w.Color = bintree.Red
			x = xParent
			xParent = x.Parent
			if xParent != nil {
				if xParent.Left == x {
					d = bintree.Left
				} else {
					d = bintree.Right
				}
			}
			continue
		}

		if colorOf(w.Child(d.Other())) == bintree.Black {
			if c := w.Child(d); c != nil {
				c.Color = bintree.Black
			}
			w.Color = bintree.Red
			t.bt.Rotate(w, d.Other())
			w = xParent.Child(d.Other())
		}

		w.Color = xParent.Color
		xParent.Color = bintree.Black
		if c := w.Child(d.Other()); c != nil {
			c.Color = bintree.Black
		}
		t.bt.Rotate(xParent, d)
		x = t.bt.Root()
		xParent = nil
	}
	if x != nil {
		x.Color = bintree.Black
	}
}
