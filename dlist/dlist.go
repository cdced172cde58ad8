// Package dlist implements an intrusive, circular doubly-linked list.
// The list itself stores a sentinel node so every insert/erase
// operates on real neighbor pointers without special-casing the empty
// list or the ends, exactly as original_source/src/dlist.c's
// always-circular layout does.
package dlist

// Node is a doubly-linked list node holding a value of type T.
type Node[T any] struct {
	Next, Prev *Node[T]
	Value      T
}

// NewNode allocates a detached node holding v.
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// CompareFunc orders two values: negative if a < b, zero if equal,
// positive if a > b.
type CompareFunc[T any] func(a, b T) int

// Direction selects traversal order for Foreach and Find.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// List is a circular doubly-linked list with a sentinel head node.
type List[T any] struct {
	head Node[T]
	size int
}

// New creates an empty list.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.head.Next = &l.head
	l.head.Prev = &l.head
	return l
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.size }

func (l *List[T]) insert(p, n *Node[T]) {
	n.Next = p.Next
	n.Prev = p
	n.Next.Prev = n
	p.Next = n
	l.size++
}

func (l *List[T]) erase(n *Node[T]) *Node[T] {
	n.Next.Prev = n.Prev
	n.Prev.Next = n.Next
	l.size--
	return n
}

// Insert splices n into the list immediately after p. p must already
// be a member of l (the sentinel head counts as the "before front"
// position).
func (l *List[T]) Insert(p, n *Node[T]) { l.insert(p, n) }

// Erase removes n from the list and returns it.
func (l *List[T]) Erase(n *Node[T]) *Node[T] { return l.erase(n) }

// PushFront inserts n at the front of the list.
func (l *List[T]) PushFront(n *Node[T]) { l.insert(&l.head, n) }

// PushBack inserts n at the back of the list.
func (l *List[T]) PushBack(n *Node[T]) { l.insert(l.head.Prev, n) }

// PopFront removes and returns the front node, or nil if the list is
// empty.
func (l *List[T]) PopFront() *Node[T] {
	if l.size == 0 {
		return nil
	}
	return l.erase(l.head.Next)
}

// PopBack removes and returns the back node, or nil if the list is
// empty.
func (l *List[T]) PopBack() *Node[T] {
	if l.size == 0 {
		return nil
	}
	return l.erase(l.head.Prev)
}

// Front returns the front node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	if l.size == 0 {
		return nil
	}
	return l.head.Next
}

// Back returns the back node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	if l.size == 0 {
		return nil
	}
	return l.head.Prev
}

func adj[T any](n *Node[T], dir Direction) *Node[T] {
	if dir == Forward {
		return n.Next
	}
	return n.Prev
}

// Foreach walks the list in the given direction, invoking visit on
// each node. A node may be erased from the list during its own visit:
// the walk captures the next node to visit before calling visit. A
// non-zero return from visit short-circuits the walk and is returned.
func (l *List[T]) Foreach(dir Direction, visit func(*Node[T]) int) int {
	c := adj(&l.head, dir)
	for c != &l.head {
		n := adj(c, dir)
		if r := visit(c); r != 0 {
			return r
		}
		c = n
	}
	return 0
}

// Find returns the first node (walking in the given direction)
// comparing equal to v under cmp, or nil.
func (l *List[T]) Find(v T, cmp CompareFunc[T], dir Direction) *Node[T] {
	var found *Node[T]
	l.Foreach(dir, func(n *Node[T]) int {
		if cmp(v, n.Value) == 0 {
			found = n
			return 1
		}
		return 0
	})
	return found
}

// Clear removes every node, invoking destroy (if non-nil) on each one
// in front-to-back order.
func (l *List[T]) Clear(destroy func(*Node[T])) {
	for l.size > 0 {
		n := l.erase(l.head.Next)
		if destroy != nil {
			destroy(n)
		}
	}
}

func fixSentinel[T any](l *List[T]) {
	if l.size == 0 {
		l.head.Next = &l.head
		l.head.Prev = &l.head
	} else {
		l.head.Next.Prev = &l.head
		l.head.Prev.Next = &l.head
	}
}

// Swap exchanges the contents of two lists in O(1). Because the
// sentinel lives inside the List value itself, the neighbors of each
// list's ends must be repointed at the new sentinel address after the
// raw field swap.
func (l *List[T]) Swap(o *List[T]) {
	l.head, o.head = o.head, l.head
	l.size, o.size = o.size, l.size
	fixSentinel(l)
	fixSentinel(o)
}

// Concat appends s onto the end of d and empties s. A no-op if d == s
// or s is already empty.
func (d *List[T]) Concat(s *List[T]) {
	if d == s || s.size == 0 {
		return
	}

	s.head.Next.Prev = d.head.Prev
	s.head.Prev.Next = &d.head

	d.head.Prev.Next = s.head.Next
	d.head.Prev = s.head.Prev

	d.size += s.size

	s.head.Next = &s.head
	s.head.Prev = &s.head
	s.size = 0
}

// Reverse reverses the list in place using a two-pointer walk that
// swaps the nodes converging from each end, advancing until they meet
// or become adjacent.
func (l *List[T]) Reverse() {
	if l.size < 2 {
		return
	}

	i, j := l.head.Next, l.head.Prev
	for i != j && i.Next != j {
		i.Prev.Next = j
		i.Next.Prev = j
		j.Next.Prev = i
		j.Prev.Next = i

		i.Next, j.Next = j.Next, i.Next
		i.Prev, j.Prev = j.Prev, i.Prev

		k := i.Prev
		i = j.Next
		j = k
	}

	if i.Next == j {
		i.Prev.Next = j
		j.Next.Prev = i

		i.Next = j.Next
		j.Next = i

		j.Prev = i.Prev
		i.Prev = j
	}
}

// Sort orders the list's elements according to cmp using a bottom-up
// merge sort: the list is split into two halves, each half-sorted
// recursively, and the results merged by repeatedly moving the lesser
// front element onto the output.
func (l *List[T]) Sort(cmp CompareFunc[T]) {
	if l.size <= 1 {
		return
	}

	var half [2]List[T]
	half[0].head.Next, half[0].head.Prev = &half[0].head, &half[0].head
	half[1].head.Next, half[1].head.Prev = &half[1].head, &half[1].head

	t := &l.head
	for half[0].size < l.size/2 {
		t = t.Next
		half[0].size++
	}

	half[0].head.Next = l.head.Next
	half[0].head.Prev = t

	half[1].head.Next = t.Next
	half[1].head.Prev = l.head.Prev

	half[0].head.Next.Prev = &half[0].head
	half[0].head.Prev.Next = &half[0].head
	half[1].head.Next.Prev = &half[1].head
	half[1].head.Prev.Next = &half[1].head

	half[1].size = l.size - half[0].size

	l.head.Next, l.head.Prev = &l.head, &l.head
	l.size = 0

	half[0].Sort(cmp)
	half[1].Sort(cmp)

	for half[0].size > 0 && half[1].size > 0 {
		src := &half[0]
		if cmp(half[0].head.Next.Value, half[1].head.Next.Value) > 0 {
			src = &half[1]
		}
		n := src.erase(src.head.Next)
		l.insert(l.head.Prev, n)
	}

	if half[0].size > 0 {
		l.Concat(&half[0])
	} else {
		l.Concat(&half[1])
	}
}
