// Package slist implements an intrusive singly-linked list. Unlike
// dlist's circular sentinel, the reference implementation
// (original_source/src/slist.c) uses a one-directional sentinel plus
// an explicit tail pointer so push_back and insert_after stay O(1)
// without a backward link; this package keeps the same shape.
package slist

// Node is a singly-linked list node holding a value of type T.
type Node[T any] struct {
	Next  *Node[T]
	Value T
}

// NewNode allocates a detached node holding v.
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// CompareFunc orders two values: negative if a < b, zero if equal,
// positive if a > b.
type CompareFunc[T any] func(a, b T) int

// List is a singly-linked list with a sentinel head node and an
// explicit tail pointer.
type List[T any] struct {
	head Node[T]
	tail *Node[T]
	count int
}

// New creates an empty list.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.tail = &l.head
	return l
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.count }

// insertAfter splices n in immediately after p, updating the tail
// pointer if p was the last node.
func (l *List[T]) insertAfter(p, n *Node[T]) {
	n.Next = p.Next
	p.Next = n
	if l.tail == p {
		l.tail = n
	}
	l.count++
}

// eraseAfter removes and returns the node immediately after p.
func (l *List[T]) eraseAfter(p *Node[T]) *Node[T] {
	n := p.Next
	p.Next = n.Next
	if l.tail == n {
		l.tail = p
	}
	l.count--
	return n
}

// InsertAfter splices n into the list immediately after p. p must
// already be a member of l (the sentinel head counts as the "before
// front" position).
func (l *List[T]) InsertAfter(p, n *Node[T]) { l.insertAfter(p, n) }

// EraseAfter removes and returns the node immediately after p.
func (l *List[T]) EraseAfter(p *Node[T]) *Node[T] { return l.eraseAfter(p) }

// PushFront inserts n at the front of the list.
func (l *List[T]) PushFront(n *Node[T]) { l.insertAfter(&l.head, n) }

// PushBack inserts n at the back of the list.
func (l *List[T]) PushBack(n *Node[T]) { l.insertAfter(l.tail, n) }

// PopFront removes and returns the front node, or nil if the list is
// empty.
func (l *List[T]) PopFront() *Node[T] {
	if l.count == 0 {
		return nil
	}
	return l.eraseAfter(&l.head)
}

// Front returns the front node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	if l.count == 0 {
		return nil
	}
	return l.head.Next
}

// Back returns the back node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	if l.count == 0 {
		return nil
	}
	return l.tail
}

// Foreach walks the list front to back, invoking visit on each node.
// A node may be erased during its own visit: the walk captures the
// next node before calling visit. A non-zero return from visit
// short-circuits the walk and is returned.
func (l *List[T]) Foreach(visit func(*Node[T]) int) int {
	c := l.head.Next
	for c != nil {
		n := c.Next
		if r := visit(c); r != 0 {
			return r
		}
		c = n
	}
	return 0
}

// Find returns the first node comparing equal to v under cmp, or nil.
func (l *List[T]) Find(v T, cmp CompareFunc[T]) *Node[T] {
	var found *Node[T]
	l.Foreach(func(n *Node[T]) int {
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
	h := l.head.Next
	for h != nil {
		n := h.Next
		if destroy != nil {
			destroy(h)
		}
		h = n
	}
	l.head.Next = nil
	l.tail = &l.head
	l.count = 0
}

// Swap exchanges the contents of two lists in O(1). Because the
// sentinel lives inside the List value itself, a list left empty by
// the raw field swap must have its tail pointer repointed at its own
// (new) sentinel address rather than the other list's.
func (l *List[T]) Swap(o *List[T]) {
	l.head, o.head = o.head, l.head
	l.count, o.count = o.count, l.count
	l.tail, o.tail = o.tail, l.tail
	if l.count == 0 {
		l.tail = &l.head
	}
	if o.count == 0 {
		o.tail = &o.head
	}
}

// Concat appends s onto the end of d and empties s. A no-op if s is
// already empty.
func (d *List[T]) Concat(s *List[T]) {
	if s.count == 0 {
		return
	}
	d.tail.Next = s.head.Next
	d.tail = s.tail
	d.count += s.count

	s.head.Next = nil
	s.tail = &s.head
	s.count = 0
}

// Reverse reverses the list in place by repeatedly splicing the node
// after the current head out and reinserting it at the front.
func (l *List[T]) Reverse() {
	if l.count <= 1 {
		return
	}

	c := l.head.Next
	for c.Next != nil {
		n := c.Next
		c.Next = n.Next
		n.Next = l.head.Next
		l.head.Next = n
	}
	l.tail = c
}

// Sort orders the list's elements according to cmp using a bottom-up
// merge sort, mirroring package dlist's Sort.
func (l *List[T]) Sort(cmp CompareFunc[T]) {
	if l.count <= 1 {
		return
	}

	var half [2]List[T]
	half[0].tail = &half[0].head
	half[1].tail = &half[1].head

	t := &l.head
	for half[0].count < l.count/2 {
		t = t.Next
		half[0].count++
	}

	half[0].head.Next = l.head.Next
	half[0].tail = t

	half[1].head.Next = t.Next
	half[1].tail = l.tail
	t.Next = nil

	half[1].count = l.count - half[0].count

	l.head.Next = nil
	l.tail = &l.head
	l.count = 0

	half[0].Sort(cmp)
	half[1].Sort(cmp)

	for half[0].count > 0 && half[1].count > 0 {
		src := &half[0]
		if cmp(half[0].head.Next.Value, half[1].head.Next.Value) > 0 {
			src = &half[1]
		}
		l.insertAfter(l.tail, src.eraseAfter(&src.head))
	}

	if half[0].count > 0 {
		l.Concat(&half[0])
	} else {
		l.Concat(&half[1])
	}
}
