// Package ordmap implements an ordered key/value map backed by a
// red-black tree, where each entry owns its key exclusively and shares
// its value by reference count. This mirrors
// original_source/src/map.c's node layout: a cstl_unique_ptr_t key
// paired with a cstl_shared_ptr_t value, both held inline in an
// rbtree node.
package ordmap

import (
	"github.com/erigontech/cstl/bintree"
	"github.com/erigontech/cstl/rbtree"
	"github.com/erigontech/cstl/sptr"
	"github.com/pkg/errors"
)

type entry[K, V any] struct {
	key sptr.UniquePtr[K]
	val sptr.SharedPtr[V]
}

// CompareFunc orders two keys: negative if a < b, zero if equal,
// positive if a > b.
type CompareFunc[K any] func(a, b K) int

// Node is a map entry as stored in the tree. Use the package-level
// Key/Val helpers to read it; Node can't carry its own methods since
// it's a generic alias onto rbtree's (and ultimately bintree's) node
// type.
type Node[K, V any] = rbtree.Node[entry[K, V]]

// Map is an ordered map of K to V.
type Map[K, V any] struct {
	t   *rbtree.Tree[entry[K, V]]
	cmp CompareFunc[K]
}

// New creates an empty map ordered by cmp.
func New[K, V any](cmp CompareFunc[K]) (*Map[K, V], error) {
	if cmp == nil {
		return nil, errors.New("ordmap: comparator must not be nil")
	}
	m := &Map[K, V]{cmp: cmp}
	m.t = rbtree.New(func(a, b entry[K, V]) int {
		return cmp(*a.key.Get(), *b.key.Get())
	})
	return m, nil
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Key returns n's key.
func Key[K, V any](n *Node[K, V]) *K { return n.Value.key.Get() }

// Val returns n's shared value pointer.
func Val[K, V any](n *Node[K, V]) *sptr.SharedPtr[V] { return &n.Value.val }

// Find returns the node whose key compares equal to key, or nil.
func (m *Map[K, V]) Find(key K) *Node[K, V] {
	var probe entry[K, V]
	probe.key.Borrow(&key)
	return m.t.Find(probe)
}

// Insert adds key/val as a new entry if no existing entry's key
// compares equal to key. On success it takes ownership of *key and
// *val — swapping them into the new node exactly as
// cstl_map_insert does — and returns the new node and true. If an
// entry with an equal key already exists, key and val are left
// untouched and the existing node is returned along with false.
func (m *Map[K, V]) Insert(key *sptr.UniquePtr[K], val *sptr.SharedPtr[V]) (*Node[K, V], bool) {
	if existing := m.Find(*key.Get()); existing != nil {
		return existing, false
	}

	n := rbtree.NewNode(entry[K, V]{})
	n.Value.key.Swap(key)
	n.Value.val.Swap(val)
	m.t.Insert(n)
	return n, true
}

// EraseIterator removes n from the map, resetting its owned key and
// shared value.
func (m *Map[K, V]) EraseIterator(n *Node[K, V]) {
	m.t.Erase(n)
	n.Value.key.Reset()
	n.Value.val.Reset()
}

// Erase removes the entry whose key compares equal to key, if any,
// reporting whether an entry was removed.
//
// original_source/src/map.c:129-132 (cstl_map_erase) is a stub in the
// retrieved source — it declares a local iterator and does nothing
// with it. Erase is implemented as find-then-EraseIterator, the only
// behavior consistent with every other container's erase(key)
// contract in this library.
func (m *Map[K, V]) Erase(key K) bool {
	n := m.Find(key)
	if n == nil {
		return false
	}
	m.EraseIterator(n)
	return true
}

// Clear removes every entry, resetting each one's owned key and shared
// value.
func (m *Map[K, V]) Clear() {
	m.t.Clear(func(n *Node[K, V]) {
		n.Value.key.Reset()
		n.Value.val.Reset()
	})
}

// Foreach visits every entry in ascending key order. A non-zero return
// from visit short-circuits the walk and is returned.
func (m *Map[K, V]) Foreach(visit func(n *Node[K, V]) int) int {
	return m.t.Foreach(bintree.Forward, func(n *Node[K, V], ev bintree.Event) int {
		if ev != bintree.EventLeaf && ev != bintree.EventMid {
			return 0
		}
		return visit(n)
	})
}
