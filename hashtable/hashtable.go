// Package hashtable implements a separate-chaining hash table that
// migrates its buckets incrementally across a resize instead of
// rehashing everything at once. The design mirrors
// original_source/src/hash.c: each bucket carries a "clean" epoch bit,
// and a resize only flips the table's global epoch and records a
// pending (hash function, bucket count) pair; buckets are migrated a
// few at a time as later operations touch them, with Foreach/Clear/
// ShrinkToFit forcing the migration to completion when they need a
// consistent view of every bucket.
package hashtable

import (
	"reflect"

	"github.com/erigontech/cstl/keyhash"
	"github.com/erigontech/cstl/mathutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// HashFunc reduces a key onto a bucket index in [0, count). Returning
// a value outside that range is a programming error and panics the
// lookup that triggered it, mirroring the reference implementation's
// abort() on an out-of-bounds hash.
type HashFunc func(key uint64, count int) int

// DivisionHash reduces key via k mod count.
func DivisionHash(key uint64, count int) int {
	return int(keyhash.Division(key, uint64(count)))
}

// MultiplicativeHash reduces key via Knuth's multiplicative method.
func MultiplicativeHash(key uint64, count int) int {
	return int(keyhash.Multiplicative(key, uint64(count)))
}

type node[V any] struct {
	next  *node[V]
	key   uint64
	value V
}

type bucket[V any] struct {
	head  *node[V]
	epoch bool
}

// Options configures a new Table. Logger, if non-nil, receives debug
// traces of rehash progress.
type Options struct {
	Logger *zap.Logger
}

// Table is a hash table keyed by a pre-reduced uint64. Callers with
// non-numeric keys should fold their key through keyhash.Bytes (or an
// equivalent) before calling Insert/Find/Erase.
type Table[V any] struct {
	buckets []bucket[V]
	count   int // bucket count currently used for hashing
	hash    HashFunc

	pendingHash  HashFunc
	pendingCount int
	clean        int // watermark: buckets [0, clean) of the old layout are migrated

	epoch bool
	size  int

	log *zap.Logger
}

// New creates an empty table with no buckets. Resize must be called
// before Insert to give the table somewhere to put elements.
func New[V any](opts Options) *Table[V] {
	return &Table[V]{log: opts.Logger}
}

// NewTable is a convenience constructor that validates hash and
// immediately resizes to count buckets.
func NewTable[V any](count int, hash HashFunc, opts Options) (*Table[V], error) {
	if hash == nil {
		return nil, errors.New("hashtable: hash function must not be nil")
	}
	t := New[V](opts)
	t.Resize(count, hash)
	return t, nil
}

// Len reports the number of elements stored.
func (t *Table[V]) Len() int { return t.size }

// BucketCount reports the number of buckets currently used for
// hashing (the pre-rehash-complete count while a rehash is pending).
func (t *Table[V]) BucketCount() int { return t.count }

// LoadFactor reports the element-to-bucket ratio. While a rehash is
// pending, the ratio is taken against the pending bucket count.
func (t *Table[V]) LoadFactor() float64 {
	count := t.count
	if t.pendingHash != nil {
		count = t.pendingCount
	}
	if count == 0 {
		return 0
	}
	return float64(t.size) / float64(count)
}

func (t *Table[V]) setCapacity(n int) {
	buckets := make([]bucket[V], n)
	copy(buckets, t.buckets)
	t.buckets = buckets
}

// Resize changes the bucket count and (optionally) the hash function.
// A count <= 0 is a no-op. If this is the table's very first resize,
// the new layout is applied immediately, since there is no existing
// data to migrate; otherwise the new layout becomes "pending" and
// buckets migrate incrementally as Find/Insert/Erase touch them.
func (t *Table[V]) Resize(count int, hash HashFunc) {
	if count <= 0 {
		return
	}
	if count > len(t.buckets) {
		t.setCapacity(count)
	}

	if count == t.count && (hash == nil || sameHash(hash, t.hash)) {
		return
	}

	t.rehashAll()
	first := t.hash == nil
	oldCount := t.count

	t.epoch = !t.epoch
	for i := t.count; i < count; i++ {
		t.buckets[i] = bucket[V]{epoch: t.epoch}
	}

	switch {
	case hash != nil:
		t.pendingHash = hash
	case t.hash != nil:
		t.pendingHash = t.hash
	default:
		t.pendingHash = MultiplicativeHash
	}
	t.pendingCount = count
	t.clean = 0

	if first {
		t.hash = t.pendingHash
		t.count = t.pendingCount
		t.pendingHash = nil
	}

	if t.log != nil {
		t.log.Debug("hashtable resize",
			zap.Int("count", count),
			zap.Uint64("delta", mathutil.AbsoluteDifference(uint64(oldCount), uint64(count))),
			zap.Bool("immediate", first))
	}
}

// sameHash compares two hash functions by underlying code pointer, the
// Go analogue of the reference implementation's function-pointer
// equality check in cstl_hash_resize.
func sameHash(a, b HashFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// ShrinkToFit forces any pending rehash to completion and then drops
// unused backing capacity beyond the active bucket count.
func (t *Table[V]) ShrinkToFit() {
	t.rehashAll()
	if len(t.buckets) > t.count {
		t.setCapacity(t.count)
	}
}

func (t *Table[V]) cleanBucket(i int) {
	bk := &t.buckets[i]
	if bk.epoch == t.epoch {
		return
	}
	n := bk.head
	bk.head = nil
	for n != nil {
		next := n.next
		idx := t.boundedIndex(t.pendingHash, t.pendingCount, n.key)
		target := &t.buckets[idx]
		n.next = target.head
		target.head = n
		n = next
	}
	bk.epoch = t.epoch
}

// rehashStep advances the migration watermark by up to n buckets,
// finalizing the pending layout once every old bucket has migrated.
func (t *Table[V]) rehashStep(n int) {
	for t.clean < t.count && t.buckets[t.clean].epoch == t.epoch {
		t.clean++
	}
	for t.clean < t.count && n > 0 {
		t.cleanBucket(t.clean)
		t.clean++
		n--
	}
	if t.pendingHash != nil && t.clean >= t.count {
		t.count = t.pendingCount
		t.hash = t.pendingHash
		t.pendingHash = nil
		if t.log != nil {
			t.log.Debug("hashtable rehash complete", zap.Int("count", t.count))
		}
	}
}

// Rehash forces any pending migration to complete immediately.
func (t *Table[V]) Rehash() {
	t.rehashAll()
}

func (t *Table[V]) rehashAll() {
	if t.pendingHash != nil {
		t.rehashStep(t.count)
	}
}

func (t *Table[V]) boundedIndex(hash HashFunc, count int, key uint64) int {
	i := hash(key, count)
	if i < 0 || i >= count {
		panic("hashtable: hash function returned an out-of-range bucket index")
	}
	return i
}

// getBucketIndex resolves the bucket to use for key, cleaning both the
// old-layout bucket and the pending-layout bucket it maps to, plus one
// extra watermark bucket, so that even infrequently touched keys make
// the table's rehash progress.
func (t *Table[V]) getBucketIndex(key uint64) int {
	idx := t.boundedIndex(t.hash, t.count, key)
	if t.pendingHash != nil {
		pidx := t.boundedIndex(t.pendingHash, t.pendingCount, key)
		t.cleanBucket(idx)
		t.cleanBucket(pidx)
		t.rehashStep(1)
		idx = pidx
	}
	return idx
}

// Insert adds key/value as a new entry. Duplicate keys are permitted;
// Find's visit callback is how callers disambiguate among same-key
// entries.
func (t *Table[V]) Insert(key uint64, value V) {
	idx := t.getBucketIndex(key)
	n := &node[V]{key: key, value: value}
	bk := &t.buckets[idx]
	n.next = bk.head
	bk.head = n
	t.size++
}

// Find walks the bucket for key, visiting every node whose key matches.
// If visit is nil, the first matching node wins. Otherwise visit is
// called with the node's value and Find stops at the first node for
// which it returns true, letting callers distinguish among entries
// that share a key.
func (t *Table[V]) Find(key uint64, visit func(v *V) bool) (*V, bool) {
	idx := t.getBucketIndex(key)
	for n := t.buckets[idx].head; n != nil; n = n.next {
		if n.key == key && (visit == nil || visit(&n.value)) {
			return &n.value, true
		}
	}
	return nil, false
}

// Erase removes the first node whose key matches and (if match is
// non-nil) for which match returns true. It reports whether a node was
// removed.
func (t *Table[V]) Erase(key uint64, match func(v *V) bool) bool {
	idx := t.getBucketIndex(key)
	pp := &t.buckets[idx].head
	for *pp != nil {
		n := *pp
		if n.key == key && (match == nil || match(&n.value)) {
			*pp = n.next
			t.size--
			return true
		}
		pp = &n.next
	}
	return false
}

// Foreach forces any pending rehash to completion, then visits every
// element exactly once. A non-zero return from visit short-circuits
// the walk and is returned.
func (t *Table[V]) Foreach(visit func(key uint64, v *V) int) int {
	t.rehashAll()
	for i := 0; i < t.count; i++ {
		for n := t.buckets[i].head; n != nil; n = n.next {
			if r := visit(n.key, &n.value); r != 0 {
				return r
			}
		}
	}
	return 0
}

// ForeachConst is Foreach for read-only visitors.
func (t *Table[V]) ForeachConst(visit func(key uint64, v V) int) int {
	return t.Foreach(func(k uint64, v *V) int { return visit(k, *v) })
}

// Clear removes every element, invoking destroy (if non-nil) on each
// one first, and releases the backing bucket array.
func (t *Table[V]) Clear(destroy func(key uint64, v *V)) {
	if destroy != nil {
		t.Foreach(func(k uint64, v *V) int {
			destroy(k, v)
			return 0
		})
	}
	t.buckets = nil
	t.count = 0
	t.pendingHash = nil
	t.hash = nil
	t.size = 0
	t.clean = 0
}
