package hashtable

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertFindErase(t *testing.T) {
	tbl := New[int](Options{})
	tbl.Resize(16, DivisionHash)

	for i := 0; i < 50; i++ {
		tbl.Insert(uint64(i), i*10)
	}
	require.Equal(t, 50, tbl.Len())

	for i := 0; i < 50; i++ {
		v, ok := tbl.Find(uint64(i), nil)
		require.True(t, ok)
		assert.Equal(t, i*10, *v)
	}
	_, ok := tbl.Find(999, nil)
	assert.False(t, ok)

	assert.True(t, tbl.Erase(10, nil))
	_, ok = tbl.Find(10, nil)
	assert.False(t, ok)
	assert.Equal(t, 49, tbl.Len())
	assert.False(t, tbl.Erase(10, nil))
}

func TestFindVisitDisambiguatesSameKey(t *testing.T) {
	tbl := New[string](Options{})
	tbl.Resize(8, DivisionHash)

	tbl.Insert(1, "a")
	tbl.Insert(1, "b")
	tbl.Insert(1, "c")

	v, ok := tbl.Find(1, func(v *string) bool { return *v == "b" })
	require.True(t, ok)
	assert.Equal(t, "b", *v)

	assert.True(t, tbl.Erase(1, func(v *string) bool { return *v == "b" }))
	_, ok = tbl.Find(1, func(v *string) bool { return *v == "b" })
	assert.False(t, ok)
	assert.Equal(t, 2, tbl.Len())
}

func TestForeachVisitsEveryElementOnce(t *testing.T) {
	tbl := New[int](Options{})
	tbl.Resize(4, MultiplicativeHash)
	for i := 0; i < 40; i++ {
		tbl.Insert(uint64(i), i)
	}

	seen := make(map[int]int)
	tbl.ForeachConst(func(k uint64, v int) int {
		seen[v]++
		return 0
	})
	assert.Len(t, seen, 40)
	for _, c := range seen {
		assert.Equal(t, 1, c)
	}
}

func TestForeachShortCircuits(t *testing.T) {
	tbl := New[int](Options{})
	tbl.Resize(4, DivisionHash)
	for i := 0; i < 10; i++ {
		tbl.Insert(uint64(i), i)
	}
	var count int
	r := tbl.Foreach(func(k uint64, v *int) int {
		count++
		if *v == 5 {
			return 1
		}
		return 0
	})
	assert.Equal(t, 1, r)
	assert.Less(t, count, 10)
}

// TestResizeRehashesIncrementally grounds spec.md scenario S3 and the
// reference implementation's own "resize" test: fill a table of 16
// buckets, then step it through a sequence of resizes, checking that a
// fresh resize leaves every bucket dirty, that running finds until the
// rehash completes migrates every bucket and preserves every element,
// and that repeating the same (count, hash) is a no-op.
func TestResizeRehashesIncrementally(t *testing.T) {
	const n = 100
	tbl := New[int](Options{})
	tbl.Resize(16, MultiplicativeHash)
	for i := 0; i < n; i++ {
		tbl.Insert(uint64(i), i)
	}

	probe := 37
	v, ok := tbl.Find(uint64(probe), nil)
	require.True(t, ok)
	require.Equal(t, probe, *v)

	epochBefore := tbl.epoch
	tbl.Resize(16, MultiplicativeHash)
	assert.Equal(t, epochBefore, tbl.epoch, "resizing to the same count and hash must be a no-op")
	tbl.Resize(16, nil)
	assert.Equal(t, epochBefore, tbl.epoch)
	assert.InDelta(t, float64(n)/16, tbl.LoadFactor(), 0.01)

	tbl.Resize(20, nil)
	assert.InDelta(t, float64(n)/20, tbl.LoadFactor(), 0.01,
		"load factor reflects the pending count even before the rehash completes")
	assert.NotEqual(t, epochBefore, tbl.epoch)
	tbl.Rehash()
	assert.Equal(t, n, tbl.Len())
	v, ok = tbl.Find(uint64(probe), nil)
	require.True(t, ok)
	assert.Equal(t, probe, *v)

	runUntilRehashed := func(count int, hash HashFunc) {
		tbl.Resize(count, hash)
		for i := 0; i < tbl.count; i++ {
			assert.NotEqual(t, tbl.epoch, tbl.buckets[i].epoch, "every bucket should be dirty right after a resize")
		}
		rng := rand.New(rand.NewSource(int64(count)))
		for tbl.pendingHash != nil {
			tbl.Find(uint64(rng.Intn(n)), nil)
		}
		assert.Equal(t, count, tbl.count)
		for i := 0; i < tbl.count; i++ {
			assert.Equal(t, tbl.epoch, tbl.buckets[i].epoch)
		}
		for i := tbl.count; i < len(tbl.buckets); i++ {
			assert.Nil(t, tbl.buckets[i].head)
		}
	}

	runUntilRehashed(9, DivisionHash)
	assert.Equal(t, n, tbl.Len())
	v, ok = tbl.Find(uint64(probe), nil)
	require.True(t, ok)
	assert.Equal(t, probe, *v)

	runUntilRehashed(23, MultiplicativeHash)
	assert.Equal(t, n, tbl.Len())

	tbl.Resize(12, MultiplicativeHash)
	tbl.ShrinkToFit()
	assert.Nil(t, tbl.pendingHash)
	assert.Equal(t, 12, tbl.count)
	assert.Equal(t, 12, len(tbl.buckets))
	assert.Equal(t, n, tbl.Len())

	v, ok = tbl.Find(uint64(probe), nil)
	require.True(t, ok)
	assert.Equal(t, probe, *v)

	assert.True(t, tbl.Erase(uint64(probe), nil))
	_, ok = tbl.Find(uint64(probe), nil)
	assert.False(t, ok)
	assert.Equal(t, n-1, tbl.Len())
}

func TestOutOfRangeHashPanics(t *testing.T) {
	badHash := func(k uint64, count int) int { return count }
	tbl := New[int](Options{})
	tbl.Resize(8, badHash)
	assert.Panics(t, func() { tbl.Find(0, nil) })
}

func TestClearInvokesDestroyOnEveryElement(t *testing.T) {
	tbl := New[int](Options{})
	tbl.Resize(8, DivisionHash)
	for i := 0; i < 20; i++ {
		tbl.Insert(uint64(i), i)
	}
	var destroyed []int
	tbl.Clear(func(k uint64, v *int) { destroyed = append(destroyed, *v) })
	assert.Equal(t, 0, tbl.Len())
	assert.Len(t, destroyed, 20)
}

func TestNewTableValidatesHash(t *testing.T) {
	_, err := NewTable[int](8, nil, Options{})
	assert.Error(t, err)

	tbl, err := NewTable[int](8, DivisionHash, Options{})
	require.NoError(t, err)
	assert.Equal(t, 8, tbl.BucketCount())
}
