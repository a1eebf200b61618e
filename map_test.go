package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestKey struct {
	part1 int
	part2 string
}

func (k TestKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k TestKey) Equals(other Hashable) bool {
	o, ok := other.(TestKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

type AnotherKey int

func (k AnotherKey) Hash() uint64 {
	return uint64(k)
}

func (k AnotherKey) Equals(other Hashable) bool {
	o, ok := other.(AnotherKey)
	return ok && k == o
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		_, exists = hm.Get(TestKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})

	t.Run("DeleteKey", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		hm.Delete(key)
		assert.Equal(t, 0, hm.Size())

		// Deleting a missing key is a no-op.
		hm.Delete(TestKey{2, "b"})
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(16))

	key1 := TestKey{1, "a"}  // hash 2
	key2 := TestKey{0, "bb"} // hash 2
	key3 := TestKey{2, "a"}  // hash 3

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")

	assert.Equal(t, 3, hm.Size())

	t.Run("GetCollisionKeys", func(t *testing.T) {
		val, exists := hm.Get(key1)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		val, exists = hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})

	t.Run("DeleteCollisionKey", func(t *testing.T) {
		hm.Delete(key1)
		assert.Equal(t, 2, hm.Size())
		_, exists := hm.Get(key1)
		assert.False(t, exists)

		val, exists := hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[int](WithCapacity(initialCap))

	// 16 * 0.75 = 12, so the 13th insert triggers a resize.
	for i := 0; i < 13; i++ {
		hm.Set(TestKey{i, ""}, i)
	}

	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(TestKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
}

func TestHashMapIterator(t *testing.T) {
	hm := NewHashMap[int](WithCapacity(8))
	want := map[TestKey]int{
		{1, "a"}: 10,
		{2, "b"}: 20,
		{3, "c"}: 30,
	}
	for k, v := range want {
		hm.Set(k, v)
	}

	got := make(map[TestKey]int)
	for k, v := range hm.Iterator() {
		got[k.(TestKey)] = v
	}
	assert.Equal(t, want, got)
}

func TestTypeSafety(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(8))

	// Different key types with the same hash must not collide.
	key1 := TestKey{1, "a"} // hash 2
	key2 := AnotherKey(2)   // hash 2

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")

	val, exists := hm.Get(key1)
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = hm.Get(key2)
	assert.True(t, exists)
	assert.Equal(t, "value2", val)
}

func TestEdgeCases(t *testing.T) {
	t.Run("NilKey", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic with nil key")
			}
		}()

		hm.Set(nil, "value")
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(0))
		assert.Equal(t, 1, len(hm.buckets))
	})

	t.Run("DuplicateInsert", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "v1")
		hm.Set(key, "v2")
		assert.Equal(t, 1, hm.Size())
	})
}
