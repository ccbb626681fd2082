package powerset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testKey struct {
	part1 int
	part2 string
}

func (k testKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k testKey) Equals(other Hashable) bool {
	o, ok := other.(testKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

// anotherKey collides with testKey on purpose.
type anotherKey int

func (k anotherKey) Hash() uint64 {
	return uint64(k)
}

func (k anotherKey) Equals(other Hashable) bool {
	o, ok := other.(anotherKey)
	return ok && k == o
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := testKey{1, "a"}
		hm.Set(key, "value1")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		_, exists = hm.Get(testKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := testKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
		assert.Equal(t, 1, hm.Size())
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(16))

	key1 := testKey{1, "a"}  // Hash: 1+1=2
	key2 := testKey{0, "bb"} // Hash: 0+2=2
	key3 := anotherKey(2)    // Hash: 2

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")
	assert.Equal(t, 3, hm.Size())

	for key, want := range map[Hashable]string{key1: "value1", key2: "value2", key3: "value3"} {
		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, want, val)
	}
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[int](WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		hm.Set(testKey{i, ""}, i)
	}
	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(testKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
	assert.Equal(t, 13, hm.Size())
}

func TestHashMapStateSetKeys(t *testing.T) {
	hm := NewHashMap[int]()
	hm.Set(NewStateSet(2, 0, 1), 7)
	hm.Set(NewStateSet(0), 8)

	id, ok := hm.Get(NewStateSet(0, 1, 2))
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	id, ok = hm.Get(NewStateSet(0))
	assert.True(t, ok)
	assert.Equal(t, 8, id)

	_, ok = hm.Get(NewStateSet(0, 1))
	assert.False(t, ok)

	_, ok = hm.Get(NewStateSet())
	assert.False(t, ok)
}

func TestEdgeCases(t *testing.T) {
	t.Run("ZeroCapacity", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(0))
		assert.Equal(t, 1, len(hm.buckets))
	})
}
