package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntIntHashMapPutGet(t *testing.T) {
	m := NewIntIntHashMap(8)

	m.Put(1, 10)
	m.Put(42, 420)

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	v, ok = m.Get(42)
	assert.True(t, ok)
	assert.Equal(t, 420, v)

	v, ok = m.Get(7)
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestIntIntHashMapUpdate(t *testing.T) {
	m := NewIntIntHashMap(8)

	m.Put(5, 1)
	m.Put(5, 2)

	v, ok := m.Get(5)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Size())
}

func TestIntIntHashMapZeroKey(t *testing.T) {
	m := NewIntIntHashMap(8)

	_, ok := m.Get(0)
	assert.False(t, ok)

	m.Put(0, 99)
	v, ok := m.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 99, v)
	assert.Equal(t, 1, m.Size())

	m.Put(0, 100)
	v, ok = m.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 100, v)
	assert.Equal(t, 1, m.Size())
}

func TestIntIntHashMapRehash(t *testing.T) {
	m := NewIntIntHashMap(4)

	for i := 1; i <= 100; i++ {
		m.Put(i, i*3)
	}
	assert.Equal(t, 100, m.Size())

	for i := 1; i <= 100; i++ {
		v, ok := m.Get(i)
		assert.True(t, ok)
		assert.Equal(t, i*3, v)
	}
}
