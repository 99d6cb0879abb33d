package containers

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allContainers() map[string]func() Container {
	return map[string]func() Container{
		"hash":          func() Container { return NewHashMap(0) },
		"hash prealloc": func() Container { return NewHashMap(8) },
		"ordered":       func() Container { return NewOrderedMap(0) },
		"ordered sized": func() Container { return NewOrderedMap(8) },
		"sorted":        func() Container { return NewSortedMap() },
		"persistent":    func() Container { return NewPersistentMap() },
	}
}

func TestContainersInsertAndIterate(t *testing.T) {
	want := map[string]int{"key_0": 0, "key_1": 1, "key_2": 2}

	for name, newContainer := range allContainers() {
		t.Run(name, func(t *testing.T) {
			c := newContainer()
			assert.Equal(t, 0, c.Len())

			for _, k := range []string{"key_0", "key_1", "key_2"} {
				c.Insert(k, want[k])
			}
			require.Equal(t, 3, c.Len())
			assert.Equal(t, want, Snapshot(c))
		})
	}
}

func TestContainersOverwriteKeepsLen(t *testing.T) {
	for name, newContainer := range allContainers() {
		t.Run(name, func(t *testing.T) {
			c := newContainer()
			c.Insert("a", 1)
			c.Insert("a", 2)
			assert.Equal(t, 1, c.Len())
			assert.Equal(t, map[string]int{"a": 2}, Snapshot(c))
		})
	}
}

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap(0)
	for _, k := range []string{"c", "a", "b", "a"} {
		m.Insert(k, len(k))
	}
	var got []string
	for k := range m.All() {
		got = append(got, k)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestSortedMapIteratesInKeyOrder(t *testing.T) {
	s := NewSortedMap()
	for _, k := range []string{"key_2", "key_0", "key_1"} {
		s.Insert(k, 0)
	}
	var got []string
	for k := range s.All() {
		got = append(got, k)
	}
	assert.True(t, slices.IsSorted(got), "keys %v not sorted", got)
}

func TestFromBuilders(t *testing.T) {
	src := map[string]int{"x": 1, "y": 2, "z": 3}

	sorted := SortedMapFrom(maps.All(src))
	assert.Equal(t, src, Snapshot(sorted))

	persistent := PersistentMapFrom(maps.All(src))
	assert.Equal(t, src, Snapshot(persistent))

	hash := HashMapFrom(maps.All(src))
	assert.Equal(t, src, Snapshot(hash))

	ordered := OrderedMapFrom(maps.All(src))
	assert.Equal(t, src, Snapshot(ordered))
	assert.Equal(t, 3, ordered.Len())
}

func TestIterationStopsEarly(t *testing.T) {
	for name, newContainer := range allContainers() {
		t.Run(name, func(t *testing.T) {
			c := newContainer()
			c.Insert("a", 1)
			c.Insert("b", 2)
			n := 0
			for range c.All() {
				n++
				break
			}
			assert.Equal(t, 1, n)
		})
	}
}

func TestEqual(t *testing.T) {
	h := NewHashMap(0)
	s := NewSortedMap()
	for _, k := range []string{"a", "b"} {
		h.Insert(k, 1)
		s.Insert(k, 1)
	}
	assert.True(t, Equal(h, s))

	s.Insert("c", 1)
	assert.False(t, Equal(h, s))

	h.Insert("c", 2)
	assert.False(t, Equal(h, s))

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(h, nil))
}
