// Package containers defines the map capability shared by the map-population
// variants and the concrete types that back it.
package containers

import (
	"iter"
	"maps"

	"github.com/benbjohnson/immutable"
)

// Container is the capability every map-population strategy produces. The
// strategies differ only in which concrete type sits behind it.
type Container interface {
	Insert(key string, value int)
	Len() int
	All() iter.Seq2[string, int]
}

// HashMap is the builtin Go map.
type HashMap map[string]int

// NewHashMap returns an empty HashMap. A positive capacity pre-sizes the map.
func NewHashMap(capacity int) HashMap {
	if capacity > 0 {
		return make(HashMap, capacity)
	}
	return make(HashMap)
}

func (m HashMap) Insert(key string, value int) { m[key] = value }
func (m HashMap) Len() int                     { return len(m) }
func (m HashMap) All() iter.Seq2[string, int]  { return maps.All(m) }

// HashMapFrom collects entries into a new HashMap.
func HashMapFrom(entries iter.Seq2[string, int]) HashMap {
	return HashMap(maps.Collect(entries))
}

// OrderedMap is a hash index over insertion-ordered key and value slices.
// Iteration yields entries in the order keys were first inserted.
type OrderedMap struct {
	index  map[string]int
	keys   []string
	values []int
}

// NewOrderedMap returns an empty OrderedMap. A positive capacity pre-sizes
// both the index and the entry slices.
func NewOrderedMap(capacity int) *OrderedMap {
	if capacity < 0 {
		capacity = 0
	}
	return &OrderedMap{
		index:  make(map[string]int, capacity),
		keys:   make([]string, 0, capacity),
		values: make([]int, 0, capacity),
	}
}

// Insert adds key or overwrites its value in place, keeping its position.
func (m *OrderedMap) Insert(key string, value int) {
	if i, ok := m.index[key]; ok {
		m.values[i] = value
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

func (m *OrderedMap) Len() int { return len(m.keys) }

func (m *OrderedMap) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for i, k := range m.keys {
			if !yield(k, m.values[i]) {
				return
			}
		}
	}
}

// OrderedMapFrom inserts entries in iteration order.
func OrderedMapFrom(entries iter.Seq2[string, int]) *OrderedMap {
	m := NewOrderedMap(0)
	for k, v := range entries {
		m.Insert(k, v)
	}
	return m
}

// SortedMap is a persistent map ordered by key.
type SortedMap struct {
	m *immutable.SortedMap[string, int]
}

// NewSortedMap returns an empty SortedMap using the default string comparer.
func NewSortedMap() *SortedMap {
	return &SortedMap{m: immutable.NewSortedMap[string, int](nil)}
}

// Insert replaces the held version with one that contains key.
func (s *SortedMap) Insert(key string, value int) { s.m = s.m.Set(key, value) }
func (s *SortedMap) Len() int                     { return s.m.Len() }

func (s *SortedMap) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		itr := s.m.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			if !yield(k, v) {
				return
			}
		}
	}
}

// SortedMapFrom bulk-loads entries through a builder, which mutates in place
// instead of copying a path per insert.
func SortedMapFrom(entries iter.Seq2[string, int]) *SortedMap {
	b := immutable.NewSortedMapBuilder[string, int](nil)
	for k, v := range entries {
		b.Set(k, v)
	}
	return &SortedMap{m: b.Map()}
}

// PersistentMap is a persistent hash array mapped trie.
type PersistentMap struct {
	m *immutable.Map[string, int]
}

// NewPersistentMap returns an empty PersistentMap using the default string hasher.
func NewPersistentMap() *PersistentMap {
	return &PersistentMap{m: immutable.NewMap[string, int](nil)}
}

func (p *PersistentMap) Insert(key string, value int) { p.m = p.m.Set(key, value) }
func (p *PersistentMap) Len() int                     { return p.m.Len() }

func (p *PersistentMap) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		itr := p.m.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			if !yield(k, v) {
				return
			}
		}
	}
}

// PersistentMapFrom bulk-loads entries through a builder.
func PersistentMapFrom(entries iter.Seq2[string, int]) *PersistentMap {
	b := immutable.NewMapBuilder[string, int](nil)
	for k, v := range entries {
		b.Set(k, v)
	}
	return &PersistentMap{m: b.Map()}
}

// Snapshot copies the contents of c into a builtin map.
func Snapshot(c Container) map[string]int {
	if c == nil {
		return nil
	}
	return maps.Collect(c.All())
}

// Equal reports whether a and b hold exactly the same key/value pairs,
// ignoring iteration order and backing type.
func Equal(a, b Container) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() {
		return false
	}
	return maps.Equal(Snapshot(a), Snapshot(b))
}
