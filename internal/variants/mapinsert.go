package variants

import (
	"iter"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/containers"
	"github.com/mwiater/idiombench/internal/inputs"
)

// InsertInto inserts every pair into c one at a time and returns it.
func InsertInto(c containers.Container, pairs []inputs.Pair) containers.Container {
	for _, p := range pairs {
		c.Insert(p.Key, p.Value)
	}
	return c
}

func pairSeq(pairs []inputs.Pair) iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, p := range pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

func capacityFor(pairs []inputs.Pair, prealloc bool) int {
	if prealloc {
		return len(pairs)
	}
	return 0
}

func mapinsertSweep(sizes []int) benchmark.Sweep[[]inputs.Pair, containers.Container] {
	type variant = benchmark.Variant[[]inputs.Pair, containers.Container]
	return benchmark.Sweep[[]inputs.Pair, containers.Container]{
		Group:    "mapinsert",
		Sizes:    sizes,
		Flag:     FlagPrealloc,
		Generate: generator[[]inputs.Pair](inputs.KindKeyValue),
		Variants: []variant{
			{Label: "hashmap", Configurable: true, Run: func(in []inputs.Pair, prealloc bool) containers.Container {
				return InsertInto(containers.NewHashMap(capacityFor(in, prealloc)), in)
			}},
			{Label: "ordered", Configurable: true, Run: func(in []inputs.Pair, prealloc bool) containers.Container {
				return InsertInto(containers.NewOrderedMap(capacityFor(in, prealloc)), in)
			}},
			{Label: "sorted", Run: func(in []inputs.Pair, _ bool) containers.Container {
				return InsertInto(containers.NewSortedMap(), in)
			}},
			{Label: "persistent", Run: func(in []inputs.Pair, _ bool) containers.Container {
				return InsertInto(containers.NewPersistentMap(), in)
			}},
			{Label: "hashmap-from", Run: func(in []inputs.Pair, _ bool) containers.Container {
				return containers.HashMapFrom(pairSeq(in))
			}},
			{Label: "ordered-from", Run: func(in []inputs.Pair, _ bool) containers.Container {
				return containers.OrderedMapFrom(pairSeq(in))
			}},
			{Label: "sorted-from", Run: func(in []inputs.Pair, _ bool) containers.Container {
				return containers.SortedMapFrom(pairSeq(in))
			}},
			{Label: "persistent-from", Run: func(in []inputs.Pair, _ bool) containers.Container {
				return containers.PersistentMapFrom(pairSeq(in))
			}},
		},
		Equal: containers.Equal,
	}
}
