package variants

import (
	"iter"
	"slices"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/inputs"
)

func square(v int) int { return v * v }

// SquareAppend appends each square to a new slice, reserving len(in) up front
// when prealloc is set.
func SquareAppend(in []int, prealloc bool) []int {
	var out []int
	if prealloc {
		out = make([]int, 0, len(in))
	}
	for _, v := range in {
		out = append(out, square(v))
	}
	return out
}

// SquareIndex assigns into a slice made at full length.
func SquareIndex(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = square(v)
	}
	return out
}

// SquareCollect collects a mapped iterator.
func SquareCollect(in []int) []int {
	return slices.Collect(mapSeq(slices.Values(in), square))
}

func mapSeq[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

func vecmapSweep(sizes []int) benchmark.Sweep[[]int, []int] {
	return benchmark.Sweep[[]int, []int]{
		Group:    "vecmap",
		Sizes:    sizes,
		Flag:     FlagPrealloc,
		Generate: generator[[]int](inputs.KindSequence),
		Variants: []benchmark.Variant[[]int, []int]{
			{Label: "append", Configurable: true, Run: SquareAppend},
			{Label: "index", Run: func(in []int, _ bool) []int { return SquareIndex(in) }},
			{Label: "collect", Run: func(in []int, _ bool) []int { return SquareCollect(in) }},
		},
		// nil and empty results are the same empty vector
		Equal: slices.Equal[[]int],
	}
}
