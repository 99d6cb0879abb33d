package variants

import (
	"iter"
	"slices"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/inputs"
)

func isOdd(v int) bool { return v%2 == 1 }

// CountLoop counts odd elements with a plain range loop.
func CountLoop(in []int) int {
	count := 0
	for _, v := range in {
		if isOdd(v) {
			count++
		}
	}
	return count
}

// CountFilter counts the elements of a filtered iterator.
func CountFilter(in []int) int {
	count := 0
	for range filter(slices.Values(in), isOdd) {
		count++
	}
	return count
}

// CountDeleteFunc removes even elements from a copy and reports what is left.
func CountDeleteFunc(in []int) int {
	return len(slices.DeleteFunc(slices.Clone(in), func(v int) bool { return !isOdd(v) }))
}

func filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

func countSweep(sizes []int) benchmark.Sweep[[]int, int] {
	return benchmark.Sweep[[]int, int]{
		Group:    "count",
		Sizes:    sizes,
		Generate: generator[[]int](inputs.KindSequence),
		Variants: []benchmark.Variant[[]int, int]{
			{Label: "loop", Run: func(in []int, _ bool) int { return CountLoop(in) }},
			{Label: "filter", Run: func(in []int, _ bool) int { return CountFilter(in) }},
			{Label: "deletefunc", Run: func(in []int, _ bool) int { return CountDeleteFunc(in) }},
		},
	}
}
