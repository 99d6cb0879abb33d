// Package variants holds the groups of interchangeable strategies that the
// harness compares. Every variant in a group returns the same result for the
// same input.
package variants

import (
	"fmt"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/inputs"
)

// FlagPrealloc is the sweep flag for variants that can reserve capacity up
// front.
const FlagPrealloc = "prealloc"

// VerifySizes are the sizes equivalence is checked at when none are given.
var VerifySizes = []int{0, 1, 5, 25, 125, 1000}

// Group describes one logical operation and its variants.
type Group struct {
	Name         string
	Description  string
	Kind         inputs.Kind
	DefaultSizes []int
	Variants     []string

	register func(reg *benchmark.Registry, sizes []int) error
	verify   func(sizes []int) error
}

// Register adds the group's entries at sizes, or at its default sizes when
// sizes is empty.
func (g Group) Register(reg *benchmark.Registry, sizes []int) error {
	if len(sizes) == 0 {
		sizes = g.DefaultSizes
	}
	return g.register(reg, sizes)
}

// Verify cross-checks every variant at sizes, or at VerifySizes when sizes
// is empty.
func (g Group) Verify(sizes []int) error {
	if len(sizes) == 0 {
		sizes = VerifySizes
	}
	return g.verify(sizes)
}

// Groups returns every group in report order.
func Groups() []Group {
	return []Group{
		newGroup("count", "count odd elements", inputs.KindSequence, []int{1000}, countSweep),
		newGroup("listfmt", "join elements with commas", inputs.KindSequence, []int{1000}, listfmtSweep),
		newGroup("vecmap", "square every element into a new slice", inputs.KindSequence, []int{1000}, vecmapSweep),
		newGroup("mapinsert", "populate a map from key/value pairs", inputs.KindKeyValue, []int{1, 5, 25, 125, 1000}, mapinsertSweep),
	}
}

// RegisterAll registers every group. Empty sizes selects each group's
// defaults.
func RegisterAll(reg *benchmark.Registry, sizes []int) error {
	for _, g := range Groups() {
		if err := g.Register(reg, sizes); err != nil {
			return fmt.Errorf("register %s: %w", g.Name, err)
		}
	}
	return nil
}

func newGroup[In, Out any](name, description string, kind inputs.Kind, defaults []int, build func(sizes []int) benchmark.Sweep[In, Out]) Group {
	labels := make([]string, 0)
	for _, v := range build(nil).Variants {
		labels = append(labels, v.Label)
	}
	return Group{
		Name:         name,
		Description:  description,
		Kind:         kind,
		DefaultSizes: defaults,
		Variants:     labels,
		register: func(reg *benchmark.Registry, sizes []int) error {
			return build(sizes).Register(reg)
		},
		verify: func(sizes []int) error {
			return build(sizes).Verify()
		},
	}
}

// generator adapts inputs.Generate to a typed dataset constructor.
func generator[In any](kind inputs.Kind) func(int) (In, error) {
	return func(n int) (In, error) {
		var zero In
		data, err := inputs.Generate(kind, n)
		if err != nil {
			return zero, err
		}
		in, ok := data.(In)
		if !ok {
			return zero, fmt.Errorf("%s dataset is %T, not %T", kind, data, zero)
		}
		return in, nil
	}
}
