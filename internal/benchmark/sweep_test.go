package benchmark

import (
	"errors"
	"slices"
	"testing"

	"github.com/mwiater/idiombench/internal/inputs"
)

func countOdd(in []int, _ bool) int {
	n := 0
	for _, v := range in {
		if v%2 == 1 {
			n++
		}
	}
	return n
}

func TestSweepRegistersAscendingSizesAndFlags(t *testing.T) {
	var generated []int
	sweep := Sweep[[]int, int]{
		Group: "count",
		Sizes: []int{25, 1, 5, 5},
		Flag:  "prealloc",
		Generate: func(n int) ([]int, error) {
			generated = append(generated, n)
			return inputs.Sequence(n)
		},
		Variants: []Variant[[]int, int]{
			{Label: "plain", Run: countOdd},
			{Label: "tuned", Configurable: true, Run: countOdd},
		},
	}

	reg := NewRegistry()
	if err := sweep.Register(reg); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !slices.Equal(generated, []int{1, 5, 25}) {
		t.Fatalf("one dataset per distinct size in ascending order, got %v", generated)
	}

	want := []string{
		"count/plain/n=1", "count/tuned/n=1", "count/tuned/n=1/prealloc",
		"count/plain/n=5", "count/tuned/n=5", "count/tuned/n=5/prealloc",
		"count/plain/n=25", "count/tuned/n=25", "count/tuned/n=25/prealloc",
	}
	if got := reg.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for e := range reg.Entries() {
		if err := e.Fn(); err != nil {
			t.Fatalf("%s: %v", e.Name(), err)
		}
	}
}

func TestSweepSharesDatasetAcrossVariants(t *testing.T) {
	var seen [][]int
	record := func(in []int, _ bool) int {
		seen = append(seen, in)
		return len(in)
	}
	sweep := Sweep[[]int, int]{
		Group:    "share",
		Sizes:    []int{3},
		Generate: inputs.Sequence,
		Variants: []Variant[[]int, int]{{Label: "a", Run: record}, {Label: "b", Run: record}},
	}
	reg := NewRegistry()
	if err := sweep.Register(reg); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	for e := range reg.Entries() {
		_ = e.Fn()
		_ = e.Fn()
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 invocations, got %d", len(seen))
	}
	for _, in := range seen[1:] {
		if &in[0] != &seen[0][0] {
			t.Fatalf("variants at one size should share the same dataset")
		}
	}
}

func TestSweepRegisterErrors(t *testing.T) {
	base := Sweep[[]int, int]{
		Group:    "count",
		Sizes:    []int{1},
		Generate: inputs.Sequence,
		Variants: []Variant[[]int, int]{{Label: "plain", Run: countOdd}},
	}

	negative := base
	negative.Sizes = []int{-1}
	if err := negative.Register(NewRegistry()); !errors.Is(err, inputs.ErrInvalidSize) {
		t.Fatalf("negative size: expected ErrInvalidSize, got %v", err)
	}

	noFlag := base
	noFlag.Variants = []Variant[[]int, int]{{Label: "x", Configurable: true, Run: countOdd}}
	if err := noFlag.Register(NewRegistry()); !errors.Is(err, ErrInvalidSweep) {
		t.Fatalf("configurable without flag: expected ErrInvalidSweep, got %v", err)
	}

	empty := base
	empty.Variants = nil
	if err := empty.Register(NewRegistry()); !errors.Is(err, ErrInvalidSweep) {
		t.Fatalf("no variants: expected ErrInvalidSweep, got %v", err)
	}

	dup := base
	dup.Variants = []Variant[[]int, int]{{Label: "plain", Run: countOdd}, {Label: "plain", Run: countOdd}}
	if err := dup.Register(NewRegistry()); !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("duplicate labels: expected ErrDuplicateEntry, got %v", err)
	}
}

func TestSweepVerify(t *testing.T) {
	sweep := Sweep[[]int, int]{
		Group:    "count",
		Sizes:    []int{0, 1, 5, 25},
		Flag:     "prealloc",
		Generate: inputs.Sequence,
		Variants: []Variant[[]int, int]{
			{Label: "plain", Run: countOdd},
			{Label: "flagged", Configurable: true, Run: countOdd},
		},
	}
	if err := sweep.Verify(); err != nil {
		t.Fatalf("equivalent variants should verify: %v", err)
	}

	sweep.Variants = append(sweep.Variants, Variant[[]int, int]{
		Label: "wrong",
		Run:   func(in []int, _ bool) int { return len(in) },
	})
	err := sweep.Verify()
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	// n=0 agrees (0 == 0); n=1, 5 and 25 disagree.
	if got := len(err.(interface{ Unwrap() []error }).Unwrap()); got != 3 {
		t.Fatalf("expected 3 mismatches, got %d: %v", got, err)
	}
}

func TestSweepVerifyCustomEqual(t *testing.T) {
	sweep := Sweep[[]int, []int]{
		Group:    "vec",
		Sizes:    []int{3},
		Generate: inputs.Sequence,
		Variants: []Variant[[]int, []int]{
			{Label: "nil", Run: func([]int, bool) []int { return nil }},
			{Label: "empty", Run: func([]int, bool) []int { return []int{} }},
		},
	}
	if err := sweep.Verify(); err == nil {
		t.Fatalf("cmp.Equal distinguishes nil and empty slices")
	}
	sweep.Equal = func(a, b []int) bool { return len(a) == len(b) }
	if err := sweep.Verify(); err != nil {
		t.Fatalf("custom Equal should accept both: %v", err)
	}
}
