package benchmark

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"
)

var (
	// ErrInvalidSweep is returned for a sweep missing its group, generator
	// or variants.
	ErrInvalidSweep = errors.New("invalid sweep")
	// ErrMismatch is returned by Verify when a variant disagrees with the
	// reference variant.
	ErrMismatch = errors.New("variant output mismatch")
)

// Variant is one labelled strategy for a group's operation. Run must not
// modify in. Configurable variants receive the sweep flag and are registered
// once with it off and once with it on.
type Variant[In, Out any] struct {
	Label        string
	Configurable bool
	Run          func(in In, flag bool) Out
}

// Sweep registers every variant of a group against one shared dataset per
// input size.
type Sweep[In, Out any] struct {
	Group string
	Sizes []int
	// Flag names the boolean option passed to configurable variants.
	Flag     string
	Generate func(n int) (In, error)
	Variants []Variant[In, Out]
	// Equal compares variant outputs in Verify. Defaults to cmp.Equal.
	Equal func(a, b Out) bool
}

// Register generates each distinct size's dataset in ascending order and adds
// one entry per variant, size and flag setting.
func (s Sweep[In, Out]) Register(reg *Registry) error {
	if err := s.validate(); err != nil {
		return err
	}
	for _, n := range s.sizes() {
		in, err := s.Generate(n)
		if err != nil {
			return fmt.Errorf("%s: generate n=%d: %w", s.Group, n, err)
		}
		for _, v := range s.Variants {
			for _, on := range s.settings(v) {
				run := v.Run
				entry := Entry{
					Group:   s.Group,
					Variant: v.Label,
					Size:    n,
					Flag:    s.flagName(on),
					Fn: func() error {
						Keep(run(in, on))
						return nil
					},
				}
				if err := reg.Add(entry); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Verify runs every variant and flag setting at every size and compares the
// output with the first variant's unflagged output.
func (s Sweep[In, Out]) Verify() error {
	if err := s.validate(); err != nil {
		return err
	}
	equal := s.Equal
	if equal == nil {
		equal = func(a, b Out) bool { return cmp.Equal(a, b) }
	}

	var errs []error
	for _, n := range s.sizes() {
		in, err := s.Generate(n)
		if err != nil {
			return fmt.Errorf("%s: generate n=%d: %w", s.Group, n, err)
		}
		ref := s.Variants[0]
		want := ref.Run(in, false)
		for _, v := range s.Variants {
			for _, on := range s.settings(v) {
				if got := v.Run(in, on); !equal(want, got) {
					name := Entry{Group: s.Group, Variant: v.Label, Size: n, Flag: s.flagName(on)}.Name()
					errs = append(errs, fmt.Errorf("%w: %s differs from %s", ErrMismatch, name, ref.Label))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (s Sweep[In, Out]) validate() error {
	switch {
	case s.Group == "":
		return fmt.Errorf("%w: group label is required", ErrInvalidSweep)
	case s.Generate == nil:
		return fmt.Errorf("%w: %s has no generator", ErrInvalidSweep, s.Group)
	case len(s.Variants) == 0:
		return fmt.Errorf("%w: %s has no variants", ErrInvalidSweep, s.Group)
	case len(s.Sizes) == 0:
		return fmt.Errorf("%w: %s has no sizes", ErrInvalidSweep, s.Group)
	}
	for _, v := range s.Variants {
		if v.Run == nil {
			return fmt.Errorf("%w: %s/%s has no strategy", ErrInvalidSweep, s.Group, v.Label)
		}
		if v.Configurable && s.Flag == "" {
			return fmt.Errorf("%w: %s/%s is configurable but the sweep has no flag", ErrInvalidSweep, s.Group, v.Label)
		}
	}
	return nil
}

func (s Sweep[In, Out]) sizes() []int {
	sizes := slices.Clone(s.Sizes)
	slices.Sort(sizes)
	return slices.Compact(sizes)
}

func (s Sweep[In, Out]) settings(v Variant[In, Out]) []bool {
	if v.Configurable {
		return []bool{false, true}
	}
	return []bool{false}
}

func (s Sweep[In, Out]) flagName(on bool) string {
	if on {
		return s.Flag
	}
	return ""
}
