package benchmark

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// NoSize marks an entry that was registered without an input size.
const NoSize = -1

var (
	// ErrDuplicateEntry is returned when an entry with the same group,
	// variant, size and flag is already registered.
	ErrDuplicateEntry = errors.New("duplicate benchmark entry")
	// ErrInvalidEntry is returned for entries missing a label or closure.
	ErrInvalidEntry = errors.New("invalid benchmark entry")
)

// Func performs one measured iteration.
type Func func() error

// Entry is one variant at one input size and configuration.
type Entry struct {
	Group   string
	Variant string
	Size    int
	Flag    string
	Fn      Func
}

// Name renders the entry as group/variant/n=<size>[/<flag>].
func (e Entry) Name() string {
	var b strings.Builder
	b.WriteString(e.Group)
	b.WriteByte('/')
	b.WriteString(e.Variant)
	if e.Size != NoSize {
		b.WriteString("/n=")
		b.WriteString(strconv.Itoa(e.Size))
	}
	if e.Flag != "" {
		b.WriteByte('/')
		b.WriteString(e.Flag)
	}
	return b.String()
}

// Registry is an ordered table of benchmark entries. The zero value is ready
// to use.
type Registry struct {
	entries []Entry
	index   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// Register adds an unsized entry for group and variant.
func (r *Registry) Register(group, variant string, fn Func) error {
	return r.Add(Entry{Group: group, Variant: variant, Size: NoSize, Fn: fn})
}

// Add validates e and appends it to the table.
func (r *Registry) Add(e Entry) error {
	if strings.TrimSpace(e.Group) == "" || strings.TrimSpace(e.Variant) == "" {
		return fmt.Errorf("%w: group and variant labels are required", ErrInvalidEntry)
	}
	if e.Fn == nil {
		return fmt.Errorf("%w: %s has no closure", ErrInvalidEntry, e.Name())
	}
	if e.Size < NoSize {
		return fmt.Errorf("%w: %s has negative size", ErrInvalidEntry, e.Name())
	}

	if r.index == nil {
		r.index = make(map[string]struct{})
	}
	name := e.Name()
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	r.index[name] = struct{}{}
	r.entries = append(r.entries, e)
	return nil
}

// Entries yields the registered entries in registration order.
func (r *Registry) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range r.entries {
			if !yield(e) {
				return
			}
		}
	}
}

func (r *Registry) Len() int { return len(r.entries) }

// Names returns every entry name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for e := range r.Entries() {
		names = append(names, e.Name())
	}
	return names
}
