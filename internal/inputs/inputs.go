// internal/inputs/inputs.go
// Package inputs builds the deterministic datasets that variants are measured against.
package inputs

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidSize is returned when a dataset of negative size is requested.
var ErrInvalidSize = errors.New("invalid dataset size")

// Kind selects the shape of a generated dataset.
type Kind int

const (
	// KindSequence is the integer sequence 0..n-1.
	KindSequence Kind = iota
	// KindKeyValue is the sequence of pairs ("key_i", i) for i in 0..n-1.
	KindKeyValue
)

// String returns the name used for the kind in logs and reports.
func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindKeyValue:
		return "keyValue"
	default:
		return "unknown"
	}
}

// Pair is a single key/value element of a KindKeyValue dataset.
type Pair struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Sequence returns the integers 0..n-1.
func Sequence(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("sequence of size %d: %w", n, ErrInvalidSize)
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq, nil
}

// KeyValues returns n pairs whose keys are derived from the element index,
// so keys are pairwise distinct by construction.
func KeyValues(n int) ([]Pair, error) {
	if n < 0 {
		return nil, fmt.Errorf("key/value dataset of size %d: %w", n, ErrInvalidSize)
	}
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{Key: Key(i), Value: i}
	}
	return pairs, nil
}

// Key returns the key stored at index i of a KindKeyValue dataset.
func Key(i int) string {
	return "key_" + strconv.Itoa(i)
}

// Generate dispatches on kind. The concrete result is []int for KindSequence
// and []Pair for KindKeyValue.
func Generate(kind Kind, n int) (any, error) {
	switch kind {
	case KindSequence:
		return Sequence(n)
	case KindKeyValue:
		return KeyValues(n)
	default:
		return nil, fmt.Errorf("unknown dataset kind %d", int(kind))
	}
}
