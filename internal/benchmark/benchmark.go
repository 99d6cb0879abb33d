// internal/benchmark/benchmark.go
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/mwiater/idiombench/internal/metrics"
)

// Result is the outcome of one entry. Exactly one of Summary and Err is set.
type Result struct {
	Entry   Entry
	Summary *metrics.Summary
	Warmup  int
	Elapsed time.Duration
	Err     error
}

func (r Result) Failed() bool { return r.Err != nil }

// Sampler measures one entry. *Runner is the production implementation.
type Sampler interface {
	Run(ctx context.Context, e Entry) (SampleSet, error)
}

// Suite runs the filtered entries of a registry one after another.
type Suite struct {
	Registry   *Registry
	Sampler    Sampler
	Aggregator *metrics.Aggregator
	// Filter selects entries by name. Empty selects all.
	Filter string
}

// Run measures every selected entry sequentially. Failed entries are kept in
// the results and the run moves on. An interrupted run returns the completed
// results together with ErrInterrupted. An empty sample set aborts the run.
func (s *Suite) Run(ctx context.Context) ([]Result, error) {
	if s.Registry == nil || s.Sampler == nil || s.Aggregator == nil {
		return nil, fmt.Errorf("suite requires a registry, a sampler and an aggregator")
	}
	match := MatchFilter(s.Filter)

	var results []Result
	for e := range s.Registry.Entries() {
		name := e.Name()
		if !match(name) {
			continue
		}

		set, err := s.Sampler.Run(ctx, e)
		if err != nil {
			var entryErr *EntryError
			if errors.As(err, &entryErr) {
				log.Printf("Benchmark %s failed: %v", name, err)
				results = append(results, Result{Entry: e, Err: err})
				continue
			}
			return results, err
		}

		summary, err := s.Aggregator.Record(name, set.Samples)
		if err != nil {
			return results, fmt.Errorf("invariant violation for %s after %d warm-up invocations: %w", name, set.Warmup, err)
		}
		log.Printf("Benchmark %s complete: %d samples, mean %s", name, summary.Count, summary.Mean)
		results = append(results, Result{
			Entry:   e,
			Summary: &summary,
			Warmup:  set.Warmup,
			Elapsed: set.Elapsed,
		})
	}
	return results, nil
}

// Select returns the entries of reg whose names match filter.
func Select(reg *Registry, filter string) []Entry {
	match := MatchFilter(filter)
	var out []Entry
	for e := range reg.Entries() {
		if match(e.Name()) {
			out = append(out, e)
		}
	}
	return out
}

// MatchFilter returns a predicate for entry names. A name matches when it
// contains filter as a substring or when filter, compiled as a regular
// expression, matches it. An empty filter matches everything.
func MatchFilter(filter string) func(string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return func(string) bool { return true }
	}
	re, err := regexp.Compile(filter)
	if err != nil {
		return func(name string) bool { return strings.Contains(name, filter) }
	}
	return func(name string) bool {
		return strings.Contains(name, filter) || re.MatchString(name)
	}
}
