package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/idiombench/internal/logging"
)

var (
	// ErrInterrupted is returned when the run context is cancelled while an
	// entry is being measured. The entry's samples are discarded.
	ErrInterrupted = errors.New("benchmark interrupted")
	// ErrPanic wraps a value recovered from a panicking closure.
	ErrPanic = errors.New("benchmark closure panicked")
	// ErrInvalidBudget is returned by Budget.Validate.
	ErrInvalidBudget = errors.New("invalid measurement budget")
)

// Phase is the runner state for one entry.
type Phase int

const (
	PhaseWarming Phase = iota
	PhaseMeasuring
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseWarming:
		return "warming"
	case PhaseMeasuring:
		return "measuring"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Budget bounds the warm-up and measurement phases.
type Budget struct {
	// Warm-up runs until WarmupTime has elapsed and at least WarmupIterations
	// invocations were made.
	WarmupTime       time.Duration `json:"warmupTime"`
	WarmupIterations int           `json:"warmupIterations"`
	// Measuring stops once MinSamples samples were taken over at least
	// MinTime, or when SampleLimit samples were taken.
	MinTime     time.Duration `json:"minTime"`
	MinSamples  int           `json:"minSamples"`
	SampleLimit int           `json:"sampleLimit"`
	// Batch is the number of invocations timed together per sample.
	Batch int `json:"batch"`
}

// DefaultBudget returns the budget used when nothing is configured.
func DefaultBudget() Budget {
	return Budget{
		WarmupTime:       3 * time.Second,
		WarmupIterations: 10,
		MinTime:          time.Second,
		MinSamples:       100,
		SampleLimit:      100000,
		Batch:            1,
	}
}

func (b Budget) Validate() error {
	switch {
	case b.WarmupTime < 0:
		return fmt.Errorf("%w: warmupTime must not be negative", ErrInvalidBudget)
	case b.WarmupIterations < 0:
		return fmt.Errorf("%w: warmupIterations must not be negative", ErrInvalidBudget)
	case b.MinTime < 0:
		return fmt.Errorf("%w: minTime must not be negative", ErrInvalidBudget)
	case b.MinSamples < 1:
		return fmt.Errorf("%w: minSamples must be at least 1", ErrInvalidBudget)
	case b.SampleLimit < b.MinSamples:
		return fmt.Errorf("%w: sampleLimit %d is below minSamples %d", ErrInvalidBudget, b.SampleLimit, b.MinSamples)
	case b.Batch < 1:
		return fmt.Errorf("%w: batch must be at least 1", ErrInvalidBudget)
	}
	return nil
}

// SampleSet holds the per-invocation durations measured for one entry.
type SampleSet struct {
	Entry   Entry
	Samples []time.Duration
	// Warmup is the number of unrecorded warm-up invocations.
	Warmup int
	// Elapsed is the wall time spent measuring.
	Elapsed time.Duration
}

// EntryError is a measurement failure isolated to one entry.
type EntryError struct {
	Name  string
	Phase Phase
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s failed while %s: %v", e.Name, e.Phase, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Runner measures entries one at a time.
type Runner struct {
	budget Budget

	// onPhase, when set, is called on every phase transition.
	onPhase func(Entry, Phase)
}

// NewRunner returns a Runner for a validated budget.
func NewRunner(budget Budget) (*Runner, error) {
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	return &Runner{budget: budget}, nil
}

func (r *Runner) Budget() Budget { return r.budget }

// Run warms up and then samples e. A closure error or panic aborts the entry
// with an *EntryError and is not retried. Cancelling ctx aborts with
// ErrInterrupted and no samples.
func (r *Runner) Run(ctx context.Context, e Entry) (SampleSet, error) {
	name := e.Name()
	if e.Fn == nil {
		return SampleSet{}, fmt.Errorf("%w: %s has no closure", ErrInvalidEntry, name)
	}
	b := r.budget

	r.enter(e, PhaseWarming, map[string]any{
		"warmupTime":       b.WarmupTime.String(),
		"warmupIterations": b.WarmupIterations,
	})
	warmup := 0
	warmStart := time.Now()
	for warmup < b.WarmupIterations || time.Since(warmStart) < b.WarmupTime {
		if err := ctx.Err(); err != nil {
			return SampleSet{}, interrupted(name, err)
		}
		if err := runBatch(e.Fn, 1); err != nil {
			return SampleSet{}, &EntryError{Name: name, Phase: PhaseWarming, Err: err}
		}
		warmup++
	}

	r.enter(e, PhaseMeasuring, map[string]any{
		"warmup":      warmup,
		"minTime":     b.MinTime.String(),
		"minSamples":  b.MinSamples,
		"sampleLimit": b.SampleLimit,
		"batch":       b.Batch,
	})
	samples := make([]time.Duration, 0, b.MinSamples)
	batch := time.Duration(b.Batch)
	measureStart := time.Now()
	for len(samples) < b.SampleLimit {
		if len(samples) >= b.MinSamples && time.Since(measureStart) >= b.MinTime {
			break
		}
		if err := ctx.Err(); err != nil {
			return SampleSet{}, interrupted(name, err)
		}

		start := time.Now()
		err := runBatch(e.Fn, b.Batch)
		elapsed := time.Since(start)
		if err != nil {
			return SampleSet{}, &EntryError{Name: name, Phase: PhaseMeasuring, Err: err}
		}
		samples = append(samples, elapsed/batch)
	}
	elapsed := time.Since(measureStart)

	r.enter(e, PhaseDone, map[string]any{
		"samples": len(samples),
		"elapsed": elapsed.String(),
	})
	return SampleSet{
		Entry:   e,
		Samples: samples,
		Warmup:  warmup,
		Elapsed: elapsed,
	}, nil
}

func (r *Runner) enter(e Entry, p Phase, detail any) {
	logging.LogPhase(p.String(), e.Name(), detail)
	if r.onPhase != nil {
		r.onPhase(e, p)
	}
}

// runBatch invokes fn n times and converts a panic into an error.
func runBatch(fn Func, n int) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	for i := 0; i < n; i++ {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func interrupted(name string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrInterrupted, name, cause)
}
