// internal/metrics/aggregator.go
package metrics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/mwiater/idiombench/internal/logging"
)

const (
	// DefaultTrimThreshold is the IQR multiplier for mild outliers.
	DefaultTrimThreshold = 1.5
	// DefaultConfidence is the level of the reported band around the mean.
	DefaultConfidence = 0.95
)

// ErrEmptySampleSet means a sample set reached the aggregator without any
// samples. The runner guarantees at least one sample, so this is a defect.
var ErrEmptySampleSet = errors.New("empty sample set")

// ErrUnsupportedConfidence is returned for a level outside ConfidenceLevels.
var ErrUnsupportedConfidence = errors.New("unsupported confidence level")

// ConfidenceLevels are the levels a band can be computed at.
var ConfidenceLevels = []float64{0.90, 0.95, 0.99}

// CheckConfidence rejects levels without a t table.
func CheckConfidence(level float64) error {
	if slices.Contains(ConfidenceLevels, level) {
		return nil
	}
	return fmt.Errorf("%w: %v (want 0.9, 0.95 or 0.99)", ErrUnsupportedConfidence, level)
}

// DefaultOptions returns untrimmed reduction at the default confidence level.
func DefaultOptions() Options {
	return Options{
		Trim:          false,
		TrimThreshold: DefaultTrimThreshold,
		Confidence:    DefaultConfidence,
	}
}

// Aggregator reduces the sample sets of a run with one set of options.
type Aggregator struct {
	opts Options
}

// NewAggregator creates an Aggregator that reduces with opts.
func NewAggregator(opts Options) *Aggregator {
	if opts.TrimThreshold <= 0 {
		opts.TrimThreshold = DefaultTrimThreshold
	}
	if opts.Confidence == 0 {
		opts.Confidence = DefaultConfidence
	}
	return &Aggregator{opts: opts}
}

// Record reduces samples for the named entry.
func (a *Aggregator) Record(name string, samples []time.Duration) (Summary, error) {
	summary, err := Summarize(samples, a.opts)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize %s: %w", name, err)
	}
	logging.LogDebug("[METRICS] %s: n=%d mean=%s stddev=%s", name, summary.Count, summary.Mean, summary.StdDev)
	return summary, nil
}

// Summarize computes the mean, dispersion and confidence band of samples.
// A zero Confidence selects DefaultConfidence.
func Summarize(samples []time.Duration, opts Options) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrEmptySampleSet
	}
	if opts.TrimThreshold <= 0 {
		opts.TrimThreshold = DefaultTrimThreshold
	}
	if opts.Confidence == 0 {
		opts.Confidence = DefaultConfidence
	}
	if err := CheckConfidence(opts.Confidence); err != nil {
		return Summary{}, err
	}

	used := samples
	if opts.Trim {
		used = RemoveOutliers(samples, opts.TrimThreshold)
	}

	var rs RunningStat
	for _, s := range used {
		updateRunningStat(&rs, float64(s))
	}

	// Accumulated rounding can push the running mean a hair past the extremes.
	mean := math.Min(math.Max(rs.Mean, rs.Min), rs.Max)
	stddev := math.Sqrt(rs.M2 / float64(rs.Count))

	sorted := slices.Clone(used)
	slices.Sort(sorted)

	low, high := confidenceInterval(mean, stddev, len(used), opts.Confidence)

	return Summary{
		Count:      len(used),
		Trimmed:    len(samples) - len(used),
		Mean:       time.Duration(math.Round(mean)),
		StdDev:     time.Duration(math.Round(stddev)),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Median:     percentile(sorted, 0.5),
		CILow:      time.Duration(math.Round(low)),
		CIHigh:     time.Duration(math.Round(high)),
		Confidence: opts.Confidence,
	}, nil
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}

// percentile returns the p-th percentile of sorted using linear interpolation.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	index := p * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	fraction := index - float64(lower)
	return time.Duration(float64(sorted[lower])*(1-fraction) + float64(sorted[upper])*fraction)
}

// RemoveOutliers drops samples outside [Q1 - threshold*IQR, Q3 + threshold*IQR].
// Sets smaller than four samples are returned unchanged, and so is any set
// where the fence would discard more than half of the samples.
func RemoveOutliers(samples []time.Duration, threshold float64) []time.Duration {
	if len(samples) < 4 {
		return samples
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	q1 := percentile(sorted, 0.25)
	q3 := percentile(sorted, 0.75)
	iqr := q3 - q1

	lowerBound := q1 - time.Duration(threshold*float64(iqr))
	upperBound := q3 + time.Duration(threshold*float64(iqr))

	filtered := make([]time.Duration, 0, len(samples))
	for _, s := range samples {
		if s >= lowerBound && s <= upperBound {
			filtered = append(filtered, s)
		}
	}

	if len(filtered) < len(samples)/2 {
		return samples
	}
	return filtered
}

// confidenceInterval returns the symmetric band around mean for n samples
// with population standard deviation stddev.
func confidenceInterval(mean, stddev float64, n int, level float64) (float64, float64) {
	if n < 2 {
		return mean, mean
	}
	margin := tCriticalValue(n-1, level) * stddev / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}

// tCriticalValue returns the two-tailed t critical value for df degrees of
// freedom, falling back to z-scores once df exceeds the table. level must be
// one of ConfidenceLevels.
func tCriticalValue(df int, level float64) float64 {
	t90 := []float64{6.314, 2.920, 2.353, 2.132, 2.015, 1.943, 1.895, 1.860, 1.833, 1.812,
		1.796, 1.782, 1.771, 1.761, 1.753, 1.746, 1.740, 1.734, 1.729, 1.725,
		1.721, 1.717, 1.714, 1.711, 1.708, 1.706, 1.703, 1.701, 1.699, 1.697}
	t95 := []float64{12.706, 4.303, 3.182, 2.776, 2.571, 2.447, 2.365, 2.306, 2.262, 2.228,
		2.201, 2.179, 2.160, 2.145, 2.131, 2.120, 2.110, 2.101, 2.093, 2.086,
		2.080, 2.074, 2.069, 2.064, 2.060, 2.056, 2.052, 2.048, 2.045, 2.042}
	t99 := []float64{63.657, 9.925, 5.841, 4.604, 4.032, 3.707, 3.499, 3.355, 3.250, 3.169,
		3.106, 3.055, 3.012, 2.977, 2.947, 2.921, 2.898, 2.878, 2.861, 2.845,
		2.831, 2.819, 2.807, 2.797, 2.787, 2.779, 2.771, 2.763, 2.756, 2.750}

	var table []float64
	var z float64
	switch level {
	case 0.90:
		table, z = t90, 1.645
	case 0.99:
		table, z = t99, 2.576
	default:
		table, z = t95, 1.96
	}

	if df < 1 {
		df = 1
	}
	if df > len(table) {
		return z
	}
	return table[df-1]
}

// Relative returns each summary's mean divided by the smallest mean among
// them, so the fastest entry reads 1.0. Means are floored at 1ns.
func Relative(summaries []Summary) []float64 {
	if len(summaries) == 0 {
		return nil
	}
	floor := func(d time.Duration) float64 {
		return float64(max(d, time.Nanosecond))
	}
	fastest := floor(summaries[0].Mean)
	for _, s := range summaries[1:] {
		fastest = math.Min(fastest, floor(s.Mean))
	}

	out := make([]float64, len(summaries))
	for i, s := range summaries {
		out[i] = floor(s.Mean) / fastest
	}
	return out
}
