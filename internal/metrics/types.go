// internal/metrics/types.go
package metrics

import "time"

// Summary is the read-only reduction of one sample set. All durations are
// per-invocation times.
type Summary struct {
	Count   int           `json:"count"`
	Trimmed int           `json:"trimmed"`
	Mean    time.Duration `json:"mean_ns"`
	StdDev  time.Duration `json:"stddev_ns"`
	Min     time.Duration `json:"min_ns"`
	Max     time.Duration `json:"max_ns"`
	Median  time.Duration `json:"median_ns"`
	CILow   time.Duration `json:"ci_low_ns"`
	CIHigh  time.Duration `json:"ci_high_ns"`
	// Confidence is the level the CILow/CIHigh band was computed at.
	Confidence float64 `json:"confidence"`
}

// Options controls how a sample set is reduced.
type Options struct {
	// Trim drops samples outside the IQR fence before reducing. Off by default
	// so the raw distribution is reported.
	Trim bool
	// TrimThreshold is the IQR multiplier used when Trim is set.
	TrimThreshold float64
	// Confidence is the level of the reported band around the mean (0.90, 0.95 or 0.99).
	Confidence float64
}

// RunningStat holds the necessary values for online calculation of mean, variance, and stddev.
type RunningStat struct {
	Count int64   `json:"-"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"-"` // Sum of squares of differences from the current mean
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}
