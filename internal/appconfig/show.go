package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	budget := cfg.Budget()
	opts := cfg.MetricsOptions()
	fmt.Fprintf(out, "  Warm-up Time:       %s\n", budget.WarmupTime)
	fmt.Fprintf(out, "  Warm-up Iterations: %d\n", budget.WarmupIterations)
	fmt.Fprintf(out, "  Min Time:           %s\n", budget.MinTime)
	fmt.Fprintf(out, "  Min Samples:        %d\n", budget.MinSamples)
	fmt.Fprintf(out, "  Sample Limit:       %d\n", budget.SampleLimit)
	fmt.Fprintf(out, "  Batch:              %d\n", budget.Batch)
	fmt.Fprintf(out, "  Trim Outliers:      %v\n", opts.Trim)
	if opts.Trim {
		fmt.Fprintf(out, "  Trim Threshold:     %g\n", opts.TrimThreshold)
	}
	fmt.Fprintf(out, "  Confidence:         %g\n", opts.Confidence)
	fmt.Fprintf(out, "  Format:             %s\n", cfg.Format)
	if len(cfg.Sizes) == 0 {
		fmt.Fprintln(out, "  Sizes:              group defaults")
	} else {
		fmt.Fprintf(out, "  Sizes:              %v\n", cfg.Sizes)
	}
	if cfg.Output != "" {
		fmt.Fprintf(out, "  Output:             %s\n", cfg.Output)
	}
	fmt.Fprintf(out, "  Debug:              %v\n", cfg.Debug)
	fmt.Fprintf(out, "  No Color:           %v\n", cfg.NoColor)
	fmt.Fprintf(out, "  Log File:           %s\n", cfg.LogFilePath())
}
