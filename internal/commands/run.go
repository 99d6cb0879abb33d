package idiombench

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/mwiater/idiombench/internal/appconfig"
	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/metrics"
	"github.com/mwiater/idiombench/internal/report"
	"github.com/mwiater/idiombench/internal/util"
	"github.com/mwiater/idiombench/internal/variants"
)

// ErrEntriesFailed is returned by run after the report is written when at
// least one benchmark failed.
var ErrEntriesFailed = errors.New("benchmarks failed")

// runCmd implements 'run', which measures every registered benchmark whose
// name matches the optional filter and prints the comparison report.
var runCmd = &cobra.Command{
	Use:   "run [filter]",
	Short: "Run benchmarks and print the comparison report",
	Long: `Run measures every registered benchmark, or those whose name contains the filter or
matches it as a regular expression, one at a time and prints a report per comparison set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		return runBenchmarks(cmd, *cfg, filter)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// buildRegistry registers every variant group at the configured sizes.
func buildRegistry(cfg appconfig.Config) (*benchmark.Registry, error) {
	reg := benchmark.NewRegistry()
	if err := variants.RegisterAll(reg, cfg.Sizes); err != nil {
		return nil, err
	}
	return reg, nil
}

func runBenchmarks(cmd *cobra.Command, cfg appconfig.Config, filter string) error {
	reportOpts, err := cfg.ReportOptions()
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	runner, err := benchmark.NewRunner(cfg.Budget())
	if err != nil {
		return err
	}

	suite := &benchmark.Suite{
		Registry:   reg,
		Sampler:    runner,
		Aggregator: metrics.NewAggregator(cfg.MetricsOptions()),
		Filter:     filter,
	}
	selected := len(benchmark.Select(reg, filter))
	log.Printf("Running %d of %d benchmarks", selected, reg.Len())

	results, runErr := suite.Run(cmd.Context())
	if runErr != nil && !errors.Is(runErr, benchmark.ErrInterrupted) {
		return runErr
	}
	if errors.Is(runErr, benchmark.ErrInterrupted) {
		log.Printf("Run interrupted, reporting %d completed benchmarks", len(results))
	}

	if err := writeReport(cmd.OutOrStdout(), cfg.Output, results, reportOpts); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrEntriesFailed, failed, len(results))
	}
	return nil
}

// writeReport renders results to out and, when path is set, to that file.
func writeReport(out io.Writer, path string, results []benchmark.Result, opts report.Options) error {
	if err := report.Write(out, results, opts); err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	fileOpts := opts
	fileOpts.NoColor = true
	var buf bytes.Buffer
	if err := report.Write(&buf, results, fileOpts); err != nil {
		return err
	}
	if err := util.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	log.Printf("Report written to %s", path)
	return nil
}
