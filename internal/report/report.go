// Package report renders benchmark results as a comparison table, a JSON
// record stream or Go benchmark text.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/metrics"
)

// Format selects the output rendering.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatGoBench Format = "gobench"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTable, FormatJSON, FormatGoBench}

// FormatNames returns Formats as a comma separated list.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ParseFormat maps a configured name onto a Format. Empty selects the table.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FormatTable, nil
	}
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown report format %q (want one of %s)", name, FormatNames())
	}
	return f, nil
}

// Options configures a report.
type Options struct {
	Format  Format
	NoColor bool
}

// Write renders results to w in the configured format.
func Write(w io.Writer, results []benchmark.Result, opts Options) error {
	if w == nil {
		return errors.New("attempt to write report to nil writer")
	}
	switch opts.Format {
	case FormatTable, "":
		return WriteTable(w, results, opts.NoColor)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatGoBench:
		return WriteGoBench(w, results)
	default:
		return errors.Errorf("unknown report format %q", opts.Format)
	}
}

// comparison is the results for one group at one size, the unit the
// relative column is computed over.
type comparison struct {
	Group    string
	Size     int
	Results  []benchmark.Result
	Relative map[string]float64
}

func (c comparison) Title() string {
	if c.Size == benchmark.NoSize {
		return c.Group
	}
	return fmt.Sprintf("%s n=%d", c.Group, c.Size)
}

// compare splits results into comparison sets in first-seen order and
// computes each successful entry's mean relative to the fastest in its set.
func compare(results []benchmark.Result) []comparison {
	type key struct {
		group string
		size  int
	}
	index := make(map[key]int)
	var sets []comparison
	for _, r := range results {
		k := key{r.Entry.Group, r.Entry.Size}
		i, ok := index[k]
		if !ok {
			i = len(sets)
			index[k] = i
			sets = append(sets, comparison{Group: k.group, Size: k.size})
		}
		sets[i].Results = append(sets[i].Results, r)
	}

	for i := range sets {
		var names []string
		var summaries []metrics.Summary
		for _, r := range sets[i].Results {
			if r.Failed() || r.Summary == nil {
				continue
			}
			names = append(names, r.Entry.Name())
			summaries = append(summaries, *r.Summary)
		}
		sets[i].Relative = make(map[string]float64, len(names))
		for j, rel := range metrics.Relative(summaries) {
			sets[i].Relative[names[j]] = rel
		}
	}
	return sets
}
