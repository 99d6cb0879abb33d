package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	"github.com/pkg/errors"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/util"
)

const (
	noValue       = "-"
	diagnosticMax = 72
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

// WriteTable renders one table per comparison set. Failed entries appear as
// FAILED rows carrying their diagnostic.
func WriteTable(w io.Writer, results []benchmark.Result, noColor bool) error {
	okStatus := color.New(color.FgGreen)
	failedStatus := color.New(color.FgRed, color.Bold)
	if noColor {
		okStatus.DisableColor()
		failedStatus.DisableColor()
	}

	if len(results) == 0 {
		if _, err := io.WriteString(w, "No benchmarks matched.\n"); err != nil {
			return errors.Wrap(err, "writing empty report")
		}
		return nil
	}

	for i, set := range compare(results) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return errors.Wrap(err, "writing separator")
			}
		}

		heading := set.Title()
		if !noColor {
			heading = headingStyle.Render(heading)
		}
		if _, err := io.WriteString(w, heading+"\n"); err != nil {
			return errors.Wrapf(err, "writing heading for %s", set.Title())
		}

		t := table.NewWriter()
		// Don't uppercase the header values.
		t.Style().Format.Header = text.FormatDefault
		t.AppendHeader(table.Row{"name", "mean (ns)", "± stddev (ns)", ciHeader(set), "samples", "relative", "status"})

		for _, r := range set.Results {
			name := r.Entry.Name()
			if r.Failed() || r.Summary == nil {
				diag := "no summary"
				if r.Err != nil {
					diag = util.TruncateRunes(util.SingleLine(r.Err.Error()), diagnosticMax)
				}
				t.AppendRow(table.Row{name, noValue, noValue, noValue, noValue, noValue, failedStatus.Sprint("FAILED: " + diag)})
				continue
			}
			s := r.Summary
			t.AppendRow(table.Row{
				name,
				util.GroupDigits(int64(s.Mean)),
				util.GroupDigits(int64(s.StdDev)),
				fmt.Sprintf("[%s, %s]", util.GroupDigits(int64(s.CILow)), util.GroupDigits(int64(s.CIHigh))),
				s.Count,
				fmt.Sprintf("%.2fx", set.Relative[name]),
				okStatus.Sprint("ok"),
			})
		}
		if _, err := io.WriteString(w, t.Render()+"\n"); err != nil {
			return errors.Wrapf(err, "writing table for %s", set.Title())
		}
	}
	return nil
}

// ciHeader labels the band column with the level the set was reduced at.
func ciHeader(set comparison) string {
	for _, r := range set.Results {
		if r.Summary != nil && r.Summary.Confidence > 0 {
			return fmt.Sprintf("%g%% CI (ns)", math.Round(r.Summary.Confidence*1000)/10)
		}
	}
	return "CI (ns)"
}
