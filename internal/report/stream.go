package report

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/metrics"
)

// Record is one line of the JSON stream.
type Record struct {
	Name     string           `json:"name"`
	Group    string           `json:"group"`
	Variant  string           `json:"variant"`
	Size     *int             `json:"size,omitempty"`
	Flag     string           `json:"flag,omitempty"`
	Status   string           `json:"status"`
	Summary  *metrics.Summary `json:"summary,omitempty"`
	Relative float64          `json:"relative,omitempty"`
	Warmup   int              `json:"warmup,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Records converts results into stream records in result order.
func Records(results []benchmark.Result) []Record {
	relative := make(map[string]float64)
	for _, set := range compare(results) {
		for name, rel := range set.Relative {
			relative[name] = rel
		}
	}

	records := make([]Record, 0, len(results))
	for _, r := range results {
		name := r.Entry.Name()
		rec := Record{
			Name:    name,
			Group:   r.Entry.Group,
			Variant: r.Entry.Variant,
			Flag:    r.Entry.Flag,
			Status:  "ok",
		}
		if r.Entry.Size != benchmark.NoSize {
			size := r.Entry.Size
			rec.Size = &size
		}
		if r.Failed() || r.Summary == nil {
			rec.Status = "failed"
			if r.Err != nil {
				rec.Error = r.Err.Error()
			}
		} else {
			rec.Summary = r.Summary
			rec.Relative = relative[name]
			rec.Warmup = r.Warmup
		}
		records = append(records, rec)
	}
	return records
}

// WriteJSON emits one JSON object per line.
func WriteJSON(w io.Writer, results []benchmark.Result) error {
	encoder := json.NewEncoder(w)
	for _, rec := range Records(results) {
		if err := encoder.Encode(rec); err != nil {
			return errors.Wrapf(err, "writing record %s", rec.Name)
		}
	}
	return nil
}

// WriteGoBench emits results in the Go benchmark text format so they can be
// compared with benchstat. Failed entries become --- FAIL lines.
func WriteGoBench(w io.Writer, results []benchmark.Result) error {
	header := fmt.Sprintf("goos: %s\ngoarch: %s\npkg: github.com/mwiater/idiombench\n", runtime.GOOS, runtime.GOARCH)
	if _, err := io.WriteString(w, header); err != nil {
		return errors.Wrap(err, "writing gobench header")
	}
	procs := runtime.GOMAXPROCS(0)
	for _, r := range results {
		name := GoBenchName(r.Entry)
		var line string
		if r.Failed() || r.Summary == nil {
			msg := "no summary"
			if r.Err != nil {
				msg = r.Err.Error()
			}
			line = fmt.Sprintf("--- FAIL: %s\n    %s\n", name, msg)
		} else {
			s := r.Summary
			line = fmt.Sprintf("%s-%d\t%d\t%d ns/op\t%d ns-stddev\n", name, procs, s.Count, int64(s.Mean), int64(s.StdDev))
		}
		if _, err := io.WriteString(w, line); err != nil {
			return errors.Wrapf(err, "writing gobench line for %s", name)
		}
	}
	return nil
}

// GoBenchName renders an entry as BenchmarkGroup/variant/n=<size>[/<flag>].
func GoBenchName(e benchmark.Entry) string {
	name := e.Name()
	r, size := utf8.DecodeRuneInString(name)
	name = string(unicode.ToUpper(r)) + name[size:]
	return "Benchmark" + strings.ReplaceAll(name, " ", "_")
}
