package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/metrics"
)

func summary(mean time.Duration) *metrics.Summary {
	return &metrics.Summary{
		Count:      120,
		Mean:       mean,
		StdDev:     mean / 10,
		Min:        mean / 2,
		Max:        mean * 2,
		Median:     mean,
		CILow:      mean - 5,
		CIHigh:     mean + 5,
		Confidence: 0.95,
	}
}

func sampleResults() []benchmark.Result {
	return []benchmark.Result{
		{Entry: benchmark.Entry{Group: "count", Variant: "loop", Size: 1000}, Summary: summary(1500)},
		{Entry: benchmark.Entry{Group: "count", Variant: "filter", Size: 1000}, Summary: summary(3000)},
		{Entry: benchmark.Entry{Group: "count", Variant: "broken", Size: 1000}, Err: errors.New("boom\nwith detail")},
		{Entry: benchmark.Entry{Group: "mapinsert", Variant: "hashmap", Size: 5, Flag: "prealloc"}, Summary: summary(200)},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatTable, "table": FormatTable, " JSON ": FormatJSON, "gobench": FormatGoBench}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json, gobench")
	assert.Equal(t, "table, json, gobench", FormatNames())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), Options{Format: FormatTable, NoColor: true}))
	out := buf.String()

	assert.Contains(t, out, "count n=1000")
	assert.Contains(t, out, "mapinsert n=5")
	assert.Contains(t, out, "95% CI (ns)")
	assert.Contains(t, out, "count/loop/n=1000")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "1.00x")
	assert.Contains(t, out, "2.00x")
	assert.Contains(t, out, "FAILED: boom with detail")
	assert.Contains(t, out, "mapinsert/hashmap/n=5/prealloc")
	assert.Equal(t, 3, strings.Count(out, " ok "))
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil, true))
	assert.Equal(t, "No benchmarks matched.\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), Options{Format: FormatJSON}))

	var records []Record
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var rec Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 4)

	assert.Equal(t, "count/loop/n=1000", records[0].Name)
	assert.Equal(t, "ok", records[0].Status)
	require.NotNil(t, records[0].Summary)
	assert.Equal(t, time.Duration(1500), records[0].Summary.Mean)
	assert.InDelta(t, 1.0, records[0].Relative, 1e-9)
	assert.InDelta(t, 2.0, records[1].Relative, 1e-9)

	assert.Equal(t, "failed", records[2].Status)
	assert.Nil(t, records[2].Summary)
	assert.Contains(t, records[2].Error, "boom")

	require.NotNil(t, records[3].Size)
	assert.Equal(t, 5, *records[3].Size)
	assert.Equal(t, "prealloc", records[3].Flag)
}

func TestRecordsOmitSizeForUnsizedEntries(t *testing.T) {
	recs := Records([]benchmark.Result{{Entry: benchmark.Entry{Group: "g", Variant: "v", Size: benchmark.NoSize}, Summary: summary(10)}})
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].Size)
	assert.Equal(t, "g/v", recs[0].Name)
}

func TestWriteGoBench(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), Options{Format: FormatGoBench}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "goos: "))
	assert.Regexp(t, `(?m)^BenchmarkCount/loop/n=1000-\d+\t120\t1500 ns/op\t150 ns-stddev$`, out)
	assert.Contains(t, out, "--- FAIL: BenchmarkCount/broken/n=1000\n")
	assert.Regexp(t, `(?m)^BenchmarkMapinsert/hashmap/n=5/prealloc-\d+\t`, out)
}

func TestGoBenchName(t *testing.T) {
	assert.Equal(t, "BenchmarkListfmt/builder/n=25", GoBenchName(benchmark.Entry{Group: "listfmt", Variant: "builder", Size: 25}))
}

func TestCompareGroupsBySizeAndComputesRelative(t *testing.T) {
	sets := compare(sampleResults())
	require.Len(t, sets, 2)
	assert.Equal(t, "count n=1000", sets[0].Title())
	assert.Len(t, sets[0].Results, 3)
	assert.Len(t, sets[0].Relative, 2)
	assert.InDelta(t, 1.0, sets[1].Relative["mapinsert/hashmap/n=5/prealloc"], 1e-9)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteErrorsAreWrapped(t *testing.T) {
	err := WriteJSON(failingWriter{}, sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing record count/loop/n=1000")
	assert.Contains(t, err.Error(), "disk full")

	err = WriteGoBench(failingWriter{}, sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gobench header")

	assert.Error(t, Write(nil, nil, Options{}))
	assert.Error(t, Write(&bytes.Buffer{}, nil, Options{Format: "xml"}))
}

// shortWriter accepts a fixed number of writes and fails every later one.
type shortWriter struct {
	allowed int
	buf     bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if w.allowed == 0 {
		return 0, errors.New("disk full")
	}
	w.allowed--
	return w.buf.Write(p)
}

func TestWriteTableSurfacesBodyErrors(t *testing.T) {
	w := &shortWriter{allowed: 1}
	err := WriteTable(w, sampleResults(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing table for count n=1000")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "count n=1000\n", w.buf.String())
}
