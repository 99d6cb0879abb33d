package benchmark

import (
	"testing"
	"time"
)

func TestKeepReturnsInput(t *testing.T) {
	if got := Keep(42); got != 42 {
		t.Fatalf("Keep(42) = %d", got)
	}
	s := []int{1, 2, 3}
	if got := Keep(s); &got[0] != &s[0] {
		t.Fatalf("Keep should return the same slice")
	}
	m := map[string]int{"a": 1}
	if got := Keep(m); got["a"] != 1 {
		t.Fatalf("Keep(map) = %v", got)
	}
}

// measureKeep returns the mean cost of one Keep call over n calls.
func measureKeep[T any](v T, n int) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		Keep(v)
	}
	return time.Since(start) / time.Duration(n)
}

func TestKeepOverheadIsSmallAndSizeIndependent(t *testing.T) {
	const calls = 200000
	small := make([]int, 8)
	large := make([]int, 1<<16)

	perSmall := measureKeep(small, calls)
	perLarge := measureKeep(large, calls)
	perInt := measureKeep(7, calls)

	const bound = time.Microsecond
	for name, d := range map[string]time.Duration{"small": perSmall, "large": perLarge, "int": perInt} {
		if d > bound {
			t.Fatalf("Keep(%s) costs %v per call, want under %v", name, d, bound)
		}
	}
}

func BenchmarkKeep(b *testing.B) {
	data := make([]int, 1024)
	for i := 0; i < b.N; i++ {
		Keep(data)
	}
}
