package variants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/inputs"
)

const listSep = ","

// bytesPerElement is the capacity reserved per element when pre-growing.
const bytesPerElement = 4

// JoinBuilder writes each element into a strings.Builder. With grow set the
// builder reserves capacity for the whole list first.
func JoinBuilder(in []int, grow bool) string {
	var b strings.Builder
	if grow {
		b.Grow(len(in) * bytesPerElement)
	}
	for i, v := range in {
		if i > 0 {
			b.WriteString(listSep)
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// JoinStrings converts every element and calls strings.Join.
func JoinStrings(in []int) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, listSep)
}

// JoinAppendInt appends decimal digits straight into a byte slice.
func JoinAppendInt(in []int) string {
	buf := make([]byte, 0, len(in)*bytesPerElement)
	for i, v := range in {
		if i > 0 {
			buf = append(buf, listSep...)
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return string(buf)
}

// JoinFprint formats every element through fmt.
func JoinFprint(in []int) string {
	var b strings.Builder
	for i, v := range in {
		if i > 0 {
			b.WriteString(listSep)
		}
		fmt.Fprint(&b, v)
	}
	return b.String()
}

func listfmtSweep(sizes []int) benchmark.Sweep[[]int, string] {
	return benchmark.Sweep[[]int, string]{
		Group:    "listfmt",
		Sizes:    sizes,
		Flag:     FlagPrealloc,
		Generate: generator[[]int](inputs.KindSequence),
		Variants: []benchmark.Variant[[]int, string]{
			{Label: "builder", Configurable: true, Run: JoinBuilder},
			{Label: "join", Run: func(in []int, _ bool) string { return JoinStrings(in) }},
			{Label: "appendint", Run: func(in []int, _ bool) string { return JoinAppendInt(in) }},
			{Label: "fprint", Run: func(in []int, _ bool) string { return JoinFprint(in) }},
		},
	}
}
