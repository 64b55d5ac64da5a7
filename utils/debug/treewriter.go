// Package debug holds helpers for human readable dumps written to debug
// reports.
package debug

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const indentUnit = "  "

// TreeWriter accumulates an indented outline, one node per line.
type TreeWriter struct {
	w strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// Header starts a new titled section separated from previous output by a blank
// line.
func (tw *TreeWriter) Header(format string, args ...any) {
	if tw.w.Len() > 0 {
		tw.w.WriteByte('\n')
	}
	tw.w.WriteString("# ")
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes a labelled value, quoting it so that embedded line breaks
// stay on one line.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, tw.w.String())
	return int64(n), err
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString(indentUnit)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
