package diag

import (
	"fmt"
	"io"
	"sort"
)

// Formatter renders diagnostics for terminal output. Every line follows the
// FILE:LINE:COL: severity: MESSAGE convention so editors can jump to the
// offending location.
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Format writes a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	fmt.Fprintln(f.w, d.String())
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "%s: note: %s\n", d.Span, note)
	}
}

// FormatAll writes a batch of diagnostics in source order. Diagnostics from
// the same component arrive pre-sorted; batches from different stages are
// interleaved by offset so the user reads them top to bottom.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	sorted := make([]Diagnostic, len(ds))
	copy(sorted, ds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})
	for _, d := range sorted {
		f.Format(d)
	}
}
