package diag

import (
	"strings"
	"testing"
)

func TestSpanString(t *testing.T) {
	tests := []struct {
		span Span
		want string
	}{
		{Span{Filename: "main.ax", Line: 3, Column: 7}, "main.ax:3:7"},
		{Span{Line: 1, Column: 1}, "1:1"},
	}
	for _, tt := range tests {
		if got := tt.span.String(); got != tt.want {
			t.Errorf("span string wrong. expected=%q, got=%q", tt.want, got)
		}
	}
}

func TestSpanIsValid(t *testing.T) {
	if (Span{}).IsValid() {
		t.Error("zero span must be invalid")
	}
	if !(Span{Line: 1, Column: 1}).IsValid() {
		t.Error("1:1 must be valid")
	}
}

func TestSpanMerge(t *testing.T) {
	a := Span{Filename: "f.ax", Line: 1, Column: 2, Start: 1, End: 4}
	b := Span{Filename: "f.ax", Line: 2, Column: 1, Start: 10, End: 15}

	merged := a.Merge(b)
	if merged.Start != 1 || merged.End != 15 {
		t.Errorf("merge bounds wrong: %+v", merged)
	}
	if merged.Line != 1 || merged.Column != 2 {
		t.Errorf("merge must keep the receiver's position: %+v", merged)
	}

	// Merging a narrower end never shrinks.
	if got := a.Merge(Span{End: 2}); got.End != 4 {
		t.Errorf("merge shrank the span: %+v", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Stage:    StageTypeCheck,
		Severity: SeverityError,
		Code:     CodeTypeMismatch,
		Message:  "type mismatch: expected i32, got str",
		Span:     Span{Filename: "main.ax", Line: 2, Column: 5},
	}
	want := "main.ax:2:5: error: type mismatch: expected i32, got str"
	if got := d.String(); got != want {
		t.Errorf("diagnostic string wrong.\nexpected=%q\ngot=     %q", want, got)
	}
}

func TestFormatterOrdersBySourcePosition(t *testing.T) {
	var sb strings.Builder
	f := NewFormatter(&sb)
	f.FormatAll([]Diagnostic{
		{Severity: SeverityError, Message: "second", Span: Span{Filename: "a.ax", Line: 5, Column: 1, Start: 40}},
		{Severity: SeverityError, Message: "first", Span: Span{Filename: "a.ax", Line: 1, Column: 1, Start: 0}},
	})

	out := sb.String()
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("diagnostics not in source order:\n%s", out)
	}
}

func TestFormatterNotes(t *testing.T) {
	var sb strings.Builder
	f := NewFormatter(&sb)
	d := Diagnostic{
		Severity: SeverityError,
		Message:  "bad thing",
		Span:     Span{Filename: "a.ax", Line: 1, Column: 2},
	}.WithNote("try the other thing")
	f.Format(d)

	out := sb.String()
	if !strings.Contains(out, "a.ax:1:2: error: bad thing") {
		t.Errorf("missing error line:\n%s", out)
	}
	if !strings.Contains(out, "a.ax:1:2: note: try the other thing") {
		t.Errorf("missing note line:\n%s", out)
	}
}
