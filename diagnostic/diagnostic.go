// Copyright © 2025 The Carbide authors

// Package diagnostic provides Rust-style annotated rendering of analysis
// diagnostics for CLI output. It depends only on the report and source
// packages so any command can use it without creating import cycles.
package diagnostic

import (
	"github.com/carbidelang/carbide/report"
	"github.com/carbidelang/carbide/source"
)

// Severity indicates the severity level of a rendered diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
// The primary span is underlined with carets, secondary spans with dashes.
type Span struct {
	File    string // path for reading source; display name if unreadable
	Line    int    // 1-based line number
	Col     int    // 1-based start column
	EndCol  int    // 1-based end column (0 = auto-detect from source)
	Label   string // text shown under the underline
	Primary bool
}

// Diagnostic represents a single error, warning, or note with optional
// source annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Code     string // stable diagnostic code, e.g. "E7576"; may be empty
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}

// FromError converts an analysis diagnostic into its renderable form. The
// error's own location becomes the primary span. Secondary locations become
// labeled spans, or plain notes when they carry no usable location.
func FromError(e *report.Error) Diagnostic {
	d := Diagnostic{
		Severity: severityOf(e.Severity),
		Code:     e.ID.String(),
		Message:  e.Message,
	}
	if span, ok := spanAt(e.Location, "", true); ok {
		d.Spans = append(d.Spans, span)
	}
	for _, sec := range e.Secondary {
		if span, ok := spanAt(sec.Location, sec.Message, false); ok {
			d.Spans = append(d.Spans, span)
		} else if sec.Message != "" {
			d.Notes = append(d.Notes, sec.Message)
		}
	}
	return d
}

// FromErrors converts a diagnostic list in report order.
func FromErrors(errs []*report.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromError(e)
	}
	return out
}

func severityOf(s report.Severity) Severity {
	switch s {
	case report.SeverityWarning:
		return SeverityWarning
	case report.SeverityInfo:
		return SeverityNote
	default:
		return SeverityError
	}
}

func spanAt(loc *source.Location, label string, primary bool) (Span, bool) {
	if loc == nil || loc.Line == 0 {
		return Span{}, false
	}
	return Span{
		File:    loc.File,
		Line:    loc.Line,
		Col:     loc.Col,
		EndCol:  loc.EndCol,
		Label:   label,
		Primary: primary,
	}, true
}
