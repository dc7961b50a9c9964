// Copyright © 2025 The Carbide authors

// Package report collects analysis diagnostics.
//
// Passes append to a shared Reporter as they walk the tree. Each diagnostic
// carries a stable numeric ID so messages can be reworded without breaking
// tooling that filters on codes. A Watcher snapshots the error count so a
// pass can tell whether it introduced new errors.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carbidelang/carbide/source"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "error".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("error")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Category names the analysis stage a diagnostic belongs to.
type Category string

const (
	// CategoryDeclaration covers name binding and scoping problems.
	CategoryDeclaration Category = "declaration"

	// CategoryDocstring covers problems in structured documentation.
	CategoryDocstring Category = "docstring"
)

// ID is a stable four-digit diagnostic code.
type ID int

// String returns the code in its rendered form, e.g. "E7576".
func (id ID) String() string { return fmt.Sprintf("E%04d", int(id)) }

// SecondaryLocation points at a related source span, such as the
// declaration being shadowed.
type SecondaryLocation struct {
	Message  string           `json:"message"`
	Location *source.Location `json:"location,omitempty"`
}

// Error is a single reported diagnostic.
type Error struct {
	// ID is the diagnostic's stable code.
	ID ID `json:"code"`

	// Category is the analysis stage that produced the diagnostic.
	Category Category `json:"category"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity"`

	// Fatal marks errors that made the reporting pass abandon the
	// enclosing subtree.
	Fatal bool `json:"fatal,omitempty"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Location is the primary source span.
	Location *source.Location `json:"location,omitempty"`

	// Secondary are related source spans with their own captions.
	Secondary []SecondaryLocation `json:"secondary,omitempty"`
}

// String returns the diagnostic in go vet style:
// file:line:col: severity[code]: message, with secondary locations appended
// as note lines.
func (e *Error) String() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%s[%s]: %s", e.Severity, e.ID, e.Message)
	for _, sec := range e.Secondary {
		b.WriteString("\n  = note: ")
		b.WriteString(sec.Message)
		if sec.Location != nil {
			b.WriteString(" ")
			b.WriteString(sec.Location.String())
		}
	}
	return b.String()
}

// Reporter accumulates diagnostics in the order they were reported.
// The zero value is ready to use.
type Reporter struct {
	diagnostics []*Error
	errorCount  int
}

// NewReporter returns an empty reporter.
func NewReporter() *Reporter { return &Reporter{} }

// Report appends a diagnostic. A diagnostic with unset severity is recorded
// as an error.
func (r *Reporter) Report(e *Error) {
	if e.Severity == severityUnset {
		e.Severity = SeverityError
	}
	if e.Severity == SeverityError {
		r.errorCount++
	}
	r.diagnostics = append(r.diagnostics, e)
}

// Diagnostics returns all reported diagnostics in report order.
func (r *Reporter) Diagnostics() []*Error { return r.diagnostics }

// HasErrors reports whether any error-severity diagnostic was reported.
// Warnings and infos do not count.
func (r *Reporter) HasErrors() bool { return r.errorCount > 0 }

// DeclarationError reports a name binding error.
func (r *Reporter) DeclarationError(id ID, loc *source.Location, msg string, secondary ...SecondaryLocation) {
	r.Report(&Error{
		ID:        id,
		Category:  CategoryDeclaration,
		Severity:  SeverityError,
		Message:   msg,
		Location:  loc,
		Secondary: secondary,
	})
}

// FatalDeclarationError reports a name binding error that made the pass
// abandon the enclosing subtree.
func (r *Reporter) FatalDeclarationError(id ID, loc *source.Location, msg string) {
	r.Report(&Error{
		ID:       id,
		Category: CategoryDeclaration,
		Severity: SeverityError,
		Fatal:    true,
		Message:  msg,
		Location: loc,
	})
}

// DeclarationWarning reports a name binding warning.
func (r *Reporter) DeclarationWarning(id ID, loc *source.Location, msg string, secondary ...SecondaryLocation) {
	r.Report(&Error{
		ID:        id,
		Category:  CategoryDeclaration,
		Severity:  SeverityWarning,
		Message:   msg,
		Location:  loc,
		Secondary: secondary,
	})
}

// DocstringParsingError reports a problem in structured documentation.
func (r *Reporter) DocstringParsingError(id ID, loc *source.Location, msg string) {
	r.Report(&Error{
		ID:       id,
		Category: CategoryDocstring,
		Severity: SeverityError,
		Message:  msg,
		Location: loc,
	})
}

// Watcher observes whether new errors arrive after its creation.
type Watcher struct {
	r        *Reporter
	baseline int
}

// Watch returns a watcher with the current error count as its baseline.
func (r *Reporter) Watch() Watcher {
	return Watcher{r: r, baseline: r.errorCount}
}

// Ok reports whether no errors were reported since the watcher was created.
// Warnings do not trip the watcher.
func (w Watcher) Ok() bool { return w.r.errorCount == w.baseline }
