// Copyright © 2025 The Carbide authors

package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carbidelang/carbide/report"
	"github.com/carbidelang/carbide/source"
)

// testRenderer returns a Renderer with colors disabled and a fake source reader.
func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, &fakeErr{name}
			}
			return []byte(s), nil
		},
	}
}

type fakeErr struct{ name string }

func (e *fakeErr) Error() string { return "not found: " + e.name }

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"token.crb": "        total = supplyy + 1;",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Code:     "E7576",
		Message:  `Undeclared identifier. Did you mean "supply"?`,
		Spans: []Span{
			{File: "token.crb", Line: 1, Col: 17, EndCol: 23, Primary: true},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()

	// Verify key structural elements
	assertContains(t, got, `error[E7576]: Undeclared identifier. Did you mean "supply"?`)
	assertContains(t, got, "--> token.crb:1:17")
	assertContains(t, got, "total = supplyy + 1;")
	assertContains(t, got, "^^^^^^^")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"token.crb": "assembly {\n    let supply := 1\n}",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     "E3859",
		Message:  "This declaration shadows a declaration outside the inline assembly block.",
		Spans: []Span{
			{File: "token.crb", Line: 2, Col: 9, EndCol: 14, Primary: true},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "warning[E3859]: This declaration shadows")
	assertContains(t, got, "--> token.crb:2:9")
	assertContains(t, got, "let supply := 1")
}

func TestRenderSecondarySpan(t *testing.T) {
	r := testRenderer(map[string]string{
		"token.crb": "uint256 supply;\nfunction supply() {;}",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Code:     "E2333",
		Message:  "Identifier already declared.",
		Spans: []Span{
			{File: "token.crb", Line: 2, Col: 10, EndCol: 15, Primary: true},
			{File: "token.crb", Line: 1, Col: 9, EndCol: 14, Label: "The previous declaration is here:"},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error[E2333]: Identifier already declared.")
	assertContains(t, got, "--> token.crb:2:10")
	assertContains(t, got, "^^^^^^")
	assertContains(t, got, "--> token.crb:1:9")
	assertContains(t, got, "------ The previous declaration is here:")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Code:     "E7920",
		Message:  "Identifier not found or not unique.",
		Spans: []Span{
			{File: "<stdin>", Line: 5, Col: 3, Primary: true},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error[E7920]: Identifier not found or not unique.")
	assertContains(t, got, "--> <stdin>:5:3")
	// Should have a gutter but no source line
	assertContains(t, got, "|")
	assertNotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{
		"token.crb": "/// @inheritdoc Base",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Code:     "E9397",
		Message:  `Documentation tag @inheritdoc references inexistent contract "Base".`,
		Spans: []Span{
			{File: "token.crb", Line: 1, Col: 5, EndCol: 20, Primary: true},
		},
		Notes: []string{
			"inheritdoc targets must name a contract visible from this scope",
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "= note: inheritdoc targets must name a contract")
}

func TestRenderAutoDetectEndCol(t *testing.T) {
	r := testRenderer(map[string]string{
		"token.crb": "return balance;",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Code:     "E7576",
		Message:  "Undeclared identifier.",
		Spans: []Span{
			{File: "token.crb", Line: 1, Col: 8, Primary: true}, // EndCol=0 → auto-detect
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// "balance" starts at col 8 and stops at the semicolon → 7 carets
	assertContains(t, got, "^^^^^^^")
	assertNotContains(t, got, "^^^^^^^^")
}

func TestRenderMultipleDiagnostics(t *testing.T) {
	r := testRenderer(map[string]string{
		"token.crb": "uint256 a;\nuint256 a;\nuint256 b;",
	})

	diags := []Diagnostic{
		{
			Severity: SeverityError,
			Code:     "E2333",
			Message:  "Identifier already declared.",
			Spans:    []Span{{File: "token.crb", Line: 2, Col: 9, EndCol: 9, Primary: true}},
		},
		{
			Severity: SeverityWarning,
			Code:     "E2319",
			Message:  "This declaration shadows a low-level builtin of the same name.",
			Spans:    []Span{{File: "token.crb", Line: 3, Col: 9, EndCol: 9, Primary: true}},
		},
	}

	var buf bytes.Buffer
	if err := r.RenderAll(&buf, diags); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// Should have both diagnostics separated by blank line
	parts := strings.Split(got, "\n\n")
	if len(parts) < 2 {
		t.Errorf("expected diagnostics separated by blank line, got:\n%s", got)
	}
	assertContains(t, got, "Identifier already declared.")
	assertContains(t, got, "shadows a low-level builtin")
}

func TestRenderNoSpans(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "ast.json: no such file or directory",
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: ast.json: no such file or directory")
	// Should be just the header, no arrows or source
	assertNotContains(t, got, "-->")
}

func TestFromError(t *testing.T) {
	e := &report.Error{
		ID:       2333,
		Category: report.CategoryDeclaration,
		Severity: report.SeverityError,
		Message:  "Identifier already declared.",
		Location: &source.Location{File: "token.crb", Line: 2, Col: 10, EndCol: 15},
		Secondary: []report.SecondaryLocation{
			{
				Message:  "The previous declaration is here:",
				Location: &source.Location{File: "token.crb", Line: 1, Col: 9, EndCol: 14},
			},
			{Message: "a bare note without a location"},
		},
	}

	d := FromError(e)
	if d.Code != "E2333" {
		t.Errorf("code = %q, want E2333", d.Code)
	}
	if d.Severity != SeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}
	if len(d.Spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(d.Spans))
	}
	if !d.Spans[0].Primary || d.Spans[1].Primary {
		t.Errorf("expected exactly the first span to be primary")
	}
	if d.Spans[1].Label != "The previous declaration is here:" {
		t.Errorf("secondary label = %q", d.Spans[1].Label)
	}
	if len(d.Notes) != 1 || d.Notes[0] != "a bare note without a location" {
		t.Errorf("notes = %v", d.Notes)
	}
}

func TestFromErrorSeverities(t *testing.T) {
	warn := FromError(&report.Error{ID: 3859, Severity: report.SeverityWarning, Message: "w"})
	if warn.Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning", warn.Severity)
	}
	info := FromError(&report.Error{ID: 1, Severity: report.SeverityInfo, Message: "i"})
	if info.Severity != SeverityNote {
		t.Errorf("severity = %v, want note", info.Severity)
	}
	if len(warn.Spans) != 0 {
		t.Errorf("expected no spans for a locationless error")
	}
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
}

func assertNotContains(t *testing.T, got, unwanted string) {
	t.Helper()
	if strings.Contains(got, unwanted) {
		t.Errorf("output unexpectedly contains %q:\n%s", unwanted, got)
	}
}