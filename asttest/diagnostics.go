// Copyright © 2025 The Carbide authors

package asttest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbidelang/carbide/report"
)

// FindDiagnostic returns the first diagnostic carrying the given code, or
// nil.
func FindDiagnostic(diags []*report.Error, id report.ID) *report.Error {
	for _, d := range diags {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Codes returns the diagnostic codes in report order.
func Codes(diags []*report.Error) []report.ID {
	ids := make([]report.ID, len(diags))
	for i, d := range diags {
		ids[i] = d.ID
	}
	return ids
}

// RequireDiagnostic fails the test unless diags contains a diagnostic with
// the given code whose message contains the given fragment. It returns the
// matching diagnostic.
func RequireDiagnostic(t *testing.T, diags []*report.Error, id report.ID, contains string) *report.Error {
	t.Helper()
	d := FindDiagnostic(diags, id)
	require.NotNilf(t, d, "no %s diagnostic in %v", id, Codes(diags))
	assert.Contains(t, d.Message, contains)
	return d
}

// AssertNoDiagnostics fails the test when diags is not empty.
func AssertNoDiagnostics(t *testing.T, diags []*report.Error) {
	t.Helper()
	assert.Emptyf(t, diags, "unexpected diagnostics: %v", Codes(diags))
}
