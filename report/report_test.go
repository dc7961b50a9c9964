// Copyright © 2025 The Carbide authors

package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbidelang/carbide/source"
)

func TestID_String(t *testing.T) {
	assert.Equal(t, "E7576", ID(7576).String())
	assert.Equal(t, "E0042", ID(42).String())
}

func TestReporter_HasErrors(t *testing.T) {
	r := NewReporter()
	assert.False(t, r.HasErrors())

	r.DeclarationWarning(3859, nil, "shadowing")
	assert.False(t, r.HasErrors(), "warnings are not errors")

	r.DeclarationError(7576, nil, "Undeclared identifier.")
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Diagnostics(), 2)
}

func TestReporter_Watch(t *testing.T) {
	r := NewReporter()
	r.DeclarationError(7576, nil, "before")

	w := r.Watch()
	assert.True(t, w.Ok(), "watcher ignores errors reported before it")

	r.DeclarationWarning(3859, nil, "shadowing")
	assert.True(t, w.Ok(), "warnings do not trip the watcher")

	r.FatalDeclarationError(7920, nil, "Identifier not found or not unique.")
	assert.False(t, w.Ok())
}

func TestReporter_Categories(t *testing.T) {
	r := NewReporter()
	r.DeclarationError(7576, nil, "a")
	r.DocstringParsingError(5142, nil, "b")
	r.FatalDeclarationError(7920, nil, "c")

	diags := r.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, CategoryDeclaration, diags[0].Category)
	assert.False(t, diags[0].Fatal)
	assert.Equal(t, CategoryDocstring, diags[1].Category)
	assert.True(t, diags[2].Fatal)
}

func TestError_String(t *testing.T) {
	loc := &source.Location{File: "token.cb", Line: 8, Col: 5}
	e := &Error{
		ID:       7576,
		Severity: SeverityError,
		Message:  "Undeclared identifier.",
		Location: loc,
	}
	assert.Equal(t, "token.cb:8:5: error[E7576]: Undeclared identifier.", e.String())

	e = &Error{
		ID:       3859,
		Severity: SeverityWarning,
		Message:  "This declaration shadows a declaration outside the inline assembly block.",
		Location: loc,
		Secondary: []SecondaryLocation{{
			Message:  "The shadowed declaration is here:",
			Location: &source.Location{File: "token.cb", Line: 3, Col: 9},
		}},
	}
	assert.Equal(t,
		"token.cb:8:5: warning[E3859]: This declaration shadows a declaration outside the inline assembly block.\n"+
			"  = note: The shadowed declaration is here: token.cb:3:9",
		e.String())

	e = &Error{ID: 7576, Severity: SeverityError, Message: "no location"}
	assert.Equal(t, "error[E7576]: no location", e.String())
}

func TestError_JSON(t *testing.T) {
	e := &Error{
		ID:       7920,
		Category: CategoryDeclaration,
		Severity: SeverityError,
		Fatal:    true,
		Message:  "Identifier not found or not unique.",
		Location: &source.Location{File: "token.cb", Line: 4, Col: 12},
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, float64(7920), obj["code"])
	assert.Equal(t, "declaration", obj["category"])
	assert.Equal(t, "error", obj["severity"])
	assert.Equal(t, true, obj["fatal"])

	// Unset severity marshals as error.
	data, err = json.Marshal(&Error{ID: 1, Message: "m"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "error", obj["severity"])

	var sev Severity
	require.NoError(t, json.Unmarshal([]byte(`"warning"`), &sev))
	assert.Equal(t, SeverityWarning, sev)
	assert.Error(t, json.Unmarshal([]byte(`"catastrophic"`), &sev))
}
