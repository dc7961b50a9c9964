// Copyright © 2025 The Carbide authors

// Package source describes locations in carbide source streams.
//
// Locations are produced by the parser and threaded through every AST node
// so that analysis passes can report diagnostics against the original text.
package source

import "fmt"

// Location identifies a region of a source stream.  Pos is a byte offset
// within the stream.  Line and Col are 1-based when tracked and 0 when the
// producing stream did not track them.  EndCol marks the column one past the
// last character of the region and may be 0 when unknown.
type Location struct {
	File   string `json:"file"` // a name representing the source stream
	Pos    int    `json:"pos,omitempty"`
	Line   int    `json:"line,omitempty"`
	Col    int    `json:"col,omitempty"`
	EndCol int    `json:"endCol,omitempty"`
}

func (loc *Location) String() string {
	switch {
	case loc == nil:
		return "<unknown>"
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// IsValid reports whether the location carries usable position data.
func (loc *Location) IsValid() bool {
	return loc != nil && (loc.Line > 0 || loc.Pos > 0)
}

// LocationError decorates an error with the location that produced it.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
