// Copyright © 2025 The Carbide authors

package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationString(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil", nil, "<unknown>"},
		{"offset only", &Location{File: "a.crb", Pos: 12}, "a.crb[12]"},
		{"line only", &Location{File: "a.crb", Pos: 12, Line: 3}, "a.crb:3"},
		{"line and col", &Location{File: "a.crb", Pos: 12, Line: 3, Col: 7}, "a.crb:3:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestLocationError(t *testing.T) {
	base := errors.New("boom")
	err := &LocationError{Err: base, Source: &Location{File: "a.crb", Line: 2, Col: 1}}
	assert.Equal(t, "a.crb:2:1: boom", err.Error())
	assert.True(t, errors.Is(err, base))
}
