package profiler

import (
	"testing"

	"github.com/carbidelang/carbide/asttest"
	"github.com/stretchr/testify/assert"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "empty",
			label:    "",
			expected: "",
		},
		{
			name:     "normal",
			label:    "@trace{ Fast-Path }",
			expected: "Fast-Path",
		},
		{
			name:     "space before brace",
			label:    "@trace { settle }",
			expected: "settle",
		},
		{
			name:     "spaces",
			label:    "@trace{Fast  Path}",
			expected: "Fast_Path",
		},
		{
			name:     "no braces",
			label:    "@trace",
			expected: "",
		},
		{
			name:     "other tags",
			label:    "@notice Transfers tokens.\n@trace{ transfer }",
			expected: "transfer",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := cleanLabel(tc.label)
			assert.Equal(t, tc.expected, actual, "cleanLabel(%s)", tc.label)
		})
	}
}

func TestDocLabeler(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	fn := b.Function("settle", nil, nil, nil)
	fn.Documentation = b.Doc("@trace { fast path }")
	assert.Equal(t, "fast_path", docLabeler(fn))
	assert.Equal(t, "", docLabeler(b.Function("peek", nil, nil, nil)))
}

func TestDocSkipFilter(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	traced := b.Function("settle", nil, nil, nil)
	traced.Documentation = b.Doc("@notice Settles accounts.\n@trace")
	plain := b.Function("peek", nil, nil, nil)
	plain.Documentation = b.Doc("@notice Reads a balance.")

	assert.False(t, docSkipFilter(traced))
	assert.True(t, docSkipFilter(plain))
	assert.True(t, docSkipFilter(b.Function("bare", nil, nil, nil)), "no documentation")
	assert.True(t, docSkipFilter(b.Contract("Ledger")), "contracts carry no documentation")
}
