// Copyright © 2025 The Carbide authors

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/asttest"
)

func TestContainer_RegisterFind(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	c := NewContainer(nil, nil)

	v := b.Var("x", "uint256")
	require.Nil(t, c.Register(v, false))

	decls := c.Find("x")
	require.Len(t, decls, 1)
	assert.Same(t, v, decls[0])
	assert.Empty(t, c.Find("y"))
}

func TestContainer_FunctionsOverload(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	c := NewContainer(nil, nil)

	f1 := b.Function("f", nil, nil, nil)
	f2 := b.Function("f", nil, nil, nil)
	require.Nil(t, c.Register(f1, false))
	require.Nil(t, c.Register(f2, false))

	assert.Len(t, c.Find("f"), 2)
}

func TestContainer_Conflicts(t *testing.T) {
	b := asttest.NewBuilder("test.crb")

	tests := []struct {
		name   string
		first  ast.Declaration
		second ast.Declaration
	}{
		{"variable then variable", b.Var("a", "uint256"), b.Var("a", "uint256")},
		{"variable then function", b.Var("b", "uint256"), b.Function("b", nil, nil, nil)},
		{"function then variable", b.Function("c", nil, nil, nil), b.Var("c", "uint256")},
		{"contract then struct", b.Contract("D"), b.Struct("D")},
		{"modifier then modifier", b.Modifier("e", nil, nil), b.Modifier("e", nil, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContainer(nil, nil)
			require.Nil(t, c.Register(tt.first, false))
			conflict := c.Register(tt.second, false)
			assert.Same(t, tt.first, conflict)
			// The failed registration leaves the container unchanged.
			require.Len(t, c.Find(tt.first.DeclarationName()), 1)
			assert.Same(t, tt.first, c.Find(tt.first.DeclarationName())[0])
		})
	}
}

func TestContainer_InactiveUntilActivated(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	c := NewContainer(nil, nil)

	v := b.Var("x", "uint256")
	require.Nil(t, c.Register(v, true))
	assert.Empty(t, c.Find("x"), "inactive declarations are invisible")

	c.Activate("x")
	require.Len(t, c.Find("x"), 1)
	assert.Same(t, v, c.Find("x")[0])

	// Activating again is harmless.
	c.Activate("x")
	assert.Len(t, c.Find("x"), 1)
}

func TestContainer_InactiveStillConflicts(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	c := NewContainer(nil, nil)

	v := b.Var("x", "uint256")
	require.Nil(t, c.Register(v, true))

	conflict := c.Register(b.Var("x", "uint256"), false)
	assert.Same(t, v, conflict)
}

func TestContainer_SimilarNames(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	outer := NewContainer(nil, nil)
	inner := NewContainer(nil, outer)

	require.Nil(t, outer.Register(b.Var("supply", "uint256"), false))
	require.Nil(t, outer.Register(b.Var("owner", "address"), false))
	require.Nil(t, inner.Register(b.Var("suply", "uint256"), false))

	// Nearer scopes come first; each scope's names are sorted.
	assert.Equal(t, []string{"suply", "supply"}, inner.SimilarNames("suplly"))
	assert.Equal(t, []string{"supply"}, outer.SimilarNames("suplly"))
	assert.Empty(t, inner.SimilarNames("unrelated"))
}

func TestContainer_SimilarNamesIncludesInactive(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	c := NewContainer(nil, nil)

	require.Nil(t, c.Register(b.Var("pending", "uint256"), true))

	// An exact hit on an inactive name is what produces the
	// not-yet-visible wording upstream.
	assert.Equal(t, []string{"pending"}, c.SimilarNames("pending"))
}
