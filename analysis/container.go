// Copyright © 2025 The Carbide authors

package analysis

import (
	"sort"

	"github.com/carbidelang/carbide/ast"
)

// Container holds the declarations registered under a single scope node.
// Registration distinguishes active declarations from inactive ones: a local
// variable is registered inactive and only becomes visible to lookups once
// the statement declaring it completes.
type Container struct {
	// Node is the scope-introducing AST node, nil for the global scope.
	Node ast.Node

	// Enclosing is the container of the surrounding scope, nil at the root.
	Enclosing *Container

	declarations map[string][]ast.Declaration
	inactive     map[string][]ast.Declaration
}

// NewContainer creates an empty container for the given scope node.
func NewContainer(node ast.Node, enclosing *Container) *Container {
	return &Container{
		Node:         node,
		Enclosing:    enclosing,
		declarations: make(map[string][]ast.Declaration),
		inactive:     make(map[string][]ast.Declaration),
	}
}

// Register adds a declaration under its name. When inactive is set the
// declaration is withheld from Find until Activate is called for its name.
// On an illegal redeclaration nothing is registered and the previously
// registered declaration is returned.
func (c *Container) Register(decl ast.Declaration, inactive bool) ast.Declaration {
	name := decl.DeclarationName()
	if conflict := c.conflicting(name, decl); conflict != nil {
		return conflict
	}
	if inactive {
		c.inactive[name] = append(c.inactive[name], decl)
	} else {
		c.declarations[name] = append(c.declarations[name], decl)
	}
	return nil
}

// conflicting returns the declaration that makes registering decl under name
// illegal, or nil. Functions may overload each other; every other pairing
// conflicts.
func (c *Container) conflicting(name string, decl ast.Declaration) ast.Declaration {
	check := func(existing []ast.Declaration) ast.Declaration {
		for _, prev := range existing {
			if prev.DeclarationKind() == ast.DeclFunction && decl.DeclarationKind() == ast.DeclFunction {
				continue
			}
			return prev
		}
		return nil
	}
	if prev := check(c.declarations[name]); prev != nil {
		return prev
	}
	return check(c.inactive[name])
}

// Activate makes the inactive declarations registered under name visible.
func (c *Container) Activate(name string) {
	decls, ok := c.inactive[name]
	if !ok {
		return
	}
	delete(c.inactive, name)
	c.declarations[name] = append(c.declarations[name], decls...)
}

// Find returns the visible declarations for name in this container only.
func (c *Container) Find(name string) []ast.Declaration {
	return c.declarations[name]
}

// SimilarNames collects registered names within a small edit distance of
// name, walking the enclosing chain. Inactive names are included, which is
// what lets an exact match signal a not-yet-visible declaration. Names from
// one container are sorted; nearer scopes come first.
func (c *Container) SimilarNames(name string) []string {
	var similar []string
	for scope := c; scope != nil; scope = scope.Enclosing {
		var local []string
		for declared := range scope.declarations {
			if withinDistance(name, declared, maximumEditDistance) {
				local = append(local, declared)
			}
		}
		for declared := range scope.inactive {
			if withinDistance(name, declared, maximumEditDistance) {
				local = append(local, declared)
			}
		}
		sort.Strings(local)
		similar = append(similar, local...)
	}
	return similar
}
