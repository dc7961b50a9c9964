// Copyright © 2025 The Carbide authors

package analysis

import (
	"fmt"
	"sort"

	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/ingot"
	"github.com/carbidelang/carbide/report"
)

// SymbolTable maps scope-introducing AST nodes to their declaration
// containers and tracks the current scope during a pass. Containers are
// created by the Registrar; the Resolver only moves the current-scope
// pointer along annotations the Registrar wrote.
type SymbolTable struct {
	containers map[ast.Node]*Container
	current    *Container

	warnedBuiltinShadow map[ast.Declaration]bool
}

// NewSymbolTable returns a table holding only the global scope, keyed by
// the nil node. Embedders may pre-populate the global container with
// declarations visible everywhere.
func NewSymbolTable() *SymbolTable {
	global := NewContainer(nil, nil)
	return &SymbolTable{
		containers:          map[ast.Node]*Container{nil: global},
		current:             global,
		warnedBuiltinShadow: make(map[ast.Declaration]bool),
	}
}

// Global returns the root container.
func (t *SymbolTable) Global() *Container { return t.containers[nil] }

// ContainerOf returns the container registered for the given scope node,
// or nil if the node does not introduce a scope.
func (t *SymbolTable) ContainerOf(node ast.Node) *Container { return t.containers[node] }

// enterNewScope creates a container for node nested in the current scope
// and makes it current. Each scope node is registered at most once.
func (t *SymbolTable) enterNewScope(node ast.Node) *Container {
	if _, exists := t.containers[node]; exists {
		panic(fmt.Sprintf("analysis: scope already registered for %T", node))
	}
	container := NewContainer(node, t.current)
	t.containers[node] = container
	t.current = container
	return container
}

// closeCurrentScope moves the current scope to the enclosing container.
func (t *SymbolTable) closeCurrentScope() {
	if t.current.Enclosing == nil {
		panic("analysis: cannot close the global scope")
	}
	t.current = t.current.Enclosing
}

// SetScope makes the container registered for node the current scope. A nil
// node selects the global scope. The node must have been registered.
func (t *SymbolTable) SetScope(node ast.Node) {
	container, ok := t.containers[node]
	if !ok {
		panic(fmt.Sprintf("analysis: no scope registered for %T", node))
	}
	t.current = container
}

// NameFromCurrentScope returns the visible declarations for name, walking
// outward from the current scope. The nearest scope with any match wins;
// multiple results mean the name is overloaded within that scope.
func (t *SymbolTable) NameFromCurrentScope(name string) []ast.Declaration {
	for c := t.current; c != nil; c = c.Enclosing {
		if decls := c.Find(name); len(decls) > 0 {
			return decls
		}
	}
	return nil
}

// PathFromCurrentScope resolves a dotted path: the first segment from the
// current scope chain, each following segment inside the scope of the
// declaration found so far. It returns nil when any step finds no match or
// more than one.
func (t *SymbolTable) PathFromCurrentScope(path []string) ast.Declaration {
	if len(path) == 0 {
		return nil
	}
	candidates := t.NameFromCurrentScope(path[0])
	for _, segment := range path[1:] {
		if len(candidates) != 1 {
			return nil
		}
		inner := t.containers[candidates[0]]
		if inner == nil {
			return nil
		}
		candidates = inner.Find(segment)
	}
	if len(candidates) != 1 {
		return nil
	}
	return candidates[0]
}

// ActivateVariable makes the named inactive declarations of the current
// scope visible. Unnamed declarations are ignored.
func (t *SymbolTable) ActivateVariable(name string) {
	if name == "" {
		return
	}
	t.current.Activate(name)
}

// SimilarNameSuggestions renders a "did you mean" alternative list for an
// unresolved name, drawn from registered names near it in edit distance.
// The result is empty when nothing is close enough.
func (t *SymbolTable) SimilarNameSuggestions(name string) string {
	return quotedAlternatives(t.current.SimilarNames(name))
}

// WarnNamesLikeBuiltins warns once per declaration when a declaration
// visible from the current scope carries the name of a low-level builtin.
// Inline assembly entry calls this so the collision is flagged where it can
// bite.
func (t *SymbolTable) WarnNamesLikeBuiltins(reporter *report.Reporter) {
	for c := t.current; c != nil; c = c.Enclosing {
		names := make([]string, 0, len(c.declarations))
		for name := range c.declarations {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !ingot.IsBuiltin(name) {
				continue
			}
			for _, decl := range c.declarations[name] {
				if t.warnedBuiltinShadow[decl] {
					continue
				}
				t.warnedBuiltinShadow[decl] = true
				reporter.DeclarationWarning(2319, decl.Location(),
					"This declaration shadows a low-level builtin of the same name.")
			}
		}
	}
}

// Names returns every name registered anywhere in the table, sorted.
// Interactive tooling uses it for completion.
func (t *SymbolTable) Names() []string {
	seen := make(map[string]bool)
	for _, c := range t.containers {
		for name := range c.declarations {
			seen[name] = true
		}
		for name := range c.inactive {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
