// Copyright © 2025 The Carbide authors

package analysis

import (
	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/report"
)

// Registrar is the registration pre-pass. It creates one container per
// scope-introducing node, writes each such node's enclosing scope into its
// annotation, and registers every named declaration in the container that
// encloses it. Local variables declared in statement scopes are registered
// inactive; they become visible when their declaration statement completes
// during resolution.
type Registrar struct {
	table    *SymbolTable
	reporter *report.Reporter
}

// NewRegistrar returns a registrar writing into table and reporter.
func NewRegistrar(table *SymbolTable, reporter *report.Reporter) *Registrar {
	return &Registrar{table: table, reporter: reporter}
}

// Register walks the tree rooted at root. A tree must be registered exactly
// once per table; registering it again reports spurious redeclarations.
func (g *Registrar) Register(root ast.Node) {
	ast.Walk(g, root)
}

// Visit implements ast.Visitor.
func (g *Registrar) Visit(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.SourceUnit:
		n.Annotation().Scope = g.table.current.Node
		g.table.enterNewScope(n)
	case *ast.ContractDefinition:
		n.Annotation().Scope = g.table.current.Node
		declare(g.table.current, n, false, g.reporter)
		g.table.enterNewScope(n)
	case *ast.StructDefinition:
		n.Annotation().Scope = g.table.current.Node
		declare(g.table.current, n, false, g.reporter)
		g.table.enterNewScope(n)
	case *ast.FunctionDefinition:
		n.Annotation().Scope = g.table.current.Node
		declare(g.table.current, n, false, g.reporter)
		g.table.enterNewScope(n)
	case *ast.ModifierDefinition:
		n.Annotation().Scope = g.table.current.Node
		declare(g.table.current, n, false, g.reporter)
		g.table.enterNewScope(n)
	case *ast.VariableDeclaration:
		n.Annotation().Scope = g.table.current.Node
		declare(g.table.current, n, g.inStatementScope(), g.reporter)
	case *ast.Block:
		n.Annotation().Scope = g.table.current.Node
		g.table.enterNewScope(n)
	case *ast.ForStatement:
		n.Annotation().Scope = g.table.current.Node
		g.table.enterNewScope(n)
	case *ast.TryCatchClause:
		n.Annotation().Scope = g.table.current.Node
		g.table.enterNewScope(n)
	}
	return true
}

// EndVisit implements ast.Visitor.
func (g *Registrar) EndVisit(n ast.Node) {
	switch n.(type) {
	case *ast.SourceUnit, *ast.ContractDefinition, *ast.StructDefinition,
		*ast.FunctionDefinition, *ast.ModifierDefinition,
		*ast.Block, *ast.ForStatement, *ast.TryCatchClause:
		g.table.closeCurrentScope()
	}
}

// inStatementScope reports whether the current scope registers variables
// inactive. Parameters (function, modifier, and catch-clause scopes) are
// active from the start; only statement-scope locals wait for activation.
func (g *Registrar) inStatementScope() bool {
	switch g.table.current.Node.(type) {
	case *ast.Block, *ast.ForStatement:
		return true
	default:
		return false
	}
}

// declare registers decl in container, reporting a redeclaration error with
// the previous declaration's location when the name is already taken.
// Unnamed declarations are scoped but never registered.
func declare(container *Container, decl ast.Declaration, inactive bool, reporter *report.Reporter) {
	if decl.DeclarationName() == "" {
		return
	}
	conflict := container.Register(decl, inactive)
	if conflict == nil {
		return
	}
	reporter.DeclarationError(2333, decl.Location(), "Identifier already declared.",
		report.SecondaryLocation{
			Message:  "The previous declaration is here:",
			Location: conflict.Location(),
		})
}
