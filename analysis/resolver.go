// Copyright © 2025 The Carbide authors

package analysis

import (
	"fmt"
	"strings"

	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/docstring"
	"github.com/carbidelang/carbide/report"
)

// Resolver is the reference resolution pass. It walks a registered tree,
// switching the symbol table's current scope along the way, and writes
// binding outcomes into node annotations. Visit never unwinds on a fatal
// diagnostic: the offending node's remaining work is skipped while scope
// restoration in EndVisit always runs, so sibling subtrees resolve
// normally.
type Resolver struct {
	table    *SymbolTable
	reporter *report.Reporter

	// resolveInsideCode gates descent into executable statements.
	resolveInsideCode bool

	// returnParameters carries the return parameter list of the enclosing
	// function for Return statements. Modifiers push nil: a return inside
	// a modifier body has no parameters to bind.
	returnParameters []*ast.ParameterList

	profiler    Profiler
	profileEnds []func()
}

// NewResolver returns a resolver reading scopes from table and reporting
// into reporter. The tree handed to Resolve must have been registered on
// the same table.
func NewResolver(table *SymbolTable, reporter *report.Reporter, cfg *Config) *Resolver {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Resolver{
		table:             table,
		reporter:          reporter,
		resolveInsideCode: !cfg.DeclarationsOnly,
		profiler:          cfg.Profiler,
	}
}

// Resolve runs the pass over the tree rooted at root. It reports whether
// the pass added no error-severity diagnostics; earlier diagnostics on the
// reporter do not count against it.
func (r *Resolver) Resolve(root ast.Node) bool {
	watcher := r.reporter.Watch()
	ast.Walk(r, root)
	return watcher.Ok()
}

// Visit implements ast.Visitor.
func (r *Resolver) Visit(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.SourceUnit:
		r.table.SetScope(n)
	case *ast.ContractDefinition:
		r.profileStart(n)
		r.table.SetScope(n)
	case *ast.StructDefinition:
		r.table.SetScope(n)
	case *ast.FunctionDefinition:
		r.profileStart(n)
		r.table.SetScope(n)
		r.returnParameters = append(r.returnParameters, n.ReturnParameters)
		if n.Documentation != nil {
			r.resolveInheritdoc(n.Documentation, func(c *ast.ContractDefinition) {
				n.Annotation().InheritdocReference = c
			})
		}
	case *ast.ModifierDefinition:
		r.profileStart(n)
		r.table.SetScope(n)
		r.returnParameters = append(r.returnParameters, nil)
		if n.Documentation != nil {
			r.resolveInheritdoc(n.Documentation, func(c *ast.ContractDefinition) {
				n.Annotation().InheritdocReference = c
			})
		}
	case *ast.VariableDeclaration:
		if n.Documentation != nil {
			r.resolveInheritdoc(n.Documentation, func(c *ast.ContractDefinition) {
				n.Annotation().InheritdocReference = c
			})
		}
	case *ast.Block:
		if !r.resolveInsideCode {
			return false
		}
		r.table.SetScope(n)
	case *ast.ForStatement:
		if !r.resolveInsideCode {
			return false
		}
		r.table.SetScope(n)
	case *ast.TryCatchClause:
		if !r.resolveInsideCode {
			return false
		}
		r.table.SetScope(n)
	case *ast.Return:
		if len(r.returnParameters) == 0 {
			panic("analysis: return statement outside of a callable body")
		}
		n.Annotation().FunctionReturnParameters = r.returnParameters[len(r.returnParameters)-1]
	case *ast.Identifier:
		r.resolveIdentifier(n)
		return false
	case *ast.IdentifierPath:
		// Resolved in EndVisit.
		return false
	case *ast.InlineAssembly:
		r.table.WarnNamesLikeBuiltins(r.reporter)
		r.resolveIngot(n)
		return false
	}
	return true
}

// EndVisit implements ast.Visitor.
func (r *Resolver) EndVisit(n ast.Node) {
	switch n := n.(type) {
	case *ast.SourceUnit:
		r.table.SetScope(n.Annotation().Scope)
	case *ast.ContractDefinition:
		r.table.SetScope(n.Annotation().Scope)
		r.profileEnd()
	case *ast.StructDefinition:
		r.table.SetScope(n.Annotation().Scope)
	case *ast.FunctionDefinition:
		r.popReturnParameters()
		r.table.SetScope(n.Annotation().Scope)
		r.profileEnd()
	case *ast.ModifierDefinition:
		r.popReturnParameters()
		r.table.SetScope(n.Annotation().Scope)
		r.profileEnd()
	case *ast.Block:
		if !r.resolveInsideCode {
			return
		}
		r.table.SetScope(n.Annotation().Scope)
	case *ast.ForStatement:
		if !r.resolveInsideCode {
			return
		}
		r.table.SetScope(n.Annotation().Scope)
	case *ast.TryCatchClause:
		if !r.resolveInsideCode {
			return
		}
		r.table.SetScope(n.Annotation().Scope)
	case *ast.VariableDeclarationStatement:
		if !r.resolveInsideCode {
			return
		}
		for _, decl := range n.Declarations {
			if decl != nil {
				r.table.ActivateVariable(decl.Name)
			}
		}
	case *ast.IdentifierPath:
		r.resolveIdentifierPath(n)
	}
}

// resolveIdentifier binds a bare identifier use. Exactly one match is
// recorded as the referenced declaration; several matches are recorded as
// candidates for a later disambiguation stage; no match reports an error
// augmented with a spelling suggestion, worded for the declared-but-not-
// yet-visible case when the name itself is the only suggestion.
func (r *Resolver) resolveIdentifier(n *ast.Identifier) {
	declarations := r.table.NameFromCurrentScope(n.Name)
	switch {
	case len(declarations) == 0:
		message := "Undeclared identifier."
		if suggestions := r.table.SimilarNameSuggestions(n.Name); suggestions != "" {
			if suggestions == `"`+n.Name+`"` {
				message += " " + suggestions + " is not (or not yet) visible at this point."
			} else {
				message += " Did you mean " + suggestions + "?"
			}
		}
		r.reporter.DeclarationError(7576, n.Location(), message)
	case len(declarations) == 1:
		n.Annotation().ReferencedDeclaration = declarations[0]
	default:
		n.Annotation().CandidateDeclarations = declarations
	}
}

// resolveIdentifierPath binds a dotted type reference. A path that does not
// resolve to exactly one declaration is fatal for the node: type analysis
// cannot continue from a malformed reference.
func (r *Resolver) resolveIdentifierPath(n *ast.IdentifierPath) {
	declaration := r.table.PathFromCurrentScope(n.Path)
	if declaration == nil {
		r.reporter.FatalDeclarationError(7920, n.Location(), "Identifier not found or not unique.")
		return
	}
	n.Annotation().ReferencedDeclaration = declaration
}

// resolveInheritdoc binds an @inheritdoc tag in a declaration's
// documentation to the contract it names. The tag's content is a dotted
// path resolved from the current scope.
func (r *Resolver) resolveInheritdoc(doc *ast.StructuredDocumentation, bind func(*ast.ContractDefinition)) {
	tags := docstring.Parse(doc.Text)
	switch tags.Count(docstring.TagInheritdoc) {
	case 0:
	case 1:
		name := tags.Content(docstring.TagInheritdoc)
		declaration := r.table.PathFromCurrentScope(strings.Split(name, "."))
		if declaration == nil {
			r.reporter.DocstringParsingError(9397, doc.Location(),
				fmt.Sprintf("Documentation tag @inheritdoc references inexistent contract %q.", name))
			return
		}
		contract, ok := declaration.(*ast.ContractDefinition)
		if !ok {
			r.reporter.DocstringParsingError(1430, doc.Location(),
				fmt.Sprintf("Documentation tag @inheritdoc reference %q is not a contract.", name))
			return
		}
		bind(contract)
	default:
		r.reporter.DocstringParsingError(5142, doc.Location(),
			"Documentation tag @inheritdoc can only be given once.")
	}
}

func (r *Resolver) popReturnParameters() {
	if len(r.returnParameters) == 0 {
		panic("analysis: return parameter stack underflow")
	}
	r.returnParameters = r.returnParameters[:len(r.returnParameters)-1]
}

func (r *Resolver) profileStart(decl ast.Declaration) {
	if r.profiler == nil {
		return
	}
	r.profileEnds = append(r.profileEnds, r.profiler.Start(decl))
}

func (r *Resolver) profileEnd() {
	if r.profiler == nil {
		return
	}
	end := r.profileEnds[len(r.profileEnds)-1]
	r.profileEnds = r.profileEnds[:len(r.profileEnds)-1]
	end()
}
