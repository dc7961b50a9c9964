// Copyright © 2025 The Carbide authors

package analysis

import (
	"strings"

	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/ingot"
	"github.com/carbidelang/carbide/report"
	"github.com/carbidelang/carbide/source"
)

// ingotResolver binds identifiers inside an inline assembly body against
// the host scope chain. Dialect-local scoping is not modeled here: any
// identifier that resolves to a host declaration is recorded as an external
// reference, unresolvable names stay silent (they are builtins or
// dialect-local), and dialect declarations that would shadow a visible host
// name draw a warning.
type ingotResolver struct {
	table      *SymbolTable
	reporter   *report.Reporter
	annotation *ast.InlineAssemblyAnnotation

	// insideFunction is set while walking an ingot function body, where
	// host locals are out of reach.
	insideFunction bool
}

// resolveIngot runs the dialect sub-resolver over an assembly body.
func (r *Resolver) resolveIngot(asm *ast.InlineAssembly) {
	if asm.Body == nil {
		return
	}
	ir := &ingotResolver{
		table:      r.table,
		reporter:   r.reporter,
		annotation: asm.Annotation(),
	}
	ir.block(asm.Body)
}

func (ir *ingotResolver) block(b *ingot.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		ir.statement(stmt)
	}
}

func (ir *ingotResolver) statement(stmt ingot.Statement) {
	switch stmt := stmt.(type) {
	case *ingot.Block:
		ir.block(stmt)
	case *ingot.FunctionDefinition:
		ir.functionDefinition(stmt)
	case *ingot.VariableDeclaration:
		ir.variableDeclaration(stmt)
	case *ingot.Assignment:
		for _, target := range stmt.VariableNames {
			ir.identifier(target)
		}
		ir.expression(stmt.Value)
	case *ingot.ExpressionStatement:
		ir.expression(stmt.Expression)
	case *ingot.If:
		ir.expression(stmt.Condition)
		ir.block(stmt.Body)
	case *ingot.Switch:
		ir.expression(stmt.Expression)
		for _, c := range stmt.Cases {
			ir.block(c.Body)
		}
	case *ingot.ForLoop:
		ir.block(stmt.Pre)
		ir.expression(stmt.Condition)
		ir.block(stmt.Post)
		ir.block(stmt.Body)
	case *ingot.Break, *ingot.Continue, *ingot.Leave:
	default:
		panic("analysis: unexpected ingot statement")
	}
}

func (ir *ingotResolver) expression(expr ingot.Expression) {
	switch expr := expr.(type) {
	case nil:
	case *ingot.Identifier:
		ir.identifier(expr)
	case *ingot.FunctionCall:
		// The called name is not an external reference: calls bind to
		// builtins or dialect-local functions.
		for _, arg := range expr.Arguments {
			ir.expression(arg)
		}
	case *ingot.Literal:
	default:
		panic("analysis: unexpected ingot expression")
	}
}

func (ir *ingotResolver) functionDefinition(fn *ingot.FunctionDefinition) {
	ir.validateName(fn.Name, fn.Src)
	for _, param := range fn.Parameters {
		ir.validateName(param.Name, param.Src)
	}
	for _, ret := range fn.ReturnVariables {
		ir.validateName(ret.Name, ret.Src)
	}

	wasInsideFunction := ir.insideFunction
	ir.insideFunction = true
	ir.block(fn.Body)
	ir.insideFunction = wasInsideFunction
}

func (ir *ingotResolver) variableDeclaration(decl *ingot.VariableDeclaration) {
	for _, variable := range decl.Variables {
		ir.validateName(variable.Name, variable.Src)

		declarations := ir.table.NameFromCurrentScope(variable.Name)
		if len(declarations) == 0 {
			continue
		}
		secondary := make([]report.SecondaryLocation, 0, len(declarations))
		for _, shadowed := range declarations {
			secondary = append(secondary, report.SecondaryLocation{
				Message:  "The shadowed declaration is here:",
				Location: shadowed.Location(),
			})
		}
		ir.reporter.DeclarationWarning(3859, variable.Src,
			"This declaration shadows a declaration outside the inline assembly block.",
			secondary...)
	}

	if decl.Value != nil {
		ir.expression(decl.Value)
	}
}

// identifier resolves one assembly identifier. Names carrying a ".slot" or
// ".offset" suffix address a storage variable's layout: the suffix is
// stripped before lookup unless the suffixed name itself resolves, in which
// case the identifier is left alone.
func (ir *ingotResolver) identifier(id *ingot.Identifier) {
	isSlot := strings.HasSuffix(id.Name, ".slot")
	isOffset := strings.HasSuffix(id.Name, ".offset")

	declarations := ir.table.NameFromCurrentScope(id.Name)
	if isSlot || isOffset {
		if len(declarations) > 0 {
			// The suffixed name exists in its own right; resolving it as
			// a storage accessor would be ambiguous.
			return
		}
		realName := strings.TrimSuffix(id.Name, ".slot")
		realName = strings.TrimSuffix(realName, ".offset")
		if realName == "" || strings.Contains(realName, ".") {
			// Nothing nameable to look up; dotted prefixes would need
			// path resolution, which storage accessors do not support.
			return
		}
		declarations = ir.table.NameFromCurrentScope(realName)
	}

	if len(declarations) > 1 {
		ir.reporter.FatalDeclarationError(4718, id.Src,
			"Multiple matching identifiers. Resolving overloaded identifiers is not supported.")
		return
	}
	if len(declarations) == 0 {
		if strings.HasSuffix(id.Name, "_slot") || strings.HasSuffix(id.Name, "_offset") {
			ir.reporter.DeclarationError(9467, id.Src,
				"Identifier not found. Use ``.slot`` and ``.offset`` to access storage variables.")
		}
		return
	}

	if variable, ok := declarations[0].(*ast.VariableDeclaration); ok {
		if variable.IsLocalVariable() && ir.insideFunction {
			ir.reporter.DeclarationError(6578, id.Src,
				"Cannot access local Carbide variables from inside an inline assembly function.")
			return
		}
	}

	if ir.annotation.ExternalReferences == nil {
		ir.annotation.ExternalReferences = make(map[*ingot.Identifier]ast.InlineAssemblyReference)
	}
	ir.annotation.ExternalReferences[id] = ast.InlineAssemblyReference{
		Declaration: declarations[0],
		IsSlot:      isSlot,
		IsOffset:    isOffset,
	}
}

// validateName reports dialect-introduced names that collide with the
// storage accessor syntax.
func (ir *ingotResolver) validateName(name string, loc *source.Location) {
	if strings.Contains(name, ".") {
		ir.reporter.DeclarationError(3927, loc,
			"User-defined identifiers in inline assembly cannot contain '.'.")
	}
}
