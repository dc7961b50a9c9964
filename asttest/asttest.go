// Copyright © 2025 The Carbide authors

// Package asttest builds syntax trees for tests.
//
// Analysis input must carry unique node ids and source locations; the
// Builder assigns both so fixtures stay terse. Nodes are laid out one per
// line of a synthetic file, in construction order, which keeps diagnostic
// locations stable and easy to assert against.
package asttest

import (
	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/ingot"
	"github.com/carbidelang/carbide/source"
)

// Builder constructs AST nodes with sequentially assigned ids and
// locations.
type Builder struct {
	file string
	next int64
}

// NewBuilder returns a builder placing nodes in the named synthetic file.
func NewBuilder(file string) *Builder {
	return &Builder{file: file}
}

func (b *Builder) loc() *source.Location {
	return &source.Location{
		File: b.file,
		Pos:  int(b.next),
		Line: int(b.next),
		Col:  1,
	}
}

func (b *Builder) base() ast.Base {
	b.next++
	return ast.Base{ID: b.next, Src: b.loc()}
}

// SourceUnit wraps top-level nodes into a file root.
func (b *Builder) SourceUnit(nodes ...ast.Node) *ast.SourceUnit {
	return &ast.SourceUnit{Base: b.base(), Nodes: nodes}
}

// Pragma builds a pragma directive.
func (b *Builder) Pragma(literals ...string) *ast.PragmaDirective {
	return &ast.PragmaDirective{Base: b.base(), Literals: literals}
}

// Contract builds a contract definition.
func (b *Builder) Contract(name string, nodes ...ast.Node) *ast.ContractDefinition {
	return &ast.ContractDefinition{
		Base:         b.base(),
		Name:         name,
		ContractKind: ast.KindContract,
		Nodes:        nodes,
	}
}

// Library builds a library definition.
func (b *Builder) Library(name string, nodes ...ast.Node) *ast.ContractDefinition {
	c := b.Contract(name, nodes...)
	c.ContractKind = ast.KindLibrary
	return c
}

// Struct builds a struct definition.
func (b *Builder) Struct(name string, members ...*ast.VariableDeclaration) *ast.StructDefinition {
	return &ast.StructDefinition{Base: b.base(), Name: name, Members: members}
}

// Function builds a function definition. Any argument may be nil.
func (b *Builder) Function(name string, params, returns *ast.ParameterList, body *ast.Block) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		Base:             b.base(),
		Name:             name,
		Parameters:       params,
		ReturnParameters: returns,
		Body:             body,
	}
}

// Modifier builds a modifier definition.
func (b *Builder) Modifier(name string, params *ast.ParameterList, body *ast.Block) *ast.ModifierDefinition {
	return &ast.ModifierDefinition{
		Base:       b.base(),
		Name:       name,
		Parameters: params,
		Body:       body,
	}
}

// Params groups variables into a parameter list.
func (b *Builder) Params(vars ...*ast.VariableDeclaration) *ast.ParameterList {
	return &ast.ParameterList{Base: b.base(), Parameters: vars}
}

// Var builds a variable declaration with an elementary type.
func (b *Builder) Var(name, typeName string) *ast.VariableDeclaration {
	v := &ast.VariableDeclaration{Base: b.base(), Name: name}
	v.TypeName = b.ElementaryType(typeName)
	return v
}

// TypedVar builds a variable declaration with the given type node.
func (b *Builder) TypedVar(name string, typeName ast.Node) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Base: b.base(), Name: name, TypeName: typeName}
}

// ElementaryType builds a builtin type name.
func (b *Builder) ElementaryType(name string) *ast.ElementaryTypeName {
	return &ast.ElementaryTypeName{Base: b.base(), Name: name}
}

// Doc builds a structured documentation node.
func (b *Builder) Doc(text string) *ast.StructuredDocumentation {
	return &ast.StructuredDocumentation{Base: b.base(), Text: text}
}

// Block groups statements into a lexical scope.
func (b *Builder) Block(stmts ...ast.Node) *ast.Block {
	return &ast.Block{Base: b.base(), Statements: stmts}
}

// DeclStmt builds a variable declaration statement. Nil declarations stand
// for tuple gaps.
func (b *Builder) DeclStmt(value ast.Node, decls ...*ast.VariableDeclaration) *ast.VariableDeclarationStatement {
	return &ast.VariableDeclarationStatement{
		Base:         b.base(),
		Declarations: decls,
		InitialValue: value,
	}
}

// ExprStmt wraps an expression in a statement.
func (b *Builder) ExprStmt(expr ast.Node) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Base: b.base(), Expression: expr}
}

// Return builds a return statement; expr may be nil.
func (b *Builder) Return(expr ast.Node) *ast.Return {
	return &ast.Return{Base: b.base(), Expression: expr}
}

// For builds a for statement. Any argument may be nil.
func (b *Builder) For(init, cond, post, body ast.Node) *ast.ForStatement {
	return &ast.ForStatement{Base: b.base(), Init: init, Condition: cond, Post: post, Body: body}
}

// While builds a while statement.
func (b *Builder) While(cond, body ast.Node) *ast.WhileStatement {
	return &ast.WhileStatement{Base: b.base(), Condition: cond, Body: body}
}

// If builds an if statement; falseBody may be nil.
func (b *Builder) If(cond, trueBody, falseBody ast.Node) *ast.IfStatement {
	return &ast.IfStatement{Base: b.base(), Condition: cond, TrueBody: trueBody, FalseBody: falseBody}
}

// Try builds a try statement over the given clauses.
func (b *Builder) Try(call ast.Node, clauses ...*ast.TryCatchClause) *ast.TryStatement {
	return &ast.TryStatement{Base: b.base(), ExternalCall: call, Clauses: clauses}
}

// Clause builds a try clause; errorName is empty for the success clause.
func (b *Builder) Clause(errorName string, params *ast.ParameterList, block *ast.Block) *ast.TryCatchClause {
	return &ast.TryCatchClause{Base: b.base(), ErrorName: errorName, Parameters: params, Block: block}
}

// Ident builds an identifier use.
func (b *Builder) Ident(name string) *ast.Identifier {
	return &ast.Identifier{Base: b.base(), Name: name}
}

// Path builds a dotted type reference.
func (b *Builder) Path(segments ...string) *ast.IdentifierPath {
	return &ast.IdentifierPath{Base: b.base(), Path: segments}
}

// Call builds a function call expression.
func (b *Builder) Call(callee ast.Node, args ...ast.Node) *ast.FunctionCall {
	return &ast.FunctionCall{Base: b.base(), Expression: callee, Arguments: args}
}

// Binary builds an infix expression.
func (b *Builder) Binary(left ast.Node, op string, right ast.Node) *ast.BinaryOperation {
	return &ast.BinaryOperation{Base: b.base(), Left: left, Operator: op, Right: right}
}

// Assign builds an assignment expression.
func (b *Builder) Assign(lhs ast.Node, rhs ast.Node) *ast.Assignment {
	return &ast.Assignment{Base: b.base(), LeftHandSide: lhs, Operator: "=", RightHandSide: rhs}
}

// Number builds a number literal.
func (b *Builder) Number(value string) *ast.Literal {
	return &ast.Literal{Base: b.base(), Kind: "number", Value: value}
}

// Assembly builds an inline assembly node around an ingot body.
func (b *Builder) Assembly(body *ingot.Block) *ast.InlineAssembly {
	return &ast.InlineAssembly{Base: b.base(), Body: body}
}

// --- ingot nodes ---

func (b *Builder) ingotBase() ingot.Base {
	b.next++
	return ingot.Base{Src: b.loc()}
}

// IngotBlock groups ingot statements.
func (b *Builder) IngotBlock(stmts ...ingot.Statement) *ingot.Block {
	return &ingot.Block{Base: b.ingotBase(), Statements: stmts}
}

// IngotName builds a declared ingot name.
func (b *Builder) IngotName(name string) ingot.TypedName {
	b.next++
	return ingot.TypedName{Name: name, Src: b.loc()}
}

// IngotFunction builds an ingot function definition.
func (b *Builder) IngotFunction(name string, params, returns []ingot.TypedName, body *ingot.Block) *ingot.FunctionDefinition {
	return &ingot.FunctionDefinition{
		Base:            b.ingotBase(),
		Name:            name,
		Parameters:      params,
		ReturnVariables: returns,
		Body:            body,
	}
}

// IngotDecl builds an ingot variable declaration; value may be nil.
func (b *Builder) IngotDecl(value ingot.Expression, names ...ingot.TypedName) *ingot.VariableDeclaration {
	return &ingot.VariableDeclaration{Base: b.ingotBase(), Variables: names, Value: value}
}

// IngotAssign builds an ingot assignment.
func (b *Builder) IngotAssign(value ingot.Expression, targets ...*ingot.Identifier) *ingot.Assignment {
	return &ingot.Assignment{Base: b.ingotBase(), VariableNames: targets, Value: value}
}

// IngotExprStmt wraps an ingot expression in a statement.
func (b *Builder) IngotExprStmt(expr ingot.Expression) *ingot.ExpressionStatement {
	return &ingot.ExpressionStatement{Base: b.ingotBase(), Expression: expr}
}

// IngotIf builds an ingot if statement.
func (b *Builder) IngotIf(cond ingot.Expression, body *ingot.Block) *ingot.If {
	return &ingot.If{Base: b.ingotBase(), Condition: cond, Body: body}
}

// IngotSwitch builds an ingot switch statement.
func (b *Builder) IngotSwitch(expr ingot.Expression, cases ...ingot.SwitchCase) *ingot.Switch {
	return &ingot.Switch{Base: b.ingotBase(), Expression: expr, Cases: cases}
}

// IngotCase builds one switch arm; value nil marks the default arm.
func (b *Builder) IngotCase(value *ingot.Literal, body *ingot.Block) ingot.SwitchCase {
	return ingot.SwitchCase{Base: b.ingotBase(), Value: value, Body: body}
}

// IngotFor builds an ingot for loop.
func (b *Builder) IngotFor(pre *ingot.Block, cond ingot.Expression, post, body *ingot.Block) *ingot.ForLoop {
	return &ingot.ForLoop{Base: b.ingotBase(), Pre: pre, Condition: cond, Post: post, Body: body}
}

// IngotBreak builds an ingot break statement.
func (b *Builder) IngotBreak() *ingot.Break {
	return &ingot.Break{Base: b.ingotBase()}
}

// IngotContinue builds an ingot continue statement.
func (b *Builder) IngotContinue() *ingot.Continue {
	return &ingot.Continue{Base: b.ingotBase()}
}

// IngotLeave builds an ingot leave statement.
func (b *Builder) IngotLeave() *ingot.Leave {
	return &ingot.Leave{Base: b.ingotBase()}
}

// IngotCall builds an ingot function call.
func (b *Builder) IngotCall(name string, args ...ingot.Expression) *ingot.FunctionCall {
	fn := b.IngotIdent(name)
	return &ingot.FunctionCall{Base: b.ingotBase(), Function: fn, Arguments: args}
}

// IngotIdent builds an ingot identifier use.
func (b *Builder) IngotIdent(name string) *ingot.Identifier {
	return &ingot.Identifier{Base: b.ingotBase(), Name: name}
}

// IngotNumber builds an ingot number literal.
func (b *Builder) IngotNumber(value string) *ingot.Literal {
	return &ingot.Literal{Base: b.ingotBase(), Kind: "number", Value: value}
}
