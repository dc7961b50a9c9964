// Copyright © 2025 The Carbide authors

// Package ingot defines the syntax tree for ingot, the low-level dialect
// embedded in carbide assembly blocks.
//
// Ingot has its own statement grammar and its own nested function scoping,
// but identifiers inside an assembly block may also refer to declarations of
// the enclosing carbide scope. Those outer references are resolved by the
// analysis package against the host scope chain; dialect-local names and
// builtins are outside its concern.
package ingot

import "github.com/carbidelang/carbide/source"

// Node is implemented by every ingot syntax tree node.
type Node interface {
	Location() *source.Location
}

// Statement nodes appear in block statement lists.
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes produce values.
type Expression interface {
	Node
	exprNode()
}

// Base carries the location shared by all ingot nodes.
type Base struct {
	Src *source.Location
}

func (b *Base) Location() *source.Location { return b.Src }

// TypedName is a declared name: a function parameter, return variable, or
// local variable.
type TypedName struct {
	Name string
	Src  *source.Location
}

func (n *TypedName) Location() *source.Location { return n.Src }

// Block is a brace-delimited statement list.
type Block struct {
	Base
	Statements []Statement
}

func (*Block) stmtNode() {}

// FunctionDefinition declares an ingot function. Ingot functions cannot
// close over host-language local variables.
type FunctionDefinition struct {
	Base
	Name            string
	Parameters      []TypedName
	ReturnVariables []TypedName
	Body            *Block
}

func (*FunctionDefinition) stmtNode() {}

// VariableDeclaration declares dialect-local variables, optionally with an
// initial value.
type VariableDeclaration struct {
	Base
	Variables []TypedName
	Value     Expression // may be nil
}

func (*VariableDeclaration) stmtNode() {}

// Assignment stores the value expression into previously declared names.
type Assignment struct {
	Base
	VariableNames []*Identifier
	Value         Expression
}

func (*Assignment) stmtNode() {}

// ExpressionStatement evaluates an expression for its effect.
type ExpressionStatement struct {
	Base
	Expression Expression
}

func (*ExpressionStatement) stmtNode() {}

// If runs the body when the condition is nonzero.
type If struct {
	Base
	Condition Expression
	Body      *Block
}

func (*If) stmtNode() {}

// SwitchCase is one arm of a switch. A nil Value marks the default arm.
type SwitchCase struct {
	Base
	Value *Literal
	Body  *Block
}

// Switch dispatches on a value over literal cases.
type Switch struct {
	Base
	Expression Expression
	Cases      []SwitchCase
}

func (*Switch) stmtNode() {}

// ForLoop is ingot's only loop form.
type ForLoop struct {
	Base
	Pre       *Block
	Condition Expression
	Post      *Block
	Body      *Block
}

func (*ForLoop) stmtNode() {}

// Break terminates the innermost loop.
type Break struct{ Base }

func (*Break) stmtNode() {}

// Continue starts the next iteration of the innermost loop.
type Continue struct{ Base }

func (*Continue) stmtNode() {}

// Leave returns from the enclosing ingot function.
type Leave struct{ Base }

func (*Leave) stmtNode() {}

// FunctionCall applies arguments to a named function or builtin.
type FunctionCall struct {
	Base
	Function  *Identifier
	Arguments []Expression
}

func (*FunctionCall) exprNode() {}

// Identifier is a use of a name. Names carrying a storage-accessor suffix
// (`.slot`, `.offset`) refer to the storage location of a host declaration.
type Identifier struct {
	Base
	Name string
}

func (*Identifier) exprNode() {}

// Literal is a constant value.
type Literal struct {
	Base
	Kind  string // "number", "string", "bool"
	Value string
}

func (*Literal) exprNode() {}
