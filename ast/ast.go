// Copyright © 2025 The Carbide authors

// Package ast defines the abstract syntax tree for carbide source.
//
// The tree is produced by the parser and is immutable during analysis except
// for per-node annotations. Annotations are owned by the node they describe
// and are written by the analysis passes: the reference resolver fills
// referenced declarations, candidate sets, inline-assembly external
// references, and inheritdoc targets; consumers such as the type checker
// read them afterwards.
package ast

import (
	"github.com/carbidelang/carbide/ingot"
	"github.com/carbidelang/carbide/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// NodeID returns the unique id assigned to the node by the parser.
	NodeID() int64
	// Location returns the node's region in the original source.
	Location() *source.Location
}

// Base carries the identity fields shared by all nodes.
type Base struct {
	ID  int64
	Src *source.Location
}

func (b *Base) NodeID() int64 { return b.ID }

func (b *Base) Location() *source.Location { return b.Src }

// Declaration is a named entity that identifiers can refer to.
type Declaration interface {
	Node
	DeclarationName() string
	DeclarationKind() DeclarationKind
	// EnclosingScope returns the scope node the declaration was registered
	// in, or nil before registration.
	EnclosingScope() Node
}

// DeclarationKind classifies a declaration.
type DeclarationKind int

const (
	DeclContract DeclarationKind = iota
	DeclStruct
	DeclFunction
	DeclModifier
	DeclVariable
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclContract:
		return "contract"
	case DeclStruct:
		return "struct"
	case DeclFunction:
		return "function"
	case DeclModifier:
		return "modifier"
	case DeclVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// ScopeAnnotation records the scope node enclosing a scope-introducing node
// or a declaration. It is written once by declaration registration.
type ScopeAnnotation struct {
	Scope Node
}

// SourceUnit is the root node of a parsed file.
type SourceUnit struct {
	Base
	Nodes []Node

	annotation ScopeAnnotation
}

func (n *SourceUnit) Annotation() *ScopeAnnotation { return &n.annotation }

// PragmaDirective records a pragma such as `pragma carbide ^0.4.0;`.
// It takes no part in name resolution.
type PragmaDirective struct {
	Base
	Literals []string
}

// ContractKind distinguishes the contract-like definition forms.
type ContractKind string

const (
	KindContract  ContractKind = "contract"
	KindInterface ContractKind = "interface"
	KindLibrary   ContractKind = "library"
)

// ContractDefinition declares a contract, interface, or library.
type ContractDefinition struct {
	Base
	Name         string
	ContractKind ContractKind
	Nodes        []Node

	annotation ScopeAnnotation
}

func (n *ContractDefinition) Annotation() *ScopeAnnotation  { return &n.annotation }
func (n *ContractDefinition) DeclarationName() string       { return n.Name }
func (n *ContractDefinition) DeclarationKind() DeclarationKind { return DeclContract }
func (n *ContractDefinition) EnclosingScope() Node          { return n.annotation.Scope }

// StructDefinition declares a user-defined aggregate type.
type StructDefinition struct {
	Base
	Name    string
	Members []*VariableDeclaration

	annotation ScopeAnnotation
}

func (n *StructDefinition) Annotation() *ScopeAnnotation  { return &n.annotation }
func (n *StructDefinition) DeclarationName() string       { return n.Name }
func (n *StructDefinition) DeclarationKind() DeclarationKind { return DeclStruct }
func (n *StructDefinition) EnclosingScope() Node          { return n.annotation.Scope }

// ParameterList groups the parameters or return parameters of a callable.
type ParameterList struct {
	Base
	Parameters []*VariableDeclaration
}

// FunctionDefinitionAnnotation holds resolution output for a function.
type FunctionDefinitionAnnotation struct {
	Scope Node
	// InheritdocReference is the contract named by an @inheritdoc tag,
	// or nil when absent or unresolvable.
	InheritdocReference *ContractDefinition
}

// FunctionDefinition declares a function. Body is nil for unimplemented
// functions (interface members).
type FunctionDefinition struct {
	Base
	Name             string
	Parameters       *ParameterList
	ReturnParameters *ParameterList
	Body             *Block
	Documentation    *StructuredDocumentation

	annotation FunctionDefinitionAnnotation
}

func (n *FunctionDefinition) Annotation() *FunctionDefinitionAnnotation { return &n.annotation }
func (n *FunctionDefinition) DeclarationName() string                   { return n.Name }
func (n *FunctionDefinition) DeclarationKind() DeclarationKind          { return DeclFunction }
func (n *FunctionDefinition) EnclosingScope() Node                      { return n.annotation.Scope }

// ModifierDefinitionAnnotation holds resolution output for a modifier.
type ModifierDefinitionAnnotation struct {
	Scope               Node
	InheritdocReference *ContractDefinition
}

// ModifierDefinition declares a function modifier. Modifiers have no return
// parameters.
type ModifierDefinition struct {
	Base
	Name          string
	Parameters    *ParameterList
	Body          *Block
	Documentation *StructuredDocumentation

	annotation ModifierDefinitionAnnotation
}

func (n *ModifierDefinition) Annotation() *ModifierDefinitionAnnotation { return &n.annotation }
func (n *ModifierDefinition) DeclarationName() string                   { return n.Name }
func (n *ModifierDefinition) DeclarationKind() DeclarationKind          { return DeclModifier }
func (n *ModifierDefinition) EnclosingScope() Node                      { return n.annotation.Scope }

// VariableDeclarationAnnotation holds resolution output for a variable.
type VariableDeclarationAnnotation struct {
	Scope               Node
	InheritdocReference *ContractDefinition
}

// VariableDeclaration declares a named variable: a state variable, a local,
// a parameter, or a struct member, depending on the enclosing scope.
type VariableDeclaration struct {
	Base
	Name          string
	TypeName      Node // *ElementaryTypeName or *IdentifierPath, nil when inferred
	Value         Node // initializer expression, may be nil
	Documentation *StructuredDocumentation

	annotation VariableDeclarationAnnotation
}

func (n *VariableDeclaration) Annotation() *VariableDeclarationAnnotation { return &n.annotation }
func (n *VariableDeclaration) DeclarationName() string                    { return n.Name }
func (n *VariableDeclaration) DeclarationKind() DeclarationKind           { return DeclVariable }
func (n *VariableDeclaration) EnclosingScope() Node                       { return n.annotation.Scope }

// IsLocalVariable reports whether the variable's lifetime is bounded by an
// executable scope: parameters and locals are local, state variables and
// struct members are not. The answer is meaningful only after registration.
func (n *VariableDeclaration) IsLocalVariable() bool {
	switch n.annotation.Scope.(type) {
	case *FunctionDefinition, *ModifierDefinition, *Block, *ForStatement, *TryCatchClause:
		return true
	default:
		return false
	}
}

// StructuredDocumentation is the raw documentation comment attached to a
// declaration. Tag extraction is performed by the docstring package.
type StructuredDocumentation struct {
	Base
	Text string
}

// Block is a brace-delimited statement list introducing a lexical scope.
type Block struct {
	Base
	Statements []Node

	annotation ScopeAnnotation
}

func (n *Block) Annotation() *ScopeAnnotation { return &n.annotation }

// ForStatement is a for loop. The init statement's declarations live in the
// loop's own scope.
type ForStatement struct {
	Base
	Init      Node // statement, may be nil
	Condition Node // expression, may be nil
	Post      Node // statement, may be nil
	Body      Node // statement

	annotation ScopeAnnotation
}

func (n *ForStatement) Annotation() *ScopeAnnotation { return &n.annotation }

// WhileStatement is a while loop. It introduces no scope of its own; its
// body is typically a Block.
type WhileStatement struct {
	Base
	Condition Node
	Body      Node
}

// IfStatement is a conditional. Branches are statements and introduce no
// scope unless they are blocks.
type IfStatement struct {
	Base
	Condition Node
	TrueBody  Node
	FalseBody Node // may be nil
}

// TryStatement guards an external call with catch clauses.
type TryStatement struct {
	Base
	ExternalCall Node
	Clauses      []*TryCatchClause
}

// TryCatchClause is a single success or catch clause of a try statement.
// The clause introduces the scope holding its parameters.
type TryCatchClause struct {
	Base
	ErrorName  string // "" for the success clause
	Parameters *ParameterList
	Block      *Block

	annotation ScopeAnnotation
}

func (n *TryCatchClause) Annotation() *ScopeAnnotation { return &n.annotation }

// VariableDeclarationStatement declares one or more local variables. The
// declared names become visible only after the whole statement has been
// processed.
type VariableDeclarationStatement struct {
	Base
	Declarations []*VariableDeclaration // entries may be nil for tuple gaps
	InitialValue Node                   // may be nil
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Base
	Expression Node
}

// ReturnAnnotation links a return statement to the return parameters of
// the enclosing function.
type ReturnAnnotation struct {
	// FunctionReturnParameters is nil when the return occurs inside a
	// modifier body.
	FunctionReturnParameters *ParameterList
}

// Return is a return statement.
type Return struct {
	Base
	Expression Node // may be nil

	annotation ReturnAnnotation
}

func (n *Return) Annotation() *ReturnAnnotation { return &n.annotation }

// InlineAssemblyReference describes how an ingot identifier refers to a
// host-language declaration.
type InlineAssemblyReference struct {
	Declaration Declaration
	IsSlot      bool
	IsOffset    bool
}

// InlineAssemblyAnnotation collects the host-language declarations referenced
// from inside an assembly block, keyed by the referring ingot identifier.
type InlineAssemblyAnnotation struct {
	ExternalReferences map[*ingot.Identifier]InlineAssemblyReference
}

// InlineAssembly embeds an ingot block in a carbide function body.
type InlineAssembly struct {
	Base
	Body *ingot.Block

	annotation InlineAssemblyAnnotation
}

func (n *InlineAssembly) Annotation() *InlineAssemblyAnnotation { return &n.annotation }

// IdentifierAnnotation records the resolution outcome for an identifier.
// ReferencedDeclaration and CandidateDeclarations are mutually exclusive.
type IdentifierAnnotation struct {
	ReferencedDeclaration Declaration
	// CandidateDeclarations holds all matches when the name is overloaded;
	// choosing among them is deferred to the type checker.
	CandidateDeclarations []Declaration
}

// Identifier is a bare use of a name in expression context.
type Identifier struct {
	Base
	Name string

	annotation IdentifierAnnotation
}

func (n *Identifier) Annotation() *IdentifierAnnotation { return &n.annotation }

// IdentifierPathAnnotation records the declaration a path resolved to.
type IdentifierPathAnnotation struct {
	ReferencedDeclaration Declaration
}

// IdentifierPath is a possibly dotted reference to a user-defined type,
// such as `A` or `A.B`.
type IdentifierPath struct {
	Base
	Path []string

	annotation IdentifierPathAnnotation
}

func (n *IdentifierPath) Annotation() *IdentifierPathAnnotation { return &n.annotation }

// ElementaryTypeName names a builtin type such as uint256 or bool.
type ElementaryTypeName struct {
	Base
	Name string
}

// FunctionCall applies arguments to a callee expression.
type FunctionCall struct {
	Base
	Expression Node
	Arguments  []Node
}

// BinaryOperation combines two expressions with an infix operator.
type BinaryOperation struct {
	Base
	Left     Node
	Operator string
	Right    Node
}

// Assignment assigns the right-hand expression to the left-hand one.
type Assignment struct {
	Base
	LeftHandSide  Node
	Operator      string
	RightHandSide Node
}

// Literal is a constant such as a number, string, or boolean.
type Literal struct {
	Base
	Kind  string // "number", "string", "bool"
	Value string
}
