// Copyright © 2025 The Carbide authors

package ast

import "fmt"

// Visitor has its Visit method called for every node encountered by Walk in
// pre order. If Visit returns false the node's children are skipped.
// EndVisit is called in post order for every visited node regardless of what
// Visit returned, so paired enter/exit work stays balanced.
type Visitor interface {
	Visit(n Node) bool
	EndVisit(n Node)
}

// Walk traverses the tree rooted at n depth-first, visiting each node
// exactly once. It panics on node types it does not know about.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if v.Visit(n) {
		walkChildren(v, n)
	}
	v.EndVisit(n)
}

func walkChildren(v Visitor, n Node) {
	switch n := n.(type) {
	case *SourceUnit:
		walkList(v, n.Nodes)
	case *PragmaDirective:
		// leaf
	case *ContractDefinition:
		walkList(v, n.Nodes)
	case *StructDefinition:
		for _, m := range n.Members {
			Walk(v, m)
		}
	case *ParameterList:
		for _, p := range n.Parameters {
			Walk(v, p)
		}
	case *FunctionDefinition:
		if n.Documentation != nil {
			Walk(v, n.Documentation)
		}
		if n.Parameters != nil {
			Walk(v, n.Parameters)
		}
		if n.ReturnParameters != nil {
			Walk(v, n.ReturnParameters)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *ModifierDefinition:
		if n.Documentation != nil {
			Walk(v, n.Documentation)
		}
		if n.Parameters != nil {
			Walk(v, n.Parameters)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *VariableDeclaration:
		if n.Documentation != nil {
			Walk(v, n.Documentation)
		}
		Walk(v, n.TypeName)
		Walk(v, n.Value)
	case *StructuredDocumentation:
		// leaf
	case *Block:
		walkList(v, n.Statements)
	case *ForStatement:
		Walk(v, n.Init)
		Walk(v, n.Condition)
		Walk(v, n.Post)
		Walk(v, n.Body)
	case *WhileStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.TrueBody)
		Walk(v, n.FalseBody)
	case *TryStatement:
		Walk(v, n.ExternalCall)
		for _, c := range n.Clauses {
			Walk(v, c)
		}
	case *TryCatchClause:
		if n.Parameters != nil {
			Walk(v, n.Parameters)
		}
		if n.Block != nil {
			Walk(v, n.Block)
		}
	case *VariableDeclarationStatement:
		for _, d := range n.Declarations {
			if d != nil {
				Walk(v, d)
			}
		}
		Walk(v, n.InitialValue)
	case *ExpressionStatement:
		Walk(v, n.Expression)
	case *Return:
		Walk(v, n.Expression)
	case *InlineAssembly:
		// The ingot body is a separate node universe; the resolver
		// traverses it with its own dialect walker.
	case *Identifier, *IdentifierPath, *ElementaryTypeName, *Literal:
		// leaves
	case *FunctionCall:
		Walk(v, n.Expression)
		walkList(v, n.Arguments)
	case *BinaryOperation:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Assignment:
		Walk(v, n.LeftHandSide)
		Walk(v, n.RightHandSide)
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
}

func walkList(v Visitor, nodes []Node) {
	for _, n := range nodes {
		Walk(v, n)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) bool { return f(n) }
func (f inspector) EndVisit(Node)     {}

// Inspect traverses the tree calling f for each node; if f returns false the
// node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}
