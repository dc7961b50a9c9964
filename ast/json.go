// Copyright © 2025 The Carbide authors

package ast

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/carbidelang/carbide/ingot"
	"github.com/carbidelang/carbide/source"
)

// The compact JSON form mirrors the tree one object per node, discriminated
// by a "nodeType" field. Ingot nodes use an "Ingot" prefix so the two node
// universes cannot be confused. Resolution annotations are included when
// present (referencedDeclaration, candidateDeclarations, externalReferences,
// inheritdocReference, functionReturnParameters) and are ignored on decode:
// a loaded tree is always re-resolved.

// Marshal returns the compact JSON encoding of the tree rooted at n.
func Marshal(n Node) ([]byte, error) {
	return json.Marshal(encodeNode(n))
}

// MarshalIndent is like Marshal with two-space indentation.
func MarshalIndent(n Node) ([]byte, error) {
	return json.MarshalIndent(encodeNode(n), "", "  ")
}

// UnmarshalSourceUnit parses a compact JSON document into a source unit.
func UnmarshalSourceUnit(data []byte) (*SourceUnit, error) {
	n, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	unit, ok := n.(*SourceUnit)
	if !ok {
		return nil, fmt.Errorf("ast: document root is %T, want SourceUnit", n)
	}
	return unit, nil
}

// --- encoding ---

func objHeader(nodeType string, b *Base) map[string]any {
	obj := map[string]any{"nodeType": nodeType}
	if b.ID != 0 {
		obj["id"] = b.ID
	}
	if b.Src != nil {
		obj["src"] = b.Src
	}
	return obj
}

func encodeNode(n Node) any {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *SourceUnit:
		obj := objHeader("SourceUnit", &n.Base)
		obj["nodes"] = encodeList(n.Nodes)
		return obj
	case *PragmaDirective:
		obj := objHeader("PragmaDirective", &n.Base)
		obj["literals"] = n.Literals
		return obj
	case *ContractDefinition:
		obj := objHeader("ContractDefinition", &n.Base)
		obj["name"] = n.Name
		obj["contractKind"] = string(n.ContractKind)
		obj["nodes"] = encodeList(n.Nodes)
		return obj
	case *StructDefinition:
		obj := objHeader("StructDefinition", &n.Base)
		obj["name"] = n.Name
		members := make([]any, len(n.Members))
		for i, m := range n.Members {
			members[i] = encodeNode(m)
		}
		obj["members"] = members
		return obj
	case *ParameterList:
		obj := objHeader("ParameterList", &n.Base)
		params := make([]any, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = encodeNode(p)
		}
		obj["parameters"] = params
		return obj
	case *FunctionDefinition:
		obj := objHeader("FunctionDefinition", &n.Base)
		obj["name"] = n.Name
		if n.Documentation != nil {
			obj["documentation"] = encodeNode(n.Documentation)
		}
		if n.Parameters != nil {
			obj["parameters"] = encodeNode(n.Parameters)
		}
		if n.ReturnParameters != nil {
			obj["returnParameters"] = encodeNode(n.ReturnParameters)
		}
		if n.Body != nil {
			obj["body"] = encodeNode(n.Body)
		}
		if ref := n.annotation.InheritdocReference; ref != nil {
			obj["inheritdocReference"] = ref.ID
		}
		return obj
	case *ModifierDefinition:
		obj := objHeader("ModifierDefinition", &n.Base)
		obj["name"] = n.Name
		if n.Documentation != nil {
			obj["documentation"] = encodeNode(n.Documentation)
		}
		if n.Parameters != nil {
			obj["parameters"] = encodeNode(n.Parameters)
		}
		if n.Body != nil {
			obj["body"] = encodeNode(n.Body)
		}
		if ref := n.annotation.InheritdocReference; ref != nil {
			obj["inheritdocReference"] = ref.ID
		}
		return obj
	case *VariableDeclaration:
		obj := objHeader("VariableDeclaration", &n.Base)
		obj["name"] = n.Name
		if n.Documentation != nil {
			obj["documentation"] = encodeNode(n.Documentation)
		}
		if n.TypeName != nil {
			obj["typeName"] = encodeNode(n.TypeName)
		}
		if n.Value != nil {
			obj["value"] = encodeNode(n.Value)
		}
		if ref := n.annotation.InheritdocReference; ref != nil {
			obj["inheritdocReference"] = ref.ID
		}
		return obj
	case *StructuredDocumentation:
		obj := objHeader("StructuredDocumentation", &n.Base)
		obj["text"] = n.Text
		return obj
	case *Block:
		obj := objHeader("Block", &n.Base)
		obj["statements"] = encodeList(n.Statements)
		return obj
	case *ForStatement:
		obj := objHeader("ForStatement", &n.Base)
		if n.Init != nil {
			obj["init"] = encodeNode(n.Init)
		}
		if n.Condition != nil {
			obj["condition"] = encodeNode(n.Condition)
		}
		if n.Post != nil {
			obj["post"] = encodeNode(n.Post)
		}
		obj["body"] = encodeNode(n.Body)
		return obj
	case *WhileStatement:
		obj := objHeader("WhileStatement", &n.Base)
		obj["condition"] = encodeNode(n.Condition)
		obj["body"] = encodeNode(n.Body)
		return obj
	case *IfStatement:
		obj := objHeader("IfStatement", &n.Base)
		obj["condition"] = encodeNode(n.Condition)
		obj["trueBody"] = encodeNode(n.TrueBody)
		if n.FalseBody != nil {
			obj["falseBody"] = encodeNode(n.FalseBody)
		}
		return obj
	case *TryStatement:
		obj := objHeader("TryStatement", &n.Base)
		obj["externalCall"] = encodeNode(n.ExternalCall)
		clauses := make([]any, len(n.Clauses))
		for i, c := range n.Clauses {
			clauses[i] = encodeNode(c)
		}
		obj["clauses"] = clauses
		return obj
	case *TryCatchClause:
		obj := objHeader("TryCatchClause", &n.Base)
		if n.ErrorName != "" {
			obj["errorName"] = n.ErrorName
		}
		if n.Parameters != nil {
			obj["parameters"] = encodeNode(n.Parameters)
		}
		if n.Block != nil {
			obj["block"] = encodeNode(n.Block)
		}
		return obj
	case *VariableDeclarationStatement:
		obj := objHeader("VariableDeclarationStatement", &n.Base)
		decls := make([]any, len(n.Declarations))
		for i, d := range n.Declarations {
			if d != nil {
				decls[i] = encodeNode(d)
			}
		}
		obj["declarations"] = decls
		if n.InitialValue != nil {
			obj["initialValue"] = encodeNode(n.InitialValue)
		}
		return obj
	case *ExpressionStatement:
		obj := objHeader("ExpressionStatement", &n.Base)
		obj["expression"] = encodeNode(n.Expression)
		return obj
	case *Return:
		obj := objHeader("Return", &n.Base)
		if n.Expression != nil {
			obj["expression"] = encodeNode(n.Expression)
		}
		if params := n.annotation.FunctionReturnParameters; params != nil {
			obj["functionReturnParameters"] = params.ID
		}
		return obj
	case *InlineAssembly:
		obj := objHeader("InlineAssembly", &n.Base)
		obj["body"] = encodeIngot(n.Body)
		if len(n.annotation.ExternalReferences) > 0 {
			obj["externalReferences"] = encodeExternalReferences(n.annotation.ExternalReferences)
		}
		return obj
	case *Identifier:
		obj := objHeader("Identifier", &n.Base)
		obj["name"] = n.Name
		if ref := n.annotation.ReferencedDeclaration; ref != nil {
			obj["referencedDeclaration"] = ref.NodeID()
		}
		if len(n.annotation.CandidateDeclarations) > 0 {
			ids := make([]int64, len(n.annotation.CandidateDeclarations))
			for i, d := range n.annotation.CandidateDeclarations {
				ids[i] = d.NodeID()
			}
			obj["candidateDeclarations"] = ids
		}
		return obj
	case *IdentifierPath:
		obj := objHeader("IdentifierPath", &n.Base)
		obj["path"] = n.Path
		if ref := n.annotation.ReferencedDeclaration; ref != nil {
			obj["referencedDeclaration"] = ref.NodeID()
		}
		return obj
	case *ElementaryTypeName:
		obj := objHeader("ElementaryTypeName", &n.Base)
		obj["name"] = n.Name
		return obj
	case *FunctionCall:
		obj := objHeader("FunctionCall", &n.Base)
		obj["expression"] = encodeNode(n.Expression)
		obj["arguments"] = encodeList(n.Arguments)
		return obj
	case *BinaryOperation:
		obj := objHeader("BinaryOperation", &n.Base)
		obj["left"] = encodeNode(n.Left)
		obj["operator"] = n.Operator
		obj["right"] = encodeNode(n.Right)
		return obj
	case *Assignment:
		obj := objHeader("Assignment", &n.Base)
		obj["leftHandSide"] = encodeNode(n.LeftHandSide)
		obj["operator"] = n.Operator
		obj["rightHandSide"] = encodeNode(n.RightHandSide)
		return obj
	case *Literal:
		obj := objHeader("Literal", &n.Base)
		obj["kind"] = n.Kind
		obj["value"] = n.Value
		return obj
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
}

func encodeList(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = encodeNode(n)
	}
	return out
}

func encodeExternalReferences(refs map[*ingot.Identifier]InlineAssemblyReference) []any {
	type entry struct {
		src  *source.Location
		body map[string]any
	}
	entries := make([]entry, 0, len(refs))
	for ident, ref := range refs {
		body := map[string]any{
			"name":        ident.Name,
			"declaration": ref.Declaration.NodeID(),
		}
		if ident.Src != nil {
			body["src"] = ident.Src
		}
		if ref.IsSlot {
			body["isSlot"] = true
		}
		if ref.IsOffset {
			body["isOffset"] = true
		}
		entries = append(entries, entry{src: ident.Src, body: body})
	}
	// Deterministic output: order by source position, then name.
	sort.Slice(entries, func(i, j int) bool {
		pi, pj := 0, 0
		if entries[i].src != nil {
			pi = entries[i].src.Pos
		}
		if entries[j].src != nil {
			pj = entries[j].src.Pos
		}
		if pi != pj {
			return pi < pj
		}
		return entries[i].body["name"].(string) < entries[j].body["name"].(string)
	})
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.body
	}
	return out
}

func encodeIngot(n ingot.Node) any {
	if n == nil {
		return nil
	}
	obj := map[string]any{}
	if loc := n.Location(); loc != nil {
		obj["src"] = loc
	}
	switch n := n.(type) {
	case *ingot.Block:
		obj["nodeType"] = "IngotBlock"
		stmts := make([]any, len(n.Statements))
		for i, s := range n.Statements {
			stmts[i] = encodeIngot(s)
		}
		obj["statements"] = stmts
	case *ingot.FunctionDefinition:
		obj["nodeType"] = "IngotFunctionDefinition"
		obj["name"] = n.Name
		obj["parameters"] = encodeTypedNames(n.Parameters)
		obj["returnVariables"] = encodeTypedNames(n.ReturnVariables)
		obj["body"] = encodeIngot(n.Body)
	case *ingot.VariableDeclaration:
		obj["nodeType"] = "IngotVariableDeclaration"
		obj["variables"] = encodeTypedNames(n.Variables)
		if n.Value != nil {
			obj["value"] = encodeIngot(n.Value)
		}
	case *ingot.Assignment:
		obj["nodeType"] = "IngotAssignment"
		names := make([]any, len(n.VariableNames))
		for i, id := range n.VariableNames {
			names[i] = encodeIngot(id)
		}
		obj["variableNames"] = names
		obj["value"] = encodeIngot(n.Value)
	case *ingot.ExpressionStatement:
		obj["nodeType"] = "IngotExpressionStatement"
		obj["expression"] = encodeIngot(n.Expression)
	case *ingot.If:
		obj["nodeType"] = "IngotIf"
		obj["condition"] = encodeIngot(n.Condition)
		obj["body"] = encodeIngot(n.Body)
	case *ingot.Switch:
		obj["nodeType"] = "IngotSwitch"
		obj["expression"] = encodeIngot(n.Expression)
		cases := make([]any, len(n.Cases))
		for i, c := range n.Cases {
			caseObj := map[string]any{"nodeType": "IngotCase", "body": encodeIngot(c.Body)}
			if c.Value != nil {
				caseObj["value"] = encodeIngot(c.Value)
			}
			cases[i] = caseObj
		}
		obj["cases"] = cases
	case *ingot.ForLoop:
		obj["nodeType"] = "IngotForLoop"
		obj["pre"] = encodeIngot(n.Pre)
		obj["condition"] = encodeIngot(n.Condition)
		obj["post"] = encodeIngot(n.Post)
		obj["body"] = encodeIngot(n.Body)
	case *ingot.Break:
		obj["nodeType"] = "IngotBreak"
	case *ingot.Continue:
		obj["nodeType"] = "IngotContinue"
	case *ingot.Leave:
		obj["nodeType"] = "IngotLeave"
	case *ingot.FunctionCall:
		obj["nodeType"] = "IngotFunctionCall"
		obj["function"] = encodeIngot(n.Function)
		args := make([]any, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = encodeIngot(a)
		}
		obj["arguments"] = args
	case *ingot.Identifier:
		obj["nodeType"] = "IngotIdentifier"
		obj["name"] = n.Name
	case *ingot.Literal:
		obj["nodeType"] = "IngotLiteral"
		obj["kind"] = n.Kind
		obj["value"] = n.Value
	default:
		panic(fmt.Sprintf("ast: unexpected ingot node type %T", n))
	}
	return obj
}

func encodeTypedNames(names []ingot.TypedName) []any {
	out := make([]any, len(names))
	for i, tn := range names {
		obj := map[string]any{"name": tn.Name}
		if tn.Src != nil {
			obj["src"] = tn.Src
		}
		out[i] = obj
	}
	return out
}

// --- decoding ---

// rawNode is the union of all node fields; nodeType selects which apply.
type rawNode struct {
	NodeType     string            `json:"nodeType"`
	ID           int64             `json:"id"`
	Src          *source.Location  `json:"src"`
	Name         string            `json:"name"`
	Literals     []string          `json:"literals"`
	ContractKind string            `json:"contractKind"`
	Nodes        []json.RawMessage `json:"nodes"`
	Members      []json.RawMessage `json:"members"`
	Parameters   json.RawMessage   `json:"parameters"`
	ReturnParams json.RawMessage   `json:"returnParameters"`
	Body         json.RawMessage   `json:"body"`
	Docs         json.RawMessage   `json:"documentation"`
	Text         string            `json:"text"`
	TypeName     json.RawMessage   `json:"typeName"`
	Value        json.RawMessage   `json:"value"`
	Statements   []json.RawMessage `json:"statements"`
	Init         json.RawMessage   `json:"init"`
	Condition    json.RawMessage   `json:"condition"`
	Post         json.RawMessage   `json:"post"`
	TrueBody     json.RawMessage   `json:"trueBody"`
	FalseBody    json.RawMessage   `json:"falseBody"`
	ExternalCall json.RawMessage   `json:"externalCall"`
	Clauses      []json.RawMessage `json:"clauses"`
	ErrorName    string            `json:"errorName"`
	Block        json.RawMessage   `json:"block"`
	Declarations []json.RawMessage `json:"declarations"`
	InitialValue json.RawMessage   `json:"initialValue"`
	Expression   json.RawMessage   `json:"expression"`
	Path         []string          `json:"path"`
	Arguments    []json.RawMessage `json:"arguments"`
	Left         json.RawMessage   `json:"left"`
	Right        json.RawMessage   `json:"right"`
	LHS          json.RawMessage   `json:"leftHandSide"`
	RHS          json.RawMessage   `json:"rightHandSide"`
	Operator     string            `json:"operator"`
	Kind         string            `json:"kind"`
}

func decodeNode(data []byte) (Node, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: %w", err)
	}
	base := Base{ID: raw.ID, Src: raw.Src}
	switch raw.NodeType {
	case "SourceUnit":
		nodes, err := decodeList(raw.Nodes)
		if err != nil {
			return nil, err
		}
		return &SourceUnit{Base: base, Nodes: nodes}, nil
	case "PragmaDirective":
		return &PragmaDirective{Base: base, Literals: raw.Literals}, nil
	case "ContractDefinition":
		nodes, err := decodeList(raw.Nodes)
		if err != nil {
			return nil, err
		}
		kind := ContractKind(raw.ContractKind)
		if kind == "" {
			kind = KindContract
		}
		return &ContractDefinition{Base: base, Name: raw.Name, ContractKind: kind, Nodes: nodes}, nil
	case "StructDefinition":
		members, err := decodeVariables(raw.Members)
		if err != nil {
			return nil, err
		}
		return &StructDefinition{Base: base, Name: raw.Name, Members: members}, nil
	case "ParameterList":
		var members []json.RawMessage
		if len(raw.Parameters) > 0 && string(raw.Parameters) != "null" {
			if err := json.Unmarshal(raw.Parameters, &members); err != nil {
				return nil, fmt.Errorf("ast: %w", err)
			}
		}
		params, err := decodeVariables(members)
		if err != nil {
			return nil, err
		}
		return &ParameterList{Base: base, Parameters: params}, nil
	case "FunctionDefinition":
		fn := &FunctionDefinition{Base: base, Name: raw.Name}
		var err error
		if fn.Documentation, err = decodeDocumentation(raw.Docs); err != nil {
			return nil, err
		}
		if fn.Parameters, err = decodeParameterList(raw.Parameters); err != nil {
			return nil, err
		}
		if fn.ReturnParameters, err = decodeParameterList(raw.ReturnParams); err != nil {
			return nil, err
		}
		if fn.Body, err = decodeBlock(raw.Body); err != nil {
			return nil, err
		}
		return fn, nil
	case "ModifierDefinition":
		mod := &ModifierDefinition{Base: base, Name: raw.Name}
		var err error
		if mod.Documentation, err = decodeDocumentation(raw.Docs); err != nil {
			return nil, err
		}
		if mod.Parameters, err = decodeParameterList(raw.Parameters); err != nil {
			return nil, err
		}
		if mod.Body, err = decodeBlock(raw.Body); err != nil {
			return nil, err
		}
		return mod, nil
	case "VariableDeclaration":
		decl := &VariableDeclaration{Base: base, Name: raw.Name}
		var err error
		if decl.Documentation, err = decodeDocumentation(raw.Docs); err != nil {
			return nil, err
		}
		if decl.TypeName, err = decodeNode(raw.TypeName); err != nil {
			return nil, err
		}
		if decl.Value, err = decodeNode(raw.Value); err != nil {
			return nil, err
		}
		return decl, nil
	case "StructuredDocumentation":
		return &StructuredDocumentation{Base: base, Text: raw.Text}, nil
	case "Block":
		stmts, err := decodeList(raw.Statements)
		if err != nil {
			return nil, err
		}
		return &Block{Base: base, Statements: stmts}, nil
	case "ForStatement":
		stmt := &ForStatement{Base: base}
		var err error
		if stmt.Init, err = decodeNode(raw.Init); err != nil {
			return nil, err
		}
		if stmt.Condition, err = decodeNode(raw.Condition); err != nil {
			return nil, err
		}
		if stmt.Post, err = decodeNode(raw.Post); err != nil {
			return nil, err
		}
		if stmt.Body, err = decodeNode(raw.Body); err != nil {
			return nil, err
		}
		return stmt, nil
	case "WhileStatement":
		stmt := &WhileStatement{Base: base}
		var err error
		if stmt.Condition, err = decodeNode(raw.Condition); err != nil {
			return nil, err
		}
		if stmt.Body, err = decodeNode(raw.Body); err != nil {
			return nil, err
		}
		return stmt, nil
	case "IfStatement":
		stmt := &IfStatement{Base: base}
		var err error
		if stmt.Condition, err = decodeNode(raw.Condition); err != nil {
			return nil, err
		}
		if stmt.TrueBody, err = decodeNode(raw.TrueBody); err != nil {
			return nil, err
		}
		if stmt.FalseBody, err = decodeNode(raw.FalseBody); err != nil {
			return nil, err
		}
		return stmt, nil
	case "TryStatement":
		stmt := &TryStatement{Base: base}
		var err error
		if stmt.ExternalCall, err = decodeNode(raw.ExternalCall); err != nil {
			return nil, err
		}
		for _, c := range raw.Clauses {
			n, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			clause, ok := n.(*TryCatchClause)
			if !ok {
				return nil, fmt.Errorf("ast: try clause is %T, want TryCatchClause", n)
			}
			stmt.Clauses = append(stmt.Clauses, clause)
		}
		return stmt, nil
	case "TryCatchClause":
		clause := &TryCatchClause{Base: base, ErrorName: raw.ErrorName}
		var err error
		if clause.Parameters, err = decodeParameterList(raw.Parameters); err != nil {
			return nil, err
		}
		if clause.Block, err = decodeBlock(raw.Block); err != nil {
			return nil, err
		}
		return clause, nil
	case "VariableDeclarationStatement":
		stmt := &VariableDeclarationStatement{Base: base}
		for _, d := range raw.Declarations {
			if len(d) == 0 || string(d) == "null" {
				stmt.Declarations = append(stmt.Declarations, nil)
				continue
			}
			n, err := decodeNode(d)
			if err != nil {
				return nil, err
			}
			decl, ok := n.(*VariableDeclaration)
			if !ok {
				return nil, fmt.Errorf("ast: declaration is %T, want VariableDeclaration", n)
			}
			stmt.Declarations = append(stmt.Declarations, decl)
		}
		var err error
		if stmt.InitialValue, err = decodeNode(raw.InitialValue); err != nil {
			return nil, err
		}
		return stmt, nil
	case "ExpressionStatement":
		expr, err := decodeNode(raw.Expression)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Base: base, Expression: expr}, nil
	case "Return":
		expr, err := decodeNode(raw.Expression)
		if err != nil {
			return nil, err
		}
		return &Return{Base: base, Expression: expr}, nil
	case "InlineAssembly":
		body, err := decodeIngotBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return &InlineAssembly{Base: base, Body: body}, nil
	case "Identifier":
		return &Identifier{Base: base, Name: raw.Name}, nil
	case "IdentifierPath":
		return &IdentifierPath{Base: base, Path: raw.Path}, nil
	case "ElementaryTypeName":
		return &ElementaryTypeName{Base: base, Name: raw.Name}, nil
	case "FunctionCall":
		call := &FunctionCall{Base: base}
		var err error
		if call.Expression, err = decodeNode(raw.Expression); err != nil {
			return nil, err
		}
		for _, a := range raw.Arguments {
			arg, err := decodeNode(a)
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
		}
		return call, nil
	case "BinaryOperation":
		op := &BinaryOperation{Base: base, Operator: raw.Operator}
		var err error
		if op.Left, err = decodeNode(raw.Left); err != nil {
			return nil, err
		}
		if op.Right, err = decodeNode(raw.Right); err != nil {
			return nil, err
		}
		return op, nil
	case "Assignment":
		asgn := &Assignment{Base: base, Operator: raw.Operator}
		var err error
		if asgn.LeftHandSide, err = decodeNode(raw.LHS); err != nil {
			return nil, err
		}
		if asgn.RightHandSide, err = decodeNode(raw.RHS); err != nil {
			return nil, err
		}
		return asgn, nil
	case "Literal":
		var value string
		if len(raw.Value) > 0 && string(raw.Value) != "null" {
			if err := json.Unmarshal(raw.Value, &value); err != nil {
				return nil, fmt.Errorf("ast: %w", err)
			}
		}
		return &Literal{Base: base, Kind: raw.Kind, Value: value}, nil
	case "":
		return nil, fmt.Errorf("ast: node object missing nodeType")
	default:
		return nil, fmt.Errorf("ast: unknown nodeType %q", raw.NodeType)
	}
}

func decodeList(raws []json.RawMessage) ([]Node, error) {
	var nodes []Node
	for _, r := range raws {
		n, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func decodeVariables(raws []json.RawMessage) ([]*VariableDeclaration, error) {
	var decls []*VariableDeclaration
	for _, r := range raws {
		n, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		decl, ok := n.(*VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("ast: list member is %T, want VariableDeclaration", n)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func decodeParameterList(data json.RawMessage) (*ParameterList, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	n, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	list, ok := n.(*ParameterList)
	if !ok {
		return nil, fmt.Errorf("ast: parameter list is %T, want ParameterList", n)
	}
	return list, nil
}

func decodeBlock(data json.RawMessage) (*Block, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	n, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	block, ok := n.(*Block)
	if !ok {
		return nil, fmt.Errorf("ast: body is %T, want Block", n)
	}
	return block, nil
}

func decodeDocumentation(data json.RawMessage) (*StructuredDocumentation, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	n, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	doc, ok := n.(*StructuredDocumentation)
	if !ok {
		return nil, fmt.Errorf("ast: documentation is %T, want StructuredDocumentation", n)
	}
	return doc, nil
}

// rawIngotNode is the union of ingot node fields.
type rawIngotNode struct {
	NodeType   string            `json:"nodeType"`
	Src        *source.Location  `json:"src"`
	Name       string            `json:"name"`
	Statements []json.RawMessage `json:"statements"`
	Parameters []rawTypedName    `json:"parameters"`
	Returns    []rawTypedName    `json:"returnVariables"`
	Variables  []rawTypedName    `json:"variables"`
	Body       json.RawMessage   `json:"body"`
	Value      json.RawMessage   `json:"value"`
	VarNames   []json.RawMessage `json:"variableNames"`
	Expression json.RawMessage   `json:"expression"`
	Condition  json.RawMessage   `json:"condition"`
	Cases      []json.RawMessage `json:"cases"`
	Pre        json.RawMessage   `json:"pre"`
	Post       json.RawMessage   `json:"post"`
	Function   json.RawMessage   `json:"function"`
	Arguments  []json.RawMessage `json:"arguments"`
	Kind       string            `json:"kind"`
}

type rawTypedName struct {
	Name string           `json:"name"`
	Src  *source.Location `json:"src"`
}

func decodeIngotNode(data []byte) (ingot.Node, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raw rawIngotNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: %w", err)
	}
	base := ingot.Base{Src: raw.Src}
	switch raw.NodeType {
	case "IngotBlock":
		block := &ingot.Block{Base: base}
		for _, s := range raw.Statements {
			stmt, err := decodeIngotStatement(s)
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, stmt)
		}
		return block, nil
	case "IngotFunctionDefinition":
		body, err := decodeIngotBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ingot.FunctionDefinition{
			Base:            base,
			Name:            raw.Name,
			Parameters:      typedNames(raw.Parameters),
			ReturnVariables: typedNames(raw.Returns),
			Body:            body,
		}, nil
	case "IngotVariableDeclaration":
		value, err := decodeIngotExpression(raw.Value)
		if err != nil {
			return nil, err
		}
		return &ingot.VariableDeclaration{Base: base, Variables: typedNames(raw.Variables), Value: value}, nil
	case "IngotAssignment":
		asgn := &ingot.Assignment{Base: base}
		for _, v := range raw.VarNames {
			n, err := decodeIngotNode(v)
			if err != nil {
				return nil, err
			}
			ident, ok := n.(*ingot.Identifier)
			if !ok {
				return nil, fmt.Errorf("ast: assignment target is %T, want IngotIdentifier", n)
			}
			asgn.VariableNames = append(asgn.VariableNames, ident)
		}
		var err error
		if asgn.Value, err = decodeIngotExpression(raw.Value); err != nil {
			return nil, err
		}
		return asgn, nil
	case "IngotExpressionStatement":
		expr, err := decodeIngotExpression(raw.Expression)
		if err != nil {
			return nil, err
		}
		return &ingot.ExpressionStatement{Base: base, Expression: expr}, nil
	case "IngotIf":
		cond, err := decodeIngotExpression(raw.Condition)
		if err != nil {
			return nil, err
		}
		body, err := decodeIngotBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ingot.If{Base: base, Condition: cond, Body: body}, nil
	case "IngotSwitch":
		expr, err := decodeIngotExpression(raw.Expression)
		if err != nil {
			return nil, err
		}
		sw := &ingot.Switch{Base: base, Expression: expr}
		for _, c := range raw.Cases {
			var rawCase rawIngotNode
			if err := json.Unmarshal(c, &rawCase); err != nil {
				return nil, fmt.Errorf("ast: %w", err)
			}
			body, err := decodeIngotBlock(rawCase.Body)
			if err != nil {
				return nil, err
			}
			sc := ingot.SwitchCase{Base: ingot.Base{Src: rawCase.Src}, Body: body}
			if len(rawCase.Value) > 0 && string(rawCase.Value) != "null" {
				v, err := decodeIngotNode(rawCase.Value)
				if err != nil {
					return nil, err
				}
				lit, ok := v.(*ingot.Literal)
				if !ok {
					return nil, fmt.Errorf("ast: case value is %T, want IngotLiteral", v)
				}
				sc.Value = lit
			}
			sw.Cases = append(sw.Cases, sc)
		}
		return sw, nil
	case "IngotForLoop":
		loop := &ingot.ForLoop{Base: base}
		var err error
		if loop.Pre, err = decodeIngotBlock(raw.Pre); err != nil {
			return nil, err
		}
		if loop.Condition, err = decodeIngotExpression(raw.Condition); err != nil {
			return nil, err
		}
		if loop.Post, err = decodeIngotBlock(raw.Post); err != nil {
			return nil, err
		}
		if loop.Body, err = decodeIngotBlock(raw.Body); err != nil {
			return nil, err
		}
		return loop, nil
	case "IngotBreak":
		return &ingot.Break{Base: base}, nil
	case "IngotContinue":
		return &ingot.Continue{Base: base}, nil
	case "IngotLeave":
		return &ingot.Leave{Base: base}, nil
	case "IngotFunctionCall":
		fn, err := decodeIngotNode(raw.Function)
		if err != nil {
			return nil, err
		}
		ident, ok := fn.(*ingot.Identifier)
		if !ok {
			return nil, fmt.Errorf("ast: called function is %T, want IngotIdentifier", fn)
		}
		call := &ingot.FunctionCall{Base: base, Function: ident}
		for _, a := range raw.Arguments {
			arg, err := decodeIngotExpression(a)
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
		}
		return call, nil
	case "IngotIdentifier":
		return &ingot.Identifier{Base: base, Name: raw.Name}, nil
	case "IngotLiteral":
		var value string
		if len(raw.Value) > 0 && string(raw.Value) != "null" {
			if err := json.Unmarshal(raw.Value, &value); err != nil {
				return nil, fmt.Errorf("ast: %w", err)
			}
		}
		return &ingot.Literal{Base: base, Kind: raw.Kind, Value: value}, nil
	case "":
		return nil, fmt.Errorf("ast: ingot node object missing nodeType")
	default:
		return nil, fmt.Errorf("ast: unknown ingot nodeType %q", raw.NodeType)
	}
}

func typedNames(raws []rawTypedName) []ingot.TypedName {
	out := make([]ingot.TypedName, len(raws))
	for i, r := range raws {
		out[i] = ingot.TypedName{Name: r.Name, Src: r.Src}
	}
	return out
}

func decodeIngotStatement(data json.RawMessage) (ingot.Statement, error) {
	n, err := decodeIngotNode(data)
	if err != nil {
		return nil, err
	}
	stmt, ok := n.(ingot.Statement)
	if !ok {
		return nil, fmt.Errorf("ast: ingot node %T is not a statement", n)
	}
	return stmt, nil
}

func decodeIngotExpression(data json.RawMessage) (ingot.Expression, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	n, err := decodeIngotNode(data)
	if err != nil {
		return nil, err
	}
	expr, ok := n.(ingot.Expression)
	if !ok {
		return nil, fmt.Errorf("ast: ingot node %T is not an expression", n)
	}
	return expr, nil
}

func decodeIngotBlock(data json.RawMessage) (*ingot.Block, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	n, err := decodeIngotNode(data)
	if err != nil {
		return nil, err
	}
	block, ok := n.(*ingot.Block)
	if !ok {
		return nil, fmt.Errorf("ast: ingot body is %T, want IngotBlock", n)
	}
	return block, nil
}
