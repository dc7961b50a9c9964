// Copyright © 2025 The Carbide authors

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/asttest"
	"github.com/carbidelang/carbide/report"
)

// --- Registration tests ---

func TestRegistrar_ScopeAnnotations(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	fn := b.Function("f", b.Params(b.Var("a", "uint256")), nil, b.Block())
	contract := b.Contract("C", fn)
	unit := b.SourceUnit(contract)

	table := NewSymbolTable()
	NewRegistrar(table, report.NewReporter()).Register(unit)

	assert.Nil(t, unit.Annotation().Scope)
	assert.Same(t, ast.Node(unit), contract.Annotation().Scope)
	assert.Same(t, ast.Node(contract), fn.Annotation().Scope)
	assert.Same(t, ast.Node(fn), fn.Parameters.Parameters[0].Annotation().Scope)

	require.NotNil(t, table.ContainerOf(fn))
	assert.Len(t, table.ContainerOf(fn).Find("a"), 1, "parameters are active immediately")
	assert.Same(t, table.Global(), table.current, "registration rewinds to the global scope")
}

func TestRegistrar_LocalsStartInactive(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	local := b.Var("x", "uint256")
	body := b.Block(b.DeclStmt(nil, local))
	fn := b.Function("f", nil, nil, body)
	unit := b.SourceUnit(b.Contract("C", fn))

	table := NewSymbolTable()
	NewRegistrar(table, report.NewReporter()).Register(unit)

	container := table.ContainerOf(body)
	require.NotNil(t, container)
	assert.Empty(t, container.Find("x"), "statement locals wait for activation")
	container.Activate("x")
	assert.Len(t, container.Find("x"), 1)
}

func TestRegistrar_Redeclaration(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	first := b.Var("x", "uint256")
	second := b.Function("x", nil, nil, nil)
	unit := b.SourceUnit(b.Contract("C", first, second))

	reporter := report.NewReporter()
	NewRegistrar(NewSymbolTable(), reporter).Register(unit)

	d := asttest.RequireDiagnostic(t, reporter.Diagnostics(), 2333, "Identifier already declared.")
	assert.Equal(t, second.Location(), d.Location)
	require.Len(t, d.Secondary, 1)
	assert.Equal(t, "The previous declaration is here:", d.Secondary[0].Message)
	assert.Equal(t, first.Location(), d.Secondary[0].Location)
}

func TestRegistrar_OverloadsDoNotConflict(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", b.Params(b.Var("a", "uint256")), nil, nil),
		b.Function("f", nil, nil, nil),
	))

	reporter := report.NewReporter()
	table := NewSymbolTable()
	NewRegistrar(table, reporter).Register(unit)

	asttest.AssertNoDiagnostics(t, reporter.Diagnostics())
}

// --- Resolution tests ---

func TestAnalyze_BindsStateVariable(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	supply := b.Var("supply", "uint256")
	use := b.Ident("supply")
	unit := b.SourceUnit(b.Contract("C",
		supply,
		b.Function("total", nil, nil, b.Block(b.ExprStmt(use))),
	))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	asttest.AssertNoDiagnostics(t, result.Reporter.Diagnostics())
	assert.Same(t, supply, use.Annotation().ReferencedDeclaration)
}

func TestAnalyze_NearestScopeWins(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	state := b.Var("x", "uint256")
	local := b.Var("x", "uint256")
	use := b.Ident("x")
	unit := b.SourceUnit(b.Contract("C",
		state,
		b.Function("f", nil, nil, b.Block(
			b.DeclStmt(nil, local),
			b.ExprStmt(use),
		)),
	))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded, "shadowing across scopes is legal")
	assert.Same(t, local, use.Annotation().ReferencedDeclaration)
}

func TestAnalyze_UndeclaredIdentifier(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	use := b.Ident("missing")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block(b.ExprStmt(use))),
	))

	result := Analyze(unit, nil)
	assert.False(t, result.Succeeded)
	d := asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576, "Undeclared identifier.")
	assert.Equal(t, "Undeclared identifier.", d.Message, "nothing nearby, no suggestion")
	assert.Equal(t, use.Location(), d.Location)
	assert.Nil(t, use.Annotation().ReferencedDeclaration)
}

func TestAnalyze_UndeclaredWithSuggestion(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	unit := b.SourceUnit(b.Contract("C",
		b.Var("supply", "uint256"),
		b.Function("f", nil, nil, b.Block(b.ExprStmt(b.Ident("suply")))),
	))

	result := Analyze(unit, nil)
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576,
		`Undeclared identifier. Did you mean "supply"?`)
}

func TestAnalyze_UseBeforeDeclarationVisible(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	early := b.Ident("x")
	late := b.Ident("x")
	local := b.Var("x", "uint256")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block(
			b.ExprStmt(early),
			b.DeclStmt(nil, local),
			b.ExprStmt(late),
		)),
	))

	result := Analyze(unit, nil)
	assert.False(t, result.Succeeded)
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576,
		`Undeclared identifier. "x" is not (or not yet) visible at this point.`)
	assert.Nil(t, early.Annotation().ReferencedDeclaration)
	assert.Same(t, local, late.Annotation().ReferencedDeclaration,
		"the name becomes visible once its statement completes")
}

func TestAnalyze_SelfReferenceInInitializer(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	init := b.Ident("x")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block(
			b.DeclStmt(init, b.Var("x", "uint256")),
		)),
	))

	result := Analyze(unit, nil)
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576,
		`"x" is not (or not yet) visible at this point.`)
}

func TestAnalyze_ForLoopScope(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	counter := b.Var("i", "uint256")
	inLoop := b.Ident("i")
	after := b.Ident("i")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block(
			b.For(
				b.DeclStmt(b.Number("0"), counter),
				b.Binary(inLoop, "<", b.Number("10")),
				nil,
				b.Block(),
			),
			b.ExprStmt(after),
		)),
	))

	result := Analyze(unit, nil)
	assert.Same(t, counter, inLoop.Annotation().ReferencedDeclaration,
		"the loop variable is visible in the condition")
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576, "Undeclared identifier.")
	assert.Nil(t, after.Annotation().ReferencedDeclaration,
		"the loop variable stays inside the loop scope")
}

func TestAnalyze_OverloadsBecomeCandidates(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	f1 := b.Function("f", b.Params(b.Var("a", "uint256")), nil, nil)
	f2 := b.Function("f", b.Params(b.Var("a", "uint256"), b.Var("b", "uint256")), nil, nil)
	use := b.Ident("f")
	unit := b.SourceUnit(b.Contract("C",
		f1, f2,
		b.Function("g", nil, nil, b.Block(b.ExprStmt(use))),
	))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded, "overload choice is deferred, not an error")
	assert.Nil(t, use.Annotation().ReferencedDeclaration)
	require.Len(t, use.Annotation().CandidateDeclarations, 2)
	assert.Contains(t, use.Annotation().CandidateDeclarations, ast.Declaration(f1))
	assert.Contains(t, use.Annotation().CandidateDeclarations, ast.Declaration(f2))
}

func TestAnalyze_ParametersAndReturns(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	param := b.Var("a", "uint256")
	retVar := b.Var("b", "uint256")
	useParam := b.Ident("a")
	useRet := b.Ident("b")
	ret := b.Return(useRet)
	returns := b.Params(retVar)
	fn := b.Function("f", b.Params(param), returns, b.Block(
		b.ExprStmt(useParam),
		ret,
	))
	unit := b.SourceUnit(b.Contract("C", fn))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Same(t, param, useParam.Annotation().ReferencedDeclaration)
	assert.Same(t, retVar, useRet.Annotation().ReferencedDeclaration)
	assert.Same(t, returns, ret.Annotation().FunctionReturnParameters)
}

func TestAnalyze_ReturnInsideModifier(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	ret := b.Return(nil)
	unit := b.SourceUnit(b.Contract("C",
		b.Modifier("m", nil, b.Block(ret)),
	))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Nil(t, ret.Annotation().FunctionReturnParameters,
		"a modifier body has no return parameters to bind")
}

func TestAnalyze_ReturnOutsideCallablePanics(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	unit := b.SourceUnit(b.Contract("C",
		b.Block(b.Return(nil)),
	))

	assert.Panics(t, func() { Analyze(unit, nil) })
}

func TestAnalyze_TryCatchClauseScope(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	errParam := b.Var("reason", "string")
	use := b.Ident("reason")
	after := b.Ident("reason")
	clause := b.Clause("Error", b.Params(errParam), b.Block(b.ExprStmt(use)))
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block(
			b.Try(b.Call(b.Ident("f")), clause),
			b.ExprStmt(after),
		)),
	))

	result := Analyze(unit, nil)
	assert.Same(t, errParam, use.Annotation().ReferencedDeclaration,
		"clause parameters are active in the clause body")
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576, "Undeclared identifier.")
	assert.Nil(t, after.Annotation().ReferencedDeclaration)
}

// --- Path resolution tests ---

func TestAnalyze_TypeNamePath(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	structDef := b.Struct("S", b.Var("v", "uint256"))
	path := b.Path("S")
	unit := b.SourceUnit(b.Contract("C",
		structDef,
		b.TypedVar("s", path),
	))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Same(t, structDef, path.Annotation().ReferencedDeclaration)
}

func TestAnalyze_QualifiedTypeNamePath(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	structDef := b.Struct("S", b.Var("v", "uint256"))
	lib := b.Library("L", structDef)
	path := b.Path("L", "S")
	unit := b.SourceUnit(
		lib,
		b.Contract("C", b.TypedVar("s", path)),
	)

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Same(t, structDef, path.Annotation().ReferencedDeclaration)
}

func TestAnalyze_UnresolvedPathIsFatal(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	path := b.Path("Missing")
	sibling := b.Ident("x")
	x := b.Var("x", "uint256")
	unit := b.SourceUnit(b.Contract("C",
		x,
		b.TypedVar("s", path),
		b.Function("f", nil, nil, b.Block(b.ExprStmt(sibling))),
	))

	result := Analyze(unit, nil)
	assert.False(t, result.Succeeded)
	d := asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7920, "Identifier not found or not unique.")
	assert.True(t, d.Fatal)
	assert.Nil(t, path.Annotation().ReferencedDeclaration)
	assert.Same(t, x, sibling.Annotation().ReferencedDeclaration,
		"sibling subtrees still resolve after a fatal diagnostic")
}

func TestAnalyze_AmbiguousPathIsFatal(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	path := b.Path("f")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, nil),
		b.Function("f", b.Params(b.Var("a", "uint256")), nil, nil),
		b.TypedVar("s", path),
	))

	result := Analyze(unit, nil)
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7920, "Identifier not found or not unique.")
}

// --- Mode and configuration tests ---

func TestAnalyze_DeclarationsOnly(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	use := b.Ident("missing")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block(b.ExprStmt(use))),
	))

	result := Analyze(unit, &Config{DeclarationsOnly: true})
	assert.True(t, result.Succeeded)
	asttest.AssertNoDiagnostics(t, result.Reporter.Diagnostics())
	assert.Nil(t, use.Annotation().ReferencedDeclaration, "bodies are skipped entirely")
}

func TestAnalyze_DeclarationsOnlyStillResolvesSurfaces(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	structDef := b.Struct("S", b.Var("v", "uint256"))
	path := b.Path("S")
	badInit := b.Ident("missing")
	unit := b.SourceUnit(b.Contract("C",
		structDef,
		b.TypedVar("s", path),
		withValue(b.Var("x", "uint256"), badInit),
	))

	result := Analyze(unit, &Config{DeclarationsOnly: true})
	assert.False(t, result.Succeeded)
	assert.Same(t, structDef, path.Annotation().ReferencedDeclaration,
		"type names on declaration surfaces still resolve")
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 7576, "Undeclared identifier.")
}

// withValue attaches an initializer expression to a state variable.
func withValue(v *ast.VariableDeclaration, value ast.Node) *ast.VariableDeclaration {
	v.Value = value
	return v
}

func TestAnalyze_Globals(t *testing.T) {
	b := asttest.NewBuilder("builtin.crb")
	global := b.Var("now", "uint256")

	src := asttest.NewBuilder("test.crb")
	use := src.Ident("now")
	unit := src.SourceUnit(src.Contract("C",
		src.Function("f", nil, nil, src.Block(src.ExprStmt(use))),
	))

	result := Analyze(unit, &Config{Globals: []ast.Declaration{global}})
	assert.True(t, result.Succeeded)
	assert.Same(t, global, use.Annotation().ReferencedDeclaration)
}

func TestAnalyze_GlobalRedeclarationReported(t *testing.T) {
	b := asttest.NewBuilder("builtin.crb")
	globals := []ast.Declaration{b.Var("now", "uint256"), b.Var("now", "uint256")}

	result := Analyze(b.SourceUnit(), &Config{Globals: globals})
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 2333, "Identifier already declared.")
}

// --- Documentation tag tests ---

func TestAnalyze_InheritdocBinds(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	base := b.Contract("Base")
	fn := b.Function("f", nil, nil, nil)
	fn.Documentation = b.Doc("@inheritdoc Base")
	unit := b.SourceUnit(base, b.Contract("C", fn))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Same(t, base, fn.Annotation().InheritdocReference)
}

func TestAnalyze_InheritdocInexistent(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	fn := b.Function("f", nil, nil, nil)
	fn.Documentation = b.Doc("@inheritdoc Nowhere")
	unit := b.SourceUnit(b.Contract("C", fn))

	result := Analyze(unit, nil)
	d := asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 9397,
		`Documentation tag @inheritdoc references inexistent contract "Nowhere".`)
	assert.Equal(t, report.CategoryDocstring, d.Category)
	assert.Nil(t, fn.Annotation().InheritdocReference)
}

func TestAnalyze_InheritdocNotAContract(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	fn := b.Function("f", nil, nil, nil)
	fn.Documentation = b.Doc("@inheritdoc S")
	unit := b.SourceUnit(b.Struct("S"), b.Contract("C", fn))

	result := Analyze(unit, nil)
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 1430,
		`Documentation tag @inheritdoc reference "S" is not a contract.`)
	assert.Nil(t, fn.Annotation().InheritdocReference)
}

func TestAnalyze_InheritdocRepeated(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	base := b.Contract("Base")
	fn := b.Function("f", nil, nil, nil)
	fn.Documentation = b.Doc("@inheritdoc Base\n@inheritdoc Base")
	unit := b.SourceUnit(base, b.Contract("C", fn))

	result := Analyze(unit, nil)
	asttest.RequireDiagnostic(t, result.Reporter.Diagnostics(), 5142,
		"Documentation tag @inheritdoc can only be given once.")
	assert.Nil(t, fn.Annotation().InheritdocReference)
}

func TestAnalyze_InheritdocOnVariable(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	base := b.Contract("Base")
	v := b.Var("supply", "uint256")
	v.Documentation = b.Doc("@inheritdoc Base")
	unit := b.SourceUnit(base, b.Contract("C", v))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Same(t, base, v.Annotation().InheritdocReference)
}

func TestAnalyze_InheritdocOnModifier(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	base := b.Contract("Base")
	m := b.Modifier("guard", nil, b.Block())
	m.Documentation = b.Doc("@inheritdoc Base")
	unit := b.SourceUnit(base, b.Contract("C", m))

	result := Analyze(unit, nil)
	assert.True(t, result.Succeeded)
	assert.Same(t, base, m.Annotation().InheritdocReference)
}

// --- Profiler tests ---

type recordingProfiler struct {
	events []string
}

func (p *recordingProfiler) Start(decl ast.Declaration) func() {
	p.events = append(p.events, "start "+decl.DeclarationName())
	return func() {
		p.events = append(p.events, "end "+decl.DeclarationName())
	}
}

func TestAnalyze_ProfilerObservesDefinitions(t *testing.T) {
	b := asttest.NewBuilder("test.crb")
	unit := b.SourceUnit(b.Contract("C",
		b.Function("f", nil, nil, b.Block()),
		b.Modifier("m", nil, b.Block()),
	))

	profiler := &recordingProfiler{}
	result := Analyze(unit, &Config{Profiler: profiler})
	assert.True(t, result.Succeeded)
	assert.Equal(t, []string{
		"start C",
		"start f", "end f",
		"start m", "end m",
		"end C",
	}, profiler.events)
}
