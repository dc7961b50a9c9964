// Copyright © 2025 The Carbide authors

// Package analysis implements name binding for carbide syntax trees.
//
// Analysis runs in two passes: the Registrar walks a tree once, creating a
// declaration container per scope-introducing node and recording every
// declaration in its enclosing container; the Resolver then walks the tree
// again, binding identifiers, dotted paths, inline assembly references, and
// @inheritdoc tags to declarations, and writing the outcome into node
// annotations. Diagnostics accumulate in a report.Reporter; a failed
// binding never halts the whole pass, it abandons at most the subtree that
// produced it.
package analysis

import (
	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/report"
)

// Profiler observes definition resolution. The resolver invokes Start when
// it enters a contract, function, or modifier definition; the returned
// function is invoked when the definition's subtree is done.
type Profiler interface {
	Start(decl ast.Declaration) func()
}

// Config configures an analysis run.
type Config struct {
	// DeclarationsOnly restricts resolution to declaration surfaces:
	// executable statements inside bodies are skipped entirely.
	DeclarationsOnly bool

	// Globals are declarations visible in the outermost scope, such as
	// builtin definitions provided by an embedder.
	Globals []ast.Declaration

	// Profiler, when set, instruments definition resolution.
	Profiler Profiler
}

// Result holds the output of an analysis run.
type Result struct {
	// Table holds the scope containers built during registration.
	Table *SymbolTable

	// Reporter holds every diagnostic from both passes.
	Reporter *report.Reporter

	// Succeeded is true when resolution added no error-severity
	// diagnostics. Warnings do not fail a run.
	Succeeded bool
}

// Analyze registers and resolves the tree rooted at root.
func Analyze(root ast.Node, cfg *Config) *Result {
	if cfg == nil {
		cfg = &Config{}
	}
	reporter := report.NewReporter()
	table := NewSymbolTable()

	for _, global := range cfg.Globals {
		declare(table.Global(), global, false, reporter)
	}

	// Phase 1: build scope containers and register declarations.
	NewRegistrar(table, reporter).Register(root)

	// Phase 2: bind references.
	resolver := NewResolver(table, reporter, cfg)

	return &Result{
		Table:     table,
		Reporter:  reporter,
		Succeeded: resolver.Resolve(root),
	}
}
