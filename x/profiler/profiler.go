package profiler

import (
	"fmt"

	"github.com/carbidelang/carbide/analysis"
	"github.com/carbidelang/carbide/ast"
)

// profiler is a minimal analysis.Profiler
type profiler struct {
	enabled    bool
	skipFilter SkipFilter
	labeler    Labeler
}

var _ analysis.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Start(decl ast.Declaration) func() {
	return func() {}
}

// spanName returns a pretty label and the declared name for a definition. If
// there is no pretty label, then the pretty label is the declared name.
func (p *profiler) spanName(decl ast.Declaration) (string, string) {
	name := decl.DeclarationName()
	if name == "" {
		return "", ""
	}
	pretty := name
	if p.labeler != nil {
		if label := p.labeler(decl); label != "" {
			pretty = label
		}
	}
	return pretty, name
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(decl ast.Declaration) bool {
	return !p.enabled || defaultSkipFilter(decl) || p.skipFilter != nil && p.skipFilter(decl)
}

// namespace returns the name of the contract a definition is declared in, or
// an empty string for file-level definitions.
func namespace(decl ast.Declaration) string {
	if contract, ok := decl.EnclosingScope().(*ast.ContractDefinition); ok {
		return contract.Name
	}
	return ""
}

// docText returns the raw documentation comment attached to a definition.
func docText(decl ast.Declaration) string {
	var doc *ast.StructuredDocumentation
	switch d := decl.(type) {
	case *ast.FunctionDefinition:
		doc = d.Documentation
	case *ast.ModifierDefinition:
		doc = d.Documentation
	case *ast.VariableDeclaration:
		doc = d.Documentation
	}
	if doc == nil {
		return ""
	}
	return doc.Text
}
