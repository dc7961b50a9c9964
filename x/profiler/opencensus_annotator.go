package profiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/carbidelang/carbide/analysis"
	"github.com/carbidelang/carbide/ast"
	"github.com/golang-collections/collections/stack"
	"go.opencensus.io/trace"
)

var _ analysis.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	enabled        bool
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       *stack.Stack
}

func NewOpenCensusAnnotator(parentContext context.Context) *ocAnnotator {
	return &ocAnnotator{
		currentContext: parentContext,
		contexts:       stack.New(),
	}
}

func (p *ocAnnotator) IsEnabled() bool {
	return p.enabled
}

func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.currentContext = ctx
	p.enabled = true
	return nil
}

func (p *ocAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	p.enabled = true
	return nil
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(decl ast.Declaration) func() {
	if !p.enabled || defaultSkipFilter(decl) {
		return func() {}
	}
	name := decl.DeclarationName()
	if ns := namespace(decl); ns != "" {
		name = fmt.Sprintf("%s:%s", ns, name)
	}
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, name)
	return func() {
		p.end(decl)
	}
}

func (p *ocAnnotator) end(decl ast.Declaration) {
	if loc := decl.Location(); loc != nil {
		p.currentSpan.Annotate([]trace.Attribute{
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
		}, "source")
	}
	p.currentSpan.End()
	// And pop the current context back
	p.currentContext = p.contexts.Pop().(context.Context)
	p.currentSpan = trace.FromContext(p.currentContext)
}
