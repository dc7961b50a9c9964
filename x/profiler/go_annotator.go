package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/carbidelang/carbide/analysis"
	"github.com/carbidelang/carbide/ast"
)

// pprofAnnotator appends labels to pprof output if pprof is enabled. It does
// not start pprof for the caller: an analysis pass is usually a small part
// of a larger program that decides for itself when profiling runs.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ analysis.Profiler = &pprofAnnotator{}

func NewPprofAnnotator(parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(decl ast.Declaration) func() {
	if p.skipTrace(decl) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, _ := p.spanName(decl)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("definition", prettyLabel))
	// The labels propagate to any goroutine started from here.
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
