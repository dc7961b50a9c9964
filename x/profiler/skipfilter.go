package profiler

import (
	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/docstring"
)

type SkipFilter func(decl ast.Declaration) bool

func defaultSkipFilter(decl ast.Declaration) bool {
	return decl == nil || decl.DeclarationName() == ""
}

// WithDocFilter filters to only include spans for definitions with
// documentation comments that denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic tag used to enable tracing in a profiler configured
// WithDocFilter. All definitions with a documentation comment that contains
// this tag will be traced.
const DocTrace = "trace"

func docSkipFilter(decl ast.Declaration) bool {
	text := docText(decl)
	if text == "" {
		return true
	}
	// do not skip definitions whose docs include the trace tag
	return docstring.Parse(text).Count(DocTrace) == 0
}
