// Copyright © 2025 The Carbide authors

package cmd

import (
	"os"

	"github.com/carbidelang/carbide/diagnostic"
	"github.com/carbidelang/carbide/report"
)

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: diagnostic.ParseColorMode(colorFlag)}
}

// renderDiagnostics renders reporter output with diagnostic formatting to stderr.
func renderDiagnostics(errs []*report.Error) {
	r := newRenderer()
	_ = r.RenderAll(os.Stderr, diagnostic.FromErrors(errs))
}
