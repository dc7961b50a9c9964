// Copyright © 2025 The Carbide authors

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/carbidelang/carbide/analysis"
	"github.com/carbidelang/carbide/ast"
	"github.com/carbidelang/carbide/report"
	"github.com/carbidelang/carbide/x/profiler"
	"github.com/spf13/cobra"
)

var (
	resolveJSON      bool
	resolveEmitAST   bool
	resolveDeclsOnly bool
	resolveProfile   string
	resolveExcludes  []string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] [files...]",
	Short: "Resolve names and references in carbide syntax trees",
	Long: `Resolve names and references in carbide syntax trees.

The resolver loads parsed trees from JSON, registers every declaration into
its scope, then binds identifiers, dotted paths, inline assembly references,
and @inheritdoc tags to the declarations they name. Resolution continues
past failures, so a single run reports everything it can find.

With no files, reads a single tree from stdin. With files, resolves each
tree and reports all findings to stderr.

Exit codes:
  0  Every reference resolved (warnings may still be reported)
  1  One or more errors were reported
  2  Bad invocation (invalid flags, unreadable files, malformed trees)

Examples:
  carbide resolve token.json                  # Resolve a single tree
  carbide resolve a.json b.json               # Resolve multiple trees
  carbide resolve ./...                       # Resolve every .json tree below .
  carbide resolve --exclude='build' ./...     # Skip a directory
  carbide resolve --json token.json           # Output diagnostics as JSON
  carbide resolve --emit-ast token.json       # Print the annotated tree
  carbide resolve --declarations-only t.json  # Skip executable bodies
  carbide resolve --profile out.grind t.json  # Profile the pass (callgrind)
  cat token.json | carbide resolve            # Resolve from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		if resolveJSON && resolveEmitAST {
			fmt.Fprintln(os.Stderr, "carbide resolve: cannot combine --json with --emit-ast")
			os.Exit(2)
		}

		var paths []string
		var sources [][]byte
		if len(args) == 0 {
			src, err := readStdin()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
				os.Exit(2)
			}
			sources = [][]byte{src}
			paths = []string{"<stdin>"}
		} else {
			expanded, err := expandArgs(args, resolveExcludes)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			paths = expanded
			for _, path := range paths {
				src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				sources = append(sources, src)
			}
		}

		cfg := &analysis.Config{DeclarationsOnly: resolveDeclsOnly}
		var endProfile func() error
		if resolveProfile != "" {
			prof := profiler.NewCallgrindProfiler()
			if err := prof.SetFile(resolveProfile); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if err := prof.Enable(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			cfg.Profiler = prof
			endProfile = prof.Complete
		}

		var allDiags []*report.Error
		failed := false
		for i, src := range sources {
			unit, err := ast.UnmarshalSourceUnit(src)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", paths[i], err)
				os.Exit(2)
			}
			result := analysis.Analyze(unit, cfg)
			allDiags = append(allDiags, result.Reporter.Diagnostics()...)
			if !result.Succeeded {
				failed = true
			}
			if resolveEmitAST {
				out, err := ast.MarshalIndent(unit)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", paths[i], err)
					os.Exit(2)
				}
				fmt.Println(string(out))
			}
		}

		if endProfile != nil {
			if err := endProfile(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		}

		if resolveJSON {
			if err := writeDiagnosticsJSON(os.Stdout, allDiags); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		} else if len(allDiags) > 0 {
			renderDiagnostics(allDiags)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func writeDiagnosticsJSON(w io.Writer, diags []*report.Error) error {
	if diags == nil {
		// A clean run reports an empty list, not JSON null.
		diags = []*report.Error{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

func readStdin() ([]byte, error) {
	return os.ReadFile("/dev/stdin")
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false,
		"Output diagnostics as JSON.")
	resolveCmd.Flags().BoolVar(&resolveEmitAST, "emit-ast", false,
		"Print the annotated syntax tree as JSON to stdout.")
	resolveCmd.Flags().BoolVar(&resolveDeclsOnly, "declarations-only", false,
		"Resolve declaration surfaces only, skipping executable bodies.")
	resolveCmd.Flags().StringVar(&resolveProfile, "profile", "",
		"Write a callgrind profile of the pass to the given file.")
	resolveCmd.Flags().StringArrayVar(&resolveExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
