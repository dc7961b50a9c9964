// Copyright © 2025 The Carbide authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbidelang/carbide/analysis"
	"github.com/carbidelang/carbide/ast"
	"github.com/ergochat/readline"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [flags] file",
	Short: "Interactively query a resolved syntax tree",
	Long: `Load a syntax tree, resolve it, and query the result interactively.

Queries:
  names            List every declared name
  lookup <name>    Show the declarations a name binds to from file scope
  path <a.b.c>     Follow a dotted path of unique names
  suggest <name>   Show declared names similar to a (misspelled) name
  doc <name|a.b>   Show a declaration's documentation comment
  help             Show this list
  quit             Leave the explorer

Diagnostics from the resolution pass render before the first prompt. Line
editing, declaration-name completion, and in-session history are supported
via readline. Use Ctrl-D to exit.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := os.ReadFile(args[0]) //nolint:gosec // CLI tool reads user-specified files
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		unit, err := ast.UnmarshalSourceUnit(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
			os.Exit(2)
		}
		result := analysis.Analyze(unit, nil)
		if diags := result.Reporter.Diagnostics(); len(diags) > 0 {
			renderDiagnostics(diags)
		}
		// Queries run from the file's scope, not the empty global one.
		result.Table.SetScope(unit)
		runExplorer(result.Table)
	},
}

func runExplorer(table *analysis.SymbolTable) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "carbide> ",
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
		AutoComplete:      &nameCompleter{table: table},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return
		}
		input := strings.TrimSpace(string(line))
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			return
		}
		execQuery(table, input)
	}
}

func execQuery(table *analysis.SymbolTable, input string) {
	fields := strings.Fields(input)
	query, rest := fields[0], fields[1:]
	switch query {
	case "names":
		for _, name := range table.Names() {
			fmt.Println(name)
		}
	case "lookup":
		if len(rest) != 1 {
			fmt.Println("usage: lookup <name>")
			return
		}
		decls := table.NameFromCurrentScope(rest[0])
		if len(decls) == 0 {
			fmt.Printf("%s is not visible here\n", rest[0])
			if s := table.SimilarNameSuggestions(rest[0]); s != "" {
				fmt.Printf("did you mean %s?\n", s)
			}
			return
		}
		for _, decl := range decls {
			fmt.Println(describe(decl))
		}
	case "path":
		if len(rest) != 1 {
			fmt.Println("usage: path <a.b.c>")
			return
		}
		decl := table.PathFromCurrentScope(strings.Split(rest[0], "."))
		if decl == nil {
			fmt.Printf("%s is not found or not unique\n", rest[0])
			return
		}
		fmt.Println(describe(decl))
	case "suggest":
		if len(rest) != 1 {
			fmt.Println("usage: suggest <name>")
			return
		}
		s := table.SimilarNameSuggestions(rest[0])
		if s == "" {
			fmt.Println("no similar names")
			return
		}
		fmt.Println(s)
	case "doc":
		if len(rest) != 1 {
			fmt.Println("usage: doc <name|a.b>")
			return
		}
		showDoc(table, rest[0])
	case "help":
		fmt.Println("queries: names, lookup <name>, path <a.b.c>, suggest <name>, doc <name>, help, quit")
	default:
		fmt.Printf("unknown query %q (try help)\n", query)
	}
}

func showDoc(table *analysis.SymbolTable, name string) {
	var decl ast.Declaration
	if strings.Contains(name, ".") {
		decl = table.PathFromCurrentScope(strings.Split(name, "."))
	} else if decls := table.NameFromCurrentScope(name); len(decls) > 0 {
		decl = decls[0]
	}
	if decl == nil {
		fmt.Printf("%s is not visible here\n", name)
		return
	}
	fmt.Println(describe(decl))
	text := documentationOf(decl)
	if text == "" {
		fmt.Println("no documentation")
		return
	}
	fmt.Println(indent.String(wordwrap.String(text, 72), 2))
}

func describe(decl ast.Declaration) string {
	if loc := decl.Location(); loc != nil {
		return fmt.Sprintf("%s %s at %s", decl.DeclarationKind(), decl.DeclarationName(), loc)
	}
	return fmt.Sprintf("%s %s", decl.DeclarationKind(), decl.DeclarationName())
}

func documentationOf(decl ast.Declaration) string {
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

// nameCompleter implements readline.AutoCompleter by enumerating declared
// names from the symbol table.
type nameCompleter struct {
	table *analysis.SymbolTable
}

var exploreQueries = []string{"names", "lookup", "path", "suggest", "doc", "help", "quit"}

func (c *nameCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])

	var candidates []string
	if start == 0 {
		for _, q := range exploreQueries {
			if strings.HasPrefix(q, prefix) {
				candidates = append(candidates, q)
			}
		}
	} else {
		if prefix == "" {
			return nil, 0
		}
		for _, name := range c.table.Names() {
			if strings.HasPrefix(name, prefix) {
				candidates = append(candidates, name)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, len(prefix)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".carbide_history")
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
