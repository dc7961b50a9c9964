// Copyright © 2025 The Carbide authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/carbidelang/carbide/docs"
)

// explainCmd prints the documentation for a diagnostic code.
var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a diagnostic code",
	Long: `Explain prints the reference documentation for a diagnostic code
reported by resolve, e.g. "E7576". Without an argument the whole
reference is printed.

Examples:

  carbide explain E7576
  carbide resolve token.crb 2>&1 | grep -o 'E[0-9]*' | xargs -n1 carbide explain
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(wordwrap.String(docs.Codes, 76))
			return
		}
		section, ok := explainSection(docs.Codes, args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown diagnostic code %q (run \"carbide explain\" for the full list)\n", args[0])
			os.Exit(2)
		}
		fmt.Println(indent.String(wordwrap.String(section, 72), 2))
	},
}

// explainSection extracts one "## E1234" section from the reference.
// The code may be given with or without the "E" prefix, in any case.
func explainSection(doc, code string) (string, bool) {
	code = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(code)), "E")
	heading := "## E" + code
	var (
		lines []string
		in    bool
	)
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "## ") {
			if in {
				break
			}
			in = strings.TrimSpace(line) == heading
			continue
		}
		if in {
			lines = append(lines, line)
		}
	}
	if !in {
		return "", false
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
