package profiler

import (
	"regexp"
	"strings"

	"github.com/carbidelang/carbide/ast"
)

// Labeler provides an alternative name for a definition label in the trace.
type Labeler func(decl ast.Declaration) string

// WithDocLabeler labels spans using documentation magic strings.
func WithDocLabeler() Option {
	return WithLabeler(docLabeler)
}

// WithLabeler sets the labeler for tracing spans.
func WithLabeler(labeler Labeler) Option {
	return func(p *profiler) {
		p.labeler = labeler
	}
}

// DocLabel is a magic pattern used to extract definition labels.
const DocLabel = `@trace\s*{([^}]+)}`

var (
	docLabelRegExp   = regexp.MustCompile(DocLabel)
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}

	// Replace spaces with underscores
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")

	// Find the first valid label match
	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}

	return ""
}

func extractLabel(docStr string) string {
	if docStr == "" {
		return ""
	}

	matches := docLabelRegExp.FindAllStringSubmatch(docStr, -1)
	label := ""
	for _, match := range matches {
		if len(match) > 1 {
			label = match[1]
			break
		}
	}

	return strings.TrimSpace(label)
}

func cleanLabel(docStr string) string {
	return sanitizeLabel(extractLabel(docStr))
}

func docLabeler(decl ast.Declaration) string {
	return cleanLabel(docText(decl))
}
