// Copyright © 2025 The Carbide authors

/*
Package docstring extracts documentation tags from structured comment text.

	doc     := item*
	item    := tag | word
	tag     := /@[a-zA-Z][a-zA-Z0-9-]*/
	word    := /[^\s]+/

A tag token is only recognized at a token boundary, so an interior '@' (as
in an email address) stays inside its word. Words before the first tag are
collected under the implicit "notice" tag. A tag's content is the run of
words up to the next tag, joined by single spaces.
*/
package docstring

import (
	"strings"

	parsec "github.com/prataprc/goparsec"
)

// Well-known tag names.
const (
	TagNotice     = "notice"
	TagDev        = "dev"
	TagParam      = "param"
	TagReturn     = "return"
	TagInheritdoc = "inheritdoc"
)

// Tag is a single documentation tag with its content text.
type Tag struct {
	Name    string
	Content string
}

// Doc is a parsed documentation string. Tags appear in source order and a
// name may occur more than once.
type Doc struct {
	Tags []Tag
}

// Count reports how many times the named tag occurs.
func (d *Doc) Count(name string) int {
	n := 0
	for _, tag := range d.Tags {
		if tag.Name == name {
			n++
		}
	}
	return n
}

// Content returns the content of the first occurrence of the named tag, or
// the empty string if the tag is absent.
func (d *Doc) Content(name string) string {
	for _, tag := range d.Tags {
		if tag.Name == name {
			return tag.Content
		}
	}
	return ""
}

func newTokenParser() parsec.Parser {
	tag := parsec.Token(`@[a-zA-Z][a-zA-Z0-9-]*`, "TAG")
	// word comes last because it swallows anything
	word := parsec.Token(`[^\s]+`, "WORD")
	return parsec.OrdChoice(nil, tag, word)
}

// Parse extracts the tags from documentation text. The tokenization is
// total, so any text yields a Doc; whitespace-only input yields an empty
// one.
func Parse(text string) *Doc {
	doc := &Doc{}
	s := parsec.NewScanner([]byte(text))
	parse := newTokenParser()

	name := ""
	var words []string
	flush := func() {
		if name == "" && len(words) == 0 {
			return
		}
		tagName := name
		if tagName == "" {
			tagName = TagNotice
		}
		doc.Tags = append(doc.Tags, Tag{Name: tagName, Content: strings.Join(words, " ")})
		words = nil
	}

	node, s := parse(s)
	for node != nil {
		term := terminal(node)
		if term == nil {
			break
		}
		if term.Name == "TAG" {
			flush()
			name = strings.TrimPrefix(term.Value, "@")
		} else {
			words = append(words, term.Value)
		}
		node, s = parse(s)
	}
	flush()
	return doc
}

// terminal unwraps the node lists parsec combinators produce around
// terminals.
func terminal(node parsec.ParsecNode) *parsec.Terminal {
	for {
		switch n := node.(type) {
		case []parsec.ParsecNode:
			if len(n) == 0 {
				return nil
			}
			node = n[0]
		case *parsec.Terminal:
			return n
		default:
			return nil
		}
	}
}
