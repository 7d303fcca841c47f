package token

import (
	"strings"

	"go.typeforge.dev/ts2schema/ast"
)

// ParseJSDoc parses the trimmed body of a JSDoc token (as produced by
// Tokenize) into a description and a tag map. Lines before the first
// "@tagName ..." line form the description (joined with newlines, then
// trimmed); each "@tagName value" line starts a new tag whose value
// accumulates any following non-"@" lines, joined with single spaces,
// until the next tag or the end of the comment.
func ParseJSDoc(raw string) *ast.JSDoc {
	lines := strings.Split(raw, "\n")

	doc := &ast.JSDoc{Tags: make(map[string]string)}

	var (
		descLines []string
		curTag    string
		curLines  []string
		inTag     bool
	)

	flushTag := func() {
		if inTag {
			doc.Tags[curTag] = strings.TrimSpace(strings.Join(curLines, " "))
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "@") {
			flushTag()

			rest := trimmed[1:]
			name, value, _ := strings.Cut(rest, " ")
			name = strings.TrimSpace(name)

			curTag = name
			curLines = []string{strings.TrimSpace(value)}
			inTag = true

			continue
		}

		if inTag {
			curLines = append(curLines, trimmed)
		} else {
			descLines = append(descLines, line)
		}
	}

	flushTag()

	doc.Description = strings.TrimSpace(strings.Join(descLines, "\n"))

	return doc
}
