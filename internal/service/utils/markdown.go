package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var sanitizePolicy = bluemonday.UGCPolicy()

// ExtractTitle returns the text of the first level-1 heading in a
// markdown document, or false if the document has none.
func ExtractTitle(content string) (string, bool) {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		if heading.Lines().Len() > 0 {
			segment := heading.Lines().At(0)
			title = strings.TrimSpace(string(segment.Value(source)))
		}
		return ast.WalkStop, nil
	})

	if title == "" {
		return "", false
	}
	return title, true
}

// SanitizeMarkdown strips dangerous raw HTML embedded in markdown
// content before it is persisted.
func SanitizeMarkdown(content string) string {
	return sanitizePolicy.Sanitize(content)
}
