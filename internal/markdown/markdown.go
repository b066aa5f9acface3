// Package markdown extracts the prose of a Markdown document. Code blocks,
// raw HTML and images are dropped; inline markup is flattened to its text.
package markdown

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Paragraphs returns one string per prose block (paragraph, heading, table
// cell) in document order, with internal whitespace collapsed.
func Paragraphs(md []byte) []string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)

	var (
		out []string
		buf bytes.Buffer
	)
	flush := func() {
		if s := strings.Join(strings.Fields(buf.String()), " "); s != "" {
			out = append(out, s)
		}
		buf.Reset()
	}

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.TableCell:
			if entering {
				buf.Reset()
			} else {
				flush()
			}
		case *ast.CodeBlock, *ast.HTMLBlock, *ast.HTMLSpan, *ast.Image:
			return ast.SkipChildren
		case *ast.Text:
			if entering {
				buf.Write(n.Literal)
			}
		case *ast.Code:
			if entering {
				buf.Write(n.Literal)
			}
		case *ast.Softbreak, *ast.Hardbreak:
			if entering {
				buf.WriteByte(' ')
			}
		}
		return ast.GoToNext
	})
	return out
}

// ToPlainText returns the document's prose blocks separated by blank lines.
func ToPlainText(md []byte) string {
	return strings.Join(Paragraphs(md), "\n\n")
}
