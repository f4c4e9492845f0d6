package importer

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// section is a heading-delimited slice of a markdown document. Text
// before the first heading lands in a section with an empty title.
type section struct {
	Title string
	Body  string
}

const mdExtensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

// splitSections cuts a markdown document at its headings. Each
// section body is plain text: markup is parsed away, paragraphs keep
// their blank-line separation so the chunker can see them.
func splitSections(source []byte) []section {
	p := parser.NewWithExtensions(mdExtensions)
	doc := p.Parse(source)

	var sections []section
	var title string
	var body strings.Builder

	flush := func() {
		text := strings.TrimSpace(body.String())
		body.Reset()
		if text == "" {
			return
		}
		sections = append(sections, section{Title: title, Body: text})
	}

	for _, block := range doc.GetChildren() {
		if heading, ok := block.(*ast.Heading); ok {
			flush()
			title = nodeText(heading)
			continue
		}

		if text := nodeText(block); text != "" {
			body.WriteString(text)
			body.WriteString("\n\n")
		}
	}
	flush()

	return sections
}

// nodeText flattens a block's subtree into plain text.
func nodeText(node ast.Node) string {
	var sb strings.Builder

	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		switch v := n.(type) {
		case *ast.Text:
			if entering {
				sb.Write(v.Literal)
			}
		case *ast.Code:
			if entering {
				sb.Write(v.Literal)
			}
		case *ast.CodeBlock:
			if entering {
				sb.WriteString("\n")
				sb.Write(v.Literal)
				sb.WriteString("\n")
			}
		case *ast.Paragraph, *ast.ListItem:
			if !entering {
				sb.WriteString("\n")
			}
		case *ast.Softbreak, *ast.Hardbreak:
			if entering {
				sb.WriteString(" ")
			}
		}
		return ast.GoToNext
	})

	return strings.TrimSpace(sb.String())
}
