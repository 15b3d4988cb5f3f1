package reader

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown files using goldmark. Pipe-table cells are
// emitted one per line; other blocks keep their source lines.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	emit := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTableCell:
			emit(inlineText(n, src))
			return ast.WalkSkipChildren, nil
		case ast.KindHeading:
			emit(inlineText(n, src))
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock, ast.KindCodeBlock, ast.KindFencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				emit(string(seg.Value(src)))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// inlineText gets the text content of a goldmark AST node's inline children.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
