package reader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLReader handles HTML files. Table cells, list items, headings and
// paragraphs each become one line, in document order.
type HTMLReader struct{}

func (p *HTMLReader) Read(r io.Reader, filename string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var b strings.Builder
	emit := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "td", "th", "li", "p", "blockquote",
				"h1", "h2", "h3", "h4", "h5", "h6":
				emit(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Prefer <body>; fall back to the whole document for fragments.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return b.String(), nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
