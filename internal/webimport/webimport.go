package webimport

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractLines pulls candidate ingredient lines out of a recipe page:
// the text of each <li> element, in document order, whitespace-normalized.
// Recipe pages almost always mark their ingredient lists up as list items.
func ExtractLines(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			text := strings.Join(strings.Fields(textContent(n)), " ")
			if text != "" {
				lines = append(lines, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return lines, nil
}

// textContent concatenates the text nodes under n, skipping script and
// style bodies.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
