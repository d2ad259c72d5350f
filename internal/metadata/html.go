package metadata

import (
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// htmlMetaNames are <meta name="..."> entries whose content is personal.
var htmlMetaNames = map[string]bool{
	"author":             true,
	"keywords":           true,
	"description":        true,
	"og:title":           true,
	"profile:username":   true,
	"profile:first_name": true,
	"profile:last_name":  true,
	"twitter:creator":    true,
}

// FromHTML extracts tokens from a saved HTML page on disk.
func FromHTML(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided page path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseHTML(f)
}

// ParseHTML extracts tokens from the page title, personal <meta> tags and
// h1/h2 headings. Keyword lists are split on commas.
func ParseHTML(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title", "h1", "h2":
				if text := textContent(n); text != "" {
					tokens = append(tokens, text)
				}
			case "meta":
				tokens = append(tokens, metaTokens(n)...)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tokens, nil
}

// metaTokens returns the content of a personal meta tag, split on commas.
func metaTokens(n *html.Node) []string {
	var name, content string
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name", "property":
			name = strings.ToLower(attr.Val)
		case "content":
			content = attr.Val
		}
	}
	if !htmlMetaNames[name] || content == "" {
		return nil
	}

	out := make([]string, 0)
	for _, part := range strings.Split(content, ",") {
		if part = collapseSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// textContent concatenates the text nodes below n with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpace(sb.String())
}
