package webpage

import (
	"bytes"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"
)

// Document is the parsed view of a fetched page: the plain text used by
// pattern extraction and the element tree used by structured extraction.
type Document struct {
	Title     string
	PlainText string
	Tree      *goquery.Document
}

// Parse decodes raw bytes to UTF-8 using the charset from the
// Content-Type header (when declared) and builds the document views.
func Parse(raw []byte, contentType string) (*Document, error) {
	decoded := decodeCharset(raw, contentType)

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, eris.Wrap(err, "webpage: parse html")
	}

	doc := goquery.NewDocumentFromNode(root)

	return &Document{
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		PlainText: extractText(root),
		Tree:      doc,
	}, nil
}

// ParseSnippet wraps a short text snippet in a Document with no element
// tree, so snippet-only hits flow through the same extraction path.
func ParseSnippet(snippet string) *Document {
	return &Document{PlainText: snippet}
}

// decodeCharset converts raw bytes to UTF-8 when the Content-Type
// declares a non-UTF-8 charset. Unknown charsets fall through unchanged;
// the parser copes with mostly-ASCII markup either way.
func decodeCharset(raw []byte, contentType string) []byte {
	if contentType == "" {
		return raw
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return raw
	}
	charset := strings.ToLower(params["charset"])
	if charset == "" || charset == "utf-8" {
		return raw
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return raw
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// skipElements are subtrees that contribute no visible text.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
}

// blockElements get a newline after their text so labeled values on
// adjacent lines stay distinguishable for the line-anchored patterns.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "table": true,
	"section": true, "article": true, "dd": true, "dt": true,
}

// extractText walks the node tree collecting visible text.
func extractText(root *html.Node) string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				b.WriteString(text)
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteByte('\n')
		}
	}
	walk(root)

	// Text nodes leave a trailing space before each block newline.
	text := strings.ReplaceAll(b.String(), " \n", "\n")
	return strings.TrimSpace(text)
}
