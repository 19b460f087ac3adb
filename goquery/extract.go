package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailclean"
	"golang.org/x/net/html"
)

// Ensure Extractor implements mailclean.Extractor at compile time.
var _ mailclean.Extractor = (*Extractor)(nil)

// Extractor is the lenient fallback used when Markdown conversion fails. It
// tolerates malformed markup, drops script/style/head content, and joins the
// remaining block text with newlines.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText strips tags from an HTML part and returns the visible text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", mailclean.Errorf(mailclean.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", mailclean.Errorf(mailclean.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, head").Remove()

	var texts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				texts = append(texts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	return strings.Join(texts, "\n"), nil
}
