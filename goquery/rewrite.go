// Package goquery provides HTML preparation and fallback text extraction for
// email parts using the goquery DOM API.
package goquery

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailclean"
)

// Ensure Rewriter implements mailclean.HTMLRewriter at compile time.
var _ mailclean.HTMLRewriter = (*Rewriter)(nil)

// Rewriter prepares an HTML part for Markdown conversion:
//   - <img> tags with a cid: source become "[Inline image: <id>]"
//   - remaining <img> tags with alt text become "[Image: <alt>]"
//   - any other <img> tags are dropped
//   - fragment-only anchors are unwrapped to their text
type Rewriter struct{}

// NewRewriter creates a new Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// RewriteHTML rewrites a single HTML part and returns the result.
func (r *Rewriter) RewriteHTML(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", mailclean.Errorf(mailclean.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", mailclean.Errorf(mailclean.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if len(src) > 4 && strings.EqualFold(src[:4], "cid:") {
			replaceWithText(s, "[Inline image: "+src[4:]+"]")
			return
		}
		if alt := strings.TrimSpace(s.AttrOr("alt", "")); alt != "" {
			replaceWithText(s, "[Image: "+alt+"]")
			return
		}
		s.Remove()
	})

	// Fragment-only anchors carry no information once converted to
	// Markdown; keep just their text.
	doc.Find(`a[href^="#"]`).Each(func(_ int, s *goquery.Selection) {
		replaceWithText(s, s.Text())
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return out, nil
}

// replaceWithText replaces a selection with a plain text node.
func replaceWithText(s *goquery.Selection, text string) {
	s.ReplaceWithHtml(html.EscapeString(text))
}
