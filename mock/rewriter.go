package mock

import "github.com/fwojciec/mailclean"

var _ mailclean.HTMLRewriter = (*Rewriter)(nil)

// Rewriter is a mock implementation of mailclean.HTMLRewriter.
type Rewriter struct {
	RewriteHTMLFn func(html string) (string, error)
}

func (r *Rewriter) RewriteHTML(html string) (string, error) {
	return r.RewriteHTMLFn(html)
}
