package mock

import "github.com/fwojciec/mailclean"

var _ mailclean.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mailclean.Extractor.
type Extractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *Extractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
