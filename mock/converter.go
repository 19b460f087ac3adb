package mock

import "github.com/fwojciec/mailclean"

var _ mailclean.Converter = (*Converter)(nil)

// Converter is a mock implementation of mailclean.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
