package mock

import "github.com/fwojciec/mailclean"

var _ mailclean.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of mailclean.Cleaner.
type Cleaner struct {
	CleanFn func(payload string, info *mailclean.MessageInfo) mailclean.Result
}

func (c *Cleaner) Clean(payload string, info *mailclean.MessageInfo) mailclean.Result {
	return c.CleanFn(payload, info)
}
