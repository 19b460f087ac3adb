package mock

import "github.com/fwojciec/mailclean"

var _ mailclean.ReplyUnwrapper = (*Unwrapper)(nil)

// Unwrapper is a mock implementation of mailclean.ReplyUnwrapper.
type Unwrapper struct {
	UnwrapFn func(text string) (string, error)
}

func (u *Unwrapper) Unwrap(text string) (string, error) {
	return u.UnwrapFn(text)
}
