package quote_test

import (
	"testing"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Unwrapper implements mailclean.ReplyUnwrapper at compile time.
var _ mailclean.ReplyUnwrapper = (*quote.Unwrapper)(nil)

func TestUnwrapper_Unwrap(t *testing.T) {
	t.Parallel()

	t.Run("cuts at quote prefix", func(t *testing.T) {
		t.Parallel()

		text := "Thanks, sounds good.\n\n> Can you make it Tuesday?\n> Best, Bob"

		u := quote.NewUnwrapper()
		top, err := u.Unwrap(text)

		require.NoError(t, err)
		assert.Equal(t, "Thanks, sounds good.\n", top)
	})

	t.Run("cuts at attribution line", func(t *testing.T) {
		t.Parallel()

		text := "Works for me.\n\nOn Mon, Jan 5, 2026 at 9:14 AM Bob Smith <bob@example.com> wrote:\n> original text"

		u := quote.NewUnwrapper()
		top, err := u.Unwrap(text)

		require.NoError(t, err)
		assert.Equal(t, "Works for me.\n", top)
	})

	t.Run("cuts at original message divider", func(t *testing.T) {
		t.Parallel()

		text := "New reply.\n\n-----Original Message-----\nFrom: Bob\nOld body."

		u := quote.NewUnwrapper()
		top, err := u.Unwrap(text)

		require.NoError(t, err)
		assert.Equal(t, "New reply.\n", top)
	})

	t.Run("cuts at apple mail forward marker", func(t *testing.T) {
		t.Parallel()

		text := "FYI below.\n\nBegin forwarded message:\nFrom: Carol\nSubject: numbers"

		u := quote.NewUnwrapper()
		top, err := u.Unwrap(text)

		require.NoError(t, err)
		assert.Equal(t, "FYI below.\n", top)
	})

	t.Run("cuts at outlook header block", func(t *testing.T) {
		t.Parallel()

		text := "See below.\n\nFrom: Bob Smith\nSent: Monday, January 5, 2026\nTo: Alice\nSubject: Re: numbers\n\nOld body."

		u := quote.NewUnwrapper()
		top, err := u.Unwrap(text)

		require.NoError(t, err)
		assert.Equal(t, "See below.\n", top)
	})

	t.Run("lone From line is not a header block", func(t *testing.T) {
		t.Parallel()

		text := "From: my perspective this is fine.\nNothing quoted here."

		u := quote.NewUnwrapper()
		_, err := u.Unwrap(text)

		require.Error(t, err)
		assert.Equal(t, mailclean.ENOTFOUND, mailclean.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when nothing is quoted", func(t *testing.T) {
		t.Parallel()

		u := quote.NewUnwrapper()
		_, err := u.Unwrap("Just a plain message.\nNo quoting at all.")

		require.Error(t, err)
		assert.Equal(t, mailclean.ENOTFOUND, mailclean.ErrorCode(err))
	})

	t.Run("quote on the first line leaves nothing above", func(t *testing.T) {
		t.Parallel()

		u := quote.NewUnwrapper()
		top, err := u.Unwrap("> the whole thing is a quote")

		require.NoError(t, err)
		assert.Equal(t, "", top)
	})
}
