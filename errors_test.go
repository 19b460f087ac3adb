package mailclean_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/mailclean"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application error", func(t *testing.T) {
		t.Parallel()

		err := mailclean.Errorf(mailclean.EINVALID, "bad input")
		assert.Equal(t, mailclean.EINVALID, mailclean.ErrorCode(err))
	})

	t.Run("returns code for wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := mailclean.Errorf(mailclean.ENOTFOUND, "missing")
		wrapped := errors.Join(errors.New("outer"), err)
		assert.Equal(t, mailclean.ENOTFOUND, mailclean.ErrorCode(wrapped))
	})

	t.Run("returns EINTERNAL for non-application error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, mailclean.EINTERNAL, mailclean.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", mailclean.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application error", func(t *testing.T) {
		t.Parallel()

		err := mailclean.Errorf(mailclean.EINVALID, "level %q unknown", "max")
		assert.Equal(t, `level "max" unknown`, mailclean.ErrorMessage(err))
	})

	t.Run("returns generic message for non-application error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", mailclean.ErrorMessage(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", mailclean.ErrorMessage(nil))
	})
}
