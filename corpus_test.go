package mailclean_test

import (
	"testing"

	"github.com/fwojciec/mailclean"
	"github.com/stretchr/testify/assert"
)

func TestSignatureCorpus(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates footers", func(t *testing.T) {
		t.Parallel()

		corpus := mailclean.NewSignatureCorpus([]string{"a", "b", "a"})
		assert.Equal(t, 2, corpus.Size())
		assert.True(t, corpus.Contains("a"))
		assert.True(t, corpus.Contains("b"))
		assert.False(t, corpus.Contains("c"))
	})

	t.Run("Footers returns a copy", func(t *testing.T) {
		t.Parallel()

		corpus := mailclean.NewSignatureCorpus([]string{"a", "b"})
		footers := corpus.Footers()
		footers[0] = "mutated"
		assert.Equal(t, []string{"a", "b"}, corpus.Footers())
	})

	t.Run("empty corpus", func(t *testing.T) {
		t.Parallel()

		corpus := mailclean.NewSignatureCorpus(nil)
		assert.Equal(t, 0, corpus.Size())
		assert.False(t, corpus.Contains(""))
	})
}
