package clean_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/mailclean/clean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corporateFooter = "--\nJane Smith\nSenior Widget Engineer\nACME Corporation\n123 Example Street\nSpringfield\nTel: 555-0100\njane@example.com\nwww.example.com\nConfidential"

// payloadWithFooter builds a payload whose last ten lines are the footer,
// preceded by per-message body lines so the payloads are not identical.
func payloadWithFooter(n int, footer string) string {
	return fmt.Sprintf("Message body %d\nwith a second line\n%s", n, footer)
}

func TestAnalyzeCorpus(t *testing.T) {
	t.Parallel()

	t.Run("detects a footer recurring above the threshold", func(t *testing.T) {
		t.Parallel()

		payloads := make([]string, 150)
		for i := range payloads {
			payloads[i] = payloadWithFooter(i, corporateFooter)
		}

		corpus := clean.AnalyzeCorpus(payloads, 100)

		require.Equal(t, 1, corpus.Size())
		assert.Contains(t, corpus.Footers()[0], "ACME Corporation")
	})

	t.Run("ignores footers below the threshold", func(t *testing.T) {
		t.Parallel()

		payloads := make([]string, 99)
		for i := range payloads {
			payloads[i] = payloadWithFooter(i, corporateFooter)
		}

		corpus := clean.AnalyzeCorpus(payloads, 100)
		assert.Equal(t, 0, corpus.Size())
	})

	t.Run("skips payloads with too few lines", func(t *testing.T) {
		t.Parallel()

		payloads := make([]string, 200)
		for i := range payloads {
			payloads[i] = "short\npayload\nwith\nfew\nlines"
		}

		corpus := clean.AnalyzeCorpus(payloads, 100)
		assert.Equal(t, 0, corpus.Size())
	})

	t.Run("skips short footers", func(t *testing.T) {
		t.Parallel()

		// 12 lines but a footer well under the length cutoff.
		payloads := make([]string, 200)
		for i := range payloads {
			payloads[i] = payloadWithFooter(i, "a\nb\nc\nd\ne\nf\ng\nh\ni\nj")
		}

		corpus := clean.AnalyzeCorpus(payloads, 100)
		assert.Equal(t, 0, corpus.Size())
	})

	t.Run("whitespace variants count as the same footer", func(t *testing.T) {
		t.Parallel()

		spaced := "--\nJane  Smith\nSenior Widget   Engineer\nACME Corporation\n123 Example Street\nSpringfield\nTel: 555-0100\njane@example.com\nwww.example.com\nConfidential"

		payloads := make([]string, 0, 120)
		for i := 0; i < 60; i++ {
			payloads = append(payloads, payloadWithFooter(i, corporateFooter))
		}
		for i := 60; i < 120; i++ {
			payloads = append(payloads, payloadWithFooter(i, spaced))
		}

		corpus := clean.AnalyzeCorpus(payloads, 100)
		require.Equal(t, 1, corpus.Size())

		// The smallest raw variant is the representative regardless of how
		// the payloads are chunked across workers.
		assert.Equal(t, spaced, corpus.Footers()[0])
	})

	t.Run("representative selection is deterministic across input order", func(t *testing.T) {
		t.Parallel()

		spaced := "--\nJane  Smith\nSenior Widget   Engineer\nACME Corporation\n123 Example Street\nSpringfield\nTel: 555-0100\njane@example.com\nwww.example.com\nConfidential"

		forward := make([]string, 0, 120)
		reversed := make([]string, 0, 120)
		for i := 0; i < 60; i++ {
			forward = append(forward, payloadWithFooter(i, corporateFooter))
			reversed = append(reversed, payloadWithFooter(i, spaced))
		}
		for i := 60; i < 120; i++ {
			forward = append(forward, payloadWithFooter(i, spaced))
			reversed = append(reversed, payloadWithFooter(i, corporateFooter))
		}

		a := clean.AnalyzeCorpus(forward, 100)
		b := clean.AnalyzeCorpus(reversed, 100)
		assert.Equal(t, a.Footers(), b.Footers())
	})

	t.Run("empty corpus", func(t *testing.T) {
		t.Parallel()

		corpus := clean.AnalyzeCorpus(nil, 100)
		assert.Equal(t, 0, corpus.Size())
	})
}
