package goquery_test

import (
	"testing"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Rewriter implements mailclean.HTMLRewriter at compile time.
var _ mailclean.HTMLRewriter = (*goquery.Rewriter)(nil)

func TestRewriter_RewriteHTML(t *testing.T) {
	t.Parallel()

	t.Run("replaces cid image with inline placeholder", func(t *testing.T) {
		t.Parallel()

		html := `<p>Logo: <img src="cid:abc123@example.com"></p>`

		r := goquery.NewRewriter()
		out, err := r.RewriteHTML(html)

		require.NoError(t, err)
		assert.Contains(t, out, "[Inline image: abc123@example.com]")
		assert.NotContains(t, out, "<img")
	})

	t.Run("cid prefix is case-insensitive", func(t *testing.T) {
		t.Parallel()

		html := `<img src="CID:chart42">`

		r := goquery.NewRewriter()
		out, err := r.RewriteHTML(html)

		require.NoError(t, err)
		assert.Contains(t, out, "[Inline image: chart42]")
	})

	t.Run("replaces image with alt text placeholder", func(t *testing.T) {
		t.Parallel()

		html := `<img src="https://example.com/banner.png" alt="Company banner">`

		r := goquery.NewRewriter()
		out, err := r.RewriteHTML(html)

		require.NoError(t, err)
		assert.Contains(t, out, "[Image: Company banner]")
		assert.NotContains(t, out, "banner.png")
	})

	t.Run("removes image without cid or alt", func(t *testing.T) {
		t.Parallel()

		html := `<p>before</p><img src="https://example.com/tracker.gif"><p>after</p>`

		r := goquery.NewRewriter()
		out, err := r.RewriteHTML(html)

		require.NoError(t, err)
		assert.Contains(t, out, "before")
		assert.Contains(t, out, "after")
		assert.NotContains(t, out, "<img")
		assert.NotContains(t, out, "tracker.gif")
	})

	t.Run("unwraps fragment-only anchors", func(t *testing.T) {
		t.Parallel()

		html := `<p><a href="#section1">Jump to section</a></p>`

		r := goquery.NewRewriter()
		out, err := r.RewriteHTML(html)

		require.NoError(t, err)
		assert.Contains(t, out, "Jump to section")
		assert.NotContains(t, out, "<a ")
	})

	t.Run("keeps regular links", func(t *testing.T) {
		t.Parallel()

		html := `<p><a href="https://example.com">Example</a></p>`

		r := goquery.NewRewriter()
		out, err := r.RewriteHTML(html)

		require.NoError(t, err)
		assert.Contains(t, out, `href="https://example.com"`)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRewriter()
		_, err := r.RewriteHTML("   ")

		require.Error(t, err)
		assert.Equal(t, mailclean.EINVALID, mailclean.ErrorCode(err))
	})
}
