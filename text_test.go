package spartandoc_test

import (
	"testing"

	"github.com/spartandoc/spartandoc"
	"github.com/stretchr/testify/assert"
)

func TestToPlainText(t *testing.T) {
	t.Parallel()

	t.Run("strips tags and keeps text", func(t *testing.T) {
		t.Parallel()

		html := `<div><p>Hello <strong>World</strong></p></div>`

		assert.Equal(t, "Hello World", spartandoc.ToPlainText(html))
	})

	t.Run("removes script content entirely", func(t *testing.T) {
		t.Parallel()

		html := `<p>Before</p><script type="text/javascript">var secret = "leaked";</script><p>After</p>`

		text := spartandoc.ToPlainText(html)

		assert.NotContains(t, text, "secret")
		assert.NotContains(t, text, "leaked")
		assert.Contains(t, text, "Before")
		assert.Contains(t, text, "After")
	})

	t.Run("removes style content entirely", func(t *testing.T) {
		t.Parallel()

		html := `<style>.hidden { display: none; }</style><p>Visible</p>`

		text := spartandoc.ToPlainText(html)

		assert.NotContains(t, text, "display")
		assert.Contains(t, text, "Visible")
	})

	t.Run("converts block closings and breaks to newlines", func(t *testing.T) {
		t.Parallel()

		html := `<p>one</p><p>two</p>line<br>break`

		text := spartandoc.ToPlainText(html)

		assert.Contains(t, text, "one\n")
		assert.Contains(t, text, "two\n")
		assert.Contains(t, text, "line\nbreak")
	})

	t.Run("decodes the fixed entity set", func(t *testing.T) {
		t.Parallel()

		html := `a&nbsp;b &amp; c &lt;d&gt; &quot;e&quot; &#39;f&#39;`

		assert.Equal(t, `a b & c <d> "e" 'f'`, spartandoc.ToPlainText(html))
	})

	t.Run("leaves unrecognized entities verbatim", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "&copy; &mdash;", spartandoc.ToPlainText("&copy; &mdash;"))
	})

	t.Run("collapses three or more newlines to two", func(t *testing.T) {
		t.Parallel()

		html := "a<br><br><br><br>b"

		assert.Equal(t, "a\n\nb", spartandoc.ToPlainText(html))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "x", spartandoc.ToPlainText("  <p> x </p>  "))
	})
}
