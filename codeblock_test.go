package spartandoc_test

import (
	"testing"

	"github.com/spartandoc/spartandoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("extracts pre code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code>line one
line two
line three</code></pre>`

		blocks := spartandoc.ExtractCodeBlocks(html)

		require.Len(t, blocks, 1)
		assert.Equal(t, "line one\nline two\nline three", blocks[0])
	})

	t.Run("drops blocks with two or fewer non-blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code>only
two</code></pre>`

		assert.Empty(t, spartandoc.ExtractCodeBlocks(html))
	})

	t.Run("drops single-line import snippets", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code>import { BrnButton } from '@spartan-ng/brain';</code></pre>`

		assert.Empty(t, spartandoc.ExtractCodeBlocks(html))
	})

	t.Run("keeps multi-line blocks containing imports", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code>import { Component } from '@angular/core';

@Component({})
export class Demo {}</code></pre>`

		blocks := spartandoc.ExtractCodeBlocks(html)

		require.Len(t, blocks, 1)
		assert.Contains(t, blocks[0], "export class Demo")
	})

	t.Run("blank lines do not count toward the minimum", func(t *testing.T) {
		t.Parallel()

		html := "<pre><code>a\n\n\nb</code></pre>"

		assert.Empty(t, spartandoc.ExtractCodeBlocks(html))
	})

	t.Run("pre blocks come before bare code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<code>bare one
bare two
bare three</code><pre><code>pre one
pre two
pre three</code></pre>`

		blocks := spartandoc.ExtractCodeBlocks(html)

		require.Len(t, blocks, 2)
		assert.Equal(t, "pre one\npre two\npre three", blocks[0])
		assert.Equal(t, "bare one\nbare two\nbare three", blocks[1])
	})

	t.Run("does not double-count code inside pre", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code>x1
x2
x3</code></pre>`

		assert.Len(t, spartandoc.ExtractCodeBlocks(html), 1)
	})
}

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	t.Run("returns h1 through h3 in document order", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><p>x</p><h2>Section</h2><h3>Sub</h3><h4>Too deep</h4>`

		headings := spartandoc.ExtractHeadings(html)

		assert.Equal(t, []string{"Title", "Section", "Sub"}, headings)
	})

	t.Run("strips nested markup from heading text", func(t *testing.T) {
		t.Parallel()

		html := `<h2><a href="#x">Linked</a> Heading</h2>`

		headings := spartandoc.ExtractHeadings(html)

		require.Len(t, headings, 1)
		assert.Equal(t, "Linked Heading", headings[0])
	})

	t.Run("returns empty for no headings", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, spartandoc.ExtractHeadings("<p>no headings</p>"))
	})
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns hrefs and text in document order", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/components/button">Button</a> and <a href="/components/card">Card</a>`

		links := spartandoc.ExtractLinks(html)

		require.Len(t, links, 2)
		assert.Equal(t, spartandoc.Link{Href: "/components/button", Text: "Button"}, links[0])
		assert.Equal(t, spartandoc.Link{Href: "/components/card", Text: "Card"}, links[1])
	})

	t.Run("ignores anchors without href", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, spartandoc.ExtractLinks(`<a name="top">x</a>`))
	})
}
