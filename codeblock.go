package spartandoc

import (
	"regexp"
	"strings"
)

var (
	preCodeRe  = regexp.MustCompile(`(?is)<pre[^>]*>\s*<code[^>]*>(.*?)</code>\s*</pre>`)
	bareCodeRe = regexp.MustCompile(`(?is)<code[^>]*>(.*?)</code>`)
	headingRe  = regexp.MustCompile(`(?is)<h([1-3])[^>]*>(.*?)</h[1-3]>`)
	anchorRe   = regexp.MustCompile(`(?is)<a\s[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
)

// Link is a hyperlink extracted from an HTML fragment.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// ExtractCodeBlocks returns the plain-text contents of code blocks in
// document order: <pre><code> blocks first, then bare <code> blocks. The
// two passes are not merged or re-sorted.
//
// Trivial snippets are filtered out: single-line import statements and
// anything with two or fewer non-blank lines. Without this, example lists
// fill up with bare selectors and import lines.
func ExtractCodeBlocks(html string) []string {
	var blocks []string

	for _, m := range preCodeRe.FindAllStringSubmatch(html, -1) {
		if code := ToPlainText(m[1]); keepCodeBlock(code) {
			blocks = append(blocks, code)
		}
	}

	// Remove <pre><code> regions so the bare pass doesn't revisit them.
	rest := preCodeRe.ReplaceAllString(html, "")
	for _, m := range bareCodeRe.FindAllStringSubmatch(rest, -1) {
		if code := ToPlainText(m[1]); keepCodeBlock(code) {
			blocks = append(blocks, code)
		}
	}

	return blocks
}

// keepCodeBlock reports whether a snippet is substantial enough to serve
// as an example.
func keepCodeBlock(code string) bool {
	lines := strings.Split(code, "\n")
	if len(lines) == 1 && strings.Contains(lines[0], "import") {
		return false
	}

	nonBlank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	return nonBlank > 2
}

// ExtractHeadings returns the plain-text contents of <h1> through <h3>
// elements in document order.
func ExtractHeadings(html string) []string {
	matches := headingRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]string, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, ToPlainText(m[2]))
	}
	return headings
}

// ExtractLinks returns all anchors with an href attribute in document
// order.
func ExtractLinks(html string) []Link {
	matches := anchorRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{
			Href: m[1],
			Text: ToPlainText(m[2]),
		})
	}
	return links
}
