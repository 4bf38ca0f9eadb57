package spartandoc

import (
	"regexp"
	"strings"
)

// Regexes for the best-effort HTML to text conversion. Script and style
// bodies must be dropped before any tag stripping so their contents never
// leak into the output.
var (
	scriptRe    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe     = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	blockEndRe  = regexp.MustCompile(`(?i)</(p|div|section|article|header|footer|li|ul|ol|table|tr|h[1-6]|pre|blockquote)>`)
	lineBreakRe = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	newlinesRe  = regexp.MustCompile(`\n{3,}`)
)

// entityReplacer decodes the small fixed set of entities the converter
// guarantees. Unrecognized entities are deliberately left verbatim.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ToPlainText converts an HTML fragment to readable plain text.
//
// Block-level closing tags and explicit line breaks become newlines so
// that the visual structure of the page survives tag stripping. This is a
// best-effort converter, not a full HTML renderer; callers must not
// depend on exact whitespace fidelity beyond readable text with
// paragraph breaks.
func ToPlainText(html string) string {
	s := scriptRe.ReplaceAllString(html, "")
	s = styleRe.ReplaceAllString(s, "")
	s = blockEndRe.ReplaceAllString(s, "\n")
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = newlinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
