// Package goquery implements API extraction from spartan documentation
// pages. Section and component boundaries are located with a lightweight
// heading scan over the raw HTML; tables inside the located sections are
// parsed structurally with goquery.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spartandoc/spartandoc"
)

// Ensure Extractor implements spartandoc.APIExtractor at compile time.
var _ spartandoc.APIExtractor = (*Extractor)(nil)

// Extractor parses structured API data out of documentation HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Section heading titles recognized on component pages. "On this page" is
// the page's own table of contents and terminates whichever API section
// precedes it.
const (
	brainHeading = "Brain API"
	helmHeading  = "Helm API"
	tocHeading   = "On this page"
)

var (
	pageHeadingRe = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)

	// componentNameRe is the load-bearing heuristic: the site names every
	// API primitive with a Brn (unstyled) or Hlm (styled) prefix followed
	// by an uppercase-led word. If the site drops this convention,
	// extraction degrades to empty results rather than erroring.
	componentNameRe = regexp.MustCompile(`^(Brn|Hlm)[A-Z][A-Za-z0-9]*$`)

	selectorLineRe = regexp.MustCompile(`Selector:\s*([^\n]+)`)
)

// ExtractAPIInfo parses a documentation page into structured API data.
//
// A page without a "Brain API" or "Helm API" heading yields empty slices
// for those tiers; only a catastrophic parse failure returns an error,
// together with the zero-value result.
func (e *Extractor) ExtractAPIInfo(html string) (*spartandoc.APIInfo, error) {
	info := &spartandoc.APIInfo{
		BrainAPI: []spartandoc.ComponentAPI{},
		HelmAPI:  []spartandoc.ComponentAPI{},
		Examples: []spartandoc.Example{},
	}

	if sec, ok := sectionBetween(html, brainHeading, helmHeading, tocHeading); ok {
		apis, err := parseAPISection(sec)
		if err != nil {
			return &spartandoc.APIInfo{BrainAPI: []spartandoc.ComponentAPI{}, HelmAPI: []spartandoc.ComponentAPI{}, Examples: []spartandoc.Example{}}, err
		}
		info.BrainAPI = apis
	}

	if sec, ok := sectionBetween(html, helmHeading, brainHeading, tocHeading); ok {
		apis, err := parseAPISection(sec)
		if err != nil {
			return &spartandoc.APIInfo{BrainAPI: []spartandoc.ComponentAPI{}, HelmAPI: []spartandoc.ComponentAPI{}, Examples: []spartandoc.Example{}}, err
		}
		info.HelmAPI = apis
	}

	// Examples come from the whole page, independent of the API sections.
	for i, code := range spartandoc.ExtractCodeBlocks(html) {
		if i >= spartandoc.MaxExamples {
			break
		}
		info.Examples = append(info.Examples, spartandoc.Example{
			Title:    fmt.Sprintf("Example %d", i+1),
			Code:     code,
			Language: guessLanguage(code),
		})
	}

	return info, nil
}

// heading is a heading element located in raw HTML.
type heading struct {
	start int // offset of the opening tag
	end   int // offset just past the closing tag
	text  string
}

// scanHeadings locates every h1-h6 element and its plain-text title.
func scanHeadings(html string) []heading {
	idxs := pageHeadingRe.FindAllStringSubmatchIndex(html, -1)
	headings := make([]heading, 0, len(idxs))
	for _, m := range idxs {
		headings = append(headings, heading{
			start: m[0],
			end:   m[1],
			text:  spartandoc.ToPlainText(html[m[2]:m[3]]),
		})
	}
	return headings
}

// sectionBetween returns the HTML run starting at the heading titled
// title and ending just before the next heading titled one of enders, or
// at the end of the document. The second return is false when no such
// heading exists; this is not an error condition.
func sectionBetween(html, title string, enders ...string) (string, bool) {
	headings := scanHeadings(html)
	for i, h := range headings {
		if h.text != title {
			continue
		}
		end := len(html)
		for _, next := range headings[i+1:] {
			for _, e := range enders {
				if next.text == e {
					end = next.start
					break
				}
			}
			if end != len(html) {
				break
			}
		}
		return html[h.end:end], true
	}
	return "", false
}

// componentSection is one component's slice of an API section.
type componentSection struct {
	name string
	body string
}

// splitComponents segments an API section into component subsections, one
// per heading matching the Brn/Hlm naming convention. Each subsection runs
// until the next matching heading or the section end.
func splitComponents(section string) []componentSection {
	headings := scanHeadings(section)

	var bounds []heading
	for _, h := range headings {
		if componentNameRe.MatchString(h.text) {
			bounds = append(bounds, h)
		}
	}

	sections := make([]componentSection, 0, len(bounds))
	for i, h := range bounds {
		end := len(section)
		if i+1 < len(bounds) {
			end = bounds[i+1].start
		}
		sections = append(sections, componentSection{
			name: h.text,
			body: section[h.end:end],
		})
	}
	return sections
}

// subsectionAfter returns the run of body from the heading titled title
// until the next heading of any kind, or the end of body.
func subsectionAfter(body, title string) (string, bool) {
	headings := scanHeadings(body)
	for i, h := range headings {
		if h.text != title {
			continue
		}
		end := len(body)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}
		return body[h.end:end], true
	}
	return "", false
}

// parseAPISection extracts component records from one API section.
func parseAPISection(section string) ([]spartandoc.ComponentAPI, error) {
	subs := splitComponents(section)
	apis := make([]spartandoc.ComponentAPI, 0, len(subs))

	for _, sub := range subs {
		api := spartandoc.ComponentAPI{
			Name:    sub.name,
			Inputs:  []spartandoc.InputProp{},
			Outputs: []spartandoc.OutputProp{},
		}

		// First "Selector: <value>" line only.
		if m := selectorLineRe.FindStringSubmatch(spartandoc.ToPlainText(sub.body)); m != nil {
			api.Selector = strings.TrimSpace(m[1])
		}

		if inputs, ok := subsectionAfter(sub.body, "Inputs"); ok {
			rows, err := parseTableRows(inputs, 4)
			if err != nil {
				return nil, err
			}
			for _, cells := range rows {
				api.Inputs = append(api.Inputs, spartandoc.InputProp{
					Name:        cells[0],
					Type:        cells[1],
					Default:     cells[2],
					Description: cells[3],
				})
			}
		}

		if outputs, ok := subsectionAfter(sub.body, "Outputs"); ok {
			rows, err := parseTableRows(outputs, 3)
			if err != nil {
				return nil, err
			}
			for _, cells := range rows {
				api.Outputs = append(api.Outputs, spartandoc.OutputProp{
					Name:        cells[0],
					Type:        cells[1],
					Description: cells[2],
				})
			}
		}

		apis = append(apis, api)
	}

	return apis, nil
}

// parseTableRows parses the first <table> in the fragment into rows of
// exactly width cell texts. The first row is assumed to be a header and is
// skipped. Rows with fewer than 3 usable cells are skipped rather than
// guessed at; missing trailing cells yield empty strings.
func parseTableRows(fragment string, width int) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, spartandoc.Errorf(spartandoc.EINTERNAL, "parsing table fragment: %v", err)
	}

	var rows [][]string
	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}

		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) < 3 {
			return
		}

		out := make([]string, width)
		for j := 0; j < width && j < len(cells); j++ {
			out[j] = cells[j]
		}
		rows = append(rows, out)
	})

	return rows, nil
}

// guessLanguage assigns a language label to a code example using cheap
// substring heuristics.
func guessLanguage(code string) string {
	switch {
	case strings.Contains(code, "import") && strings.Contains(code, "Component"):
		return "typescript"
	case strings.Contains(code, "import") && strings.Contains(code, "from"):
		return "javascript"
	case strings.Contains(code, "<") && strings.Contains(code, "hlm"):
		return "html"
	case strings.Contains(code, "npm") || strings.Contains(code, "npx") || strings.Contains(code, "ng "):
		return "bash"
	default:
		return "typescript"
	}
}
