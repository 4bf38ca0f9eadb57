package spartandoc

// ExtractResult holds the main content extracted from a documentation
// page, with boilerplate (nav, sidebar, footer) removed.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Used by the docs-topic pipeline before markdown conversion.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts clean HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
