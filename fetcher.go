package spartandoc

import "context"

// FetchFormat selects the representation returned by a content fetch.
type FetchFormat string

const (
	// FormatHTML returns the raw page HTML unchanged.
	FormatHTML FetchFormat = "html"

	// FormatText runs the page through ToPlainText before returning.
	FormatText FetchFormat = "text"
)

// Validate returns an error if the format is not a known value.
func (f FetchFormat) Validate() error {
	switch f {
	case FormatHTML, FormatText:
		return nil
	}
	return Errorf(EINVALID, "unknown fetch format %q", string(f))
}

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ContentFetcher retrieves page content in a requested format, fronted by
// a short-TTL in-process cache keyed by URL and format.
type ContentFetcher interface {
	// FetchContent returns the page content. When bypassCache is false a
	// non-expired cached response is returned without a network call, and
	// a fresh response is written back to the cache. When bypassCache is
	// true the cache is neither read nor written.
	FetchContent(ctx context.Context, url string, format FetchFormat, bypassCache bool) (string, error)
}
