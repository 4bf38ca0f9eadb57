package http

import (
	"context"
	"sync"
	"time"

	"github.com/spartandoc/spartandoc"
	"golang.org/x/sync/singleflight"
)

// DefaultContentTTL is how long an ephemeral cache entry is served before
// a new network call is made.
const DefaultContentTTL = 5 * time.Minute

// Ensure ContentFetcher implements spartandoc.ContentFetcher.
var _ spartandoc.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher fronts a Fetcher with a short-TTL in-memory response
// cache keyed by URL and format. The cache lives only in process memory
// and is lost on restart. Expired entries are treated as absent on lookup
// rather than physically purged.
type ContentFetcher struct {
	fetcher spartandoc.Fetcher
	ttl     time.Duration
	clock   func() time.Time

	mu      sync.Mutex
	entries map[string]contentEntry

	group singleflight.Group
}

type contentEntry struct {
	content string
	at      time.Time
}

// ContentOption configures a ContentFetcher.
type ContentOption func(*ContentFetcher)

// WithContentTTL overrides the ephemeral cache TTL.
func WithContentTTL(d time.Duration) ContentOption {
	return func(c *ContentFetcher) {
		c.ttl = d
	}
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) ContentOption {
	return func(c *ContentFetcher) {
		c.clock = clock
	}
}

// NewContentFetcher creates a ContentFetcher wrapping the given Fetcher.
func NewContentFetcher(fetcher spartandoc.Fetcher, opts ...ContentOption) *ContentFetcher {
	c := &ContentFetcher{
		fetcher: fetcher,
		ttl:     DefaultContentTTL,
		clock:   time.Now,
		entries: make(map[string]contentEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchContent returns the page content in the requested format.
//
// With bypassCache false, a non-expired cached response is returned with
// no network call and a fresh response is written back to the cache. With
// bypassCache true the cache is neither consulted nor updated. Concurrent
// fetches of the same key share a single network call.
func (c *ContentFetcher) FetchContent(ctx context.Context, url string, format spartandoc.FetchFormat, bypassCache bool) (string, error) {
	if err := format.Validate(); err != nil {
		return "", err
	}

	key := url + "::" + string(format)

	if !bypassCache {
		if content, ok := c.lookup(key); ok {
			return content, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		html, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return "", err
		}

		content := html
		if format == spartandoc.FormatText {
			content = spartandoc.ToPlainText(html)
		}
		return content, nil
	})
	if err != nil {
		return "", err
	}
	content := v.(string)

	if !bypassCache {
		c.store(key, content)
	}

	return content, nil
}

func (c *ContentFetcher) lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.clock().Sub(entry.at) >= c.ttl {
		return "", false
	}
	return entry.content, true
}

func (c *ContentFetcher) store(key, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = contentEntry{content: content, at: c.clock()}
}
