package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/spartandoc/spartandoc"
)

// Discoverer finds published component slugs by reading the documentation
// site's sitemap. It supplements the built-in registry when the site
// publishes components the registry doesn't know about yet.
type Discoverer struct {
	client *http.Client
}

// NewDiscoverer creates a Discoverer with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewDiscoverer(client *http.Client) *Discoverer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Discoverer{client: client}
}

// DiscoverComponents fetches {baseURL}/sitemap.xml and returns the slugs
// of all URLs under /components/, in sitemap order, deduplicated.
// Returns an empty slice (not nil) when the sitemap has no component URLs.
func (d *Discoverer) DiscoverComponents(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, spartandoc.Errorf(spartandoc.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, spartandoc.Errorf(spartandoc.EUNAVAILABLE, "fetching %s: %v", sitemapURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, spartandoc.Errorf(spartandoc.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, sitemapURL)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, spartandoc.Errorf(spartandoc.EUNAVAILABLE, "parsing sitemap %s: %v", sitemapURL, err)
	}

	seen := make(map[string]bool)
	slugs := []string{}

	root := doc.Root()
	if root == nil {
		return slugs, nil
	}
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		slug, ok := componentSlug(loc.Text())
		if !ok || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}

	return slugs, nil
}

// componentSlug extracts the component slug from a /components/ page URL.
func componentSlug(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	path := strings.Trim(parsed.Path, "/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] != "components" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
