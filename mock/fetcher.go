package mock

import (
	"context"

	"github.com/spartandoc/spartandoc"
)

var _ spartandoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of spartandoc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ spartandoc.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of spartandoc.ContentFetcher.
type ContentFetcher struct {
	FetchContentFn func(ctx context.Context, url string, format spartandoc.FetchFormat, bypassCache bool) (string, error)
}

func (f *ContentFetcher) FetchContent(ctx context.Context, url string, format spartandoc.FetchFormat, bypassCache bool) (string, error) {
	return f.FetchContentFn(ctx, url, format, bypassCache)
}
