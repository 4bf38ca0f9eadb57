// Package slog provides logging decorators for spartandoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/spartandoc/spartandoc"
)

// Ensure LoggingContentFetcher implements spartandoc.ContentFetcher.
var _ spartandoc.ContentFetcher = (*LoggingContentFetcher)(nil)

// LoggingContentFetcher wraps a ContentFetcher with debug logging of
// fetch outcomes and timings.
type LoggingContentFetcher struct {
	next   spartandoc.ContentFetcher
	logger *slog.Logger
}

// NewLoggingContentFetcher creates a new LoggingContentFetcher.
func NewLoggingContentFetcher(next spartandoc.ContentFetcher, logger *slog.Logger) *LoggingContentFetcher {
	return &LoggingContentFetcher{next: next, logger: logger}
}

// FetchContent delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingContentFetcher) FetchContent(ctx context.Context, url string, format spartandoc.FetchFormat, bypassCache bool) (string, error) {
	begin := time.Now()
	content, err := f.next.FetchContent(ctx, url, format, bypassCache)
	if err != nil {
		f.logger.ErrorContext(ctx, "fetch failed",
			"url", url,
			"format", string(format),
			"bypass", bypassCache,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}

	f.logger.DebugContext(ctx, "fetch",
		"url", url,
		"format", string(format),
		"bypass", bypassCache,
		"bytes", len(content),
		"duration", time.Since(begin),
	)
	return content, nil
}
