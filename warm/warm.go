// Package warm drives proactive population of the disk cache: it fetches
// every known component page (and optionally every documentation topic),
// extracts structured API data, and persists the results.
package warm

import (
	"context"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/spartandoc/spartandoc"
	"golang.org/x/time/rate"
)

// DefaultItemDelay is the pause between consecutive page fetches,
// expressed as a rate limit, to avoid hammering the documentation site.
const DefaultItemDelay = 100 * time.Millisecond

// ProgressFunc is called after each item completes, whether it succeeded
// or failed.
type ProgressFunc func(completed, total int)

// Options controls a warming run.
type Options struct {
	// Components to warm. A nil slice means the full known component
	// set; an empty non-nil slice means none.
	Components []string

	// IncludeDocs also warms the documentation topics after components.
	IncludeDocs bool

	// Topics to warm when IncludeDocs is set. Defaults to the full known
	// topic set.
	Topics []string

	// Progress, if non-nil, receives per-item progress callbacks.
	Progress ProgressFunc
}

// ItemError records one failed item in a warming run.
type ItemError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// Batch aggregates the outcome of one pass (components or docs).
// A per-item failure never aborts the batch.
type Batch struct {
	Total   int         `json:"total"`
	Success int         `json:"success"`
	Failed  int         `json:"failed"`
	Changed int         `json:"changed"`
	Errors  []ItemError `json:"errors"`
}

// Result is the aggregate outcome of a warming run.
type Result struct {
	RunID      string        `json:"runId"`
	Version    string        `json:"version"`
	Components Batch         `json:"components"`
	Docs       Batch         `json:"docs"`
	Duration   time.Duration `json:"duration"`
}

// Warmer orchestrates cache warming. Items are processed strictly one at
// a time: sequential execution keeps the rate limit honest and avoids
// concurrent writes to the shared metadata file.
type Warmer struct {
	Fetcher      spartandoc.ContentFetcher
	Extractor    spartandoc.APIExtractor
	DocExtractor spartandoc.Extractor // optional, docs main-content extraction
	Converter    spartandoc.Converter // optional, docs HTML to markdown
	Cache        spartandoc.Cache
	BaseURL      string
	Limiter      *rate.Limiter
	Logger       *slog.Logger
}

// WarmCache populates the disk cache for the requested component and
// topic sets. The ephemeral fetch cache is bypassed throughout to force
// fresh content. Per-item failures are recorded and the run continues;
// only setup problems (missing dependencies, cache directory creation)
// return an error.
func (w *Warmer) WarmCache(ctx context.Context, opts Options) (*Result, error) {
	if w.Fetcher == nil || w.Extractor == nil || w.Cache == nil {
		return nil, spartandoc.Errorf(spartandoc.EINTERNAL, "warmer requires a fetcher, extractor and cache")
	}

	baseURL := w.BaseURL
	if baseURL == "" {
		baseURL = spartandoc.DefaultBaseURL
	}

	version, err := w.Cache.Initialize(ctx, w.Cache.ActiveVersion())
	if err != nil {
		return nil, err
	}

	components := opts.Components
	if components == nil {
		components = spartandoc.Components()
	}

	begin := time.Now()
	result := &Result{
		RunID:      uuid.NewString(),
		Version:    version,
		Components: Batch{Errors: []ItemError{}},
		Docs:       Batch{Errors: []ItemError{}},
	}

	w.logf(ctx, "warming cache", "run", result.RunID, "version", version, "components", len(components), "docs", opts.IncludeDocs)

	result.Components.Total = len(components)
	for i, name := range components {
		if err := w.pace(ctx); err != nil {
			return nil, err
		}

		if changed, err := w.warmComponent(ctx, baseURL, name); err != nil {
			result.Components.Failed++
			result.Components.Errors = append(result.Components.Errors, ItemError{Item: name, Error: err.Error()})
			w.logf(ctx, "component warm failed", "run", result.RunID, "component", name, "error", err)
		} else {
			result.Components.Success++
			if changed {
				result.Components.Changed++
			}
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(components))
		}
	}

	if opts.IncludeDocs {
		topics := opts.Topics
		if topics == nil {
			topics = spartandoc.DocTopics()
		}

		result.Docs.Total = len(topics)
		for i, topic := range topics {
			if err := w.pace(ctx); err != nil {
				return nil, err
			}

			if changed, err := w.warmTopic(ctx, baseURL, topic); err != nil {
				result.Docs.Failed++
				result.Docs.Errors = append(result.Docs.Errors, ItemError{Item: topic, Error: err.Error()})
				w.logf(ctx, "docs warm failed", "run", result.RunID, "topic", topic, "error", err)
			} else {
				result.Docs.Success++
				if changed {
					result.Docs.Changed++
				}
			}

			if opts.Progress != nil {
				opts.Progress(i+1, len(topics))
			}
		}
	}

	result.Duration = time.Since(begin)
	w.logf(ctx, "warming done",
		"run", result.RunID,
		"components", result.Components.Success,
		"failed", result.Components.Failed,
		"changed", result.Components.Changed,
		"duration", result.Duration,
	)
	return result, nil
}

// warmComponent fetches, extracts and caches a single component page.
// The returned flag reports whether the page content changed since the
// previous cached copy.
func (w *Warmer) warmComponent(ctx context.Context, baseURL, name string) (changed bool, err error) {
	url := spartandoc.ComponentURL(baseURL, name)

	html, err := w.Fetcher.FetchContent(ctx, url, spartandoc.FormatHTML, true)
	if err != nil {
		return false, err
	}

	api, err := w.Extractor.ExtractAPIInfo(html)
	if err != nil {
		return false, err
	}

	changed = true
	if prev, err := w.Cache.GetComponent(ctx, name, spartandoc.FieldHTML); err == nil && prev.Cached {
		if prevHTML, ok := prev.Data.(string); ok {
			changed = xxhash.Sum64String(prevHTML) != xxhash.Sum64String(html)
		}
	}

	payload := &spartandoc.ComponentPayload{
		HTML:     html,
		API:      api,
		Examples: api.Examples,
		Full: &spartandoc.ComponentContent{
			HTML:     html,
			API:      api,
			Examples: api.Examples,
			URL:      url,
		},
	}
	if err := w.Cache.SetComponent(ctx, name, payload); err != nil {
		return false, err
	}
	return changed, nil
}

// warmTopic fetches and caches a single documentation topic. Main-content
// extraction and markdown conversion are best-effort; on any failure the
// raw page falls back to plain text.
func (w *Warmer) warmTopic(ctx context.Context, baseURL, topic string) (changed bool, err error) {
	url := spartandoc.DocURL(baseURL, topic)

	html, err := w.Fetcher.FetchContent(ctx, url, spartandoc.FormatHTML, true)
	if err != nil {
		return false, err
	}

	content := w.renderTopic(html)

	changed = true
	if prev, err := w.Cache.GetDocs(ctx, topic); err == nil && prev.Cached {
		changed = xxhash.Sum64String(prev.Content) != xxhash.Sum64String(content)
	}

	if err := w.Cache.SetDocs(ctx, topic, content); err != nil {
		return false, err
	}
	return changed, nil
}

func (w *Warmer) renderTopic(html string) string {
	return RenderTopic(w.DocExtractor, w.Converter, html)
}

// RenderTopic turns a raw docs page into stored content: extracted main
// content converted to markdown when the pipeline is configured, plain
// text otherwise. The warmer and the on-demand docs path both store
// through this, so a topic's cached content has the same shape no matter
// which path wrote it. Extraction and conversion are best-effort; on any
// failure the content falls back to plain text.
func RenderTopic(extractor spartandoc.Extractor, converter spartandoc.Converter, html string) string {
	if extractor == nil {
		return spartandoc.ToPlainText(html)
	}

	res, err := extractor.Extract(html)
	if err != nil || res == nil || res.ContentHTML == "" {
		return spartandoc.ToPlainText(html)
	}

	if converter != nil {
		if md, err := converter.Convert(res.ContentHTML); err == nil && md != "" {
			return md
		}
	}
	return spartandoc.ToPlainText(res.ContentHTML)
}

// pace waits out the inter-item delay.
func (w *Warmer) pace(ctx context.Context) error {
	if w.Limiter == nil {
		return nil
	}
	return w.Limiter.Wait(ctx)
}

func (w *Warmer) logf(ctx context.Context, msg string, args ...any) {
	if w.Logger == nil {
		return
	}
	w.Logger.InfoContext(ctx, msg, args...)
}

// NewLimiter returns a rate limiter enforcing the default inter-item
// delay with no bursting.
func NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(DefaultItemDelay), 1)
}
