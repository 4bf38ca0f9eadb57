package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spartandoc/spartandoc"
	spartanhttp "github.com/spartandoc/spartandoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingServer serves a fixed body and counts how many requests it saw.
func countingServer(t *testing.T, body string) (*httptest.Server, *int64) {
	t.Helper()

	var calls int64
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestContentFetcher_FetchContent(t *testing.T) {
	t.Parallel()

	t.Run("second call within the TTL is served from cache", func(t *testing.T) {
		t.Parallel()

		srv, calls := countingServer(t, "<p>cached</p>")
		cf := spartanhttp.NewContentFetcher(spartanhttp.NewFetcher())

		first, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)
		second, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int64(1), atomic.LoadInt64(calls))
	})

	t.Run("formats are cached independently", func(t *testing.T) {
		t.Parallel()

		srv, calls := countingServer(t, "<p>body</p>")
		cf := spartanhttp.NewContentFetcher(spartanhttp.NewFetcher())

		html, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)
		text, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatText, false)
		require.NoError(t, err)

		assert.Equal(t, "<p>body</p>", html)
		assert.Equal(t, "body", text)
		assert.Equal(t, int64(2), atomic.LoadInt64(calls))
	})

	t.Run("bypass forces a network call and skips the cache", func(t *testing.T) {
		t.Parallel()

		srv, calls := countingServer(t, "<p>live</p>")
		cf := spartanhttp.NewContentFetcher(spartanhttp.NewFetcher())

		_, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, true)
		require.NoError(t, err)
		_, err = cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, true)
		require.NoError(t, err)

		assert.Equal(t, int64(2), atomic.LoadInt64(calls))

		// A bypassed fetch must not have primed the cache either.
		_, err = cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)
		assert.Equal(t, int64(3), atomic.LoadInt64(calls))
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		t.Parallel()

		srv, calls := countingServer(t, "<p>ttl</p>")

		now := time.Now()
		clock := func() time.Time { return now }
		cf := spartanhttp.NewContentFetcher(
			spartanhttp.NewFetcher(),
			spartanhttp.WithContentTTL(5*time.Minute),
			spartanhttp.WithClock(func() time.Time { return clock() }),
		)

		_, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)

		// Just under the TTL: still cached.
		clock = func() time.Time { return now.Add(5*time.Minute - time.Second) }
		_, err = cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), atomic.LoadInt64(calls))

		// At the TTL: treated as absent.
		clock = func() time.Time { return now.Add(5 * time.Minute) }
		_, err = cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), atomic.LoadInt64(calls))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		cf := spartanhttp.NewContentFetcher(spartanhttp.NewFetcher())

		_, err := cf.FetchContent(context.Background(), "http://example.invalid", spartandoc.FetchFormat("markdown"), false)

		require.Error(t, err)
		assert.Equal(t, spartandoc.EINVALID, spartandoc.ErrorCode(err))
	})

	t.Run("fetch failures are not cached", func(t *testing.T) {
		t.Parallel()

		var calls int64
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if atomic.AddInt64(&calls, 1) == 1 {
				w.WriteHeader(nethttp.StatusInternalServerError)
				return
			}
			w.Write([]byte("<p>recovered</p>"))
		}))
		defer srv.Close()

		cf := spartanhttp.NewContentFetcher(spartanhttp.NewFetcher())

		_, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.Error(t, err)

		content, err := cf.FetchContent(context.Background(), srv.URL, spartandoc.FormatHTML, false)
		require.NoError(t, err)
		assert.Equal(t, "<p>recovered</p>", content)
	})
}
