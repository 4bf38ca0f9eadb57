package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spartandoc/spartandoc"
	"github.com/spartandoc/spartandoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, opts ...fs.CacheOption) *fs.Cache {
	t.Helper()

	c := fs.NewCache(t.TempDir(), opts...)
	_, err := c.Initialize(context.Background(), "")
	require.NoError(t, err)
	return c
}

func buttonPayload() *spartandoc.ComponentPayload {
	api := &spartandoc.APIInfo{
		BrainAPI: []spartandoc.ComponentAPI{{
			Name:     "BrnButton",
			Selector: "button[brnButton]",
			Inputs:   []spartandoc.InputProp{{Name: "disabled", Type: "boolean", Default: "false"}},
			Outputs:  []spartandoc.OutputProp{},
		}},
		HelmAPI:  []spartandoc.ComponentAPI{},
		Examples: []spartandoc.Example{},
	}
	return &spartandoc.ComponentPayload{
		HTML:     "<h1>Button</h1>",
		API:      api,
		Examples: []spartandoc.Example{{Title: "Example 1", Code: "npm i\nnpx nx g\nng serve", Language: "bash"}},
		Full: &spartandoc.ComponentContent{
			HTML: "<h1>Button</h1>",
			API:  api,
			URL:  "https://www.spartan.ng/components/button",
		},
	}
}

func TestCache_ComponentRoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))

	res, err := c.GetComponent(ctx, "button", "")
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.False(t, res.Stale)
	assert.Equal(t, spartandoc.DefaultVersion, res.Version)

	entry, ok := res.Data.(*spartandoc.ComponentEntry)
	require.True(t, ok)
	assert.Equal(t, "button", entry.ComponentName)
	assert.Equal(t, "<h1>Button</h1>", entry.HTML)
	require.NotNil(t, entry.API)
	require.Len(t, entry.API.BrainAPI, 1)
	assert.Equal(t, "BrnButton", entry.API.BrainAPI[0].Name)
	require.NotNil(t, entry.Full)
	assert.Equal(t, "https://www.spartan.ng/components/button", entry.Full.URL)
}

func TestCache_ComponentProjections(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))

	t.Run("html", func(t *testing.T) {
		res, err := c.GetComponent(ctx, "button", spartandoc.FieldHTML)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Button</h1>", res.Data)
	})

	t.Run("api", func(t *testing.T) {
		res, err := c.GetComponent(ctx, "button", spartandoc.FieldAPI)
		require.NoError(t, err)
		api, ok := res.Data.(*spartandoc.APIInfo)
		require.True(t, ok)
		require.Len(t, api.BrainAPI, 1)
	})

	t.Run("examples", func(t *testing.T) {
		res, err := c.GetComponent(ctx, "button", spartandoc.FieldExamples)
		require.NoError(t, err)
		examples, ok := res.Data.([]spartandoc.Example)
		require.True(t, ok)
		require.Len(t, examples, 1)
		assert.Equal(t, "bash", examples[0].Language)
	})

	t.Run("full", func(t *testing.T) {
		res, err := c.GetComponent(ctx, "button", spartandoc.FieldFull)
		require.NoError(t, err)
		full, ok := res.Data.(*spartandoc.ComponentContent)
		require.True(t, ok)
		assert.Equal(t, "https://www.spartan.ng/components/button", full.URL)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := c.GetComponent(ctx, "button", spartandoc.ComponentField("bogus"))
		require.Error(t, err)
		assert.Equal(t, spartandoc.EINVALID, spartandoc.ErrorCode(err))
	})
}

func TestCache_MissesNeverError(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	t.Run("absent component", func(t *testing.T) {
		res, err := c.GetComponent(ctx, "nope", "")
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Nil(t, res.Data)
	})

	t.Run("corrupt component file", func(t *testing.T) {
		dir := t.TempDir()
		corrupt := fs.NewCache(dir)
		_, err := corrupt.Initialize(ctx, "v1")
		require.NoError(t, err)

		path := filepath.Join(dir, "v1", "components", "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		res, err := corrupt.GetComponent(ctx, "broken", "")
		require.NoError(t, err)
		assert.False(t, res.Cached)
	})

	t.Run("absent docs topic", func(t *testing.T) {
		res, err := c.GetDocs(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Empty(t, res.Content)
	})
}

func TestCache_Staleness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	clock := now
	c := newTestCache(t,
		fs.WithTTL(24*time.Hour),
		fs.WithClock(func() time.Time { return clock }),
	)

	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))

	t.Run("age exactly the TTL is still fresh", func(t *testing.T) {
		clock = now.Add(24 * time.Hour)
		res, err := c.GetComponent(ctx, "button", "")
		require.NoError(t, err)
		assert.True(t, res.Cached)
		assert.False(t, res.Stale)
	})

	t.Run("age past the TTL is stale but still carries data", func(t *testing.T) {
		clock = now.Add(24*time.Hour + time.Second)
		res, err := c.GetComponent(ctx, "button", "")
		require.NoError(t, err)
		assert.True(t, res.Cached)
		assert.True(t, res.Stale)
		assert.NotNil(t, res.Data)
	})
}

func TestCache_DocsRoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetDocs(ctx, "installation", "Run the CLI."))

	res, err := c.GetDocs(ctx, "installation")
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.False(t, res.Stale)
	assert.Equal(t, "Run the CLI.", res.Content)
}

func TestCache_ClearVersion(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))

	first := c.ClearVersion(ctx)
	assert.True(t, first.Success)

	res, err := c.GetComponent(ctx, "button", "")
	require.NoError(t, err)
	assert.False(t, res.Cached)

	// Clearing the already-empty partition succeeds again.
	second := c.ClearVersion(ctx)
	assert.True(t, second.Success)

	// The partition is usable immediately after clearing.
	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))
	res, err = c.GetComponent(ctx, "button", "")
	require.NoError(t, err)
	assert.True(t, res.Cached)
}

func TestCache_VersionIsolation(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	_, err := c.Initialize(ctx, "v1")
	require.NoError(t, err)
	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))

	require.NoError(t, c.SwitchVersion(ctx, "v2"))
	assert.Equal(t, "v2", c.ActiveVersion())

	res, err := c.GetComponent(ctx, "button", "")
	require.NoError(t, err)
	assert.False(t, res.Cached, "v2 must not see v1 entries")

	// Clearing v2 leaves v1 intact.
	assert.True(t, c.ClearVersion(ctx).Success)
	require.NoError(t, c.SwitchVersion(ctx, "v1"))
	res, err = c.GetComponent(ctx, "button", "")
	require.NoError(t, err)
	assert.True(t, res.Cached)
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("counts entries per version and flags the current one", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		_, err := c.Initialize(ctx, "v1")
		require.NoError(t, err)
		require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))
		require.NoError(t, c.SetDocs(ctx, "installation", "docs"))

		stats, err := c.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v1", stats.CurrentVersion)

		var v1 *spartandoc.VersionStats
		for i := range stats.Versions {
			if stats.Versions[i].Version == "v1" {
				v1 = &stats.Versions[i]
			}
		}
		require.NotNil(t, v1)
		assert.Equal(t, 1, v1.ComponentCount)
		assert.Equal(t, 1, v1.DocsCount)
		assert.True(t, v1.IsCurrent)
	})

	t.Run("skips partitions with corrupt metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c := fs.NewCache(dir)
		_, err := c.Initialize(ctx, "good")
		require.NoError(t, err)

		require.NoError(t, os.MkdirAll(filepath.Join(dir, "bad"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad", "metadata.json"), []byte("{oops"), 0644))

		stats, err := c.Stats(ctx)
		require.NoError(t, err)
		require.Len(t, stats.Versions, 1)
		assert.Equal(t, "good", stats.Versions[0].Version)
	})
}

func TestCache_ListVersions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lists partitions regardless of metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c := fs.NewCache(dir)
		_, err := c.Initialize(ctx, "v1")
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "orphan"), 0755))

		versions, err := c.ListVersions(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"v1", "orphan"}, versions)
	})

	t.Run("missing base directory yields an empty slice", func(t *testing.T) {
		t.Parallel()

		c := fs.NewCache(filepath.Join(t.TempDir(), "never-created"))

		versions, err := c.ListVersions(ctx)
		require.NoError(t, err)
		assert.NotNil(t, versions)
		assert.Empty(t, versions)
	})
}

func TestCache_ClearAll(t *testing.T) {
	t.Parallel()

	c := fs.NewCache(t.TempDir())
	ctx := context.Background()

	_, err := c.Initialize(ctx, "v1")
	require.NoError(t, err)
	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))
	_, err = c.Initialize(ctx, "v2")
	require.NoError(t, err)

	cleared, err := c.ClearAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2"}, cleared)

	// The active partition is recreated and usable.
	versions, err := c.ListVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, versions)
	require.NoError(t, c.SetComponent(ctx, "button", buttonPayload()))
}

func TestCache_SetValidation(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	t.Run("empty component key", func(t *testing.T) {
		err := c.SetComponent(ctx, "", buttonPayload())
		require.Error(t, err)
		assert.Equal(t, spartandoc.EINVALID, spartandoc.ErrorCode(err))
	})

	t.Run("nil payload", func(t *testing.T) {
		err := c.SetComponent(ctx, "button", nil)
		require.Error(t, err)
		assert.Equal(t, spartandoc.EINVALID, spartandoc.ErrorCode(err))
	})

	t.Run("empty docs topic", func(t *testing.T) {
		err := c.SetDocs(ctx, "", "content")
		require.Error(t, err)
		assert.Equal(t, spartandoc.EINVALID, spartandoc.ErrorCode(err))
	})

	t.Run("keys are normalized on write", func(t *testing.T) {
		require.NoError(t, c.SetComponent(ctx, "Alert Dialog", buttonPayload()))
		res, err := c.GetComponent(ctx, "alert-dialog", "")
		require.NoError(t, err)
		assert.True(t, res.Cached)
	})
}
