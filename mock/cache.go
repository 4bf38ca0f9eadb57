package mock

import (
	"context"

	"github.com/spartandoc/spartandoc"
)

var _ spartandoc.Cache = (*Cache)(nil)

// Cache is a mock implementation of spartandoc.Cache.
type Cache struct {
	InitializeFn    func(ctx context.Context, version string) (string, error)
	ActiveVersionFn func() string
	GetComponentFn  func(ctx context.Context, key string, field spartandoc.ComponentField) (*spartandoc.ComponentResult, error)
	SetComponentFn  func(ctx context.Context, key string, payload *spartandoc.ComponentPayload) error
	GetDocsFn       func(ctx context.Context, topic string) (*spartandoc.DocsResult, error)
	SetDocsFn       func(ctx context.Context, topic string, content string) error
	ClearVersionFn  func(ctx context.Context) spartandoc.ClearResult
	ClearAllFn      func(ctx context.Context) ([]string, error)
	StatsFn         func(ctx context.Context) (*spartandoc.CacheStats, error)
	ListVersionsFn  func(ctx context.Context) ([]string, error)
	SwitchVersionFn func(ctx context.Context, version string) error
}

func (c *Cache) Initialize(ctx context.Context, version string) (string, error) {
	if c.InitializeFn == nil {
		if version == "" {
			version = spartandoc.DefaultVersion
		}
		return version, nil
	}
	return c.InitializeFn(ctx, version)
}

func (c *Cache) ActiveVersion() string {
	if c.ActiveVersionFn == nil {
		return spartandoc.DefaultVersion
	}
	return c.ActiveVersionFn()
}

func (c *Cache) GetComponent(ctx context.Context, key string, field spartandoc.ComponentField) (*spartandoc.ComponentResult, error) {
	return c.GetComponentFn(ctx, key, field)
}

func (c *Cache) SetComponent(ctx context.Context, key string, payload *spartandoc.ComponentPayload) error {
	return c.SetComponentFn(ctx, key, payload)
}

func (c *Cache) GetDocs(ctx context.Context, topic string) (*spartandoc.DocsResult, error) {
	return c.GetDocsFn(ctx, topic)
}

func (c *Cache) SetDocs(ctx context.Context, topic string, content string) error {
	return c.SetDocsFn(ctx, topic, content)
}

func (c *Cache) ClearVersion(ctx context.Context) spartandoc.ClearResult {
	return c.ClearVersionFn(ctx)
}

func (c *Cache) ClearAll(ctx context.Context) ([]string, error) {
	return c.ClearAllFn(ctx)
}

func (c *Cache) Stats(ctx context.Context) (*spartandoc.CacheStats, error) {
	return c.StatsFn(ctx)
}

func (c *Cache) ListVersions(ctx context.Context) ([]string, error) {
	return c.ListVersionsFn(ctx)
}

func (c *Cache) SwitchVersion(ctx context.Context, version string) error {
	return c.SwitchVersionFn(ctx, version)
}
