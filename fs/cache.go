// Package fs provides the file-based, version-partitioned cache for
// extracted component and documentation data.
//
// Layout, per version partition:
//
//	{baseDir}/{version}/metadata.json
//	{baseDir}/{version}/components/{key}.json
//	{baseDir}/{version}/docs/{topic}.json
//
// Entry files are the source of truth for presence; metadata.json is an
// index over them kept in lockstep on every write.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spartandoc/spartandoc"
)

// DefaultTTL is how old an entry may be before reads flag it stale.
// Staleness is advisory: stale entries are still returned with data.
const DefaultTTL = 24 * time.Hour

// Ensure Cache implements spartandoc.Cache at compile time.
var _ spartandoc.Cache = (*Cache)(nil)

// Cache is the on-disk implementation of spartandoc.Cache.
//
// Methods are safe for concurrent use within one process. Two separate
// processes initializing the same partition can still race on the
// metadata file (last writer wins); that is an accepted limitation, not a
// multi-process-safe design.
type Cache struct {
	baseDir string
	ttl     time.Duration
	clock   func() time.Time

	mu      sync.Mutex
	version string
	meta    *spartandoc.VersionMetadata
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the staleness TTL.
func WithTTL(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) CacheOption {
	return func(c *Cache) {
		c.clock = clock
	}
}

// NewCache creates a Cache rooted at baseDir. No disk I/O happens until
// Initialize is called.
func NewCache(baseDir string, opts ...CacheOption) *Cache {
	c := &Cache{
		baseDir: baseDir,
		ttl:     DefaultTTL,
		clock:   time.Now,
		version: spartandoc.DefaultVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize sets the active version (spartandoc.DefaultVersion when
// empty), ensures the partition directories exist and loads or lazily
// creates the partition metadata.
func (c *Cache) Initialize(ctx context.Context, version string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if version == "" {
		version = spartandoc.DefaultVersion
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensurePartition(version); err != nil {
		return "", err
	}
	c.version = version
	c.meta = c.loadOrCreateMetadata(version)
	return version, nil
}

// ActiveVersion returns the currently active version partition.
func (c *Cache) ActiveVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// SwitchVersion changes the active version pointer and ensures the new
// partition exists. No other partition's data is touched.
func (c *Cache) SwitchVersion(ctx context.Context, version string) error {
	if version == "" {
		return spartandoc.Errorf(spartandoc.EINVALID, "version required")
	}
	_, err := c.Initialize(ctx, version)
	return err
}

// GetComponent reads the entry for key under the active version. A
// missing or corrupt entry file is a cache miss, never an error.
func (c *Cache) GetComponent(ctx context.Context, key string, field spartandoc.ComponentField) (*spartandoc.ComponentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	version := c.version
	path := c.componentPath(version, key)
	c.mu.Unlock()

	miss := &spartandoc.ComponentResult{Cached: false, Version: version}

	data, err := os.ReadFile(path)
	if err != nil {
		return miss, nil
	}

	var entry spartandoc.ComponentEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return miss, nil
	}

	return &spartandoc.ComponentResult{
		Data:     projectComponent(&entry, field),
		Cached:   true,
		Stale:    c.isStale(entry.CachedAt),
		CachedAt: entry.CachedAt,
		Version:  version,
	}, nil
}

// SetComponent writes the payload for key and updates the partition
// metadata in lockstep. Write failures propagate: a failed write must not
// silently report success.
func (c *Cache) SetComponent(ctx context.Context, key string, payload *spartandoc.ComponentPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key = spartandoc.NormalizeKey(key)
	if key == "" {
		return spartandoc.Errorf(spartandoc.EINVALID, "component key required")
	}
	if payload == nil {
		return spartandoc.Errorf(spartandoc.EINVALID, "component payload required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	entry := spartandoc.ComponentEntry{
		ComponentPayload: *payload,
		ComponentName:    key,
		Version:          c.version,
		CachedAt:         now,
	}

	size, err := c.writeJSON(c.componentPath(c.version, key), entry)
	if err != nil {
		return err
	}

	meta := c.activeMetadata()
	meta.Components[key] = spartandoc.EntryInfo{CachedAt: now, Size: size}
	meta.LastUpdated = now
	return c.saveMetadata(c.version, meta)
}

// GetDocs reads the cached content for a documentation topic.
func (c *Cache) GetDocs(ctx context.Context, topic string) (*spartandoc.DocsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	version := c.version
	path := c.docsPath(version, topic)
	c.mu.Unlock()

	miss := &spartandoc.DocsResult{Cached: false, Version: version}

	data, err := os.ReadFile(path)
	if err != nil {
		return miss, nil
	}

	var entry spartandoc.DocsEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return miss, nil
	}

	return &spartandoc.DocsResult{
		Content:  entry.Content,
		Cached:   true,
		Stale:    c.isStale(entry.CachedAt),
		CachedAt: entry.CachedAt,
		Version:  version,
	}, nil
}

// SetDocs writes the content for a documentation topic and updates the
// partition metadata in lockstep.
func (c *Cache) SetDocs(ctx context.Context, topic string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	topic = spartandoc.NormalizeKey(topic)
	if topic == "" {
		return spartandoc.Errorf(spartandoc.EINVALID, "docs topic required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	entry := spartandoc.DocsEntry{
		Topic:    topic,
		Content:  content,
		Version:  c.version,
		CachedAt: now,
	}

	size, err := c.writeJSON(c.docsPath(c.version, topic), entry)
	if err != nil {
		return err
	}

	meta := c.activeMetadata()
	meta.Docs[topic] = spartandoc.EntryInfo{CachedAt: now, Size: size}
	meta.LastUpdated = now
	return c.saveMetadata(c.version, meta)
}

// ClearVersion deletes the entire active version partition, then
// immediately recreates the empty directory structure and fresh metadata.
// Clearing an already-empty partition succeeds; I/O failures are reported
// in the result rather than returned.
func (c *Cache) ClearVersion(ctx context.Context) spartandoc.ClearResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	version := c.version
	if err := os.RemoveAll(c.versionDir(version)); err != nil {
		return spartandoc.ClearResult{Success: false, Message: fmt.Sprintf("clearing version %q: %v", version, err)}
	}
	if err := c.ensurePartition(version); err != nil {
		return spartandoc.ClearResult{Success: false, Message: fmt.Sprintf("recreating version %q: %v", version, err)}
	}
	c.meta = c.freshMetadata(version)
	if err := c.saveMetadata(version, c.meta); err != nil {
		return spartandoc.ClearResult{Success: false, Message: fmt.Sprintf("recreating metadata for %q: %v", version, err)}
	}

	return spartandoc.ClearResult{Success: true, Message: fmt.Sprintf("cleared cache for version %q", version)}
}

// ClearAll deletes every version partition and recreates the active one.
// Partitions that cannot be removed are skipped; only versions actually
// cleared are returned.
func (c *Cache) ClearAll(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.baseDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, spartandoc.Errorf(spartandoc.EINTERNAL, "listing cache directory: %v", err)
	}

	cleared := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.baseDir, e.Name())); err != nil {
			continue
		}
		cleared = append(cleared, e.Name())
	}

	if err := c.ensurePartition(c.version); err != nil {
		return cleared, err
	}
	c.meta = c.freshMetadata(c.version)
	if err := c.saveMetadata(c.version, c.meta); err != nil {
		return cleared, err
	}

	return cleared, nil
}

// Stats reports per-version entry counts. Partitions whose metadata file
// is missing or corrupt are silently skipped.
func (c *Cache) Stats(ctx context.Context) (*spartandoc.CacheStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	current := c.version
	baseDir := c.baseDir
	c.mu.Unlock()

	entries, err := os.ReadDir(baseDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, spartandoc.Errorf(spartandoc.EINTERNAL, "listing cache directory: %v", err)
	}

	stats := &spartandoc.CacheStats{
		CurrentVersion: current,
		Versions:       []spartandoc.VersionStats{},
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta spartandoc.VersionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		stats.Versions = append(stats.Versions, spartandoc.VersionStats{
			Version:        e.Name(),
			ComponentCount: len(meta.Components),
			DocsCount:      len(meta.Docs),
			CreatedAt:      meta.CreatedAt,
			LastUpdated:    meta.LastUpdated,
			IsCurrent:      e.Name() == current,
		})
	}
	stats.TotalVersions = len(stats.Versions)

	return stats, nil
}

// ListVersions returns the version partitions present on disk,
// independent of metadata validity.
func (c *Cache) ListVersions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, spartandoc.Errorf(spartandoc.EINTERNAL, "listing cache directory: %v", err)
	}

	versions := []string{}
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	return versions, nil
}

// isStale reports whether an entry written at t has outlived the TTL.
// An age exactly equal to the TTL is still fresh.
func (c *Cache) isStale(t time.Time) bool {
	return c.clock().Sub(t) > c.ttl
}

func (c *Cache) versionDir(version string) string {
	return filepath.Join(c.baseDir, version)
}

func (c *Cache) componentPath(version, key string) string {
	return filepath.Join(c.versionDir(version), "components", spartandoc.NormalizeKey(key)+".json")
}

func (c *Cache) docsPath(version, topic string) string {
	return filepath.Join(c.versionDir(version), "docs", spartandoc.NormalizeKey(topic)+".json")
}

func (c *Cache) metadataPath(version string) string {
	return filepath.Join(c.versionDir(version), "metadata.json")
}

func (c *Cache) ensurePartition(version string) error {
	for _, dir := range []string{
		filepath.Join(c.versionDir(version), "components"),
		filepath.Join(c.versionDir(version), "docs"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return spartandoc.Errorf(spartandoc.EINTERNAL, "creating cache directory %s: %v", dir, err)
		}
	}
	return nil
}

func (c *Cache) freshMetadata(version string) *spartandoc.VersionMetadata {
	now := c.clock()
	return &spartandoc.VersionMetadata{
		Version:     version,
		CreatedAt:   now,
		LastUpdated: now,
		Components:  make(map[string]spartandoc.EntryInfo),
		Docs:        make(map[string]spartandoc.EntryInfo),
	}
}

// loadOrCreateMetadata reads the partition metadata, recreating it empty
// when missing or corrupt. Only bookkeeping is lost in that case; entry
// files remain the source of truth.
func (c *Cache) loadOrCreateMetadata(version string) *spartandoc.VersionMetadata {
	data, err := os.ReadFile(c.metadataPath(version))
	if err == nil {
		var meta spartandoc.VersionMetadata
		if err := json.Unmarshal(data, &meta); err == nil {
			if meta.Components == nil {
				meta.Components = make(map[string]spartandoc.EntryInfo)
			}
			if meta.Docs == nil {
				meta.Docs = make(map[string]spartandoc.EntryInfo)
			}
			return &meta
		}
	}

	meta := c.freshMetadata(version)
	_ = c.saveMetadata(version, meta)
	return meta
}

// activeMetadata returns the loaded metadata for the active version,
// loading it lazily if Initialize was skipped.
func (c *Cache) activeMetadata() *spartandoc.VersionMetadata {
	if c.meta == nil || c.meta.Version != c.version {
		c.meta = c.loadOrCreateMetadata(c.version)
	}
	return c.meta
}

func (c *Cache) saveMetadata(version string, meta *spartandoc.VersionMetadata) error {
	_, err := c.writeJSON(c.metadataPath(version), meta)
	return err
}

// writeJSON atomically writes v as indented JSON: the data lands in a
// temporary file first and is renamed into place. Returns the number of
// bytes written.
func (c *Cache) writeJSON(path string, v any) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, spartandoc.Errorf(spartandoc.EINTERNAL, "creating directory for %s: %v", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, spartandoc.Errorf(spartandoc.EINTERNAL, "encoding %s: %v", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return 0, spartandoc.Errorf(spartandoc.EINTERNAL, "writing %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, spartandoc.Errorf(spartandoc.EINTERNAL, "renaming %s: %v", tmp, err)
	}

	return int64(len(data)), nil
}

// projectComponent returns the requested field of an entry, or the whole
// entry when field is empty.
func projectComponent(entry *spartandoc.ComponentEntry, field spartandoc.ComponentField) any {
	switch field {
	case spartandoc.FieldHTML:
		return entry.HTML
	case spartandoc.FieldAPI:
		return entry.API
	case spartandoc.FieldExamples:
		return entry.Examples
	case spartandoc.FieldFull:
		return entry.Full
	default:
		return entry
	}
}
