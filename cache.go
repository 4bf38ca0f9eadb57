package spartandoc

import (
	"context"
	"time"
)

// DefaultVersion is the partition used when no explicit library version is
// supplied. The version string is an opaque partition key chosen by the
// caller; there is no auto-detection of an installed library version.
const DefaultVersion = "latest"

// ComponentContent bundles everything captured for a component page.
type ComponentContent struct {
	HTML     string    `json:"html,omitempty"`
	API      *APIInfo  `json:"api,omitempty"`
	Examples []Example `json:"examples,omitempty"`
	URL      string    `json:"url,omitempty"`
}

// ComponentPayload is the cacheable content of a component page. Full
// repeats the page data together with its source URL so a single cache
// read can serve the complete record.
type ComponentPayload struct {
	HTML     string            `json:"html,omitempty"`
	API      *APIInfo          `json:"api,omitempty"`
	Examples []Example         `json:"examples,omitempty"`
	Full     *ComponentContent `json:"full,omitempty"`
}

// ComponentEntry is the on-disk shape of a cached component.
type ComponentEntry struct {
	ComponentPayload
	ComponentName string    `json:"componentName"`
	Version       string    `json:"version"`
	CachedAt      time.Time `json:"cachedAt"`
}

// DocsEntry is the on-disk shape of a cached documentation topic.
type DocsEntry struct {
	Topic    string    `json:"topic"`
	Content  string    `json:"content"`
	Version  string    `json:"version"`
	CachedAt time.Time `json:"cachedAt"`
}

// ComponentField selects a projection of a cached component payload.
type ComponentField string

const (
	FieldHTML     ComponentField = "html"
	FieldAPI      ComponentField = "api"
	FieldExamples ComponentField = "examples"
	FieldFull     ComponentField = "full"
)

// Validate returns an error if the field is not a known projection.
// The empty field selects the whole payload.
func (f ComponentField) Validate() error {
	switch f {
	case "", FieldHTML, FieldAPI, FieldExamples, FieldFull:
		return nil
	}
	return Errorf(EINVALID, "unknown component field %q", string(f))
}

// ComponentResult is the outcome of a component cache read.
//
// Stale is advisory: a stale hit still carries data and it is up to the
// caller to decide whether to refresh.
type ComponentResult struct {
	// Data is the requested projection: *ComponentEntry when no field was
	// given, otherwise the field value (string, *APIInfo, []Example or
	// *ComponentContent). Nil on a miss.
	Data     any       `json:"data,omitempty"`
	Cached   bool      `json:"cached"`
	Stale    bool      `json:"stale"`
	CachedAt time.Time `json:"cachedAt,omitempty"`
	Version  string    `json:"version"`
}

// DocsResult is the outcome of a docs cache read.
type DocsResult struct {
	Content  string    `json:"content,omitempty"`
	Cached   bool      `json:"cached"`
	Stale    bool      `json:"stale"`
	CachedAt time.Time `json:"cachedAt,omitempty"`
	Version  string    `json:"version"`
}

// EntryInfo is the metadata bookkeeping for one cached entry.
type EntryInfo struct {
	CachedAt time.Time `json:"cachedAt"`
	Size     int64     `json:"size"`
}

// VersionMetadata indexes the entries of one version partition. Entry
// files are the source of truth for presence; this index exists for cheap
// stats and can be rebuilt from the entry files.
type VersionMetadata struct {
	Version     string               `json:"version"`
	CreatedAt   time.Time            `json:"createdAt"`
	LastUpdated time.Time            `json:"lastUpdated"`
	Components  map[string]EntryInfo `json:"components"`
	Docs        map[string]EntryInfo `json:"docs"`
}

// ClearResult reports the outcome of a clear operation.
type ClearResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VersionStats summarizes one version partition.
type VersionStats struct {
	Version        string    `json:"version"`
	ComponentCount int       `json:"componentCount"`
	DocsCount      int       `json:"docsCount"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdated    time.Time `json:"lastUpdated"`
	IsCurrent      bool      `json:"isCurrent"`
}

// CacheStats summarizes all version partitions on disk.
type CacheStats struct {
	CurrentVersion string         `json:"currentVersion"`
	TotalVersions  int            `json:"totalVersions"`
	Versions       []VersionStats `json:"versions"`
}

// Cache is a version-partitioned persistent store for extracted component
// and documentation data.
//
// Operations on one version partition never touch another partition's
// files. Reads degrade to a miss on any problem (absent file, corrupt
// JSON, permission error); writes propagate errors, since a failed write
// must not silently report success.
type Cache interface {
	// Initialize sets the active version (DefaultVersion when version is
	// empty), ensures the partition's directory tree exists and loads or
	// lazily creates its metadata. Returns the active version.
	Initialize(ctx context.Context, version string) (string, error)

	// ActiveVersion returns the currently active version partition.
	ActiveVersion() string

	// GetComponent reads the cached entry for key under the active
	// version, projected to field (the whole entry when field is empty).
	GetComponent(ctx context.Context, key string, field ComponentField) (*ComponentResult, error)

	// SetComponent writes the payload for key under the active version
	// and updates the partition metadata in lockstep.
	SetComponent(ctx context.Context, key string, payload *ComponentPayload) error

	// GetDocs reads the cached content for a documentation topic.
	GetDocs(ctx context.Context, topic string) (*DocsResult, error)

	// SetDocs writes the content for a documentation topic.
	SetDocs(ctx context.Context, topic string, content string) error

	// ClearVersion deletes the active version partition and recreates it
	// empty. I/O failures are reported in the result, never returned as
	// an error, and clearing an already-empty partition succeeds.
	ClearVersion(ctx context.Context) ClearResult

	// ClearAll deletes every version partition and recreates the active
	// one. Returns the names of the versions that were cleared.
	ClearAll(ctx context.Context) ([]string, error)

	// Stats reports per-version entry counts. Partitions whose metadata
	// file is missing or corrupt are silently skipped.
	Stats(ctx context.Context) (*CacheStats, error)

	// ListVersions returns the version partitions present on disk,
	// independent of metadata validity.
	ListVersions(ctx context.Context) ([]string, error)

	// SwitchVersion changes the active version and ensures its partition
	// exists, without touching any other partition's data.
	SwitchVersion(ctx context.Context, version string) error
}
