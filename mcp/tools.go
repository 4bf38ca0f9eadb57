package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spartandoc/spartandoc"
	"github.com/spartandoc/spartandoc/warm"
)

// GetComponentAPIInput is the input for the get_component_api tool.
type GetComponentAPIInput struct {
	Component string `json:"component" jsonschema:"Component name, e.g. button or alert-dialog"`
	Tier      string `json:"tier,omitempty" jsonschema:"API tier to return: brain, helm, or empty for both"`
	Refresh   bool   `json:"refresh,omitempty" jsonschema:"Force a fresh fetch even if cached data is available"`
}

// GetComponentAPIOutput is the output of the get_component_api tool.
type GetComponentAPIOutput struct {
	Component string              `json:"component"`
	URL       string              `json:"url"`
	API       *spartandoc.APIInfo `json:"api"`
	Cached    bool                `json:"cached"`
	Stale     bool                `json:"stale"`
	CachedAt  time.Time           `json:"cachedAt,omitempty"`
	Version   string              `json:"version"`
}

// GetComponentAPI returns the structured API data for a component,
// serving cached data when fresh and fetching on demand otherwise. Empty
// brainAPI/helmAPI means the page documents no API for that tier, not an
// error.
func (s *Server) GetComponentAPI(ctx context.Context, req *mcp.CallToolRequest, input GetComponentAPIInput) (*mcp.CallToolResult, GetComponentAPIOutput, error) {
	key := spartandoc.NormalizeKey(input.Component)
	if key == "" {
		return nil, GetComponentAPIOutput{}, spartandoc.Errorf(spartandoc.EINVALID, "component name required")
	}

	content, result, err := s.ensureComponent(ctx, key, input.Refresh)
	if err != nil {
		return nil, GetComponentAPIOutput{}, err
	}

	api := content.API
	if api == nil {
		api = &spartandoc.APIInfo{
			BrainAPI: []spartandoc.ComponentAPI{},
			HelmAPI:  []spartandoc.ComponentAPI{},
			Examples: []spartandoc.Example{},
		}
	}
	switch input.Tier {
	case "brain":
		api = &spartandoc.APIInfo{BrainAPI: api.BrainAPI, HelmAPI: []spartandoc.ComponentAPI{}, Examples: api.Examples}
	case "helm":
		api = &spartandoc.APIInfo{BrainAPI: []spartandoc.ComponentAPI{}, HelmAPI: api.HelmAPI, Examples: api.Examples}
	}

	return nil, GetComponentAPIOutput{
		Component: key,
		URL:       content.URL,
		API:       api,
		Cached:    result.Cached,
		Stale:     result.Stale,
		CachedAt:  result.CachedAt,
		Version:   result.Version,
	}, nil
}

// GetComponentExamplesInput is the input for the get_component_examples tool.
type GetComponentExamplesInput struct {
	Component string `json:"component" jsonschema:"Component name, e.g. button or alert-dialog"`
}

// GetComponentExamplesOutput is the output of the get_component_examples tool.
type GetComponentExamplesOutput struct {
	Component string               `json:"component"`
	Examples  []spartandoc.Example `json:"examples"`
	Cached    bool                 `json:"cached"`
	Stale     bool                 `json:"stale"`
	Version   string               `json:"version"`
}

// GetComponentExamples returns the code examples captured from a
// component's documentation page.
func (s *Server) GetComponentExamples(ctx context.Context, req *mcp.CallToolRequest, input GetComponentExamplesInput) (*mcp.CallToolResult, GetComponentExamplesOutput, error) {
	key := spartandoc.NormalizeKey(input.Component)
	if key == "" {
		return nil, GetComponentExamplesOutput{}, spartandoc.Errorf(spartandoc.EINVALID, "component name required")
	}

	content, result, err := s.ensureComponent(ctx, key, false)
	if err != nil {
		return nil, GetComponentExamplesOutput{}, err
	}

	examples := content.Examples
	if examples == nil {
		examples = []spartandoc.Example{}
	}

	return nil, GetComponentExamplesOutput{
		Component: key,
		Examples:  examples,
		Cached:    result.Cached,
		Stale:     result.Stale,
		Version:   result.Version,
	}, nil
}

// ListComponentsInput is the input for the list_components tool.
type ListComponentsInput struct{}

// ListComponentsOutput is the output of the list_components tool.
type ListComponentsOutput struct {
	Components []string `json:"components"`
	Topics     []string `json:"topics"`
}

// ListComponents returns the known component and documentation topic sets.
func (s *Server) ListComponents(ctx context.Context, req *mcp.CallToolRequest, input ListComponentsInput) (*mcp.CallToolResult, ListComponentsOutput, error) {
	return nil, ListComponentsOutput{
		Components: spartandoc.Components(),
		Topics:     spartandoc.DocTopics(),
	}, nil
}

// GetDocumentationInput is the input for the get_documentation tool.
type GetDocumentationInput struct {
	Topic   string `json:"topic" jsonschema:"Documentation topic, e.g. installation or theming"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"Force a fresh fetch even if cached data is available"`
}

// GetDocumentationOutput is the output of the get_documentation tool.
type GetDocumentationOutput struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
	Cached  bool   `json:"cached"`
	Stale   bool   `json:"stale"`
	Version string `json:"version"`
}

// GetDocumentation returns the content of a documentation topic page,
// fetching and caching it on demand.
func (s *Server) GetDocumentation(ctx context.Context, req *mcp.CallToolRequest, input GetDocumentationInput) (*mcp.CallToolResult, GetDocumentationOutput, error) {
	topic := spartandoc.NormalizeKey(input.Topic)
	if topic == "" {
		return nil, GetDocumentationOutput{}, spartandoc.Errorf(spartandoc.EINVALID, "documentation topic required")
	}

	result, err := s.Cache.GetDocs(ctx, topic)
	if err != nil {
		return nil, GetDocumentationOutput{}, err
	}

	if result.Cached && !result.Stale && !input.Refresh {
		return nil, GetDocumentationOutput{
			Topic:   topic,
			Content: result.Content,
			Cached:  true,
			Stale:   false,
			Version: result.Version,
		}, nil
	}

	html, err := s.Fetcher.FetchContent(ctx, spartandoc.DocURL(s.BaseURL, topic), spartandoc.FormatHTML, input.Refresh)
	if err != nil {
		// A stale copy beats a hard failure.
		if result.Cached {
			return nil, GetDocumentationOutput{Topic: topic, Content: result.Content, Cached: true, Stale: result.Stale, Version: result.Version}, nil
		}
		return nil, GetDocumentationOutput{}, err
	}

	// Same render pipeline as the warmer, so the cached content has the
	// same shape no matter which path wrote it.
	content := warm.RenderTopic(s.DocExtractor, s.Converter, html)

	if err := s.Cache.SetDocs(ctx, topic, content); err != nil {
		return nil, GetDocumentationOutput{}, err
	}

	return nil, GetDocumentationOutput{
		Topic:   topic,
		Content: content,
		Cached:  false,
		Version: s.Cache.ActiveVersion(),
	}, nil
}

// WarmCacheInput is the input for the warm_cache tool.
type WarmCacheInput struct {
	Components  []string `json:"components,omitempty" jsonschema:"Components to warm; defaults to the full known set"`
	IncludeDocs bool     `json:"includeDocs,omitempty" jsonschema:"Also warm the documentation topics"`
}

// WarmCacheOutput is the output of the warm_cache tool.
type WarmCacheOutput struct {
	*warm.Result
}

// WarmCache proactively populates the disk cache. Partial failures are
// reported in the result, never as a tool error.
func (s *Server) WarmCache(ctx context.Context, req *mcp.CallToolRequest, input WarmCacheInput) (*mcp.CallToolResult, WarmCacheOutput, error) {
	if s.Warmer == nil {
		return nil, WarmCacheOutput{}, spartandoc.Errorf(spartandoc.EINTERNAL, "warmer not configured")
	}

	result, err := s.Warmer.WarmCache(ctx, warm.Options{
		Components:  input.Components,
		IncludeDocs: input.IncludeDocs,
	})
	if err != nil {
		return nil, WarmCacheOutput{}, err
	}
	return nil, WarmCacheOutput{Result: result}, nil
}

// CacheStatsInput is the input for the cache_stats tool.
type CacheStatsInput struct{}

// CacheStatsOutput is the output of the cache_stats tool.
type CacheStatsOutput struct {
	*spartandoc.CacheStats
}

// CacheStats reports per-version cache statistics.
func (s *Server) CacheStats(ctx context.Context, req *mcp.CallToolRequest, input CacheStatsInput) (*mcp.CallToolResult, CacheStatsOutput, error) {
	stats, err := s.Cache.Stats(ctx)
	if err != nil {
		return nil, CacheStatsOutput{}, err
	}
	return nil, CacheStatsOutput{CacheStats: stats}, nil
}

// ClearCacheInput is the input for the clear_cache tool.
type ClearCacheInput struct {
	All bool `json:"all,omitempty" jsonschema:"Clear every version partition instead of only the active one"`
}

// ClearCacheOutput is the output of the clear_cache tool.
type ClearCacheOutput struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Cleared []string `json:"cleared,omitempty"`
}

// ClearCache clears the active version partition, or all partitions.
func (s *Server) ClearCache(ctx context.Context, req *mcp.CallToolRequest, input ClearCacheInput) (*mcp.CallToolResult, ClearCacheOutput, error) {
	if input.All {
		cleared, err := s.Cache.ClearAll(ctx)
		if err != nil {
			return nil, ClearCacheOutput{}, err
		}
		return nil, ClearCacheOutput{Success: true, Message: "cleared all cached versions", Cleared: cleared}, nil
	}

	res := s.Cache.ClearVersion(ctx)
	return nil, ClearCacheOutput{Success: res.Success, Message: res.Message}, nil
}

// SwitchVersionInput is the input for the switch_version tool.
type SwitchVersionInput struct {
	Version string `json:"version" jsonschema:"Version partition to activate, e.g. latest or 1.2.0"`
}

// SwitchVersionOutput is the output of the switch_version tool.
type SwitchVersionOutput struct {
	Version string `json:"version"`
}

// SwitchVersion changes the active cache version partition.
func (s *Server) SwitchVersion(ctx context.Context, req *mcp.CallToolRequest, input SwitchVersionInput) (*mcp.CallToolResult, SwitchVersionOutput, error) {
	if err := s.Cache.SwitchVersion(ctx, input.Version); err != nil {
		return nil, SwitchVersionOutput{}, err
	}
	return nil, SwitchVersionOutput{Version: s.Cache.ActiveVersion()}, nil
}

// ensureComponent returns the full cached content for a component,
// fetching, extracting and caching on demand when the entry is missing,
// stale, or a refresh was requested. When a fetch fails and a stale copy
// exists, the stale copy is served.
func (s *Server) ensureComponent(ctx context.Context, key string, refresh bool) (*spartandoc.ComponentContent, *spartandoc.ComponentResult, error) {
	result, err := s.Cache.GetComponent(ctx, key, spartandoc.FieldFull)
	if err != nil {
		return nil, nil, err
	}

	if result.Cached && !result.Stale && !refresh {
		if content, ok := result.Data.(*spartandoc.ComponentContent); ok && content != nil {
			return content, result, nil
		}
	}

	url := spartandoc.ComponentURL(s.BaseURL, key)
	html, err := s.Fetcher.FetchContent(ctx, url, spartandoc.FormatHTML, refresh)
	if err != nil {
		if result.Cached {
			if content, ok := result.Data.(*spartandoc.ComponentContent); ok && content != nil {
				s.Logger.WarnContext(ctx, "serving stale component after fetch failure", "component", key, "error", err)
				return content, result, nil
			}
		}
		return nil, nil, err
	}

	api, err := s.Extractor.ExtractAPIInfo(html)
	if err != nil {
		s.Logger.ErrorContext(ctx, "api extraction failed", "component", key, "error", err)
		api = &spartandoc.APIInfo{
			BrainAPI: []spartandoc.ComponentAPI{},
			HelmAPI:  []spartandoc.ComponentAPI{},
			Examples: []spartandoc.Example{},
		}
	}

	content := &spartandoc.ComponentContent{
		HTML:     html,
		API:      api,
		Examples: api.Examples,
		URL:      url,
	}
	payload := &spartandoc.ComponentPayload{
		HTML:     html,
		API:      api,
		Examples: api.Examples,
		Full:     content,
	}
	if err := s.Cache.SetComponent(ctx, key, payload); err != nil {
		return nil, nil, err
	}

	fresh := &spartandoc.ComponentResult{
		Data:     content,
		Cached:   false,
		Stale:    false,
		CachedAt: time.Now(),
		Version:  s.Cache.ActiveVersion(),
	}
	return content, fresh, nil
}

// registerTools registers all MCP tools.
func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_component_api",
		Description: "Get the structured API (selectors, inputs, outputs) of a spartan-ng component, covering both the Brain (unstyled) and Helm (styled) tiers. Empty tiers mean the page documents no API there.",
	}, s.GetComponentAPI)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_component_examples",
		Description: "Get the code examples from a spartan-ng component's documentation page.",
	}, s.GetComponentExamples)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_components",
		Description: "List all known spartan-ng components and documentation topics.",
	}, s.ListComponents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_documentation",
		Description: "Get the content of a spartan-ng documentation topic page (installation, theming, dark mode, ...).",
	}, s.GetDocumentation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "warm_cache",
		Description: "Proactively fetch and cache documentation for the known component set. Reports per-item failures without aborting.",
	}, s.WarmCache)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cache_stats",
		Description: "Report cached component and documentation counts for every version partition.",
	}, s.CacheStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Clear the active cache version partition, or all partitions.",
	}, s.ClearCache)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "switch_version",
		Description: "Switch the active cache version partition. The version string is an opaque partition key; there is no auto-detection.",
	}, s.SwitchVersion)
}
