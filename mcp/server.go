// Package mcp exposes the documentation cache to AI clients over the
// Model Context Protocol: tools for component API lookup and cache
// management, a resource listing the known component set, and a prompt
// template for component usage questions.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spartandoc/spartandoc"
	"github.com/spartandoc/spartandoc/warm"
)

const serverName = "spartandoc"

// Server wires the fetch/extract/cache pipeline into an MCP server.
type Server struct {
	Fetcher      spartandoc.ContentFetcher
	Extractor    spartandoc.APIExtractor
	DocExtractor spartandoc.Extractor // optional, docs main-content extraction
	Converter    spartandoc.Converter // optional, docs HTML to markdown
	Cache        spartandoc.Cache
	Warmer       *warm.Warmer
	BaseURL      string
	Version      string
	Logger       *slog.Logger
}

// Run registers all tools, resources and prompts and serves on stdio
// until the context is canceled or the client disconnects. Logging goes
// to the configured logger; MCP owns stdout.
func (s *Server) Run(ctx context.Context) error {
	if s.Fetcher == nil || s.Extractor == nil || s.Cache == nil {
		return spartandoc.Errorf(spartandoc.EINTERNAL, "mcp server requires a fetcher, extractor and cache")
	}
	if s.BaseURL == "" {
		s.BaseURL = spartandoc.DefaultBaseURL
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: s.Version,
		},
		nil,
	)

	s.registerTools(server)
	s.registerResources(server)
	s.registerPrompts(server)

	s.Logger.InfoContext(ctx, "server ready", "name", serverName, "version", s.Version, "cacheVersion", s.Cache.ActiveVersion())

	return server.Run(ctx, &mcp.StdioTransport{})
}
