package main

import (
	"github.com/spartandoc/spartandoc/mcp"
)

// Run starts the MCP server on stdio and blocks until the client
// disconnects or the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := &mcp.Server{
		Fetcher:      deps.Fetcher,
		Extractor:    deps.Extractor,
		DocExtractor: deps.Warmer.DocExtractor,
		Converter:    deps.Warmer.Converter,
		Cache:        deps.Cache,
		Warmer:       deps.Warmer,
		BaseURL:      deps.BaseURL,
		Version:      deps.ServerVersion,
		Logger:       deps.Logger,
	}
	return server.Run(deps.Ctx)
}
