package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spartandoc/spartandoc"
	spartanhttp "github.com/spartandoc/spartandoc/http"
	"github.com/spartandoc/spartandoc/warm"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	Cache         spartandoc.Cache
	Fetcher       spartandoc.ContentFetcher
	Extractor     spartandoc.APIExtractor
	Warmer        *warm.Warmer
	Discoverer    *spartanhttp.Discoverer
	BaseURL       string
	ServerVersion string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LibVersion string `name:"lib-version" default:"latest" help:"Cache version partition to operate on"`

	Serve    ServeCmd    `cmd:"" help:"Serve documentation tools over MCP stdio"`
	Warm     WarmCmd     `cmd:"" help:"Fetch and cache documentation for the known component set"`
	Get      GetCmd      `cmd:"" help:"Show the cached API of a component, fetching on demand"`
	Docs     DocsCmd     `cmd:"" help:"Show the cached content of a documentation topic"`
	Stats    StatsCmd    `cmd:"" help:"Show cache statistics per version partition"`
	Clear    ClearCmd    `cmd:"" help:"Clear the active version partition"`
	Versions VersionsCmd `cmd:"" help:"List version partitions present on disk"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct {
	Components []string `arg:"" optional:"" help:"Components to warm (defaults to the full known set)"`
	Docs       bool     `help:"Also warm the documentation topics"`
	Discover   bool     `help:"Discover the component set from the site's sitemap"`
	Browser    bool     `help:"Fetch with headless Chrome instead of plain HTTP"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Component string `arg:"" help:"Component name"`
	Field     string `short:"f" enum:",html,api,examples,full" default:"api" help:"Payload field to print"`
	Refresh   bool   `short:"r" help:"Force a fresh fetch even if cached"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Topic   string `arg:"" help:"Documentation topic"`
	Refresh bool   `short:"r" help:"Force a fresh fetch even if cached"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	All bool `help:"Clear every version partition, not just the active one"`
}

// VersionsCmd is the "versions" subcommand.
type VersionsCmd struct{}
