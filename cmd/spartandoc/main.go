package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/spartandoc/spartandoc"
	"github.com/spartandoc/spartandoc/fs"
	"github.com/spartandoc/spartandoc/goquery"
	spartanhttp "github.com/spartandoc/spartandoc/http"
	"github.com/spartandoc/spartandoc/htmltomarkdown"
	"github.com/spartandoc/spartandoc/rod"
	spartanslog "github.com/spartandoc/spartandoc/slog"
	"github.com/spartandoc/spartandoc/trafilatura"
	"github.com/spartandoc/spartandoc/warm"
)

const serverVersion = "0.3.1"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache directory. Set before calling Run().
	CacheDir string

	// Documentation site base URL.
	BaseURL string

	// TTLs, overridable through the environment.
	FetchTTL time.Duration
	CacheTTL time.Duration

	// Services constructed during Run, exposed for end-to-end testing.
	Cache *fs.Cache
}

// NewMain returns a new instance of Main with defaults from the
// environment.
func NewMain() *Main {
	return &Main{
		CacheDir: defaultCacheDir(),
		BaseURL:  envString("SPARTANDOC_BASE_URL", spartandoc.DefaultBaseURL),
		FetchTTL: envMillis("SPARTANDOC_FETCH_TTL_MS", spartanhttp.DefaultContentTTL),
		CacheTTL: envHours("SPARTANDOC_CACHE_TTL_HOURS", fs.DefaultTTL),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// MCP owns stdout; all logs go to stderr.
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel()}))

	deps := &Dependencies{
		Ctx:           ctx,
		Stdout:        stdout,
		Stderr:        stderr,
		Logger:        logger,
		BaseURL:       m.BaseURL,
		ServerVersion: serverVersion,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("spartandoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'spartandoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Disk cache, partitioned by the requested library version.
	m.Cache = fs.NewCache(m.CacheDir, fs.WithTTL(m.CacheTTL))
	if _, err := m.Cache.Initialize(ctx, cli.LibVersion); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SPARTANDOC_CACHE_DIR to use a different cache path\n")
		return fmt.Errorf("failed to initialize cache at %q: %w", m.CacheDir, err)
	}
	deps.Cache = m.Cache

	// Content fetcher: plain HTTP by default, headless Chrome on request.
	var fetcher spartandoc.Fetcher = spartanhttp.NewFetcher()
	if cmd == "warm" && cli.Warm.Browser {
		browserFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = browserFetcher
	}
	defer fetcher.Close()

	deps.Fetcher = spartanslog.NewLoggingContentFetcher(
		spartanhttp.NewContentFetcher(fetcher, spartanhttp.WithContentTTL(m.FetchTTL)),
		logger,
	)
	deps.Extractor = goquery.NewExtractor()
	deps.Discoverer = spartanhttp.NewDiscoverer(nil)

	deps.Warmer = &warm.Warmer{
		Fetcher:      deps.Fetcher,
		Extractor:    deps.Extractor,
		DocExtractor: trafilatura.NewExtractor(),
		Converter:    htmltomarkdown.NewConverter(),
		Cache:        deps.Cache,
		BaseURL:      m.BaseURL,
		Limiter:      warm.NewLimiter(),
		Logger:       logger,
	}

	return kongCtx.Run(deps)
}

func defaultCacheDir() string {
	if path := os.Getenv("SPARTANDOC_CACHE_DIR"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cache"
	}
	return filepath.Join(home, ".spartandoc", "cache")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envMillis(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

func envHours(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.ParseFloat(v, 64); err == nil && h > 0 {
			return time.Duration(h * float64(time.Hour))
		}
	}
	return fallback
}

func logLevel() slog.Level {
	if os.Getenv("SPARTANDOC_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
