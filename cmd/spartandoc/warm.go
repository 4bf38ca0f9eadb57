package main

import (
	"fmt"
	"time"

	"github.com/spartandoc/spartandoc/warm"
)

const timeRound = 10 * time.Millisecond

// Run warms the disk cache for the requested component set.
func (c *WarmCmd) Run(deps *Dependencies) error {
	components := c.Components
	if c.Discover {
		discovered, err := deps.Discoverer.DiscoverComponents(deps.Ctx, deps.BaseURL)
		if err != nil {
			return fmt.Errorf("discovering components: %w", err)
		}
		if len(discovered) > 0 {
			components = discovered
			fmt.Fprintf(deps.Stderr, "discovered %d components from sitemap\n", len(discovered))
		}
	}

	result, err := deps.Warmer.WarmCache(deps.Ctx, warm.Options{
		Components:  components,
		IncludeDocs: c.Docs,
		Progress: func(completed, total int) {
			fmt.Fprintf(deps.Stderr, "\r%d/%d", completed, total)
			if completed == total {
				fmt.Fprintln(deps.Stderr)
			}
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "version %s: %d components cached (%d changed, %d failed) in %s\n",
		result.Version,
		result.Components.Success,
		result.Components.Changed,
		result.Components.Failed,
		result.Duration.Round(timeRound),
	)
	if c.Docs {
		fmt.Fprintf(deps.Stdout, "docs: %d topics cached (%d changed, %d failed)\n",
			result.Docs.Success, result.Docs.Changed, result.Docs.Failed)
	}
	for _, e := range result.Components.Errors {
		fmt.Fprintf(deps.Stderr, "  %s: %s\n", e.Item, e.Error)
	}
	for _, e := range result.Docs.Errors {
		fmt.Fprintf(deps.Stderr, "  %s: %s\n", e.Item, e.Error)
	}

	return nil
}
