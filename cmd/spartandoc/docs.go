package main

import (
	"fmt"

	"github.com/spartandoc/spartandoc"
	"github.com/spartandoc/spartandoc/warm"
)

// Run prints a documentation topic's cached content, warming it on demand.
func (c *DocsCmd) Run(deps *Dependencies) error {
	topic := spartandoc.NormalizeKey(c.Topic)
	if topic == "" {
		return spartandoc.Errorf(spartandoc.EINVALID, "documentation topic required")
	}

	result, err := deps.Cache.GetDocs(deps.Ctx, topic)
	if err != nil {
		return err
	}

	if !result.Cached || result.Stale || c.Refresh {
		warmed, err := deps.Warmer.WarmCache(deps.Ctx, warm.Options{
			Components:  []string{},
			IncludeDocs: true,
			Topics:      []string{topic},
		})
		if err != nil {
			return err
		}
		if warmed.Docs.Failed > 0 {
			if !result.Cached {
				return spartandoc.Errorf(spartandoc.EUNAVAILABLE, "fetching %q: %s", topic, warmed.Docs.Errors[0].Error)
			}
			fmt.Fprintf(deps.Stderr, "refresh failed, serving stale data: %s\n", warmed.Docs.Errors[0].Error)
		} else {
			result, err = deps.Cache.GetDocs(deps.Ctx, topic)
			if err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(deps.Stdout, result.Content)
	return nil
}
