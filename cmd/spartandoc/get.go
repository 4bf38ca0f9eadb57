package main

import (
	"encoding/json"
	"fmt"

	"github.com/spartandoc/spartandoc"
	"github.com/spartandoc/spartandoc/warm"
)

// Run prints a component's cached payload, warming the entry on demand
// when it is missing, stale, or a refresh was requested.
func (c *GetCmd) Run(deps *Dependencies) error {
	key := spartandoc.NormalizeKey(c.Component)
	if key == "" {
		return spartandoc.Errorf(spartandoc.EINVALID, "component name required")
	}
	field := spartandoc.ComponentField(c.Field)

	result, err := deps.Cache.GetComponent(deps.Ctx, key, field)
	if err != nil {
		return err
	}

	if !result.Cached || result.Stale || c.Refresh {
		warmed, err := deps.Warmer.WarmCache(deps.Ctx, warm.Options{Components: []string{key}})
		if err != nil {
			return err
		}
		if warmed.Components.Failed > 0 {
			// Stale data beats a hard failure when we have it.
			if !result.Cached {
				return spartandoc.Errorf(spartandoc.EUNAVAILABLE, "fetching %q: %s", key, warmed.Components.Errors[0].Error)
			}
			fmt.Fprintf(deps.Stderr, "refresh failed, serving stale data: %s\n", warmed.Components.Errors[0].Error)
		} else {
			result, err = deps.Cache.GetComponent(deps.Ctx, key, field)
			if err != nil {
				return err
			}
		}
	}

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))

	if result.Stale {
		fmt.Fprintf(deps.Stderr, "note: entry is stale (cached %s)\n", result.CachedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
