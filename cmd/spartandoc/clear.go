package main

import (
	"fmt"
	"strings"

	"github.com/spartandoc/spartandoc"
)

// Run clears the active version partition, or all partitions with --all.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if c.All {
		cleared, err := deps.Cache.ClearAll(deps.Ctx)
		if err != nil {
			return err
		}
		if len(cleared) == 0 {
			fmt.Fprintln(deps.Stdout, "nothing to clear")
			return nil
		}
		fmt.Fprintf(deps.Stdout, "cleared versions: %s\n", strings.Join(cleared, ", "))
		return nil
	}

	result := deps.Cache.ClearVersion(deps.Ctx)
	fmt.Fprintln(deps.Stdout, result.Message)
	if !result.Success {
		return spartandoc.Errorf(spartandoc.EINTERNAL, "%s", result.Message)
	}
	return nil
}
