package main

import (
	"fmt"
	"text/tabwriter"
)

// Run prints cache statistics per version partition.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Cache.Stats(deps.Ctx)
	if err != nil {
		return err
	}

	if stats.TotalVersions == 0 {
		fmt.Fprintln(deps.Stdout, "cache is empty")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tCOMPONENTS\tDOCS\tUPDATED\t")
	for _, v := range stats.Versions {
		marker := ""
		if v.IsCurrent {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%d\t%d\t%s\t\n",
			v.Version, marker,
			v.ComponentCount,
			v.DocsCount,
			v.LastUpdated.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
