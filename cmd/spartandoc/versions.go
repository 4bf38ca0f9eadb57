package main

import "fmt"

// Run lists version partitions present on disk, marking the active one.
func (c *VersionsCmd) Run(deps *Dependencies) error {
	versions, err := deps.Cache.ListVersions(deps.Ctx)
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		fmt.Fprintln(deps.Stdout, "no cached versions")
		return nil
	}

	current := deps.Cache.ActiveVersion()
	for _, v := range versions {
		if v == current {
			fmt.Fprintf(deps.Stdout, "%s *\n", v)
		} else {
			fmt.Fprintln(deps.Stdout, v)
		}
	}
	return nil
}
