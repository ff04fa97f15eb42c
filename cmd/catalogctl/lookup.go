package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/uniadvisor/internal/app/catalog"
)

func newLookupCmd(root *rootOptions) *cobra.Command {
	var dir, university, prefix string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Print the courses the advisor would return for a prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lgr := root.logger()

			registry, err := catalog.LoadRegistry(dir, university, lgr)
			if err != nil {
				return err
			}
			c, err := registry.Default()
			if err != nil {
				return err
			}

			courses := c.Lookup(prefix)
			if len(courses) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No courses found with id prefix %s.\n", prefix)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalog.Summary(courses))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "data/catalogs", "Directory holding <UNIVERSITY>.json files")
	cmd.Flags().StringVar(&university, "university", "UMASS_BOSTON", "University code or name")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Course id prefix")
	_ = cmd.MarkFlagRequired("prefix")
	return cmd
}
