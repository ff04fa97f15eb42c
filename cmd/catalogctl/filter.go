package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/uniadvisor/internal/app/catalog"
)

func newFilterCmd(root *rootOptions) *cobra.Command {
	var (
		in, out, prefix string
		exclude         []string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep only courses with an id prefix",
		Long:  `Writes the courses whose id starts with --prefix, minus those matching any --exclude prefix (e.g. --prefix CS --exclude CSP).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lgr := root.logger()

			c, err := catalog.LoadFile(in, "")
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", in, err)
			}

			courses := c.LookupExcluding(prefix, exclude)
			if err := writeCatalog(cmd, out, courses); err != nil {
				return err
			}
			lgr.Info().
				Str("prefix", prefix).
				Strs("exclude", exclude).
				Int("kept", len(courses)).
				Int("total", c.Len()).
				Msg("Catalog filtered")
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Input catalog file")
	cmd.Flags().StringVar(&out, "out", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Course id prefix to keep")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Course id prefixes to drop")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("prefix")
	return cmd
}
