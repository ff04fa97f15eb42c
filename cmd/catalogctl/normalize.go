package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/uniadvisor/internal/app/catalog"
)

func newNormalizeCmd(root *rootOptions) *cobra.Command {
	var in, out, university string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite a catalog in the structured array form",
		Long:  `Reads a keyed, raw or structured catalog and writes the canonical structured array. Whitespace is collapsed and prerequisites are kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lgr := root.logger()

			code, err := resolveUniversity(university)
			if err != nil {
				return err
			}

			c, err := catalog.LoadFile(in, code)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", in, err)
			}

			if err := writeCatalog(cmd, out, c.Courses()); err != nil {
				return err
			}
			lgr.Info().Str("university", code).Int("courses", c.Len()).Str("out", out).Msg("Catalog normalized")
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Input catalog file")
	cmd.Flags().StringVar(&out, "out", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&university, "university", "UMASS_BOSTON", "University code or name")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
