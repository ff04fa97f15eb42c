package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yigit/uniadvisor/internal/app/catalog"
	"github.com/yigit/uniadvisor/internal/pkg/logger"
)

// options shared by all subcommands
type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Prepare and inspect course catalogs",
		Long:          `Converts scraped catalogs into the structured form the advisor loads, narrows them by course prefix and prints lookups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newNormalizeCmd(opts),
		newFilterCmd(opts),
		newLookupCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger() zerolog.Logger {
	level := logger.InfoLevel
	if o.verbose {
		level = logger.DebugLevel
	}
	return logger.Configure(logger.Config{Level: level, Pretty: true, Output: os.Stderr})
}

// writeCatalog encodes courses to path, or to stdout when path is empty or "-"
func writeCatalog(cmd *cobra.Command, path string, courses []catalog.Course) error {
	var w io.Writer = cmd.OutOrStdout()
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if err := catalog.Encode(w, courses); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

func resolveUniversity(name string) (string, error) {
	code, ok := catalog.Resolve(name)
	if !ok {
		return "", fmt.Errorf("unknown university %q, expected one of %v", name, catalog.Universities)
	}
	return code, nil
}
