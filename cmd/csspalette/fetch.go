package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/csspalette/internal/adapter/input"
	"github.com/jmylchreest/csspalette/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:     "fetch",
	Aliases: []string{"vendor"},
	Short:   "Vendor the latest copy of each source stylesheet",
	Long: `Fetch each configured stylesheet and store it in the vendor directory
as <stem>.<version><ext>.

For a git source the version is the short hash of the last commit that
touched the file; for an http source it is a short hash of the content.
Files whose version is already vendored are left alone. When a new version
is fetched, older copies of that file are removed.

Examples:
  # Vendor from the configured git checkout
  csspalette fetch

  # Vendor into another project directory
  csspalette -C ~/themes/alexwlchan fetch`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout())
	defer cancel()

	adapter, err := input.NewAdapter(cfg.Source)
	if err != nil {
		return err
	}

	vendorer := fetch.NewVendorer(cfg.Paths.VendorDir, logger)
	results, err := fetch.All(ctx, adapter, vendorer, cfg.Source.Files)
	// Report what was vendored even when a later file failed
	for _, r := range results {
		status := "unchanged"
		if r.Changed {
			status = "vendored"
		}
		fmt.Printf("%-9s %s (%s, %s)\n", status, r.Path, r.Version, humanize.Bytes(uint64(r.Size)))
	}
	return err
}
