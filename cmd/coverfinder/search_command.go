package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"coverfinder/internal/coverart"
	"coverfinder/internal/services"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "List ranked covers from every source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinTitle(args)
			if err := services.ValidateTitle(title); err != nil {
				return err
			}
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}
			return ctx.withEngine(func(engine *coverart.Engine) error {
				results, err := engine.ResolveAll(cmd.Context(), title)
				if err != nil {
					return err
				}
				if limit > 0 {
					results.Catalog = truncate(results.Catalog, limit)
					results.Storefront = truncate(results.Storefront, limit)
				}
				if asJSON {
					return writeJSON(cmd, results)
				}
				out := cmd.OutOrStdout()
				if results.Len() == 0 {
					fmt.Fprintf(out, "No covers found for %q\n", title)
					return nil
				}
				fmt.Fprintln(out, renderResults(results))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results per source (0 uses the configured maximum)")
	return cmd
}

func truncate(results []coverart.CoverResult, limit int) []coverart.CoverResult {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
