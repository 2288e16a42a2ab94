package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coverfinder/internal/coverart"
	"coverfinder/internal/services"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var urlOnly bool

	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Print the best cover URL for a title",
		Long: `Looks the title up in the GameDB catalog and, when the catalog has
nothing, in the Steam storefront. Prints the single best cover URL.`,
		Example: `  coverfinder resolve "Portal 2"
  coverfinder resolve --url-only Hades`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinTitle(args)
			if err := services.ValidateTitle(title); err != nil {
				return err
			}
			return ctx.withEngine(func(engine *coverart.Engine) error {
				url, err := engine.ResolveSingleBest(cmd.Context(), title)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if urlOnly {
					if url != "" {
						fmt.Fprintln(out, url)
					}
					return nil
				}
				colorize := shouldColorize(out)
				if url == "" {
					fmt.Fprintln(out, renderCoverLine("Cover", false, fmt.Sprintf("no cover found for %q", title), colorize))
					return nil
				}
				fmt.Fprintln(out, renderCoverLine("Cover", true, url, colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&urlOnly, "url-only", false, "Print only the URL (nothing when no cover is found)")
	return cmd
}
