package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coverfinder/internal/catalogstore"
	"coverfinder/internal/coverart"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the catalog cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog cache settings and persistent store usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Cache.MaxEntries > 0 {
				fmt.Fprintf(out, "Memory bound:     %d entries per map\n", cfg.Cache.MaxEntries)
			} else {
				fmt.Fprintln(out, "Memory bound:     unbounded")
			}
			if !cfg.Cache.Persist {
				fmt.Fprintln(out, "Persistent store: disabled")
				return nil
			}
			store, err := catalogstore.Open(cfg.Cache.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Persistent store: %s\n", store.Path())
			fmt.Fprintf(out, "Responses:        %d\n", count)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard cached catalog responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withEngine(func(engine *coverart.Engine) error {
				if err := engine.ClearCache(cmd.Context()); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if cfg.Cache.Persist {
					fmt.Fprintf(out, "Cleared catalog cache and persistent store %s\n", cfg.Cache.Path)
				} else {
					fmt.Fprintln(out, "Cleared catalog cache")
				}
				return nil
			})
		},
	}
}
