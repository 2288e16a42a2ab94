package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coverfinder/internal/applist"
	"coverfinder/internal/config"
	"coverfinder/internal/coverart"
	"coverfinder/internal/fileutil"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		backup     bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Fill image-path for every app in a JSON or YAML list",
		Long: `Resolves a cover for every record with a name and writes it to the
record's image-path field. Records without a match keep their existing value.
The file is rewritten in place unless --output is given.`,
		Example: `  coverfinder batch apps.json
  coverfinder batch apps.yaml -o apps.covers.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			target := source
			if strings.TrimSpace(outputPath) != "" {
				if target, err = config.ExpandPath(strings.TrimSpace(outputPath)); err != nil {
					return err
				}
			}

			lock, err := fileutil.TryLock(source)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			file, err := applist.Load(source)
			if err != nil {
				return err
			}
			return ctx.withEngine(func(engine *coverart.Engine) error {
				records, err := engine.ResolveBatch(cmd.Context(), file.Records)
				if err != nil {
					return fmt.Errorf("batch interrupted, %s left unchanged: %w", target, err)
				}
				updated := countUpdated(file.Records, records)
				if backup && target == source {
					if err := fileutil.CopyFile(source, source+".bak"); err != nil {
						return fmt.Errorf("back up %s: %w", source, err)
					}
				}
				file.Records = records
				if err := file.Save(target); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d records; wrote %s\n", updated, len(records), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to this file instead of the input")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy the input to <file>.bak before rewriting it in place")
	return cmd
}

func countUpdated(before, after []applist.Record) int {
	count := 0
	for i := range after {
		if i < len(before) && before[i].ImagePath() != after[i].ImagePath() {
			count++
		}
	}
	return count
}
