package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coverfinder/internal/steamstore"
)

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assets <appid>",
		Short: "Probe every Steam CDN artwork variant of an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := steamstore.ParseAppID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.storefrontClient()
			if err != nil {
				return err
			}
			statuses, err := client.ProbeAssets(cmd.Context(), appID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, statuses)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, status := range statuses {
				fmt.Fprintln(out, renderCoverLine(string(status.Kind), status.Available, status.URL, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit probe results as JSON")
	return cmd
}

func newAppCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "app <appid>",
		Short: "Show Steam storefront details for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := steamstore.ParseAppID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.storefrontClient()
			if err != nil {
				return err
			}
			details, err := client.AppDetails(cmd.Context(), appID)
			if err != nil {
				return err
			}
			if details == nil {
				return fmt.Errorf("app %d not found on the storefront", appID)
			}
			info := steamstore.FormatAppInfo(details)
			if asJSON {
				return writeJSON(cmd, info)
			}
			printAppInfo(cmd, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit details as JSON")
	return cmd
}

func printAppInfo(cmd *cobra.Command, info steamstore.AppInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "App:          %d\n", info.ID)
	fmt.Fprintf(out, "Name:         %s\n", info.Name)
	fmt.Fprintf(out, "Type:         %s\n", info.Type)
	if info.ReleaseDate != "" {
		fmt.Fprintf(out, "Released:     %s\n", info.ReleaseDate)
	}
	fmt.Fprintf(out, "Developers:   %s\n", listOrNone(info.Developers))
	fmt.Fprintf(out, "Publishers:   %s\n", listOrNone(info.Publishers))
	fmt.Fprintf(out, "Genres:       %s\n", listOrNone(info.Genres))
	fmt.Fprintf(out, "Platforms:    %s\n", listOrNone(info.Platforms))
	if info.Metacritic != nil {
		fmt.Fprintf(out, "Metacritic:   %d\n", info.Metacritic.Score)
	}
	if info.Description != "" {
		fmt.Fprintf(out, "\n%s\n", info.Description)
	}
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
