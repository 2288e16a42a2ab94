package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"coverfinder/internal/coverart"
	"coverfinder/internal/httpapi"
	"coverfinder/internal/metrics"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve cover lookups over HTTP",
		Example: `  coverfinder serve
  coverfinder serve --bind 0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			address := cfg.Server.Bind
			if strings.TrimSpace(bind) != "" {
				address = strings.TrimSpace(bind)
			}
			client, err := ctx.storefrontClient()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			return ctx.withEngine(func(engine *coverart.Engine) error {
				handler := httpapi.NewHandler(engine, client, logger)
				m := metrics.New()
				m.RegisterCacheStats(engine.CacheStats)
				router := httpapi.NewRouter(handler, logger, m)
				return httpapi.NewServer(address, router, logger).ListenAndServe(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to server.bind)")
	return cmd
}
