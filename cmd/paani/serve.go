package main

import (
	"github.com/spf13/cobra"

	"github.com/vbonduro/paani/internal/config"
	"github.com/vbonduro/paani/internal/logging"
	"github.com/vbonduro/paani/internal/metrics"
	"github.com/vbonduro/paani/internal/pricing"
	"github.com/vbonduro/paani/internal/service"
	"github.com/vbonduro/paani/internal/site"
	"github.com/vbonduro/paani/internal/web"
	"github.com/vbonduro/paani/internal/web/templates"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		logger, cleanup := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogMaxSizeMB)
		defer cleanup()

		b, err := openBackends(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := b.Close(); err != nil {
				logger.Error("failed to close store", "error", err)
			}
		}()

		catalogue, err := pricing.Load()
		if err != nil {
			return err
		}

		responder := newResponder(cmd.Context(), cfg, logger)
		svc := service.NewPortfolioService(b.content, b.assets, responder, b.writesDisabled, logger)
		server := web.NewServer(svc, catalogue, site.NewRenderer(b.content, logger), templates.FS, logger, web.Options{
			AdminPassword:    cfg.AdminPassword,
			ShowErrorDetails: !cfg.IsProduction(),
			Metrics:          metrics.New(),
		})

		if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides LISTEN_ADDR)")
}
