package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coldreach/coldreach/internal/adapters"
	"github.com/coldreach/coldreach/internal/config"
	"github.com/coldreach/coldreach/internal/gateway"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the secure proxy gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			upstream := adapters.NewGeminiUpstream(
				cfg.Upstream.BaseURL, cfg.Upstream.Model, cfg.APIKey, cfg.UpstreamTimeout())
			limiter := gateway.NewLimiter(cfg.Limits.RateMaxRequests, cfg.RateWindow())
			handler := gateway.NewHandler(upstream, limiter, gateway.HandlerConfig{
				Credential:      cfg.APIKey,
				MaxPayloadBytes: cfg.Limits.MaxPayloadBytes,
			}, logger)

			mux := http.NewServeMux()
			mux.Handle("/api/generate", handler)

			logger.Info("gateway listening", zap.String("addr", cfg.Server.Addr))
			return http.ListenAndServe(cfg.Server.Addr, mux)
		},
	}
}
