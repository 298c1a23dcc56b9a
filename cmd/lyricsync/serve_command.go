package main

import (
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/api"
	"lyricsync/internal/logging"
	"lyricsync/internal/metrics"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve alignment, captions, lookups and offsets over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if value := strings.TrimSpace(bind); value != "" {
				cfg.API.Bind = value
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			m := metrics.New()
			store, err := ctx.openStore(m)
			if err != nil {
				return err
			}

			runCtx := ctx.runContext(cmd)
			logging.WithContext(runCtx, logger).Info("offset store ready",
				logging.String("offsets_backend", cfg.Offsets.Backend),
				logging.Int("offsets_capacity", store.Capacity()),
			)
			return api.NewServer(cfg, store, logger, m).ListenAndServe(runCtx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides api.bind)")
	return cmd
}
