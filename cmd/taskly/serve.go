package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskly/internal/app"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Migrate the store and serve the API until SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			application, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					log.WithError(err).Warn("close store")
				}
				log.Info("Application stopped")
			}()

			log.WithField("port", cfg.Server.Port).Info("Application start!")
			return application.Run(ctx)
		},
	}
}
