package main

import (
	"github.com/spf13/cobra"

	"taskly/internal/repositories"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			db, err := repositories.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repositories.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.WithField("driver", cfg.Database.Driver).Info("schema is up to date")
			return nil
		},
	}
}
