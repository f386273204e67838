package main

import (
	"errors"

	"github.com/spf13/cobra"

	pg "medicine-reminder/internal/adapters/storage/postgres"
	"medicine-reminder/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations (requires DB_DSN)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DBDSN == "" {
			return errors.New("DB_DSN is required")
		}

		log := newLogger(cfg)
		defer func() { _ = log.Sync() }()

		db, err := pg.Open(cmd.Context(), cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := pg.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}
		log.Info("migrations applied", map[string]any{"files": applied})
		return nil
	},
}
