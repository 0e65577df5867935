package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "github.com/iPad7/gantt-4team/internal/adapter/db"
	"github.com/iPad7/gantt-4team/internal/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			db, err := dbadapter.ConnectDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", cfg.DbDriver, err)
			}
			defer db.Close()

			if err := dbadapter.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("schema applied", zap.String("driver", db.DriverName()))
			return nil
		},
	}
}
