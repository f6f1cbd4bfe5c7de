package main

import (
	"auth-service/config"
	"auth-service/internal/util"
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			util.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return config.Migrate(cmd.Context(), db, command)
		},
	}
}
