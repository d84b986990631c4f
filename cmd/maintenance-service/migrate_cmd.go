package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/app"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{app.MigrateUp, app.MigrateDown, app.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.DBDriver != config.DriverPostgres {
				return errors.New("migrate requires DB_DRIVER=postgres")
			}
			return app.Migrate(cmd.Context(), cfg.DBUrl, args[0])
		},
	}
}
