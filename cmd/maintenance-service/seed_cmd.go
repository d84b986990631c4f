package main

import (
	"github.com/spf13/cobra"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/app"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/config"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()
			return app.SeedTestData(cmd.Context(), application.Store, services.SystemClock())
		},
	}
}
