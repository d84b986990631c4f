package main

import (
	"github.com/spf13/cobra"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/app"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/config"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "maintenance-service",
		Short:         "Apartment maintenance request API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(cmd.Context(), application.Store, services.SystemClock()); err != nil {
			return err
		}
		utils.Logger.Info("Seeded test data successfully")
	}

	return application.Serve(cmd.Context())
}
