package main

import (
	"os"
	_ "time/tzdata"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

func main() {
	utils.InitLogger(utils.AppName)
	if err := newRootCmd().Execute(); err != nil {
		utils.Logger.WithError(err).Error("maintenance-service exited with error")
		os.Exit(1)
	}
}
