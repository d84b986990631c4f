package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const pingTimeout = 2 * time.Second

// HealthController checks store connectivity and serves the banner.
type HealthController struct {
	ping func(ctx context.Context) error
}

func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

// RootHandler => GET /
func (c *HealthController) RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.RootResponse{
		Message: "Apartment Maintenance API",
		Version: utils.AppVersion,
		Status:  "running",
	})
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := c.ping(ctx); err != nil {
		utils.Logger.WithError(err).Error("maintenance-service store unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeUnavailable, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "healthy"})
}
