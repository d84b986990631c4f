package controllers

import (
	"net/http"
	"strconv"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type MetricsController struct {
	svc *services.MetricsService
}

func NewMetricsController(svc *services.MetricsService) *MetricsController {
	return &MetricsController{svc: svc}
}

// GET /metrics/overview
func (c *MetricsController) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.svc.Overview(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /metrics/requests-by-status
func (c *MetricsController) RequestsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.svc.RequestsByStatus(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /metrics/requests-by-priority
func (c *MetricsController) RequestsByPriorityHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.svc.RequestsByPriority(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /metrics/requests-over-time?days=30
func (c *MetricsController) RequestsOverTimeHandler(w http.ResponseWriter, r *http.Request) {
	days := services.DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badQuery(w, "days must be a positive integer")
			return
		}
		days = n
	}
	out, err := c.svc.RequestsOverTime(r.Context(), days)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /metrics/building-performance
func (c *MetricsController) BuildingPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.svc.BuildingPerformance(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /metrics/staff-performance
func (c *MetricsController) StaffPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.svc.StaffPerformance(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}
