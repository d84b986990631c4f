package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/controllers"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/middleware"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	Health    *controllers.HealthController
	Buildings *controllers.BuildingsController
	Units     *controllers.UnitsController
	Tenants   *controllers.TenantsController
	Staff     *controllers.StaffController
	Requests  *controllers.RequestsController
	Metrics   *controllers.MetricsController
}

// Services is what NewControllers needs to build the handler sets.
type Services struct {
	Buildings *services.BuildingService
	Units     *services.UnitService
	Tenants   *services.TenantService
	Staff     *services.StaffService
	Requests  *services.RequestService
	Metrics   *services.MetricsService
}

func NewControllers(s Services, health *controllers.HealthController) Controllers {
	return Controllers{
		Health:    health,
		Buildings: controllers.NewBuildingsController(s.Buildings),
		Units:     controllers.NewUnitsController(s.Units),
		Tenants:   controllers.NewTenantsController(s.Tenants),
		Staff:     controllers.NewStaffController(s.Staff),
		Requests:  controllers.NewRequestsController(s.Requests),
		Metrics:   controllers.NewMetricsController(s.Metrics),
	}
}

// NewRouter mounts every route. prometheusPath overrides the exposition path
// when non-empty.
func NewRouter(c Controllers, prometheusPath string) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondErrorWithCode(w, http.StatusMethodNotAllowed, utils.ErrCodeInvalidPayload, "Method not allowed", nil)
	})

	if prometheusPath == "" {
		prometheusPath = Prometheus
	}

	// Public
	router.HandleFunc(Root, c.Health.RootHandler).Methods(http.MethodGet)
	router.HandleFunc(Health, c.Health.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(prometheusPath, promhttp.Handler()).Methods(http.MethodGet)

	// Buildings
	router.HandleFunc(Buildings, c.Buildings.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(Buildings, c.Buildings.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(BuildingByID, c.Buildings.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(BuildingByID, c.Buildings.UpdateHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(BuildingByID, c.Buildings.DeleteHandler).Methods(http.MethodDelete)

	// Units
	router.HandleFunc(Units, c.Units.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(Units, c.Units.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(UnitByID, c.Units.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(UnitByID, c.Units.UpdateHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(UnitByID, c.Units.DeleteHandler).Methods(http.MethodDelete)

	// Tenants
	router.HandleFunc(Tenants, c.Tenants.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(Tenants, c.Tenants.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(TenantByID, c.Tenants.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(TenantByID, c.Tenants.UpdateHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(TenantByID, c.Tenants.DeleteHandler).Methods(http.MethodDelete)

	// Staff
	router.HandleFunc(Staff, c.Staff.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(Staff, c.Staff.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(StaffByID, c.Staff.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(StaffByID, c.Staff.UpdateHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(StaffByID, c.Staff.DeleteHandler).Methods(http.MethodDelete)

	// Requests
	router.HandleFunc(Requests, c.Requests.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(Requests, c.Requests.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(RequestByID, c.Requests.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(RequestByID, c.Requests.UpdateHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(RequestByID, c.Requests.DeleteHandler).Methods(http.MethodDelete)
	router.HandleFunc(RequestAssign, c.Requests.AssignHandler).Methods(http.MethodPost)
	router.HandleFunc(RequestNotes, c.Requests.AddNoteHandler).Methods(http.MethodPost)
	router.HandleFunc(RequestComplete, c.Requests.CompleteHandler).Methods(http.MethodPost)

	// Metrics
	router.HandleFunc(MetricsOverview, c.Metrics.OverviewHandler).Methods(http.MethodGet)
	router.HandleFunc(MetricsRequestsByStatus, c.Metrics.RequestsByStatusHandler).Methods(http.MethodGet)
	router.HandleFunc(MetricsRequestsByPriority, c.Metrics.RequestsByPriorityHandler).Methods(http.MethodGet)
	router.HandleFunc(MetricsRequestsOverTime, c.Metrics.RequestsOverTimeHandler).Methods(http.MethodGet)
	router.HandleFunc(MetricsBuildingPerformance, c.Metrics.BuildingPerformanceHandler).Methods(http.MethodGet)
	router.HandleFunc(MetricsStaffPerformance, c.Metrics.StaffPerformanceHandler).Methods(http.MethodGet)

	return router
}

// NewHandler wraps the router with the middleware that must run before
// route matching.
func NewHandler(c Controllers, prometheusPath string) http.Handler {
	return middleware.StripTrailingSlash(NewRouter(c, prometheusPath))
}
