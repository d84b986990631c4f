package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/rs/cors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/controllers"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/middleware"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/routes"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const shutdownTimeout = 10 * time.Second

// Services wires every service against the app's store.
func (a *App) Services() routes.Services {
	cfg := a.Config
	notifier := services.NewNotificationService(services.NotificationConfig{
		OrgName:         cfg.OrganizationName,
		FromEmail:       cfg.SendGridFromEmail,
		FromPhone:       cfg.TwilioFromPhone,
		SendGridAPIKey:  cfg.SendGridAPIKey,
		TwilioSID:       cfg.TwilioAccountSID,
		TwilioToken:     cfg.TwilioAuthToken,
		SendGridSandbox: cfg.LDFlag_SendgridSandboxMode,
	})
	clock := services.SystemClock

	return routes.Services{
		Buildings: services.NewBuildingService(a.Store, clock),
		Units:     services.NewUnitService(a.Store, clock),
		Tenants:   services.NewTenantService(a.Store, clock),
		Staff:     services.NewStaffService(a.Store, clock),
		Requests:  services.NewRequestService(a.Store, notifier, clock),
		Metrics:   services.NewMetricsService(a.Store, clock),
	}
}

// Handler builds the full middleware chain around the router.
func (a *App) Handler() (http.Handler, error) {
	cfg := a.Config
	ctrls := routes.NewControllers(a.Services(), controllers.NewHealthController(a.Store.Ping))
	var handler http.Handler = routes.NewHandler(ctrls, cfg.PrometheusPath)

	limit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	handler = limit(handler)

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins,
			utils.CORSLowSecurityAllowedOriginVite,
			utils.CORSLowSecurityAllowedOriginReact,
		)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	return gziphandler.GzipHandler(co.Handler(handler)), nil
}

// Serve runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Starting %s on %s", a.Config.AppName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
