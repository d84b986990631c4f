package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/config"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

func newMemoryApp(t *testing.T, vars map[string]string) *App {
	t.Helper()
	vars["DB_DRIVER"] = config.DriverMemory
	cfg, err := config.Parse(env.Options{Environment: vars})
	require.NoError(t, err)
	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestSeedTestData(t *testing.T) {
	ctx := context.Background()
	a := newMemoryApp(t, map[string]string{})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, SeedTestData(ctx, a.Store, now))

	buildings, err := a.Store.Buildings.List(ctx, repositories.ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, buildings, seedBuildings)

	units, err := a.Store.Units.List(ctx, repositories.UnitFilter{ListOptions: repositories.ListOptions{Limit: 1000}})
	require.NoError(t, err)
	assert.Len(t, units, seedBuildings*seedUnitsPerBuilding)

	tenants, err := a.Store.Tenants.List(ctx, repositories.TenantFilter{ListOptions: repositories.ListOptions{Limit: 1000}})
	require.NoError(t, err)
	assert.Len(t, tenants, seedTenants)

	counts, err := a.Store.Metrics.StatusCounts(ctx)
	require.NoError(t, err)
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, seedRequests, total)

	reqs, err := a.Store.Requests.List(ctx, repositories.RequestFilter{ListOptions: repositories.ListOptions{Limit: 1000}})
	require.NoError(t, err)
	for _, r := range reqs {
		if r.Status.IsTerminal() {
			require.NotNil(t, r.ClosedAt, "request %s", r.ID)
			assert.False(t, r.ClosedAt.Before(r.CreatedAt))
		} else {
			assert.Nil(t, r.ClosedAt)
		}
		if r.Status == models.RequestStatusInProgress {
			require.Len(t, r.Assignments, 1)
			assert.True(t, r.Assignments[0].IsActive())
		}
	}

	// second run is a no-op
	require.NoError(t, SeedTestData(ctx, a.Store, now))
	buildings, err = a.Store.Buildings.List(ctx, repositories.ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, buildings, seedBuildings)
}

func TestHandlerGzipAndCORS(t *testing.T) {
	a := newMemoryApp(t, map[string]string{})
	require.NoError(t, SeedTestData(context.Background(), a.Store, time.Now().UTC()))
	handler, err := a.Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/units?limit=50", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	req = httptest.NewRequest(http.MethodOptions, "/buildings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandlerCORSHighSecurity(t *testing.T) {
	a := newMemoryApp(t, map[string]string{"CORS_HIGH_SECURITY": "true", "APP_URL": "https://maintenance.example.com"})
	handler, err := a.Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/buildings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandlerRateLimit(t *testing.T) {
	a := newMemoryApp(t, map[string]string{"RATE_LIMIT": "2-M"})
	handler, err := a.Handler()
	require.NoError(t, err)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestMigrateFailsWithoutDatabase(t *testing.T) {
	err := Migrate(context.Background(), "postgres://invalid host", "sideways")
	assert.Error(t, err)
}
