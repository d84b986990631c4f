package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/controllers"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/routes"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/testhelpers"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

func newTestHandler(t *testing.T) (*testhelpers.TestHelper, http.Handler) {
	h := testhelpers.NewMemoryHelper(t)
	clock := services.SystemClock
	svcs := routes.Services{
		Buildings: services.NewBuildingService(h.Store, clock),
		Units:     services.NewUnitService(h.Store, clock),
		Tenants:   services.NewTenantService(h.Store, clock),
		Staff:     services.NewStaffService(h.Store, clock),
		Requests:  services.NewRequestService(h.Store, nil, clock),
		Metrics:   services.NewMetricsService(h.Store, clock),
	}
	c := routes.NewControllers(svcs, controllers.NewHealthController(h.Store.Ping))
	return h, routes.NewHandler(c, "")
}

func TestRootAndHealth(t *testing.T) {
	h, handler := newTestHandler(t)

	rec := h.DoJSON(handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var root dtos.RootResponse
	h.DecodeBody(rec, &root)
	assert.Equal(t, utils.AppVersion, root.Version)

	rec = h.DoJSON(handler, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health dtos.HealthCheckResponse
	h.DecodeBody(rec, &health)
	assert.Equal(t, "healthy", health.Status)

	rec = h.DoJSON(handler, http.MethodGet, "/debug/prometheus", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildingEndpoints(t *testing.T) {
	h, handler := newTestHandler(t)

	rec := h.DoJSON(handler, http.MethodPost, "/buildings", map[string]any{"name": "Elm Court", "address": "12 Elm St"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var b models.Building
	h.DecodeBody(rec, &b)
	assert.Equal(t, "Boston", b.City)

	rec = h.DoJSON(handler, http.MethodGet, "/buildings/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Building
	h.DecodeBody(rec, &list)
	require.Len(t, list, 1)

	rec = h.DoJSON(handler, http.MethodPut, "/buildings/"+b.ID.String(), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.DoJSON(handler, http.MethodGet, "/buildings/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.DoJSON(handler, http.MethodPost, "/buildings", []byte("{broken"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody utils.ErrorResponse
	h.DecodeBody(rec, &errBody)
	assert.Equal(t, utils.ErrCodeInvalidPayload, errBody.Code)

	rec = h.DoJSON(handler, http.MethodDelete, "/buildings/"+b.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = h.DoJSON(handler, http.MethodGet, "/buildings/"+b.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationDetails(t *testing.T) {
	h, handler := newTestHandler(t)

	rec := h.DoJSON(handler, http.MethodPost, "/staff", map[string]any{"full_name": "No Email", "role": "Tech", "email": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string                       `json:"code"`
		Details []dtos.ValidationErrorDetail `json:"details"`
	}
	h.DecodeBody(rec, &body)
	assert.Equal(t, utils.ErrCodeValidation, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "email", body.Details[0].Field)
}

func TestListQueryValidation(t *testing.T) {
	h, handler := newTestHandler(t)

	for _, target := range []string{
		"/buildings?skip=-1",
		"/buildings?limit=0",
		"/buildings?limit=1001",
		"/buildings?limit=ten",
		"/units?building_id=xyz",
		"/staff?active=maybe",
		"/requests?status=DONE",
		"/requests?priority=Urgent",
		"/requests?issue_type=Roofing",
		"/requests?tenant_id=123",
		"/metrics/requests-over-time?days=0",
		"/metrics/requests-over-time?days=abc",
	} {
		rec := h.DoJSON(handler, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec := h.DoJSON(handler, http.MethodGet, "/requests?issue_type="+url.QueryEscape("Pest Control")+"&limit=1000", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLifecycleEndpoints(t *testing.T) {
	h, handler := newTestHandler(t)
	f := h.CreateTestFixture(h.Ctx, "http")

	rec := h.DoJSON(handler, http.MethodPost, "/requests", map[string]any{
		"tenant_id":   f.Tenant.ID,
		"unit_id":     f.Unit.ID,
		"building_id": f.Building.ID,
		"issue_type":  "Pest Control",
		"priority":    "Emergency",
		"description": "Mice in the kitchen",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var req models.Request
	h.DecodeBody(rec, &req)
	assert.Equal(t, models.RequestStatusOpen, req.Status)
	assert.NotNil(t, req.Assignments)

	rec = h.DoJSON(handler, http.MethodPost, "/requests", map[string]any{
		"tenant_id":   f.Tenant.ID,
		"unit_id":     f.Unit.ID,
		"building_id": f.Building.ID,
		"issue_type":  "Roofing",
		"priority":    "Low",
		"description": "Leak",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	base := "/requests/" + req.ID.String()

	rec = h.DoJSON(handler, http.MethodPost, base+"/assign", map[string]any{"staff_id": f.Staff.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = h.DoJSON(handler, http.MethodPost, base+"/assign", map[string]any{"staff_id": f.Staff.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.DoJSON(handler, http.MethodPost, base+"/notes", map[string]any{
		"author_type": "staff",
		"author_id":   f.Staff.ID.String(),
		"author_name": f.Staff.FullName,
		"body":        "Traps placed",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.DoJSON(handler, http.MethodPost, base+"/notes", map[string]any{
		"author_type": "landlord", "author_id": "x", "author_name": "y", "body": "z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.DoJSON(handler, http.MethodPost, base+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "staff_id is required")

	rec = h.DoJSON(handler, http.MethodPost, fmt.Sprintf("%s/complete?staff_id=%s", base, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.DoJSON(handler, http.MethodPost, fmt.Sprintf("%s/complete?staff_id=%s", base, f.Staff.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h.DecodeBody(rec, &req)
	assert.Equal(t, models.RequestStatusCompleted, req.Status)
	assert.Nil(t, req.ClosedAt)
	require.Len(t, req.Notes, 1)

	rec = h.DoJSON(handler, http.MethodPost, base+"/assign", map[string]any{"staff_id": f.Staff.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.DoJSON(handler, http.MethodPost, base+"/complete", map[string]any{"staff_id": f.Staff.ID})
	assert.Equal(t, http.StatusOK, rec.Code, "staff_id accepted in the body")

	rec = h.DoJSON(handler, http.MethodPut, base, map[string]any{"status": "CLOSED"})
	require.Equal(t, http.StatusOK, rec.Code)
	h.DecodeBody(rec, &req)
	assert.NotNil(t, req.ClosedAt)

	rec = h.DoJSON(handler, http.MethodGet, "/metrics/overview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var overview dtos.MetricsOverviewResponse
	h.DecodeBody(rec, &overview)
	assert.Equal(t, 1, overview.TotalClosedRequests)
	assert.Equal(t, 100.0, overview.CompletionRate)

	for _, path := range []string{
		"/metrics/requests-by-status",
		"/metrics/requests-by-priority",
		"/metrics/requests-over-time",
		"/metrics/building-performance",
		"/metrics/staff-performance",
	} {
		rec = h.DoJSON(handler, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = h.DoJSON(handler, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestListFiltersAndOrder(t *testing.T) {
	h, handler := newTestHandler(t)
	f := h.CreateTestFixture(h.Ctx, "list")
	t0 := f.Tenant.CreatedAt

	older := h.CreateTestRequest(h.Ctx, f.Tenant, f.Unit, models.IssueTypeHVAC, models.PriorityLow, t0)
	newer := h.CreateTestRequest(h.Ctx, f.Tenant, f.Unit, models.IssueTypePlumbing, models.PriorityHigh, t0.Add(1))

	rec := h.DoJSON(handler, http.MethodGet, "/requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Request
	h.DecodeBody(rec, &list)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	rec = h.DoJSON(handler, http.MethodGet, "/requests?priority=Low&building_id="+f.Building.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	h.DecodeBody(rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, older.ID, list[0].ID)

	rec = h.DoJSON(handler, http.MethodGet, "/requests?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	h.DecodeBody(rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, older.ID, list[0].ID)
}
