package services_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/services"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/testhelpers"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

// stepClock advances one minute per call.
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newStepClock() *stepClock {
	return &stepClock{cur: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Minute)
	return c.cur
}

type recordingNotifier struct {
	assigned  []uuid.UUID
	completed []uuid.UUID
}

func (n *recordingNotifier) StaffAssigned(_ context.Context, staff *models.Staff, _ *models.Request, _ string) {
	n.assigned = append(n.assigned, staff.ID)
}

func (n *recordingNotifier) AssignmentCompleted(_ context.Context, tenant *models.Tenant, _ *models.Request) {
	n.completed = append(n.completed, tenant.ID)
}

type env struct {
	h         *testhelpers.TestHelper
	clock     *stepClock
	notifier  *recordingNotifier
	buildings *services.BuildingService
	units     *services.UnitService
	tenants   *services.TenantService
	staff     *services.StaffService
	requests  *services.RequestService
	metrics   *services.MetricsService
}

func newEnv(t *testing.T) *env {
	h := testhelpers.NewMemoryHelper(t)
	clock := newStepClock()
	n := &recordingNotifier{}
	return &env{
		h:         h,
		clock:     clock,
		notifier:  n,
		buildings: services.NewBuildingService(h.Store, clock.Now),
		units:     services.NewUnitService(h.Store, clock.Now),
		tenants:   services.NewTenantService(h.Store, clock.Now),
		staff:     services.NewStaffService(h.Store, clock.Now),
		requests:  services.NewRequestService(h.Store, n, clock.Now),
		metrics:   services.NewMetricsService(h.Store, clock.Now),
	}
}

func requireAppError(t *testing.T, err error, status int) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.StatusCode, appErr.Message)
	return appErr
}

func (e *env) newRequest(t *testing.T, f testhelpers.Fixture, issue models.IssueType, status *models.RequestStatus) *models.Request {
	t.Helper()
	req, err := e.requests.Create(e.h.Ctx, dtos.CreateRequestRequest{
		TenantID:    f.Tenant.ID,
		UnitID:      f.Unit.ID,
		BuildingID:  f.Building.ID,
		IssueType:   issue,
		Priority:    models.PriorityHigh,
		Description: "Leaking pipe under the sink",
		Status:      status,
	})
	require.NoError(t, err)
	return req
}

/* ---------- buildings / units ---------- */

func TestBuildingLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx

	b, err := e.buildings.Create(ctx, dtos.CreateBuildingRequest{Name: "Harbor View", Address: "1 Pier Rd"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBuildingCity, b.City)
	assert.Equal(t, models.DefaultBuildingState, b.State)

	_, err = e.buildings.Update(ctx, b.ID, dtos.UpdateBuildingRequest{})
	requireAppError(t, err, http.StatusBadRequest)

	_, err = e.buildings.Update(ctx, uuid.New(), dtos.UpdateBuildingRequest{})
	requireAppError(t, err, http.StatusNotFound)

	updated, err := e.buildings.Update(ctx, b.ID, dtos.UpdateBuildingRequest{Name: utils.Ptr("Harbor View II")})
	require.NoError(t, err)
	assert.Equal(t, "Harbor View II", updated.Name)
	assert.Equal(t, "1 Pier Rd", updated.Address)
	assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))

	e.h.CreateTestUnit(ctx, b.ID, "1A")
	appErr := requireAppError(t, e.buildings.Delete(ctx, b.ID), http.StatusConflict)
	assert.Equal(t, "Cannot delete building with 1 associated units", appErr.Message)

	requireAppError(t, e.buildings.Delete(ctx, uuid.New()), http.StatusNotFound)
}

func TestUnitUniquenessPerBuilding(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	b1 := e.h.CreateTestBuilding(ctx, "North")
	b2 := e.h.CreateTestBuilding(ctx, "South")

	u, err := e.units.Create(ctx, dtos.CreateUnitRequest{BuildingID: b1.ID, UnitNumber: "101"})
	require.NoError(t, err)

	_, err = e.units.Create(ctx, dtos.CreateUnitRequest{BuildingID: b1.ID, UnitNumber: "101"})
	requireAppError(t, err, http.StatusBadRequest)

	_, err = e.units.Create(ctx, dtos.CreateUnitRequest{BuildingID: b2.ID, UnitNumber: "101"})
	require.NoError(t, err, "same number in another building is fine")

	_, err = e.units.Create(ctx, dtos.CreateUnitRequest{BuildingID: uuid.New(), UnitNumber: "9"})
	requireAppError(t, err, http.StatusBadRequest)

	other, err := e.units.Create(ctx, dtos.CreateUnitRequest{BuildingID: b1.ID, UnitNumber: "102"})
	require.NoError(t, err)
	_, err = e.units.Update(ctx, other.ID, dtos.UpdateUnitRequest{UnitNumber: utils.Ptr("101")})
	requireAppError(t, err, http.StatusBadRequest)

	// resubmitting its own number is not a clash
	same, err := e.units.Update(ctx, u.ID, dtos.UpdateUnitRequest{UnitNumber: utils.Ptr("101"), Floor: utils.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, *same.Floor)

	e.h.CreateTestTenant(ctx, &u.ID, "unit-del")
	appErr := requireAppError(t, e.units.Delete(ctx, u.ID), http.StatusConflict)
	assert.Equal(t, "Cannot delete unit with 1 associated tenants", appErr.Message)
}

/* ---------- tenants / staff ---------- */

func TestTenantEmailUniqueness(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx

	a, err := e.tenants.Create(ctx, dtos.CreateTenantRequest{FullName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.True(t, a.Active)
	assert.Nil(t, a.UnitID)

	_, err = e.tenants.Create(ctx, dtos.CreateTenantRequest{FullName: "Ann 2", Email: "ANN@example.com"})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "Email already registered", appErr.Message)

	_, err = e.tenants.Update(ctx, a.ID, dtos.UpdateTenantRequest{Email: utils.Ptr("ann@example.com")})
	require.NoError(t, err)

	b, err := e.tenants.Create(ctx, dtos.CreateTenantRequest{FullName: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	_, err = e.tenants.Update(ctx, b.ID, dtos.UpdateTenantRequest{Email: utils.Ptr("ann@example.com")})
	requireAppError(t, err, http.StatusBadRequest)

	_, err = e.tenants.Create(ctx, dtos.CreateTenantRequest{FullName: "Cy", Email: "cy@example.com", UnitID: utils.Ptr(uuid.New())})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestTenantDeleteBlockedByRequests(t *testing.T) {
	e := newEnv(t)
	f := e.h.CreateTestFixture(e.h.Ctx, "tdel")
	e.newRequest(t, f, models.IssueTypePlumbing, nil)

	appErr := requireAppError(t, e.tenants.Delete(e.h.Ctx, f.Tenant.ID), http.StatusConflict)
	assert.Equal(t, "Cannot delete tenant with 1 associated requests", appErr.Message)
}

func TestStaffSoftDelete(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx

	s, err := e.staff.Create(ctx, dtos.CreateStaffRequest{FullName: "Max", Email: "max@example.com", Role: "Electrician"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, s.Specialties)

	require.NoError(t, e.staff.Delete(ctx, s.ID))
	got, err := e.staff.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	inactive, err := e.staff.List(ctx, repositories.StaffFilter{Active: utils.Ptr(false)})
	require.NoError(t, err)
	require.Len(t, inactive, 1)

	requireAppError(t, e.staff.Delete(ctx, uuid.New()), http.StatusNotFound)
}

func TestUpdateMissingEntityIsNotFound(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "missing")

	// existence is checked before reference and uniqueness checks
	_, err := e.units.Update(ctx, uuid.New(), dtos.UpdateUnitRequest{BuildingID: utils.Ptr(uuid.New())})
	requireAppError(t, err, http.StatusNotFound)

	_, err = e.tenants.Update(ctx, uuid.New(), dtos.UpdateTenantRequest{Email: utils.Ptr(f.Tenant.Email)})
	requireAppError(t, err, http.StatusNotFound)
	_, err = e.tenants.Update(ctx, uuid.New(), dtos.UpdateTenantRequest{UnitID: utils.Ptr(uuid.New())})
	requireAppError(t, err, http.StatusNotFound)

	_, err = e.staff.Update(ctx, uuid.New(), dtos.UpdateStaffRequest{Email: utils.Ptr(f.Staff.Email)})
	requireAppError(t, err, http.StatusNotFound)
}

/* ---------- requests ---------- */

func TestCreateRequestValidatesReferences(t *testing.T) {
	e := newEnv(t)
	f := e.h.CreateTestFixture(e.h.Ctx, "refs")

	_, err := e.requests.Create(e.h.Ctx, dtos.CreateRequestRequest{
		TenantID:    uuid.New(),
		UnitID:      f.Unit.ID,
		BuildingID:  f.Building.ID,
		IssueType:   models.IssueTypeHVAC,
		Priority:    models.PriorityLow,
		Description: "No heat",
	})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "Tenant not found", appErr.Message)
}

func TestCreateRequestDefaultsAndTimeZone(t *testing.T) {
	e := newEnv(t)
	f := e.h.CreateTestFixture(e.h.Ctx, "tz")

	req, err := e.requests.Create(e.h.Ctx, dtos.CreateRequestRequest{
		TenantID:    f.Tenant.ID,
		UnitID:      f.Unit.ID,
		BuildingID:  f.Building.ID,
		IssueType:   models.IssueTypeHVAC,
		Priority:    models.PriorityMedium,
		Description: "No heat",
		LocationDetails: &dtos.LocationDetailsDTO{
			Latitude:  utils.Ptr(42.3601),
			Longitude: utils.Ptr(-71.0589),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusOpen, req.Status)
	assert.Equal(t, models.DefaultTargetSLAHours, req.TargetSLAHours)
	assert.Nil(t, req.ClosedAt)
	require.NotNil(t, req.LocationDetails)
	assert.Equal(t, "America/New_York", req.LocationDetails.TimeZone)
}

func TestCreateTerminalRequestLeavesClosedAtEmpty(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "term")

	req := e.newRequest(t, f, models.IssueTypeOther, utils.Ptr(models.RequestStatusClosed))
	assert.Equal(t, models.RequestStatusClosed, req.Status)
	assert.Nil(t, req.ClosedAt)

	stored, err := e.requests.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClosedAt)

	// counted as closed, but no resolution time to average
	o, err := e.metrics.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, o.TotalClosedRequests)
	assert.Zero(t, o.AverageResolutionTime)
	assert.Zero(t, o.SLABreachCount)

	completed, err := e.requests.Update(ctx, req.ID, dtos.UpdateRequestRequest{Status: utils.Ptr(models.RequestStatusCompleted)})
	require.NoError(t, err)
	assert.NotNil(t, completed.ClosedAt)
}

func TestCreateRequestRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "trip")

	in := dtos.CreateRequestRequest{
		ExternalID:     utils.Ptr("WO-7731"),
		TenantID:       f.Tenant.ID,
		UnitID:         f.Unit.ID,
		BuildingID:     f.Building.ID,
		IssueType:      models.IssueTypeAppliances,
		Priority:       models.PriorityEmergency,
		Description:    "Dishwasher floods the kitchen",
		Status:         utils.Ptr(models.RequestStatusPending),
		TargetSLAHours: utils.Ptr(24),
		LocationDetails: &dtos.LocationDetailsDTO{
			Neighborhood: utils.Ptr("Back Bay"),
			Latitude:     utils.Ptr(42.3503),
			Longitude:    utils.Ptr(-71.0810),
		},
	}
	created, err := e.requests.Create(ctx, in)
	require.NoError(t, err)

	got, err := e.requests.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in.ExternalID, got.ExternalID)
	assert.Equal(t, in.TenantID, got.TenantID)
	assert.Equal(t, in.UnitID, got.UnitID)
	assert.Equal(t, in.BuildingID, got.BuildingID)
	assert.Equal(t, in.IssueType, got.IssueType)
	assert.Equal(t, in.Priority, got.Priority)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, *in.Status, got.Status)
	assert.Equal(t, *in.TargetSLAHours, got.TargetSLAHours)
	require.NotNil(t, got.LocationDetails)
	assert.Equal(t, in.LocationDetails.Neighborhood, got.LocationDetails.Neighborhood)
	assert.Equal(t, in.LocationDetails.Latitude, got.LocationDetails.Latitude)
	assert.Equal(t, in.LocationDetails.Longitude, got.LocationDetails.Longitude)
	assert.Equal(t, created.LocationDetails.TimeZone, got.LocationDetails.TimeZone)
	assert.Nil(t, got.ResolutionNotes)
	assert.Empty(t, got.Assignments)
	assert.Empty(t, got.Notes)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
	assert.Nil(t, got.ClosedAt)
}

func TestAssignCompleteAndNotes(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "flow")
	req := e.newRequest(t, f, models.IssueTypePlumbing, nil)

	assigned, err := e.requests.Assign(ctx, req.ID, dtos.AssignRequest{StaffID: f.Staff.ID, Notes: utils.Ptr("bring a wrench")})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, assigned.Status)
	require.Len(t, assigned.Assignments, 1)
	assert.Nil(t, assigned.Assignments[0].CompletedAt)
	assert.Equal(t, []uuid.UUID{f.Staff.ID}, e.notifier.assigned)

	_, err = e.requests.Assign(ctx, req.ID, dtos.AssignRequest{StaffID: f.Staff.ID})
	requireAppError(t, err, http.StatusConflict)

	_, err = e.requests.Assign(ctx, req.ID, dtos.AssignRequest{StaffID: uuid.New()})
	requireAppError(t, err, http.StatusNotFound)

	_, err = e.requests.Assign(ctx, uuid.New(), dtos.AssignRequest{StaffID: f.Staff.ID})
	requireAppError(t, err, http.StatusNotFound)

	noted, err := e.requests.AddNote(ctx, req.ID, dtos.AddNoteRequest{
		AuthorType: models.NoteAuthorTenant,
		AuthorID:   f.Tenant.ID.String(),
		AuthorName: f.Tenant.FullName,
		Body:       "Still dripping",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, noted.Status)
	require.Len(t, noted.Notes, 1)

	done, err := e.requests.CompleteAssignment(ctx, req.ID, f.Staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, done.Status)
	assert.Nil(t, done.ClosedAt, "completing an assignment leaves closed_at unset")
	require.NotNil(t, done.Assignments[0].CompletedAt)
	assert.Equal(t, []uuid.UUID{f.Tenant.ID}, e.notifier.completed)

	_, err = e.requests.CompleteAssignment(ctx, req.ID, f.Staff.ID)
	requireAppError(t, err, http.StatusNotFound)

	// persisted view matches, children in append order
	stored, err := e.requests.Get(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, stored.Assignments, 1)
	require.Len(t, stored.Notes, 1)
	assert.Equal(t, "Still dripping", stored.Notes[0].Body)

	again, err := e.requests.Assign(ctx, req.ID, dtos.AssignRequest{StaffID: f.Staff.ID})
	require.NoError(t, err)
	assert.Len(t, again.Assignments, 2)
}

func TestUpdateStatusSetsClosedAtOnce(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "close")
	req := e.newRequest(t, f, models.IssueTypeElectrical, nil)

	_, err := e.requests.Update(ctx, req.ID, dtos.UpdateRequestRequest{})
	requireAppError(t, err, http.StatusBadRequest)

	closed, err := e.requests.Update(ctx, req.ID, dtos.UpdateRequestRequest{Status: utils.Ptr(models.RequestStatusClosed)})
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	first := *closed.ClosedAt

	reopened, err := e.requests.Update(ctx, req.ID, dtos.UpdateRequestRequest{Status: utils.Ptr(models.RequestStatusOpen)})
	require.NoError(t, err)
	assert.Equal(t, first, *reopened.ClosedAt)

	again, err := e.requests.Update(ctx, req.ID, dtos.UpdateRequestRequest{Status: utils.Ptr(models.RequestStatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, first, *again.ClosedAt)
}

func TestDeleteRequestRemovesChildren(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "rdel")
	req := e.newRequest(t, f, models.IssueTypeCleaning, nil)
	_, err := e.requests.Assign(ctx, req.ID, dtos.AssignRequest{StaffID: f.Staff.ID})
	require.NoError(t, err)

	require.NoError(t, e.requests.Delete(ctx, req.ID))
	_, err = e.requests.Get(ctx, req.ID)
	requireAppError(t, err, http.StatusNotFound)
	requireAppError(t, e.requests.Delete(ctx, req.ID), http.StatusNotFound)

	// tenant has no requests left
	require.NoError(t, e.tenants.Delete(ctx, f.Tenant.ID))
}

/* ---------- metrics ---------- */

func TestMetricsOverview(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx

	empty, err := e.metrics.Overview(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.CompletionRate)
	assert.Zero(t, empty.AverageResolutionTime)

	f := e.h.CreateTestFixture(ctx, "metrics")
	t0 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	r1 := e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypePlumbing, models.PriorityHigh, t0)
	r2 := e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypePlumbing, models.PriorityLow, t0)
	e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypeHVAC, models.PriorityLow, t0)

	e.h.CloseTestRequest(ctx, r1.ID, models.RequestStatusClosed, t0.Add(10*time.Hour))
	e.h.CloseTestRequest(ctx, r2.ID, models.RequestStatusCompleted, t0.Add(100*time.Hour))

	o, err := e.metrics.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, o.TotalOpenRequests)
	assert.Equal(t, 2, o.TotalClosedRequests)
	assert.Equal(t, 3, o.TotalRequests)
	assert.Equal(t, 55.0, o.AverageResolutionTime)
	assert.Equal(t, 1, o.SLABreachCount)
	assert.Equal(t, 66.67, o.CompletionRate)
	require.NotEmpty(t, o.TopIssueTypes)
	assert.Equal(t, models.IssueTypePlumbing, o.TopIssueTypes[0].IssueType)
	assert.Equal(t, 2, o.TopIssueTypes[0].Count)
}

func TestRequestsOverTimeRejectsBadWindow(t *testing.T) {
	e := newEnv(t)
	_, err := e.metrics.RequestsOverTime(e.h.Ctx, 0)
	requireAppError(t, err, http.StatusBadRequest)

	f := e.h.CreateTestFixture(e.h.Ctx, "window")
	e.newRequest(t, f, models.IssueTypeSecurity, nil)
	out, err := e.metrics.RequestsOverTime(e.h.Ctx, services.DefaultWindowDays)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Count)
}

func TestStaffPerformance(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "perf")
	r1 := e.newRequest(t, f, models.IssueTypePlumbing, nil)
	r2 := e.newRequest(t, f, models.IssueTypePlumbing, nil)

	_, err := e.requests.Assign(ctx, r1.ID, dtos.AssignRequest{StaffID: f.Staff.ID})
	require.NoError(t, err)
	_, err = e.requests.Assign(ctx, r2.ID, dtos.AssignRequest{StaffID: f.Staff.ID})
	require.NoError(t, err)
	_, err = e.requests.CompleteAssignment(ctx, r1.ID, f.Staff.ID)
	require.NoError(t, err)

	perf, err := e.metrics.StaffPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, f.Staff.FullName, perf[0].StaffName)
	assert.Equal(t, 2, perf[0].TotalAssignments)
	assert.Equal(t, 1, perf[0].CompletedAssignments)
	assert.Equal(t, 1, perf[0].ActiveAssignments)

	bp, err := e.metrics.BuildingPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, bp, 1)
	assert.Equal(t, 2, bp[0].TotalRequests)
	assert.Equal(t, 1, bp[0].OpenRequests)
	assert.Equal(t, 1, bp[0].ClosedRequests)
}

func TestRequestsByStatusAndPriority(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "groups")
	t0 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypePlumbing, models.PriorityHigh, t0)
	e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypePlumbing, models.PriorityHigh, t0)
	r3 := e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypeHVAC, models.PriorityLow, t0)
	e.h.CloseTestRequest(ctx, r3.ID, models.RequestStatusClosed, t0.Add(time.Hour))

	byStatus, err := e.metrics.RequestsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StatusCount{
		{Status: models.RequestStatusOpen, Count: 2},
		{Status: models.RequestStatusClosed, Count: 1},
	}, byStatus)

	byPriority, err := e.metrics.RequestsByPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PriorityCount{
		{Priority: models.PriorityHigh, Count: 2},
		{Priority: models.PriorityLow, Count: 1},
	}, byPriority)
}

func TestStaffPerformanceUnknownStaff(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "ghost")
	req := e.newRequest(t, f, models.IssueTypeSecurity, nil)

	ghost := uuid.New()
	require.NoError(t, e.h.Store.Assignments.Create(ctx, &models.Assignment{
		ID:         uuid.New(),
		RequestID:  req.ID,
		Seq:        1,
		StaffID:    ghost,
		AssignedAt: e.clock.Now(),
	}))

	perf, err := e.metrics.StaffPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, ghost, perf[0].StaffID)
	assert.Equal(t, models.UnknownStaffLabel, perf[0].StaffName)
	assert.Equal(t, models.UnknownStaffLabel, perf[0].StaffRole)
	assert.Equal(t, 1, perf[0].TotalAssignments)
	assert.Equal(t, 1, perf[0].ActiveAssignments)
}

func TestBuildingPerformancePendingCountsTowardTotalOnly(t *testing.T) {
	e := newEnv(t)
	ctx := e.h.Ctx
	f := e.h.CreateTestFixture(ctx, "pending")
	t0 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	r := e.h.CreateTestRequest(ctx, f.Tenant, f.Unit, models.IssueTypePestControl, models.PriorityMedium, t0)
	e.h.CloseTestRequest(ctx, r.ID, models.RequestStatusPending, t0.Add(time.Hour))

	bp, err := e.metrics.BuildingPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, bp, 1)
	assert.Equal(t, f.Building.ID, bp[0].BuildingID)
	assert.Equal(t, 1, bp[0].TotalRequests)
	assert.Zero(t, bp[0].OpenRequests)
	assert.Zero(t, bp[0].ClosedRequests)
}
