//go:build integration

package integration

import (
	"net/http"
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

func TestPostgresTenantRoundTrip(t *testing.T) {
	h := testhelpers.NewTestHelper(t, store)
	f := h.CreateTestFixture(h.Ctx, "pg-roundtrip")

	got, err := store.Tenants.GetByID(h.Ctx, f.Tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.Tenant.Email, got.Email)
	require.NotNil(t, got.EmergencyContact)
	assert.Equal(t, f.Tenant.EmergencyContact.Name, got.EmergencyContact.Name)
	assert.Equal(t, int64(1), got.RowVersion)

	staff, err := store.Staff.GetByID(h.Ctx, f.Staff.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbing"}, staff.Specialties)
}

func TestPostgresUniqueViolations(t *testing.T) {
	h := testhelpers.NewTestHelper(t, store)
	clock := services.SystemClock
	f := h.CreateTestFixture(h.Ctx, "pg-unique")

	units := services.NewUnitService(store, clock)
	_, err := units.Create(h.Ctx, dtos.CreateUnitRequest{BuildingID: f.Building.ID, UnitNumber: "101"})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)

	err = store.Tenants.Create(h.Ctx, &models.Tenant{
		ID:        uuid.New(),
		FullName:  "Dup",
		Email:     f.Tenant.Email,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	assert.True(t, repositories.IsUniqueViolation(err), "got %v", err)
}

func TestPostgresRowVersionConflict(t *testing.T) {
	h := testhelpers.NewTestHelper(t, store)
	f := h.CreateTestFixture(h.Ctx, "pg-version")
	r := h.CreateTestRequest(h.Ctx, f.Tenant, f.Unit, models.IssueTypeHVAC, models.PriorityLow, time.Now().UTC())

	stale := *r
	r.Description = "first writer"
	tag, err := store.Requests.UpdateIfVersion(h.Ctx, r, r.RowVersion)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())

	stale.Description = "second writer"
	tag, err = store.Requests.UpdateIfVersion(h.Ctx, &stale, stale.RowVersion)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tag.RowsAffected())

	got, err := store.Requests.GetByID(h.Ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", got.Description)
	assert.Equal(t, int64(2), got.RowVersion)
}

func TestPostgresRequestLifecycle(t *testing.T) {
	h := testhelpers.NewTestHelper(t, store)
	f := h.CreateTestFixture(h.Ctx, "pg-lifecycle")
	svc := services.NewRequestService(store, nil, services.SystemClock)

	req, err := svc.Create(h.Ctx, dtos.CreateRequestRequest{
		TenantID:    f.Tenant.ID,
		UnitID:      f.Unit.ID,
		BuildingID:  f.Building.ID,
		IssueType:   models.IssueTypePlumbing,
		Priority:    models.PriorityEmergency,
		Description: "Burst pipe",
	})
	require.NoError(t, err)

	req, err = svc.Assign(h.Ctx, req.ID, dtos.AssignRequest{StaffID: f.Staff.ID, Notes: utils.Ptr("bring wrench")})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, req.Status)

	_, err = svc.Assign(h.Ctx, req.ID, dtos.AssignRequest{StaffID: f.Staff.ID})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, err.(*utils.AppError).StatusCode)

	req, err = svc.AddNote(h.Ctx, req.ID, dtos.AddNoteRequest{
		AuthorType: models.NoteAuthorStaff,
		AuthorID:   f.Staff.ID.String(),
		AuthorName: f.Staff.FullName,
		Body:       "Water shut off",
	})
	require.NoError(t, err)
	require.Len(t, req.Notes, 1)

	req, err = svc.CompleteAssignment(h.Ctx, req.ID, f.Staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, req.Status)
	require.Len(t, req.Assignments, 1)
	assert.NotNil(t, req.Assignments[0].CompletedAt)
	assert.Nil(t, req.ClosedAt)

	closed := models.RequestStatusClosed
	req, err = svc.Update(h.Ctx, req.ID, dtos.UpdateRequestRequest{Status: &closed})
	require.NoError(t, err)
	require.NotNil(t, req.ClosedAt)

	require.NoError(t, svc.Delete(h.Ctx, req.ID))
	got, err := store.Assignments.ListByRequestIDs(h.Ctx, []uuid.UUID{req.ID})
	require.NoError(t, err)
	assert.Empty(t, got[req.ID])
}

func TestPostgresMetricsQueries(t *testing.T) {
	h := testhelpers.NewTestHelper(t, store)
	svc := services.NewMetricsService(store, services.SystemClock)

	_, err := svc.Overview(h.Ctx)
	require.NoError(t, err)
	_, err = svc.RequestsByStatus(h.Ctx)
	require.NoError(t, err)
	_, err = svc.RequestsByPriority(h.Ctx)
	require.NoError(t, err)
	_, err = svc.RequestsOverTime(h.Ctx, 7)
	require.NoError(t, err)
	_, err = svc.BuildingPerformance(h.Ctx)
	require.NoError(t, err)
	_, err = svc.StaffPerformance(h.Ctx)
	require.NoError(t, err)
}
