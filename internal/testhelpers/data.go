package testhelpers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

// UniquePhone generates a unique phone number for testing.
func UniquePhone() string {
	return fmt.Sprintf("+1555%07d", rand.New(rand.NewSource(time.Now().UnixNano())).Int31n(1e7))
}

// UniqueEmail generates a unique email for testing.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// CreateTestBuilding creates and persists a new building.
func (h *TestHelper) CreateTestBuilding(ctx context.Context, name string) *models.Building {
	ts := now()
	b := &models.Building{
		ID:           uuid.New(),
		Name:         name,
		Address:      fmt.Sprintf("%s Address", name),
		Neighborhood: utils.Ptr("Back Bay"),
		City:         models.DefaultBuildingCity,
		State:        models.DefaultBuildingState,
		ZipCode:      utils.Ptr("02116"),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	require.NoError(h.T, h.Store.Buildings.Create(ctx, b), "Failed to create test building")
	return b
}

// CreateTestUnit creates and persists a new unit.
func (h *TestHelper) CreateTestUnit(ctx context.Context, buildingID uuid.UUID, unitNum string) *models.Unit {
	ts := now()
	u := &models.Unit{
		ID:         uuid.New(),
		BuildingID: buildingID,
		UnitNumber: unitNum,
		Floor:      utils.Ptr(1),
		Bedrooms:   utils.Ptr(2),
		Bathrooms:  utils.Ptr(1),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	require.NoError(h.T, h.Store.Units.Create(ctx, u), "Failed to create test unit")
	return u
}

func (h *TestHelper) CreateTestTenant(ctx context.Context, unitID *uuid.UUID, emailPrefix string) *models.Tenant {
	ts := now()
	t := &models.Tenant{
		ID:       uuid.New(),
		UnitID:   unitID,
		FullName: "Tess Tenant",
		Email:    UniqueEmail(emailPrefix),
		Phone:    utils.Ptr(UniquePhone()),
		EmergencyContact: &models.EmergencyContact{
			Name:         "Pat Contact",
			Phone:        UniquePhone(),
			Relationship: "Sibling",
		},
		Active:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	require.NoError(h.T, h.Store.Tenants.Create(ctx, t), "Failed to create test tenant")
	return t
}

func (h *TestHelper) CreateTestStaff(ctx context.Context, emailPrefix, role string) *models.Staff {
	ts := now()
	s := &models.Staff{
		ID:          uuid.New(),
		FullName:    "Sam " + role,
		Email:       UniqueEmail(emailPrefix),
		Phone:       utils.Ptr(UniquePhone()),
		Role:        role,
		Specialties: []string{"Plumbing"},
		Active:      true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	require.NoError(h.T, h.Store.Staff.Create(ctx, s), "Failed to create test staff")
	return s
}

// CreateTestRequest persists an OPEN request for the tenant. created shifts
// created_at so tests can control ordering and resolution times.
func (h *TestHelper) CreateTestRequest(ctx context.Context, tenant *models.Tenant, unit *models.Unit, issue models.IssueType, priority models.Priority, created time.Time) *models.Request {
	r := &models.Request{
		ID:             uuid.New(),
		TenantID:       tenant.ID,
		UnitID:         unit.ID,
		BuildingID:     unit.BuildingID,
		IssueType:      issue,
		Priority:       priority,
		Description:    fmt.Sprintf("%s issue in unit %s", issue, unit.UnitNumber),
		Status:         models.RequestStatusOpen,
		TargetSLAHours: models.DefaultTargetSLAHours,
		Assignments:    []models.Assignment{},
		Notes:          []models.Note{},
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(h.T, h.Store.Requests.Create(ctx, r), "Failed to create test request")
	return r
}

// CloseTestRequest moves a request to status at closedAt through the
// versioned update path.
func (h *TestHelper) CloseTestRequest(ctx context.Context, id uuid.UUID, status models.RequestStatus, closedAt time.Time) {
	err := h.Store.Requests.UpdateWithRetry(ctx, id, func(r *models.Request) error {
		r.SetStatus(status, closedAt)
		r.UpdatedAt = closedAt
		return nil
	})
	require.NoError(h.T, err, "Failed to close test request")
}

// Fixture is one building with a unit, a tenant living there and a staff
// member.
type Fixture struct {
	Building *models.Building
	Unit     *models.Unit
	Tenant   *models.Tenant
	Staff    *models.Staff
}

func (h *TestHelper) CreateTestFixture(ctx context.Context, prefix string) Fixture {
	b := h.CreateTestBuilding(ctx, prefix+" Towers")
	u := h.CreateTestUnit(ctx, b.ID, "101")
	return Fixture{
		Building: b,
		Unit:     u,
		Tenant:   h.CreateTestTenant(ctx, &u.ID, prefix+"-tenant"),
		Staff:    h.CreateTestStaff(ctx, prefix+"-staff", "Technician"),
	}
}
