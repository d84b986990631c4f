package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const (
	seedBuildings        = 5
	seedUnitsPerBuilding = 40
	seedTenants          = 100
	seedRequests         = 200
	seedRandSource       = 42
)

// SentinelBuildingID marks a database that has already been seeded.
var SentinelBuildingID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

type seedBuilding struct {
	name, address, neighborhood, zip string
	lat, lng                         float64
}

var seedBuildingData = []seedBuilding{
	{"Beacon Court", "120 Beacon St", "Back Bay", "02116", 42.3555, -71.0738},
	{"Harbor View", "45 Atlantic Ave", "North End", "02110", 42.3626, -71.0513},
	{"Fenway Lofts", "88 Brookline Ave", "Fenway", "02215", 42.3467, -71.0972},
	{"South End Commons", "600 Tremont St", "South End", "02118", 42.3431, -71.0719},
	{"Charles Landing", "15 Cambridge St", "Beacon Hill", "02114", 42.3601, -71.0652},
}

var seedStaff = []struct {
	name, role  string
	specialties []string
}{
	{"Maria Santos", "Plumber", []string{"Plumbing"}},
	{"Derek Chan", "Electrician", []string{"Electrical"}},
	{"Alicia Brooks", "HVAC Technician", []string{"HVAC", "Appliances"}},
	{"Tom Riley", "General Maintenance", []string{"Structural", "Other", "Cleaning"}},
	{"Nadia Karim", "Building Supervisor", []string{"Security", "Pest Control"}},
}

var seedFirstNames = []string{"Alex", "Jordan", "Sam", "Taylor", "Casey", "Morgan", "Riley", "Jamie", "Avery", "Quinn"}
var seedLastNames = []string{"Nguyen", "Patel", "Garcia", "Kim", "Smith", "Johnson", "Lee", "Brown", "Davis", "Lopez"}

var seedDescriptions = map[models.IssueType][]string{
	models.IssueTypePlumbing:    {"Kitchen sink is leaking under the cabinet", "Toilet runs constantly", "Low water pressure in shower"},
	models.IssueTypeElectrical:  {"Outlet in bedroom stopped working", "Hallway light flickers"},
	models.IssueTypeHVAC:        {"Heat is not turning on", "AC blowing warm air"},
	models.IssueTypeAppliances:  {"Dishwasher will not drain", "Fridge is not cooling"},
	models.IssueTypeCleaning:    {"Common area carpet needs cleaning"},
	models.IssueTypePestControl: {"Mice seen in the kitchen", "Ants near the back door"},
	models.IssueTypeSecurity:    {"Front door lock is sticking", "Lobby intercom broken"},
	models.IssueTypeStructural:  {"Crack in the bathroom ceiling", "Window will not close"},
	models.IssueTypeOther:       {"Mailbox key is missing"},
}

// SeedTestData fills an empty store with a deterministic demo dataset.
// A store that already holds the sentinel building is left untouched.
func SeedTestData(ctx context.Context, store *repositories.Store, now time.Time) error {
	existing, err := store.Buildings.GetByID(ctx, SentinelBuildingID)
	if err != nil {
		return fmt.Errorf("check existing seed building: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("seed data already present; skipping seeding")
		return nil
	}

	rng := rand.New(rand.NewSource(seedRandSource))
	return store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		units, err := seedBuildingsAndUnits(ctx, store, rng, now)
		if err != nil {
			return err
		}
		tenants, err := seedTenantRows(ctx, store, rng, units, now)
		if err != nil {
			return err
		}
		staff, err := seedStaffRows(ctx, store, now)
		if err != nil {
			return err
		}
		if err := seedRequestRows(ctx, store, rng, tenants, staff, now); err != nil {
			return err
		}
		utils.Logger.Infof("Seeded %d buildings, %d units, %d tenants, %d staff, %d requests",
			seedBuildings, len(units), len(tenants), len(staff), seedRequests)
		return nil
	})
}

type seededUnit struct {
	unit     *models.Unit
	building *models.Building
	lat, lng float64
}

type seededTenant struct {
	tenant *models.Tenant
	home   seededUnit
}

func seedBuildingsAndUnits(ctx context.Context, store *repositories.Store, rng *rand.Rand, now time.Time) ([]seededUnit, error) {
	var units []seededUnit
	for i := 0; i < seedBuildings; i++ {
		d := seedBuildingData[i%len(seedBuildingData)]
		id := uuid.New()
		if i == 0 {
			id = SentinelBuildingID
		}
		b := &models.Building{
			ID:           id,
			Name:         d.name,
			Address:      d.address,
			Neighborhood: utils.Ptr(d.neighborhood),
			City:         models.DefaultBuildingCity,
			State:        models.DefaultBuildingState,
			ZipCode:      utils.Ptr(d.zip),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.Buildings.Create(ctx, b); err != nil {
			return nil, fmt.Errorf("seed building %s: %w", b.Name, err)
		}

		for n := 0; n < seedUnitsPerBuilding; n++ {
			floor := n/8 + 1
			u := &models.Unit{
				ID:         uuid.New(),
				BuildingID: b.ID,
				UnitNumber: fmt.Sprintf("%d%02d", floor, n%8+1),
				Floor:      utils.Ptr(floor),
				Bedrooms:   utils.Ptr(rng.Intn(4)),
				Bathrooms:  utils.Ptr(1 + rng.Intn(2)),
				SquareFeet: utils.Ptr(450 + rng.Intn(1100)),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := store.Units.Create(ctx, u); err != nil {
				return nil, fmt.Errorf("seed unit %s/%s: %w", b.Name, u.UnitNumber, err)
			}
			units = append(units, seededUnit{unit: u, building: b, lat: d.lat, lng: d.lng})
		}
	}
	return units, nil
}

func seedTenantRows(ctx context.Context, store *repositories.Store, rng *rand.Rand, units []seededUnit, now time.Time) ([]seededTenant, error) {
	perm := rng.Perm(len(units))
	tenants := make([]seededTenant, 0, seedTenants)
	for i := 0; i < seedTenants && i < len(perm); i++ {
		home := units[perm[i]]
		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]
		moveIn := now.AddDate(0, -rng.Intn(36)-1, 0).Truncate(24 * time.Hour)
		leaseEnd := moveIn.AddDate(1, 0, 0)
		for leaseEnd.Before(now) {
			leaseEnd = leaseEnd.AddDate(1, 0, 0)
		}
		t := &models.Tenant{
			ID:             uuid.New(),
			UnitID:         utils.Ptr(home.unit.ID),
			FullName:       first + " " + last,
			Email:          fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Phone:          utils.Ptr(fmt.Sprintf("+1617555%04d", i+1)),
			MoveInDate:     utils.Ptr(moveIn),
			LeaseStartDate: utils.Ptr(moveIn),
			LeaseEndDate:   utils.Ptr(leaseEnd),
			EmergencyContact: &models.EmergencyContact{
				Name:         "Contact for " + first,
				Phone:        fmt.Sprintf("+1857555%04d", i+1),
				Relationship: "Family",
			},
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.Tenants.Create(ctx, t); err != nil {
			return nil, fmt.Errorf("seed tenant %s: %w", t.Email, err)
		}
		tenants = append(tenants, seededTenant{tenant: t, home: home})
	}
	return tenants, nil
}

func seedStaffRows(ctx context.Context, store *repositories.Store, now time.Time) ([]*models.Staff, error) {
	out := make([]*models.Staff, 0, len(seedStaff))
	for i, d := range seedStaff {
		s := &models.Staff{
			ID:          uuid.New(),
			FullName:    d.name,
			Email:       fmt.Sprintf("staff%d@example.com", i+1),
			Phone:       utils.Ptr(fmt.Sprintf("+1617444%04d", i+1)),
			Role:        d.role,
			Specialties: d.specialties,
			HireDate:    utils.Ptr(now.AddDate(-i-1, 0, 0).Truncate(24 * time.Hour)),
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.Staff.Create(ctx, s); err != nil {
			return nil, fmt.Errorf("seed staff %s: %w", s.Email, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func seedRequestRows(
	ctx context.Context,
	store *repositories.Store,
	rng *rand.Rand,
	tenants []seededTenant,
	staff []*models.Staff,
	now time.Time,
) error {
	if len(tenants) == 0 || len(staff) == 0 {
		return nil
	}
	for i := 0; i < seedRequests; i++ {
		t := tenants[rng.Intn(len(tenants))]
		issue := models.AllIssueTypes[rng.Intn(len(models.AllIssueTypes))]
		descs := seedDescriptions[issue]
		created := now.Add(-time.Duration(rng.Intn(90*24)+1) * time.Hour)

		req := &models.Request{
			ID:             uuid.New(),
			ExternalID:     utils.Ptr(fmt.Sprintf("SEED-%04d", i+1)),
			TenantID:       t.tenant.ID,
			UnitID:         t.home.unit.ID,
			BuildingID:     t.home.building.ID,
			IssueType:      issue,
			Priority:       models.AllPriorities[rng.Intn(len(models.AllPriorities))],
			Description:    descs[rng.Intn(len(descs))],
			Status:         models.RequestStatusOpen,
			TargetSLAHours: models.DefaultTargetSLAHours,
			LocationDetails: &models.LocationDetails{
				Neighborhood: t.home.building.Neighborhood,
				Latitude:     utils.Ptr(t.home.lat),
				Longitude:    utils.Ptr(t.home.lng),
				TimeZone:     "America/New_York",
			},
			CreatedAt: created,
			UpdatedAt: created,
		}

		var (
			assignment *models.Assignment
			note       *models.Note
		)
		switch roll := rng.Intn(10); {
		case roll < 3:
			// open, untouched
		case roll < 5:
			tech := staff[rng.Intn(len(staff))]
			a, err := req.Assign(tech.ID, nil, created.Add(time.Hour))
			if err != nil {
				return err
			}
			assignment = a
		default:
			tech := staff[rng.Intn(len(staff))]
			a, err := req.Assign(tech.ID, nil, created.Add(time.Hour))
			if err != nil {
				return err
			}
			done := created.Add(time.Duration(2+rng.Intn(120)) * time.Hour)
			if done.After(now) {
				done = now
			}
			if _, err := req.CompleteAssignment(tech.ID, done); err != nil {
				return err
			}
			status := models.RequestStatusCompleted
			if roll == 9 {
				status = models.RequestStatusClosed
			}
			req.SetStatus(status, done)
			req.ResolutionNotes = utils.Ptr("Resolved during seeded visit")
			note = req.AddNote(models.NoteAuthorStaff, tech.ID.String(), tech.FullName, "Work finished, tenant notified", done)
			assignment = a
		}

		if err := store.Requests.Create(ctx, req); err != nil {
			return fmt.Errorf("seed request %d: %w", i+1, err)
		}
		if assignment != nil {
			if err := store.Assignments.Create(ctx, assignment); err != nil {
				return fmt.Errorf("seed assignment for request %d: %w", i+1, err)
			}
		}
		if note != nil {
			if err := store.Notes.Create(ctx, note); err != nil {
				return fmt.Errorf("seed note for request %d: %w", i+1, err)
			}
		}
	}
	return nil
}
