package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

const (
	unitsBuildingFK     = "units_building_id_fkey"
	unitsBuildingNumber = "units_building_id_unit_number_key"
)

type unitRepo struct {
	s *Store
}

func checkUnit(st *state, u *models.Unit) error {
	if _, ok := st.buildings.get(u.BuildingID); !ok {
		return repositories.NewForeignKeyViolation(unitsBuildingFK)
	}
	for _, other := range st.units.all() {
		if other.ID != u.ID && other.BuildingID == u.BuildingID && other.UnitNumber == u.UnitNumber {
			return repositories.NewUniqueViolation(unitsBuildingNumber)
		}
	}
	return nil
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	return r.s.write(ctx, func(st *state) error {
		if err := checkUnit(st, u); err != nil {
			return err
		}
		u.RowVersion = 1
		st.units.put(u.ID, *u)
		return nil
	})
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var out *models.Unit
	err := r.s.read(ctx, func(st *state) error {
		if u, ok := st.units.get(id); ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *unitRepo) FindByBuildingAndNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (*models.Unit, error) {
	var out *models.Unit
	err := r.s.read(ctx, func(st *state) error {
		for _, u := range st.units.all() {
			if u.BuildingID == buildingID && u.UnitNumber == unitNumber {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *unitRepo) List(ctx context.Context, f repositories.UnitFilter) ([]*models.Unit, error) {
	out := []*models.Unit{}
	err := r.s.read(ctx, func(st *state) error {
		var matched []models.Unit
		for _, u := range st.units.all() {
			if f.BuildingID != nil && u.BuildingID != *f.BuildingID {
				continue
			}
			matched = append(matched, u)
		}
		for _, u := range page(matched, f.ListOptions) {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

func (r *unitRepo) CountByBuildingID(ctx context.Context, buildingID uuid.UUID) (int, error) {
	n := 0
	err := r.s.read(ctx, func(st *state) error {
		for _, u := range st.units.all() {
			if u.BuildingID == buildingID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	n := 0
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.units.get(u.ID)
		if !ok || cur.RowVersion != expected {
			return nil
		}
		if err := checkUnit(st, u); err != nil {
			return err
		}
		next := *u
		next.RowVersion = expected + 1
		st.units.put(u.ID, next)
		n = 1
		return nil
	})
	return tag(n), err
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	get := func(ctx context.Context, _ string) (*models.Unit, error) { return r.GetByID(ctx, id) }
	return repositories.WithRetry(ctx, 3, id.String(), get, r.UpdateIfVersion, mutate)
}

// Delete detaches the unit's tenants rather than removing them.
func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if !st.units.remove(id) {
			return pgx.ErrNoRows
		}
		detachTenants(st, id)
		return nil
	})
}

func detachTenants(st *state, unitID uuid.UUID) {
	for _, t := range st.tenants.all() {
		if t.UnitID != nil && *t.UnitID == unitID {
			t.UnitID = nil
			st.tenants.put(t.ID, t)
		}
	}
}
