package memstore

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

const (
	tenantsUnitFK   = "tenants_unit_id_fkey"
	tenantsEmailKey = "tenants_email_key"
)

type tenantRepo struct {
	s *Store
}

func checkTenant(st *state, t *models.Tenant) error {
	if t.UnitID != nil {
		if _, ok := st.units.get(*t.UnitID); !ok {
			return repositories.NewForeignKeyViolation(tenantsUnitFK)
		}
	}
	for _, other := range st.tenants.all() {
		if other.ID != t.ID && strings.EqualFold(other.Email, t.Email) {
			return repositories.NewUniqueViolation(tenantsEmailKey)
		}
	}
	return nil
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	return r.s.write(ctx, func(st *state) error {
		if err := checkTenant(st, t); err != nil {
			return err
		}
		t.RowVersion = 1
		st.tenants.put(t.ID, *t)
		return nil
	})
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var out *models.Tenant
	err := r.s.read(ctx, func(st *state) error {
		if t, ok := st.tenants.get(id); ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *tenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	var out *models.Tenant
	err := r.s.read(ctx, func(st *state) error {
		for _, t := range st.tenants.all() {
			if strings.EqualFold(t.Email, email) {
				t := t
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *tenantRepo) List(ctx context.Context, f repositories.TenantFilter) ([]*models.Tenant, error) {
	out := []*models.Tenant{}
	err := r.s.read(ctx, func(st *state) error {
		var matched []models.Tenant
		for _, t := range st.tenants.all() {
			if f.UnitID != nil && (t.UnitID == nil || *t.UnitID != *f.UnitID) {
				continue
			}
			matched = append(matched, t)
		}
		for _, t := range page(matched, f.ListOptions) {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *tenantRepo) CountByUnitID(ctx context.Context, unitID uuid.UUID) (int, error) {
	n := 0
	err := r.s.read(ctx, func(st *state) error {
		for _, t := range st.tenants.all() {
			if t.UnitID != nil && *t.UnitID == unitID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	n := 0
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.tenants.get(t.ID)
		if !ok || cur.RowVersion != expected {
			return nil
		}
		if err := checkTenant(st, t); err != nil {
			return err
		}
		next := *t
		next.RowVersion = expected + 1
		st.tenants.put(t.ID, next)
		n = 1
		return nil
	})
	return tag(n), err
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	get := func(ctx context.Context, _ string) (*models.Tenant, error) { return r.GetByID(ctx, id) }
	return repositories.WithRetry(ctx, 3, id.String(), get, r.UpdateIfVersion, mutate)
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if !st.tenants.remove(id) {
			return pgx.ErrNoRows
		}
		return nil
	})
}
