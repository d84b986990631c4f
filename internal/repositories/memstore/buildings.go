package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

type buildingRepo struct {
	s *Store
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	return r.s.write(ctx, func(st *state) error {
		b.RowVersion = 1
		st.buildings.put(b.ID, *b)
		return nil
	})
}

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	var out *models.Building
	err := r.s.read(ctx, func(st *state) error {
		if b, ok := st.buildings.get(id); ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *buildingRepo) List(ctx context.Context, opts repositories.ListOptions) ([]*models.Building, error) {
	out := []*models.Building{}
	err := r.s.read(ctx, func(st *state) error {
		for _, b := range page(st.buildings.all(), opts) {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	return out, err
}

func (r *buildingRepo) UpdateIfVersion(ctx context.Context, b *models.Building, expected int64) (pgconn.CommandTag, error) {
	n := 0
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.buildings.get(b.ID)
		if !ok || cur.RowVersion != expected {
			return nil
		}
		next := *b
		next.RowVersion = expected + 1
		st.buildings.put(b.ID, next)
		n = 1
		return nil
	})
	return tag(n), err
}

func (r *buildingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Building) error) error {
	get := func(ctx context.Context, _ string) (*models.Building, error) { return r.GetByID(ctx, id) }
	return repositories.WithRetry(ctx, 3, id.String(), get, r.UpdateIfVersion, mutate)
}

// Delete cascades to the building's units.
func (r *buildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if !st.buildings.remove(id) {
			return pgx.ErrNoRows
		}
		for _, u := range st.units.all() {
			if u.BuildingID == id {
				st.units.remove(u.ID)
				detachTenants(st, u.ID)
			}
		}
		return nil
	})
}
