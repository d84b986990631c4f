package memstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

const staffEmailKey = "staff_email_key"

type staffRepo struct {
	s *Store
}

func copyStaff(s models.Staff) models.Staff {
	s.Specialties = append([]string{}, s.Specialties...)
	return s
}

func checkStaff(st *state, s *models.Staff) error {
	for _, other := range st.staff.all() {
		if other.ID != s.ID && strings.EqualFold(other.Email, s.Email) {
			return repositories.NewUniqueViolation(staffEmailKey)
		}
	}
	return nil
}

func (r *staffRepo) Create(ctx context.Context, s *models.Staff) error {
	return r.s.write(ctx, func(st *state) error {
		if err := checkStaff(st, s); err != nil {
			return err
		}
		s.RowVersion = 1
		st.staff.put(s.ID, copyStaff(*s))
		return nil
	})
}

func (r *staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	var out *models.Staff
	err := r.s.read(ctx, func(st *state) error {
		if s, ok := st.staff.get(id); ok {
			c := copyStaff(s)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var out *models.Staff
	err := r.s.read(ctx, func(st *state) error {
		for _, s := range st.staff.all() {
			if strings.EqualFold(s.Email, email) {
				c := copyStaff(s)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *staffRepo) List(ctx context.Context, f repositories.StaffFilter) ([]*models.Staff, error) {
	out := []*models.Staff{}
	err := r.s.read(ctx, func(st *state) error {
		var matched []models.Staff
		for _, s := range st.staff.all() {
			if f.Active != nil && s.Active != *f.Active {
				continue
			}
			matched = append(matched, s)
		}
		for _, s := range page(matched, f.ListOptions) {
			c := copyStaff(s)
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *staffRepo) UpdateIfVersion(ctx context.Context, s *models.Staff, expected int64) (pgconn.CommandTag, error) {
	n := 0
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.staff.get(s.ID)
		if !ok || cur.RowVersion != expected {
			return nil
		}
		if err := checkStaff(st, s); err != nil {
			return err
		}
		next := copyStaff(*s)
		next.RowVersion = expected + 1
		st.staff.put(s.ID, next)
		n = 1
		return nil
	})
	return tag(n), err
}

func (r *staffRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Staff) error) error {
	get := func(ctx context.Context, _ string) (*models.Staff, error) { return r.GetByID(ctx, id) }
	return repositories.WithRetry(ctx, 3, id.String(), get, r.UpdateIfVersion, mutate)
}

func (r *staffRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.s.write(ctx, func(st *state) error {
		s, ok := st.staff.get(id)
		if !ok {
			return pgx.ErrNoRows
		}
		s.Active = false
		s.UpdatedAt = at
		s.RowVersion++
		st.staff.put(id, s)
		return nil
	})
}
