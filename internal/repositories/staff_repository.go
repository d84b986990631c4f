package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

/* ───────────── public interface ───────────── */

type StaffRepository interface {
	Create(ctx context.Context, s *models.Staff) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context, f StaffFilter) ([]*models.Staff, error)

	UpdateIfVersion(ctx context.Context, s *models.Staff, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Staff) error) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

/* ───────────── implementation ───────────── */

type staffRepo struct {
	*BaseVersionedRepo[*models.Staff]
	db DB
}

func NewStaffRepository(db DB) StaffRepository {
	r := &staffRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectStaff()+" WHERE id=$1", r.scanStaff)
	return r
}

/* ---------- create ---------- */

func (r *staffRepo) Create(ctx context.Context, s *models.Staff) error {
	specialties, err := specialtiesArg(s.Specialties)
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.db).Exec(ctx, `
		INSERT INTO staff (
			id, full_name, email, phone, role, specialties, hire_date, active,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,1)
	`, s.ID, s.FullName, s.Email, s.Phone, s.Role, specialties, s.HireDate, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert staff")
	}
	s.RowVersion = 1
	return nil
}

/* ---------- reads ---------- */

func (r *staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	row := conn(ctx, r.db).QueryRow(ctx,
		baseSelectStaff()+" WHERE lower(email)=$1 LIMIT 1", strings.ToLower(email))
	return r.scanStaff(row)
}

func (r *staffRepo) List(ctx context.Context, f StaffFilter) ([]*models.Staff, error) {
	b := newQueryBuilder(baseSelectStaff())
	if f.Active != nil {
		b.and("active", "=", *f.Active)
	}
	b.page("created_at, id", f.ListOptions)
	sql, args := b.build()

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list staff")
	}
	defer rows.Close()

	out := []*models.Staff{}
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

/* ---------- update / delete ---------- */

func (r *staffRepo) UpdateIfVersion(ctx context.Context, s *models.Staff, expected int64) (pgconn.CommandTag, error) {
	specialties, err := specialtiesArg(s.Specialties)
	if err != nil {
		return nil, err
	}
	return conn(ctx, r.db).Exec(ctx, `
		UPDATE staff
		SET full_name=$1, email=$2, phone=$3, role=$4, specialties=$5, hire_date=$6, active=$7,
			updated_at=$8, row_version=row_version+1
		WHERE id=$9 AND row_version=$10
	`, s.FullName, s.Email, s.Phone, s.Role, specialties, s.HireDate, s.Active, s.UpdatedAt, s.ID, expected)
}

func (r *staffRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Staff) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *staffRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE staff SET active=FALSE, updated_at=$2, row_version=row_version+1
		WHERE id=$1`, id, at)
	if err != nil {
		return errors.Wrap(err, "soft delete staff")
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectStaff() string {
	return `
		SELECT id, full_name, email, phone, role, specialties, hire_date, active,
		created_at, updated_at, row_version
		FROM staff`
}

func specialtiesArg(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", errors.Wrap(err, "encode specialties")
	}
	return string(b), nil
}

func (r *staffRepo) scanStaff(row pgx.Row) (*models.Staff, error) {
	var (
		s           models.Staff
		specialties []byte
	)
	if err := row.Scan(
		&s.ID, &s.FullName, &s.Email, &s.Phone, &s.Role, &specialties, &s.HireDate, &s.Active,
		&s.CreatedAt, &s.UpdatedAt, &s.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.Specialties = []string{}
	if len(specialties) > 0 {
		if err := json.Unmarshal(specialties, &s.Specialties); err != nil {
			return nil, errors.Wrap(err, "decode specialties")
		}
	}
	return &s, nil
}
