package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

/* ───────────── public interface ───────────── */

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*models.Tenant, error)
	List(ctx context.Context, f TenantFilter) ([]*models.Tenant, error)
	CountByUnitID(ctx context.Context, unitID uuid.UUID) (int, error)

	UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type tenantRepo struct {
	*BaseVersionedRepo[*models.Tenant]
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	r := &tenantRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectTenant()+" WHERE id=$1", r.scanTenant)
	return r
}

/* ---------- create ---------- */

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	contact, err := jsonbArg(t.EmergencyContact)
	if err != nil {
		return errors.Wrap(err, "encode emergency contact")
	}
	_, err = conn(ctx, r.db).Exec(ctx, `
		INSERT INTO tenants (
			id, unit_id, full_name, email, phone,
			move_in_date, move_out_date, lease_start_date, lease_end_date,
			emergency_contact, active, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,1)
	`, t.ID, t.UnitID, t.FullName, t.Email, t.Phone,
		t.MoveInDate, t.MoveOutDate, t.LeaseStartDate, t.LeaseEndDate,
		contact, t.Active, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert tenant")
	}
	t.RowVersion = 1
	return nil
}

/* ---------- reads ---------- */

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

// GetByEmail matches case-insensitively, like the unique index.
func (r *tenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	row := conn(ctx, r.db).QueryRow(ctx,
		baseSelectTenant()+" WHERE lower(email)=$1 LIMIT 1", strings.ToLower(email))
	return r.scanTenant(row)
}

func (r *tenantRepo) List(ctx context.Context, f TenantFilter) ([]*models.Tenant, error) {
	b := newQueryBuilder(baseSelectTenant())
	if f.UnitID != nil {
		b.and("unit_id", "=", *f.UnitID)
	}
	b.page("created_at, id", f.ListOptions)
	sql, args := b.build()

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list tenants")
	}
	defer rows.Close()

	out := []*models.Tenant{}
	for rows.Next() {
		t, err := r.scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepo) CountByUnitID(ctx context.Context, unitID uuid.UUID) (int, error) {
	var n int
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE unit_id=$1`, unitID).Scan(&n)
	return n, errors.Wrap(err, "count tenants")
}

/* ---------- update / delete ---------- */

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	contact, err := jsonbArg(t.EmergencyContact)
	if err != nil {
		return nil, errors.Wrap(err, "encode emergency contact")
	}
	return conn(ctx, r.db).Exec(ctx, `
		UPDATE tenants
		SET unit_id=$1, full_name=$2, email=$3, phone=$4,
			move_in_date=$5, move_out_date=$6, lease_start_date=$7, lease_end_date=$8,
			emergency_contact=$9, active=$10, updated_at=$11, row_version=row_version+1
		WHERE id=$12 AND row_version=$13
	`, t.UnitID, t.FullName, t.Email, t.Phone,
		t.MoveInDate, t.MoveOutDate, t.LeaseStartDate, t.LeaseEndDate,
		contact, t.Active, t.UpdatedAt, t.ID, expected)
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete tenant")
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectTenant() string {
	return `
		SELECT id, unit_id, full_name, email, phone,
		move_in_date, move_out_date, lease_start_date, lease_end_date,
		emergency_contact, active, created_at, updated_at, row_version
		FROM tenants`
}

func (r *tenantRepo) scanTenant(row pgx.Row) (*models.Tenant, error) {
	var (
		t       models.Tenant
		contact []byte
	)
	if err := row.Scan(
		&t.ID, &t.UnitID, &t.FullName, &t.Email, &t.Phone,
		&t.MoveInDate, &t.MoveOutDate, &t.LeaseStartDate, &t.LeaseEndDate,
		&contact, &t.Active, &t.CreatedAt, &t.UpdatedAt, &t.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	ec, err := scanJSONB[models.EmergencyContact](contact)
	if err != nil {
		return nil, errors.Wrap(err, "decode emergency contact")
	}
	t.EmergencyContact = ec
	return &t, nil
}
