package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	FindByBuildingAndNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (*models.Unit, error)
	List(ctx context.Context, f UnitFilter) ([]*models.Unit, error)
	CountByBuildingID(ctx context.Context, buildingID uuid.UUID) (int, error)

	UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	*BaseVersionedRepo[*models.Unit]
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	r := &unitRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectUnit()+" WHERE id=$1", r.scanUnit)
	return r
}

/* ---------- create ---------- */

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO units (
			id, building_id, unit_number, floor, bedrooms, bathrooms, square_feet,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,1)
	`, u.ID, u.BuildingID, u.UnitNumber, u.Floor, u.Bedrooms, u.Bathrooms, u.SquareFeet, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert unit")
	}
	u.RowVersion = 1
	return nil
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *unitRepo) FindByBuildingAndNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (*models.Unit, error) {
	row := conn(ctx, r.db).QueryRow(ctx,
		baseSelectUnit()+" WHERE building_id=$1 AND unit_number=$2 LIMIT 1", buildingID, unitNumber)
	return r.scanUnit(row)
}

func (r *unitRepo) List(ctx context.Context, f UnitFilter) ([]*models.Unit, error) {
	b := newQueryBuilder(baseSelectUnit())
	if f.BuildingID != nil {
		b.and("building_id", "=", *f.BuildingID)
	}
	b.page("created_at, id", f.ListOptions)
	sql, args := b.build()

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list units")
	}
	defer rows.Close()

	out := []*models.Unit{}
	for rows.Next() {
		u, err := r.scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitRepo) CountByBuildingID(ctx context.Context, buildingID uuid.UUID) (int, error) {
	var n int
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM units WHERE building_id=$1`, buildingID).Scan(&n)
	return n, errors.Wrap(err, "count units")
}

/* ---------- update / delete ---------- */

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return conn(ctx, r.db).Exec(ctx, `
		UPDATE units
		SET building_id=$1, unit_number=$2, floor=$3, bedrooms=$4, bathrooms=$5, square_feet=$6,
			updated_at=$7, row_version=row_version+1
		WHERE id=$8 AND row_version=$9
	`, u.BuildingID, u.UnitNumber, u.Floor, u.Bedrooms, u.Bathrooms, u.SquareFeet, u.UpdatedAt, u.ID, expected)
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete unit")
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, building_id, unit_number, floor, bedrooms, bathrooms, square_feet,
		created_at, updated_at, row_version
		FROM units`
}

func (r *unitRepo) scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.BuildingID, &u.UnitNumber,
		&u.Floor, &u.Bedrooms, &u.Bathrooms, &u.SquareFeet,
		&u.CreatedAt, &u.UpdatedAt, &u.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
