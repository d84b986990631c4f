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

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	List(ctx context.Context, opts ListOptions) ([]*models.Building, error)

	UpdateIfVersion(ctx context.Context, b *models.Building, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Building) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type buildingRepo struct {
	*BaseVersionedRepo[*models.Building]
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	r := &buildingRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectBuilding()+" WHERE id=$1", r.scanBuilding)
	return r
}

/* ---------- create ---------- */

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO buildings (
			id, name, address, neighborhood, city, state, zip_code,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,1)
	`, b.ID, b.Name, b.Address, b.Neighborhood, b.City, b.State, b.ZipCode, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert building")
	}
	b.RowVersion = 1
	return nil
}

/* ---------- reads ---------- */

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *buildingRepo) List(ctx context.Context, opts ListOptions) ([]*models.Building, error) {
	b := newQueryBuilder(baseSelectBuilding())
	b.page("created_at, id", opts)
	sql, args := b.build()

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list buildings")
	}
	defer rows.Close()

	out := []*models.Building{}
	for rows.Next() {
		bldg, err := r.scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bldg)
	}
	return out, rows.Err()
}

/* ---------- update / delete ---------- */

func (r *buildingRepo) UpdateIfVersion(ctx context.Context, b *models.Building, expected int64) (pgconn.CommandTag, error) {
	return conn(ctx, r.db).Exec(ctx, `
		UPDATE buildings
		SET name=$1, address=$2, neighborhood=$3, city=$4, state=$5, zip_code=$6,
			updated_at=$7, row_version=row_version+1
		WHERE id=$8 AND row_version=$9
	`, b.Name, b.Address, b.Neighborhood, b.City, b.State, b.ZipCode, b.UpdatedAt, b.ID, expected)
}

func (r *buildingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Building) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *buildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM buildings WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete building")
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectBuilding() string {
	return `
		SELECT id, name, address, neighborhood, city, state, zip_code,
		created_at, updated_at, row_version
		FROM buildings`
}

func (r *buildingRepo) scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.Name, &b.Address, &b.Neighborhood, &b.City, &b.State, &b.ZipCode,
		&b.CreatedAt, &b.UpdatedAt, &b.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
