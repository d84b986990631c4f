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

// RequestRepository reads requests together with their assignments and notes.
// Writes only touch the request row; children go through
// AssignmentRepository and NoteRepository.
type RequestRepository interface {
	Create(ctx context.Context, req *models.Request) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Request, error)
	List(ctx context.Context, f RequestFilter) ([]*models.Request, error)
	CountByTenantID(ctx context.Context, tenantID uuid.UUID) (int, error)

	UpdateIfVersion(ctx context.Context, req *models.Request, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Request) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type requestRepo struct {
	db          DB
	assignments AssignmentRepository
	notes       NoteRepository
}

func NewRequestRepository(db DB, assignments AssignmentRepository, notes NoteRepository) RequestRepository {
	return &requestRepo{db: db, assignments: assignments, notes: notes}
}

/* ---------- create ---------- */

func (r *requestRepo) Create(ctx context.Context, req *models.Request) error {
	loc, err := jsonbArg(req.LocationDetails)
	if err != nil {
		return errors.Wrap(err, "encode location details")
	}
	_, err = conn(ctx, r.db).Exec(ctx, `
		INSERT INTO requests (
			id, external_id, tenant_id, unit_id, building_id, issue_type, priority,
			description, status, target_sla_hours, location_details, resolution_notes,
			created_at, updated_at, closed_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,1)
	`, req.ID, req.ExternalID, req.TenantID, req.UnitID, req.BuildingID, req.IssueType, req.Priority,
		req.Description, req.Status, req.TargetSLAHours, loc, req.ResolutionNotes,
		req.CreatedAt, req.UpdatedAt, req.ClosedAt)
	if err != nil {
		return errors.Wrap(err, "insert request")
	}
	req.RowVersion = 1
	return nil
}

/* ---------- reads ---------- */

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	return r.getOne(ctx, baseSelectRequest()+" WHERE id=$1", id)
}

// GetByIDForUpdate row-locks the request until the surrounding transaction
// ends. Callers must be inside Transactor.WithinTx.
func (r *requestRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	return r.getOne(ctx, baseSelectRequest()+" WHERE id=$1 FOR UPDATE", id)
}

func (r *requestRepo) List(ctx context.Context, f RequestFilter) ([]*models.Request, error) {
	b := newQueryBuilder(baseSelectRequest())
	if f.Status != nil {
		b.and("status", "=", *f.Status)
	}
	if f.TenantID != nil {
		b.and("tenant_id", "=", *f.TenantID)
	}
	if f.BuildingID != nil {
		b.and("building_id", "=", *f.BuildingID)
	}
	if f.IssueType != nil {
		b.and("issue_type", "=", *f.IssueType)
	}
	if f.Priority != nil {
		b.and("priority", "=", *f.Priority)
	}
	b.page("created_at DESC, id", f.ListOptions)
	sql, args := b.build()

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list requests")
	}
	defer rows.Close()

	out := []*models.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *requestRepo) CountByTenantID(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var n int
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE tenant_id=$1`, tenantID).Scan(&n)
	return n, errors.Wrap(err, "count requests")
}

/* ---------- update / delete ---------- */

func (r *requestRepo) UpdateIfVersion(ctx context.Context, req *models.Request, expected int64) (pgconn.CommandTag, error) {
	loc, err := jsonbArg(req.LocationDetails)
	if err != nil {
		return nil, errors.Wrap(err, "encode location details")
	}
	return conn(ctx, r.db).Exec(ctx, `
		UPDATE requests
		SET external_id=$1, issue_type=$2, priority=$3, description=$4, status=$5,
			target_sla_hours=$6, location_details=$7, resolution_notes=$8,
			updated_at=$9, closed_at=$10, row_version=row_version+1
		WHERE id=$11 AND row_version=$12
	`, req.ExternalID, req.IssueType, req.Priority, req.Description, req.Status,
		req.TargetSLAHours, loc, req.ResolutionNotes,
		req.UpdatedAt, req.ClosedAt, req.ID, expected)
}

func (r *requestRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Request) error) error {
	getByID := func(ctx context.Context, id string) (*models.Request, error) {
		return r.getOne(ctx, baseSelectRequest()+" WHERE id=$1", id)
	}
	return WithRetry(ctx, updateRetries, id.String(), getByID, r.UpdateIfVersion, mutate)
}

// Delete removes the request; assignments and notes cascade.
func (r *requestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM requests WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete request")
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectRequest() string {
	return `
		SELECT id, external_id, tenant_id, unit_id, building_id, issue_type, priority,
		description, status, target_sla_hours, location_details, resolution_notes,
		created_at, updated_at, closed_at, row_version
		FROM requests`
}

func (r *requestRepo) getOne(ctx context.Context, sql string, id any) (*models.Request, error) {
	req, err := scanRequest(conn(ctx, r.db).QueryRow(ctx, sql, id))
	if err != nil || req == nil {
		return req, err
	}
	if err := r.attachChildren(ctx, []*models.Request{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepo) attachChildren(ctx context.Context, list []*models.Request) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(list))
	for i, req := range list {
		ids[i] = req.ID
	}
	assignments, err := r.assignments.ListByRequestIDs(ctx, ids)
	if err != nil {
		return err
	}
	notes, err := r.notes.ListByRequestIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, req := range list {
		req.Assignments = assignments[req.ID]
		if req.Assignments == nil {
			req.Assignments = []models.Assignment{}
		}
		req.Notes = notes[req.ID]
		if req.Notes == nil {
			req.Notes = []models.Note{}
		}
	}
	return nil
}

func scanRequest(row pgx.Row) (*models.Request, error) {
	var (
		req models.Request
		loc []byte
	)
	if err := row.Scan(
		&req.ID, &req.ExternalID, &req.TenantID, &req.UnitID, &req.BuildingID,
		&req.IssueType, &req.Priority, &req.Description, &req.Status, &req.TargetSLAHours,
		&loc, &req.ResolutionNotes,
		&req.CreatedAt, &req.UpdatedAt, &req.ClosedAt, &req.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	details, err := scanJSONB[models.LocationDetails](loc)
	if err != nil {
		return nil, errors.Wrap(err, "decode location details")
	}
	req.LocationDetails = details
	return &req, nil
}
