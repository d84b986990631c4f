package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

// AssignmentRepository persists the ordered assignment rows owned by a
// request. At most one row per (request, staff) may have a NULL completed_at.
type AssignmentRepository interface {
	Create(ctx context.Context, a *models.Assignment) error
	MarkCompleted(ctx context.Context, a *models.Assignment) error
	ListByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]models.Assignment, error)
}

type assignmentRepo struct {
	db DB
}

func NewAssignmentRepository(db DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO request_assignments (
			id, request_id, seq, staff_id, assigned_at, accepted_at, completed_at, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, a.ID, a.RequestID, a.Seq, a.StaffID, a.AssignedAt, a.AcceptedAt, a.CompletedAt, a.Notes)
	return errors.Wrap(err, "insert assignment")
}

func (r *assignmentRepo) MarkCompleted(ctx context.Context, a *models.Assignment) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE request_assignments SET completed_at=$1
		WHERE id=$2 AND completed_at IS NULL
	`, a.CompletedAt, a.ID)
	if err != nil {
		return errors.Wrap(err, "complete assignment")
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepo) ListByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]models.Assignment, error) {
	out := make(map[uuid.UUID][]models.Assignment, len(requestIDs))
	if len(requestIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT id, request_id, seq, staff_id, assigned_at, accepted_at, completed_at, notes
		FROM request_assignments
		WHERE request_id = ANY($1::uuid[])
		ORDER BY request_id, seq
	`, uuidStrings(requestIDs))
	if err != nil {
		return nil, errors.Wrap(err, "list assignments")
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(
			&a.ID, &a.RequestID, &a.Seq, &a.StaffID,
			&a.AssignedAt, &a.AcceptedAt, &a.CompletedAt, &a.Notes,
		); err != nil {
			return nil, err
		}
		out[a.RequestID] = append(out[a.RequestID], a)
	}
	return out, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
