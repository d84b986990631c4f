package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

type NoteRepository interface {
	Create(ctx context.Context, n *models.Note) error
	ListByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]models.Note, error)
}

type noteRepo struct {
	db DB
}

func NewNoteRepository(db DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, n *models.Note) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO request_notes (
			id, request_id, seq, author_type, author_id, author_name, body, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, n.ID, n.RequestID, n.Seq, n.AuthorType, n.AuthorID, n.AuthorName, n.Body, n.CreatedAt)
	return errors.Wrap(err, "insert note")
}

func (r *noteRepo) ListByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]models.Note, error) {
	out := make(map[uuid.UUID][]models.Note, len(requestIDs))
	if len(requestIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT id, request_id, seq, author_type, author_id, author_name, body, created_at
		FROM request_notes
		WHERE request_id = ANY($1::uuid[])
		ORDER BY request_id, seq
	`, uuidStrings(requestIDs))
	if err != nil {
		return nil, errors.Wrap(err, "list notes")
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Note
		if err := rows.Scan(
			&n.ID, &n.RequestID, &n.Seq, &n.AuthorType, &n.AuthorID, &n.AuthorName, &n.Body, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out[n.RequestID] = append(out[n.RequestID], n)
	}
	return out, rows.Err()
}
