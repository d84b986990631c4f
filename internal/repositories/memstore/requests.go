package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

const (
	assignmentsRequestFK = "request_assignments_request_id_fkey"
	assignmentsActiveKey = "request_assignments_one_active_per_staff"
	assignmentsSeqKey    = "request_assignments_request_id_seq_key"
	notesRequestFK       = "request_notes_request_id_fkey"
	notesSeqKey          = "request_notes_request_id_seq_key"
)

type requestRepo struct {
	s *Store
}

// withChildren copies the stored row and attaches its assignments and notes.
func withChildren(st *state, req models.Request) *models.Request {
	req.Assignments = append([]models.Assignment{}, st.assignments[req.ID]...)
	req.Notes = append([]models.Note{}, st.notes[req.ID]...)
	return &req
}

func (r *requestRepo) Create(ctx context.Context, req *models.Request) error {
	return r.s.write(ctx, func(st *state) error {
		req.RowVersion = 1
		row := *req
		row.Assignments, row.Notes = nil, nil
		st.requests.put(req.ID, row)
		return nil
	})
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	var out *models.Request
	err := r.s.read(ctx, func(st *state) error {
		if req, ok := st.requests.get(id); ok {
			out = withChildren(st, req)
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate needs no row lock: transactions are already serialized.
func (r *requestRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	return r.GetByID(ctx, id)
}

func (r *requestRepo) List(ctx context.Context, f repositories.RequestFilter) ([]*models.Request, error) {
	out := []*models.Request{}
	err := r.s.read(ctx, func(st *state) error {
		var matched []models.Request
		for _, req := range st.requests.all() {
			if f.Status != nil && req.Status != *f.Status {
				continue
			}
			if f.TenantID != nil && req.TenantID != *f.TenantID {
				continue
			}
			if f.BuildingID != nil && req.BuildingID != *f.BuildingID {
				continue
			}
			if f.IssueType != nil && req.IssueType != *f.IssueType {
				continue
			}
			if f.Priority != nil && req.Priority != *f.Priority {
				continue
			}
			matched = append(matched, req)
		}
		// newest first; insertion order breaks ties
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
		for _, req := range page(matched, f.ListOptions) {
			out = append(out, withChildren(st, req))
		}
		return nil
	})
	return out, err
}

func (r *requestRepo) CountByTenantID(ctx context.Context, tenantID uuid.UUID) (int, error) {
	n := 0
	err := r.s.read(ctx, func(st *state) error {
		for _, req := range st.requests.all() {
			if req.TenantID == tenantID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *requestRepo) UpdateIfVersion(ctx context.Context, req *models.Request, expected int64) (pgconn.CommandTag, error) {
	n := 0
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.requests.get(req.ID)
		if !ok || cur.RowVersion != expected {
			return nil
		}
		next := *req
		// references are fixed at creation
		next.TenantID, next.UnitID, next.BuildingID = cur.TenantID, cur.UnitID, cur.BuildingID
		next.CreatedAt = cur.CreatedAt
		next.Assignments, next.Notes = nil, nil
		next.RowVersion = expected + 1
		st.requests.put(req.ID, next)
		n = 1
		return nil
	})
	return tag(n), err
}

func (r *requestRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Request) error) error {
	get := func(ctx context.Context, _ string) (*models.Request, error) { return r.GetByID(ctx, id) }
	return repositories.WithRetry(ctx, 3, id.String(), get, r.UpdateIfVersion, mutate)
}

func (r *requestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if !st.requests.remove(id) {
			return pgx.ErrNoRows
		}
		delete(st.assignments, id)
		delete(st.notes, id)
		return nil
	})
}

type assignmentRepo struct {
	s *Store
}

func (r *assignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.requests.get(a.RequestID); !ok {
			return repositories.NewForeignKeyViolation(assignmentsRequestFK)
		}
		for _, other := range st.assignments[a.RequestID] {
			if other.Seq == a.Seq {
				return repositories.NewUniqueViolation(assignmentsSeqKey)
			}
			if other.StaffID == a.StaffID && other.IsActive() && a.IsActive() {
				return repositories.NewUniqueViolation(assignmentsActiveKey)
			}
		}
		st.assignments[a.RequestID] = append(st.assignments[a.RequestID], *a)
		return nil
	})
}

func (r *assignmentRepo) MarkCompleted(ctx context.Context, a *models.Assignment) error {
	return r.s.write(ctx, func(st *state) error {
		list := st.assignments[a.RequestID]
		for i := range list {
			if list[i].ID == a.ID && list[i].IsActive() {
				list[i].CompletedAt = a.CompletedAt
				return nil
			}
		}
		return pgx.ErrNoRows
	})
}

func (r *assignmentRepo) ListByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]models.Assignment, error) {
	out := make(map[uuid.UUID][]models.Assignment, len(requestIDs))
	err := r.s.read(ctx, func(st *state) error {
		for _, id := range requestIDs {
			if list, ok := st.assignments[id]; ok {
				out[id] = append([]models.Assignment(nil), list...)
			}
		}
		return nil
	})
	return out, err
}

type noteRepo struct {
	s *Store
}

func (r *noteRepo) Create(ctx context.Context, n *models.Note) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.requests.get(n.RequestID); !ok {
			return repositories.NewForeignKeyViolation(notesRequestFK)
		}
		for _, other := range st.notes[n.RequestID] {
			if other.Seq == n.Seq {
				return repositories.NewUniqueViolation(notesSeqKey)
			}
		}
		st.notes[n.RequestID] = append(st.notes[n.RequestID], *n)
		return nil
	})
}

func (r *noteRepo) ListByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]models.Note, error) {
	out := make(map[uuid.UUID][]models.Note, len(requestIDs))
	err := r.s.read(ctx, func(st *state) error {
		for _, id := range requestIDs {
			if list, ok := st.notes[id]; ok {
				out[id] = append([]models.Note(nil), list...)
			}
		}
		return nil
	})
	return out, err
}
