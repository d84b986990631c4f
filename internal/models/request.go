package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultTargetSLAHours = 72

var (
	ErrAlreadyAssigned    = errors.New("staff_already_assigned")
	ErrNoActiveAssignment = errors.New("no_active_assignment")
)

type LocationDetails struct {
	Neighborhood *string  `json:"neighborhood"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	TimeZone     string   `json:"time_zone,omitempty"`
}

type Assignment struct {
	ID          uuid.UUID  `json:"id"`
	RequestID   uuid.UUID  `json:"-"`
	Seq         int        `json:"-"`
	StaffID     uuid.UUID  `json:"staff_id"`
	AssignedAt  time.Time  `json:"assigned_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Notes       *string    `json:"notes"`
}

func (a *Assignment) IsActive() bool {
	return a.CompletedAt == nil
}

type Note struct {
	ID         uuid.UUID      `json:"id"`
	RequestID  uuid.UUID      `json:"-"`
	Seq        int            `json:"-"`
	AuthorType NoteAuthorType `json:"author_type"`
	AuthorID   string         `json:"author_id"`
	AuthorName string         `json:"author_name"`
	Body       string         `json:"body"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Request is a maintenance ticket. Assignments and Notes are kept in append
// order (ascending Seq).
type Request struct {
	Versioned

	ID              uuid.UUID        `json:"id"`
	ExternalID      *string          `json:"external_id"`
	TenantID        uuid.UUID        `json:"tenant_id"`
	UnitID          uuid.UUID        `json:"unit_id"`
	BuildingID      uuid.UUID        `json:"building_id"`
	IssueType       IssueType        `json:"issue_type"`
	Priority        Priority         `json:"priority"`
	Description     string           `json:"description"`
	Status          RequestStatus    `json:"status"`
	TargetSLAHours  int              `json:"target_sla_hours"`
	LocationDetails *LocationDetails `json:"location_details"`
	ResolutionNotes *string          `json:"resolution_notes"`
	Assignments     []Assignment     `json:"assignments"`
	Notes           []Note           `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	ClosedAt        *time.Time       `json:"closed_at"`
}

func (r *Request) GetID() string {
	return r.ID.String()
}

// SetStatus applies a status change. closed_at is recorded the first time the
// request enters a terminal status and is never moved afterwards.
func (r *Request) SetStatus(status RequestStatus, now time.Time) {
	if status.IsTerminal() && r.ClosedAt == nil {
		closed := now
		r.ClosedAt = &closed
	}
	r.Status = status
}

// ActiveAssignment returns the index of the staff member's open assignment,
// or -1.
func (r *Request) ActiveAssignment(staffID uuid.UUID) int {
	for i := range r.Assignments {
		if r.Assignments[i].StaffID == staffID && r.Assignments[i].IsActive() {
			return i
		}
	}
	return -1
}

// Assign appends a new assignment for staffID and moves the request to
// IN_PROGRESS.
func (r *Request) Assign(staffID uuid.UUID, notes *string, now time.Time) (*Assignment, error) {
	if r.ActiveAssignment(staffID) >= 0 {
		return nil, ErrAlreadyAssigned
	}
	r.Assignments = append(r.Assignments, Assignment{
		ID:         uuid.New(),
		RequestID:  r.ID,
		Seq:        nextAssignmentSeq(r.Assignments),
		StaffID:    staffID,
		AssignedAt: now,
		Notes:      notes,
	})
	r.Status = RequestStatusInProgress
	r.UpdatedAt = now
	return &r.Assignments[len(r.Assignments)-1], nil
}

// CompleteAssignment closes the staff member's open assignment and moves the
// request to COMPLETED. closed_at is left untouched.
func (r *Request) CompleteAssignment(staffID uuid.UUID, now time.Time) (*Assignment, error) {
	idx := r.ActiveAssignment(staffID)
	if idx < 0 {
		return nil, ErrNoActiveAssignment
	}
	completed := now
	r.Assignments[idx].CompletedAt = &completed
	r.Status = RequestStatusCompleted
	r.UpdatedAt = now
	return &r.Assignments[idx], nil
}

func (r *Request) AddNote(authorType NoteAuthorType, authorID, authorName, body string, now time.Time) *Note {
	seq := 1
	if n := len(r.Notes); n > 0 {
		seq = r.Notes[n-1].Seq + 1
	}
	r.Notes = append(r.Notes, Note{
		ID:         uuid.New(),
		RequestID:  r.ID,
		Seq:        seq,
		AuthorType: authorType,
		AuthorID:   authorID,
		AuthorName: authorName,
		Body:       body,
		CreatedAt:  now,
	})
	r.UpdatedAt = now
	return &r.Notes[len(r.Notes)-1]
}

// ResolutionHours is closed_at - created_at in hours. ok is false unless the
// request is terminal with closed_at recorded.
func (r *Request) ResolutionHours() (hours float64, ok bool) {
	if !r.Status.IsTerminal() || r.ClosedAt == nil {
		return 0, false
	}
	return r.ClosedAt.Sub(r.CreatedAt).Hours(), true
}

func (r *Request) BreachedSLA() bool {
	h, ok := r.ResolutionHours()
	return ok && h > float64(r.TargetSLAHours)
}

func nextAssignmentSeq(list []Assignment) int {
	if len(list) == 0 {
		return 1
	}
	return list[len(list)-1].Seq + 1
}
