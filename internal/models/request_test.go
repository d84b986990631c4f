package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRequest(created time.Time) *Request {
	return &Request{
		ID:             uuid.New(),
		Status:         RequestStatusOpen,
		TargetSLAHours: DefaultTargetSLAHours,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestSetStatusRecordsClosedAtOnce(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	r := newTestRequest(t0)

	r.SetStatus(RequestStatusPending, t0.Add(time.Hour))
	require.Nil(t, r.ClosedAt)

	r.SetStatus(RequestStatusClosed, t0.Add(2*time.Hour))
	require.NotNil(t, r.ClosedAt)
	first := *r.ClosedAt

	r.SetStatus(RequestStatusCompleted, t0.Add(5*time.Hour))
	require.Equal(t, first, *r.ClosedAt)

	// reopening never clears it
	r.SetStatus(RequestStatusOpen, t0.Add(6*time.Hour))
	require.Equal(t, first, *r.ClosedAt)
}

func TestAssignAndComplete(t *testing.T) {
	now := time.Now().UTC()
	r := newTestRequest(now)
	staffA, staffB := uuid.New(), uuid.New()

	a, err := r.Assign(staffA, nil, now)
	require.NoError(t, err)
	require.Equal(t, 1, a.Seq)
	require.Equal(t, RequestStatusInProgress, r.Status)

	_, err = r.Assign(staffA, nil, now)
	require.ErrorIs(t, err, ErrAlreadyAssigned)

	_, err = r.Assign(staffB, nil, now)
	require.NoError(t, err)

	done, err := r.CompleteAssignment(staffA, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	require.Equal(t, RequestStatusCompleted, r.Status)
	require.Nil(t, r.ClosedAt, "completing an assignment leaves closed_at alone")

	_, err = r.CompleteAssignment(staffA, now)
	require.ErrorIs(t, err, ErrNoActiveAssignment)

	again, err := r.Assign(staffA, nil, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 3, again.Seq)
	require.Len(t, r.Assignments, 3)
}

func TestAddNoteKeepsOrder(t *testing.T) {
	now := time.Now().UTC()
	r := newTestRequest(now)
	r.AddNote(NoteAuthorTenant, "t1", "Tina", "first", now)
	r.AddNote(NoteAuthorStaff, "s1", "Sam", "second", now.Add(time.Minute))

	require.Len(t, r.Notes, 2)
	require.Equal(t, "first", r.Notes[0].Body)
	require.Equal(t, 2, r.Notes[1].Seq)
	require.Equal(t, RequestStatusOpen, r.Status)
	require.Equal(t, now.Add(time.Minute), r.UpdatedAt)
}

func TestBreachedSLA(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newTestRequest(t0)
	r.SetStatus(RequestStatusClosed, t0.Add(50*time.Hour))

	r.TargetSLAHours = 48
	require.True(t, r.BreachedSLA())

	r.TargetSLAHours = 72
	require.False(t, r.BreachedSLA())

	h, ok := r.ResolutionHours()
	require.True(t, ok)
	require.InDelta(t, 50.0, h, 1e-9)
}

func TestEnumValidity(t *testing.T) {
	require.True(t, IssueTypePestControl.IsValid())
	require.False(t, IssueType("Roofing").IsValid())
	require.True(t, PriorityEmergency.IsValid())
	require.False(t, RequestStatus("DONE").IsValid())
	require.True(t, RequestStatusClosed.IsTerminal())
	require.False(t, RequestStatusPending.IsTerminal())
}
