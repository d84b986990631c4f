package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/bradfitz/latlong"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/telemetry"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type RequestService struct {
	tx          repositories.Transactor
	buildings   repositories.BuildingRepository
	units       repositories.UnitRepository
	tenants     repositories.TenantRepository
	staff       repositories.StaffRepository
	requests    repositories.RequestRepository
	assignments repositories.AssignmentRepository
	notes       repositories.NoteRepository
	notifier    Notifier
	now         Clock
}

func NewRequestService(store *repositories.Store, notifier Notifier, now Clock) *RequestService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &RequestService{
		tx:          store.Tx,
		buildings:   store.Buildings,
		units:       store.Units,
		tenants:     store.Tenants,
		staff:       store.Staff,
		requests:    store.Requests,
		assignments: store.Assignments,
		notes:       store.Notes,
		notifier:    notifier,
		now:         now,
	}
}

/* ---------- CRUD ---------- */

// Create validates the tenant, unit and building references. closed_at stays
// empty whatever the initial status; only Update records it.
func (s *RequestService) Create(ctx context.Context, in dtos.CreateRequestRequest) (*models.Request, error) {
	var created *models.Request
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireReferences(ctx, in.TenantID, in.UnitID, in.BuildingID); err != nil {
			return err
		}

		now := s.now()
		req := &models.Request{
			ID:              uuid.New(),
			ExternalID:      in.ExternalID,
			TenantID:        in.TenantID,
			UnitID:          in.UnitID,
			BuildingID:      in.BuildingID,
			IssueType:       in.IssueType,
			Priority:        in.Priority,
			Description:     in.Description,
			Status:          models.RequestStatusOpen,
			TargetSLAHours:  models.DefaultTargetSLAHours,
			LocationDetails: locationFromDTO(in.LocationDetails),
			Assignments:     []models.Assignment{},
			Notes:           []models.Note{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if in.Status != nil {
			req.Status = *in.Status
		}
		if in.TargetSLAHours != nil {
			req.TargetSLAHours = *in.TargetSLAHours
		}
		if err := s.requests.Create(ctx, req); err != nil {
			return mapStoreError(err, "Request", "create")
		}
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	telemetry.RecordRequestEvent(telemetry.EventCreated)
	utils.Logger.WithFields(logrus.Fields{
		"requestID": created.ID,
		"priority":  created.Priority,
	}).Info("Maintenance request created")
	return created, nil
}

func (s *RequestService) Get(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Request", "fetch")
	}
	if req == nil {
		return nil, notFound("Request")
	}
	return req, nil
}

// List returns requests newest first.
func (s *RequestService) List(ctx context.Context, f repositories.RequestFilter) ([]*models.Request, error) {
	list, err := s.requests.List(ctx, f)
	if err != nil {
		return nil, mapStoreError(err, "Request", "list")
	}
	return list, nil
}

// Update is the generic partial update. Status may move freely between any
// two states; closed_at is recorded once.
func (s *RequestService) Update(ctx context.Context, id uuid.UUID, in dtos.UpdateRequestRequest) (*models.Request, error) {
	if in.IsEmpty() {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, utils.NewValidationError("No fields to update")
	}

	var (
		updated   *models.Request
		newlyShut bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.requests.UpdateWithRetry(ctx, id, func(req *models.Request) error {
			now := s.now()
			if in.IssueType != nil {
				req.IssueType = *in.IssueType
			}
			if in.Priority != nil {
				req.Priority = *in.Priority
			}
			if in.Description != nil {
				req.Description = *in.Description
			}
			if in.TargetSLAHours != nil {
				req.TargetSLAHours = *in.TargetSLAHours
			}
			if in.ResolutionNotes != nil {
				req.ResolutionNotes = in.ResolutionNotes
			}
			newlyShut = false
			if in.Status != nil {
				wasOpen := req.ClosedAt == nil
				req.SetStatus(*in.Status, now)
				newlyShut = wasOpen && req.ClosedAt != nil
			}
			req.UpdatedAt = now
			updated = req
			return nil
		})
	})
	if err != nil {
		return nil, mapStoreError(err, "Request", "update")
	}
	if newlyShut {
		telemetry.RecordRequestEvent(telemetry.EventClosed)
	}
	return updated, nil
}

// Delete removes the request together with its assignments and notes.
func (s *RequestService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return mapStoreError(s.requests.Delete(ctx, id), "Request", "delete")
	})
}

/* ---------- lifecycle ---------- */

// Assign opens a new assignment for the staff member and moves the request to
// IN_PROGRESS.
func (s *RequestService) Assign(ctx context.Context, id uuid.UUID, in dtos.AssignRequest) (*models.Request, error) {
	var (
		req    *models.Request
		member *models.Staff
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if req, err = s.lockRequest(ctx, id); err != nil {
			return err
		}
		member, err = s.staff.GetByID(ctx, in.StaffID)
		if err != nil {
			return mapStoreError(err, "Staff member", "fetch")
		}
		if member == nil {
			return notFound("Staff member")
		}

		a, err := req.Assign(in.StaffID, in.Notes, s.now())
		if errors.Is(err, models.ErrAlreadyAssigned) {
			return utils.NewConflictError("Staff member is already assigned to this request")
		}
		if err != nil {
			return err
		}
		if err := s.assignments.Create(ctx, a); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.NewConflictError("Staff member is already assigned to this request")
			}
			return mapStoreError(err, "Assignment", "create")
		}
		return s.saveLocked(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	telemetry.RecordRequestEvent(telemetry.EventAssigned)
	utils.Logger.WithFields(logrus.Fields{"requestID": req.ID, "staffID": member.ID}).Info("Request assigned")
	s.notifier.StaffAssigned(ctx, member, req, s.unitNumber(ctx, req.UnitID))
	return req, nil
}

// CompleteAssignment closes the staff member's active assignment and marks the
// request COMPLETED. closed_at is not touched.
func (s *RequestService) CompleteAssignment(ctx context.Context, id, staffID uuid.UUID) (*models.Request, error) {
	var req *models.Request
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if req, err = s.lockRequest(ctx, id); err != nil {
			return err
		}
		a, err := req.CompleteAssignment(staffID, s.now())
		if errors.Is(err, models.ErrNoActiveAssignment) {
			return utils.NewNotFoundError("No active assignment found for this staff member")
		}
		if err != nil {
			return err
		}
		if err := s.assignments.MarkCompleted(ctx, a); err != nil {
			return mapStoreError(err, "Assignment", "update")
		}
		return s.saveLocked(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	telemetry.RecordRequestEvent(telemetry.EventCompleted)
	utils.Logger.WithFields(logrus.Fields{"requestID": req.ID, "staffID": staffID}).Info("Assignment completed")
	if tenant, err := s.tenants.GetByID(ctx, req.TenantID); err != nil {
		utils.Logger.WithError(err).WithField("requestID", req.ID).Warn("Tenant lookup for completion notice failed")
	} else {
		s.notifier.AssignmentCompleted(ctx, tenant, req)
	}
	return req, nil
}

func (s *RequestService) AddNote(ctx context.Context, id uuid.UUID, in dtos.AddNoteRequest) (*models.Request, error) {
	var req *models.Request
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if req, err = s.lockRequest(ctx, id); err != nil {
			return err
		}
		n := req.AddNote(in.AuthorType, in.AuthorID, in.AuthorName, in.Body, s.now())
		if err := s.notes.Create(ctx, n); err != nil {
			return mapStoreError(err, "Note", "create")
		}
		return s.saveLocked(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	telemetry.RecordRequestEvent(telemetry.EventNoted)
	return req, nil
}

/* ---------- internals ---------- */

func (s *RequestService) lockRequest(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	req, err := s.requests.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Request", "fetch")
	}
	if req == nil {
		return nil, notFound("Request")
	}
	return req, nil
}

// saveLocked writes the request row under its current row version.
func (s *RequestService) saveLocked(ctx context.Context, req *models.Request) error {
	expected := req.RowVersion
	tag, err := s.requests.UpdateIfVersion(ctx, req, expected)
	if err != nil {
		return mapStoreError(err, "Request", "update")
	}
	if tag.RowsAffected() != 1 {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeRowVersionConflict,
			Message:    "Request was modified concurrently, please retry",
			Err:        repositories.ErrRowVersionConflict,
		}
	}
	req.RowVersion = expected + 1
	return nil
}

func (s *RequestService) requireReferences(ctx context.Context, tenantID, unitID, buildingID uuid.UUID) error {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return mapStoreError(err, "Tenant", "fetch")
	}
	if tenant == nil {
		return utils.NewValidationError("Tenant not found")
	}
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return mapStoreError(err, "Unit", "fetch")
	}
	if unit == nil {
		return utils.NewValidationError("Unit not found")
	}
	building, err := s.buildings.GetByID(ctx, buildingID)
	if err != nil {
		return mapStoreError(err, "Building", "fetch")
	}
	if building == nil {
		return utils.NewValidationError("Building not found")
	}
	return nil
}

func (s *RequestService) unitNumber(ctx context.Context, id uuid.UUID) string {
	u, err := s.units.GetByID(ctx, id)
	if err != nil || u == nil {
		return "?"
	}
	return u.UnitNumber
}

// locationFromDTO copies the payload and derives the IANA zone when both
// coordinates are present.
func locationFromDTO(d *dtos.LocationDetailsDTO) *models.LocationDetails {
	if d == nil {
		return nil
	}
	loc := &models.LocationDetails{
		Neighborhood: d.Neighborhood,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
	}
	if d.Latitude != nil && d.Longitude != nil {
		loc.TimeZone = latlong.LookupZoneName(*d.Latitude, *d.Longitude)
	}
	return loc
}

type noopNotifier struct{}

func (noopNotifier) StaffAssigned(context.Context, *models.Staff, *models.Request, string) {}
func (noopNotifier) AssignmentCompleted(context.Context, *models.Tenant, *models.Request) {}
