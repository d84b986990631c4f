package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

type StaffService struct {
	tx    repositories.Transactor
	staff repositories.StaffRepository
	now   Clock
}

func NewStaffService(store *repositories.Store, now Clock) *StaffService {
	return &StaffService{tx: store.Tx, staff: store.Staff, now: now}
}

func (s *StaffService) Create(ctx context.Context, req dtos.CreateStaffRequest) (*models.Staff, error) {
	var created *models.Staff
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
			return err
		}
		now := s.now()
		m := &models.Staff{
			ID:          uuid.New(),
			FullName:    req.FullName,
			Email:       strings.TrimSpace(req.Email),
			Phone:       req.Phone,
			Role:        req.Role,
			Specialties: append([]string{}, req.Specialties...),
			HireDate:    req.HireDate,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if req.Active != nil {
			m.Active = *req.Active
		}
		if err := s.staff.Create(ctx, m); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.NewValidationError(msgEmailRegistered)
			}
			return mapStoreError(err, "Staff member", "create")
		}
		created = m
		return nil
	})
	return created, err
}

func (s *StaffService) Get(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	m, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Staff member", "fetch")
	}
	if m == nil {
		return nil, notFound("Staff member")
	}
	return m, nil
}

func (s *StaffService) List(ctx context.Context, f repositories.StaffFilter) ([]*models.Staff, error) {
	list, err := s.staff.List(ctx, f)
	if err != nil {
		return nil, mapStoreError(err, "Staff member", "list")
	}
	return list, nil
}

func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateStaffRequest) (*models.Staff, error) {
	if req.IsEmpty() {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, utils.NewValidationError("No fields to update")
	}

	var updated *models.Staff
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		if req.Email != nil {
			if err := s.ensureEmailFree(ctx, *req.Email, id); err != nil {
				return err
			}
		}
		return s.staff.UpdateWithRetry(ctx, id, func(m *models.Staff) error {
			if req.FullName != nil {
				m.FullName = *req.FullName
			}
			if req.Email != nil {
				m.Email = strings.TrimSpace(*req.Email)
			}
			if req.Phone != nil {
				m.Phone = req.Phone
			}
			if req.Role != nil {
				m.Role = *req.Role
			}
			if req.Specialties != nil {
				m.Specialties = append([]string{}, req.Specialties...)
			}
			if req.HireDate != nil {
				m.HireDate = req.HireDate
			}
			if req.Active != nil {
				m.Active = *req.Active
			}
			m.UpdatedAt = s.now()
			updated = m
			return nil
		})
	})
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewValidationError(msgEmailRegistered)
		}
		return nil, mapStoreError(err, "Staff member", "update")
	}
	return updated, nil
}

// Delete deactivates the staff member. The row stays so assignment history
// keeps its name and role.
func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	return mapStoreError(s.staff.SoftDelete(ctx, id, s.now()), "Staff member", "delete")
}

func (s *StaffService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.staff.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return mapStoreError(err, "Staff member", "fetch")
	}
	if existing != nil && existing.ID != self {
		return utils.NewValidationError(msgEmailRegistered)
	}
	return nil
}
