package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const msgEmailRegistered = "Email already registered"

type TenantService struct {
	tx       repositories.Transactor
	units    repositories.UnitRepository
	tenants  repositories.TenantRepository
	requests repositories.RequestRepository
	now      Clock
}

func NewTenantService(store *repositories.Store, now Clock) *TenantService {
	return &TenantService{
		tx:       store.Tx,
		units:    store.Units,
		tenants:  store.Tenants,
		requests: store.Requests,
		now:      now,
	}
}

func (s *TenantService) Create(ctx context.Context, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	var created *models.Tenant
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if req.UnitID != nil {
			if err := s.requireUnit(ctx, *req.UnitID); err != nil {
				return err
			}
		}
		if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
			return err
		}

		now := s.now()
		t := &models.Tenant{
			ID:               uuid.New(),
			UnitID:           req.UnitID,
			FullName:         req.FullName,
			Email:            strings.TrimSpace(req.Email),
			Phone:            req.Phone,
			MoveInDate:       req.MoveInDate,
			MoveOutDate:      req.MoveOutDate,
			LeaseStartDate:   req.LeaseStartDate,
			LeaseEndDate:     req.LeaseEndDate,
			EmergencyContact: emergencyContactFromDTO(req.EmergencyContact),
			Active:           true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if req.Active != nil {
			t.Active = *req.Active
		}
		if err := s.tenants.Create(ctx, t); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.NewValidationError(msgEmailRegistered)
			}
			return mapStoreError(err, "Tenant", "create")
		}
		created = t
		return nil
	})
	return created, err
}

func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Tenant", "fetch")
	}
	if t == nil {
		return nil, notFound("Tenant")
	}
	return t, nil
}

func (s *TenantService) List(ctx context.Context, f repositories.TenantFilter) ([]*models.Tenant, error) {
	list, err := s.tenants.List(ctx, f)
	if err != nil {
		return nil, mapStoreError(err, "Tenant", "list")
	}
	return list, nil
}

func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateTenantRequest) (*models.Tenant, error) {
	if req.IsEmpty() {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, utils.NewValidationError("No fields to update")
	}

	var updated *models.Tenant
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		if req.UnitID != nil {
			if err := s.requireUnit(ctx, *req.UnitID); err != nil {
				return err
			}
		}
		if req.Email != nil {
			if err := s.ensureEmailFree(ctx, *req.Email, id); err != nil {
				return err
			}
		}
		return s.tenants.UpdateWithRetry(ctx, id, func(t *models.Tenant) error {
			if req.UnitID != nil {
				t.UnitID = req.UnitID
			}
			if req.FullName != nil {
				t.FullName = *req.FullName
			}
			if req.Email != nil {
				t.Email = strings.TrimSpace(*req.Email)
			}
			if req.Phone != nil {
				t.Phone = req.Phone
			}
			if req.MoveInDate != nil {
				t.MoveInDate = req.MoveInDate
			}
			if req.MoveOutDate != nil {
				t.MoveOutDate = req.MoveOutDate
			}
			if req.LeaseStartDate != nil {
				t.LeaseStartDate = req.LeaseStartDate
			}
			if req.LeaseEndDate != nil {
				t.LeaseEndDate = req.LeaseEndDate
			}
			if req.EmergencyContact != nil {
				t.EmergencyContact = emergencyContactFromDTO(req.EmergencyContact)
			}
			if req.Active != nil {
				t.Active = *req.Active
			}
			t.UpdatedAt = s.now()
			updated = t
			return nil
		})
	})
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewValidationError(msgEmailRegistered)
		}
		return nil, mapStoreError(err, "Tenant", "update")
	}
	return updated, nil
}

// Delete refuses while the tenant has maintenance requests on record.
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		n, err := s.requests.CountByTenantID(ctx, id)
		if err != nil {
			return mapStoreError(err, "Tenant", "delete")
		}
		if n > 0 {
			return utils.NewConflictError(fmt.Sprintf("Cannot delete tenant with %d associated requests", n))
		}
		return mapStoreError(s.tenants.Delete(ctx, id), "Tenant", "delete")
	})
}

func (s *TenantService) requireUnit(ctx context.Context, id uuid.UUID) error {
	u, err := s.units.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "Unit", "fetch")
	}
	if u == nil {
		return utils.NewValidationError("Unit not found")
	}
	return nil
}

// ensureEmailFree ignores a match on self so a tenant can resubmit its own
// address.
func (s *TenantService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.tenants.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return mapStoreError(err, "Tenant", "fetch")
	}
	if existing != nil && existing.ID != self {
		return utils.NewValidationError(msgEmailRegistered)
	}
	return nil
}

func emergencyContactFromDTO(d *dtos.EmergencyContactDTO) *models.EmergencyContact {
	if d == nil {
		return nil
	}
	return &models.EmergencyContact{Name: d.Name, Phone: d.Phone, Relationship: d.Relationship}
}
