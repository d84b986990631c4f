package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const msgDuplicateUnitNumber = "Unit number already exists in this building"

type UnitService struct {
	tx        repositories.Transactor
	buildings repositories.BuildingRepository
	units     repositories.UnitRepository
	tenants   repositories.TenantRepository
	now       Clock
}

func NewUnitService(store *repositories.Store, now Clock) *UnitService {
	return &UnitService{
		tx:        store.Tx,
		buildings: store.Buildings,
		units:     store.Units,
		tenants:   store.Tenants,
		now:       now,
	}
}

func (s *UnitService) Create(ctx context.Context, req dtos.CreateUnitRequest) (*models.Unit, error) {
	var created *models.Unit
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireBuilding(ctx, req.BuildingID); err != nil {
			return err
		}
		existing, err := s.units.FindByBuildingAndNumber(ctx, req.BuildingID, req.UnitNumber)
		if err != nil {
			return mapStoreError(err, "Unit", "create")
		}
		if existing != nil {
			return utils.NewValidationError(msgDuplicateUnitNumber)
		}

		now := s.now()
		u := &models.Unit{
			ID:         uuid.New(),
			BuildingID: req.BuildingID,
			UnitNumber: req.UnitNumber,
			Floor:      req.Floor,
			Bedrooms:   req.Bedrooms,
			Bathrooms:  req.Bathrooms,
			SquareFeet: req.SquareFeet,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.units.Create(ctx, u); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.NewValidationError(msgDuplicateUnitNumber)
			}
			return mapStoreError(err, "Unit", "create")
		}
		created = u
		return nil
	})
	return created, err
}

func (s *UnitService) Get(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	u, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Unit", "fetch")
	}
	if u == nil {
		return nil, notFound("Unit")
	}
	return u, nil
}

func (s *UnitService) List(ctx context.Context, f repositories.UnitFilter) ([]*models.Unit, error) {
	list, err := s.units.List(ctx, f)
	if err != nil {
		return nil, mapStoreError(err, "Unit", "list")
	}
	return list, nil
}

func (s *UnitService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateUnitRequest) (*models.Unit, error) {
	if req.IsEmpty() {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, utils.NewValidationError("No fields to update")
	}

	var updated *models.Unit
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		if req.BuildingID != nil {
			if err := s.requireBuilding(ctx, *req.BuildingID); err != nil {
				return err
			}
		}
		return s.units.UpdateWithRetry(ctx, id, func(u *models.Unit) error {
			if req.BuildingID != nil {
				u.BuildingID = *req.BuildingID
			}
			if req.UnitNumber != nil {
				u.UnitNumber = *req.UnitNumber
			}
			if req.BuildingID != nil || req.UnitNumber != nil {
				clash, err := s.units.FindByBuildingAndNumber(ctx, u.BuildingID, u.UnitNumber)
				if err != nil {
					return err
				}
				if clash != nil && clash.ID != u.ID {
					return utils.NewValidationError(msgDuplicateUnitNumber)
				}
			}
			if req.Floor != nil {
				u.Floor = req.Floor
			}
			if req.Bedrooms != nil {
				u.Bedrooms = req.Bedrooms
			}
			if req.Bathrooms != nil {
				u.Bathrooms = req.Bathrooms
			}
			if req.SquareFeet != nil {
				u.SquareFeet = req.SquareFeet
			}
			u.UpdatedAt = s.now()
			updated = u
			return nil
		})
	})
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewValidationError(msgDuplicateUnitNumber)
		}
		return nil, mapStoreError(err, "Unit", "update")
	}
	return updated, nil
}

// Delete refuses while tenants still live in the unit.
func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		n, err := s.tenants.CountByUnitID(ctx, id)
		if err != nil {
			return mapStoreError(err, "Unit", "delete")
		}
		if n > 0 {
			return utils.NewConflictError(fmt.Sprintf("Cannot delete unit with %d associated tenants", n))
		}
		return mapStoreError(s.units.Delete(ctx, id), "Unit", "delete")
	})
}

func (s *UnitService) requireBuilding(ctx context.Context, id uuid.UUID) error {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "Building", "fetch")
	}
	if b == nil {
		return utils.NewValidationError("Building not found")
	}
	return nil
}
