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

type BuildingService struct {
	tx        repositories.Transactor
	buildings repositories.BuildingRepository
	units     repositories.UnitRepository
	now       Clock
}

func NewBuildingService(store *repositories.Store, now Clock) *BuildingService {
	return &BuildingService{
		tx:        store.Tx,
		buildings: store.Buildings,
		units:     store.Units,
		now:       now,
	}
}

func (s *BuildingService) Create(ctx context.Context, req dtos.CreateBuildingRequest) (*models.Building, error) {
	now := s.now()
	b := &models.Building{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         models.DefaultBuildingCity,
		State:        models.DefaultBuildingState,
		ZipCode:      req.ZipCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.City != nil {
		b.City = *req.City
	}
	if req.State != nil {
		b.State = *req.State
	}
	if err := s.buildings.Create(ctx, b); err != nil {
		return nil, mapStoreError(err, "Building", "create")
	}
	return b, nil
}

func (s *BuildingService) Get(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Building", "fetch")
	}
	if b == nil {
		return nil, notFound("Building")
	}
	return b, nil
}

func (s *BuildingService) List(ctx context.Context, opts repositories.ListOptions) ([]*models.Building, error) {
	list, err := s.buildings.List(ctx, opts)
	if err != nil {
		return nil, mapStoreError(err, "Building", "list")
	}
	return list, nil
}

// Update applies the non-nil fields. An empty payload is rejected once the
// building is known to exist.
func (s *BuildingService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateBuildingRequest) (*models.Building, error) {
	if req.IsEmpty() {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, utils.NewValidationError("No fields to update")
	}

	var updated *models.Building
	err := s.buildings.UpdateWithRetry(ctx, id, func(b *models.Building) error {
		if req.Name != nil {
			b.Name = *req.Name
		}
		if req.Address != nil {
			b.Address = *req.Address
		}
		if req.Neighborhood != nil {
			b.Neighborhood = req.Neighborhood
		}
		if req.City != nil {
			b.City = *req.City
		}
		if req.State != nil {
			b.State = *req.State
		}
		if req.ZipCode != nil {
			b.ZipCode = req.ZipCode
		}
		b.UpdatedAt = s.now()
		updated = b
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "Building", "update")
	}
	return updated, nil
}

// Delete refuses while units still reference the building.
func (s *BuildingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		n, err := s.units.CountByBuildingID(ctx, id)
		if err != nil {
			return mapStoreError(err, "Building", "delete")
		}
		if n > 0 {
			return utils.NewConflictError(fmt.Sprintf("Cannot delete building with %d associated units", n))
		}
		return mapStoreError(s.buildings.Delete(ctx, id), "Building", "delete")
	})
}
