package dtos

import (
	"time"

	"github.com/google/uuid"
)

/* ---------- buildings ---------- */

type CreateBuildingRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Address      string  `json:"address" validate:"required"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=50"`
	ZipCode      *string `json:"zip_code" validate:"omitempty,max=20"`
}

type UpdateBuildingRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=200"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=50"`
	ZipCode      *string `json:"zip_code" validate:"omitempty,max=20"`
}

func (r UpdateBuildingRequest) IsEmpty() bool {
	return r.Name == nil && r.Address == nil && r.Neighborhood == nil &&
		r.City == nil && r.State == nil && r.ZipCode == nil
}

/* ---------- units ---------- */

type CreateUnitRequest struct {
	BuildingID uuid.UUID `json:"building_id" validate:"required"`
	UnitNumber string    `json:"unit_number" validate:"required,max=50"`
	Floor      *int      `json:"floor"`
	Bedrooms   *int      `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms  *int      `json:"bathrooms" validate:"omitempty,gte=0"`
	SquareFeet *int      `json:"square_feet" validate:"omitempty,gte=0"`
}

type UpdateUnitRequest struct {
	BuildingID *uuid.UUID `json:"building_id"`
	UnitNumber *string    `json:"unit_number" validate:"omitempty,max=50"`
	Floor      *int       `json:"floor"`
	Bedrooms   *int       `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms  *int       `json:"bathrooms" validate:"omitempty,gte=0"`
	SquareFeet *int       `json:"square_feet" validate:"omitempty,gte=0"`
}

func (r UpdateUnitRequest) IsEmpty() bool {
	return r.BuildingID == nil && r.UnitNumber == nil && r.Floor == nil &&
		r.Bedrooms == nil && r.Bathrooms == nil && r.SquareFeet == nil
}

/* ---------- tenants ---------- */

type EmergencyContactDTO struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
}

type CreateTenantRequest struct {
	UnitID           *uuid.UUID           `json:"unit_id"`
	FullName         string               `json:"full_name" validate:"required,max=200"`
	Email            string               `json:"email" validate:"required,email"`
	Phone            *string              `json:"phone" validate:"omitempty,max=50"`
	MoveInDate       *time.Time           `json:"move_in_date"`
	MoveOutDate      *time.Time           `json:"move_out_date"`
	LeaseStartDate   *time.Time           `json:"lease_start_date"`
	LeaseEndDate     *time.Time           `json:"lease_end_date"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact"`
	Active           *bool                `json:"active"`
}

type UpdateTenantRequest struct {
	UnitID           *uuid.UUID           `json:"unit_id"`
	FullName         *string              `json:"full_name" validate:"omitempty,max=200"`
	Email            *string              `json:"email" validate:"omitempty,email"`
	Phone            *string              `json:"phone" validate:"omitempty,max=50"`
	MoveInDate       *time.Time           `json:"move_in_date"`
	MoveOutDate      *time.Time           `json:"move_out_date"`
	LeaseStartDate   *time.Time           `json:"lease_start_date"`
	LeaseEndDate     *time.Time           `json:"lease_end_date"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact"`
	Active           *bool                `json:"active"`
}

func (r UpdateTenantRequest) IsEmpty() bool {
	return r.UnitID == nil && r.FullName == nil && r.Email == nil && r.Phone == nil &&
		r.MoveInDate == nil && r.MoveOutDate == nil && r.LeaseStartDate == nil &&
		r.LeaseEndDate == nil && r.EmergencyContact == nil && r.Active == nil
}

/* ---------- staff ---------- */

type CreateStaffRequest struct {
	FullName    string     `json:"full_name" validate:"required,max=200"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       *string    `json:"phone" validate:"omitempty,max=50"`
	Role        string     `json:"role" validate:"required,max=100"`
	Specialties []string   `json:"specialties" validate:"omitempty,dive,required"`
	HireDate    *time.Time `json:"hire_date"`
	Active      *bool      `json:"active"`
}

type UpdateStaffRequest struct {
	FullName    *string    `json:"full_name" validate:"omitempty,max=200"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Phone       *string    `json:"phone" validate:"omitempty,max=50"`
	Role        *string    `json:"role" validate:"omitempty,max=100"`
	Specialties []string   `json:"specialties" validate:"omitempty,dive,required"`
	HireDate    *time.Time `json:"hire_date"`
	Active      *bool      `json:"active"`
}

func (r UpdateStaffRequest) IsEmpty() bool {
	return r.FullName == nil && r.Email == nil && r.Phone == nil && r.Role == nil &&
		r.Specialties == nil && r.HireDate == nil && r.Active == nil
}
