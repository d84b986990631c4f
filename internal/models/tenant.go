package models

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Tenant struct {
	Versioned

	ID               uuid.UUID         `json:"id"`
	UnitID           *uuid.UUID        `json:"unit_id"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	Phone            *string           `json:"phone"`
	MoveInDate       *time.Time        `json:"move_in_date"`
	MoveOutDate      *time.Time        `json:"move_out_date"`
	LeaseStartDate   *time.Time        `json:"lease_start_date"`
	LeaseEndDate     *time.Time        `json:"lease_end_date"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
	Active           bool              `json:"active"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (t *Tenant) GetID() string {
	return t.ID.String()
}
