package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a rentable space inside a Building. UnitNumber is unique per
// building.
type Unit struct {
	Versioned

	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"building_id"`
	UnitNumber string    `json:"unit_number"`
	Floor      *int      `json:"floor"`
	Bedrooms   *int      `json:"bedrooms"`
	Bathrooms  *int      `json:"bathrooms"`
	SquareFeet *int      `json:"square_feet"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *Unit) GetID() string {
	return u.ID.String()
}
