package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBuildingCity  = "Boston"
	DefaultBuildingState = "MA"
)

// Building owns zero or more Units.
type Building struct {
	Versioned

	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Neighborhood *string   `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      *string   `json:"zip_code"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Building) GetID() string {
	return b.ID.String()
}
