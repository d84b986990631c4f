package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is never physically removed; deleting a staff member clears Active so
// historical assignments keep resolving.
type Staff struct {
	Versioned

	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Role        string     `json:"role"`
	Specialties []string   `json:"specialties"`
	HireDate    *time.Time `json:"hire_date"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *Staff) GetID() string {
	return s.ID.String()
}
