package dtos

import (
	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

type LocationDetailsDTO struct {
	Neighborhood *string  `json:"neighborhood"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type CreateRequestRequest struct {
	ExternalID      *string               `json:"external_id" validate:"omitempty,max=100"`
	TenantID        uuid.UUID             `json:"tenant_id" validate:"required"`
	UnitID          uuid.UUID             `json:"unit_id" validate:"required"`
	BuildingID      uuid.UUID             `json:"building_id" validate:"required"`
	IssueType       models.IssueType      `json:"issue_type" validate:"required,issue_type"`
	Priority        models.Priority       `json:"priority" validate:"required,priority"`
	Description     string                `json:"description" validate:"required,max=2000"`
	Status          *models.RequestStatus `json:"status" validate:"omitempty,request_status"`
	TargetSLAHours  *int                  `json:"target_sla_hours" validate:"omitempty,gt=0"`
	LocationDetails *LocationDetailsDTO   `json:"location_details"`
}

// UpdateRequestRequest is the generic partial update. Setting a terminal
// status records closed_at once.
type UpdateRequestRequest struct {
	IssueType       *models.IssueType     `json:"issue_type" validate:"omitempty,issue_type"`
	Priority        *models.Priority      `json:"priority" validate:"omitempty,priority"`
	Description     *string               `json:"description" validate:"omitempty,max=2000"`
	Status          *models.RequestStatus `json:"status" validate:"omitempty,request_status"`
	TargetSLAHours  *int                  `json:"target_sla_hours" validate:"omitempty,gt=0"`
	ResolutionNotes *string               `json:"resolution_notes"`
}

func (r UpdateRequestRequest) IsEmpty() bool {
	return r.IssueType == nil && r.Priority == nil && r.Description == nil &&
		r.Status == nil && r.TargetSLAHours == nil && r.ResolutionNotes == nil
}

type AssignRequest struct {
	StaffID uuid.UUID `json:"staff_id" validate:"required"`
	Notes   *string   `json:"notes" validate:"omitempty,max=2000"`
}

type CompleteAssignmentRequest struct {
	StaffID uuid.UUID `json:"staff_id" validate:"required"`
}

type AddNoteRequest struct {
	AuthorType models.NoteAuthorType `json:"author_type" validate:"required,oneof=tenant staff"`
	AuthorID   string                `json:"author_id" validate:"required,max=100"`
	AuthorName string                `json:"author_name" validate:"required,max=200"`
	Body       string                `json:"body" validate:"required,max=2000"`
}
