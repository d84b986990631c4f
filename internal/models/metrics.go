package models

import "github.com/google/uuid"

type StatusCount struct {
	Status RequestStatus `json:"status"`
	Count  int           `json:"count"`
}

type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

type IssueTypeCount struct {
	IssueType IssueType `json:"issue_type"`
	Count     int       `json:"count"`
}

// DailyCount uses a YYYY-MM-DD date in UTC.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ResolutionSummary aggregates terminal requests that have closed_at set.
type ResolutionSummary struct {
	ResolvedCount  int
	AverageHours   float64
	SLABreachCount int
}

type BuildingPerformance struct {
	BuildingID     uuid.UUID `json:"_id"`
	BuildingName   string    `json:"building_name"`
	TotalRequests  int       `json:"total_requests"`
	OpenRequests   int       `json:"open_requests"`
	ClosedRequests int       `json:"closed_requests"`
}

type StaffPerformance struct {
	StaffID              uuid.UUID `json:"_id"`
	StaffName            string    `json:"staff_name"`
	StaffRole            string    `json:"staff_role"`
	TotalAssignments     int       `json:"total_assignments"`
	CompletedAssignments int       `json:"completed_assignments"`
	ActiveAssignments    int       `json:"active_assignments"`
}

const UnknownStaffLabel = "Unknown"
