package dtos

import "github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"

type MetricsOverviewResponse struct {
	TotalOpenRequests     int                     `json:"total_open_requests"`
	TotalClosedRequests   int                     `json:"total_closed_requests"`
	TotalRequests         int                     `json:"total_requests"`
	AverageResolutionTime float64                 `json:"average_resolution_time"`
	TopIssueTypes         []models.IssueTypeCount `json:"top_issue_types"`
	SLABreachCount        int                     `json:"sla_breach_count"`
	CompletionRate        float64                 `json:"completion_rate"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
