package services

import (
	"context"
	"time"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/dtos"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const (
	topIssueTypes     = 5
	DefaultWindowDays = 30
)

// MetricsService computes read-only dashboards over requests.
type MetricsService struct {
	metrics repositories.MetricsRepository
	now     Clock
}

func NewMetricsService(store *repositories.Store, now Clock) *MetricsService {
	return &MetricsService{metrics: store.Metrics, now: now}
}

func (s *MetricsService) Overview(ctx context.Context) (*dtos.MetricsOverviewResponse, error) {
	counts, err := s.metrics.StatusCounts(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	summary, err := s.metrics.ResolutionSummary(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	top, err := s.metrics.IssueTypeCounts(ctx, topIssueTypes)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}

	out := &dtos.MetricsOverviewResponse{
		TopIssueTypes:  top,
		SLABreachCount: summary.SLABreachCount,
	}
	for _, c := range counts {
		if c.Status.IsTerminal() {
			out.TotalClosedRequests += c.Count
		} else {
			out.TotalOpenRequests += c.Count
		}
	}
	out.TotalRequests = out.TotalOpenRequests + out.TotalClosedRequests
	if summary.ResolvedCount > 0 {
		out.AverageResolutionTime = utils.Round2(summary.AverageHours)
	}
	if out.TotalRequests > 0 {
		out.CompletionRate = utils.Round2(float64(out.TotalClosedRequests) / float64(out.TotalRequests) * 100)
	}
	return out, nil
}

func (s *MetricsService) RequestsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	out, err := s.metrics.StatusCounts(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	return out, nil
}

func (s *MetricsService) RequestsByPriority(ctx context.Context) ([]models.PriorityCount, error) {
	out, err := s.metrics.PriorityCounts(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	return out, nil
}

// RequestsOverTime counts requests created in the trailing window of days,
// bucketed by UTC date.
func (s *MetricsService) RequestsOverTime(ctx context.Context, days int) ([]models.DailyCount, error) {
	if days < 1 {
		return nil, utils.NewValidationError("days must be at least 1")
	}
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	out, err := s.metrics.DailyCounts(ctx, since)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	return out, nil
}

func (s *MetricsService) BuildingPerformance(ctx context.Context) ([]models.BuildingPerformance, error) {
	out, err := s.metrics.BuildingPerformance(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	return out, nil
}

func (s *MetricsService) StaffPerformance(ctx context.Context) ([]models.StaffPerformance, error) {
	out, err := s.metrics.StaffPerformance(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to compute metrics", err)
	}
	return out, nil
}
