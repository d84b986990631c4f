package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

type metricsRepo struct {
	s *Store
}

type keyCount[K ~string] struct {
	key   K
	count int
}

// countBy tallies requests by key, count descending then key ascending.
func countBy[K ~string](reqs []models.Request, key func(models.Request) K) []keyCount[K] {
	counts := map[K]int{}
	for _, r := range reqs {
		counts[key(r)]++
	}
	out := make([]keyCount[K], 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount[K]{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func (r *metricsRepo) requests(ctx context.Context) ([]models.Request, error) {
	var out []models.Request
	err := r.s.read(ctx, func(st *state) error {
		out = st.requests.all()
		return nil
	})
	return out, err
}

func (r *metricsRepo) StatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	reqs, err := r.requests(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.StatusCount{}
	for _, kc := range countBy(reqs, func(r models.Request) models.RequestStatus { return r.Status }) {
		out = append(out, models.StatusCount{Status: kc.key, Count: kc.count})
	}
	return out, nil
}

func (r *metricsRepo) PriorityCounts(ctx context.Context) ([]models.PriorityCount, error) {
	reqs, err := r.requests(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.PriorityCount{}
	for _, kc := range countBy(reqs, func(r models.Request) models.Priority { return r.Priority }) {
		out = append(out, models.PriorityCount{Priority: kc.key, Count: kc.count})
	}
	return out, nil
}

func (r *metricsRepo) IssueTypeCounts(ctx context.Context, limit int) ([]models.IssueTypeCount, error) {
	reqs, err := r.requests(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.IssueTypeCount{}
	for _, kc := range countBy(reqs, func(r models.Request) models.IssueType { return r.IssueType }) {
		if len(out) == limit {
			break
		}
		out = append(out, models.IssueTypeCount{IssueType: kc.key, Count: kc.count})
	}
	return out, nil
}

func (r *metricsRepo) ResolutionSummary(ctx context.Context) (models.ResolutionSummary, error) {
	var s models.ResolutionSummary
	reqs, err := r.requests(ctx)
	if err != nil {
		return s, err
	}
	total := 0.0
	for i := range reqs {
		h, ok := reqs[i].ResolutionHours()
		if !ok {
			continue
		}
		s.ResolvedCount++
		total += h
		if reqs[i].BreachedSLA() {
			s.SLABreachCount++
		}
	}
	if s.ResolvedCount > 0 {
		s.AverageHours = total / float64(s.ResolvedCount)
	}
	return s, nil
}

func (r *metricsRepo) DailyCounts(ctx context.Context, since time.Time) ([]models.DailyCount, error) {
	reqs, err := r.requests(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, req := range reqs {
		if req.CreatedAt.Before(since) {
			continue
		}
		counts[req.CreatedAt.UTC().Format(time.DateOnly)]++
	}
	out := make([]models.DailyCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, models.DailyCount{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *metricsRepo) BuildingPerformance(ctx context.Context) ([]models.BuildingPerformance, error) {
	out := []models.BuildingPerformance{}
	err := r.s.read(ctx, func(st *state) error {
		perf := map[uuid.UUID]*models.BuildingPerformance{}
		for _, req := range st.requests.all() {
			b, ok := st.buildings.get(req.BuildingID)
			if !ok {
				continue
			}
			p := perf[b.ID]
			if p == nil {
				p = &models.BuildingPerformance{BuildingID: b.ID, BuildingName: b.Name}
				perf[b.ID] = p
			}
			p.TotalRequests++
			switch req.Status {
			case models.RequestStatusCompleted, models.RequestStatusClosed:
				p.ClosedRequests++
			case models.RequestStatusOpen, models.RequestStatusInProgress:
				p.OpenRequests++
			}
		}
		for _, p := range perf {
			out = append(out, *p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRequests != out[j].TotalRequests {
			return out[i].TotalRequests > out[j].TotalRequests
		}
		if out[i].BuildingName != out[j].BuildingName {
			return out[i].BuildingName < out[j].BuildingName
		}
		return out[i].BuildingID.String() < out[j].BuildingID.String()
	})
	return out, err
}

func (r *metricsRepo) StaffPerformance(ctx context.Context) ([]models.StaffPerformance, error) {
	out := []models.StaffPerformance{}
	err := r.s.read(ctx, func(st *state) error {
		perf := map[uuid.UUID]*models.StaffPerformance{}
		for _, list := range st.assignments {
			for _, a := range list {
				p := perf[a.StaffID]
				if p == nil {
					p = &models.StaffPerformance{
						StaffID:   a.StaffID,
						StaffName: models.UnknownStaffLabel,
						StaffRole: models.UnknownStaffLabel,
					}
					if s, ok := st.staff.get(a.StaffID); ok {
						p.StaffName, p.StaffRole = s.FullName, s.Role
					}
					perf[a.StaffID] = p
				}
				p.TotalAssignments++
				if a.IsActive() {
					p.ActiveAssignments++
				} else {
					p.CompletedAssignments++
				}
			}
		}
		for _, p := range perf {
			out = append(out, *p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAssignments != out[j].TotalAssignments {
			return out[i].TotalAssignments > out[j].TotalAssignments
		}
		return out[i].StaffID.String() < out[j].StaffID.String()
	})
	return out, err
}
