package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

// MetricsRepository exposes read-only aggregates over requests. Grouped
// results are ordered by count descending, ties by key ascending.
type MetricsRepository interface {
	StatusCounts(ctx context.Context) ([]models.StatusCount, error)
	PriorityCounts(ctx context.Context) ([]models.PriorityCount, error)
	IssueTypeCounts(ctx context.Context, limit int) ([]models.IssueTypeCount, error)
	ResolutionSummary(ctx context.Context) (models.ResolutionSummary, error)
	DailyCounts(ctx context.Context, since time.Time) ([]models.DailyCount, error)
	BuildingPerformance(ctx context.Context) ([]models.BuildingPerformance, error)
	StaffPerformance(ctx context.Context) ([]models.StaffPerformance, error)
}

type metricsRepo struct {
	db DB
}

func NewMetricsRepository(db DB) MetricsRepository {
	return &metricsRepo{db: db}
}

func (r *metricsRepo) StatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT status, COUNT(*) FROM requests
		GROUP BY status ORDER BY COUNT(*) DESC, status`)
	if err != nil {
		return nil, errors.Wrap(err, "status counts")
	}
	defer rows.Close()

	out := []models.StatusCount{}
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *metricsRepo) PriorityCounts(ctx context.Context) ([]models.PriorityCount, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT priority, COUNT(*) FROM requests
		GROUP BY priority ORDER BY COUNT(*) DESC, priority`)
	if err != nil {
		return nil, errors.Wrap(err, "priority counts")
	}
	defer rows.Close()

	out := []models.PriorityCount{}
	for rows.Next() {
		var c models.PriorityCount
		if err := rows.Scan(&c.Priority, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *metricsRepo) IssueTypeCounts(ctx context.Context, limit int) ([]models.IssueTypeCount, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT issue_type, COUNT(*) FROM requests
		GROUP BY issue_type ORDER BY COUNT(*) DESC, issue_type
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "issue type counts")
	}
	defer rows.Close()

	out := []models.IssueTypeCount{}
	for rows.Next() {
		var c models.IssueTypeCount
		if err := rows.Scan(&c.IssueType, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *metricsRepo) ResolutionSummary(ctx context.Context) (models.ResolutionSummary, error) {
	var s models.ResolutionSummary
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(EXTRACT(EPOCH FROM (closed_at - created_at)) / 3600), 0)::float8,
			COUNT(*) FILTER (WHERE EXTRACT(EPOCH FROM (closed_at - created_at)) / 3600 > target_sla_hours)
		FROM requests
		WHERE status IN ('COMPLETED', 'CLOSED') AND closed_at IS NOT NULL`,
	).Scan(&s.ResolvedCount, &s.AverageHours, &s.SLABreachCount)
	return s, errors.Wrap(err, "resolution summary")
}

func (r *metricsRepo) DailyCounts(ctx context.Context, since time.Time) ([]models.DailyCount, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT to_char((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM requests
		WHERE created_at >= $1
		GROUP BY day ORDER BY day`, since)
	if err != nil {
		return nil, errors.Wrap(err, "daily counts")
	}
	defer rows.Close()

	out := []models.DailyCount{}
	for rows.Next() {
		var c models.DailyCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// BuildingPerformance skips requests whose building no longer exists.
// PENDING requests count toward the total only.
func (r *metricsRepo) BuildingPerformance(ctx context.Context) ([]models.BuildingPerformance, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT b.id, b.name, COUNT(*),
			COUNT(*) FILTER (WHERE r.status IN ('OPEN', 'IN_PROGRESS')),
			COUNT(*) FILTER (WHERE r.status IN ('COMPLETED', 'CLOSED'))
		FROM requests r
		JOIN buildings b ON b.id = r.building_id
		GROUP BY b.id, b.name
		ORDER BY COUNT(*) DESC, b.name, b.id`)
	if err != nil {
		return nil, errors.Wrap(err, "building performance")
	}
	defer rows.Close()

	out := []models.BuildingPerformance{}
	for rows.Next() {
		var p models.BuildingPerformance
		if err := rows.Scan(&p.BuildingID, &p.BuildingName, &p.TotalRequests, &p.OpenRequests, &p.ClosedRequests); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *metricsRepo) StaffPerformance(ctx context.Context) ([]models.StaffPerformance, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT a.staff_id,
			COALESCE(s.full_name, $1), COALESCE(s.role, $1),
			COUNT(*),
			COUNT(*) FILTER (WHERE a.completed_at IS NOT NULL),
			COUNT(*) FILTER (WHERE a.completed_at IS NULL)
		FROM request_assignments a
		LEFT JOIN staff s ON s.id = a.staff_id
		GROUP BY a.staff_id, s.full_name, s.role
		ORDER BY COUNT(*) DESC, a.staff_id`, models.UnknownStaffLabel)
	if err != nil {
		return nil, errors.Wrap(err, "staff performance")
	}
	defer rows.Close()

	out := []models.StaffPerformance{}
	for rows.Next() {
		var p models.StaffPerformance
		if err := rows.Scan(
			&p.StaffID, &p.StaffName, &p.StaffRole,
			&p.TotalAssignments, &p.CompletedAssignments, &p.ActiveAssignments,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
