package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/telfield/telfield/internal/domain"
)

// TaskListFilters holds all supported filters for task listing.
type TaskListFilters struct {
	ProjectID  string   // Required: filter by project
	Statuses   []string // Optional: filter by status
	ExecutorID *string  // Optional: filter by executor
	Unassigned bool     // Optional: show only tasks without an executor
	Priorities []string // Optional: filter by priority
	Overdue    bool     // Optional: show only tasks past their due date
	Sort       []string // Optional: sort fields (with - prefix for DESC)
	Limit      int      // Required: page size
	Offset     int      // Required: page offset
}

// priorityOrder ranks priorities for sorting, most urgent first.
const priorityOrder = "CASE priority WHEN 'critical' THEN 1 WHEN 'high' THEN 2 WHEN 'normal' THEN 3 WHEN 'low' THEN 4 END"

// sortColumns is the allow-list of sortable columns; anything else in the
// sort parameter is ignored.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"name":       "name",
	"status":     "status",
	"code":       "code",
	"priority":   priorityOrder,
}

// List retrieves tasks with filters and pagination.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, int, error) {
	qb := psql.Select(taskColumns...).From("tasks").
		Where(sq.Eq{"project_id": filters.ProjectID})
	qb = applyTaskFilters(qb, filters)

	// Default sort: most urgent first, then oldest first.
	sorted := false
	for _, sort := range filters.Sort {
		field, dir := sort, "ASC"
		if strings.HasPrefix(sort, "-") {
			field, dir = sort[1:], "DESC"
		}
		column, ok := sortColumns[field]
		if !ok {
			continue
		}
		qb = qb.OrderBy(column + " " + dir)
		sorted = true
	}
	if !sorted {
		qb = qb.OrderBy(priorityOrder + " ASC").OrderBy("created_at ASC")
	}

	qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	// Total count without pagination.
	countQb := psql.Select("COUNT(*)").From("tasks").
		Where(sq.Eq{"project_id": filters.ProjectID})
	countQb = applyTaskFilters(countQb, filters)

	countQuery, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}

func applyTaskFilters(qb sq.SelectBuilder, filters TaskListFilters) sq.SelectBuilder {
	if len(filters.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": filters.Statuses})
	}
	if filters.Unassigned {
		qb = qb.Where(sq.Eq{"executor_id": nil})
	} else if filters.ExecutorID != nil {
		qb = qb.Where(sq.Eq{"executor_id": *filters.ExecutorID})
	}
	if len(filters.Priorities) > 0 {
		qb = qb.Where(sq.Eq{"priority": filters.Priorities})
	}
	if filters.Overdue {
		qb = qb.Where("due_date < NOW()").Where(sq.NotEq{"status": string(domain.StatusDone)})
	}
	return qb
}
