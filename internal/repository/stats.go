package repository

import (
	"context"
	"fmt"

	"github.com/telfield/telfield/internal/domain"
)

// ProjectStatsResult holds aggregate task counts for one project.
type ProjectStatsResult struct {
	TotalTasks    int
	TasksByStatus map[string]int
	OverdueCount  int
	AssignedCount int
}

// GetProjectStats aggregates task counts for a project.
func (r *TaskRepository) GetProjectStats(ctx context.Context, projectID string) (*ProjectStatsResult, error) {
	query := `
		SELECT
			status,
			COUNT(*),
			COUNT(CASE WHEN due_date < NOW() AND status != $2 THEN 1 END),
			COUNT(CASE WHEN executor_id IS NOT NULL THEN 1 END)
		FROM tasks
		WHERE project_id = $1
		GROUP BY status
	`

	rows, err := r.pool.Query(ctx, query, projectID, string(domain.StatusDone))
	if err != nil {
		return nil, fmt.Errorf("query project stats: %w", err)
	}
	defer rows.Close()

	result := &ProjectStatsResult{TasksByStatus: make(map[string]int)}
	for rows.Next() {
		var status string
		var count, overdue, assigned int
		if err := rows.Scan(&status, &count, &overdue, &assigned); err != nil {
			return nil, fmt.Errorf("scan project stats: %w", err)
		}
		result.TasksByStatus[status] = count
		result.TotalTasks += count
		result.OverdueCount += overdue
		result.AssignedCount += assigned
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}
