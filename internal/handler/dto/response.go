package dto

import (
	"time"

	"github.com/telfield/telfield/internal/domain"
	"github.com/telfield/telfield/internal/service"
)

// TaskDetail represents the canonical task record.
type TaskDetail struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"code"`
	OrgID          string                 `json:"org_id"`
	ProjectID      string                 `json:"project_id"`
	Name           string                 `json:"name"`
	StationNumber  string                 `json:"station_number"`
	StationAddress string                 `json:"station_address"`
	Description    string                 `json:"description,omitempty"`
	Status         string                 `json:"status"`
	Priority       string                 `json:"priority"`
	DueDate        *time.Time             `json:"due_date,omitempty"`
	Points         []domain.LocationPoint `json:"points,omitempty"`
	Latitude       *float64               `json:"latitude,omitempty"`
	Longitude      *float64               `json:"longitude,omitempty"`
	TotalCost      *float64               `json:"total_cost,omitempty"`
	ExecutorID     *string                `json:"executor_id,omitempty"`
	ExecutorName   *string                `json:"executor_name,omitempty"`
	ExecutorEmail  *string                `json:"executor_email,omitempty"`
	IsOverdue      bool                   `json:"is_overdue"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// TimelineEntry is one reconciled row of the task history.
type TimelineEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Details   any       `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDetailResponse represents full task details with the reconciled
// timeline.
type TaskDetailResponse struct {
	Task     TaskDetail      `json:"task"`
	Timeline []TimelineEntry `json:"timeline"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskDetail `json:"tasks"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// StatsResponse represents per-project task statistics.
type StatsResponse struct {
	ProjectID       string         `json:"project_id"`
	TotalTasks      int            `json:"total_tasks"`
	TasksByStatus   map[string]int `json:"tasks_by_status"`
	OverdueCount    int            `json:"overdue_count"`
	AssignedCount   int            `json:"assigned_count"`
	UnassignedCount int            `json:"unassigned_count"`
}

// ToTaskDetail converts domain.Task to TaskDetail.
func ToTaskDetail(task *domain.Task, now time.Time) TaskDetail {
	return TaskDetail{
		ID:             task.ID,
		Code:           task.Code,
		OrgID:          task.OrgID,
		ProjectID:      task.ProjectID,
		Name:           task.Name,
		StationNumber:  task.StationNumber,
		StationAddress: task.StationAddress,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		DueDate:        task.DueDate,
		Points:         task.Points,
		Latitude:       task.Latitude,
		Longitude:      task.Longitude,
		TotalCost:      task.TotalCost,
		ExecutorID:     task.ExecutorID,
		ExecutorName:   task.ExecutorName,
		ExecutorEmail:  task.ExecutorEmail,
		IsOverdue:      service.IsOverdue(task, now),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTimeline converts reconciled display events to response entries.
func ToTimeline(events []service.DisplayEvent) []TimelineEntry {
	timeline := make([]TimelineEntry, len(events))
	for i, ev := range events {
		timeline[i] = TimelineEntry{
			ID:        ev.ID,
			Title:     ev.Title,
			Kind:      string(ev.Kind),
			ActorID:   ev.ActorID,
			ActorName: ev.ActorName,
			Details:   ev.Details,
			CreatedAt: ev.CreatedAt,
		}
	}
	return timeline
}
