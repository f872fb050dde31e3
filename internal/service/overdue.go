package service

import (
	"time"

	"github.com/telfield/telfield/internal/domain"
)

// IsOverdue reports whether the task passed its due date without being
// completed.
func IsOverdue(task *domain.Task, now time.Time) bool {
	if task.DueDate == nil {
		return false
	}
	if task.Status == domain.StatusDone {
		return false
	}
	return task.DueDate.Before(now)
}
