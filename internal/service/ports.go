package service

import (
	"context"

	"github.com/telfield/telfield/internal/domain"
)

// TaskStore is the storage collaborator for tasks and their event log. The
// implementation must apply an UpdateSpec atomically: record fields and
// appended events either all land or none do.
type TaskStore interface {
	// GetByRef resolves a task within a project by primary id first, falling
	// back to the short code.
	GetByRef(ctx context.Context, projectID, ref string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task, seed *domain.TaskEvent) (*domain.Task, error)
	ApplyUpdate(ctx context.Context, taskID string, upd domain.UpdateSpec) error
	Events(ctx context.Context, taskID string) ([]*domain.TaskEvent, error)
}

// ProjectStore resolves the owning project, which carries the operator and
// region context for station lookups.
type ProjectStore interface {
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// StationDirectory is the external base-station registry. Lookup misses are
// reported as domain.ErrStationNotFound; upserts are best-effort from the
// caller's point of view.
type StationDirectory interface {
	FindByNumber(ctx context.Context, number, operator, region string) (*domain.Station, error)
	Upsert(ctx context.Context, station *domain.Station) error
}
