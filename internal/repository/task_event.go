package repository

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/telfield/telfield/internal/domain"
)

// TaskEventRepository handles database operations for the append-only task
// event log. Events are only ever inserted, never updated or deleted.
type TaskEventRepository struct {
	pool *pgxpool.Pool
}

// NewTaskEventRepository creates a new TaskEventRepository.
func NewTaskEventRepository(pool *pgxpool.Pool) *TaskEventRepository {
	return &TaskEventRepository{pool: pool}
}

// Create appends a new task event within the given transaction. The caller
// supplies created_at so that events of one logical mutation share an exact
// timestamp.
func (r *TaskEventRepository) Create(ctx context.Context, tx pgx.Tx, event *domain.TaskEvent) error {
	details, err := domain.MarshalDetails(event.Details)
	if err != nil {
		return err
	}

	query, args, err := psql.
		Insert("task_events").
		Columns("task_id", "kind", "actor_id", "actor_name", "details", "created_at").
		Values(event.TaskID, event.EventKind(), event.ActorID, event.ActorName, details, event.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&event.ID); err != nil {
		return fmt.Errorf("create task event: %w", err)
	}

	return nil
}

// GetByTaskID retrieves all events for a task in insertion order. The seq
// column breaks ties between events sharing a timestamp.
func (r *TaskEventRepository) GetByTaskID(ctx context.Context, taskID string) ([]*domain.TaskEvent, error) {
	query, args, err := psql.
		Select("id", "task_id", "kind", "actor_id", "actor_name", "details", "created_at").
		From("task_events").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task events: %w", err)
	}
	defer rows.Close()

	var events []*domain.TaskEvent
	for rows.Next() {
		var event domain.TaskEvent
		var kind domain.EventKind
		var details []byte
		err := rows.Scan(
			&event.ID,
			&event.TaskID,
			&kind,
			&event.ActorID,
			&event.ActorName,
			&details,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task event: %w", err)
		}
		event.Details, err = domain.UnmarshalDetails(kind, details)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}

// rollback rolls a transaction back, tolerating an already-committed tx.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		slog.Error("failed to rollback transaction", "error", err)
	}
}
