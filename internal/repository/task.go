package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/telfield/telfield/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "org_id", "project_id", "code", "name", "station_number",
	"station_address", "description", "status", "priority", "due_date",
	"points", "latitude", "longitude", "total_cost",
	"executor_id", "executor_name", "executor_email",
	"created_at", "updated_at",
}

// fieldColumns maps diffable field names to their table columns.
var fieldColumns = map[domain.Field]string{
	domain.FieldName:           "name",
	domain.FieldStationNumber:  "station_number",
	domain.FieldStationAddress: "station_address",
	domain.FieldDescription:    "description",
	domain.FieldStatus:         "status",
	domain.FieldPriority:       "priority",
	domain.FieldDueDate:        "due_date",
	domain.FieldPoints:         "points",
	domain.FieldLatitude:       "latitude",
	domain.FieldLongitude:      "longitude",
	domain.FieldTotalCost:      "total_cost",
	domain.FieldExecutorID:     "executor_id",
	domain.FieldExecutorName:   "executor_name",
	domain.FieldExecutorEmail:  "executor_email",
}

// TaskRepository handles database operations for tasks and their event log.
type TaskRepository struct {
	pool   *pgxpool.Pool
	events *TaskEventRepository
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		pool:   pool,
		events: NewTaskEventRepository(pool),
	}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var pointsJSON []byte
	err := row.Scan(
		&task.ID,
		&task.OrgID,
		&task.ProjectID,
		&task.Code,
		&task.Name,
		&task.StationNumber,
		&task.StationAddress,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&pointsJSON,
		&task.Latitude,
		&task.Longitude,
		&task.TotalCost,
		&task.ExecutorID,
		&task.ExecutorName,
		&task.ExecutorEmail,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	if len(pointsJSON) > 0 {
		if err := json.Unmarshal(pointsJSON, &task.Points); err != nil {
			return nil, fmt.Errorf("parse points: %w", err)
		}
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByRef resolves a task within a project: primary id first, then the
// human-facing short code.
func (r *TaskRepository) GetByRef(ctx context.Context, projectID, ref string) (*domain.Task, error) {
	if _, err := uuid.Parse(ref); err == nil {
		task, err := r.getWhere(ctx, sq.Eq{"project_id": projectID, "id": ref})
		if err == nil || !errors.Is(err, domain.ErrTaskNotFound) {
			return task, err
		}
	}
	return r.getWhere(ctx, sq.Eq{"project_id": projectID, "code": ref})
}

func (r *TaskRepository) getWhere(ctx context.Context, where sq.Eq) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task query: %w", err)
	}
	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// Create inserts the task and its seed event in one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task, seed *domain.TaskEvent) (*domain.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	pointsJSON, err := json.Marshal(normalizedPoints(task.Points))
	if err != nil {
		return nil, fmt.Errorf("marshal points: %w", err)
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"org_id", "project_id", "code", "name", "station_number",
			"station_address", "description", "status", "priority", "due_date",
			"points", "latitude", "longitude", "total_cost",
			"created_at", "updated_at",
		).
		Values(
			task.OrgID, task.ProjectID, task.Code, task.Name, task.StationNumber,
			task.StationAddress, task.Description, task.Status, task.Priority, task.DueDate,
			pointsJSON, task.Latitude, task.Longitude, task.TotalCost,
			task.CreatedAt, task.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&task.ID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	seed.TaskID = task.ID
	if err := r.events.Create(ctx, tx, seed); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return task, nil
}

// clearValues maps fields whose columns are NOT NULL to the stored
// representation of "cleared". Everything else clears to NULL. The domain
// model reads these empties back as nil (Task.FieldValue), so both
// representations diff the same.
var clearValues = map[domain.Field]any{
	domain.FieldDescription: "",
	domain.FieldStatus:      "",
	domain.FieldPriority:    "",
	domain.FieldPoints:      []byte("[]"),
}

// buildTaskUpdate compiles the set/clear halves of an UpdateSpec into one
// UPDATE statement. The spec's shared timestamp becomes the row's updated_at
// so the record never drifts from the events written with it.
func buildTaskUpdate(taskID string, upd domain.UpdateSpec) (string, []any, error) {
	updatedAt := any(upd.UpdatedAt)
	if upd.UpdatedAt.IsZero() {
		updatedAt = sq.Expr("NOW()")
	}

	qb := psql.Update("tasks").
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": taskID})

	for f, v := range upd.Set {
		column, ok := fieldColumns[f]
		if !ok {
			return "", nil, fmt.Errorf("unknown task field %q", f)
		}
		if f == domain.FieldPoints {
			pointsJSON, err := json.Marshal(normalizedPoints(pointsValue(v)))
			if err != nil {
				return "", nil, fmt.Errorf("marshal points: %w", err)
			}
			qb = qb.Set(column, pointsJSON)
			continue
		}
		qb = qb.Set(column, v)
	}
	for _, f := range upd.Clear {
		column, ok := fieldColumns[f]
		if !ok {
			return "", nil, fmt.Errorf("unknown task field %q", f)
		}
		if empty, ok := clearValues[f]; ok {
			qb = qb.Set(column, empty)
			continue
		}
		qb = qb.Set(column, nil)
	}

	return qb.ToSql()
}

// ApplyUpdate compiles the three-part write request into a single
// transaction: one UPDATE for sets and clears, one INSERT per appended event.
// Callers rely on this being atomic.
func (r *TaskRepository) ApplyUpdate(ctx context.Context, taskID string, upd domain.UpdateSpec) error {
	if upd.IsEmpty() {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if len(upd.Set) > 0 || len(upd.Clear) > 0 {
		query, args, err := buildTaskUpdate(taskID, upd)
		if err != nil {
			return fmt.Errorf("build ApplyUpdate query for task %s: %w", taskID, err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTaskNotFound
		}
	}

	for _, event := range upd.Events {
		event.TaskID = taskID
		if err := r.events.Create(ctx, tx, event); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Events returns the task's full event log in insertion order.
func (r *TaskRepository) Events(ctx context.Context, taskID string) ([]*domain.TaskEvent, error) {
	return r.events.GetByTaskID(ctx, taskID)
}

func pointsValue(v any) []domain.LocationPoint {
	pts, _ := v.([]domain.LocationPoint)
	return pts
}

// normalizedPoints keeps the stored list non-null and free of nil slices.
func normalizedPoints(pts []domain.LocationPoint) []domain.LocationPoint {
	if pts == nil {
		return []domain.LocationPoint{}
	}
	return pts
}
