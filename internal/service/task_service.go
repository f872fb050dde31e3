package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/telfield/telfield/internal/diff"
	"github.com/telfield/telfield/internal/domain"
)

// TaskService coordinates task mutations: status rules, diffing, audit events
// and the best-effort geo sync.
type TaskService struct {
	tasks    TaskStore
	projects ProjectStore
	geo      *geoSync
	now      func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore, projects ProjectStore, stations StationDirectory) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		geo:      &geoSync{stations: stations},
		now:      time.Now,
	}
}

// CreateTaskParams holds the explicit, closed set of creation fields.
// Unknown input never reaches storage.
type CreateTaskParams struct {
	Code           string
	Name           string
	StationNumber  string
	StationAddress string
	Description    string
	Status         string
	Priority       string
	DueDate        *time.Time
	Points         []domain.LocationPoint
	TotalCost      *float64
}

// CreateTask creates a work order, assigns its short code if the caller did
// not supply one, enriches the location from the station registry when the
// station is known, and seeds the audit log with a single "created" event.
func (s *TaskService) CreateTask(ctx context.Context, projectID string, actor Actor, p CreateTaskParams) (*domain.Task, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(p.Name)
	number := strings.TrimSpace(p.StationNumber)
	address := strings.TrimSpace(p.StationAddress)
	switch {
	case name == "":
		return nil, domain.ErrNameRequired
	case number == "":
		return nil, domain.ErrStationNumberRequired
	case address == "":
		return nil, domain.ErrStationAddressRequired
	}

	code := strings.TrimSpace(p.Code)
	if code == "" {
		code, err = domain.NewTaskCode()
		if err != nil {
			return nil, err
		}
	}

	status := domain.StatusToDo
	if strings.TrimSpace(p.Status) != "" {
		status = domain.NormalizeStatus(p.Status)
	}
	priority, ok := domain.NormalizePriority(p.Priority)
	if !ok {
		priority = domain.PriorityNormal
	}

	now := s.now()
	task := &domain.Task{
		OrgID:          project.OrgID,
		ProjectID:      project.ID,
		Code:           code,
		Name:           name,
		StationNumber:  number,
		StationAddress: address,
		Description:    strings.TrimSpace(p.Description),
		Status:         status,
		Priority:       priority,
		DueDate:        p.DueDate,
		Points:         p.Points,
		TotalCost:      p.TotalCost,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.enrichLocation(ctx, task, project)

	seed := &domain.TaskEvent{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Details: domain.CreatedDetails{
			Name:          task.Name,
			Code:          task.Code,
			StationNumber: task.StationNumber,
			Status:        string(task.Status),
			Priority:      string(task.Priority),
		},
		CreatedAt: now,
	}

	created, err := s.tasks.Create(ctx, task, seed)
	if err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", created.ID,
		"task_code", created.Code,
		"project_id", project.ID,
		"actor_id", actor.ID,
	)

	return created, nil
}

// enrichLocation fills coordinates at creation time: registry entry first,
// then the caller's points.
func (s *TaskService) enrichLocation(ctx context.Context, task *domain.Task, project *domain.Project) {
	station, err := s.geo.stations.FindByNumber(ctx, task.StationNumber, project.Operator, project.Region)
	if err == nil {
		point := domain.LocationPoint{Name: station.Number, Address: station.Address}
		if station.HasCoordinates() {
			lat, lon := diff.Round6(*station.Latitude), diff.Round6(*station.Longitude)
			point.Coordinates = formatCoordinates(lat, lon)
			task.Latitude = &lat
			task.Longitude = &lon
		}
		task.Points = []domain.LocationPoint{point}
		return
	}

	for _, pt := range task.Points {
		if lat, lon, ok := diff.ParseCoordinates(pt.Coordinates); ok {
			task.Latitude = &lat
			task.Longitude = &lon
			return
		}
	}
}

// UpdateTask applies a sparse patch to a task as one sequential pipeline:
// validate, run the executor state machine, resolve location, diff, persist
// the record with its audit events atomically, then best-effort sync the
// station registry. A patch that changes nothing writes nothing.
func (s *TaskService) UpdateTask(ctx context.Context, projectID, ref string, actor Actor, patch *domain.TaskPatch) (*domain.Task, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByRef(ctx, projectID, ref)
	if err != nil {
		return nil, err
	}

	if err := validateUpdate(task, patch); err != nil {
		return nil, err
	}

	// Rules must run before the diff so injected fields are audited exactly
	// like explicit ones.
	sideEvents := applyExecutorRules(task, patch)
	s.geo.resolveLocation(ctx, task, patch, project)

	changes := diff.Compute(task, patch)
	if len(changes) == 0 && len(sideEvents) == 0 {
		return task, nil
	}

	now := s.now()
	events := buildEvents(changes, sideEvents, actor, now)
	upd := buildUpdateSpec(changes, events, now)

	if err := s.tasks.ApplyUpdate(ctx, task.ID, upd); err != nil {
		return nil, err
	}

	for f, change := range changes {
		task.ApplyChange(f, change.To)
	}
	task.UpdatedAt = now

	if locationChanged(changes) {
		s.geo.syncStation(ctx, task, project)
	}

	slog.Info("task updated",
		"task_id", task.ID,
		"task_code", task.Code,
		"actor_id", actor.ID,
		"changed_fields", len(changes),
		"events", len(events),
	)

	return task, nil
}

// GetTask returns the canonical record together with its stored event log.
func (s *TaskService) GetTask(ctx context.Context, projectID, ref string) (*domain.Task, []*domain.TaskEvent, error) {
	task, err := s.tasks.GetByRef(ctx, projectID, ref)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.tasks.Events(ctx, task.ID)
	if err != nil {
		return nil, nil, err
	}
	return task, events, nil
}

// locationChanged reports whether the diff actually recorded a station or
// location-list change, the trigger for the registry upsert.
func locationChanged(changes domain.ChangeSet) bool {
	if _, ok := changes[domain.FieldStationNumber]; ok {
		return true
	}
	_, ok := changes[domain.FieldPoints]
	return ok
}
