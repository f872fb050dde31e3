package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/telfield/telfield/internal/domain"
	"github.com/telfield/telfield/internal/handler/dto"
	"github.com/telfield/telfield/internal/middleware"
	"github.com/telfield/telfield/internal/repository"
	"github.com/telfield/telfield/internal/service"
)

// resolveScope extracts the acting user and verifies the project belongs to
// the user's organization. A foreign project is reported as not found.
func (h *Handler) resolveScope(w http.ResponseWriter, r *http.Request) (*domain.User, string, bool) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return nil, "", false
	}

	projectID := r.PathValue("projectID")
	if projectID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "project id is required")
		return nil, "", false
	}

	project, err := h.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return nil, "", false
	}
	if project.OrgID != user.OrgID {
		respondError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return nil, "", false
	}

	return user, projectID, true
}

// handleCreateTask creates a new work order and seeds its audit log.
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, projectID, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(ctx, projectID,
		service.Actor{ID: user.ID, Name: user.Name},
		service.CreateTaskParams{
			Code:           req.Code,
			Name:           req.Name,
			StationNumber:  req.StationNumber,
			StationAddress: req.StationAddress,
			Description:    req.Description,
			Status:         req.Status,
			Priority:       req.Priority,
			DueDate:        req.DueDate,
			Points:         req.Points,
			TotalCost:      req.TotalCost,
		})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskDetail(task, time.Now()))
}

// handleGetTask retrieves the task with its reconciled timeline.
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, projectID, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	ref := r.PathValue("ref")
	if ref == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task reference is required")
		return
	}

	task, events, err := h.taskService.GetTask(ctx, projectID, ref)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.TaskDetailResponse{
		Task:     dto.ToTaskDetail(task, time.Now()),
		Timeline: dto.ToTimeline(service.Reconcile(events)),
	})
}

// handleUpdateTask applies a sparse patch to a task.
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, projectID, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	ref := r.PathValue("ref")
	if ref == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task reference is required")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	patch, err := dto.ParseTaskPatch(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(ctx, projectID, ref,
		service.Actor{ID: user.ID, Name: user.Name}, patch)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task, time.Now()))
}

// handleListTasks returns a filtered, paginated list of tasks.
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, projectID, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	var statuses []string
	if statusParam := query.Get("status"); statusParam != "" {
		for _, s := range splitAndTrim(statusParam, ",") {
			statuses = append(statuses, string(domain.NormalizeStatus(s)))
		}
	}

	var executorID *string
	if executorParam := query.Get("executor"); executorParam != "" {
		if executorParam == "me" {
			executorID = &user.ID
		} else {
			executorID = &executorParam
		}
	}

	var priorities []string
	if priorityParam := query.Get("priority"); priorityParam != "" {
		for _, p := range splitAndTrim(priorityParam, ",") {
			if priority, valid := domain.NormalizePriority(p); valid {
				priorities = append(priorities, string(priority))
			}
		}
	}

	var sort []string
	if sortParam := query.Get("sort"); sortParam != "" {
		sort = splitAndTrim(sortParam, ",")
	}

	limit := 50
	if limitParam := query.Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	offset := 0
	if offsetParam := query.Get("offset"); offsetParam != "" {
		if n, err := strconv.Atoi(offsetParam); err == nil && n >= 0 {
			offset = n
		}
	}

	tasks, total, err := h.taskRepo.List(ctx, repository.TaskListFilters{
		ProjectID:  projectID,
		Statuses:   statuses,
		ExecutorID: executorID,
		Unassigned: query.Get("unassigned") == "true",
		Priorities: priorities,
		Overdue:    query.Get("overdue") == "true",
		Sort:       sort,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}

	now := time.Now()
	out := make([]dto.TaskDetail, len(tasks))
	for i, task := range tasks {
		out[i] = dto.ToTaskDetail(task, now)
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks:  out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// splitAndTrim splits a string by delimiter and trims whitespace.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
