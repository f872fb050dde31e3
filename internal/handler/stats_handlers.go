package handler

import (
	"net/http"

	"github.com/telfield/telfield/internal/handler/dto"
)

// handleGetStats returns aggregate task counts for a project.
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, projectID, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	stats, err := h.taskRepo.GetProjectStats(ctx, projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
		return
	}

	respondJSON(w, http.StatusOK, dto.StatsResponse{
		ProjectID:       projectID,
		TotalTasks:      stats.TotalTasks,
		TasksByStatus:   stats.TasksByStatus,
		OverdueCount:    stats.OverdueCount,
		AssignedCount:   stats.AssignedCount,
		UnassignedCount: stats.TotalTasks - stats.AssignedCount,
	})
}
