package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/telfield/telfield/internal/domain"
)

// CreateTaskRequest represents the request body for POST /tasks. The shape is
// closed: unknown body fields are ignored, never persisted.
type CreateTaskRequest struct {
	Code           string                 `json:"code,omitempty"`
	Name           string                 `json:"name"`
	StationNumber  string                 `json:"stationNumber"`
	StationAddress string                 `json:"stationAddress"`
	Description    string                 `json:"description,omitempty"`
	Status         string                 `json:"status,omitempty"`
	Priority       string                 `json:"priority,omitempty"`
	DueDate        *time.Time             `json:"dueDate,omitempty"`
	Points         []domain.LocationPoint `json:"points,omitempty"`
	TotalCost      *float64               `json:"totalCost,omitempty"`
}

// UpdateTaskRequest represents the request body for PATCH /tasks/{ref}.
// Every field is independently optional; an explicit JSON null clears the
// field, which is distinct from omitting it.
type UpdateTaskRequest struct {
	Name           *string                 `json:"name"`
	StationNumber  *string                 `json:"stationNumber"`
	StationAddress *string                 `json:"stationAddress"`
	Description    *string                 `json:"description"`
	Status         *string                 `json:"status"`
	Priority       *string                 `json:"priority"`
	DueDate        *time.Time              `json:"dueDate"`
	Points         *[]domain.LocationPoint `json:"points"`
	Latitude       *float64                `json:"latitude"`
	Longitude      *float64                `json:"longitude"`
	TotalCost      *float64                `json:"totalCost"`
	ExecutorID     *string                 `json:"executorId"`
	ExecutorName   *string                 `json:"executorName"`
	ExecutorEmail  *string                 `json:"executorEmail"`
}

var jsonNull = []byte("null")

// ParseTaskPatch decodes a PATCH body into a tri-state task patch. Presence
// is tracked per key so that an explicit null becomes a clear, not a no-op.
// Status synonyms are resolved here; priorities outside the allowed four are
// silently dropped from the patch.
func ParseTaskPatch(body []byte) (*domain.TaskPatch, error) {
	var req UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode update request: %w", err)
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return nil, fmt.Errorf("decode update request: %w", err)
	}

	patch := domain.NewTaskPatch()

	setString := func(f domain.Field, v *string) {
		raw, ok := present[string(f)]
		if !ok {
			return
		}
		if bytes.Equal(raw, jsonNull) || v == nil {
			patch.Clear(f)
			return
		}
		patch.Set(f, *v)
	}
	setFloat := func(f domain.Field, v *float64) {
		raw, ok := present[string(f)]
		if !ok {
			return
		}
		if bytes.Equal(raw, jsonNull) || v == nil {
			patch.Clear(f)
			return
		}
		patch.Set(f, *v)
	}

	setString(domain.FieldName, req.Name)
	setString(domain.FieldStationNumber, req.StationNumber)
	setString(domain.FieldStationAddress, req.StationAddress)
	setString(domain.FieldDescription, req.Description)
	setString(domain.FieldExecutorID, req.ExecutorID)
	setString(domain.FieldExecutorName, req.ExecutorName)
	setString(domain.FieldExecutorEmail, req.ExecutorEmail)

	if raw, ok := present[string(domain.FieldStatus)]; ok {
		if bytes.Equal(raw, jsonNull) || req.Status == nil {
			patch.Clear(domain.FieldStatus)
		} else {
			patch.Set(domain.FieldStatus, string(domain.NormalizeStatus(*req.Status)))
		}
	}

	if raw, ok := present[string(domain.FieldPriority)]; ok {
		if bytes.Equal(raw, jsonNull) || req.Priority == nil {
			patch.Clear(domain.FieldPriority)
		} else if priority, valid := domain.NormalizePriority(*req.Priority); valid {
			patch.Set(domain.FieldPriority, string(priority))
		}
	}

	if raw, ok := present[string(domain.FieldDueDate)]; ok {
		if bytes.Equal(raw, jsonNull) || req.DueDate == nil {
			patch.Clear(domain.FieldDueDate)
		} else {
			patch.Set(domain.FieldDueDate, *req.DueDate)
		}
	}

	if raw, ok := present[string(domain.FieldPoints)]; ok {
		if bytes.Equal(raw, jsonNull) || req.Points == nil {
			patch.Clear(domain.FieldPoints)
		} else {
			patch.Set(domain.FieldPoints, *req.Points)
		}
	}

	setFloat(domain.FieldLatitude, req.Latitude)
	setFloat(domain.FieldLongitude, req.Longitude)
	setFloat(domain.FieldTotalCost, req.TotalCost)

	return patch, nil
}
