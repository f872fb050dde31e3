package service

import (
	"strings"

	"github.com/telfield/telfield/internal/domain"
)

// applyExecutorRules runs the executor-assignment state machine over the
// patch before diffing. It may inject an implicit status change and returns
// side-event details to append alongside the generic update event.
//
// The implicit transitions fire only when the caller's patch is silent on
// status; an explicit status in the patch always wins. Must run strictly
// before the diff so injected fields are audited like explicit ones.
func applyExecutorRules(task *domain.Task, patch *domain.TaskPatch) []domain.EventDetails {
	if !patch.Has(domain.FieldExecutorID) {
		return nil
	}

	newID, _ := patch.Value(domain.FieldExecutorID).(string)
	newID = strings.TrimSpace(newID)
	explicitStatus := patch.Has(domain.FieldStatus)

	// Executor removed: clear the triplet together, never individually.
	if newID == "" && task.HasExecutor() {
		patch.Clear(domain.FieldExecutorID)
		patch.Clear(domain.FieldExecutorName)
		patch.Clear(domain.FieldExecutorEmail)
		if !explicitStatus && task.Status == domain.StatusAssigned {
			patch.Set(domain.FieldStatus, string(domain.StatusToDo))
		}
		return nil
	}

	// Executor assigned where none existed before.
	if newID != "" && !task.HasExecutor() {
		if !explicitStatus && (task.Status == "" || task.Status == domain.StatusToDo) {
			patch.Set(domain.FieldStatus, string(domain.StatusAssigned))
		}

		details := domain.AssignedDetails{
			ExecutorID:    newID,
			ExecutorName:  patchString(patch, domain.FieldExecutorName),
			ExecutorEmail: patchString(patch, domain.FieldExecutorEmail),
		}
		if change, ok := effectiveStatusChange(task, patch); ok {
			details.Status = &change
		}
		return []domain.EventDetails{details}
	}

	return nil
}

// effectiveStatusChange reports the status transition the patch will cause,
// whether injected or explicit.
func effectiveStatusChange(task *domain.Task, patch *domain.TaskPatch) (domain.FieldChange, bool) {
	if !patch.Has(domain.FieldStatus) {
		return domain.FieldChange{}, false
	}
	to, _ := patch.Value(domain.FieldStatus).(string)
	if to == string(task.Status) {
		return domain.FieldChange{}, false
	}
	change := domain.FieldChange{To: to}
	if task.Status != "" {
		change.From = string(task.Status)
	}
	return change, true
}

func patchString(patch *domain.TaskPatch, f domain.Field) string {
	s, _ := patch.Value(f).(string)
	return strings.TrimSpace(s)
}

// validateUpdate rejects patches that would break record invariants before
// any rule or diff logic runs.
func validateUpdate(task *domain.Task, patch *domain.TaskPatch) error {
	if err := requireIfTouched(patch, domain.FieldName, domain.ErrNameRequired); err != nil {
		return err
	}
	if err := requireIfTouched(patch, domain.FieldStationNumber, domain.ErrStationNumberRequired); err != nil {
		return err
	}
	if err := requireIfTouched(patch, domain.FieldStationAddress, domain.ErrStationAddressRequired); err != nil {
		return err
	}

	// Executor name/email may only appear with an executor: either the task
	// already has one, or the same patch supplies the id.
	touchesIdentity := patchString(patch, domain.FieldExecutorName) != "" ||
		patchString(patch, domain.FieldExecutorEmail) != ""
	if touchesIdentity && !task.HasExecutor() && patchString(patch, domain.FieldExecutorID) == "" {
		return domain.ErrExecutorIncomplete
	}

	return nil
}

func requireIfTouched(patch *domain.TaskPatch, f domain.Field, sentinel error) error {
	if !patch.Has(f) {
		return nil
	}
	if s, _ := patch.Value(f).(string); strings.TrimSpace(s) != "" {
		return nil
	}
	return sentinel
}
