package diff

import (
	"strings"

	"github.com/telfield/telfield/internal/domain"
)

// Compute produces the change-set between the stored task and a sparse patch.
// Only allow-listed fields present in the patch are compared; materially
// equal values are dropped so the audit log carries no no-op churn. An empty
// result means "nothing changed", not an error.
func Compute(task *domain.Task, patch *domain.TaskPatch) domain.ChangeSet {
	changes := make(domain.ChangeSet)

	for _, f := range domain.MutableFields {
		if !patch.Has(f) {
			continue
		}

		proposed := normalizeProposed(patch.Value(f))
		current := task.FieldValue(f)

		if Equal(KindOf(f), current, proposed) {
			continue
		}

		changes[f] = domain.FieldChange{From: current, To: proposed}
	}

	return changes
}

// normalizeProposed trims string values before comparison and storage. An
// empty string after trimming means "cleared", not the literal empty string.
func normalizeProposed(v any) any {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return s
	}
	if pts, ok := v.([]domain.LocationPoint); ok {
		if len(pts) == 0 {
			return nil
		}
		norm := NormalizePoints(pts)
		for i := range norm {
			norm[i].Name = strings.TrimSpace(norm[i].Name)
			norm[i].Coordinates = strings.TrimSpace(norm[i].Coordinates)
			norm[i].Address = strings.TrimSpace(norm[i].Address)
		}
		return norm
	}
	return v
}
