package service

import (
	"sort"
	"time"

	"github.com/telfield/telfield/internal/domain"
)

// DisplayEvent is one row of the human-readable task timeline.
type DisplayEvent struct {
	ID        string
	Title     string
	Kind      domain.EventKind
	ActorID   string
	ActorName string
	Details   domain.EventDetails
	CreatedAt time.Time
}

// Display titles per action kind.
const (
	titleCreated    = "task created"
	titleAssigned   = "assigned to executor"
	titleUnassigned = "executor unassigned"
	titleUpdated    = "task updated"
)

// Reconcile merges the stored event log into a compact timeline, newest
// first. An assignment event and the updated event written with it share a
// timestamp; they are folded into a single row carrying the merged status
// change. Reconciliation is read-only and idempotent: the stored log is
// never modified.
func Reconcile(events []*domain.TaskEvent) []DisplayEvent {
	ordered := make([]*domain.TaskEvent, len(events))
	copy(ordered, events)

	// Newest first; ties keep original insertion order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	// Pair every assignment event with the unclaimed "updated" event sharing
	// its exact timestamp, before emitting anything, so a paired update that
	// sorts ahead of its assignment is still suppressed.
	pairs := make(map[int]int) // assigned index -> updated index
	claimed := make(map[int]bool)
	for i, ev := range ordered {
		if ev.EventKind() != domain.EventAssigned {
			continue
		}
		for j, cand := range ordered {
			if claimed[j] || cand.EventKind() != domain.EventUpdated {
				continue
			}
			if cand.CreatedAt.Equal(ev.CreatedAt) {
				pairs[i] = j
				claimed[j] = true
				break
			}
		}
	}

	out := make([]DisplayEvent, 0, len(ordered))
	for i, ev := range ordered {
		if claimed[i] {
			continue
		}

		switch details := ev.Details.(type) {
		case domain.AssignedDetails:
			merged := details
			if j, ok := pairs[i]; ok {
				mergePairedUpdate(&merged, ordered[j])
			}
			out = append(out, displayEvent(ev, titleAssigned, merged))

		case domain.UpdatedDetails:
			title := titleUpdated
			if isExecutorRemoval(details.Changes) {
				title = titleUnassigned
			}
			out = append(out, displayEvent(ev, title, details))

		case domain.CreatedDetails:
			out = append(out, displayEvent(ev, titleCreated, details))

		default:
			out = append(out, displayEvent(ev, string(ev.EventKind()), ev.Details))
		}
	}

	return out
}

// mergePairedUpdate folds the paired update's status change, and its executor
// email when the assignment lacks one, into the assignment details.
func mergePairedUpdate(merged *domain.AssignedDetails, paired *domain.TaskEvent) {
	upd, ok := paired.Details.(domain.UpdatedDetails)
	if !ok {
		return
	}
	if change, ok := upd.Changes[domain.FieldStatus]; ok {
		merged.Status = &change
	}
	if merged.ExecutorEmail == "" {
		if change, ok := upd.Changes[domain.FieldExecutorEmail]; ok {
			if email, ok := change.To.(string); ok {
				merged.ExecutorEmail = email
			}
		}
	}
}

// isExecutorRemoval reports whether a change-set clears any of the executor
// fields (a "had a from, has no to" shape). Only the display title changes;
// the stored action kind does not.
func isExecutorRemoval(changes domain.ChangeSet) bool {
	for _, f := range []domain.Field{
		domain.FieldExecutorID,
		domain.FieldExecutorName,
		domain.FieldExecutorEmail,
	} {
		if change, ok := changes[f]; ok && change.IsRemoval() {
			return true
		}
	}
	return false
}

func displayEvent(ev *domain.TaskEvent, title string, details domain.EventDetails) DisplayEvent {
	return DisplayEvent{
		ID:        ev.ID,
		Title:     title,
		Kind:      ev.EventKind(),
		ActorID:   ev.ActorID,
		ActorName: ev.ActorName,
		Details:   details,
		CreatedAt: ev.CreatedAt,
	}
}
