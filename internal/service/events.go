package service

import (
	"time"

	"github.com/telfield/telfield/internal/domain"
)

// Actor identifies the acting user recorded on audit events.
type Actor struct {
	ID   string
	Name string
}

// buildEvents packages a change-set plus side-event details into audit
// events. All events of one call share the same timestamp: they are one
// logical transaction, and the read-side reconciler pairs them by it.
// Both inputs empty means no events at all.
func buildEvents(changes domain.ChangeSet, side []domain.EventDetails, actor Actor, now time.Time) []*domain.TaskEvent {
	var events []*domain.TaskEvent

	if len(changes) > 0 {
		events = append(events, &domain.TaskEvent{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Details:   domain.UpdatedDetails{Changes: changes},
			CreatedAt: now,
		})
	}

	for _, details := range side {
		events = append(events, &domain.TaskEvent{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Details:   details,
			CreatedAt: now,
		})
	}

	return events
}

// buildUpdateSpec translates a change-set and its events into the three-part
// write request the task store applies atomically. The spec carries the same
// timestamp as the events so the stored record cannot drift from its log.
func buildUpdateSpec(changes domain.ChangeSet, events []*domain.TaskEvent, now time.Time) domain.UpdateSpec {
	upd := domain.UpdateSpec{
		Set:       make(map[domain.Field]any),
		Events:    events,
		UpdatedAt: now,
	}
	for f, change := range changes {
		if change.To == nil {
			upd.Clear = append(upd.Clear, f)
			continue
		}
		upd.Set[f] = change.To
	}
	return upd
}
