package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind represents the type of audit event.
type EventKind string

const (
	EventCreated  EventKind = "created"
	EventUpdated  EventKind = "updated"
	EventAssigned EventKind = "status_changed_assigned"
)

// FieldChange is a from/to pair for one changed field.
type FieldChange struct {
	From any `json:"from,omitempty"`
	To   any `json:"to,omitempty"`
}

// IsRemoval reports whether the change clears a previously set value.
func (c FieldChange) IsRemoval() bool {
	return c.From != nil && c.To == nil
}

// ChangeSet maps changed field names to their from/to pairs.
type ChangeSet map[Field]FieldChange

// EventDetails is the typed payload of an audit event. The concrete type is
// keyed by the event kind so that read-side handling stays exhaustive.
type EventDetails interface {
	Kind() EventKind
}

// CreatedDetails is the snapshot recorded with the seed "created" event.
type CreatedDetails struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	StationNumber string `json:"stationNumber"`
	Status        string `json:"status"`
	Priority      string `json:"priority,omitempty"`
}

func (CreatedDetails) Kind() EventKind { return EventCreated }

// UpdatedDetails carries the change-set of a generic update.
type UpdatedDetails struct {
	Changes ChangeSet `json:"changes"`
}

func (UpdatedDetails) Kind() EventKind { return EventUpdated }

// AssignedDetails records an executor assignment and the status change it
// caused, if any.
type AssignedDetails struct {
	ExecutorID    string       `json:"executorId"`
	ExecutorName  string       `json:"executorName"`
	ExecutorEmail string       `json:"executorEmail,omitempty"`
	Status        *FieldChange `json:"status,omitempty"`
}

func (AssignedDetails) Kind() EventKind { return EventAssigned }

// RawDetails preserves payloads of event kinds this core does not interpret.
// Events are append-only; unknown kinds must survive a read/write round trip.
type RawDetails struct {
	EventKind EventKind
	Data      json.RawMessage
}

func (d RawDetails) Kind() EventKind { return d.EventKind }

func (d RawDetails) MarshalJSON() ([]byte, error) {
	if len(d.Data) == 0 {
		return []byte("null"), nil
	}
	return d.Data, nil
}

// TaskEvent is an immutable audit record attached to a task. Events produced
// by one logical mutation share a timestamp.
type TaskEvent struct {
	ID        string
	TaskID    string
	ActorID   string
	ActorName string
	Details   EventDetails
	CreatedAt time.Time
}

// EventKind returns the kind of the event's details.
func (e *TaskEvent) EventKind() EventKind {
	if e.Details == nil {
		return ""
	}
	return e.Details.Kind()
}

// MarshalDetails serializes event details for storage.
func MarshalDetails(d EventDetails) ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal event details: %w", err)
	}
	return data, nil
}

// UnmarshalDetails deserializes stored details by event kind. Unknown kinds
// are kept verbatim as RawDetails.
func UnmarshalDetails(kind EventKind, data []byte) (EventDetails, error) {
	switch kind {
	case EventCreated:
		var d CreatedDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("unmarshal created details: %w", err)
		}
		return d, nil
	case EventUpdated:
		var d UpdatedDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("unmarshal updated details: %w", err)
		}
		return d, nil
	case EventAssigned:
		var d AssignedDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("unmarshal assigned details: %w", err)
		}
		return d, nil
	default:
		return RawDetails{EventKind: kind, Data: append(json.RawMessage(nil), data...)}, nil
	}
}
