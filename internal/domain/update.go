package domain

import "time"

// UpdateSpec is the explicit three-part write request applied atomically by
// the task store: fields to set, fields to clear, and audit events to append.
// The store implementation decides how this compiles down to its dialect.
// UpdatedAt is the mutation's shared timestamp; stores persist it verbatim so
// the record matches the events written alongside it.
type UpdateSpec struct {
	Set       map[Field]any
	Clear     []Field
	Events    []*TaskEvent
	UpdatedAt time.Time
}

// IsEmpty reports whether the spec would write nothing.
func (u UpdateSpec) IsEmpty() bool {
	return len(u.Set) == 0 && len(u.Clear) == 0 && len(u.Events) == 0
}
