package domain

// TaskPatch is a sparse update to a task. Every field is independently
// tri-state: absent (not touched), set to a value, or explicitly cleared.
// Values are stored pre-normalized (statuses canonical, strings trimmed by
// the diff step).
type TaskPatch struct {
	fields map[Field]any
}

// NewTaskPatch returns an empty patch.
func NewTaskPatch() *TaskPatch {
	return &TaskPatch{fields: make(map[Field]any)}
}

// Set records a value for the field.
func (p *TaskPatch) Set(f Field, v any) {
	p.fields[f] = v
}

// Clear records an explicit clear (JSON null) for the field.
func (p *TaskPatch) Clear(f Field) {
	p.fields[f] = nil
}

// Has reports whether the patch touches the field at all.
func (p *TaskPatch) Has(f Field) bool {
	_, ok := p.fields[f]
	return ok
}

// Value returns the proposed value for the field; nil means either absent or
// cleared, use Has to distinguish.
func (p *TaskPatch) Value(f Field) any {
	return p.fields[f]
}

// IsEmpty reports whether the patch touches no fields.
func (p *TaskPatch) IsEmpty() bool {
	return len(p.fields) == 0
}
