package domain

import "strings"

// TaskStatus represents the workflow status of a work order.
type TaskStatus string

const (
	StatusToDo     TaskStatus = "To do"
	StatusAssigned TaskStatus = "Assigned"
	StatusAtWork   TaskStatus = "At work"
	StatusPending  TaskStatus = "Pending"
	StatusIssues   TaskStatus = "Issues"
	StatusFixed    TaskStatus = "Fixed"
	StatusAgreed   TaskStatus = "Agreed"
	StatusDone     TaskStatus = "Done"
)

// statusSynonyms maps case/spacing-normalized labels to canonical statuses.
// Built once at init; covers label drift from older clients ("TODO", "TO-DO",
// "to do" all resolve to StatusToDo).
var statusSynonyms = map[string]TaskStatus{}

func init() {
	for _, s := range []TaskStatus{
		StatusToDo, StatusAssigned, StatusAtWork, StatusPending,
		StatusIssues, StatusFixed, StatusAgreed, StatusDone,
	} {
		statusSynonyms[statusKey(string(s))] = s
	}
	// Legacy labels still seen in the wild.
	statusSynonyms[statusKey("in work")] = StatusAtWork
	statusSynonyms[statusKey("in progress")] = StatusAtWork
	statusSynonyms[statusKey("complete")] = StatusDone
	statusSynonyms[statusKey("completed")] = StatusDone
}

// statusKey lowercases a label and strips spaces, hyphens and underscores.
func statusKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}

// NormalizeStatus resolves free-form status input against the synonym table.
// Unrecognized input is passed through trimmed rather than rejected.
func NormalizeStatus(raw string) TaskStatus {
	if canonical, ok := statusSynonyms[statusKey(raw)]; ok {
		return canonical
	}
	return TaskStatus(strings.TrimSpace(raw))
}

// IsValid checks if the status is one of the canonical values.
func (s TaskStatus) IsValid() bool {
	_, ok := statusSynonyms[statusKey(string(s))]
	return ok
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityNormal   TaskPriority = "normal"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// NormalizePriority matches free-form input against the four allowed
// priorities. Anything else reports ok=false and is treated by callers as
// "not supplied".
func NormalizePriority(raw string) (TaskPriority, bool) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityNormal:
		return PriorityNormal, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityCritical:
		return PriorityCritical, true
	default:
		return "", false
	}
}
