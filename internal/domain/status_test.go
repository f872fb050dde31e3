package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telfield/telfield/internal/domain"
)

func TestNormalizeStatus_Synonyms(t *testing.T) {
	cases := map[string]domain.TaskStatus{
		"To do":       domain.StatusToDo,
		"TODO":        domain.StatusToDo,
		"TO-DO":       domain.StatusToDo,
		"to_do":       domain.StatusToDo,
		"at work":     domain.StatusAtWork,
		"in work":     domain.StatusAtWork,
		"In Progress": domain.StatusAtWork,
		"complete":    domain.StatusDone,
		"Completed":   domain.StatusDone,
		"DONE":        domain.StatusDone,
	}
	for raw, want := range cases {
		assert.Equal(t, want, domain.NormalizeStatus(raw), "input %q", raw)
	}
}

func TestNormalizeStatus_UnknownPassesThroughTrimmed(t *testing.T) {
	assert.Equal(t, domain.TaskStatus("Needs survey"), domain.NormalizeStatus("  Needs survey "))
}

func TestTaskStatusIsValid(t *testing.T) {
	assert.True(t, domain.StatusAssigned.IsValid())
	assert.True(t, domain.TaskStatus("todo").IsValid())
	assert.False(t, domain.TaskStatus("Needs survey").IsValid())
}

func TestNormalizePriority(t *testing.T) {
	p, ok := domain.NormalizePriority(" High ")
	assert.True(t, ok)
	assert.Equal(t, domain.PriorityHigh, p)

	_, ok = domain.NormalizePriority("urgent")
	assert.False(t, ok)

	_, ok = domain.NormalizePriority("")
	assert.False(t, ok)
}
