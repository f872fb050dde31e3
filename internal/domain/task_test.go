package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/domain"
)

func TestFieldValue_EmptyRepresentationsAreNil(t *testing.T) {
	task := &domain.Task{}

	for _, f := range domain.MutableFields {
		assert.Nil(t, task.FieldValue(f), "field %s", f)
	}

	empty := ""
	task.ExecutorID = &empty
	assert.Nil(t, task.FieldValue(domain.FieldExecutorID))
	assert.False(t, task.HasExecutor())
}

func TestApplyChange_RoundTrip(t *testing.T) {
	task := &domain.Task{}
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	task.ApplyChange(domain.FieldName, "Replace antenna")
	task.ApplyChange(domain.FieldStatus, "Assigned")
	task.ApplyChange(domain.FieldDueDate, due)
	task.ApplyChange(domain.FieldLatitude, 52.270889)
	task.ApplyChange(domain.FieldExecutorID, "u-7")

	assert.Equal(t, "Replace antenna", task.Name)
	assert.Equal(t, domain.StatusAssigned, task.Status)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
	require.NotNil(t, task.Latitude)
	assert.Equal(t, 52.270889, *task.Latitude)
	assert.True(t, task.HasExecutor())

	// nil clears.
	task.ApplyChange(domain.FieldDueDate, nil)
	task.ApplyChange(domain.FieldLatitude, nil)
	task.ApplyChange(domain.FieldExecutorID, nil)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.Latitude)
	assert.False(t, task.HasExecutor())
}

func TestTaskPatch_TriState(t *testing.T) {
	patch := domain.NewTaskPatch()
	assert.True(t, patch.IsEmpty())
	assert.False(t, patch.Has(domain.FieldName))

	patch.Set(domain.FieldName, "x")
	assert.True(t, patch.Has(domain.FieldName))
	assert.Equal(t, "x", patch.Value(domain.FieldName))

	patch.Clear(domain.FieldName)
	assert.True(t, patch.Has(domain.FieldName))
	assert.Nil(t, patch.Value(domain.FieldName))
	assert.False(t, patch.IsEmpty())
}

func TestNewTaskCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := domain.NewTaskCode()
		require.NoError(t, err)
		require.Len(t, code, domain.CodeLength)
		for _, r := range code {
			// Ambiguous characters (0/O, 1/I/L) are excluded.
			assert.True(t, strings.ContainsRune("ABCDEFGHJKMNPQRSTUVWXYZ23456789", r), "code %q", code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
