package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/domain"
)

func TestUnmarshalDetails_KnownKinds(t *testing.T) {
	data := []byte(`{"changes":{"status":{"from":"To do","to":"Assigned"}}}`)
	details, err := domain.UnmarshalDetails(domain.EventUpdated, data)
	require.NoError(t, err)

	upd, ok := details.(domain.UpdatedDetails)
	require.True(t, ok)
	change, ok := upd.Changes[domain.FieldStatus]
	require.True(t, ok)
	assert.Equal(t, "To do", change.From)
	assert.Equal(t, "Assigned", change.To)
}

func TestUnmarshalDetails_UnknownKindSurvivesRoundTrip(t *testing.T) {
	payload := []byte(`{"text":"left a note","attachments":2}`)
	details, err := domain.UnmarshalDetails("comment_added", payload)
	require.NoError(t, err)

	raw, ok := details.(domain.RawDetails)
	require.True(t, ok)
	assert.Equal(t, domain.EventKind("comment_added"), raw.Kind())

	stored, err := domain.MarshalDetails(details)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(stored))
}

func TestFieldChangeIsRemoval(t *testing.T) {
	assert.True(t, domain.FieldChange{From: "u-7"}.IsRemoval())
	assert.False(t, domain.FieldChange{From: "u-7", To: "u-9"}.IsRemoval())
	assert.False(t, domain.FieldChange{To: "u-9"}.IsRemoval())
	assert.False(t, domain.FieldChange{}.IsRemoval())
}

func TestAssignedDetailsJSONShape(t *testing.T) {
	details := domain.AssignedDetails{
		ExecutorID:   "u-7",
		ExecutorName: "Ivan Petrov",
		Status:       &domain.FieldChange{From: "To do", To: "Assigned"},
	}

	data, err := json.Marshal(details)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"executorId": "u-7",
		"executorName": "Ivan Petrov",
		"status": {"from": "To do", "to": "Assigned"}
	}`, string(data))
}
