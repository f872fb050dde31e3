package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/domain"
	"github.com/telfield/telfield/internal/handler/dto"
)

func TestParseTaskPatch_AbsentVsNullVsValue(t *testing.T) {
	body := []byte(`{"description":"check feeder","dueDate":null}`)

	patch, err := dto.ParseTaskPatch(body)
	require.NoError(t, err)

	// Present with a value.
	require.True(t, patch.Has(domain.FieldDescription))
	assert.Equal(t, "check feeder", patch.Value(domain.FieldDescription))

	// Present as explicit null: a clear, not a no-op.
	require.True(t, patch.Has(domain.FieldDueDate))
	assert.Nil(t, patch.Value(domain.FieldDueDate))

	// Absent: untouched.
	assert.False(t, patch.Has(domain.FieldName))
	assert.False(t, patch.Has(domain.FieldStatus))
}

func TestParseTaskPatch_StatusSynonyms(t *testing.T) {
	patch, err := dto.ParseTaskPatch([]byte(`{"status":"TO-DO"}`))
	require.NoError(t, err)
	assert.Equal(t, "To do", patch.Value(domain.FieldStatus))

	patch, err = dto.ParseTaskPatch([]byte(`{"status":"in progress"}`))
	require.NoError(t, err)
	assert.Equal(t, "At work", patch.Value(domain.FieldStatus))

	// Unrecognized labels pass through trimmed.
	patch, err = dto.ParseTaskPatch([]byte(`{"status":" Needs survey "}`))
	require.NoError(t, err)
	assert.Equal(t, "Needs survey", patch.Value(domain.FieldStatus))
}

func TestParseTaskPatch_InvalidPriorityDropped(t *testing.T) {
	patch, err := dto.ParseTaskPatch([]byte(`{"priority":"urgent-ish","name":"x"}`))
	require.NoError(t, err)

	assert.False(t, patch.Has(domain.FieldPriority))
	assert.True(t, patch.Has(domain.FieldName))

	patch, err = dto.ParseTaskPatch([]byte(`{"priority":"HIGH"}`))
	require.NoError(t, err)
	assert.Equal(t, "high", patch.Value(domain.FieldPriority))
}

func TestParseTaskPatch_DueDateAndPoints(t *testing.T) {
	body := []byte(`{
		"dueDate": "2024-06-01T00:00:00Z",
		"points": [{"name":"mast","coordinates":"52.27 104.30"}]
	}`)

	patch, err := dto.ParseTaskPatch(body)
	require.NoError(t, err)

	due, ok := patch.Value(domain.FieldDueDate).(time.Time)
	require.True(t, ok)
	assert.True(t, due.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))

	pts, ok := patch.Value(domain.FieldPoints).([]domain.LocationPoint)
	require.True(t, ok)
	require.Len(t, pts, 1)
	assert.Equal(t, "mast", pts[0].Name)
}

func TestParseTaskPatch_UnknownFieldsIgnored(t *testing.T) {
	patch, err := dto.ParseTaskPatch([]byte(`{"isAdmin":true,"name":"x"}`))
	require.NoError(t, err)
	assert.True(t, patch.Has(domain.FieldName))
	// Nothing but the allow-listed field made it in.
	for _, f := range domain.MutableFields {
		if f == domain.FieldName {
			continue
		}
		assert.False(t, patch.Has(f), "field %s", f)
	}
}

func TestParseTaskPatch_EmptyBody(t *testing.T) {
	patch, err := dto.ParseTaskPatch([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())
}

func TestParseTaskPatch_MalformedJSON(t *testing.T) {
	_, err := dto.ParseTaskPatch([]byte(`{`))
	assert.Error(t, err)
}
