package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/domain"
)

func TestBuildTaskUpdate_ClearRespectsNotNullColumns(t *testing.T) {
	upd := domain.UpdateSpec{
		Clear: []domain.Field{
			domain.FieldDescription,
			domain.FieldStatus,
			domain.FieldPriority,
			domain.FieldPoints,
			domain.FieldDueDate,
			domain.FieldExecutorID,
		},
	}

	query, args, err := buildTaskUpdate("t-1", upd)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE tasks SET updated_at = NOW()")

	// NOT NULL columns clear to their empty representation, nullable
	// columns to NULL. Clear order is preserved; the trailing arg is the
	// WHERE id.
	require.Len(t, args, 7)
	assert.Equal(t, "", args[0])
	assert.Equal(t, "", args[1])
	assert.Equal(t, "", args[2])
	assert.Equal(t, []byte("[]"), args[3])
	assert.Nil(t, args[4])
	assert.Nil(t, args[5])
	assert.Equal(t, "t-1", args[6])
}

func TestBuildTaskUpdate_UsesSharedTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	upd := domain.UpdateSpec{
		Set:       map[domain.Field]any{domain.FieldName: "New name"},
		UpdatedAt: now,
	}

	query, args, err := buildTaskUpdate("t-1", upd)
	require.NoError(t, err)

	assert.Contains(t, query, "updated_at = $1")
	require.Len(t, args, 3)
	assert.Equal(t, now, args[0])
	assert.Equal(t, "New name", args[1])
	assert.Equal(t, "t-1", args[2])
}

func TestBuildTaskUpdate_PointsMarshalledToJSON(t *testing.T) {
	upd := domain.UpdateSpec{
		Set: map[domain.Field]any{
			domain.FieldPoints: []domain.LocationPoint{
				{Name: "mast", Coordinates: "52.27 104.30"},
			},
		},
	}

	_, args, err := buildTaskUpdate("t-1", upd)
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.JSONEq(t,
		`[{"name":"mast","coordinates":"52.27 104.30","address":""}]`,
		string(args[0].([]byte)))
}

func TestBuildTaskUpdate_RejectsUnknownField(t *testing.T) {
	_, _, err := buildTaskUpdate("t-1", domain.UpdateSpec{
		Set: map[domain.Field]any{"isAdmin": true},
	})
	assert.ErrorContains(t, err, "unknown task field")

	_, _, err = buildTaskUpdate("t-1", domain.UpdateSpec{
		Clear: []domain.Field{"isAdmin"},
	})
	assert.ErrorContains(t, err, "unknown task field")
}
