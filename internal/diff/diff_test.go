package diff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/diff"
	"github.com/telfield/telfield/internal/domain"
)

func baseTask() *domain.Task {
	lat := 52.270889
	return &domain.Task{
		ID:             "t-1",
		Name:           "Replace antenna",
		StationNumber:  "IRK-0042",
		StationAddress: "Irkutsk, Lenina 1",
		Status:         domain.StatusToDo,
		Priority:       domain.PriorityNormal,
		Latitude:       &lat,
	}
}

func TestCompute_SparseAndAllowListed(t *testing.T) {
	task := baseTask()

	patch := domain.NewTaskPatch()
	patch.Set(domain.FieldDescription, "check feeder cable")

	changes := diff.Compute(task, patch)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.FieldChange{From: nil, To: "check feeder cable"}, changes[domain.FieldDescription])
}

func TestCompute_DropsMateriallyEqualValues(t *testing.T) {
	task := baseTask()

	patch := domain.NewTaskPatch()
	patch.Set(domain.FieldName, "  Replace antenna  ")
	patch.Set(domain.FieldStatus, "To do")
	patch.Set(domain.FieldLatitude, 52.2708891234)

	changes := diff.Compute(task, patch)
	assert.Empty(t, changes)
}

func TestCompute_EmptyStringMeansCleared(t *testing.T) {
	task := baseTask()
	task.Description = "old text"

	patch := domain.NewTaskPatch()
	patch.Set(domain.FieldDescription, "   ")

	changes := diff.Compute(task, patch)
	require.Len(t, changes, 1)
	change := changes[domain.FieldDescription]
	assert.Equal(t, "old text", change.From)
	assert.Nil(t, change.To)
	assert.True(t, change.IsRemoval())
}

func TestCompute_ClearedField(t *testing.T) {
	task := baseTask()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	task.DueDate = &due

	patch := domain.NewTaskPatch()
	patch.Clear(domain.FieldDueDate)

	changes := diff.Compute(task, patch)
	require.Len(t, changes, 1)
	change := changes[domain.FieldDueDate]
	assert.Equal(t, due, change.From)
	assert.Nil(t, change.To)
}

func TestCompute_ClearingAbsentFieldIsNoop(t *testing.T) {
	task := baseTask()

	patch := domain.NewTaskPatch()
	patch.Clear(domain.FieldDueDate)
	patch.Clear(domain.FieldDescription)

	assert.Empty(t, diff.Compute(task, patch))
}

func TestCompute_PointsEmptyListClears(t *testing.T) {
	task := baseTask()
	task.Points = []domain.LocationPoint{{Name: "A", Coordinates: "1 2"}}

	patch := domain.NewTaskPatch()
	patch.Set(domain.FieldPoints, []domain.LocationPoint{})

	changes := diff.Compute(task, patch)
	require.Len(t, changes, 1)
	assert.Nil(t, changes[domain.FieldPoints].To)
}

func TestCompute_DoesNotMutateTask(t *testing.T) {
	task := baseTask()
	before := *task

	patch := domain.NewTaskPatch()
	patch.Set(domain.FieldName, "New name")
	patch.Set(domain.FieldStatus, "Done")
	patch.Clear(domain.FieldLatitude)

	changes := diff.Compute(task, patch)
	require.NotEmpty(t, changes)

	assert.Equal(t, before.Name, task.Name)
	assert.Equal(t, before.Status, task.Status)
	assert.Equal(t, before.Latitude, task.Latitude)
}
