package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telfield/telfield/internal/domain"
)

func TestBuildEvents_SharedTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	actor := Actor{ID: "u-1", Name: "Anna"}

	changes := domain.ChangeSet{
		domain.FieldStatus:     {From: "To do", To: "Assigned"},
		domain.FieldExecutorID: {To: "u-7"},
	}
	side := []domain.EventDetails{
		domain.AssignedDetails{ExecutorID: "u-7"},
	}

	events := buildEvents(changes, side, actor, now)
	require.Len(t, events, 2)

	assert.Equal(t, domain.EventUpdated, events[0].EventKind())
	assert.Equal(t, domain.EventAssigned, events[1].EventKind())
	for _, ev := range events {
		assert.True(t, ev.CreatedAt.Equal(now))
		assert.Equal(t, "u-1", ev.ActorID)
		assert.Equal(t, "Anna", ev.ActorName)
	}
}

func TestBuildEvents_EmptyInputsProduceNothing(t *testing.T) {
	assert.Empty(t, buildEvents(nil, nil, Actor{}, time.Now()))
}

func TestBuildEvents_SideEventsOnly(t *testing.T) {
	events := buildEvents(nil, []domain.EventDetails{
		domain.AssignedDetails{ExecutorID: "u-7"},
	}, Actor{ID: "u-1"}, time.Now())

	require.Len(t, events, 1)
	assert.Equal(t, domain.EventAssigned, events[0].EventKind())
}

func TestBuildUpdateSpec_SplitsSetAndClear(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	changes := domain.ChangeSet{
		domain.FieldName:        {From: "Old", To: "New"},
		domain.FieldDescription: {From: "text", To: nil},
	}

	upd := buildUpdateSpec(changes, nil, now)

	assert.Equal(t, map[domain.Field]any{domain.FieldName: "New"}, upd.Set)
	assert.Equal(t, []domain.Field{domain.FieldDescription}, upd.Clear)
	// Record and events share one timestamp.
	assert.True(t, upd.UpdatedAt.Equal(now))
}
