package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

func TestCreateMinistry(t *testing.T) {
	ministries := newMockMinistryStore()
	cursors := &mockCursorStore{}

	ministry, err := CreateMinistry(context.Background(), ministries, cursors, zap.NewNop(), "Worship", []string{"Vocal", "Guitar"}, []string{"A", "B", "C"}, model.Recurrence{
		Kind:    model.RecurrenceWeekly,
		Weekday: time.Sunday,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ministry.ID)
	assert.True(t, ministry.Active)
	require.Len(t, ministries.inserted, 1)

	// Cursor initialized from the member pool at index 0
	require.Len(t, cursors.initialized, 1)
	assert.Equal(t, []string{"A", "B", "C"}, cursors.initialized[0])
	assert.Equal(t, 0, cursors.cursor.Index)
	assert.Equal(t, ministry.ID, cursors.cursor.MinistryID)
}

func TestCreateMinistry_Validation(t *testing.T) {
	weekly := model.Recurrence{Kind: model.RecurrenceWeekly, Weekday: time.Sunday}

	tests := []struct {
		name       string
		ministry   string
		members    []string
		recurrence model.Recurrence
	}{
		{name: "empty name", ministry: "", members: []string{"A"}, recurrence: weekly},
		{name: "duplicate member", ministry: "Worship", members: []string{"A", "B", "A"}, recurrence: weekly},
		{name: "empty member id", ministry: "Worship", members: []string{"A", ""}, recurrence: weekly},
		{name: "unknown recurrence kind", ministry: "Worship", members: []string{"A"}, recurrence: model.Recurrence{Kind: "daily"}},
		{name: "month day out of range", ministry: "Worship", members: []string{"A"}, recurrence: model.Recurrence{Kind: model.RecurrenceMonthly, MonthDay: 32}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ministries := newMockMinistryStore()
			cursors := &mockCursorStore{}

			_, err := CreateMinistry(context.Background(), ministries, cursors, zap.NewNop(), test.ministry, []string{"Vocal"}, test.members, test.recurrence)
			require.Error(t, err)

			var validationErr *model.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Empty(t, ministries.inserted)
			assert.Empty(t, cursors.initialized)
		})
	}
}

func TestSetPool(t *testing.T) {
	ministries := newMockMinistryStore(worshipMinistry())
	cursors := newMockCursorStore([]string{"A", "B", "C"}, 2)

	ministry, err := SetPool(context.Background(), ministries, cursors, zap.NewNop(), "ministry-1", []string{"B", "C", "D"})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C", "D"}, ministry.Members)
	require.Len(t, ministries.updated, 1)

	// Pool edits always reset the cursor to the start of the new pool
	assert.Equal(t, 0, cursors.cursor.Index)
	assert.Equal(t, []string{"B", "C", "D"}, cursors.cursor.Pool)
	assert.Empty(t, cursors.cursor.History)
}

func TestSetPool_DuplicateMember(t *testing.T) {
	ministries := newMockMinistryStore(worshipMinistry())
	cursors := newMockCursorStore([]string{"A", "B", "C"}, 2)

	_, err := SetPool(context.Background(), ministries, cursors, zap.NewNop(), "ministry-1", []string{"B", "B"})
	require.Error(t, err)

	var validationErr *model.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 2, cursors.cursor.Index)
}

func TestSetPool_MinistryNotFound(t *testing.T) {
	ministries := newMockMinistryStore()
	cursors := &mockCursorStore{}

	_, err := SetPool(context.Background(), ministries, cursors, zap.NewNop(), "missing", []string{"A"})
	require.Error(t, err)

	var notFoundErr *model.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestUpdateMinistry(t *testing.T) {
	ministries := newMockMinistryStore(worshipMinistry())

	ministry, err := UpdateMinistry(context.Background(), ministries, zap.NewNop(), "ministry-1", "Worship Team", []string{"Vocal", "Keys"}, model.Recurrence{
		Kind:     model.RecurrenceMonthly,
		MonthDay: 15,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "Worship Team", ministry.Name)
	assert.Equal(t, []string{"Vocal", "Keys"}, ministry.Roles)
	assert.False(t, ministry.Active)

	// Member pool is untouched; that edit goes through SetPool
	assert.Equal(t, []string{"A", "B", "C"}, ministry.Members)
}

func TestDeleteMinistry(t *testing.T) {
	ministries := newMockMinistryStore(worshipMinistry())

	err := DeleteMinistry(context.Background(), ministries, zap.NewNop(), "ministry-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ministry-1"}, ministries.deleted)

	err = DeleteMinistry(context.Background(), ministries, zap.NewNop(), "ministry-1")
	var notFoundErr *model.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
