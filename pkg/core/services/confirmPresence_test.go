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

func pendingRoster() *model.Roster {
	return &model.Roster{
		ID:         "roster-1",
		MinistryID: "ministry-1",
		OccursAt:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Status:     model.RosterScheduled,
		Entries: []model.RosterEntry{
			{MemberID: "A", MemberName: "Alice", Role: "Vocal", Status: model.EntryPending},
			{MemberID: "B", MemberName: "Bruno", Role: "Guitar", Status: model.EntryPending},
		},
		Version: 1,
	}
}

func TestConfirmPresence(t *testing.T) {
	rosters := newMockRosterStore(pendingRoster())
	ministries := newMockMinistryStore(worshipMinistry())
	notifier := &mockNotifier{}
	now := time.Date(2025, 5, 30, 20, 0, 0, 0, time.UTC)

	roster, err := ConfirmPresence(context.Background(), rosters, ministries, notifier, zap.NewNop(), "roster-1", "A", now)
	require.NoError(t, err)

	entry := roster.EntryFor("A")
	assert.Equal(t, model.EntryConfirmed, entry.Status)
	require.NotNil(t, entry.ConfirmedAt)
	assert.Equal(t, now, *entry.ConfirmedAt)

	// The other entry is untouched
	assert.Equal(t, model.EntryPending, roster.EntryFor("B").Status)

	// Persisted, not just returned
	stored, err := rosters.GetRoster(context.Background(), "roster-1")
	require.NoError(t, err)
	assert.Equal(t, model.EntryConfirmed, stored.EntryFor("A").Status)

	// Stakeholder notices exclude the confirming member
	notices := notifier.callsOfType(model.NotificationPresenceConfirmed)
	require.NotEmpty(t, notices)
	for _, n := range notices {
		assert.NotEqual(t, "A", n.RecipientID)
	}
}

func TestConfirmPresence_SecondConfirmationConflicts(t *testing.T) {
	rosters := newMockRosterStore(pendingRoster())
	ministries := newMockMinistryStore(worshipMinistry())

	_, err := ConfirmPresence(context.Background(), rosters, ministries, &mockNotifier{}, zap.NewNop(), "roster-1", "A", time.Now())
	require.NoError(t, err)

	_, err = ConfirmPresence(context.Background(), rosters, ministries, &mockNotifier{}, zap.NewNop(), "roster-1", "A", time.Now())
	require.Error(t, err)

	var conflictErr *model.ConflictError
	assert.ErrorAs(t, err, &conflictErr)

	// Never a duplicate entry
	stored, err := rosters.GetRoster(context.Background(), "roster-1")
	require.NoError(t, err)
	assert.Len(t, stored.Entries, 2)
}

func TestConfirmPresence_UnknownMember(t *testing.T) {
	rosters := newMockRosterStore(pendingRoster())
	ministries := newMockMinistryStore(worshipMinistry())

	_, err := ConfirmPresence(context.Background(), rosters, ministries, &mockNotifier{}, zap.NewNop(), "roster-1", "Z", time.Now())
	require.Error(t, err)

	var notFoundErr *model.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "entry", notFoundErr.Kind)
}

func TestConfirmPresence_NotificationFailureIsInvisible(t *testing.T) {
	rosters := newMockRosterStore(pendingRoster())
	ministries := newMockMinistryStore(worshipMinistry())
	notifier := &mockNotifier{createErr: assert.AnError}

	_, err := ConfirmPresence(context.Background(), rosters, ministries, notifier, zap.NewNop(), "roster-1", "A", time.Now())
	assert.NoError(t, err)
}

func TestMarkAbsent(t *testing.T) {
	roster := pendingRoster()
	roster.Entries[1].Status = model.EntryConfirmed
	rosters := newMockRosterStore(roster)

	// Both pending and confirmed entries can be marked absent
	for _, memberID := range []string{"A", "B"} {
		updated, err := MarkAbsent(context.Background(), rosters, zap.NewNop(), "roster-1", memberID)
		require.NoError(t, err)
		assert.Equal(t, model.EntryAbsent, updated.EntryFor(memberID).Status)
	}
}

func TestMarkAbsent_TerminalEntryConflicts(t *testing.T) {
	roster := pendingRoster()
	roster.Entries[0].Status = model.EntrySubstituted
	rosters := newMockRosterStore(roster)

	_, err := MarkAbsent(context.Background(), rosters, zap.NewNop(), "roster-1", "A")
	require.Error(t, err)

	var conflictErr *model.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}
