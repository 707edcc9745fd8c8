package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/core/rotation"
	"github.com/lucasmdrs/escala/pkg/core/schedule"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
)

// GenerateRosterResult contains the persisted roster plus any
// best-effort side effects that failed
type GenerateRosterResult struct {
	Roster              *model.Roster
	FailedNotifications []string // member ids whose new_roster notice failed
	RemindersScheduled  int
}

// GenerateRoster produces the next duty roster for a ministry: it reads
// the rotation cursor, fills each required role from consecutive pool
// positions, resolves display names, persists the roster, and advances
// the cursor. New-roster notifications and reminders are fire-and-forget.
//
// occursAt may be zero, in which case the ministry's recurrence rule
// picks the first occurrence after now.
func GenerateRoster(ctx context.Context, ministries db.MinistryStore, cursors db.CursorStore, rosters db.RosterStore, directory db.MemberDirectory, notifier notify.Notifier, logger *zap.Logger, ministryID string, occursAt time.Time) (*GenerateRosterResult, error) {
	ministry, err := ministries.GetMinistry(ctx, ministryID)
	if err != nil {
		return nil, err
	}

	if !ministry.Active {
		return nil, model.NewValidationError("ministry %s is inactive", ministry.Name)
	}
	if len(ministry.Roles) == 0 {
		return nil, model.NewValidationError("ministry %s has no duty roles", ministry.Name)
	}
	if len(ministry.Members) == 0 {
		return nil, model.NewValidationError("ministry %s has no eligible members", ministry.Name)
	}

	if occursAt.IsZero() {
		occursAt, err = schedule.NextOccurrence(ministry.Recurrence, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to compute next occurrence: %w", err)
		}
		logger.Info("Computed next occurrence from recurrence rule",
			zap.String("ministry_id", ministryID),
			zap.Time("occurs_at", occursAt))
	}

	cursor, err := cursors.GetCursor(ctx, ministryID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Rotation cursor loaded",
		zap.String("ministry_id", ministryID),
		zap.Int("pool_size", len(cursor.Pool)),
		zap.Int("index", cursor.NormalizedIndex()))

	draft, err := rotation.Propose(cursor, ministry.Roles, occursAt)
	if err != nil {
		return nil, err
	}

	// A roster cannot be created with unresolved identities
	names := make(map[string]string, len(draft.Assignments))
	for _, a := range draft.Assignments {
		if _, ok := names[a.MemberID]; ok {
			continue
		}
		name, err := directory.ResolveMemberName(a.MemberID)
		if err != nil {
			return nil, &model.DependencyError{Dependency: "member directory", Err: err}
		}
		names[a.MemberID] = name
	}

	// Advancing first reserves the consumed pool positions: of two racing
	// generation calls only the CAS winner may persist a roster, so the
	// same positions are never assigned twice. A failed insert after a
	// won advance skips turns rather than duplicating them.
	if err := cursors.AdvanceCursor(ctx, ministryID, cursor.Version, draft.Consumed, draft.History); err != nil {
		return nil, err
	}

	roster := &model.Roster{
		ID:         uuid.New().String(),
		MinistryID: ministryID,
		OccursAt:   occursAt,
		Status:     model.RosterScheduled,
		Entries:    make([]model.RosterEntry, 0, len(draft.Assignments)),
	}
	for _, a := range draft.Assignments {
		roster.Entries = append(roster.Entries, model.RosterEntry{
			MemberID:   a.MemberID,
			MemberName: names[a.MemberID],
			Role:       a.Role,
			Status:     model.EntryPending,
		})
	}

	if err := rosters.InsertRoster(ctx, roster); err != nil {
		logger.Error("Roster insert failed after cursor advance; rotation positions were consumed",
			zap.String("ministry_id", ministryID),
			zap.Int("consumed", draft.Consumed),
			zap.Error(err))
		return nil, fmt.Errorf("failed to insert roster: %w", err)
	}

	logger.Info("Roster generated",
		zap.String("roster_id", roster.ID),
		zap.String("ministry_id", ministryID),
		zap.Time("occurs_at", occursAt),
		zap.Int("entries", len(roster.Entries)))

	result := &GenerateRosterResult{Roster: roster}

	// Side effects below are best-effort and never fail the generation
	for _, entry := range roster.Entries {
		_, err := notifier.Create(ctx, entry.MemberID, model.NotificationNewRoster, map[string]string{
			"ministry": ministry.Name,
			"role":     entry.Role,
			"date":     formatOccurrence(occursAt),
		})
		if err != nil {
			logger.Warn("Failed to notify assignee of new roster",
				zap.String("roster_id", roster.ID),
				zap.String("member_id", entry.MemberID),
				zap.Error(err))
			result.FailedNotifications = append(result.FailedNotifications, entry.MemberID)
		}
	}

	reminders, err := ScheduleReminders(ctx, rosters, ministries, notifier, logger, roster.ID, time.Now())
	if err != nil {
		logger.Warn("Failed to schedule reminders for new roster",
			zap.String("roster_id", roster.ID),
			zap.Error(err))
	} else {
		result.RemindersScheduled = reminders.Scheduled
	}

	return result, nil
}
