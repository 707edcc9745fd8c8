package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
)

// Reminder offsets before a roster's occurrence
var reminderOffsets = []struct {
	Offset time.Duration
	Type   model.NotificationType
}{
	{24 * time.Hour, model.NotificationReminder24h},
	{1 * time.Hour, model.NotificationReminder1h},
}

// ScheduleRemindersResult reports how many reminder records were written
type ScheduleRemindersResult struct {
	Scheduled int
	Skipped   int // fire times already in the past at scheduling time
}

// ScheduleReminders writes a scheduled notification per assignee per
// reminder offset whose fire time is still strictly in the future.
// Scheduling only records the intended fire time; delivery is deferred
// to the drain worker, which filters by fire time. Write failures are
// logged and do not abort the remaining reminders.
func ScheduleReminders(ctx context.Context, rosters db.RosterStore, ministries db.MinistryStore, notifier notify.Notifier, logger *zap.Logger, rosterID string, now time.Time) (*ScheduleRemindersResult, error) {
	roster, err := rosters.GetRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	ministry, err := ministries.GetMinistry(ctx, roster.MinistryID)
	if err != nil {
		return nil, err
	}

	result := &ScheduleRemindersResult{}

	seen := make(map[string]bool, len(roster.Entries))
	for _, entry := range roster.Entries {
		if entry.Status.IsTerminal() || seen[entry.MemberID] {
			continue
		}
		seen[entry.MemberID] = true

		for _, reminder := range reminderOffsets {
			fireAt := roster.OccursAt.Add(-reminder.Offset)
			if !fireAt.After(now) {
				result.Skipped++
				continue
			}

			_, err := notifier.Schedule(ctx, entry.MemberID, reminder.Type, fireAt, map[string]string{
				"ministry": ministry.Name,
				"role":     entry.Role,
				"date":     formatOccurrence(roster.OccursAt),
			})
			if err != nil {
				logger.Warn("Failed to schedule reminder",
					zap.String("roster_id", rosterID),
					zap.String("member_id", entry.MemberID),
					zap.String("type", string(reminder.Type)),
					zap.Error(err))
				continue
			}
			result.Scheduled++
		}
	}

	logger.Info("Reminders scheduled",
		zap.String("roster_id", rosterID),
		zap.Int("scheduled", result.Scheduled),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
