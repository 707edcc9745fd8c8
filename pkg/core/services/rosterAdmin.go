package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
)

// CancelRoster sets a roster's status to cancelled and notifies the
// assignees. Roster-level status is set only by explicit administrator
// action; it is never derived from entry statuses.
func CancelRoster(ctx context.Context, rosters db.RosterStore, ministries db.MinistryStore, notifier notify.Notifier, logger *zap.Logger, rosterID string) (*model.Roster, error) {
	return setRosterStatus(ctx, rosters, ministries, notifier, logger, rosterID, model.RosterCancelled, model.NotificationRosterCancelled)
}

// CompleteRoster sets a roster's status to completed
func CompleteRoster(ctx context.Context, rosters db.RosterStore, ministries db.MinistryStore, notifier notify.Notifier, logger *zap.Logger, rosterID string) (*model.Roster, error) {
	return setRosterStatus(ctx, rosters, ministries, notifier, logger, rosterID, model.RosterCompleted, model.NotificationRosterUpdated)
}

func setRosterStatus(ctx context.Context, rosters db.RosterStore, ministries db.MinistryStore, notifier notify.Notifier, logger *zap.Logger, rosterID string, status model.RosterStatus, notificationType model.NotificationType) (*model.Roster, error) {
	roster, err := rosters.GetRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	if roster.Status == model.RosterCancelled || roster.Status == model.RosterCompleted {
		return nil, model.NewConflictError("roster is already %s", roster.Status)
	}

	roster.Status = status
	if err := rosters.ReplaceRoster(ctx, roster); err != nil {
		return nil, err
	}

	logger.Info("Roster status changed",
		zap.String("roster_id", rosterID),
		zap.String("status", string(status)))

	ministry, err := ministries.GetMinistry(ctx, roster.MinistryID)
	if err != nil {
		// Status change already persisted; the notice is best-effort
		logger.Warn("Failed to load ministry for roster status notice",
			zap.String("roster_id", rosterID),
			zap.Error(err))
		return roster, nil
	}

	payload := map[string]string{
		"ministry": ministry.Name,
		"date":     formatOccurrence(roster.OccursAt),
	}
	seen := make(map[string]bool, len(roster.Entries))
	for _, entry := range roster.Entries {
		if entry.Status.IsTerminal() || seen[entry.MemberID] {
			continue
		}
		seen[entry.MemberID] = true
		if _, err := notifier.Create(ctx, entry.MemberID, notificationType, payload); err != nil {
			logger.Warn("Failed to send roster status notice",
				zap.String("roster_id", rosterID),
				zap.String("member_id", entry.MemberID),
				zap.Error(err))
		}
	}

	return roster, nil
}

// DeleteRoster removes a roster unconditionally; no referential cleanup
// is required elsewhere
func DeleteRoster(ctx context.Context, rosters db.RosterStore, logger *zap.Logger, rosterID string) error {
	if err := rosters.DeleteRoster(ctx, rosterID); err != nil {
		return err
	}
	logger.Info("Roster deleted", zap.String("roster_id", rosterID))
	return nil
}
