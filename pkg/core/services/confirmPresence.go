package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
)

// ConfirmPresence moves a member's pending roster entry to confirmed
// and records the confirmation time. A second confirmation of the same
// entry is a ConflictError, never a duplicate entry. Stakeholder
// notifications are fire-and-forget.
func ConfirmPresence(ctx context.Context, rosters db.RosterStore, ministries db.MinistryStore, notifier notify.Notifier, logger *zap.Logger, rosterID, memberID string, now time.Time) (*model.Roster, error) {
	roster, err := rosters.GetRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	entry := roster.EntryFor(memberID)
	if entry == nil {
		return nil, &model.NotFoundError{Kind: "entry", ID: memberID}
	}
	if entry.Status != model.EntryPending {
		return nil, model.NewConflictError("entry for member %s is %s, expected pending", memberID, entry.Status)
	}

	confirmedAt := now.UTC()
	entry.Status = model.EntryConfirmed
	entry.ConfirmedAt = &confirmedAt

	if err := rosters.ReplaceRoster(ctx, roster); err != nil {
		return nil, err
	}

	logger.Info("Presence confirmed",
		zap.String("roster_id", rosterID),
		zap.String("member_id", memberID),
		zap.Time("confirmed_at", confirmedAt))

	notifyStakeholders(ctx, ministries, notifier, logger, roster, model.NotificationPresenceConfirmed, map[string]string{
		"member": entry.MemberName,
		"date":   formatOccurrence(roster.OccursAt),
	}, memberID)

	return roster, nil
}

// MarkAbsent is the administrative override that moves a pending or
// confirmed entry to absent. Absent is terminal; there is no automated
// trigger for it, only this explicit action.
func MarkAbsent(ctx context.Context, rosters db.RosterStore, logger *zap.Logger, rosterID, memberID string) (*model.Roster, error) {
	roster, err := rosters.GetRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	entry := roster.EntryFor(memberID)
	if entry == nil {
		return nil, &model.NotFoundError{Kind: "entry", ID: memberID}
	}
	if entry.Status != model.EntryPending && entry.Status != model.EntryConfirmed {
		return nil, model.NewConflictError("entry for member %s is %s, cannot mark absent", memberID, entry.Status)
	}

	entry.Status = model.EntryAbsent

	if err := rosters.ReplaceRoster(ctx, roster); err != nil {
		return nil, err
	}

	logger.Info("Entry marked absent",
		zap.String("roster_id", rosterID),
		zap.String("member_id", memberID))

	return roster, nil
}
