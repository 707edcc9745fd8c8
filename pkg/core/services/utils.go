package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
)

// formatOccurrence renders an occurrence time for notification payloads
func formatOccurrence(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}

func memberInPool(pool []string, memberID string) bool {
	for _, id := range pool {
		if id == memberID {
			return true
		}
	}
	return false
}

// pickInformees selects up to max pool members in pool order, skipping
// the excluded ids
func pickInformees(pool []string, max int, exclude ...string) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	informees := make([]string, 0, max)
	for _, id := range pool {
		if excluded[id] {
			continue
		}
		informees = append(informees, id)
		if len(informees) == max {
			break
		}
	}
	return informees
}

// notifyStakeholders sends an informational notice to up to
// maxSubstitutionInformees pool members, excluding the acting member.
// Best-effort: every failure is logged and swallowed.
func notifyStakeholders(ctx context.Context, ministries db.MinistryStore, notifier notify.Notifier, logger *zap.Logger, roster *model.Roster, notificationType model.NotificationType, payload map[string]string, actingMemberID string) {
	ministry, err := ministries.GetMinistry(ctx, roster.MinistryID)
	if err != nil {
		logger.Warn("Failed to load ministry for stakeholder notices",
			zap.String("roster_id", roster.ID),
			zap.Error(err))
		return
	}
	payload["ministry"] = ministry.Name

	for _, memberID := range pickInformees(ministry.Members, maxSubstitutionInformees, actingMemberID) {
		if _, err := notifier.Create(ctx, memberID, notificationType, payload); err != nil {
			logger.Warn("Failed to send stakeholder notice",
				zap.String("roster_id", roster.ID),
				zap.String("member_id", memberID),
				zap.Error(err))
		}
	}
}
