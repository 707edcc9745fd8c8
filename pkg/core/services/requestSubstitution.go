package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
	"github.com/lucasmdrs/escala/pkg/notify"
)

// maxSubstitutionInformees caps the informational notices sent to other
// pool members on a substitution. A load-limiting choice, not a
// correctness requirement.
const maxSubstitutionInformees = 3

// RequestSubstitution replaces a pending assignee with another eligible
// member. The original entry becomes substituted (terminal) with
// ReplacedBy set; a new pending entry for the replacement is appended,
// same role. Both changes land in one versioned roster rewrite; if any
// precondition fails nothing is written. Notifications are
// fire-and-forget and never roll back the substitution.
func RequestSubstitution(ctx context.Context, rosters db.RosterStore, ministries db.MinistryStore, directory db.MemberDirectory, notifier notify.Notifier, logger *zap.Logger, rosterID, originalMemberID, replacementMemberID, reason string) (*model.Roster, error) {
	if originalMemberID == replacementMemberID {
		return nil, model.NewValidationError("replacement member must differ from the original")
	}

	roster, err := rosters.GetRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	entry := roster.EntryFor(originalMemberID)
	if entry == nil {
		return nil, &model.NotFoundError{Kind: "entry", ID: originalMemberID}
	}
	if entry.Status != model.EntryPending {
		return nil, model.NewConflictError("entry for member %s is %s, expected pending", originalMemberID, entry.Status)
	}
	if roster.HasMember(replacementMemberID) {
		return nil, model.NewConflictError("member %s is already on the roster", replacementMemberID)
	}

	ministry, err := ministries.GetMinistry(ctx, roster.MinistryID)
	if err != nil {
		return nil, err
	}
	if !memberInPool(ministry.Members, replacementMemberID) {
		return nil, model.NewValidationError("member %s is not in the %s eligible pool", replacementMemberID, ministry.Name)
	}

	replacementName, err := directory.ResolveMemberName(replacementMemberID)
	if err != nil {
		return nil, &model.DependencyError{Dependency: "member directory", Err: err}
	}

	entry.Status = model.EntrySubstituted
	entry.ReplacedBy = replacementMemberID
	if reason != "" {
		entry.Notes = appendNote(entry.Notes, fmt.Sprintf("substituted: %s", reason))
	}

	roster.Entries = append(roster.Entries, model.RosterEntry{
		MemberID:   replacementMemberID,
		MemberName: replacementName,
		Role:       entry.Role,
		Status:     model.EntryPending,
		Notes:      fmt.Sprintf("substitution for %s", entry.MemberName),
	})

	if err := rosters.ReplaceRoster(ctx, roster); err != nil {
		return nil, err
	}

	logger.Info("Substitution applied",
		zap.String("roster_id", rosterID),
		zap.String("original_member_id", originalMemberID),
		zap.String("replacement_member_id", replacementMemberID),
		zap.String("role", entry.Role))

	payload := map[string]string{
		"ministry":    ministry.Name,
		"role":        entry.Role,
		"date":        formatOccurrence(roster.OccursAt),
		"original":    entry.MemberName,
		"replacement": replacementName,
		"reason":      reason,
	}

	if _, err := notifier.Create(ctx, replacementMemberID, model.NotificationSubstitutionReceived, payload); err != nil {
		logger.Warn("Failed to notify replacement member",
			zap.String("roster_id", rosterID),
			zap.String("member_id", replacementMemberID),
			zap.Error(err))
	}

	informees := pickInformees(ministry.Members, maxSubstitutionInformees, originalMemberID, replacementMemberID)
	for _, memberID := range informees {
		if _, err := notifier.Create(ctx, memberID, model.NotificationSubstitutionRequest, payload); err != nil {
			logger.Warn("Failed to send substitution notice",
				zap.String("roster_id", rosterID),
				zap.String("member_id", memberID),
				zap.Error(err))
		}
	}

	return roster, nil
}
