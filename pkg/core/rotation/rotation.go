// Package rotation implements round-robin duty assignment over a
// ministry's rotation cursor. Selection is purely positional: every
// pool member is treated as equally qualified for every role, and
// fairness comes from consuming consecutive pool positions starting at
// the cursor. Per-role eligibility filtering is deliberately absent;
// honoring it would require per-role eligible subsets on the ministry.
package rotation

import (
	"time"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// Assignment is one (member, role) pairing produced by a draft
type Assignment struct {
	MemberID string
	Role     string
}

// Draft is the result of one rotation pass: the assignments in role
// order, the matching history entries, and how many pool positions were
// consumed (always len(roles)).
type Draft struct {
	Assignments []Assignment
	History     []model.HistoryEntry
	Consumed    int
}

// Propose fills each required role from consecutive pool positions
// starting at the cursor. With more roles than pool members the cursor
// wraps and members repeat within the same draft; that is expected.
// An empty pool is a validation error the caller must surface before
// any write.
func Propose(cursor *model.RotationCursor, roles []string, occursAt time.Time) (*Draft, error) {
	n := len(cursor.Pool)
	if n == 0 {
		return nil, model.NewValidationError("ministry %s has no eligible members", cursor.MinistryID)
	}
	if len(roles) == 0 {
		return nil, model.NewValidationError("ministry %s has no duty roles", cursor.MinistryID)
	}

	start := cursor.NormalizedIndex()

	draft := &Draft{
		Assignments: make([]Assignment, 0, len(roles)),
		History:     make([]model.HistoryEntry, 0, len(roles)),
		Consumed:    len(roles),
	}

	for offset, role := range roles {
		memberID := cursor.Pool[(start+offset)%n]
		draft.Assignments = append(draft.Assignments, Assignment{
			MemberID: memberID,
			Role:     role,
		})
		draft.History = append(draft.History, model.HistoryEntry{
			Date:     occursAt,
			MemberID: memberID,
			Role:     role,
		})
	}

	return draft, nil
}

// NextIndex returns the cursor index after consuming the given number
// of positions from a pool of size n
func NextIndex(index, consumed, n int) int {
	if n == 0 {
		return 0
	}
	return (index + consumed) % n
}
