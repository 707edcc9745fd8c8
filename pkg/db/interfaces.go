package db

import (
	"context"
	"time"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// MinistryStore defines the interface for ministry registry operations
type MinistryStore interface {
	InsertMinistry(ctx context.Context, ministry *model.Ministry) error
	UpdateMinistry(ctx context.Context, ministry *model.Ministry) error
	GetMinistry(ctx context.Context, id string) (*model.Ministry, error)
	ListMinistries(ctx context.Context) ([]model.Ministry, error)
	// DeleteMinistry removes a ministry and cascades to its rotation cursor
	DeleteMinistry(ctx context.Context, id string) error
}

// CursorStore defines the interface for rotation cursor operations
type CursorStore interface {
	// InitializeCursor creates or overwrites the cursor with index 0 and
	// empty history. Idempotent; every pool edit resets fairness.
	InitializeCursor(ctx context.Context, ministryID string, pool []string) error
	GetCursor(ctx context.Context, ministryID string) (*model.RotationCursor, error)
	// AdvanceCursor atomically moves the index by consumed positions
	// (mod pool length) and appends history. The write is conditional on
	// expectedVersion; a lost race surfaces as a ConflictError. Advancing
	// a cursor with an empty pool is a ConflictError, never a no-op.
	AdvanceCursor(ctx context.Context, ministryID string, expectedVersion int64, consumed int, appended []model.HistoryEntry) error
}

// RosterStore defines the interface for roster persistence. Entry
// mutations always replace the whole entry array in one write.
type RosterStore interface {
	InsertRoster(ctx context.Context, roster *model.Roster) error
	GetRoster(ctx context.Context, id string) (*model.Roster, error)
	ListRosters(ctx context.Context, ministryID string) ([]model.Roster, error)
	// ReplaceRoster rewrites status, notes, and the entire entry array,
	// conditional on roster.Version; a lost race surfaces as a
	// ConflictError. On success roster.Version is bumped.
	ReplaceRoster(ctx context.Context, roster *model.Roster) error
	DeleteRoster(ctx context.Context, id string) error
}

// NotificationStore defines the interface for the dispatch façade's
// persistence
type NotificationStore interface {
	InsertNotification(ctx context.Context, notification *Notification) error
	// ListDueNotifications returns unsent notifications whose fire time
	// has passed (or that are immediate and still unsent)
	ListDueNotifications(ctx context.Context, now time.Time) ([]Notification, error)
	MarkNotificationSent(ctx context.Context, id string, sentAt time.Time) error
}

// MemberDirectory resolves member identities from the external member
// store. Name resolution failure aborts roster generation; email
// resolution failure only degrades delivery.
type MemberDirectory interface {
	ResolveMemberName(memberID string) (string, error)
	MemberEmail(memberID string) (string, error)
}
