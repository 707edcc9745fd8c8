package model

import "time"

// RecurrenceKind identifies how often a ministry's duty occurs
type RecurrenceKind string

const (
	RecurrenceWeekly   RecurrenceKind = "weekly"
	RecurrenceBiweekly RecurrenceKind = "biweekly"
	RecurrenceMonthly  RecurrenceKind = "monthly"
)

func (k RecurrenceKind) IsValid() bool {
	return k == RecurrenceWeekly || k == RecurrenceBiweekly || k == RecurrenceMonthly
}

// Recurrence describes when a ministry's duty occurs.
// Weekday is used for weekly and biweekly kinds, MonthDay for monthly.
type Recurrence struct {
	Kind     RecurrenceKind
	Weekday  time.Weekday
	MonthDay int
}

// Ministry represents a recurring duty group with its required roles
// and ordered eligible-member pool. Pool order drives rotation fairness.
type Ministry struct {
	ID         string
	Name       string
	Roles      []string
	Members    []string
	Recurrence Recurrence
	Active     bool
}

// EntryStatus is the confirmation lifecycle state of a roster entry
type EntryStatus string

const (
	EntryPending     EntryStatus = "pending"
	EntryConfirmed   EntryStatus = "confirmed"
	EntrySubstituted EntryStatus = "substituted"
	EntryAbsent      EntryStatus = "absent"
)

func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryPending, EntryConfirmed, EntrySubstituted, EntryAbsent:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave this state
func (s EntryStatus) IsTerminal() bool {
	return s == EntrySubstituted || s == EntryAbsent
}

// RosterStatus is the roster-level status, set only by explicit
// administrator action, never derived from entry statuses
type RosterStatus string

const (
	RosterScheduled RosterStatus = "scheduled"
	RosterConfirmed RosterStatus = "confirmed"
	RosterCancelled RosterStatus = "cancelled"
	RosterCompleted RosterStatus = "completed"
)

func (s RosterStatus) IsValid() bool {
	switch s {
	case RosterScheduled, RosterConfirmed, RosterCancelled, RosterCompleted:
		return true
	}
	return false
}

// RosterEntry is one member's assignment within a roster
type RosterEntry struct {
	MemberID    string
	MemberName  string // denormalized at assignment time for display stability
	Role        string
	Tag         string // optional free-form sub-assignment tag
	Status      EntryStatus
	ConfirmedAt *time.Time
	ReplacedBy  string // set only when Status is substituted
	Notes       string
}

// Roster is one dated occurrence of a ministry's duty
type Roster struct {
	ID         string
	MinistryID string
	OccursAt   time.Time
	Status     RosterStatus
	Notes      string
	Entries    []RosterEntry
	Version    int64
}

// EntryFor returns a pointer to the entry for the given member, or nil.
// When a member appears more than once (substitution chains), the first
// non-terminal entry wins, falling back to the first match.
func (r *Roster) EntryFor(memberID string) *RosterEntry {
	var fallback *RosterEntry
	for i := range r.Entries {
		if r.Entries[i].MemberID != memberID {
			continue
		}
		if !r.Entries[i].Status.IsTerminal() {
			return &r.Entries[i]
		}
		if fallback == nil {
			fallback = &r.Entries[i]
		}
	}
	return fallback
}

// HasMember reports whether the member appears in any entry
func (r *Roster) HasMember(memberID string) bool {
	for i := range r.Entries {
		if r.Entries[i].MemberID == memberID {
			return true
		}
	}
	return false
}

// HistoryEntry records one past assignment made by the rotation engine
type HistoryEntry struct {
	Date     time.Time
	MemberID string
	Role     string
}

// RotationCursor is the per-ministry rotation state: the ordered pool,
// the index of the next member to assign, and the assignment history.
// Version guards compare-and-swap advances at the storage layer.
type RotationCursor struct {
	MinistryID string
	Pool       []string
	Index      int
	History    []HistoryEntry
	Version    int64
}

// NormalizedIndex returns the cursor index modulo the current pool
// length, so a shrunken pool re-normalizes instead of failing.
// Returns 0 for an empty pool.
func (c *RotationCursor) NormalizedIndex() int {
	if len(c.Pool) == 0 {
		return 0
	}
	return c.Index % len(c.Pool)
}

// NotificationType identifies the message template a notification uses
type NotificationType string

const (
	NotificationNewRoster            NotificationType = "new_roster"
	NotificationReminder24h          NotificationType = "reminder_24h"
	NotificationReminder1h           NotificationType = "reminder_1h"
	NotificationPresenceConfirmed    NotificationType = "presence_confirmed"
	NotificationSubstitutionRequest  NotificationType = "substitution_requested"
	NotificationSubstitutionReceived NotificationType = "substitution_received"
	NotificationRosterCancelled      NotificationType = "roster_cancelled"
	NotificationRosterUpdated        NotificationType = "roster_updated"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewRoster, NotificationReminder24h, NotificationReminder1h,
		NotificationPresenceConfirmed, NotificationSubstitutionRequest,
		NotificationSubstitutionReceived, NotificationRosterCancelled,
		NotificationRosterUpdated:
		return true
	}
	return false
}
