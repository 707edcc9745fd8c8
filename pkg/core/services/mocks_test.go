package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
)

// Test doubles for the store interfaces, shared across the service tests

type mockMinistryStore struct {
	ministries map[string]*model.Ministry
	inserted   []*model.Ministry
	updated    []*model.Ministry
	deleted    []string
	getErr     error
	insertErr  error
	updateErr  error
}

func newMockMinistryStore(ministries ...*model.Ministry) *mockMinistryStore {
	store := &mockMinistryStore{ministries: make(map[string]*model.Ministry)}
	for _, m := range ministries {
		store.ministries[m.ID] = m
	}
	return store
}

func (s *mockMinistryStore) InsertMinistry(ctx context.Context, ministry *model.Ministry) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.ministries[ministry.ID] = ministry
	s.inserted = append(s.inserted, ministry)
	return nil
}

func (s *mockMinistryStore) UpdateMinistry(ctx context.Context, ministry *model.Ministry) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.ministries[ministry.ID]; !ok {
		return &model.NotFoundError{Kind: "ministry", ID: ministry.ID}
	}
	s.ministries[ministry.ID] = ministry
	s.updated = append(s.updated, ministry)
	return nil
}

func (s *mockMinistryStore) GetMinistry(ctx context.Context, id string) (*model.Ministry, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	ministry, ok := s.ministries[id]
	if !ok {
		return nil, &model.NotFoundError{Kind: "ministry", ID: id}
	}
	return ministry, nil
}

func (s *mockMinistryStore) ListMinistries(ctx context.Context) ([]model.Ministry, error) {
	var out []model.Ministry
	for _, m := range s.ministries {
		out = append(out, *m)
	}
	return out, nil
}

func (s *mockMinistryStore) DeleteMinistry(ctx context.Context, id string) error {
	if _, ok := s.ministries[id]; !ok {
		return &model.NotFoundError{Kind: "ministry", ID: id}
	}
	delete(s.ministries, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type mockCursorStore struct {
	cursor      *model.RotationCursor
	initialized [][]string
	advanceErr  error
}

func newMockCursorStore(pool []string, index int) *mockCursorStore {
	return &mockCursorStore{
		cursor: &model.RotationCursor{
			MinistryID: "ministry-1",
			Pool:       pool,
			Index:      index,
			Version:    1,
		},
	}
}

func (s *mockCursorStore) InitializeCursor(ctx context.Context, ministryID string, pool []string) error {
	s.cursor = &model.RotationCursor{
		MinistryID: ministryID,
		Pool:       pool,
		Index:      0,
		Version:    1,
	}
	s.initialized = append(s.initialized, pool)
	return nil
}

func (s *mockCursorStore) GetCursor(ctx context.Context, ministryID string) (*model.RotationCursor, error) {
	if s.cursor == nil {
		return nil, &model.NotFoundError{Kind: "cursor", ID: ministryID}
	}
	copied := *s.cursor
	return &copied, nil
}

func (s *mockCursorStore) AdvanceCursor(ctx context.Context, ministryID string, expectedVersion int64, consumed int, appended []model.HistoryEntry) error {
	if s.advanceErr != nil {
		return s.advanceErr
	}
	if s.cursor == nil {
		return &model.NotFoundError{Kind: "cursor", ID: ministryID}
	}
	if len(s.cursor.Pool) == 0 {
		return model.NewConflictError("rotation cursor for ministry %s has an empty pool", ministryID)
	}
	if s.cursor.Version != expectedVersion {
		return model.NewConflictError("rotation cursor for ministry %s changed concurrently", ministryID)
	}
	s.cursor.Index = (s.cursor.NormalizedIndex() + consumed) % len(s.cursor.Pool)
	s.cursor.History = append(s.cursor.History, appended...)
	s.cursor.Version++
	return nil
}

type mockRosterStore struct {
	rosters    map[string]*model.Roster
	inserted   []*model.Roster
	deleted    []string
	insertErr  error
	replaceErr error
}

func newMockRosterStore(rosters ...*model.Roster) *mockRosterStore {
	store := &mockRosterStore{rosters: make(map[string]*model.Roster)}
	for _, r := range rosters {
		store.rosters[r.ID] = r
	}
	return store
}

func (s *mockRosterStore) InsertRoster(ctx context.Context, roster *model.Roster) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	roster.Version = 1
	s.rosters[roster.ID] = roster
	s.inserted = append(s.inserted, roster)
	return nil
}

func (s *mockRosterStore) GetRoster(ctx context.Context, id string) (*model.Roster, error) {
	roster, ok := s.rosters[id]
	if !ok {
		return nil, &model.NotFoundError{Kind: "roster", ID: id}
	}
	// Deep-copy entries so tests observe only persisted mutations
	copied := *roster
	copied.Entries = append([]model.RosterEntry(nil), roster.Entries...)
	return &copied, nil
}

func (s *mockRosterStore) ListRosters(ctx context.Context, ministryID string) ([]model.Roster, error) {
	var out []model.Roster
	for _, r := range s.rosters {
		if r.MinistryID == ministryID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *mockRosterStore) ReplaceRoster(ctx context.Context, roster *model.Roster) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	stored, ok := s.rosters[roster.ID]
	if !ok {
		return &model.NotFoundError{Kind: "roster", ID: roster.ID}
	}
	if stored.Version != roster.Version {
		return model.NewConflictError("roster %s changed concurrently", roster.ID)
	}
	roster.Version++
	copied := *roster
	copied.Entries = append([]model.RosterEntry(nil), roster.Entries...)
	s.rosters[roster.ID] = &copied
	return nil
}

func (s *mockRosterStore) DeleteRoster(ctx context.Context, id string) error {
	if _, ok := s.rosters[id]; !ok {
		return &model.NotFoundError{Kind: "roster", ID: id}
	}
	delete(s.rosters, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type mockDirectory struct {
	names  map[string]string
	emails map[string]string
}

func (d *mockDirectory) ResolveMemberName(memberID string) (string, error) {
	name, ok := d.names[memberID]
	if !ok {
		return "", fmt.Errorf("member %s not found", memberID)
	}
	return name, nil
}

func (d *mockDirectory) MemberEmail(memberID string) (string, error) {
	email, ok := d.emails[memberID]
	if !ok {
		return "", fmt.Errorf("member %s has no email", memberID)
	}
	return email, nil
}

type notifierCall struct {
	RecipientID string
	Type        model.NotificationType
	FireAt      time.Time // zero for immediate notifications
	Payload     map[string]string
}

type mockNotifier struct {
	calls       []notifierCall
	createErr   error
	scheduleErr error
}

func (n *mockNotifier) Create(ctx context.Context, recipientID string, notificationType model.NotificationType, payload map[string]string) (string, error) {
	if n.createErr != nil {
		return "", n.createErr
	}
	n.calls = append(n.calls, notifierCall{RecipientID: recipientID, Type: notificationType, Payload: payload})
	return fmt.Sprintf("notification-%d", len(n.calls)), nil
}

func (n *mockNotifier) Schedule(ctx context.Context, recipientID string, notificationType model.NotificationType, fireAt time.Time, payload map[string]string) (string, error) {
	if n.scheduleErr != nil {
		return "", n.scheduleErr
	}
	n.calls = append(n.calls, notifierCall{RecipientID: recipientID, Type: notificationType, FireAt: fireAt, Payload: payload})
	return fmt.Sprintf("notification-%d", len(n.calls)), nil
}

func (n *mockNotifier) callsOfType(notificationType model.NotificationType) []notifierCall {
	var out []notifierCall
	for _, c := range n.calls {
		if c.Type == notificationType {
			out = append(out, c)
		}
	}
	return out
}

var _ db.MinistryStore = (*mockMinistryStore)(nil)
var _ db.CursorStore = (*mockCursorStore)(nil)
var _ db.RosterStore = (*mockRosterStore)(nil)
var _ db.MemberDirectory = (*mockDirectory)(nil)
