package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// InsertRoster inserts a new roster with its full entry array
func (d *DB) InsertRoster(ctx context.Context, roster *model.Roster) error {
	entries, err := json.Marshal(roster.Entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO roster (id, ministry_id, occurs_at, status, notes, entries, version)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
	`, roster.ID, roster.MinistryID, roster.OccursAt.UTC(), string(roster.Status), roster.Notes, entries)
	if err != nil {
		return fmt.Errorf("failed to insert roster: %w", err)
	}

	roster.Version = 1
	return nil
}

// GetRoster retrieves a roster by id
func (d *DB) GetRoster(ctx context.Context, id string) (*model.Roster, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, ministry_id, occurs_at, status, notes, entries, version
		FROM roster
		WHERE id = $1
	`, id)

	roster, err := scanRoster(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Kind: "roster", ID: id}
		}
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	return roster, nil
}

// ListRosters retrieves all rosters for a ministry ordered by occurrence
func (d *DB) ListRosters(ctx context.Context, ministryID string) ([]model.Roster, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, ministry_id, occurs_at, status, notes, entries, version
		FROM roster
		WHERE ministry_id = $1
		ORDER BY occurs_at
	`, ministryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	var rosters []model.Roster
	for rows.Next() {
		roster, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, *roster)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rosters: %w", err)
	}
	return rosters, nil
}

// ReplaceRoster rewrites a roster's status, notes, and entire entry
// array in one conditional write. The version check makes the
// replace-whole-array contract safe under racing confirmations: the
// loser gets a ConflictError instead of silently overwriting the
// winner's edit. On success the in-memory version is bumped to match.
func (d *DB) ReplaceRoster(ctx context.Context, roster *model.Roster) error {
	entries, err := json.Marshal(roster.Entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE roster
		SET status = $2, notes = $3, entries = $4, version = version + 1
		WHERE id = $1 AND version = $5
	`, roster.ID, string(roster.Status), roster.Notes, entries, roster.Version)
	if err != nil {
		return fmt.Errorf("failed to replace roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a lost race from a missing roster
		var exists bool
		if err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roster WHERE id = $1)`, roster.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check roster existence: %w", err)
		}
		if !exists {
			return &model.NotFoundError{Kind: "roster", ID: roster.ID}
		}
		return model.NewConflictError("roster %s changed concurrently", roster.ID)
	}

	roster.Version++
	return nil
}

// DeleteRoster removes a roster unconditionally
func (d *DB) DeleteRoster(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM roster WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{Kind: "roster", ID: id}
	}
	return nil
}

func scanRoster(row pgx.Row) (*model.Roster, error) {
	var r model.Roster
	var status string
	var entries []byte

	if err := row.Scan(&r.ID, &r.MinistryID, &r.OccursAt, &status, &r.Notes, &entries, &r.Version); err != nil {
		return nil, err
	}

	r.Status = model.RosterStatus(status)
	if err := json.Unmarshal(entries, &r.Entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return &r, nil
}
