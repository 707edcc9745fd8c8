package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// InitializeCursor creates or overwrites the rotation cursor for a
// ministry: index 0, empty history, fresh version. Idempotent; every
// pool edit resets rotation fairness.
func (d *DB) InitializeCursor(ctx context.Context, ministryID string, pool []string) error {
	if pool == nil {
		pool = []string{}
	}
	encoded, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to encode pool: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO rotation_cursor (ministry_id, pool, cursor_index, history, version)
		VALUES ($1, $2, 0, '[]', 1)
		ON CONFLICT (ministry_id)
		DO UPDATE SET pool = $2, cursor_index = 0, history = '[]', version = rotation_cursor.version + 1
	`, ministryID, encoded)
	if err != nil {
		return fmt.Errorf("failed to initialize rotation cursor: %w", err)
	}
	return nil
}

// GetCursor retrieves the rotation cursor for a ministry
func (d *DB) GetCursor(ctx context.Context, ministryID string) (*model.RotationCursor, error) {
	var c model.RotationCursor
	var pool, history []byte

	err := d.pool.QueryRow(ctx, `
		SELECT ministry_id, pool, cursor_index, history, version
		FROM rotation_cursor
		WHERE ministry_id = $1
	`, ministryID).Scan(&c.MinistryID, &pool, &c.Index, &history, &c.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Kind: "cursor", ID: ministryID}
		}
		return nil, fmt.Errorf("failed to get rotation cursor: %w", err)
	}

	if err := json.Unmarshal(pool, &c.Pool); err != nil {
		return nil, fmt.Errorf("failed to decode pool: %w", err)
	}
	if err := json.Unmarshal(history, &c.History); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return &c, nil
}

// AdvanceCursor moves the cursor index by consumed positions (mod pool
// length) and appends history entries. The write is conditional on
// expectedVersion so two racing roster generations cannot both consume
// the same positions; the loser gets a ConflictError. Advancing a
// cursor with an empty pool is an invalid state, surfaced, not ignored.
func (d *DB) AdvanceCursor(ctx context.Context, ministryID string, expectedVersion int64, consumed int, appended []model.HistoryEntry) error {
	cursor, err := d.GetCursor(ctx, ministryID)
	if err != nil {
		return err
	}

	if len(cursor.Pool) == 0 {
		return model.NewConflictError("rotation cursor for ministry %s has an empty pool", ministryID)
	}

	newIndex := (cursor.NormalizedIndex() + consumed) % len(cursor.Pool)
	history := append(cursor.History, appended...)
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE rotation_cursor
		SET cursor_index = $2, history = $3, version = version + 1
		WHERE ministry_id = $1 AND version = $4
	`, ministryID, newIndex, encoded, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to advance rotation cursor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewConflictError("rotation cursor for ministry %s changed concurrently", ministryID)
	}
	return nil
}
