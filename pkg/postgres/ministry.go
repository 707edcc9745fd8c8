package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// InsertMinistry inserts a new ministry record
func (d *DB) InsertMinistry(ctx context.Context, ministry *model.Ministry) error {
	roles, err := json.Marshal(ministry.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	members, err := json.Marshal(ministry.Members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO ministry (id, name, roles, members, recurrence_kind, recurrence_weekday, recurrence_monthday, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, ministry.ID, ministry.Name, roles, members,
		string(ministry.Recurrence.Kind), int(ministry.Recurrence.Weekday), ministry.Recurrence.MonthDay,
		ministry.Active)
	if err != nil {
		return fmt.Errorf("failed to insert ministry: %w", err)
	}
	return nil
}

// UpdateMinistry rewrites a ministry record
func (d *DB) UpdateMinistry(ctx context.Context, ministry *model.Ministry) error {
	roles, err := json.Marshal(ministry.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	members, err := json.Marshal(ministry.Members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE ministry
		SET name = $2, roles = $3, members = $4,
		    recurrence_kind = $5, recurrence_weekday = $6, recurrence_monthday = $7,
		    active = $8
		WHERE id = $1
	`, ministry.ID, ministry.Name, roles, members,
		string(ministry.Recurrence.Kind), int(ministry.Recurrence.Weekday), ministry.Recurrence.MonthDay,
		ministry.Active)
	if err != nil {
		return fmt.Errorf("failed to update ministry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{Kind: "ministry", ID: ministry.ID}
	}
	return nil
}

// GetMinistry retrieves a ministry by id
func (d *DB) GetMinistry(ctx context.Context, id string) (*model.Ministry, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, name, roles, members, recurrence_kind, recurrence_weekday, recurrence_monthday, active
		FROM ministry
		WHERE id = $1
	`, id)

	ministry, err := scanMinistry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Kind: "ministry", ID: id}
		}
		return nil, fmt.Errorf("failed to get ministry: %w", err)
	}
	return ministry, nil
}

// ListMinistries retrieves all ministry records
func (d *DB) ListMinistries(ctx context.Context) ([]model.Ministry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, roles, members, recurrence_kind, recurrence_weekday, recurrence_monthday, active
		FROM ministry
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ministries: %w", err)
	}
	defer rows.Close()

	var ministries []model.Ministry
	for rows.Next() {
		ministry, err := scanMinistry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ministry: %w", err)
		}
		ministries = append(ministries, *ministry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ministries: %w", err)
	}
	return ministries, nil
}

// DeleteMinistry removes a ministry; the rotation cursor goes with it
// via the foreign key cascade
func (d *DB) DeleteMinistry(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM ministry WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ministry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{Kind: "ministry", ID: id}
	}
	return nil
}

func scanMinistry(row pgx.Row) (*model.Ministry, error) {
	var m model.Ministry
	var roles, members []byte
	var kind string
	var weekday int

	if err := row.Scan(&m.ID, &m.Name, &roles, &members, &kind, &weekday, &m.Recurrence.MonthDay, &m.Active); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(roles, &m.Roles); err != nil {
		return nil, fmt.Errorf("failed to decode roles: %w", err)
	}
	if err := json.Unmarshal(members, &m.Members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	m.Recurrence.Kind = model.RecurrenceKind(kind)
	m.Recurrence.Weekday = time.Weekday(weekday)

	return &m, nil
}
