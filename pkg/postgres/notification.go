package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
)

// InsertNotification persists a notification record
func (d *DB) InsertNotification(ctx context.Context, notification *db.Notification) error {
	payload, err := json.Marshal(notification.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO notification (id, recipient_id, type, payload, created_at, fire_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, notification.ID, notification.RecipientID, string(notification.Type), payload,
		notification.CreatedAt, notification.FireAt, notification.SentAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListDueNotifications returns unsent notifications whose fire time has
// passed. Immediate notifications (no fire time) that were persisted
// but never delivered are included so the drain can pick them up.
func (d *DB) ListDueNotifications(ctx context.Context, now time.Time) ([]db.Notification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, recipient_id, type, payload, created_at, fire_at, sent_at
		FROM notification
		WHERE sent_at IS NULL AND (fire_at IS NULL OR fire_at <= $1)
		ORDER BY created_at
	`, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query due notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.Notification
	for rows.Next() {
		var n db.Notification
		var notificationType string
		var payload []byte
		if err := rows.Scan(&n.ID, &n.RecipientID, &notificationType, &payload, &n.CreatedAt, &n.FireAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = model.NotificationType(notificationType)
		if err := json.Unmarshal(payload, &n.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode payload: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationSent records the delivery time for a notification
func (d *DB) MarkNotificationSent(ctx context.Context, id string, sentAt time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE notification SET sent_at = $2 WHERE id = $1
	`, id, sentAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{Kind: "notification", ID: id}
	}
	return nil
}
