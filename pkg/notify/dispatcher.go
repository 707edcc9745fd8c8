// Package notify is the notification dispatch façade: it persists
// notification records and optionally pushes them through a delivery
// channel. Services treat every call as fire-and-forget; a channel
// failure never rolls back the state transition that triggered it.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
)

// Channel delivers a rendered notification to a recipient address.
// Implementations are expected to be slow and flaky (external APIs);
// the dispatcher logs failures and moves on.
type Channel interface {
	Deliver(to, subject, body string) error
}

// Notifier is the façade surface consumed by services
type Notifier interface {
	Create(ctx context.Context, recipientID string, notificationType model.NotificationType, payload map[string]string) (string, error)
	Schedule(ctx context.Context, recipientID string, notificationType model.NotificationType, fireAt time.Time, payload map[string]string) (string, error)
}

// Dispatcher persists notifications and pushes immediate ones through
// the delivery channel when one is configured. A nil channel puts the
// dispatcher in store-only mode.
type Dispatcher struct {
	store     db.NotificationStore
	directory db.MemberDirectory
	channel   Channel
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. channel may be nil (store-only).
func NewDispatcher(store db.NotificationStore, directory db.MemberDirectory, channel Channel, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		directory: directory,
		channel:   channel,
		logger:    logger,
	}
}

// Create persists an immediate notification and pushes it best-effort
func (d *Dispatcher) Create(ctx context.Context, recipientID string, notificationType model.NotificationType, payload map[string]string) (string, error) {
	if !notificationType.IsValid() {
		return "", model.NewValidationError("unknown notification type %q", notificationType)
	}

	notification := &db.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Type:        notificationType,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}

	if err := d.store.InsertNotification(ctx, notification); err != nil {
		return "", fmt.Errorf("failed to persist notification: %w", err)
	}

	if d.channel != nil {
		if err := d.push(ctx, notification); err != nil {
			// The record stands; delivery is best-effort
			d.logger.Warn("Notification delivery failed",
				zap.String("notification_id", notification.ID),
				zap.String("recipient_id", recipientID),
				zap.String("type", string(notificationType)),
				zap.Error(err))
		}
	}

	return notification.ID, nil
}

// Schedule persists a future-dated notification. It is never pushed at
// write time; DispatchDue filters by fire time before delivering.
func (d *Dispatcher) Schedule(ctx context.Context, recipientID string, notificationType model.NotificationType, fireAt time.Time, payload map[string]string) (string, error) {
	if !notificationType.IsValid() {
		return "", model.NewValidationError("unknown notification type %q", notificationType)
	}

	fireAtUTC := fireAt.UTC()
	notification := &db.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Type:        notificationType,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
		FireAt:      &fireAtUTC,
	}

	if err := d.store.InsertNotification(ctx, notification); err != nil {
		return "", fmt.Errorf("failed to persist scheduled notification: %w", err)
	}

	return notification.ID, nil
}

// DispatchDue delivers every unsent notification whose fire time has
// passed. Per-record failures are logged and skipped so one bad
// recipient cannot block the drain. Returns the number delivered.
func (d *Dispatcher) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	if d.channel == nil {
		return 0, model.NewValidationError("no delivery channel configured")
	}

	due, err := d.store.ListDueNotifications(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due notifications: %w", err)
	}

	sent := 0
	for i := range due {
		if err := d.push(ctx, &due[i]); err != nil {
			d.logger.Warn("Failed to deliver due notification",
				zap.String("notification_id", due[i].ID),
				zap.String("recipient_id", due[i].RecipientID),
				zap.Error(err))
			continue
		}
		sent++
	}

	d.logger.Info("Due notifications dispatched",
		zap.Int("due", len(due)),
		zap.Int("sent", sent))

	return sent, nil
}

func (d *Dispatcher) push(ctx context.Context, notification *db.Notification) error {
	email, err := d.directory.MemberEmail(notification.RecipientID)
	if err != nil {
		return &model.DependencyError{Dependency: "member directory", Err: err}
	}

	subject, body := Render(notification.Type, notification.Payload)
	if err := d.channel.Deliver(email, subject, body); err != nil {
		return &model.DependencyError{Dependency: "delivery channel", Err: err}
	}

	if err := d.store.MarkNotificationSent(ctx, notification.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	return nil
}
