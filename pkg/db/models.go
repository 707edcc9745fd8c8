package db

import (
	"time"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// Notification is a persisted notification record written by the
// dispatch façade. FireAt nil means the notification is immediate;
// otherwise it is a scheduled reminder a delivery worker must filter
// by fire time before dispatching.
type Notification struct {
	ID          string
	RecipientID string
	Type        model.NotificationType
	Payload     map[string]string
	CreatedAt   time.Time
	FireAt      *time.Time
	SentAt      *time.Time
}
