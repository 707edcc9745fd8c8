package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// Render produces a subject and body for a notification. Payload keys
// are free-form; the templates only reach for the ones the emitting
// service is known to set and fall back to a generic listing.
func Render(notificationType model.NotificationType, payload map[string]string) (subject, body string) {
	ministry := payload["ministry"]
	date := payload["date"]
	role := payload["role"]

	switch notificationType {
	case model.NotificationNewRoster:
		subject = fmt.Sprintf("New duty roster: %s", ministry)
		body = fmt.Sprintf("You have been assigned to %s as %s on %s.", ministry, role, date)
	case model.NotificationReminder24h:
		subject = fmt.Sprintf("Reminder: %s duty tomorrow", ministry)
		body = fmt.Sprintf("Your %s duty as %s is on %s.", ministry, role, date)
	case model.NotificationReminder1h:
		subject = fmt.Sprintf("Reminder: %s duty in one hour", ministry)
		body = fmt.Sprintf("Your %s duty as %s starts at %s.", ministry, role, date)
	case model.NotificationPresenceConfirmed:
		subject = fmt.Sprintf("Presence confirmed: %s", ministry)
		body = fmt.Sprintf("%s confirmed presence for %s on %s.", payload["member"], ministry, date)
	case model.NotificationSubstitutionRequest:
		subject = fmt.Sprintf("Substitution on %s roster", ministry)
		body = fmt.Sprintf("%s will be substituted by %s for %s on %s.",
			payload["original"], payload["replacement"], ministry, date)
	case model.NotificationSubstitutionReceived:
		subject = fmt.Sprintf("You are on the %s roster", ministry)
		body = fmt.Sprintf("You have been assigned by substitution to %s as %s on %s.", ministry, role, date)
	case model.NotificationRosterCancelled:
		subject = fmt.Sprintf("Roster cancelled: %s", ministry)
		body = fmt.Sprintf("The %s roster for %s has been cancelled.", ministry, date)
	case model.NotificationRosterUpdated:
		subject = fmt.Sprintf("Roster updated: %s", ministry)
		body = fmt.Sprintf("The %s roster for %s has been updated.", ministry, date)
	default:
		subject = string(notificationType)
		body = payloadSummary(payload)
	}

	if reason := payload["reason"]; reason != "" {
		body += fmt.Sprintf(" Reason: %s.", reason)
	}

	return subject, body
}

func payloadSummary(payload map[string]string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, payload[k]))
	}
	return strings.Join(parts, ", ")
}
