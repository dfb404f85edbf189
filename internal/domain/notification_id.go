package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NotificationIDPrefix starts every notification ID. The IDs double as task
// names in the platform scheduler.
const NotificationIDPrefix = "reminder-"

func NewNotificationID() string {
	return NotificationIDPrefix + uuid.NewString()
}

// IsValidNotificationID reports whether id has the reminder-<uuid> form.
func IsValidNotificationID(id string) bool {
	raw, ok := strings.CutPrefix(id, NotificationIDPrefix)
	if !ok || len(raw) != 36 {
		return false
	}
	_, err := uuid.Parse(raw)
	return err == nil
}
