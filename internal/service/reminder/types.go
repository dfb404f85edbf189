package reminder

import (
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// Preference lookup results reported to metrics.
const (
	lookupFound    = "found"
	lookupDisabled = "disabled"
	lookupMissing  = "not_found"
	lookupFailed   = "error"
)

type Config struct {
	DefaultLeadMinutes int
	NotificationTitle  string
	Presentation       domain.NotificationPresentation
}

func (c Config) defaultLead() int {
	if c.DefaultLeadMinutes < 0 {
		return domain.DefaultLeadMinutes
	}
	return c.DefaultLeadMinutes
}
