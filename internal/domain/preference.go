package domain

import "time"

// DefaultLeadMinutes is the lead time used when a user has no usable
// reminder preference.
const DefaultLeadMinutes = 15

// ReminderPreference is the per-user reminder setting owned by the
// preference store.
type ReminderPreference struct {
	UserID      string
	Enabled     bool
	LeadMinutes int
	UpdatedAt   time.Time
}

func NewReminderPreference(userID string, enabled bool, leadMinutes int) (*ReminderPreference, error) {
	if userID == "" || leadMinutes < 0 {
		return nil, ErrInvalidPreference
	}

	return &ReminderPreference{
		UserID:      userID,
		Enabled:     enabled,
		LeadMinutes: leadMinutes,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

func (p *ReminderPreference) LeadTime() time.Duration {
	return time.Duration(p.LeadMinutes) * time.Minute
}
