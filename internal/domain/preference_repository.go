package domain

import "context"

//go:generate mockgen -source=preference_repository.go -destination=preference_repository_mock.go -package=domain

type PreferenceRepository interface {
	// GetReminderPreference returns ErrPreferenceNotFound when the user has no record.
	GetReminderPreference(ctx context.Context, userID string) (*ReminderPreference, error)
	SaveReminderPreference(ctx context.Context, pref *ReminderPreference) error
}
