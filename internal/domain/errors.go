package domain

import "errors"

var (
	ErrNoSession            = errors.New("no authenticated session")
	ErrPreferenceNotFound   = errors.New("reminder preference not found")
	ErrInvalidPreference    = errors.New("invalid reminder preference")
	ErrPastFireTime         = errors.New("fire time already elapsed")
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrReminderForbidden    = errors.New("reminder belongs to another user")
	ErrSchedulerUnavailable = errors.New("notification scheduler unavailable")
)
