package preference

import "errors"

var (
	ErrInvalidPreferenceData = errors.New("invalid preference data")
	ErrDatabaseConnection    = errors.New("database connection error")
)
