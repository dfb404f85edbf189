package taskqueue

import (
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

var ErrInvalidTaskID = errors.New("invalid task id")

// CallbackTokenHeader carries the shared secret on fire callbacks delivered
// by Primind Tasks.
const CallbackTokenHeader = "X-Callback-Token"

func validateTaskID(taskID string) error {
	if !domain.IsValidNotificationID(taskID) {
		return fmt.Errorf("%w: %q", ErrInvalidTaskID, taskID)
	}
	return nil
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
