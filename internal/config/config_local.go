//go:build !gcloud

package config

import (
	"errors"
	"fmt"
)

func (c *TaskQueueConfig) Validate() error {
	var errs []error

	if c.PrimindTasksURL == "" {
		errs = append(errs, ErrPrimindTasksURLEmpty)
	}
	if c.CallbackURL == "" {
		errs = append(errs, ErrCallbackURLMissing)
	}
	if c.CallbackSecret == "" {
		errs = append(errs, ErrCallbackSecretEmpty)
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
