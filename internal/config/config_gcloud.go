//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

var (
	ErrGCloudProjectIDMissing  = errors.New("GCLOUD_PROJECT_ID is required")
	ErrGCloudLocationIDMissing = errors.New("GCLOUD_LOCATION_ID is required")
	ErrGCloudQueueIDMissing    = errors.New("GCLOUD_QUEUE_ID is required")
	ErrGCloudTargetURLMissing  = errors.New("GCLOUD_TARGET_URL or CALLBACK_URL is required")
	ErrGCloudServiceAccount    = errors.New("GCLOUD_TASKS_SERVICE_ACCOUNT is required")
)

// Validate checks the Cloud Tasks settings. The fire callback target falls
// back to CALLBACK_URL when GCLOUD_TARGET_URL is unset.
func (c *TaskQueueConfig) Validate() error {
	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, ErrGCloudProjectIDMissing)
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, ErrGCloudLocationIDMissing)
	}
	if c.GCloudQueueID == "" {
		errs = append(errs, ErrGCloudQueueIDMissing)
	}
	if c.TargetURL() == "" {
		errs = append(errs, ErrGCloudTargetURLMissing)
	}
	if c.GCloudServiceAccount == "" {
		errs = append(errs, ErrGCloudServiceAccount)
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

func (c *TaskQueueConfig) TargetURL() string {
	if c.GCloudTargetURL != "" {
		return c.GCloudTargetURL
	}
	return c.CallbackURL
}
