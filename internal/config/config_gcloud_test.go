//go:build gcloud

package config

import (
	"errors"
	"testing"
)

func TestTaskQueueConfigValidateGCloud(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TaskQueueConfig
		wantErr []error
	}{
		{
			name: "all missing",
			cfg:  TaskQueueConfig{},
			wantErr: []error{
				ErrGCloudProjectIDMissing,
				ErrGCloudLocationIDMissing,
				ErrGCloudQueueIDMissing,
				ErrGCloudTargetURLMissing,
				ErrGCloudServiceAccount,
			},
		},
		{
			name: "callback url fills target",
			cfg: TaskQueueConfig{
				GCloudProjectID:  "project",
				GCloudLocationID: "asia-northeast1",
				GCloudQueueID:    "reminders",
				CallbackURL:      "https://reminder.example.com/api/v1/notifications/fire",

				GCloudServiceAccount: "tasks@project.iam.gserviceaccount.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tt.cfg.TargetURL() != tt.cfg.CallbackURL {
					t.Errorf("TargetURL: got %q", tt.cfg.TargetURL())
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}
