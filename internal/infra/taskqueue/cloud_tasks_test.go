//go:build gcloud

package taskqueue

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyCreateError(t *testing.T) {
	tests := []struct {
		name          string
		code          codes.Code
		wantExists    bool
		wantErr       bool
		wantPermanent bool
	}{
		{name: "already exists is success", code: codes.AlreadyExists, wantExists: true},
		{name: "unavailable is retried", code: codes.Unavailable, wantErr: true},
		{name: "deadline exceeded is retried", code: codes.DeadlineExceeded, wantErr: true},
		{name: "invalid argument is permanent", code: codes.InvalidArgument, wantErr: true, wantPermanent: true},
		{name: "permission denied is permanent", code: codes.PermissionDenied, wantErr: true, wantPermanent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := classifyCreateError(status.Error(tt.code, "boom"))
			if exists != tt.wantExists {
				t.Errorf("alreadyExists: got %v, want %v", exists, tt.wantExists)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && isPermanent(err) != tt.wantPermanent {
				t.Errorf("permanent: got %v, want %v", isPermanent(err), tt.wantPermanent)
			}
		})
	}
}

func TestClassifyDeleteError(t *testing.T) {
	if err := classifyDeleteError(status.Error(codes.NotFound, "gone")); err != nil {
		t.Errorf("NotFound: expected nil, got %v", err)
	}

	err := classifyDeleteError(status.Error(codes.Unavailable, "down"))
	if err == nil || isPermanent(err) {
		t.Errorf("Unavailable: expected retryable error, got %v", err)
	}

	err = classifyDeleteError(status.Error(codes.FailedPrecondition, "bad"))
	if !isPermanent(err) {
		t.Errorf("FailedPrecondition: expected permanent error, got %v", err)
	}
	if status.Code(errors.Unwrap(errors.Unwrap(err))) != codes.FailedPrecondition {
		t.Errorf("expected status to be preserved, got %v", err)
	}
}

func TestCloudTasksClientRejectsInvalidTaskID(t *testing.T) {
	client := &CloudTasksClient{projectID: "p", locationID: "l", queueID: "q", maxRetries: 1}
	ctx := context.Background()

	task := &NotificationTask{NotificationID: "reminder-../../queues/other", UserID: "user-1"}
	if _, err := client.RegisterNotification(ctx, task); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("RegisterNotification: got %v, want ErrInvalidTaskID", err)
	}
	if err := client.DeleteTask(ctx, "not-a-reminder"); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("DeleteTask: got %v, want ErrInvalidTaskID", err)
	}
}
