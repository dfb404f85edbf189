package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func TestRegisterAndGetSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	fireAt := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second)
	record := &domain.ReminderRecord{
		NotificationID: "reminder-1",
		UserID:         "user-1",
		EventID:        "evt-1",
		FireAt:         fireAt,
		CreatedAt:      fireAt.Add(-45 * time.Minute),
	}

	if err := repo.Register(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, "reminder-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" || got.EventID != "evt-1" {
		t.Errorf("unexpected record: %+v", got)
	}
	if !got.FireAt.Equal(fireAt) {
		t.Errorf("FireAt: got %v, want %v", got.FireAt, fireAt)
	}

	ttl, err := client.TTL(ctx, reminderKeyPrefix+"reminder-1").Result()
	if err != nil {
		t.Fatalf("failed to read ttl: %v", err)
	}
	if ttl <= reminderRetention || ttl > reminderRetention+31*time.Minute {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

func TestGetNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	_, err := repo.Get(ctx, "reminder-missing")
	if !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound, got %v", err)
	}
}

func TestRegisterInvalidRecord(t *testing.T) {
	repo := NewReminderRepository(nil)

	tests := []struct {
		name   string
		record *domain.ReminderRecord
	}{
		{name: "nil record", record: nil},
		{name: "missing notification id", record: &domain.ReminderRecord{UserID: "user-1"}},
		{name: "missing user id", record: &domain.ReminderRecord{NotificationID: "reminder-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Register(context.Background(), tt.record)
			if !errors.Is(err, ErrInvalidRecordData) {
				t.Errorf("expected ErrInvalidRecordData, got %v", err)
			}
		})
	}
}

func TestListByUserOrderedByFireTime(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)
	base := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	records := []*domain.ReminderRecord{
		{NotificationID: "reminder-late", UserID: "user-1", EventID: "evt-2", FireAt: base.Add(2 * time.Hour)},
		{NotificationID: "reminder-early", UserID: "user-1", EventID: "evt-1", FireAt: base},
		{NotificationID: "reminder-other", UserID: "user-2", EventID: "evt-3", FireAt: base},
	}
	for _, rec := range records {
		if err := repo.Register(ctx, rec); err != nil {
			t.Fatalf("failed to register %s: %v", rec.NotificationID, err)
		}
	}

	got, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].NotificationID != "reminder-early" || got[1].NotificationID != "reminder-late" {
		t.Errorf("unexpected order: %s, %s", got[0].NotificationID, got[1].NotificationID)
	}

	empty, err := repo.ListByUser(ctx, "user-nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list, got %d", len(empty))
	}
}

func TestListByUserPrunesExpiredRecords(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)
	fireAt := time.Now().Add(time.Hour).UTC()

	for _, id := range []string{"reminder-1", "reminder-2"} {
		if err := repo.Register(ctx, &domain.ReminderRecord{NotificationID: id, UserID: "user-1", FireAt: fireAt}); err != nil {
			t.Fatalf("failed to register %s: %v", id, err)
		}
	}

	// Simulate the record expiring while the index entry survives.
	if err := client.Del(ctx, reminderKeyPrefix+"reminder-1").Err(); err != nil {
		t.Fatalf("failed to delete record: %v", err)
	}

	got, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].NotificationID != "reminder-2" {
		t.Fatalf("unexpected records: %+v", got)
	}

	members, err := client.ZRange(ctx, userReminderKeyPrefix+"user-1", 0, -1).Result()
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("expected stale member to be pruned, got %v", members)
	}
}

func TestRemoveSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)

	if err := repo.Register(ctx, &domain.ReminderRecord{
		NotificationID: "reminder-1",
		UserID:         "user-1",
		FireAt:         time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if err := repo.Remove(ctx, "user-1", "reminder-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.Get(ctx, "reminder-1"); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound after remove, got %v", err)
	}

	list, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list after remove, got %d", len(list))
	}

	// Removing an unknown record is a no-op.
	if err := repo.Remove(ctx, "user-1", "reminder-1"); err != nil {
		t.Errorf("second remove: unexpected error: %v", err)
	}
}
