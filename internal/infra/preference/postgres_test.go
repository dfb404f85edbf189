package preference

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func TestPostgresRepositoryGetReminderPreference(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, cleanup := testutil.SetupPostgresContainer(ctx, t)
	defer cleanup()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := NewPostgresRepository(db)

	updatedAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := repo.SaveReminderPreference(ctx, &domain.ReminderPreference{
		UserID:      "user-1",
		Enabled:     true,
		LeadMinutes: 30,
		UpdatedAt:   updatedAt,
	}); err != nil {
		t.Fatalf("failed to save preference: %v", err)
	}

	tests := []struct {
		name        string
		userID      string
		wantErr     error
		wantEnabled bool
		wantLead    int
	}{
		{
			name:        "existing record",
			userID:      "user-1",
			wantEnabled: true,
			wantLead:    30,
		},
		{
			name:    "missing record",
			userID:  "user-unknown",
			wantErr: domain.ErrPreferenceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, err := repo.GetReminderPreference(ctx, tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pref.Enabled != tt.wantEnabled {
				t.Errorf("Enabled: got %v, want %v", pref.Enabled, tt.wantEnabled)
			}
			if pref.LeadMinutes != tt.wantLead {
				t.Errorf("LeadMinutes: got %d, want %d", pref.LeadMinutes, tt.wantLead)
			}
			if !pref.UpdatedAt.Equal(updatedAt) {
				t.Errorf("UpdatedAt: got %v, want %v", pref.UpdatedAt, updatedAt)
			}
		})
	}
}

func TestPostgresRepositorySaveReminderPreferenceUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, cleanup := testutil.SetupPostgresContainer(ctx, t)
	defer cleanup()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := NewPostgresRepository(db)

	tests := []struct {
		name        string
		userID      string
		saves       []domain.ReminderPreference
		wantEnabled bool
		wantLead    int
	}{
		{
			name:   "overwrites earlier record",
			userID: "user-1",
			saves: []domain.ReminderPreference{
				{Enabled: true, LeadMinutes: 10},
				{Enabled: false, LeadMinutes: 45},
			},
			wantEnabled: false,
			wantLead:    45,
		},
		{
			name:   "stores zero values on insert",
			userID: "user-2",
			saves: []domain.ReminderPreference{
				{Enabled: false, LeadMinutes: 0},
			},
			wantEnabled: false,
			wantLead:    0,
		},
		{
			name:   "stores zero values on update",
			userID: "user-3",
			saves: []domain.ReminderPreference{
				{Enabled: true, LeadMinutes: 30},
				{Enabled: false, LeadMinutes: 0},
			},
			wantEnabled: false,
			wantLead:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, save := range tt.saves {
				save.UserID = tt.userID
				if err := repo.SaveReminderPreference(ctx, &save); err != nil {
					t.Fatalf("failed to save %+v: %v", save, err)
				}
			}

			pref, err := repo.GetReminderPreference(ctx, tt.userID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pref.Enabled != tt.wantEnabled {
				t.Errorf("Enabled: got %v, want %v", pref.Enabled, tt.wantEnabled)
			}
			if pref.LeadMinutes != tt.wantLead {
				t.Errorf("LeadMinutes: got %d, want %d", pref.LeadMinutes, tt.wantLead)
			}
			if pref.UpdatedAt.IsZero() {
				t.Error("expected UpdatedAt to be set")
			}

			var count int64
			if err := db.WithContext(ctx).Model(&preferenceModel{}).Where("user_id = ?", tt.userID).Count(&count).Error; err != nil {
				t.Fatalf("failed to count rows: %v", err)
			}
			if count != 1 {
				t.Errorf("expected 1 row, got %d", count)
			}
		})
	}
}

func TestUpsertPreferenceKeepsZeroValues(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=reminder dbname=reminder sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertPreference(tx, &preferenceModel{
			UserID:          "user-1",
			ReminderEnabled: false,
			LeadMinutes:     0,
			UpdatedAt:       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		})
	})

	if !strings.Contains(sql, "'user-1',false,0,") {
		t.Errorf("expected zero values in insert, got %s", sql)
	}
	if !strings.Contains(sql, `ON CONFLICT ("user_id") DO UPDATE SET`) {
		t.Errorf("expected upsert clause, got %s", sql)
	}
}

func TestPostgresRepositorySaveReminderPreferenceInvalid(t *testing.T) {
	repo := NewPostgresRepository(nil)

	tests := []struct {
		name string
		pref *domain.ReminderPreference
	}{
		{name: "nil preference", pref: nil},
		{name: "empty user", pref: &domain.ReminderPreference{LeadMinutes: 5}},
		{name: "negative lead", pref: &domain.ReminderPreference{UserID: "user-1", LeadMinutes: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveReminderPreference(context.Background(), tt.pref)
			if !errors.Is(err, ErrInvalidPreferenceData) {
				t.Errorf("expected ErrInvalidPreferenceData, got %v", err)
			}
		})
	}
}
