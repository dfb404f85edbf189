package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type preferenceModel struct {
	UserID          string `gorm:"primaryKey;size:128"`
	ReminderEnabled bool   `gorm:"not null"`
	LeadMinutes     int    `gorm:"not null;check:lead_minutes >= 0"`
	UpdatedAt       time.Time
}

func (preferenceModel) TableName() string {
	return "notification_preferences"
}

type postgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) domain.PreferenceRepository {
	return &postgresRepository{
		db: db,
	}
}

// OpenDatabase connects to PostgreSQL and applies the pool settings.
func OpenDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&preferenceModel{})
}

func (r *postgresRepository) GetReminderPreference(ctx context.Context, userID string) (*domain.ReminderPreference, error) {
	var model preferenceModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPreferenceNotFound
		}
		return nil, err
	}

	return &domain.ReminderPreference{
		UserID:      model.UserID,
		Enabled:     model.ReminderEnabled,
		LeadMinutes: model.LeadMinutes,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func (r *postgresRepository) SaveReminderPreference(ctx context.Context, pref *domain.ReminderPreference) error {
	if pref == nil || pref.UserID == "" || pref.LeadMinutes < 0 {
		return ErrInvalidPreferenceData
	}

	updatedAt := pref.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	model := preferenceModel{
		UserID:          pref.UserID,
		ReminderEnabled: pref.Enabled,
		LeadMinutes:     pref.LeadMinutes,
		UpdatedAt:       updatedAt,
	}

	return upsertPreference(r.db.WithContext(ctx), &model).Error
}

// upsertPreference writes every column as given. The columns carry no gorm
// defaults, so false and 0 are stored rather than replaced.
func upsertPreference(tx *gorm.DB, model *preferenceModel) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reminder_enabled", "lead_minutes", "updated_at"}),
	}).Create(model)
}
